package cli

import (
	"github.com/spf13/pflag"

	"github.com/alexanderramin/todate/internal/domain"
)

// dateValueFlag parses the compact date grammar (2021-03, school:3:2, ...)
// straight into a DateValue.
type dateValueFlag struct {
	value domain.DateValue
	raw   string
	set   bool
}

var _ pflag.Value = (*dateValueFlag)(nil)

func (f *dateValueFlag) Set(s string) error {
	v, err := domain.ParseDateValue(s)
	if err != nil {
		return err
	}
	f.value, f.raw, f.set = v, s, true
	return nil
}

func (f *dateValueFlag) String() string { return f.raw }

func (f *dateValueFlag) Type() string { return "date" }

// Value returns the parsed date, or ok=false when the flag was not given.
func (f *dateValueFlag) Value() (domain.DateValue, bool) {
	return f.value, f.set
}

const dateFlagUsage = "date: YYYY, YYYY-MM, YYYY-MM-DD, RFC 3339 timestamp, or school:YEAR:PERIOD[:rN]"
