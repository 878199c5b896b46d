package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderramin/todate/internal/domain"
)

// CurrentVersion is written by FromDomain. Files without a version are
// read as version 1.
const CurrentVersion = 1

// ImportSchema is the top-level JSON structure of a todate export.
type ImportSchema struct {
	Version int            `json:"version"`
	School  *SchoolImport  `json:"school,omitempty"`
	Tags    []TagImport    `json:"tags"`
	Todates []TodateImport `json:"todates"`
}

// SchoolImport is the school calendar as stored in the file.
type SchoolImport struct {
	ReferenceYear  int    `json:"referenceYear"`
	Month          *int   `json:"month,omitempty"`
	Day            *int   `json:"day,omitempty"`
	PeriodType     string `json:"periodType,omitempty"`
	RepeatedGrades []int  `json:"repeatedGrades,omitempty"`
	GapYears       []int  `json:"gapYears,omitempty"`
	SkippedGrades  []int  `json:"skippedGrades,omitempty"`
}

// TagImport defines a tag. Todates refer to it by ID.
type TagImport struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TodateImport defines one todate. Older files carry only Date; it is
// read as a datetime.
type TodateImport struct {
	ID             string            `json:"_id,omitempty"`
	Title          string            `json:"title"`
	Date           string            `json:"date,omitempty"`
	DateDisplay    *domain.DateValue `json:"dateDisplay,omitempty"`
	EndDateDisplay *domain.DateValue `json:"endDateDisplay,omitempty"`
	Comment        string            `json:"comment,omitempty"`
	Tags           []string          `json:"tags,omitempty"`
}

// LoadImportSchema reads and parses a todate JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

// ParseImportSchema parses a todate JSON document.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	if schema.Version == 0 {
		schema.Version = CurrentVersion
	}
	return &schema, nil
}

// Marshal renders the schema as indented JSON.
func (s *ImportSchema) Marshal() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
