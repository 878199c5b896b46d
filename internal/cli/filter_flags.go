package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/todate/internal/timeline"
)

// filterFlags binds the timeline filter options shared by list, timeline
// and export.
type filterFlags struct {
	tags     []string
	untagged bool
	from     int
	to       int
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "Only todates with any of these tags (ID or name, repeatable)")
	cmd.Flags().BoolVar(&f.untagged, "untagged", false, "With --tag, also include untagged todates")
	cmd.Flags().IntVar(&f.from, "from", 0, "First calendar year to include")
	cmd.Flags().IntVar(&f.to, "to", 0, "Last calendar year to include")
}

// filter resolves the flags. Without --tag every todate is shown, tagged or not.
func (f *filterFlags) filter(ctx context.Context, app *App) (timeline.Filter, error) {
	if f.from != 0 && f.to != 0 && f.to < f.from {
		return timeline.Filter{}, fmt.Errorf("--to %d is before --from %d", f.to, f.from)
	}
	out := timeline.Filter{FromYear: f.from, ToYear: f.to, ShowUntagged: true}
	if len(f.tags) == 0 {
		return out, nil
	}
	ids, err := resolveTagIDs(ctx, app, f.tags)
	if err != nil {
		return timeline.Filter{}, err
	}
	out.TagIDs = ids
	out.ShowUntagged = f.untagged
	return out, nil
}
