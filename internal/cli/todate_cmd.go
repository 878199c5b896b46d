package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/todate/internal/cli/formatter"
	"github.com/alexanderramin/todate/internal/domain"
)

// todateFlags are the editable fields shared by add and edit.
type todateFlags struct {
	title    string
	start    dateValueFlag
	end      dateValueFlag
	comment  string
	tags     []string
	note     string
	instance int
}

func (f *todateFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Title")
	cmd.Flags().Var(&f.start, "date", "Start "+dateFlagUsage)
	cmd.Flags().Var(&f.end, "end", "End of a period, same forms as --date")
	cmd.Flags().StringVar(&f.comment, "comment", "", "Free-text comment")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "Tag ID or name (repeatable)")
	cmd.Flags().StringVar(&f.note, "note", "", "Note shown with a school date, e.g. \"exchange year\"")
	cmd.Flags().IntVar(&f.instance, "instance", 0, "Which pass through a repeated school year (2 = second)")
}

// schoolExtras applies --note and --instance to a school-kind value.
func (f *todateFlags) schoolExtras(v domain.DateValue) domain.DateValue {
	if f.note != "" {
		v = v.WithNote(f.note)
	}
	if f.instance > 0 {
		v = v.WithRepeatedInstance(f.instance)
	}
	return v
}

func newAddCmd(app *App) *cobra.Command {
	var f todateFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a todate",
		Long: `Add a todate. Dates accept several precisions:

  todate add --title "Moved to Lyon" --date 2019-08
  todate add --title "Graduation" --date 2021-06-30
  todate add --title "Exchange" --date school:11:1 --end school:11:4
  todate add --title "Flight" --date 2022-07-01T09:30:00+02:00

Run without flags in a terminal for an interactive form.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, ok := f.start.Value(); !ok && f.title == "" && app.interactive() {
				return runAddWizard(cmd, app)
			}

			start, ok := f.start.Value()
			if !ok {
				return fmt.Errorf("--date is required")
			}
			t := &domain.Todate{
				Title:   f.title,
				Start:   f.schoolExtras(start),
				Comment: f.comment,
			}
			if end, ok := f.end.Value(); ok {
				t.End = &end
			}
			tags, err := resolveTags(ctx, app, f.tags)
			if err != nil {
				return err
			}
			t.Tags = tags

			if err := app.Todates.Create(ctx, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created todate %s %s\n", formatter.Bold(t.Title), formatter.TruncID(t.ID))
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func newListCmd(app *App) *cobra.Command {
	var (
		filters filterFlags
		kind    string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List todates, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if kind != "" && !domain.ValidDateKinds[kind] {
				return fmt.Errorf("invalid --kind %q (want school, month, day or datetime)", kind)
			}
			filter, err := filters.filter(ctx, app)
			if err != nil {
				return err
			}
			view, err := app.Timeline.View(ctx, filter, app.timelineOptions())
			if err != nil {
				return err
			}
			entries := view.Entries
			if kind != "" {
				entries = entries[:0:0]
				for _, e := range view.Entries {
					if string(e.Todate.Start.Kind) == kind {
						entries = append(entries, e)
					}
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTodateList(entries))
			return nil
		},
	}
	filters.bind(cmd)
	cmd.Flags().StringVar(&kind, "kind", "", "Only todates whose start has this kind")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one todate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTodateID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Todates.GetByID(ctx, id)
			if err != nil {
				return err
			}
			school, err := app.School.Get(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTodateDetail(t, app.displayOptions(school), app.now()))
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	var (
		f         todateFlags
		clearEnd  bool
		clearTags bool
	)

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of a todate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTodateID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Todates.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if err := applyTodateEdits(ctx, cmd, app, t, &f, clearEnd, clearTags); err != nil {
				return err
			}
			if err := app.Todates.Update(ctx, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated todate %s %s\n", formatter.Bold(t.Title), formatter.TruncID(t.ID))
			return nil
		},
	}
	f.bind(cmd)
	cmd.Flags().BoolVar(&clearEnd, "clear-end", false, "Turn a period back into a single moment")
	cmd.Flags().BoolVar(&clearTags, "clear-tags", false, "Remove every tag")
	return cmd
}

// applyTodateEdits copies only the flags that were given onto t.
func applyTodateEdits(ctx context.Context, cmd *cobra.Command, app *App, t *domain.Todate, f *todateFlags, clearEnd, clearTags bool) error {
	flags := cmd.Flags()
	if flags.Changed("title") {
		t.Title = f.title
	}
	if start, ok := f.start.Value(); ok {
		t.Start = start
	}
	if flags.Changed("note") || flags.Changed("instance") {
		if t.Start.Kind != domain.KindSchool {
			return fmt.Errorf("--note and --instance only apply to school dates")
		}
	}
	t.Start = f.schoolExtras(t.Start)
	switch end, ok := f.end.Value(); {
	case ok && clearEnd:
		return fmt.Errorf("--end and --clear-end cannot be combined")
	case ok:
		t.End = &end
	case clearEnd:
		t.End = nil
	}
	if flags.Changed("comment") {
		t.Comment = f.comment
	}
	switch {
	case clearTags && len(f.tags) > 0:
		return fmt.Errorf("--tag and --clear-tags cannot be combined")
	case clearTags:
		t.Tags = nil
	case flags.Changed("tag"):
		tags, err := resolveTags(ctx, app, f.tags)
		if err != nil {
			return err
		}
		t.Tags = tags
	}
	return nil
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID...",
		Aliases: []string{"rm"},
		Short:   "Delete todates",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var removed []string
			for _, arg := range args {
				id, err := resolveTodateID(ctx, app, arg)
				if err != nil {
					return err
				}
				if err := app.Todates.Delete(ctx, id); err != nil {
					return err
				}
				removed = append(removed, formatter.TruncID(id))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", strings.Join(removed, ", "))
			return nil
		},
	}
}
