package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/todate/internal/cli/formatter"
	"github.com/alexanderramin/todate/internal/domain"
)

func newSchoolCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "school",
		Short: "Configure the school calendar school dates resolve against",
	}
	cmd.AddCommand(
		newSchoolSetCmd(app),
		newSchoolShowCmd(app),
		newSchoolClearCmd(app),
	)
	return cmd
}

func newSchoolSetCmd(app *App) *cobra.Command {
	var (
		year, month, day int
		periods          string
		repeated         []int
		gaps             []int
		skipped          []int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or update the school calendar",
		Long: `Create or update the school calendar. Flags not given keep their
stored values. Every school-dated todate is recomputed.

  todate school set --year 2005 --month 9 --day 1 --periods trimester
  todate school set --repeated 3 --gap 12`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cal, err := app.School.Get(ctx)
			if err != nil {
				return err
			}
			if cal == nil {
				if !cmd.Flags().Changed("year") {
					return fmt.Errorf("--year is required when no school calendar exists")
				}
				cal = &domain.SchoolCalendar{}
			}

			flags := cmd.Flags()
			if flags.Changed("year") {
				cal.ReferenceYear = year
			}
			if flags.Changed("month") {
				if month < 1 || month > 12 {
					return fmt.Errorf("--month %d out of range", month)
				}
				cal.StartMonth = month
			}
			if flags.Changed("day") {
				if day < 1 || day > 31 {
					return fmt.Errorf("--day %d out of range", day)
				}
				cal.StartDay = day
			}
			if flags.Changed("periods") {
				cal.PeriodType = domain.PeriodType(periods)
			}
			if flags.Changed("repeated") {
				cal.RepeatedGrades = repeated
			}
			if flags.Changed("gap") {
				cal.GapYears = gaps
			}
			if flags.Changed("skipped") {
				cal.SkippedGrades = skipped
			}

			n, err := app.School.Save(ctx, cal)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatSchoolCalendar(cal))
			fmt.Fprintf(out, "Recomputed %d school-dated todates\n", n)
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "Calendar year school year 1 starts in")
	cmd.Flags().IntVar(&month, "month", domain.DefaultStartMonth, "Start month of every school year")
	cmd.Flags().IntVar(&day, "day", domain.DefaultStartDay, "Start day of every school year")
	cmd.Flags().StringVar(&periods, "periods", string(domain.PeriodQuarter), "quarter, trimester or semester")
	cmd.Flags().IntSliceVar(&repeated, "repeated", nil, "Grades that took two years")
	cmd.Flags().IntSliceVar(&gaps, "gap", nil, "Grades followed by a year without school")
	cmd.Flags().IntSliceVar(&skipped, "skipped", nil, "Grades that were skipped")
	return cmd
}

func newSchoolShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the school calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := app.School.Get(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSchoolCalendar(cal))
			return nil
		},
	}
}

func newSchoolClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the school calendar; school dates fall back to a September 2000 start",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.School.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "School calendar cleared; recomputed %d school-dated todates\n", n)
			return nil
		},
	}
}
