package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/todate/internal/cli/formatter"
)

func newTimelineCmd(app *App) *cobra.Command {
	var (
		filters     filterFlags
		svgPath     string
		interactive bool
		rows, width int
	)

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Draw the timeline",
		Long: `Draw the timeline in the terminal, write it as SVG, or browse it
interactively (arrows or j/k to pan, +/- or the mouse wheel to zoom).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			filter, err := filters.filter(ctx, app)
			if err != nil {
				return err
			}
			opts := app.timelineOptions()

			if interactive {
				if !app.interactive() {
					return fmt.Errorf("--interactive needs a terminal")
				}
				model := newTimelineModel(app, filter, opts)
				_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)).Run()
				return err
			}

			if svgPath != "" {
				svg, err := app.Timeline.SVG(ctx, filter, opts, app.config().Render)
				if err != nil {
					return err
				}
				if err := os.WriteFile(svgPath, []byte(svg), 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", svgPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", svgPath)
				return nil
			}

			view, err := app.Timeline.View(ctx, filter, opts)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTimeline(view, rows, width))
			return nil
		},
	}
	filters.bind(cmd)
	cmd.Flags().StringVar(&svgPath, "svg", "", "Write the timeline as SVG to this file")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Browse with pan and zoom")
	cmd.Flags().IntVar(&rows, "rows", 30, "Rows of the text timeline")
	cmd.Flags().IntVar(&width, "width", 100, "Maximum line width of the text timeline")
	cmd.MarkFlagsMutuallyExclusive("svg", "interactive")
	return cmd
}
