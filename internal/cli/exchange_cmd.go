package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/todate/internal/cli/formatter"
	"github.com/alexanderramin/todate/internal/ics"
	"github.com/alexanderramin/todate/internal/importer"
	"github.com/alexanderramin/todate/internal/service"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		filters filterFlags
		format  string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export todates as JSON, iCalendar or SVG",
		Long: `Export todates. JSON carries everything (school calendar, tags and
todates) and can be read back with "todate import". The ics and svg formats
honour the --tag, --untagged, --from and --to filters.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			filter, err := filters.filter(ctx, app)
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "json":
				data, err = app.Exchange.ExportJSON(ctx)
			case "ics":
				var s string
				s, err = app.Exchange.ExportICS(ctx, filter, ics.Options{Locale: app.config().Locale, Now: app.now()})
				data = []byte(s)
			case "svg":
				var s string
				s, err = app.Timeline.SVG(ctx, filter, app.timelineOptions(), app.config().Render)
				data = []byte(s)
			default:
				return fmt.Errorf("unknown --format %q (want json, ics or svg)", format)
			}
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", output)
			return nil
		},
	}
	filters.bind(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "json", "json, ics or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a JSON export; \"-\" reads stdin",
		Long: `Import a JSON export in one transaction. Tags merge by ID, then by
name; todates with a known ID are updated in place. A school calendar in the
file replaces the stored one and recomputes existing school dates.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				res *service.ImportResult
				err error
			)
			if args[0] == "-" {
				res, err = importStdin(cmd, app)
			} else {
				res, err = app.Exchange.Import(ctx, args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(res))
			return nil
		},
	}
}

func importStdin(cmd *cobra.Command, app *App) (*service.ImportResult, error) {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	schema, err := importer.ParseImportSchema(data)
	if err != nil {
		return nil, err
	}
	return app.Exchange.ImportSchema(cmd.Context(), schema)
}
