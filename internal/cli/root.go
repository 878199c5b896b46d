package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/todate/internal/calendar"
	"github.com/alexanderramin/todate/internal/config"
	"github.com/alexanderramin/todate/internal/domain"
	"github.com/alexanderramin/todate/internal/service"
	"github.com/alexanderramin/todate/internal/timeline"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Todates  service.TodateService
	Tags     service.TagService
	School   service.SchoolService
	Timeline service.TimelineService
	Exchange service.ExchangeService

	Config *config.Config

	// IsInteractive reports whether stdin is a terminal. Wizards and the
	// interactive timeline refuse to start without one. Nil means never.
	IsInteractive func() bool

	// Now is the clock used for relative timestamps. Nil means time.Now.
	Now func() time.Time
}

// NewRootCmd creates the top-level "todate" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "todate",
		Short:         "Personal timeline of dated moments and periods",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAddCmd(app),
		newListCmd(app),
		newShowCmd(app),
		newEditCmd(app),
		newRemoveCmd(app),
		newTagCmd(app),
		newSchoolCmd(app),
		newTimelineCmd(app),
		newExportCmd(app),
		newImportCmd(app),
	)

	return root
}

func (a *App) config() *config.Config {
	if a.Config == nil {
		return config.DefaultConfig()
	}
	return a.Config
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// timelineOptions builds view options from the configuration.
func (a *App) timelineOptions() timeline.Options {
	cfg := a.config()
	return timeline.Options{
		Locale:      cfg.Locale,
		IncludeTime: cfg.IncludeTime,
		Height:      float64(cfg.Timeline.Height),
		LabelMinPx:  cfg.Timeline.LabelMinPx,
		MaxSpan:     cfg.Timeline.MaxSpan,
		Now:         a.now(),
	}
}

func (a *App) displayOptions(school *domain.SchoolCalendar) calendar.Options {
	cfg := a.config()
	return calendar.Options{
		Locale:      cfg.Locale,
		IncludeTime: cfg.IncludeTime,
		School:      school,
	}
}
