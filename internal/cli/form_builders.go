package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/todate/internal/cli/formatter"
	"github.com/alexanderramin/todate/internal/domain"
)

// todateHuhTheme returns a huh theme using the formatter palette.
func todateHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// todateFormValues is what the add wizard collects, as typed.
type todateFormValues struct {
	Title   string
	Date    string
	End     string
	Comment string
	TagIDs  []string
}

// validateRequiredDate accepts any form ParseDateValue understands.
func validateRequiredDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("a date is required")
	}
	_, err := domain.ParseDateValue(s)
	return err
}

// validateOptionalDateValue accepts empty or a parseable date.
func validateOptionalDateValue(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := domain.ParseDateValue(s)
	return err
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

// newTodateForm builds the add wizard. The tag step is left out when no
// tags exist.
func newTodateForm(values *todateFormValues, tags []*domain.Tag) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Value(&values.Title).
			Validate(validateTitle),
		huh.NewInput().
			Title("Date").
			Description("2021, 2021-03, 2021-03-14, 2021-03-14T09:30:00Z or school:3:2").
			Placeholder("2021-03").
			Value(&values.Date).
			Validate(validateRequiredDate),
		huh.NewInput().
			Title("Until (blank for a single moment)").
			Value(&values.End).
			Validate(validateOptionalDateValue),
	}

	groups := []*huh.Group{huh.NewGroup(fields...)}

	if len(tags) > 0 {
		options := make([]huh.Option[string], 0, len(tags))
		for _, t := range tags {
			options = append(options, huh.NewOption(formatter.TagChip(*t), t.ID))
		}
		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Tags").
				Options(options...).
				Value(&values.TagIDs),
		))
	}

	groups = append(groups, huh.NewGroup(
		huh.NewText().
			Title("Comment").
			Value(&values.Comment),
	))

	return huh.NewForm(groups...).WithTheme(todateHuhTheme()).WithShowHelp(false)
}

// toTodate turns validated form values into a todate ready for Create.
func (v *todateFormValues) toTodate() (*domain.Todate, error) {
	start, err := domain.ParseDateValue(v.Date)
	if err != nil {
		return nil, err
	}
	t := &domain.Todate{
		Title:   strings.TrimSpace(v.Title),
		Start:   start,
		Comment: strings.TrimSpace(v.Comment),
	}
	if strings.TrimSpace(v.End) != "" {
		end, err := domain.ParseDateValue(v.End)
		if err != nil {
			return nil, err
		}
		t.End = &end
	}
	for _, id := range v.TagIDs {
		t.Tags = append(t.Tags, domain.Tag{ID: id})
	}
	return t, nil
}

// runAddWizard collects a todate interactively and creates it.
func runAddWizard(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	t, err := promptTodate(ctx, app)
	if err != nil {
		return err
	}
	if err := app.Todates.Create(ctx, t); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created todate %s %s\n", formatter.Bold(t.Title), formatter.TruncID(t.ID))
	return nil
}

func promptTodate(ctx context.Context, app *App) (*domain.Todate, error) {
	tags, err := app.Tags.List(ctx)
	if err != nil {
		return nil, err
	}
	var values todateFormValues
	if err := newTodateForm(&values, tags).RunWithContext(ctx); err != nil {
		return nil, err
	}
	return values.toTodate()
}
