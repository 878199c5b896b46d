package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/todate/internal/cli/formatter"
	"github.com/alexanderramin/todate/internal/domain"
)

func newTagCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
	}
	cmd.AddCommand(
		newTagAddCmd(app),
		newTagListCmd(app),
		newTagEditCmd(app),
		newTagRemoveCmd(app),
	)
	return cmd
}

func newTagAddCmd(app *App) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag := &domain.Tag{Name: args[0], Color: color}
			if err := app.Tags.Create(cmd.Context(), tag); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created tag %s %s\n", formatter.TagChip(*tag), formatter.TruncID(tag.ID))
			return nil
		},
	}
	cmd.Flags().StringVar(&color, "color", domain.FallbackTagColor, "Hex color, e.g. #ef4444")
	return cmd
}

func newTagListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := app.Tags.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTagList(tags))
			return nil
		},
	}
}

func newTagEditCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "edit TAG",
		Short: "Rename or recolor a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tag, err := app.Tags.Resolve(ctx, args[0])
			if err != nil {
				return fmt.Errorf("tag %q: %w", args[0], err)
			}
			if cmd.Flags().Changed("name") {
				tag.Name = name
			}
			if cmd.Flags().Changed("color") {
				tag.Color = color
			}
			if err := app.Tags.Update(ctx, tag); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated tag %s\n", formatter.TagChip(*tag))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&color, "color", "", "New hex color")
	return cmd
}

func newTagRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove TAG",
		Aliases: []string{"rm"},
		Short:   "Delete a tag; todates keep their other tags",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tag, err := app.Tags.Resolve(ctx, args[0])
			if err != nil {
				return fmt.Errorf("tag %q: %w", args[0], err)
			}
			if err := app.Tags.Delete(ctx, tag.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed tag %s\n", tag.Name)
			return nil
		},
	}
}
