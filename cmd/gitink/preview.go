package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitink/internal/errors"
	"gitink/internal/pattern"
)

func newPreviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <start> <end>",
		Short: "Render the glyph cells for a date range without committing",
		Long: `Classifies each day from start to end inclusive and prints a text
rendering of the calendar cells. Dark cells show as full blocks, light
cells as shaded blocks, and days before the anchor date as dots.

No commits are made and the repository is not touched.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := pattern.ParseDate(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrInvalidArgument, err.Error())
			}
			end, err := pattern.ParseDate(args[1])
			if err != nil {
				return errors.Wrap(errors.ErrInvalidArgument, err.Error())
			}

			if err := app.Initialize(); err != nil {
				return err
			}

			resolver := pattern.New(pattern.Config{Epoch: app.Config.Epoch()})
			_, werr := fmt.Fprint(app.Stdout, resolver.Render(start, end))
			return werr
		},
	}
}
