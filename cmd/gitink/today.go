package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitink/internal/errors"
	"gitink/internal/pattern"
)

func newTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today [darkCount lightCount]",
		Short: "Issue the current day's commits",
		Long: `Classifies the current UTC calendar day with the same elapsed-day
arithmetic as a date-range run and issues that day's commits.

Run without arguments to be prompted for the two counts.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("accepts no arguments or exactly 2, received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dark, light, err := resolveTodayCounts(app, args)
			if err != nil {
				return err
			}
			day := pattern.Normalize(app.now())
			return app.Draw(cmd.Context(), day, day, dark, light)
		},
	}
}

func resolveTodayCounts(app *App, args []string) (dark, light int, err error) {
	if len(args) == 2 {
		if dark, err = parseCount(args[0], "darkCount"); err != nil {
			return 0, 0, err
		}
		if light, err = parseCount(args[1], "lightCount"); err != nil {
			return 0, 0, err
		}
		return dark, light, nil
	}

	if app.Config.NonInteractive {
		return 0, 0, errors.Wrap(errors.ErrInvalidArgument,
			"darkCount and lightCount are required in non-interactive mode")
	}

	p := newPrompter(app.Stdin, app.Stdout)
	if dark, err = p.count("Commits per dark day"); err != nil {
		return 0, 0, err
	}
	if light, err = p.count("Commits per light day"); err != nil {
		return 0, 0, err
	}
	return dark, light, nil
}
