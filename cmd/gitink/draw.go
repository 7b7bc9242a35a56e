package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gitink/internal/errors"
	"gitink/internal/pattern"
)

// drawInputs are the four values every drawing run needs.
type drawInputs struct {
	start, end time.Time
	dark       int
	light      int
}

func newDrawCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "draw [start end darkCount lightCount]",
		Short: "Issue dated commits for each day in a range",
		Long: `Walks each calendar day from start to end inclusive, classifies it
against the glyph schedule, and issues darkCount commits on dark days and
lightCount commits on light days, each dated to the target day.

Run without arguments to be prompted for the four values.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 4 {
				return fmt.Errorf("accepts no arguments or exactly 4, received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := resolveDrawInputs(app, args)
			if err != nil {
				return err
			}
			return app.Draw(cmd.Context(), in.start, in.end, in.dark, in.light)
		},
	}
}

// resolveDrawInputs parses positional arguments, or prompts for them when
// none were given and interactive use is allowed.
func resolveDrawInputs(app *App, args []string) (drawInputs, error) {
	if len(args) == 4 {
		return parseDrawArgs(args)
	}

	if app.Config.NonInteractive {
		return drawInputs{}, errors.Wrap(errors.ErrInvalidArgument,
			"start, end, darkCount and lightCount are required in non-interactive mode")
	}

	p := newPrompter(app.Stdin, app.Stdout)
	var in drawInputs
	var err error
	if in.start, err = p.date("Start date (YYYY-MM-DD)"); err != nil {
		return drawInputs{}, err
	}
	if in.end, err = p.date("End date (YYYY-MM-DD)"); err != nil {
		return drawInputs{}, err
	}
	if in.dark, err = p.count("Commits per dark day"); err != nil {
		return drawInputs{}, err
	}
	if in.light, err = p.count("Commits per light day"); err != nil {
		return drawInputs{}, err
	}
	return in, nil
}

// parseDrawArgs parses <start> <end> <darkCount> <lightCount>.
func parseDrawArgs(args []string) (drawInputs, error) {
	var in drawInputs
	var err error

	if in.start, err = pattern.ParseDate(args[0]); err != nil {
		return drawInputs{}, errors.Wrap(errors.ErrInvalidArgument, err.Error())
	}
	if in.end, err = pattern.ParseDate(args[1]); err != nil {
		return drawInputs{}, errors.Wrap(errors.ErrInvalidArgument, err.Error())
	}
	if in.dark, err = parseCount(args[2], "darkCount"); err != nil {
		return drawInputs{}, err
	}
	if in.light, err = parseCount(args[3], "lightCount"); err != nil {
		return drawInputs{}, err
	}
	return in, nil
}
