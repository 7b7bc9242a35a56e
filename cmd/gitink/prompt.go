package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gitink/internal/errors"
	"gitink/internal/pattern"
)

// prompter reads interactive values from the user, one line per question.
type prompter struct {
	reader *bufio.Reader
	writer io.Writer
}

func newPrompter(r io.Reader, w io.Writer) *prompter {
	return &prompter{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// ask prints a label and reads one trimmed line of input.
func (p *prompter) ask(label string) (string, error) {
	if _, err := fmt.Fprintf(p.writer, "%s: ", label); err != nil {
		return "", err
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", errors.Wrap(errors.ErrInvalidArgument, "no input provided")
	}
	return strings.TrimSpace(line), nil
}

// date prompts for a YYYY-MM-DD calendar date.
func (p *prompter) date(label string) (time.Time, error) {
	answer, err := p.ask(label)
	if err != nil {
		return time.Time{}, err
	}
	d, err := pattern.ParseDate(answer)
	if err != nil {
		return time.Time{}, errors.Wrap(errors.ErrInvalidArgument, err.Error())
	}
	return d, nil
}

// count prompts for an integer commit count.
func (p *prompter) count(label string) (int, error) {
	answer, err := p.ask(label)
	if err != nil {
		return 0, err
	}
	return parseCount(answer, label)
}

// parseCount parses a commit count, rejecting non-numeric input.
// Negative values parse here and are rejected before any mutation happens.
func parseCount(s, name string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidArgument, "%s must be an integer, got %q", name, s)
	}
	return n, nil
}
