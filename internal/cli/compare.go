package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/runnerr0/wqlab/internal/chart"
	"github.com/runnerr0/wqlab/internal/prompt"
	"github.com/runnerr0/wqlab/internal/series"
)

// Execute implements the go-flags Commander interface for CompareCommand.
func (c *CompareCommand) Execute(args []string) error {
	s, err := newSession(c.globals, c.prompter, c.out)
	if err != nil {
		return err
	}
	return finish(s.out, c.run(s))
}

func (c *CompareCommand) run(s *session) error {
	ds, err := s.loadDataset(c.File, "Select water quality CSV")
	if err != nil {
		return err
	}
	names := series.ListCharacteristics(ds)

	first, err := c.pick(s, names, c.First, "Enter the number of the FIRST characteristic you'd like to plot")
	if err != nil {
		return err
	}
	second, err := c.pick(s, names, c.Second, "Enter the number of the SECOND characteristic you'd like to plot")
	if err != nil {
		return err
	}
	// Matching ignores case, so "pH" and "PH" would select the same rows.
	if strings.EqualFold(strings.TrimSpace(names[first]), strings.TrimSpace(names[second])) {
		return exitWith(msgInvalidSelection)
	}
	nameA, nameB := names[first], names[second]

	a, reportA := s.clean(ds, nameA)
	b, reportB := s.clean(ds, nameB)
	if reportA.Remaining == 0 || reportB.Remaining == 0 {
		return exitWith("No data found for one or both selected characteristics: %s, %s", nameA, nameB)
	}

	if c.SharedSites {
		shared := series.IntersectSites(a, b)
		a = series.Restrict(a, shared)
		b = series.Restrict(b, shared)
		if len(shared) == 0 {
			s.log.Warn("no shared sites, rendering an empty chart", "first", nameA, "second", nameB)
		} else {
			s.log.Info("shared sites", "count", len(shared))
		}
	}

	unitA := series.ResolveUnitLabel(ds, nameA)
	unitB := series.ResolveUnitLabel(ds, nameB)

	out := c.Out
	if out == "" {
		out = chartPath(s.cfg.Chart.Format, nameA, nameB)
	}
	dual := chart.Dual{
		Title:          fmt.Sprintf("%s and %s Over Time by Site", nameA, nameB),
		PrimaryLabel:   fmt.Sprintf("%s (%s)", nameA, unitA),
		SecondaryLabel: fmt.Sprintf("%s (%s)", nameB, unitB),
		Primary:        chart.Lines(a, nameA),
		Secondary:      chart.Lines(b, nameB),
		Width:          s.cfg.Chart.Width,
		Height:         s.cfg.Chart.Height,
	}
	format := chart.FormatFromPath(out)
	if err := writeChart(out, func(w io.Writer) error {
		return chart.RenderDual(w, format, dual)
	}); err != nil {
		return err
	}
	s.log.Debug("chart written", "path", out, "format", format)

	if s.json {
		return s.printJSON(chartJSON{
			Output:          out,
			Characteristics: []string{nameA, nameB},
			Units:           []string{unitA, unitB},
			Sites:           len(a) + countOnly(b, a),
			Points:          series.PointCount(a) + series.PointCount(b),
		})
	}
	fmt.Fprintf(s.out, "Chart saved to %s\n", out)
	return nil
}

// pick resolves a 1-based flag value, or asks for a choice when it is unset.
// It returns a 0-based index into names.
func (c *CompareCommand) pick(s *session, names []string, flagValue int, question string) (int, error) {
	if len(names) == 0 {
		return 0, exitWith("No characteristics found.")
	}
	if flagValue != 0 {
		if flagValue < 1 || flagValue > len(names) {
			return 0, exitWith(msgInvalidSelection)
		}
		return flagValue - 1, nil
	}

	idx, err := s.prompter.ChooseOneOf(question, names)
	switch {
	case errors.Is(err, prompt.ErrNoSelection):
		return 0, exitWith(msgNoCharacteristic)
	case errors.Is(err, prompt.ErrNotNumeric):
		return 0, exitWith(msgNotNumeric)
	case errors.Is(err, prompt.ErrInvalidSelection):
		return 0, exitWith(msgInvalidSelection)
	case err != nil:
		return 0, fmt.Errorf("choose characteristic: %w", err)
	}
	if idx < 0 || idx >= len(names) {
		return 0, exitWith(msgInvalidSelection)
	}
	return idx, nil
}

// countOnly counts the sites of m that are not in other.
func countOnly(m, other map[string]series.SiteSeries) int {
	n := 0
	for site := range m {
		if _, ok := other[site]; !ok {
			n++
		}
	}
	return n
}
