package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/runnerr0/wqlab/internal/chart"
	"github.com/runnerr0/wqlab/internal/prompt"
	"github.com/runnerr0/wqlab/internal/series"
)

// chartJSON is the JSON output of plot and compare.
type chartJSON struct {
	Output          string   `json:"output"`
	Characteristics []string `json:"characteristics"`
	Units           []string `json:"units"`
	Sites           int      `json:"sites"`
	Points          int      `json:"points"`
}

// Execute implements the go-flags Commander interface for PlotCommand.
func (c *PlotCommand) Execute(args []string) error {
	s, err := newSession(c.globals, c.prompter, c.out)
	if err != nil {
		return err
	}
	return finish(s.out, c.run(s))
}

func (c *PlotCommand) run(s *session) error {
	ds, err := s.loadDataset(c.File, "Select water quality CSV")
	if err != nil {
		return err
	}

	name := strings.TrimSpace(c.Characteristic)
	if name == "" {
		if !s.json {
			printCharacteristics(s, series.ListCharacteristics(ds))
		}
		answer, err := s.prompter.AskText("Enter the characteristic to plot")
		if errors.Is(err, prompt.ErrNoSelection) {
			return exitWith(msgNoCharacteristic)
		}
		if err != nil {
			return fmt.Errorf("ask characteristic: %w", err)
		}
		name = strings.TrimSpace(answer)
		if name == "" {
			return exitWith(msgNoCharacteristic)
		}
	}

	data, report := s.clean(ds, name)
	if report.Remaining == 0 {
		return noDataMessage(name)
	}
	unit := series.ResolveUnitLabel(ds, name)

	out := c.Out
	if out == "" {
		out = chartPath(s.cfg.Chart.Format, name)
	}
	single := chart.Single{
		Title:  fmt.Sprintf("%s Over Time by Site", name),
		YLabel: fmt.Sprintf("%s (%s)", name, unit),
		Lines:  chart.Lines(data, ""),
		Width:  s.cfg.Chart.Width,
		Height: s.cfg.Chart.Height,
	}
	format := chart.FormatFromPath(out)
	if err := writeChart(out, func(w io.Writer) error {
		return chart.RenderSingle(w, format, single)
	}); err != nil {
		if errors.Is(err, chart.ErrNoData) {
			return noDataMessage(name)
		}
		return err
	}
	s.log.Debug("chart written", "path", out, "format", format)

	if s.json {
		return s.printJSON(chartJSON{
			Output:          out,
			Characteristics: []string{name},
			Units:           []string{unit},
			Sites:           len(data),
			Points:          series.PointCount(data),
		})
	}
	fmt.Fprintf(s.out, "Chart saved to %s\n", out)
	return nil
}

// writeChart renders into path, removing the file if rendering fails.
func writeChart(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := render(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close chart file: %w", err)
	}
	return nil
}
