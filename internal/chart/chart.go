// Package chart renders per-site time series to image files.
//
// Single-characteristic charts are drawn with gonum/plot. Dual-axis charts
// use go-chart, which supports a secondary y axis natively.
package chart

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/runnerr0/wqlab/internal/series"
)

// ErrNoData is returned when a chart that requires data has none.
var ErrNoData = errors.New("no data to plot")

// Line is one labelled series on a chart.
type Line struct {
	Label  string
	Points []series.Point
}

// Lines builds one Line per site in ascending site order. A non-empty
// suffix is appended to each label as " (suffix)".
func Lines(m map[string]series.SiteSeries, suffix string) []Line {
	lines := make([]Line, 0, len(m))
	for _, site := range series.SortedSites(m) {
		label := site
		if suffix != "" {
			label = site + " (" + suffix + ")"
		}
		lines = append(lines, Line{Label: label, Points: m[site].Points})
	}
	return lines
}

// FormatFromPath returns the image format implied by the file extension,
// defaulting to png.
func FormatFromPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "png"
	}
	return ext
}

// bounds is the data extent of a set of lines.
type bounds struct {
	tMin, tMax time.Time
	yMin, yMax float64
	empty      bool
}

func extent(lines []Line) bounds {
	b := bounds{empty: true}
	for _, l := range lines {
		for _, p := range l.Points {
			if b.empty {
				b = bounds{tMin: p.Time, tMax: p.Time, yMin: p.Value, yMax: p.Value}
				continue
			}
			if p.Time.Before(b.tMin) {
				b.tMin = p.Time
			}
			if p.Time.After(b.tMax) {
				b.tMax = p.Time
			}
			if p.Value < b.yMin {
				b.yMin = p.Value
			}
			if p.Value > b.yMax {
				b.yMax = p.Value
			}
		}
	}
	return b
}

// merge widens b to cover o.
func (b bounds) merge(o bounds) bounds {
	switch {
	case o.empty:
		return b
	case b.empty:
		return o
	}
	if o.tMin.Before(b.tMin) {
		b.tMin = o.tMin
	}
	if o.tMax.After(b.tMax) {
		b.tMax = o.tMax
	}
	if o.yMin < b.yMin {
		b.yMin = o.yMin
	}
	if o.yMax > b.yMax {
		b.yMax = o.yMax
	}
	return b
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[n-1] = hi
	return out
}

// padValues widens a zero-width value range so an axis can be drawn.
func padValues(lo, hi float64) (float64, float64) {
	if lo < hi {
		return lo, hi
	}
	return lo - 1, hi + 1
}

// padTimes widens a zero-width time range by a day on each side.
func padTimes(lo, hi time.Time) (time.Time, time.Time) {
	if lo.Before(hi) {
		return lo, hi
	}
	return lo.Add(-24 * time.Hour), hi.Add(24 * time.Hour)
}

const (
	defaultWidth  = 1200
	defaultHeight = 600
)

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
