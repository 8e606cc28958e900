package chart

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Single is a chart of one characteristic with one line per site.
type Single struct {
	Title  string
	YLabel string
	Lines  []Line

	// Width and Height are in pixels at 96 dpi.
	Width, Height int
}

// RenderSingle draws c in the given format (png, svg, pdf, jpg, ...).
// A chart with no points returns ErrNoData.
func RenderSingle(w io.Writer, format string, c Single) error {
	if extent(c.Lines).empty {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = "Date"
	p.Y.Label.Text = c.YLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Legend.Top = true
	// Header entry with no thumbnail.
	p.Legend.Add("Site")
	p.Add(plotter.NewGrid())

	for i, l := range c.Lines {
		if len(l.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(l.Points))
		for j, pt := range l.Points {
			xys[j].X = float64(pt.Time.Unix())
			xys[j].Y = pt.Value
		}

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return fmt.Errorf("series %s: %w", l.Label, err)
		}
		col := plotutil.Color(i)
		line.Color = col
		points.GlyphStyle.Color = col
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		points.GlyphStyle.Radius = vg.Points(2.5)

		p.Add(line, points)
		p.Legend.Add(l.Label, line, points)
	}

	wt, err := p.WriterTo(pixels(orDefault(c.Width, defaultWidth)), pixels(orDefault(c.Height, defaultHeight)), format)
	if err != nil {
		return fmt.Errorf("create %s writer: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}

// pixels converts a 96 dpi pixel count to a vg length.
func pixels(px int) vg.Length {
	return vg.Length(px) * vg.Inch / 96
}
