package chart

import (
	"fmt"
	"io"
	"strconv"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// yTicks is the number of labelled ticks on each y axis.
const yTicks = 6

// emptyWindow is the x range drawn when neither axis has data.
var emptyWindow = [2]time.Time{
	time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	time.Date(2000, 12, 31, 0, 0, 0, 0, time.UTC),
}

var palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
	drawing.ColorFromHex("bcbd22"),
	drawing.ColorFromHex("17becf"),
}

// Dual is a chart of two characteristics sharing a time axis, each on its
// own y axis.
type Dual struct {
	Title          string
	PrimaryLabel   string
	SecondaryLabel string
	Primary        []Line
	Secondary      []Line

	Width, Height int
}

// RenderDual draws c as png or svg. Either side may be empty; a chart with
// no lines at all still renders its axes and title.
func RenderDual(w io.Writer, format string, c Dual) error {
	provider, err := rendererFor(format)
	if err != nil {
		return err
	}

	primary := extent(c.Primary)
	secondary := extent(c.Secondary)
	all := primary.merge(secondary)

	tMin, tMax := emptyWindow[0], emptyWindow[1]
	if !all.empty {
		tMin, tMax = padTimes(all.tMin, all.tMax)
	}

	var seriesList []gochart.Series
	color := 0
	for _, l := range c.Primary {
		seriesList = append(seriesList, timeSeries(l, gochart.YAxisPrimary, palette[color%len(palette)], nil))
		color++
	}
	for _, l := range c.Secondary {
		seriesList = append(seriesList, timeSeries(l, gochart.YAxisSecondary, palette[color%len(palette)], []float64{6, 4}))
		color++
	}
	lines := seriesList

	// go-chart refuses to render without a visible series, and only draws
	// the secondary axis when a series is bound to it.
	if primary.empty {
		seriesList = append(seriesList, placeholder(gochart.YAxisPrimary, tMin, tMax))
	}
	if secondary.empty {
		seriesList = append(seriesList, placeholder(gochart.YAxisSecondary, tMin, tMax))
	}

	graph := gochart.Chart{
		Title:  c.Title,
		Width:  orDefault(c.Width, defaultWidth),
		Height: orDefault(c.Height, defaultHeight),
		Background: gochart.Style{
			Padding: gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			Name:           "Date",
			ValueFormatter: gochart.TimeValueFormatterWithFormat("2006-01"),
			Range: &gochart.ContinuousRange{
				Min: float64(tMin.UnixNano()),
				Max: float64(tMax.UnixNano()),
			},
		},
		YAxis:          valueAxis(c.PrimaryLabel, primary),
		YAxisSecondary: valueAxis(c.SecondaryLabel, secondary),
		Series:         seriesList,
	}
	if len(lines) > 0 {
		// The legend lists real lines only, never the placeholders.
		legend := gochart.Chart{Series: lines}
		graph.Elements = []gochart.Renderable{gochart.Legend(&legend)}
	}

	if err := graph.Render(provider, w); err != nil {
		return fmt.Errorf("render dual chart: %w", err)
	}
	return nil
}

func rendererFor(format string) (gochart.RendererProvider, error) {
	switch format {
	case "png":
		return gochart.PNG, nil
	case "svg":
		return gochart.SVG, nil
	default:
		return nil, fmt.Errorf("unsupported dual chart format %q (use png or svg)", format)
	}
}

func timeSeries(l Line, axis gochart.YAxisType, col drawing.Color, dash []float64) gochart.TimeSeries {
	xs := make([]time.Time, len(l.Points))
	ys := make([]float64, len(l.Points))
	for i, p := range l.Points {
		xs[i] = p.Time
		ys[i] = p.Value
	}
	return gochart.TimeSeries{
		Name:  l.Label,
		YAxis: axis,
		Style: gochart.Style{
			StrokeColor:     col,
			StrokeWidth:     2,
			StrokeDashArray: dash,
		},
		XValues: xs,
		YValues: ys,
	}
}

func placeholder(axis gochart.YAxisType, tMin, tMax time.Time) gochart.TimeSeries {
	return gochart.TimeSeries{
		YAxis: axis,
		Style: gochart.Style{
			StrokeColor: drawing.ColorTransparent,
			StrokeWidth: 1,
		},
		XValues: []time.Time{tMin, tMax},
		YValues: []float64{0, 1},
	}
}

// valueAxis builds a y axis with evenly spaced ticks across the data range.
func valueAxis(name string, b bounds) gochart.YAxis {
	lo, hi := 0.0, 1.0
	if !b.empty {
		lo, hi = padValues(b.yMin, b.yMax)
	}

	var ticks []gochart.Tick
	for _, v := range Linspace(lo, hi, yTicks) {
		ticks = append(ticks, gochart.Tick{Value: v, Label: strconv.FormatFloat(v, 'g', 4, 64)})
	}

	return gochart.YAxis{
		Name:  name,
		Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		Ticks: ticks,
	}
}
