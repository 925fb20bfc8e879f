// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Options controls the size of rendered figures.
type Options struct {
	Width, Height vg.Length
	DPI           int
}

// DefaultOptions is a 16x6 inch figure at 150 dpi.
var DefaultOptions = Options{Width: 16 * vg.Inch, Height: 6 * vg.Inch, DPI: 150}

func (o Options) orDefault() Options {
	if o.Width <= 0 || o.Height <= 0 {
		o.Width, o.Height = DefaultOptions.Width, DefaultOptions.Height
	}
	if o.DPI <= 0 {
		o.DPI = DefaultOptions.DPI
	}
	return o
}

const (
	lineWidth   = 2
	glyphRadius = 3
)

// newPane returns a plot of series against matrix size. If log is
// set, both axes use a log scale and non-positive points are left
// out; a log pane with no positive data falls back to linear axes.
// ticks, if non-empty, fixes the X axis tick positions.
func newPane(m Metric, log bool, series []Series, ticks []int, legendSize vg.Length) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = m.paneTitle(log)
	p.Title.TextStyle.Font.Size = 14
	p.X.Label.Text = "Matrix Size"
	p.Y.Label.Text = m.axisLabel()
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.TextStyle.Font.Size = legendSize

	grid := plotter.NewGrid()
	grid.Vertical.Color = color.Gray{0xD8}
	grid.Horizontal.Color = color.Gray{0xD8}
	p.Add(grid)

	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		pts := s.Points
		if log {
			pts = positive(pts)
		}
		if len(pts) == 0 {
			continue
		}
		l, sc, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", s.Label, err)
		}
		l.Color = s.Color
		l.Width = vg.Points(lineWidth)
		if s.Dashed {
			l.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		}
		sc.GlyphStyle.Color = s.Color
		sc.GlyphStyle.Radius = vg.Points(glyphRadius)
		if s.Shape != nil {
			sc.GlyphStyle.Shape = s.Shape
		}
		p.Add(l, sc)
		p.Legend.Add(s.Label, l, sc)

		for _, pt := range pts {
			xmin, xmax = math.Min(xmin, pt.X), math.Max(xmax, pt.X)
			ymin, ymax = math.Min(ymin, pt.Y), math.Max(ymax, pt.Y)
		}
	}

	if log && !math.IsInf(xmin, 0) {
		p.X.Scale = plot.LogScale{}
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{}
		p.X.Tick.Marker = plot.LogTicks{}
		// A single distinct value would otherwise be widened
		// to a range that includes zero.
		if xmin == xmax {
			p.X.Min, p.X.Max = xmin/2, xmax*2
		}
		if ymin == ymax {
			p.Y.Min, p.Y.Max = ymin/2, ymax*2
		}
	}
	if len(ticks) > 0 {
		var ts []plot.Tick
		for _, t := range ticks {
			if log && t <= 0 {
				continue
			}
			ts = append(ts, plot.Tick{Value: float64(t), Label: strconv.Itoa(t)})
		}
		p.X.Tick.Marker = plot.ConstantTicks(ts)
	}
	return p, nil
}

func positive(pts plotter.XYs) plotter.XYs {
	out := make(plotter.XYs, 0, len(pts))
	for _, pt := range pts {
		if pt.X > 0 && pt.Y > 0 {
			out = append(out, pt)
		}
	}
	return out
}

// textStyle returns the default plot text style at the given size
// and alignment.
func textStyle(size vg.Length, x text.XAlignment, y text.YAlignment) text.Style {
	sty := plot.New().Title.TextStyle
	sty.Font.Size = size
	sty.XAlign = x
	sty.YAlign = y
	return sty
}

// newCanvas returns a white image canvas of the given size.
func newCanvas(w, h vg.Length, dpi int) *vgimg.Canvas {
	return vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))
}

// writeFigure draws panes side by side beneath title and writes the
// result to w as PNG.
func writeFigure(w io.Writer, o Options, title string, panes ...*plot.Plot) error {
	o = o.orDefault()
	c := newCanvas(o.Width, o.Height, o.DPI)
	dc := draw.New(c)

	sty := textStyle(20, draw.XCenter, draw.YTop)
	pad := vg.Points(8)
	dc.FillText(sty, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - pad}, title)
	body := draw.Crop(dc, 0, 0, 0, -(sty.Height(title) + 2*pad))

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(panes),
		PadX:      vg.Centimeter,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(8),
		PadLeft:   vg.Points(8),
		PadRight:  vg.Points(12),
	}
	canvases := plot.Align([][]*plot.Plot{panes}, tiles, body)
	for j, p := range panes {
		p.Draw(canvases[0][j])
	}

	_, err := vgimg.PngCanvas{Canvas: c}.WriteTo(w)
	return err
}
