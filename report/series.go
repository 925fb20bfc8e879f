// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"image/color"

	"github.com/aclements/go-gg/generic/slice"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matbench/matcompare/benchcsv"
)

// A Metric is the measured quantity plotted on the Y axis.
type Metric int

const (
	Time Metric = iota
	Memory
)

// Value returns r's measurement of m.
func (m Metric) Value(r benchcsv.Record) float64 {
	if m == Memory {
		return r.MemoryMB
	}
	return r.TimeMS
}

// Kind returns the artifact kind of m's plots.
func (m Metric) Kind() Kind {
	if m == Memory {
		return MemoryKind
	}
	return TimeKind
}

func (m Metric) axisLabel() string {
	if m == Memory {
		return "Memory (MB)"
	}
	return "Time (ms)"
}

func (m Metric) paneTitle(log bool) string {
	name := "Execution Time"
	if m == Memory {
		name = "Memory Usage"
	}
	if log {
		return name + " (Log Scale)"
	}
	return name + " (Linear Scale)"
}

func (m Metric) String() string {
	if m == Memory {
		return "memory"
	}
	return "time"
}

// A Series is one line on a plot: a metric against matrix size.
type Series struct {
	Label  string
	Points plotter.XYs
	Color  color.Color
	Shape  draw.GlyphDrawer
	Dashed bool
}

// NewSeries returns the series of m against size for recs, in record
// order.
func NewSeries(label string, recs []benchcsv.Record, m Metric) Series {
	pts := make(plotter.XYs, len(recs))
	for i, r := range recs {
		pts[i].X = float64(r.Size)
		pts[i].Y = m.Value(r)
	}
	return Series{Label: label, Points: pts}
}

// sizes returns the distinct matrix sizes of recs, ascending.
func sizes(recs []benchcsv.Record) []int {
	out := make([]int, len(recs))
	for i, r := range recs {
		out[i] = r.Size
	}
	return sortedUnion(out)
}

// sortedUnion returns the distinct elements of all lists, ascending.
func sortedUnion(lists ...[]int) []int {
	if len(lists) == 0 {
		return nil
	}
	vs := make([]slice.T, len(lists))
	for i, l := range lists {
		if l == nil {
			l = []int{}
		}
		vs[i] = l
	}
	out := slice.NubAppend(vs...).([]int)
	slice.Sort(out)
	return out
}

// Default series colors, one per implementation.
var (
	colorA = color.NRGBA{0x95, 0x58, 0xB2, 0xFF}
	colorB = color.NRGBA{0xCE, 0x42, 0x2B, 0xFF}

	referenceColor = color.NRGBA{0x00, 0x80, 0x00, 0xFF}
)

// styleFor fills in the default style of an implementation's series.
// side is 0 for A and 1 for B.
func styleFor(s *Series, side int, clr color.Color) {
	if clr == nil {
		clr = colorA
		if side == 1 {
			clr = colorB
		}
	}
	s.Color = clr
	if side == 0 {
		s.Shape = draw.CircleGlyph{}
	} else {
		s.Shape = draw.BoxGlyph{}
	}
}

func seriesLabel(source string, alg benchcsv.Algorithm) string {
	return fmt.Sprintf("%s %s", source, alg)
}
