// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matbench/matcompare/benchcsv"
)

// An AlgorithmPlot compares two implementations of one algorithm on
// one metric, with a linear pane and a log-log pane. It plots each
// implementation's raw measurements, so the two need not share every
// size.
type AlgorithmPlot struct {
	Algorithm benchcsv.Algorithm
	Metric    Metric
	A, B      Series

	// Threads, if known, is noted in the title of time plots.
	Threads benchcsv.ThreadCount

	// Ticks are the X axis tick positions.
	Ticks []int

	Options Options
}

// NewAlgorithmPlot returns the plot of metric m for alg in a and b.
// Series colors come from colorA and colorB, or defaults if nil.
func NewAlgorithmPlot(m Metric, alg benchcsv.Algorithm, a, b *benchcsv.Dataset, colorA, colorB color.Color) *AlgorithmPlot {
	ra, rb := a.Filter(alg), b.Filter(alg)
	p := &AlgorithmPlot{
		Algorithm: alg,
		Metric:    m,
		A:         NewSeries(a.Source, ra, m),
		B:         NewSeries(b.Source, rb, m),
		Ticks:     sizes(ra),
	}
	if len(p.Ticks) == 0 {
		p.Ticks = sizes(rb)
	}
	styleFor(&p.A, 0, colorA)
	styleFor(&p.B, 1, colorB)
	return p
}

// NewTimePlot returns the time plot of alg.
func NewTimePlot(alg benchcsv.Algorithm, a, b *benchcsv.Dataset, colorA, colorB color.Color) *AlgorithmPlot {
	return NewAlgorithmPlot(Time, alg, a, b, colorA, colorB)
}

// NewMemoryPlot returns the memory plot of alg.
func NewMemoryPlot(alg benchcsv.Algorithm, a, b *benchcsv.Dataset, colorA, colorB color.Color) *AlgorithmPlot {
	return NewAlgorithmPlot(Memory, alg, a, b, colorA, colorB)
}

func (p *AlgorithmPlot) Artifact() string {
	return ArtifactName(p.Algorithm, p.Metric.Kind())
}

// Title returns the figure title.
func (p *AlgorithmPlot) Title() string {
	if p.Metric == Time && p.Threads.Known() {
		return fmt.Sprintf("%s algorithm (%s threads)", p.Algorithm, p.Threads)
	}
	return fmt.Sprintf("%s algorithm", p.Algorithm)
}

func (p *AlgorithmPlot) Render(w io.Writer) error {
	series := []Series{p.A, p.B}
	lin, err := newPane(p.Metric, false, series, p.Ticks, 11)
	if err != nil {
		return err
	}
	lg, err := newPane(p.Metric, true, series, p.Ticks, 11)
	if err != nil {
		return err
	}
	return writeFigure(w, p.Options, p.Title(), lin, lg)
}

// An OverlayPlot puts every algorithm's series for both
// implementations, plus the reference series, on one pair of panes.
type OverlayPlot struct {
	Metric Metric
	Series []Series

	// Reference is the library baseline. It has no counterpart in
	// the other implementation and is plotted over its own sizes.
	Reference *Series

	Ticks   []int
	Options Options
}

// NewOverlayPlot returns the overlay of m for algs in a and b. The
// ref algorithm's records, from whichever dataset has them, form the
// reference series.
func NewOverlayPlot(m Metric, algs []benchcsv.Algorithm, ref benchcsv.Algorithm, a, b *benchcsv.Dataset) *OverlayPlot {
	p := &OverlayPlot{Metric: m}
	colors := algorithmColors(len(algs))
	var tickSets [][]int
	for i, alg := range algs {
		for side, d := range []*benchcsv.Dataset{a, b} {
			recs := d.Filter(alg)
			s := NewSeries(seriesLabel(d.Source, alg), recs, m)
			s.Color = colors[i]
			if side == 0 {
				s.Shape = draw.CircleGlyph{}
			} else {
				s.Shape = draw.BoxGlyph{}
				s.Dashed = true
			}
			p.Series = append(p.Series, s)
			tickSets = append(tickSets, sizes(recs))
		}
	}
	for _, d := range []*benchcsv.Dataset{a, b} {
		if recs := d.Filter(ref); len(recs) > 0 {
			s := NewSeries(fmt.Sprintf("%s builtin (reference)", d.Source), recs, m)
			s.Color = referenceColor
			s.Shape = draw.TriangleGlyph{}
			p.Reference = &s
			tickSets = append(tickSets, sizes(recs))
			break
		}
	}
	p.Ticks = sortedUnion(tickSets...)
	return p
}

// algorithmColors returns n distinguishable colors.
func algorithmColors(n int) []color.Color {
	k := n
	if k < 3 {
		k = 3
	}
	if k <= 8 {
		if pal, err := brewer.GetPalette(brewer.TypeQualitative, "Dark2", k); err == nil {
			return pal.Colors()[:n]
		}
	}
	cs := make([]color.Color, n)
	for i := range cs {
		cs[i] = plotter.DefaultLineStyle.Color
	}
	return cs
}

func (p *OverlayPlot) Artifact() string {
	return OverlayName(p.Metric.Kind())
}

// Title returns the figure title.
func (p *OverlayPlot) Title() string {
	if p.Metric == Memory {
		return "All Algorithms Memory Usage"
	}
	return "All Algorithms Comparison"
}

func (p *OverlayPlot) Render(w io.Writer) error {
	series := p.Series
	if p.Reference != nil {
		series = append(append([]Series(nil), series...), *p.Reference)
	}
	lin, err := newPane(p.Metric, false, series, p.Ticks, 9)
	if err != nil {
		return err
	}
	lg, err := newPane(p.Metric, true, series, p.Ticks, 9)
	if err != nil {
		return err
	}
	return writeFigure(w, p.Options, p.Title(), lin, lg)
}
