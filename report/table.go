// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/matbench/matcompare/internal/texttab"
	"github.com/matbench/matcompare/reconcile"
)

// Precision is the number of decimal places shown in tables.
const Precision = 2

// A ComparisonTable tabulates the reconciled rows of one algorithm:
// one line per size measured by both implementations, followed by
// the geometric mean of each ratio.
type ComparisonTable struct {
	Result         reconcile.Result
	LabelA, LabelB string

	// DPI is the resolution of the rendered image. Zero means
	// DefaultOptions.DPI.
	DPI int
}

// NewComparisonTable returns the table of res, labeling columns with
// the implementations' names.
func NewComparisonTable(res reconcile.Result, labelA, labelB string) *ComparisonTable {
	return &ComparisonTable{Result: res, LabelA: labelA, LabelB: labelB}
}

func (t *ComparisonTable) Artifact() string {
	return ArtifactName(t.Result.Algorithm, TableKind)
}

// Title returns the heading drawn above the table.
func (t *ComparisonTable) Title() string {
	return fmt.Sprintf("%s: %s vs %s", t.Result.Algorithm, t.LabelA, t.LabelB)
}

func fixed(v float64) string {
	return strconv.FormatFloat(v, 'f', Precision, 64)
}

// Table lays out the table's cells. Values are rounded here, for
// display only.
func (t *ComparisonTable) Table() *texttab.Table {
	var tab texttab.Table
	tab.Row().
		Cell("Size", texttab.Left).
		Cell(t.LabelA+" (ms)", texttab.Right).
		Cell(t.LabelB+" (ms)", texttab.Right).
		Cell("Speedup", texttab.Right).
		Cell(t.LabelA+" (MB)", texttab.Right).
		Cell(t.LabelB+" (MB)", texttab.Right).
		Cell("Memory ratio", texttab.Right)
	for _, r := range t.Result.Rows {
		tab.Row().
			Cell(strconv.Itoa(r.Size), texttab.Left).
			Cell(fixed(r.TimeA), texttab.Right).
			Cell(fixed(r.TimeB), texttab.Right).
			Cell(r.Speedup.Format(Precision), texttab.Right).
			Cell(fixed(r.MemoryA), texttab.Right).
			Cell(fixed(r.MemoryB), texttab.Right).
			Cell(r.MemoryRatio.Format(Precision), texttab.Right)
	}
	if len(t.Result.Rows) > 1 {
		tab.Row().
			Cell("geomean", texttab.Left).
			Cell("", texttab.Right).
			Cell("", texttab.Right).
			Cell(t.Result.GeoMeanSpeedup().Format(Precision), texttab.Right).
			Cell("", texttab.Right).
			Cell("", texttab.Right).
			Cell(t.Result.GeoMeanMemoryRatio().Format(Precision), texttab.Right)
	}
	return &tab
}

// Notes returns the lines printed under the table: the ratio
// definitions and any sizes that had no counterpart.
func (t *ComparisonTable) Notes() []string {
	notes := []string{fmt.Sprintf("Speedup and memory ratio are %s / %s.", t.LabelA, t.LabelB)}
	only := func(label string, sizes []int) {
		if len(sizes) == 0 {
			return
		}
		s := make([]string, len(sizes))
		for i, n := range sizes {
			s[i] = strconv.Itoa(n)
		}
		notes = append(notes, fmt.Sprintf("Only measured by %s: %s", label, strings.Join(s, ", ")))
	}
	only(t.LabelA, t.Result.OnlyA)
	only(t.LabelB, t.Result.OnlyB)
	return notes
}

// Text writes the table as plain text to w.
func (t *ComparisonTable) Text(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", t.Title()); err != nil {
		return err
	}
	if err := t.Table().Format(w); err != nil {
		return err
	}
	for _, n := range t.Notes() {
		if _, err := fmt.Fprintln(w, n); err != nil {
			return err
		}
	}
	return nil
}

var (
	headerFill = color.NRGBA{0x40, 0x46, 0x6E, 0xFF}
	stripeFill = color.NRGBA{0xF0, 0xF1, 0xF6, 0xFF}
	ruleColor  = color.Gray{0xB0}
)

func (t *ComparisonTable) Render(w io.Writer) error {
	dpi := t.DPI
	if dpi <= 0 {
		dpi = DefaultOptions.DPI
	}
	tab := t.Table()
	notes := t.Notes()

	cellSty := textStyle(11, draw.XLeft, draw.YCenter)
	headSty := cellSty
	headSty.Color = color.White
	titleSty := textStyle(15, draw.XLeft, draw.YCenter)
	noteSty := textStyle(9, draw.XLeft, draw.YCenter)

	ws := tab.Widths(func(s string) float64 { return float64(cellSty.Width(s)) })
	gap := float64(vg.Points(18))
	offs := texttab.Offsets(ws, gap)

	margin := vg.Points(16)
	rowH := cellSty.Height("0") * 1.8
	titleH := titleSty.Height("0") * 2
	noteH := noteSty.Height("0") * 1.5

	tableW := vg.Length(offs[len(ws)]) + vg.Length(gap)
	width := tableW + 2*margin
	if tw := titleSty.Width(t.Title()) + 2*margin; tw > width {
		width = tw
	}
	for _, n := range notes {
		if nw := noteSty.Width(n) + 2*margin; nw > width {
			width = nw
		}
	}
	height := 2*margin + titleH + rowH*vg.Length(tab.Rows()) + noteH*vg.Length(len(notes)) + rowH/2

	c := newCanvas(width, height, dpi)
	dc := draw.New(c)

	left := dc.Min.X + margin
	y := dc.Max.Y - margin
	dc.FillText(titleSty, vg.Point{X: left, Y: y - titleH/2}, t.Title())
	y -= titleH

	rect := func(y0, y1 vg.Length) []vg.Point {
		return []vg.Point{
			{X: left, Y: y0}, {X: left + tableW, Y: y0},
			{X: left + tableW, Y: y1}, {X: left, Y: y1},
		}
	}
	for row := 0; row < tab.Rows(); row++ {
		top := y - rowH*vg.Length(row)
		switch {
		case row == 0:
			dc.FillPolygon(headerFill, rect(top, top-rowH))
		case row%2 == 0:
			dc.FillPolygon(stripeFill, rect(top, top-rowH))
		}
	}
	bottom := y - rowH*vg.Length(tab.Rows())
	rule := draw.LineStyle{Color: ruleColor, Width: vg.Points(0.75)}
	dc.StrokeLine2(rule, left, bottom, left+tableW, bottom)

	pad := vg.Length(gap) / 2
	for _, cell := range tab.Cells() {
		sty := cellSty
		if cell.Row == 0 {
			sty = headSty
		}
		vw := float64(sty.Width(cell.Value))
		x := left + pad + vg.Length(offs[cell.Col]+cell.Align.Offset(vw, ws[cell.Col]))
		cy := y - rowH*vg.Length(cell.Row) - rowH/2
		dc.FillText(sty, vg.Point{X: x, Y: cy}, cell.Value)
	}

	y = bottom - rowH/2
	for _, n := range notes {
		dc.FillText(noteSty, vg.Point{X: left, Y: y - noteH/2}, n)
		y -= noteH
	}

	_, err := vgimg.PngCanvas{Canvas: c}.WriteTo(w)
	return err
}
