// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out tables of short strings in aligned
// columns. A Table can be printed as text or measured with an
// arbitrary width function and drawn elsewhere.
package texttab

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"
)

// Table accumulates cells row by row.
//
// Many of its methods return the Table so callers can chain them.
type Table struct {
	cells []Cell
	cols  int
	rows  int

	curRow, curCol int
}

// A Cell is one laid-out table entry.
type Cell struct {
	Row, Col int
	Value    string
	Align    Align
}

// Align is the horizontal alignment of a cell within its column.
type Align int

const (
	Left Align = iota
	Center
	Right
)

// Offset returns how far from the left edge of a column of width w
// a value of width vw starts.
func (a Align) Offset(vw, w float64) float64 {
	switch a {
	case Center:
		return (w - vw) / 2
	case Right:
		return w - vw
	}
	return 0
}

// Row starts a new row.
func (t *Table) Row() *Table {
	if t.rows > 0 {
		t.curRow++
	}
	t.rows = t.curRow + 1
	t.curCol = 0
	return t
}

// Cell adds a cell at the current row and column and advances to the
// next column.
func (t *Table) Cell(value string, a Align) *Table {
	if t.rows == 0 {
		t.Row()
	}
	t.cells = append(t.cells, Cell{t.curRow, t.curCol, value, a})
	t.curCol++
	if t.curCol > t.cols {
		t.cols = t.curCol
	}
	return t
}

// Rows returns the number of rows in t.
func (t *Table) Rows() int { return t.rows }

// Cols returns the number of columns in t.
func (t *Table) Cols() int { return t.cols }

// Cells returns t's cells in top-to-bottom, left-to-right order.
func (t *Table) Cells() []Cell {
	out := append([]Cell(nil), t.cells...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Widths returns the width of each column: the widest value in it
// according to measure.
func (t *Table) Widths(measure func(string) float64) []float64 {
	ws := make([]float64, t.cols)
	for _, c := range t.cells {
		if w := measure(c.Value); w > ws[c.Col] {
			ws[c.Col] = w
		}
	}
	return ws
}

// Offsets converts column widths into starting offsets, separating
// columns by gap. The final element is the total width.
func Offsets(widths []float64, gap float64) []float64 {
	offs := make([]float64, len(widths)+1)
	off := 0.0
	for i, w := range widths {
		if i > 0 {
			off += gap
		}
		offs[i] = off
		off += w
	}
	offs[len(widths)] = off
	return offs
}

func runeWidth(s string) float64 { return float64(utf8.RuneCountInString(s)) }

// Format lays out t as text with columns separated by two spaces and
// writes it to w. Trailing spaces are omitted.
func (t *Table) Format(w io.Writer) error {
	ws := t.Widths(runeWidth)
	offs := Offsets(ws, 2)

	var line strings.Builder
	flush := func() error {
		_, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
		line.Reset()
		return err
	}
	row := 0
	for _, c := range t.Cells() {
		for c.Row > row {
			if err := flush(); err != nil {
				return err
			}
			row++
		}
		start := int(offs[c.Col] + c.Align.Offset(runeWidth(c.Value), ws[c.Col]))
		if pad := start - utf8.RuneCountInString(line.String()); pad > 0 {
			line.WriteString(strings.Repeat(" ", pad))
		}
		line.WriteString(c.Value)
	}
	if len(t.cells) > 0 {
		return flush()
	}
	return nil
}
