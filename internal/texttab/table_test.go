// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package texttab

import (
	"strings"
	"testing"
)

func TestAlign(t *testing.T) {
	check := func(a Align, vw, w, want float64) {
		t.Helper()
		if got := a.Offset(vw, w); got != want {
			t.Errorf("%v.Offset(%v, %v) = %v, want %v", a, vw, w, got, want)
		}
	}
	check(Left, 3, 10, 0)
	check(Center, 3, 10, 3.5)
	check(Right, 3, 10, 7)
}

func TestTable(t *testing.T) {
	var tab Table
	check := func(want string) {
		t.Helper()
		var gotBuf strings.Builder
		if err := tab.Format(&gotBuf); err != nil {
			t.Fatal(err)
		}
		if got := gotBuf.String(); want != got {
			t.Errorf("want:\n%sgot:\n%s", want, got)
		}
		tab = Table{}
	}

	tab.Row().Cell("a", Left).Cell("b", Left).Cell("c", Left)
	tab.Row().Cell("d", Left).Cell("e", Left).Cell("f", Left)
	check("a  b  c\nd  e  f\n")

	// Padding, and no trailing spaces.
	tab.Row().Cell("a", Left).Cell("b", Left).Cell("c", Left)
	tab.Row().Cell("long", Left).Cell("e", Left).Cell("long", Left)
	check("a     b  c\nlong  e  long\n")

	// Right alignment, as used for numbers.
	tab.Row().Cell("size", Left).Cell("x", Right)
	tab.Row().Cell("64", Left).Cell("10.00", Right)
	check("size      x\n64    10.00\n")

	// Short rows.
	tab.Row().Cell("a", Left).Cell("b", Left)
	tab.Row().Cell("c", Left)
	check("a  b\nc\n")

	// Empty table.
	check("")
}

func TestWidthsAndOffsets(t *testing.T) {
	var tab Table
	tab.Row().Cell("ab", Left).Cell("c", Left)
	tab.Row().Cell("d", Left).Cell("efgh", Left)
	if tab.Rows() != 2 || tab.Cols() != 2 {
		t.Fatalf("Rows, Cols = %d, %d; want 2, 2", tab.Rows(), tab.Cols())
	}
	ws := tab.Widths(func(s string) float64 { return 10 * float64(len(s)) })
	if ws[0] != 20 || ws[1] != 40 {
		t.Errorf("Widths = %v, want [20 40]", ws)
	}
	offs := Offsets(ws, 5)
	if offs[0] != 0 || offs[1] != 25 || offs[2] != 65 {
		t.Errorf("Offsets = %v, want [0 25 65]", offs)
	}
}
