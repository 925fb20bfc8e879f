// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reconcile joins two implementations' benchmark results for
// one algorithm by matrix size and derives speed and memory ratios.
package reconcile

import (
	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-moremath/stats"

	"github.com/matbench/matcompare/benchcsv"
)

// A Row compares the two implementations at one matrix size. A is the
// numerator of both ratios.
type Row struct {
	Size        int
	TimeA       float64
	TimeB       float64
	Speedup     Ratio // TimeA / TimeB
	MemoryA     float64
	MemoryB     float64
	MemoryRatio Ratio // MemoryA / MemoryB
}

// A Result is the reconciliation of one algorithm.
type Result struct {
	Algorithm benchcsv.Algorithm

	// Rows has one entry per size measured by both
	// implementations, in A's order.
	Rows []Row

	// OnlyA and OnlyB are the sizes measured by just one side,
	// ascending. They have no Row.
	OnlyA, OnlyB []int
}

// Mismatched reports whether either side measured sizes the other
// did not.
func (r *Result) Mismatched() bool {
	return len(r.OnlyA) > 0 || len(r.OnlyB) > 0
}

// Reconcile inner-joins the alg records of a and b on size.
//
// If a size appears more than once on one side, its first record is
// used. Reconcile does not modify a or b.
func Reconcile(alg benchcsv.Algorithm, a, b *benchcsv.Dataset) Result {
	ra, rb := a.Filter(alg), b.Filter(alg)

	bySize := make(map[int]benchcsv.Record, len(rb))
	for _, r := range rb {
		if _, dup := bySize[r.Size]; !dup {
			bySize[r.Size] = r
		}
	}

	res := Result{Algorithm: alg}
	seen := make(map[int]bool, len(ra))
	for _, x := range ra {
		if seen[x.Size] {
			continue
		}
		seen[x.Size] = true
		y, ok := bySize[x.Size]
		if !ok {
			res.OnlyA = append(res.OnlyA, x.Size)
			continue
		}
		res.Rows = append(res.Rows, Row{
			Size:        x.Size,
			TimeA:       x.TimeMS,
			TimeB:       y.TimeMS,
			Speedup:     Div(x.TimeMS, y.TimeMS),
			MemoryA:     x.MemoryMB,
			MemoryB:     y.MemoryMB,
			MemoryRatio: Div(x.MemoryMB, y.MemoryMB),
		})
	}
	for _, y := range rb {
		if !seen[y.Size] {
			res.OnlyB = append(res.OnlyB, y.Size)
		}
	}
	res.OnlyA = sortedSizes(res.OnlyA)
	res.OnlyB = sortedSizes(res.OnlyB)
	return res
}

// sortedSizes returns the distinct elements of sizes, ascending.
func sortedSizes(sizes []int) []int {
	if len(sizes) == 0 {
		return nil
	}
	out := slice.Nub(sizes).([]int)
	slice.Sort(out)
	return out
}

// GeoMeanSpeedup returns the geometric mean of the defined, positive
// speedups in r, or Undefined if there are none.
func (r *Result) GeoMeanSpeedup() Ratio {
	return geomean(r.Rows, func(row Row) Ratio { return row.Speedup })
}

// GeoMeanMemoryRatio is like GeoMeanSpeedup for memory ratios.
func (r *Result) GeoMeanMemoryRatio() Ratio {
	return geomean(r.Rows, func(row Row) Ratio { return row.MemoryRatio })
}

func geomean(rows []Row, get func(Row) Ratio) Ratio {
	var xs []float64
	for _, row := range rows {
		if v, ok := get(row).Value(); ok && v > 0 {
			xs = append(xs, v)
		}
	}
	if len(xs) == 0 {
		return Undefined
	}
	return Ratio{stats.GeoMean(xs), true}
}
