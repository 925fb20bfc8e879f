// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchcsv reads matrix-multiplication benchmark results
// written as CSV by the per-language benchmark drivers.
//
// Each implementation writes one file per run into a shared results
// directory, named <prefix>_benchmark_*.csv. A file has a header row
// naming at least the columns algorithm, size, time_ms and memory_mb;
// other columns are ignored.
package benchcsv

import (
	"image/color"
	"regexp"
	"strconv"
)

// An Algorithm names a matrix-multiplication algorithm as it appears
// in the algorithm column of a results file.
type Algorithm string

const (
	Iterative     Algorithm = "Iterative"
	DivideConquer Algorithm = "Divide-Conquer"
	Strassen      Algorithm = "Strassen"

	// Builtin is the optimized library multiply. It is only ever
	// measured by one implementation and is plotted as a reference
	// series, never joined.
	Builtin Algorithm = "Builtin-Reference"
)

// aliases maps alternate spellings found in results files to their
// canonical Algorithm.
var aliases = map[string]Algorithm{
	"Julia-Builtin": Builtin,
}

// canonical returns the Algorithm for a value of the algorithm column.
// Unrecognized names are returned as-is.
func canonical(s string) Algorithm {
	if a, ok := aliases[s]; ok {
		return a
	}
	return Algorithm(s)
}

// A Record is one measured data point: a single algorithm run at a
// single matrix size by one implementation.
type Record struct {
	Algorithm Algorithm
	Size      int     // matrix dimension
	TimeMS    float64 // wall time in milliseconds
	MemoryMB  float64 // memory in megabytes
	Source    string  // implementation label, e.g. "Rust"
}

// A ThreadCount is the number of threads a benchmark run used, or
// UnknownThreads if the results file does not say.
type ThreadCount int

const UnknownThreads ThreadCount = 0

func (t ThreadCount) Known() bool { return t > 0 }

func (t ThreadCount) String() string {
	if !t.Known() {
		return "unknown"
	}
	return strconv.Itoa(int(t))
}

var threadsRE = regexp.MustCompile(`_(\d+)t_`)

// ParseThreadCount extracts the thread count embedded in a results
// file name as _<digits>t_. It returns UnknownThreads if there is none.
func ParseThreadCount(name string) ThreadCount {
	m := threadsRE.FindStringSubmatch(name)
	if m == nil {
		return UnknownThreads
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return UnknownThreads
	}
	return ThreadCount(n)
}

// An Implementation identifies one language's benchmark driver.
type Implementation struct {
	// Name is the label used for the implementation in reports,
	// e.g. "Julia".
	Name string

	// Prefix is the file name prefix the driver writes, e.g.
	// "julia" for julia_benchmark_*.csv.
	Prefix string

	// Color is the color used for the implementation's series in
	// per-algorithm plots. If nil, a default is chosen.
	Color color.Color
}

// Pattern returns the glob pattern matching impl's results files.
func (impl Implementation) Pattern() string {
	return impl.Prefix + "_benchmark_*.csv"
}

// A Dataset is the full set of records read from one results file.
type Dataset struct {
	Source  string // implementation label
	Path    string // file the records were read from
	Threads ThreadCount
	Records []Record
}

// Filter returns the records of d for algorithm alg, in file order.
func (d *Dataset) Filter(alg Algorithm) []Record {
	var out []Record
	for _, r := range d.Records {
		if r.Algorithm == alg {
			out = append(out, r)
		}
	}
	return out
}

// Has reports whether d has at least one record for alg.
func (d *Dataset) Has(alg Algorithm) bool {
	for _, r := range d.Records {
		if r.Algorithm == alg {
			return true
		}
	}
	return false
}
