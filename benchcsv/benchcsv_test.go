// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseThreadCount(t *testing.T) {
	for _, test := range []struct {
		name string
		want string
	}{
		{"rust_benchmark_8t_20240101.csv", "8"},
		{"rust_benchmark_20240101.csv", "unknown"},
		{"julia_benchmark_16t_2024_01_01.csv", "16"},
		{"julia_benchmark_0t_x.csv", "unknown"},
		{"julia_benchmark_t_x.csv", "unknown"},
		{"julia_benchmark_8t.csv", "unknown"},
	} {
		if got := ParseThreadCount(test.name).String(); got != test.want {
			t.Errorf("ParseThreadCount(%q) = %s, want %s", test.name, got, test.want)
		}
	}
}

func TestReader(t *testing.T) {
	const in = `size,algorithm,time_ms,memory_mb,gflops
64,Iterative,10.5,5,1.2

64,Julia-Builtin,0.25,0.5,9
128, Strassen ,1e2,0,3
`
	got, err := NewReader(strings.NewReader(in), "in.csv", "Julia").ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	want := []Record{
		{Iterative, 64, 10.5, 5, "Julia"},
		{Builtin, 64, 0.25, 0.5, "Julia"},
		{Strassen, 128, 100, 0, "Julia"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records differ (-want +got):\n%s", diff)
	}
}

func TestReaderMalformed(t *testing.T) {
	for _, test := range []struct {
		name   string
		in     string
		line   int
		column string
	}{
		{"badSize", "algorithm,size,time_ms,memory_mb\nIterative,sixty,1,1\n", 2, "size"},
		{"zeroSize", "algorithm,size,time_ms,memory_mb\nIterative,0,1,1\n", 2, "size"},
		{"badTime", "algorithm,size,time_ms,memory_mb\nIterative,64,1,1\nIterative,128,fast,1\n", 3, "time_ms"},
		{"negMemory", "algorithm,size,time_ms,memory_mb\nIterative,64,1,-1\n", 2, "memory_mb"},
		{"shortRow", "algorithm,size,time_ms,memory_mb\nIterative,64,1\n", 2, "memory_mb"},
		{"noHeaderColumn", "algorithm,size,time_ms\nIterative,64,1\n", 1, ""},
		{"empty", "", 0, ""},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewReader(strings.NewReader(test.in), "x.csv", "X").ReadAll()
			var merr *MalformedRowError
			if !errors.As(err, &merr) {
				t.Fatalf("want *MalformedRowError, got %v", err)
			}
			if merr.Line != test.line || merr.Column != test.column {
				t.Errorf("got line %d column %q, want line %d column %q (%v)", merr.Line, merr.Column, test.line, test.column, err)
			}
		})
	}
}

func TestDatasetFilter(t *testing.T) {
	d := &Dataset{Records: []Record{
		{Algorithm: Strassen, Size: 256},
		{Algorithm: Iterative, Size: 128},
		{Algorithm: Strassen, Size: 64},
	}}
	got := d.Filter(Strassen)
	if len(got) != 2 || got[0].Size != 256 || got[1].Size != 64 {
		t.Errorf("Filter(Strassen) = %+v, want sizes [256 64] in file order", got)
	}
	if d.Has(DivideConquer) {
		t.Errorf("Has(DivideConquer) = true, want false")
	}
}

func writeFile(t *testing.T, dir, name, content string, mod time.Time) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	if !mod.IsZero() {
		if err := os.Chtimes(p, mod, mod); err != nil {
			t.Fatal(err)
		}
	}
	return p
}

func TestSelect(t *testing.T) {
	dir := t.TempDir()
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	writeFile(t, dir, "rust_benchmark_4t_20240301.csv", "", old)
	writeFile(t, dir, "rust_benchmark_4t_20240101.csv", "", old.Add(time.Hour))
	writeFile(t, dir, "rust_benchmark_4t_20240201.csv", "", old.Add(time.Hour))
	writeFile(t, dir, "julia_benchmark_4t_20250101.csv", "", old)

	for _, test := range []struct {
		sel  Selection
		want string
	}{
		{LatestName, "rust_benchmark_4t_20240301.csv"},
		// Two files share the newest mtime; the greater name wins.
		{LatestModTime, "rust_benchmark_4t_20240201.csv"},
	} {
		got, err := Select(dir, "rust_benchmark_*.csv", test.sel)
		if err != nil {
			t.Fatal(err)
		}
		if filepath.Base(got) != test.want {
			t.Errorf("Select(%s) = %s, want %s", test.sel, filepath.Base(got), test.want)
		}
	}

	got, err := Select(dir, "go_benchmark_*.csv", LatestName)
	if err != nil || got != "" {
		t.Errorf("Select with no match = %q, %v; want \"\", nil", got, err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rust_benchmark_8t_20240101.csv",
		"algorithm,size,time_ms,memory_mb\nIterative,64,2,1\n", time.Time{})

	rust := Implementation{Name: "Rust", Prefix: "rust"}
	d, err := Load(dir, rust, LatestName)
	if err != nil {
		t.Fatal(err)
	}
	if d.Source != "Rust" || d.Threads != 8 || len(d.Records) != 1 || d.Records[0].Source != "Rust" {
		t.Errorf("Load = %+v", d)
	}

	_, err = Load(dir, Implementation{Name: "Julia", Prefix: "julia"}, LatestName)
	var merr *MissingInputError
	if !errors.As(err, &merr) {
		t.Fatalf("want *MissingInputError, got %v", err)
	}
	if merr.Implementation != "Julia" || merr.Dir != dir || merr.Pattern != "julia_benchmark_*.csv" {
		t.Errorf("MissingInputError = %+v", merr)
	}
}

func TestParseSelection(t *testing.T) {
	for _, s := range []Selection{LatestName, LatestModTime} {
		got, err := ParseSelection(s.String())
		if err != nil || got != s {
			t.Errorf("ParseSelection(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseSelection("first"); err == nil {
		t.Errorf("ParseSelection(\"first\") succeeded")
	}
}
