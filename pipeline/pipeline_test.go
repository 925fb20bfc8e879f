// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	_ "github.com/mattn/go-sqlite3"

	"github.com/matbench/matcompare/archive"
	"github.com/matbench/matcompare/benchcsv"
	"github.com/matbench/matcompare/report"
)

const juliaCSV = `algorithm,size,time_ms,memory_mb,gflops
Iterative,64,10,5,1.2
Iterative,128,80,20,1.1
Divide-Conquer,64,12,6,1.0
Divide-Conquer,128,50,22,1.4
Strassen,64,14,7,0.9
Julia-Builtin,64,0.5,0.1,50
Julia-Builtin,128,2,0.4,60
`

const rustCSV = `algorithm,size,time_ms,memory_mb
Iterative,64,2,1
Iterative,128,40,10
Iterative,256,150,40
Divide-Conquer,64,3,2
Divide-Conquer,128,20,8
`

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o666); err != nil {
			t.Fatal(err)
		}
	}
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	results, out := t.TempDir(), t.TempDir()
	writeFiles(t, results, map[string]string{
		"julia_benchmark_8t_20240101.csv": juliaCSV,
		"rust_benchmark_8t_20240101.csv":  rustCSV,
	})
	cfg := DefaultConfig(results, out)
	cfg.Options = report.Options{Width: 400, Height: 200, DPI: 72}
	return cfg
}

func outputNames(t *testing.T, dir string) []string {
	t.Helper()
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range ents {
		names = append(names, e.Name())
	}
	return names
}

func bases(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

var wantArtifacts = []string{
	"iterative_comparison.png",
	"iterative_memory.png",
	"divide_conquer_comparison.png",
	"divide_conquer_memory.png",
	"strassen_comparison.png",
	"strassen_memory.png",
	"all_algorithms_comparison.png",
	"all_algorithms_memory.png",
	"iterative_table.png",
	"divide_conquer_table.png",
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	var text strings.Builder
	cfg.Text = &text

	sum, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(wantArtifacts, bases(sum.Artifacts)); diff != "" {
		t.Errorf("artifacts (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]benchcsv.Algorithm{benchcsv.Strassen}, sum.Skipped); diff != "" {
		t.Errorf("skipped (-want +got):\n%s", diff)
	}
	if sum.A.Threads != 8 || sum.B.Threads != 8 {
		t.Errorf("threads = %v, %v; want 8, 8", sum.A.Threads, sum.B.Threads)
	}

	want := append([]string(nil), wantArtifacts...)
	sort.Strings(want)
	if diff := cmp.Diff(want, outputNames(t, cfg.OutputDir)); diff != "" {
		t.Errorf("output directory (-want +got):\n%s", diff)
	}

	if len(sum.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(sum.Results))
	}
	it := sum.Results[0]
	if diff := cmp.Diff([]int{256}, it.OnlyB); diff != "" {
		t.Errorf("iterative OnlyB (-want +got):\n%s", diff)
	}
	if v, _ := it.Rows[0].Speedup.Value(); v != 5 {
		t.Errorf("iterative speedup at 64 = %v, want 5", v)
	}
	for _, s := range []string{"Iterative: Julia vs Rust", "Divide-Conquer: Julia vs Rust", "Only measured by Rust: 256"} {
		if !strings.Contains(text.String(), s) {
			t.Errorf("table text missing %q:\n%s", s, text.String())
		}
	}
}

func TestRunIdempotent(t *testing.T) {
	cfg := testConfig(t)
	first, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first.Artifacts, second.Artifacts); diff != "" {
		t.Errorf("second run artifacts differ (-first +second):\n%s", diff)
	}
	if got := len(outputNames(t, cfg.OutputDir)); got != len(wantArtifacts) {
		t.Errorf("output directory has %d files after two runs, want %d", got, len(wantArtifacts))
	}
}

func TestRunParallel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Workers = 4
	sum, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(wantArtifacts, bases(sum.Artifacts)); diff != "" {
		t.Errorf("artifacts (-want +got):\n%s", diff)
	}
}

func TestRunMissingInput(t *testing.T) {
	results, out := t.TempDir(), t.TempDir()
	writeFiles(t, results, map[string]string{"julia_benchmark_20240101.csv": juliaCSV})

	sum, err := Run(context.Background(), DefaultConfig(results, out))
	var missing *benchcsv.MissingInputError
	if !errors.As(err, &missing) {
		t.Fatalf("Run error = %v, want MissingInputError", err)
	}
	if missing.Implementation != "Rust" {
		t.Errorf("missing implementation = %q, want Rust", missing.Implementation)
	}
	if sum != nil {
		t.Errorf("Run returned a summary after failing to load: %+v", sum)
	}
	if names := outputNames(t, out); len(names) != 0 {
		t.Errorf("artifacts written despite missing input: %v", names)
	}
}

func TestRunMalformed(t *testing.T) {
	cfg := testConfig(t)
	writeFiles(t, cfg.ResultsDir, map[string]string{
		"rust_benchmark_8t_20240102.csv": "algorithm,size,time_ms,memory_mb\nIterative,64,fast,1\n",
	})
	_, err := Run(context.Background(), cfg)
	var mal *benchcsv.MalformedRowError
	if !errors.As(err, &mal) {
		t.Fatalf("Run error = %v, want MalformedRowError", err)
	}
	if mal.Line != 2 || mal.Column != "time_ms" {
		t.Errorf("error at line %d column %q, want line 2 column time_ms", mal.Line, mal.Column)
	}
	if names := outputNames(t, cfg.OutputDir); len(names) != 0 {
		t.Errorf("artifacts written despite malformed input: %v", names)
	}
}

func TestRunMissingOutputDir(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputDir = filepath.Join(cfg.OutputDir, "nope")
	if _, err := Run(context.Background(), cfg); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Run error = %v, want not exist", err)
	}
}

func TestRunCanceled(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sum, err := Run(ctx, cfg)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if len(sum.Artifacts) != 0 {
		t.Errorf("canceled run wrote %v", sum.Artifacts)
	}
}

func TestRunArchive(t *testing.T) {
	cfg := testConfig(t)
	db, err := archive.OpenSQL("sqlite3", filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	cfg.Archive = db

	ctx := context.Background()
	sum, err := Run(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if sum.RunID == 0 {
		t.Fatal("no run archived")
	}
	n, err := db.CountRecords(ctx, sum.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if want := len(sum.A.Records) + len(sum.B.Records); n != want {
		t.Errorf("archived %d records, want %d", n, want)
	}
	rows, err := db.Comparisons(ctx, sum.RunID, benchcsv.DivideConquer)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Errorf("archived %d Divide-Conquer rows, want 2", len(rows))
	}
}
