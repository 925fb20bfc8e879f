// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline loads a pair of benchmark result sets and writes
// the full set of comparison reports for them.
//
// Reports are written in a fixed order: the time and memory plot of
// each algorithm, the two overlays of all algorithms, then the
// comparison table of each algorithm. A failure stops the run; reports
// already written are left in place.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/matbench/matcompare/archive"
	"github.com/matbench/matcompare/benchcsv"
	"github.com/matbench/matcompare/reconcile"
	"github.com/matbench/matcompare/report"
)

// Config configures a Run.
type Config struct {
	// ResultsDir holds the results files of both implementations.
	ResultsDir string
	// OutputDir receives the reports. It must already exist.
	OutputDir string

	// A and B are the implementations being compared. Ratios are
	// A / B.
	A, B benchcsv.Implementation

	// Algorithms are reported on in this order.
	Algorithms []benchcsv.Algorithm
	// Reference is the library baseline drawn on the overlays.
	Reference benchcsv.Algorithm
	// Sequential algorithms run on one thread, so their time plots
	// are not annotated with a thread count.
	Sequential []benchcsv.Algorithm

	Selection benchcsv.Selection

	// Workers is the number of plots rendered at once. Values below
	// 2 render sequentially.
	Workers int

	Options report.Options
	Logger  zerolog.Logger

	// Archive, if non-nil, records the loaded datasets and every
	// comparison table.
	Archive *archive.DB

	// Text, if non-nil, receives a plain text copy of each table.
	Text io.Writer
}

// DefaultConfig returns the configuration for comparing the Julia and
// Rust drivers' results in resultsDir, writing reports to outputDir.
func DefaultConfig(resultsDir, outputDir string) *Config {
	return &Config{
		ResultsDir: resultsDir,
		OutputDir:  outputDir,
		A:          benchcsv.Implementation{Name: "Julia", Prefix: "julia"},
		B:          benchcsv.Implementation{Name: "Rust", Prefix: "rust"},
		Algorithms: []benchcsv.Algorithm{benchcsv.Iterative, benchcsv.DivideConquer, benchcsv.Strassen},
		Reference:  benchcsv.Builtin,
		Sequential: []benchcsv.Algorithm{benchcsv.Iterative},
		Selection:  benchcsv.LatestName,
		Workers:    1,
		Options:    report.DefaultOptions,
		Logger:     zerolog.Nop(),
	}
}

// A Summary describes what a Run produced.
type Summary struct {
	// A and B are the loaded datasets.
	A, B *benchcsv.Dataset

	// Artifacts are the paths of the written reports, in the order
	// they are defined.
	Artifacts []string

	// Skipped lists algorithms with no table because one of the
	// implementations has no measurements for them.
	Skipped []benchcsv.Algorithm

	// Results are the reconciled comparisons that were tabulated.
	Results []reconcile.Result

	// RunID identifies the archived run, if any.
	RunID int64
}

// Run loads both implementations' results and writes every report.
// The returned Summary is non-nil whenever loading succeeded, even if
// a later step failed.
func Run(ctx context.Context, cfg *Config) (*Summary, error) {
	log := cfg.Logger

	fi, err := os.Stat(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("output directory: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("output directory %s is not a directory", cfg.OutputDir)
	}

	a, err := load(cfg, cfg.A)
	if err != nil {
		return nil, err
	}
	b, err := load(cfg, cfg.B)
	if err != nil {
		return nil, err
	}
	sum := &Summary{A: a, B: b}

	if err := renderPlots(ctx, cfg, sum); err != nil {
		return sum, err
	}

	for _, alg := range cfg.Algorithms {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if !a.Has(alg) || !b.Has(alg) {
			log.Warn().Str("algorithm", string(alg)).Msg("no table: algorithm not measured by both implementations")
			sum.Skipped = append(sum.Skipped, alg)
			continue
		}
		res := reconcile.Reconcile(alg, a, b)
		if res.Mismatched() {
			log.Warn().
				Str("algorithm", string(alg)).
				Ints("only_"+a.Source, res.OnlyA).
				Ints("only_"+b.Source, res.OnlyB).
				Msg("sizes without a counterpart left out of table")
		}
		tab := report.NewComparisonTable(res, a.Source, b.Source)
		tab.DPI = cfg.Options.DPI
		path, err := write(cfg, tab)
		if err != nil {
			return sum, err
		}
		sum.Artifacts = append(sum.Artifacts, path)
		sum.Results = append(sum.Results, res)
		if cfg.Text != nil {
			if err := tab.Text(cfg.Text); err != nil {
				return sum, err
			}
			fmt.Fprintln(cfg.Text)
		}
	}

	if cfg.Archive != nil {
		id, err := archiveRun(ctx, cfg.Archive, sum)
		if err != nil {
			return sum, fmt.Errorf("archiving results: %w", err)
		}
		sum.RunID = id
		log.Info().Int64("run", id).Msg("archived")
	}
	return sum, nil
}

func load(cfg *Config, impl benchcsv.Implementation) (*benchcsv.Dataset, error) {
	d, err := benchcsv.Load(cfg.ResultsDir, impl, cfg.Selection)
	if err != nil {
		return nil, fmt.Errorf("loading %s results: %w", impl.Name, err)
	}
	cfg.Logger.Debug().
		Str("implementation", impl.Name).
		Str("file", d.Path).
		Int("records", len(d.Records)).
		Stringer("threads", d.Threads).
		Msg("loaded")
	return d, nil
}

func isSequential(cfg *Config, alg benchcsv.Algorithm) bool {
	for _, s := range cfg.Sequential {
		if s == alg {
			return true
		}
	}
	return false
}

// plots returns the plot renderers in artifact order.
func plots(cfg *Config, a, b *benchcsv.Dataset) []report.Renderer {
	var rs []report.Renderer
	for _, alg := range cfg.Algorithms {
		tp := report.NewTimePlot(alg, a, b, cfg.A.Color, cfg.B.Color)
		if !isSequential(cfg, alg) {
			tp.Threads = a.Threads
		}
		tp.Options = cfg.Options
		mp := report.NewMemoryPlot(alg, a, b, cfg.A.Color, cfg.B.Color)
		mp.Options = cfg.Options
		rs = append(rs, tp, mp)
	}
	for _, m := range []report.Metric{report.Time, report.Memory} {
		ov := report.NewOverlayPlot(m, cfg.Algorithms, cfg.Reference, a, b)
		ov.Options = cfg.Options
		rs = append(rs, ov)
	}
	return rs
}

// renderPlots writes the plots, concurrently if cfg.Workers > 1, and
// appends the written paths to sum in artifact order.
func renderPlots(ctx context.Context, cfg *Config, sum *Summary) error {
	rs := plots(cfg, sum.A, sum.B)
	paths := make([]string, len(rs))

	var err error
	if cfg.Workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Workers)
		for i, r := range rs {
			i, r := i, r
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				p, err := write(cfg, r)
				paths[i] = p
				return err
			})
		}
		err = g.Wait()
	} else {
		for i, r := range rs {
			if err = ctx.Err(); err != nil {
				break
			}
			if paths[i], err = write(cfg, r); err != nil {
				break
			}
		}
	}

	for _, p := range paths {
		if p != "" {
			sum.Artifacts = append(sum.Artifacts, p)
		}
	}
	return err
}

func write(cfg *Config, r report.Renderer) (string, error) {
	path, err := report.Write(cfg.OutputDir, r)
	if err != nil {
		return "", fmt.Errorf("writing %s: %w", r.Artifact(), err)
	}
	cfg.Logger.Info().Str("artifact", path).Msg("saved")
	return path, nil
}

func archiveRun(ctx context.Context, db *archive.DB, sum *Summary) (int64, error) {
	run, err := db.NewRun(ctx, sum.A, sum.B)
	if err != nil {
		return 0, err
	}
	for _, res := range sum.Results {
		if err := run.InsertResult(ctx, res); err != nil {
			return 0, err
		}
	}
	return run.ID, nil
}
