// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Matcompare compares the matrix multiplication benchmark results of
// two implementations and writes plots and tables of the comparison.
//
// Usage:
//
//	matcompare [flags] -results dir -out dir
//
// Matcompare reads one results file per implementation from the
// results directory. Files are named <prefix>_benchmark_*.csv and
// contain the columns algorithm, size, time_ms and memory_mb. If
// several files match, the one with the greatest name is used, or
// with -select mtime, the most recently modified one.
//
// For each of the Iterative, Divide-Conquer and Strassen algorithms,
// matcompare writes a time plot (<alg>_comparison.png) and a memory
// plot (<alg>_memory.png). It then writes overlays of all algorithms
// (all_algorithms_comparison.png, all_algorithms_memory.png) and, for
// each algorithm measured by both implementations, a table of the
// sizes they have in common (<alg>_table.png). Tables are also
// printed to standard output.
//
// The -a and -b flags name the implementations as prefix=Name. Ratios
// in the tables are A / B. By default A is julia=Julia and B is
// rust=Rust.
//
// With -archive, the loaded results and every table are also recorded
// in a SQL database. -archive-driver selects sqlite3 (the default) or
// mysql.
//
// Matcompare exits with status 1 if any input is missing or malformed
// or any report cannot be written.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/matbench/matcompare/archive"
	"github.com/matbench/matcompare/benchcsv"
	"github.com/matbench/matcompare/pipeline"
)

// implFlag is a flag.Value holding an Implementation as prefix=Name.
type implFlag struct {
	impl *benchcsv.Implementation
}

func (f implFlag) String() string {
	if f.impl == nil {
		return ""
	}
	return f.impl.Prefix + "=" + f.impl.Name
}

func (f implFlag) Set(s string) error {
	prefix, name, ok := strings.Cut(s, "=")
	if !ok {
		name = prefix
		prefix = strings.ToLower(prefix)
	}
	if prefix == "" || name == "" {
		return fmt.Errorf("want prefix=Name, got %q", s)
	}
	f.impl.Prefix, f.impl.Name = prefix, name
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(2)
		}
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "matcompare: %v\n", err)
	os.Exit(1)
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg := pipeline.DefaultConfig("", "")

	fs := flag.NewFlagSet("matcompare", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: matcompare [flags] -results dir -out dir\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&cfg.ResultsDir, "results", "", "read benchmark results from `dir`")
	fs.StringVar(&cfg.OutputDir, "out", "", "write reports to `dir`, which must exist")
	fs.Var(implFlag{&cfg.A}, "a", "first implementation as `prefix=Name`")
	fs.Var(implFlag{&cfg.B}, "b", "second implementation as `prefix=Name`")
	sel := fs.String("select", cfg.Selection.String(), "pick the latest results file by `name` or mtime")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "render up to `n` plots at once")
	driver := fs.String("archive-driver", "sqlite3", "database `driver` for -archive (sqlite3 or mysql)")
	dsn := fs.String("archive", "", "also record results in the database at `dsn`")
	verbose := fs.Bool("v", false, "print debug log messages")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if cfg.ResultsDir == "" || cfg.OutputDir == "" {
		fs.Usage()
		return fmt.Errorf("-results and -out are required")
	}

	var err error
	if cfg.Selection, err = benchcsv.ParseSelection(*sel); err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	cfg.Logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()
	cfg.Text = stdout

	if *dsn != "" {
		db, err := archive.OpenSQL(*driver, *dsn)
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer db.Close()
		cfg.Archive = db
	}

	sum, err := pipeline.Run(context.Background(), cfg)
	if err != nil {
		return err
	}
	cfg.Logger.Info().Int("artifacts", len(sum.Artifacts)).Str("dir", cfg.OutputDir).Msg("done")
	return nil
}
