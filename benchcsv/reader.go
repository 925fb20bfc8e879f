// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// A Reader reads benchmark records from a CSV results file.
//
// Its API is modeled on bufio.Scanner.
type Reader struct {
	cr       *csv.Reader
	fileName string
	source   string

	// cols maps each required column to its index in a row. It is
	// nil until the header has been read.
	cols map[string]int

	line   int
	record Record
	err    error
}

// Required column names.
const (
	colAlgorithm = "algorithm"
	colSize      = "size"
	colTime      = "time_ms"
	colMemory    = "memory_mb"
)

var requiredCols = []string{colAlgorithm, colSize, colTime, colMemory}

// A MalformedRowError reports a row of a results file that could not
// be turned into a Record.
type MalformedRowError struct {
	FileName string
	Line     int
	Column   string // offending column, if any
	Value    string // offending value, if any
	Msg      string
}

func (e *MalformedRowError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *MalformedRowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s:%d: column %s: %s %q", e.FileName, e.Line, e.Column, e.Msg, e.Value)
}

// NewReader returns a Reader that reads records from r. fileName is
// used in error messages and source labels every record read.
func NewReader(r io.Reader, fileName, source string) *Reader {
	if fileName == "" {
		fileName = "<unknown>"
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &Reader{cr: cr, fileName: fileName, source: source}
}

func (r *Reader) malformed(col, val, msg string) *MalformedRowError {
	return &MalformedRowError{r.fileName, r.line, col, val, msg}
}

// Scan advances to the next record and reports whether one was read.
// When Scan returns false, Err reports whether it stopped because of
// an error or because it reached the end of input.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for {
		row, err := r.cr.Read()
		if err == io.EOF {
			if r.cols == nil {
				r.err = r.malformed("", "", "missing header row")
			}
			return false
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				r.err = &MalformedRowError{FileName: r.fileName, Line: perr.Line, Msg: perr.Err.Error()}
			} else {
				r.err = err
			}
			return false
		}
		r.line, _ = r.cr.FieldPos(0)
		if isBlank(row) {
			continue
		}
		if r.cols == nil {
			if r.err = r.readHeader(row); r.err != nil {
				return false
			}
			continue
		}
		if r.err = r.parseRow(row); r.err != nil {
			return false
		}
		return true
	}
}

func isBlank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func (r *Reader) readHeader(row []string) error {
	cols := make(map[string]int)
	for i, name := range row {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	for _, c := range requiredCols {
		if _, ok := cols[c]; !ok {
			return r.malformed("", "", "header is missing required column "+c)
		}
	}
	r.cols = cols
	return nil
}

func (r *Reader) field(row []string, col string) (string, error) {
	i := r.cols[col]
	if i >= len(row) {
		return "", r.malformed(col, "", "missing value")
	}
	return strings.TrimSpace(row[i]), nil
}

func (r *Reader) parseRow(row []string) error {
	alg, err := r.field(row, colAlgorithm)
	if err != nil {
		return err
	}
	if alg == "" {
		return r.malformed(colAlgorithm, alg, "empty algorithm")
	}

	sizeStr, err := r.field(row, colSize)
	if err != nil {
		return err
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		return r.malformed(colSize, sizeStr, "non-integer size")
	}
	if size <= 0 {
		return r.malformed(colSize, sizeStr, "non-positive size")
	}

	parse := func(col string) (float64, error) {
		s, err := r.field(row, col)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, r.malformed(col, s, "non-numeric value")
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, r.malformed(col, s, "negative or non-finite value")
		}
		return v, nil
	}
	t, err := parse(colTime)
	if err != nil {
		return err
	}
	m, err := parse(colMemory)
	if err != nil {
		return err
	}

	r.record = Record{
		Algorithm: canonical(alg),
		Size:      size,
		TimeMS:    t,
		MemoryMB:  m,
		Source:    r.source,
	}
	return nil
}

// Record returns the record read by the last call to Scan.
func (r *Reader) Record() Record {
	return r.record
}

// Err returns the error that stopped Scan, if any. A clean end of
// input is not an error.
func (r *Reader) Err() error {
	return r.err
}

// ReadAll reads every record from r.
func (r *Reader) ReadAll() ([]Record, error) {
	var recs []Record
	for r.Scan() {
		recs = append(recs, r.Record())
	}
	return recs, r.Err()
}
