// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// A Selection chooses one file when several results files match an
// implementation's pattern.
type Selection int

const (
	// LatestName picks the lexicographically greatest file name.
	// Drivers embed a sortable timestamp in the name, so this is
	// the most recent run.
	LatestName Selection = iota

	// LatestModTime picks the most recently modified file. Ties
	// are broken by LatestName.
	LatestModTime
)

func (s Selection) String() string {
	switch s {
	case LatestName:
		return "name"
	case LatestModTime:
		return "mtime"
	}
	return fmt.Sprintf("Selection(%d)", int(s))
}

// ParseSelection parses the String form of a Selection.
func ParseSelection(s string) (Selection, error) {
	switch s {
	case "name":
		return LatestName, nil
	case "mtime":
		return LatestModTime, nil
	}
	return 0, fmt.Errorf("unknown selection policy %q (want name or mtime)", s)
}

// A MissingInputError reports that no results file for a required
// implementation was found.
type MissingInputError struct {
	Implementation string
	Dir            string
	Pattern        string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("no %s results: nothing matches %s in %s", e.Implementation, e.Pattern, e.Dir)
}

// Select returns the path of the single file in dir matching pattern,
// chosen according to sel. It returns "" if nothing matches.
func Select(dir, pattern string, sel Selection) (string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", nil
	}

	type candidate struct {
		path string
		name string
		mod  int64
	}
	cands := make([]candidate, 0, len(paths))
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return "", err
		}
		if fi.IsDir() {
			continue
		}
		cands = append(cands, candidate{p, filepath.Base(p), fi.ModTime().UnixNano()})
	}
	if len(cands) == 0 {
		return "", nil
	}

	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if sel == LatestModTime && a.mod != b.mod {
			return a.mod > b.mod
		}
		return a.name > b.name
	})
	return cands[0].path, nil
}

// Load selects impl's results file in dir and reads it into a Dataset.
func Load(dir string, impl Implementation, sel Selection) (*Dataset, error) {
	path, err := Select(dir, impl.Pattern(), sel)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, &MissingInputError{impl.Name, dir, impl.Pattern()}
	}
	return LoadFile(path, impl.Name)
}

// LoadFile reads the results file at path, labeling its records with
// source.
func LoadFile(path, source string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	recs, err := NewReader(f, path, source).ReadAll()
	if err != nil {
		return nil, err
	}
	return &Dataset{
		Source:  source,
		Path:    path,
		Threads: ParseThreadCount(filepath.Base(path)),
		Records: recs,
	}, nil
}
