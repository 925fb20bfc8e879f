// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders benchmark comparisons as PNG artifacts.
//
// Each report kind is a Renderer. Renderers are pure functions of the
// series they were built from; Write persists one into a directory
// under its deterministic artifact name.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matbench/matcompare/benchcsv"
)

// A Renderer produces one artifact.
type Renderer interface {
	// Artifact returns the file name the artifact is written
	// under. It depends only on what is being reported.
	Artifact() string

	// Render writes the artifact's contents to w.
	Render(w io.Writer) error
}

// A Kind is the kind of report, used as the suffix of artifact names.
type Kind string

const (
	TimeKind   Kind = "comparison"
	MemoryKind Kind = "memory"
	TableKind  Kind = "table"
)

// Slug returns alg lower-cased with spaces and hyphens replaced by
// underscores.
func Slug(alg benchcsv.Algorithm) string {
	return strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToLower(string(alg)))
}

// ArtifactName returns the file name of alg's report of kind k.
func ArtifactName(alg benchcsv.Algorithm, k Kind) string {
	return Slug(alg) + "_" + string(k) + ".png"
}

// OverlayName returns the file name of the cross-algorithm report of
// kind k.
func OverlayName(k Kind) string {
	return "all_algorithms_" + string(k) + ".png"
}

// Write renders r into dir and returns the path written.
//
// The artifact is rendered into a temporary file in dir and renamed
// into place, so a failed render never leaves a partial artifact.
func Write(dir string, r Renderer) (string, error) {
	name := r.Artifact()
	path := filepath.Join(dir, name)
	f, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	tmp := f.Name()
	fail := func(err error) (string, error) {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	if err := r.Render(f); err != nil {
		return fail(err)
	}
	if err := f.Chmod(0644); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}
