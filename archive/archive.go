// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package archive records benchmark datasets and their reconciled
// comparisons in a SQL database, so runs can be queried later.
package archive

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/matbench/matcompare/benchcsv"
	"github.com/matbench/matcompare/reconcile"
)

// DB is an archive backed by a SQL database. It's safe for concurrent
// use by multiple goroutines.
type DB struct {
	sql *sql.DB

	insertRun        *sql.Stmt
	insertRecord     *sql.Stmt
	insertComparison *sql.Stmt
}

// OpenSQL opens an archive. The parameters are the same as the
// parameters for sql.Open. Only mysql and sqlite3 are explicitly
// supported; other engines receive MySQL syntax.
//
// The caller must import the driver.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if driverName == "sqlite3" {
		// SQLite serializes writers; a single connection also keeps
		// ":memory:" databases from splitting across connections.
		db.SetMaxOpenConns(1)
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// createTmpl is evaluated with . as a map containing one entry whose
// key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Created VARCHAR(64),
	SourceA VARCHAR(255),
	PathA VARCHAR(1024),
	ThreadsA INTEGER,
	SourceB VARCHAR(255),
	PathB VARCHAR(1024),
	ThreadsB INTEGER
);
CREATE TABLE IF NOT EXISTS Records (
	RunID BIGINT UNSIGNED,
	Source VARCHAR(255),
	Seq INTEGER,
	Algorithm VARCHAR(255),
	Size INTEGER,
	TimeMS DOUBLE,
	MemoryMB DOUBLE,
	PRIMARY KEY (RunID, Source, Seq),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS Comparisons (
	RunID BIGINT UNSIGNED,
	Algorithm VARCHAR(255),
	Size INTEGER,
	TimeA DOUBLE,
	TimeB DOUBLE,
	Speedup DOUBLE,
	MemoryA DOUBLE,
	MemoryB DOUBLE,
	MemoryRatio DOUBLE,
	PRIMARY KEY (RunID, Algorithm, Size),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
`))

func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(Created, SourceA, PathA, ThreadsA, SourceB, PathB, ThreadsB) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertRecord, err = db.sql.Prepare("INSERT INTO Records(RunID, Source, Seq, Algorithm, Size, TimeMS, MemoryMB) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertComparison, err = db.sql.Prepare("INSERT INTO Comparisons(RunID, Algorithm, Size, TimeA, TimeB, Speedup, MemoryA, MemoryB, MemoryRatio) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)")
	return err
}

// now is overridden by tests.
var now = time.Now

// A Run is one archived comparison of two datasets.
type Run struct {
	ID int64
	db *DB
}

// NewRun archives the records of a and b under a new run.
func (db *DB) NewRun(ctx context.Context, a, b *benchcsv.Dataset) (run *Run, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	res, err := tx.StmtContext(ctx, db.insertRun).ExecContext(ctx,
		now().UTC().Format(time.RFC3339),
		a.Source, a.Path, int(a.Threads),
		b.Source, b.Path, int(b.Threads))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	ins := tx.StmtContext(ctx, db.insertRecord)
	for _, d := range []*benchcsv.Dataset{a, b} {
		for i, r := range d.Records {
			if _, err := ins.ExecContext(ctx, id, d.Source, i, string(r.Algorithm), r.Size, r.TimeMS, r.MemoryMB); err != nil {
				return nil, err
			}
		}
	}
	return &Run{ID: id, db: db}, nil
}

func nullRatio(r reconcile.Ratio) sql.NullFloat64 {
	v, ok := r.Value()
	return sql.NullFloat64{Float64: v, Valid: ok}
}

// InsertResult archives the rows of res. Undefined ratios are stored
// as NULL.
func (run *Run) InsertResult(ctx context.Context, res reconcile.Result) (err error) {
	tx, err := run.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	ins := tx.StmtContext(ctx, run.db.insertComparison)
	for _, r := range res.Rows {
		if _, err := ins.ExecContext(ctx, run.ID, string(res.Algorithm), r.Size,
			r.TimeA, r.TimeB, nullRatio(r.Speedup),
			r.MemoryA, r.MemoryB, nullRatio(r.MemoryRatio)); err != nil {
			return err
		}
	}
	return nil
}

// Comparisons returns the archived rows of alg in run id, by size.
func (db *DB) Comparisons(ctx context.Context, id int64, alg benchcsv.Algorithm) ([]reconcile.Row, error) {
	rows, err := db.sql.QueryContext(ctx,
		"SELECT Size, TimeA, TimeB, Speedup, MemoryA, MemoryB, MemoryRatio FROM Comparisons WHERE RunID = ? AND Algorithm = ? ORDER BY Size",
		id, string(alg))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []reconcile.Row
	for rows.Next() {
		var r reconcile.Row
		var speedup, memRatio sql.NullFloat64
		if err := rows.Scan(&r.Size, &r.TimeA, &r.TimeB, &speedup, &r.MemoryA, &r.MemoryB, &memRatio); err != nil {
			return nil, err
		}
		r.Speedup = reconcile.Undefined
		if speedup.Valid {
			r.Speedup = reconcile.Div(speedup.Float64, 1)
		}
		r.MemoryRatio = reconcile.Undefined
		if memRatio.Valid {
			r.MemoryRatio = reconcile.Div(memRatio.Float64, 1)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountRecords returns the number of records archived for run id.
func (db *DB) CountRecords(ctx context.Context, id int64) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Records WHERE RunID = ?", id).Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, st := range []*sql.Stmt{db.insertRun, db.insertRecord, db.insertComparison} {
		if st == nil {
			continue
		}
		if err := st.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
