/*
Copyright 2026 The Sydney-Go Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// This file registers the real database/sql drivers a Cascade can
// speak, the same way Perkeep's indexer packages (mysqlindexer,
// index/mysql, index/postgres, sorted/sqlite) blank-import a driver to
// register it with database/sql rather than calling into it directly.
package dplan

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Executor is the subset of *sql.DB (and *sql.Tx) a Cascade needs;
// *sql.DB satisfies it without any adapter, and tests substitute a
// recording fake.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// Cascade is one horizontally-partitioned or replicated child database
// node (spec GLOSSARY).
type Cascade struct {
	ID      int
	Dialect Dialect
	Exec    Executor
}

// Open opens a *sql.DB for dialect against dsn and wraps it as a
// Cascade; callers that already have a live connection (or a test
// fake) construct Cascade directly instead.
func Open(id int, dialect Dialect, dsn string) (Cascade, error) {
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return Cascade{}, err
	}
	return Cascade{ID: id, Dialect: dialect, Exec: db}, nil
}
