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

package dplan

import "fmt"

// Dialect selects the placeholder style and driver a cascade speaks.
type Dialect int

const (
	MySQL Dialect = iota
	Postgres
	SQLite
)

func (d Dialect) String() string {
	switch d {
	case MySQL:
		return "mysql"
	case Postgres:
		return "postgres"
	case SQLite:
		return "sqlite"
	default:
		return "unknown"
	}
}

// DriverName returns the database/sql driver name registered for d by
// this package's blank imports (go-sql-driver/mysql, lib/pq,
// modernc.org/sqlite).
func (d Dialect) DriverName() string {
	switch d {
	case MySQL:
		return "mysql"
	case Postgres:
		return "postgres"
	case SQLite:
		return "sqlite"
	default:
		return ""
	}
}

// Placeholder returns the nth (1-based) bind-parameter placeholder in
// d's style: "?" for MySQL/SQLite, "$n" for Postgres.
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Statement is a fully rendered SQL text plus its positional bind
// arguments, ready to hand to database/sql.
type Statement struct {
	Cascade Cascade
	Text    string
	Args    []interface{}
}
