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

// Package catalog models the schema-catalog collaborator: a schema of
// tables, columns, indexes and cascades. The real catalog (persistence,
// DDL, locking) is out of scope; this package is the narrow read-only
// slice the vector file consumes (pkg/dplan and pkg/fulltext do not
// import it).
package catalog

// DataType enumerates the fixed-width scalar types a VectorFile column
// may hold; variable-length fields fail creation.
type DataType int

const (
	Int32 DataType = iota
	Int64
	UInt32
	UInt64
	Float32
	Float64
	FixedString // fixed-length string; Column.Length gives the byte width
	Variable    // any variable-length type; always rejected by vector.Validate
)

// FixedWidth reports whether d has a fixed in-row byte width, i.e.
// whether it's eligible for a VectorFile column.
func (d DataType) FixedWidth() bool { return d != Variable }

// Column describes one field of a table.
type Column struct {
	Name   string
	Type   DataType
	Length int // byte width for FixedString; ignored otherwise
}

// IndexKind distinguishes the logical-file family backing an Index.
type IndexKind int

const (
	IndexBtree IndexKind = iota
	IndexVector
	IndexFullText
)

// Index describes one secondary structure over a Table.
type Index struct {
	Name    string
	Kind    IndexKind
	Columns []string
}

// CascadeDialect selects the SQL dialect spoken by a cascade child
// server; cascades are reached over database/sql.
type CascadeDialect int

const (
	DialectMySQL CascadeDialect = iota
	DialectPostgres
	DialectSQLite
)

// Cascade is one horizontally-partitioned or replicated child server.
type Cascade struct {
	Name    string
	Dialect CascadeDialect
	DSN     string
}

// DistributionKind distinguishes a Distribute table (horizontally
// partitioned) from a Replicate table (every cascade holds a full
// copy).
type DistributionKind int

const (
	Distribute DistributionKind = iota
	Replicate
)

// PartitionRule routes a row to a cascade index for a Distribute table.
// Route must return an index in [0, len(Cascades)).
type PartitionRule struct {
	Expression string // e.g. "hash(key) mod N"; informational only
	Route      func(row []interface{}) int
}

// Table is a relation backed by one or more Cascades.
type Table struct {
	Name     string
	Columns  []Column
	Indexes  []Index
	Kind     DistributionKind
	Cascades []Cascade
	Rule     PartitionRule // meaningful only when Kind == Distribute
	Relocate bool          // whether an UPDATE changing the partition key relocates the row
}

// ColumnIndex returns the position of name in t.Columns, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// IndexFor returns the first Index of the given kind over column, or
// nil.
func (t *Table) IndexFor(kind IndexKind, column string) *Index {
	for i := range t.Indexes {
		idx := &t.Indexes[i]
		if idx.Kind != kind {
			continue
		}
		for _, c := range idx.Columns {
			if c == column {
				return idx
			}
		}
	}
	return nil
}
