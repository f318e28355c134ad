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

import (
	"fmt"
	"strings"
)

// ComparePredicate is a Scalar op Scalar predicate, e.g. "key = ?".
type ComparePredicate struct {
	Op          string
	Left, Right Scalar
}

func (p ComparePredicate) ToSQL(dialect Dialect, args *[]interface{}) string {
	return fmt.Sprintf("%s %s %s", p.Left.ToSQL(dialect, args), p.Op, p.Right.ToSQL(dialect, args))
}

// AndPredicate requires every operand to hold.
type AndPredicate struct{ Operands []Predicate }

func (p AndPredicate) ToSQL(dialect Dialect, args *[]interface{}) string {
	parts := make([]string, len(p.Operands))
	for i, o := range p.Operands {
		parts[i] = "(" + o.ToSQL(dialect, args) + ")"
	}
	return strings.Join(parts, " AND ")
}

// NeighborHint marks an InValueList as an approximate ("#Neighbor")
// match candidate rather than an exact one.
type NeighborHint struct {
	// Limit bounds how many approximate neighbors to accept; 0 means
	// the backend's own default.
	Limit int
}

// InSubquery is the IN predicate's subquery back-end: "col IN (SELECT
// ...)", one of three back-ends IN can compile to alongside
// InValueList and InVariableArray.
type InSubquery struct {
	Column   Scalar
	Subquery string
}

func (p InSubquery) ToSQL(dialect Dialect, args *[]interface{}) string {
	return fmt.Sprintf("%s IN (%s)", p.Column.ToSQL(dialect, args), p.Subquery)
}

// InValueList is the IN predicate's literal value-list back-end:
// "col IN (?, ?, ...)". An optional Neighbor hint requests approximate
// matching instead of an exact set membership test; this package
// renders it as a comment the cascade's own query planner can act on,
// since approximate-match execution itself lives in the cascade, not
// here.
type InValueList struct {
	Column   Scalar
	Values   []interface{}
	Neighbor *NeighborHint
}

func (p InValueList) ToSQL(dialect Dialect, args *[]interface{}) string {
	placeholders := make([]string, len(p.Values))
	for i, v := range p.Values {
		*args = append(*args, v)
		placeholders[i] = dialect.Placeholder(len(*args))
	}
	sql := fmt.Sprintf("%s IN (%s)", p.Column.ToSQL(dialect, args), strings.Join(placeholders, ", "))
	if p.Neighbor != nil {
		sql += fmt.Sprintf(" /* #Neighbor limit=%d */", p.Neighbor.Limit)
	}
	return sql
}

// InVariableArray is the IN predicate's variable-array back-end: the
// candidate set is itself a bound array parameter rather than a
// flattened value list, for dialects (e.g. Postgres) with native array
// binding. Dialects without array binding fall back to InValueList's
// rendering.
type InVariableArray struct {
	Column Scalar
	Values []interface{}
}

func (p InVariableArray) ToSQL(dialect Dialect, args *[]interface{}) string {
	if dialect != Postgres {
		return InValueList{Column: p.Column, Values: p.Values}.ToSQL(dialect, args)
	}
	col := p.Column.ToSQL(dialect, args)
	*args = append(*args, p.Values)
	return fmt.Sprintf("%s = ANY(%s)", col, dialect.Placeholder(len(*args)))
}
