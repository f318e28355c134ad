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
	"context"
	"fmt"
	"strings"
)

// RetrieveCandidate is a plain SELECT over every cascade a table
// spans, whose rows a Union relation (union.go) merges.
type RetrieveCandidate struct {
	Table     *Table
	Predicate Predicate
	OrderBy   *OrderSpec
	Limit     int
}

var _ Candidate = (*RetrieveCandidate)(nil)

func (c *RetrieveCandidate) GenerateSQL(env *Environment) ([]Statement, error) {
	t := c.Table
	var stmts []Statement
	for _, cascade := range t.Cascades {
		var args []interface{}
		text := fmt.Sprintf("SELECT %s FROM %s", strings.Join(t.Columns, ", "), t.Name)
		if c.Predicate != nil {
			text += " WHERE " + c.Predicate.ToSQL(cascade.Dialect, &args)
		}
		if c.OrderBy != nil {
			dir := "ASC"
			if c.OrderBy.Descending {
				dir = "DESC"
			}
			text += fmt.Sprintf(" ORDER BY %s %s", c.OrderBy.Column, dir)
		}
		if c.Limit > 0 {
			text += fmt.Sprintf(" LIMIT %d", c.Limit)
		}
		stmts = append(stmts, Statement{Cascade: cascade, Text: text, Args: args})
	}
	return stmts, nil
}

func (c *RetrieveCandidate) Execute(ctx context.Context, env *Environment) ([]Row, error) {
	stmts, err := c.GenerateSQL(env)
	if err != nil {
		return nil, err
	}
	var all []Row
	for _, st := range stmts {
		rows, err := queryRows(ctx, st, c.Table.Columns)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
	}
	return all, nil
}

// queryRows runs st and scans every returned row into a Row keyed by
// columns, in order.
func queryRows(ctx context.Context, st Statement, columns []string) ([]Row, error) {
	rows, err := st.Cascade.Exec.QueryContext(ctx, st.Text, st.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
