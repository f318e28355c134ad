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

	"golang.org/x/sync/errgroup"

	"sydneygo.dev/sydney/pkg/dberr"
)

// InsertCandidate materializes one prepared INSERT per row (spec
// §4.3: "materializes a row tuple per operand row, and issues a
// per-row prepared INSERT"). For a Distribute table the partition
// rule's check expression routes each row to its one cascade; for a
// Replicate table, every row is sent to every cascade.
type InsertCandidate struct {
	Table *Table
	Rows  []Row
}

var _ Candidate = (*InsertCandidate)(nil)

func (c *InsertCandidate) GenerateSQL(env *Environment) ([]Statement, error) {
	t := c.Table
	if len(t.Cascades) == 0 {
		return nil, dberr.BadArgumentf("dplan: table %q has no cascades", t.Name)
	}
	placeholders := make([]string, len(t.Columns))

	var stmts []Statement
	for _, row := range c.Rows {
		targets, err := c.targets(row)
		if err != nil {
			return nil, err
		}
		for _, cascade := range targets {
			var args []interface{}
			for i, col := range t.Columns {
				args = append(args, row[col])
				placeholders[i] = cascade.Dialect.Placeholder(len(args))
			}
			text := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
				t.Name, strings.Join(t.Columns, ", "), strings.Join(placeholders, ", "))
			stmts = append(stmts, Statement{Cascade: cascade, Text: text, Args: args})
		}
	}
	return stmts, nil
}

// targets returns the one cascade a Distribute row routes to, or every
// cascade for a Replicate table.
func (c *InsertCandidate) targets(row Row) ([]Cascade, error) {
	t := c.Table
	if t.Kind == Replicate {
		return t.Cascades, nil
	}
	key, ok := row[t.KeyColumn]
	if !ok {
		return nil, dberr.BadArgumentf("dplan: insert row missing key column %q", t.KeyColumn)
	}
	idx := t.routeRow(key)
	return []Cascade{t.Cascades[idx]}, nil
}

func (c *InsertCandidate) Execute(ctx context.Context, env *Environment) ([]Row, error) {
	stmts, err := c.GenerateSQL(env)
	if err != nil {
		return nil, err
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, st := range stmts {
		st := st
		g.Go(func() error {
			_, err := st.Cascade.Exec.ExecContext(gctx, st.Text, st.Args...)
			return err
		})
	}
	return nil, g.Wait()
}
