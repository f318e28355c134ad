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

	"golang.org/x/sync/errgroup"
)

// DeleteCandidate forwards a DELETE to every cascade a table spans,
// relying on the WHERE clause the same way UpdateCandidate does.
type DeleteCandidate struct {
	Table     *Table
	Predicate Predicate
}

var _ Candidate = (*DeleteCandidate)(nil)

func (c *DeleteCandidate) GenerateSQL(env *Environment) ([]Statement, error) {
	t := c.Table
	var stmts []Statement
	for _, cascade := range t.Cascades {
		var args []interface{}
		text := fmt.Sprintf("DELETE FROM %s", t.Name)
		if c.Predicate != nil {
			text += " WHERE " + c.Predicate.ToSQL(cascade.Dialect, &args)
		}
		stmts = append(stmts, Statement{Cascade: cascade, Text: text, Args: args})
	}
	return stmts, nil
}

func (c *DeleteCandidate) Execute(ctx context.Context, env *Environment) ([]Row, error) {
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
