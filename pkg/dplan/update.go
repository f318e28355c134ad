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
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"sydneygo.dev/sydney/pkg/dberr"
)

// UpdateCandidate forwards an UPDATE to every cascade a table spans
// and relies on the WHERE clause to filter which rows each cascade
// actually touches.
//
// If NewKey is set and Table.RelocateUpdate is true, the key column is
// changing and the row may need to move to a different cascade: the
// update is instead planned as a DELETE sent to every cascade followed
// by an INSERT on the cascade the new key routes to. That pair is not
// transactional across the cascades — see DESIGN.md. If NewKey is set
// on a Distribute table without RelocateUpdate, the update is rejected
// with dberr.ErrNotSupported.
type UpdateCandidate struct {
	Table     *Table
	Predicate Predicate
	Set       Row
	// Row is only used when Table.RelocateUpdate applies: it is the full
	// post-update row (for the re-INSERT). NewKey is its new key value
	// (for routing); a non-nil NewKey marks the update as key-changing.
	Row    Row
	NewKey interface{}
}

var _ Candidate = (*UpdateCandidate)(nil)

func (c *UpdateCandidate) GenerateSQL(env *Environment) ([]Statement, error) {
	if c.Table.RelocateUpdate && c.NewKey != nil {
		return c.relocateSQL(env)
	}
	if c.NewKey != nil && c.Table.Kind == Distribute {
		return nil, dberr.NotSupportedf("dplan: key-changing UPDATE on distribute table %s requires RelocateUpdate", c.Table.Name)
	}
	t := c.Table
	cols := make([]string, 0, len(c.Set))
	for col := range c.Set {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	var stmts []Statement
	for _, cascade := range t.Cascades {
		var args []interface{}
		assigns := make([]string, len(cols))
		for i, col := range cols {
			args = append(args, c.Set[col])
			assigns[i] = fmt.Sprintf("%s = %s", col, cascade.Dialect.Placeholder(len(args)))
		}
		text := fmt.Sprintf("UPDATE %s SET %s", t.Name, strings.Join(assigns, ", "))
		if c.Predicate != nil {
			text += " WHERE " + c.Predicate.ToSQL(cascade.Dialect, &args)
		}
		stmts = append(stmts, Statement{Cascade: cascade, Text: text, Args: args})
	}
	return stmts, nil
}

// relocateSQL renders the DELETE+INSERT pair for a key-changing update
// on a Distribute table.
func (c *UpdateCandidate) relocateSQL(env *Environment) ([]Statement, error) {
	del := &DeleteCandidate{Table: c.Table, Predicate: c.Predicate}
	delStmts, err := del.GenerateSQL(env)
	if err != nil {
		return nil, err
	}
	ins := &InsertCandidate{Table: c.Table, Rows: []Row{c.Row}}
	insStmts, err := ins.GenerateSQL(env)
	if err != nil {
		return nil, err
	}
	return append(delStmts, insStmts...), nil
}

func (c *UpdateCandidate) Execute(ctx context.Context, env *Environment) ([]Row, error) {
	if c.Table.RelocateUpdate && c.NewKey != nil {
		del := &DeleteCandidate{Table: c.Table, Predicate: c.Predicate}
		if _, err := del.Execute(ctx, env); err != nil {
			return nil, err
		}
		ins := &InsertCandidate{Table: c.Table, Rows: []Row{c.Row}}
		return ins.Execute(ctx, env)
	}
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
