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
	"strings"
	"testing"
)

func TestUpdatePlainForwardsToAllCascades(t *testing.T) {
	c0 := &fakeExecutor{}
	c1 := &fakeExecutor{}
	table := &Table{
		Name:      "widgets",
		Columns:   []string{"id", "val"},
		KeyColumn: "id",
		Kind:      Distribute,
		Rule:      hashKey,
		Cascades: []Cascade{
			{ID: 0, Dialect: SQLite, Exec: c0},
			{ID: 1, Dialect: SQLite, Exec: c1},
		},
	}
	cand := &UpdateCandidate{
		Table:     table,
		Predicate: ComparePredicate{Op: "=", Left: Column("id"), Right: Literal{Value: 2}},
		Set:       Row{"val": "z"},
	}
	if _, err := cand.Execute(context.Background(), NewEnvironment()); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(c0.execs) != 1 || len(c1.execs) != 1 {
		t.Fatalf("want one UPDATE per cascade, got %d and %d", len(c0.execs), len(c1.execs))
	}
	if !strings.Contains(c0.execs[0].query, "WHERE") {
		t.Errorf("query missing WHERE clause: %q", c0.execs[0].query)
	}
}

func TestUpdateDeterministicColumnOrder(t *testing.T) {
	c0 := &fakeExecutor{}
	table := &Table{
		Name:     "widgets",
		Columns:  []string{"id", "a", "b", "c"},
		Kind:     Replicate,
		Cascades: []Cascade{{ID: 0, Dialect: MySQL, Exec: c0}},
	}
	cand := &UpdateCandidate{
		Table: table,
		Set:   Row{"c": 3, "a": 1, "b": 2},
	}
	stmts, err := cand.GenerateSQL(NewEnvironment())
	if err != nil {
		t.Fatalf("GenerateSQL: %v", err)
	}
	want := "UPDATE widgets SET a = ?, b = ?, c = ?"
	if stmts[0].Text != want {
		t.Errorf("got %q, want %q", stmts[0].Text, want)
	}
}

func TestUpdateRelocateBuildsDeleteThenInsert(t *testing.T) {
	c0 := &fakeExecutor{}
	c1 := &fakeExecutor{}
	table := &Table{
		Name:           "widgets",
		Columns:        []string{"id", "val"},
		KeyColumn:      "id",
		Kind:           Distribute,
		Rule:           hashKey,
		RelocateUpdate: true,
		Cascades: []Cascade{
			{ID: 0, Dialect: SQLite, Exec: c0},
			{ID: 1, Dialect: SQLite, Exec: c1},
		},
	}
	cand := &UpdateCandidate{
		Table:     table,
		Predicate: ComparePredicate{Op: "=", Left: Column("id"), Right: Literal{Value: 1}},
		Row:       Row{"id": 2, "val": "moved"},
		NewKey:    2,
	}
	if _, err := cand.Execute(context.Background(), NewEnvironment()); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	// DELETE forwards to both cascades (old key unknown which cascade
	// holds it from here), INSERT routes only to cascade 0 (hash(2)%2==0).
	if len(c0.execs) != 2 {
		t.Fatalf("cascade 0: want DELETE+INSERT, got %d execs", len(c0.execs))
	}
	if len(c1.execs) != 1 {
		t.Fatalf("cascade 1: want DELETE only, got %d execs", len(c1.execs))
	}
	if !strings.HasPrefix(c0.execs[0].query, "DELETE") {
		t.Errorf("cascade 0 first exec should be DELETE, got %q", c0.execs[0].query)
	}
	if !strings.HasPrefix(c0.execs[1].query, "INSERT") {
		t.Errorf("cascade 0 second exec should be INSERT, got %q", c0.execs[1].query)
	}
}

func TestDeleteFansToAllCascades(t *testing.T) {
	c0 := &fakeExecutor{}
	c1 := &fakeExecutor{}
	table := &Table{
		Name:     "widgets",
		Columns:  []string{"id"},
		Kind:     Replicate,
		Cascades: []Cascade{{ID: 0, Dialect: MySQL, Exec: c0}, {ID: 1, Dialect: MySQL, Exec: c1}},
	}
	cand := &DeleteCandidate{Table: table, Predicate: ComparePredicate{Op: "=", Left: Column("id"), Right: Literal{Value: 1}}}
	if _, err := cand.Execute(context.Background(), NewEnvironment()); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(c0.execs) != 1 || len(c1.execs) != 1 {
		t.Fatalf("want one DELETE per cascade, got %d and %d", len(c0.execs), len(c1.execs))
	}
}
