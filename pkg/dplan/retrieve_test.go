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

import "testing"

func TestRetrieveGenerateSQLOneStatementPerCascade(t *testing.T) {
	table := &Table{
		Name:    "widgets",
		Columns: []string{"id", "val"},
		Cascades: []Cascade{
			{ID: 0, Dialect: MySQL},
			{ID: 1, Dialect: Postgres},
		},
	}
	cand := &RetrieveCandidate{
		Table:     table,
		Predicate: ComparePredicate{Op: "=", Left: Column("val"), Right: Literal{Value: "x"}},
		OrderBy:   &OrderSpec{Column: "id", Descending: true},
		Limit:     5,
	}
	stmts, err := cand.GenerateSQL(NewEnvironment())
	if err != nil {
		t.Fatalf("GenerateSQL: %v", err)
	}
	if len(stmts) != 2 {
		t.Fatalf("want 2 statements, got %d", len(stmts))
	}
	wantMySQL := "SELECT id, val FROM widgets WHERE val = ? ORDER BY id DESC LIMIT 5"
	if stmts[0].Text != wantMySQL {
		t.Errorf("mysql stmt = %q, want %q", stmts[0].Text, wantMySQL)
	}
	wantPostgres := "SELECT id, val FROM widgets WHERE val = $1 ORDER BY id DESC LIMIT 5"
	if stmts[1].Text != wantPostgres {
		t.Errorf("postgres stmt = %q, want %q", stmts[1].Text, wantPostgres)
	}
}

func TestRetrieveGenerateSQLNoPredicateOrOrder(t *testing.T) {
	table := &Table{
		Name:     "widgets",
		Columns:  []string{"id"},
		Cascades: []Cascade{{ID: 0, Dialect: SQLite}},
	}
	cand := &RetrieveCandidate{Table: table}
	stmts, err := cand.GenerateSQL(NewEnvironment())
	if err != nil {
		t.Fatalf("GenerateSQL: %v", err)
	}
	want := "SELECT id FROM widgets"
	if stmts[0].Text != want {
		t.Errorf("got %q, want %q", stmts[0].Text, want)
	}
}
