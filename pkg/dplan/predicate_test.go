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

func TestComparePredicateMySQLPlaceholder(t *testing.T) {
	p := ComparePredicate{Op: "=", Left: Column("id"), Right: Literal{Value: 5}}
	var args []interface{}
	got := p.ToSQL(MySQL, &args)
	want := "id = ?"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if len(args) != 1 || args[0] != 5 {
		t.Errorf("args = %v", args)
	}
}

func TestComparePredicatePostgresPlaceholder(t *testing.T) {
	p := ComparePredicate{Op: "=", Left: Column("id"), Right: Literal{Value: 5}}
	var args []interface{}
	got := p.ToSQL(Postgres, &args)
	want := "id = $1"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAndPredicateJoinsOperands(t *testing.T) {
	p := AndPredicate{Operands: []Predicate{
		ComparePredicate{Op: "=", Left: Column("a"), Right: Literal{Value: 1}},
		ComparePredicate{Op: ">", Left: Column("b"), Right: Literal{Value: 2}},
	}}
	var args []interface{}
	got := p.ToSQL(MySQL, &args)
	want := "(a = ?) AND (b > ?)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if len(args) != 2 || args[0] != 1 || args[1] != 2 {
		t.Errorf("args = %v", args)
	}
}

func TestInValueListWithNeighborHint(t *testing.T) {
	p := InValueList{
		Column:   Column("tag"),
		Values:   []interface{}{"a", "b"},
		Neighbor: &NeighborHint{Limit: 10},
	}
	var args []interface{}
	got := p.ToSQL(MySQL, &args)
	want := "tag IN (?, ?) /* #Neighbor limit=10 */"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInVariableArrayPostgresUsesAny(t *testing.T) {
	p := InVariableArray{Column: Column("tag"), Values: []interface{}{"a", "b"}}
	var args []interface{}
	got := p.ToSQL(Postgres, &args)
	want := "tag = ANY($1)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if len(args) != 1 {
		t.Fatalf("args = %v", args)
	}
	arr, ok := args[0].([]interface{})
	if !ok || len(arr) != 2 {
		t.Errorf("args[0] = %v", args[0])
	}
}

func TestInVariableArrayNonPostgresFallsBack(t *testing.T) {
	p := InVariableArray{Column: Column("tag"), Values: []interface{}{"a", "b"}}
	var args []interface{}
	got := p.ToSQL(MySQL, &args)
	want := "tag IN (?, ?)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInSubquery(t *testing.T) {
	p := InSubquery{Column: Column("id"), Subquery: "SELECT id FROM blocked"}
	var args []interface{}
	got := p.ToSQL(MySQL, &args)
	want := "id IN (SELECT id FROM blocked)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
