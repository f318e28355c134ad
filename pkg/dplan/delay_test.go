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

func TestDelayPlanColumnReferencedByPredicateNotDelayable(t *testing.T) {
	pred := ComparePredicate{Op: "=", Left: Column("status"), Right: Literal{Value: "ok"}}
	d := newDelayPlan(pred, nil)
	if d.Delay("status", DelayArgument{}) {
		t.Error("status is used by a predicate, should not be delayable")
	}
	if !d.Delay("description", DelayArgument{}) {
		t.Error("description is unused, should be delayable")
	}
}

func TestDelayPlanOrderColumnNotDelayable(t *testing.T) {
	order := &OrderSpec{Column: "created_at"}
	d := newDelayPlan(nil, order)
	if d.Delay("created_at", DelayArgument{}) {
		t.Error("order column should not be delayable")
	}
	if !d.Delay("body", DelayArgument{}) {
		t.Error("non-order, non-predicate column should be delayable")
	}
}

func TestColumnsOfNestedAndPredicate(t *testing.T) {
	pred := AndPredicate{Operands: []Predicate{
		ComparePredicate{Op: "=", Left: Column("a"), Right: Literal{Value: 1}},
		ComparePredicate{Op: "=", Left: BinaryScalar{Op: "+", Left: Column("b"), Right: Column("c")}, Right: Literal{Value: 2}},
	}}
	cols := columnsOf(pred)
	want := map[string]bool{"a": true, "b": true, "c": true}
	if len(cols) != 3 {
		t.Fatalf("columnsOf = %v, want 3 columns", cols)
	}
	for _, c := range cols {
		if !want[c] {
			t.Errorf("unexpected column %q", c)
		}
	}
}
