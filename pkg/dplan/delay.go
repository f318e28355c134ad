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

// DelayArgument is the contract a column's delay() call is evaluated
// against: Minimum requests the most aggressive delay a candidate can
// offer, rather than merely "delay if convenient."
type DelayArgument struct {
	Minimum bool
}

// Delayable is implemented by a candidate that can defer materializing
// some of its output columns until an operator downstream actually
// forces them, returning only key and bitset until then.
type Delayable interface {
	// Delay reports whether field can be delayed under arg. A false
	// return means field must be materialized as part of this
	// candidate's own output.
	Delay(field string, arg DelayArgument) bool
}

// delayPlan tracks, for one candidate, which of its columns are not
// referenced by any predicate or the required ordering and so are
// delay-eligible.
type delayPlan struct {
	predicateColumns map[string]bool
	orderColumn      string
}

// newDelayPlan scans predicates (via columnsOf) and the order spec to
// determine which columns are load-bearing and so not delayable.
func newDelayPlan(predicate Predicate, order *OrderSpec) *delayPlan {
	d := &delayPlan{predicateColumns: make(map[string]bool)}
	for _, col := range columnsOf(predicate) {
		d.predicateColumns[col] = true
	}
	if order != nil {
		d.orderColumn = order.Column
	}
	return d
}

// Delay implements Delayable: a column can be delayed unless it is
// referenced by a predicate or by the required ordering. arg.Minimum
// does not change this package's answer — RetrieveCandidate already
// delays everything it safely can — but is accepted to match the
// Delayable contract callers expect.
func (d *delayPlan) Delay(field string, arg DelayArgument) bool {
	if field == d.orderColumn {
		return false
	}
	return !d.predicateColumns[field]
}

// columnsOf walks predicate's scalar tree and collects every Column
// name it references, so delay planning knows which columns are
// load-bearing for filtering.
func columnsOf(predicate Predicate) []string {
	var cols []string
	var walkScalar func(Scalar)
	walkScalar = func(s Scalar) {
		switch v := s.(type) {
		case Column:
			cols = append(cols, string(v))
		case BinaryScalar:
			walkScalar(v.Left)
			walkScalar(v.Right)
		case CallScalar:
			for _, a := range v.Args {
				walkScalar(a)
			}
		}
	}
	var walk func(Predicate)
	walk = func(p Predicate) {
		switch v := p.(type) {
		case ComparePredicate:
			walkScalar(v.Left)
			walkScalar(v.Right)
		case AndPredicate:
			for _, o := range v.Operands {
				walk(o)
			}
		case InSubquery:
			walkScalar(v.Column)
		case InValueList:
			walkScalar(v.Column)
		case InVariableArray:
			walkScalar(v.Column)
		}
	}
	if predicate != nil {
		walk(predicate)
	}
	return cols
}
