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

// TableKind distinguishes a horizontally-partitioned table from a
// fully-replicated one.
type TableKind int

const (
	Distribute TableKind = iota
	Replicate
)

// PartitionRule routes a row to the cascade that owns it, by primary
// key; a common rule is hash(key) mod len(cascades).
type PartitionRule func(key interface{}) int

// Table is a Relation over one logical table that is either
// distributed across Cascades by Rule or replicated to every one of
// them.
type Table struct {
	Name      string
	Columns   []string
	KeyColumn string
	Cascades  []Cascade
	Kind      TableKind
	Rule      PartitionRule

	// RelocateUpdate converts a key-changing UPDATE into DELETE+INSERT
	// on the (possibly different) correct cascade rather than relying
	// on every cascade's WHERE filtering a plain UPDATE. The DELETE and
	// INSERT are not atomic as a pair — see DESIGN.md.
	RelocateUpdate bool
}

// Candidates implements Relation.
func (t *Table) Candidates(op Operation) []Candidate {
	switch op {
	case Retrieve:
		return []Candidate{&RetrieveCandidate{Table: t}}
	case Insert:
		return []Candidate{&InsertCandidate{Table: t}}
	case Update:
		return []Candidate{&UpdateCandidate{Table: t}}
	case Delete:
		return []Candidate{&DeleteCandidate{Table: t}}
	default:
		return nil
	}
}

// cascadesFor returns the cascades op must reach: every cascade for a
// Replicate table, or for Distribute, every cascade (the caller
// narrows per-row with Rule for Insert, or relies on WHERE filtering
// for Update/Delete/Retrieve).
func (t *Table) cascadesFor() []Cascade {
	return t.Cascades
}

// routeRow returns the single cascade index a Distribute table's Rule
// assigns key to; Replicate tables have no single owner.
func (t *Table) routeRow(key interface{}) int {
	return t.Rule(key) % len(t.Cascades)
}
