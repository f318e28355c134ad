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

// PredicateBucket names one of CheckIndexArgument's five disjoint
// buckets a predicate can fall into for one candidate.
type PredicateBucket int

const (
	// MustScan predicates cannot be served by any index; the candidate
	// has to scan and evaluate them row by row.
	MustScan PredicateBucket = iota
	// ObtainableAsBitSet predicates an index can answer, handing back a
	// bitset of matching rows, without the scan needing them again.
	ObtainableAsBitSet
	// SearchableByBitSet predicates an index can evaluate against an
	// already-computed bitset (narrowing it further), rather than
	// producing one from scratch.
	SearchableByBitSet
	// IndexScan predicates an index can satisfy directly as a scan
	// (e.g. an equality or range lookup on the indexed column).
	IndexScan
	// FetchableByKey predicates that resolve to a single-row lookup by
	// primary or unique key.
	FetchableByKey
)

// CheckIndexArgument tracks, per candidate, which bucket each predicate
// in a conjunction falls into. Candidates populate this during
// CheckIndex and AdoptIndex reads it back to decide which predicates it
// can push into an index lookup versus evaluate as a residual filter
// after scanning.
type CheckIndexArgument struct {
	buckets map[Predicate]PredicateBucket

	// OrderScan, if non-nil, names an index that also satisfies the
	// candidate's required ordering, letting the order-by be served for
	// free by the same scan.
	OrderScan *OrderSpec
}

// NewCheckIndexArgument returns an empty argument ready for predicates
// to be classified into it.
func NewCheckIndexArgument() *CheckIndexArgument {
	return &CheckIndexArgument{buckets: make(map[Predicate]PredicateBucket)}
}

// Classify records which bucket p falls into.
func (c *CheckIndexArgument) Classify(p Predicate, bucket PredicateBucket) {
	c.buckets[p] = bucket
}

// BucketOf returns the bucket p was classified into, and whether it was
// classified at all.
func (c *CheckIndexArgument) BucketOf(p Predicate) (PredicateBucket, bool) {
	b, ok := c.buckets[p]
	return b, ok
}

// Residual returns the predicates that must still be evaluated by a
// row-by-row scan: everything classified MustScan, plus anything never
// classified at all.
func (c *CheckIndexArgument) Residual(all []Predicate) []Predicate {
	var residual []Predicate
	for _, p := range all {
		if b, ok := c.buckets[p]; !ok || b == MustScan {
			residual = append(residual, p)
		}
	}
	return residual
}

// AdoptIndexArgument is the per-table state a candidate commits to once
// CheckIndexArgument's classification has been turned into an actual
// plan: which index file was chosen, the bitset variables threading
// current/previous/search-input state through a multi-step bitset
// evaluation, and the direction the chosen index satisfies the
// required ordering in (if any).
type AdoptIndexArgument struct {
	// File names the index chosen to serve this table's predicates
	// (e.g. a column name or index identifier); empty means no index
	// was adopted and the candidate falls back to a full scan.
	File string

	// CurrentBitSet, PreviousBitSet and SearchInputBitSet are variable
	// IDs (Environment.Register results) threading bitset state across
	// a sequence of SearchableByBitSet narrowing steps.
	CurrentBitSet     int
	PreviousBitSet    int
	SearchInputBitSet int

	// OrderDescending records the direction the adopted index's natural
	// order satisfies the candidate's required ordering in, valid only
	// when OrderSatisfied is true.
	OrderDescending bool
	OrderSatisfied  bool
}

// HasIndex reports whether AdoptIndexArgument committed to an actual
// index file rather than falling back to a full scan.
func (a *AdoptIndexArgument) HasIndex() bool { return a.File != "" }
