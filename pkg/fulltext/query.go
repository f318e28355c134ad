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

package fulltext

// CombinePolicy selects how a multi-column free-text query folds its
// per-field nodes into one scorer: a parsed tea expression that names
// more than one field is rewritten into a single tree using one of
// these strategies.
type CombinePolicy int

const (
	// None means the query touches a single field; no fan-out node is
	// introduced at all.
	None CombinePolicy = iota
	// Tf sums term frequency across fields before scoring (TermTf).
	Tf
	// ScoreOr scores each field independently and combines the scores
	// with Combiner, requiring only one matching field (TermOr).
	ScoreOr
	// ScoreAnd scores each field independently and combines the scores
	// with Combiner, requiring every field to match (TermAnd).
	ScoreAnd
)

// Query is the executable form of a parsed tea expression: a root Node
// plus the bookkeeping needed to re-run it against a document range,
// hand it to the parallel collectors in parallel.go, or expand it with
// further terms mined from seed documents (expansion.go).
type Query struct {
	// Root is the operator tree to evaluate.
	Root Node
	// Info seeds DocumentCount/TotalDocumentLength/etc. for scoring;
	// Root and its descendants consult it on every Score call.
	Info *SearchInformation
	// Policy records how Root's multi-column fan-out (if any) was
	// assembled, for diagnostics and for Clone-equivalent rebuilds.
	Policy CombinePolicy
	// Calculator and Combiner name the registered calc.Calculator and
	// Combiner the query was built with, so a caller can reconstruct
	// an equivalent tree against a different posting source.
	Calculator string
	Combiner   string

	// Seeds holds the documents ExpandQuery mines for additional terms
	// when this query came from a #freetext command that named seed
	// documents. Empty unless the query participates in expansion.
	Seeds []SeedDocument
	// DefaultMatch is the match mode used to look up terms mined during
	// expansion, since a mined term carries no match code of its own.
	DefaultMatch MatchCode
}

// Clone returns an independent copy of q suitable for handing to a
// parallel worker: Root and Info are both deep-copied so the worker's
// cursor advancement cannot race with q's own or another worker's.
func (q *Query) Clone() *Query {
	seeds := make([]SeedDocument, len(q.Seeds))
	copy(seeds, q.Seeds)
	return &Query{
		Root:         q.Root.Clone(),
		Info:         q.Info.Copy(),
		Policy:       q.Policy,
		Calculator:   q.Calculator,
		Combiner:     q.Combiner,
		Seeds:        seeds,
		DefaultMatch: q.DefaultMatch,
	}
}
