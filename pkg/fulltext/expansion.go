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

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"sydneygo.dev/sydney/pkg/fulltext/calc"
)

// SeedDocument is one document a #freetext query names as an example of
// what it wants more of: ExpandQuery mines Terms for candidate terms to
// add to the query, weighting each by how many seeds it appeared in.
type SeedDocument struct {
	ID    DocID
	Terms []string
}

// termPoolEntry is one TermPool bookkeeping slot: how many seed
// documents a term appeared in, and how many times total.
type termPoolEntry struct {
	documents int
	total     int
}

// TermPool accumulates candidate expansion terms across every seed
// document before any document-frequency lookup happens, so a term
// seen in several seeds is only measured once.
type TermPool struct {
	entries map[string]*termPoolEntry
	seeds   int
}

// NewTermPool returns an empty pool.
func NewTermPool() *TermPool {
	return &TermPool{entries: map[string]*termPoolEntry{}}
}

// AddSeed folds one seed document's terms into the pool.
func (p *TermPool) AddSeed(seed SeedDocument) {
	p.seeds++
	seen := map[string]bool{}
	for _, term := range seed.Terms {
		e, ok := p.entries[term]
		if !ok {
			e = &termPoolEntry{}
			p.entries[term] = e
		}
		e.total++
		if !seen[term] {
			e.documents++
			seen[term] = true
		}
	}
}

// Terms returns the pool's distinct candidate terms in no particular
// order.
func (p *TermPool) Terms() []string {
	terms := make([]string, 0, len(p.entries))
	for t := range p.entries {
		terms = append(terms, t)
	}
	return terms
}

// WeightTermFunc scores one candidate term for selection: higher is a
// better expansion candidate. documentCount is how many of the pool's
// seed documents the term appeared in, totalCount its total occurrence
// count across all seeds, and seedCount the number of seed documents
// the pool was built from.
type WeightTermFunc func(term string, documentCount, totalCount, seedCount int) float64

// SelectTermFunc picks which weighted candidates survive into the
// expanded query, returning at most max terms.
type SelectTermFunc func(weights map[string]float64, max int) []string

// DefaultWeightTerm weighs a term by how many distinct seed documents
// it appeared in, breaking ties by total occurrence count; a term
// every seed agrees on is a better signal than one only one seed
// repeats.
func DefaultWeightTerm(term string, documentCount, totalCount, seedCount int) float64 {
	if seedCount == 0 {
		return 0
	}
	return float64(documentCount) + float64(totalCount)/float64(seedCount+1)
}

// DefaultSelectTerm returns the max highest-weighted terms, breaking
// ties lexically so the result is deterministic.
func DefaultSelectTerm(weights map[string]float64, max int) []string {
	type scored struct {
		term   string
		weight float64
	}
	all := make([]scored, 0, len(weights))
	for t, w := range weights {
		all = append(all, scored{t, w})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].weight != all[j].weight {
			return all[i].weight > all[j].weight
		}
		return all[i].term < all[j].term
	})
	if max > 0 && max < len(all) {
		all = all[:max]
	}
	out := make([]string, len(all))
	for i, s := range all {
		out[i] = s.term
	}
	return out
}

// expandedTerm is one selected term together with the leaf node built
// to evaluate it and the document frequency measured for it.
type expandedTerm struct {
	term string
	node Node
	freq *Frequency
}

// measureCandidates looks up every term in terms against index and
// measures its document frequency, processing at most
// DocumentFrequencyCalculatingLimit terms at a time: mining document
// frequency for an entire seed document's term pool at once could mean
// fanning out across thousands of terms simultaneously. Terms index
// cannot find are silently dropped, the same as a term that simply
// does not occur in the corpus.
func measureCandidates(ctx context.Context, info *SearchInformation, index Index, match MatchCode, calcName string, terms []string, maxDocID DocID, workers int) ([]expandedTerm, error) {
	if calcName == "" {
		calcName = defaultCalculator
	}
	var results []expandedTerm
	for start := 0; start < len(terms); start += DocumentFrequencyCalculatingLimit {
		end := start + DocumentFrequencyCalculatingLimit
		if end > len(terms) {
			end = len(terms)
		}
		batch := terms[start:end]
		batchResults := make([]*expandedTerm, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		for i, term := range batch {
			i, term := i, term
			g.Go(func() error {
				list, err := index.Lookup(term, "", match)
				if err != nil {
					return nil
				}
				calculator, err := calc.New(calcName, "")
				if err != nil {
					return err
				}
				if err := calculator.Prepare(info.TotalDocumentFrequency, info.TotalDocumentLength, info.DocumentCount); err != nil {
					return err
				}
				node := NewTermSingle(list, calculator)
				freq, err := GetDocumentFrequency(gctx, info, node, maxDocID, workers)
				if err != nil {
					return err
				}
				batchResults[i] = &expandedTerm{term: term, node: node, freq: freq}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		for _, r := range batchResults {
			if r != nil {
				results = append(results, *r)
			}
		}
	}
	return results, nil
}

// ExpandQuery mines q.Seeds for additional terms, measures their
// document frequency against index, folds the max best-weighted ones
// into q's root with a sum combiner, and re-runs document frequency on
// the expanded tree. weightTerm and selectTerm default to
// DefaultWeightTerm/DefaultSelectTerm when nil; a caller wanting a
// richer expansion vocabulary supplies its own, the same way an
// external calc.Calculator is wired in through calc.RegisterExternal
// rather than compiled into this package.
//
// If q has no seeds, or none of their terms survive selection, q is
// returned unchanged.
func ExpandQuery(ctx context.Context, q *Query, index Index, max int, weightTerm WeightTermFunc, selectTerm SelectTermFunc, maxDocID DocID, workers int) (*Query, error) {
	if len(q.Seeds) == 0 {
		return q, nil
	}
	if weightTerm == nil {
		weightTerm = DefaultWeightTerm
	}
	if selectTerm == nil {
		selectTerm = DefaultSelectTerm
	}

	pool := NewTermPool()
	for _, seed := range q.Seeds {
		pool.AddSeed(seed)
	}

	weights := make(map[string]float64, len(pool.entries))
	for term, e := range pool.entries {
		weights[term] = weightTerm(term, e.documents, e.total, pool.seeds)
	}
	selected := selectTerm(weights, max)
	if len(selected) == 0 {
		return q, nil
	}

	expanded, err := measureCandidates(ctx, q.Info, index, q.DefaultMatch, q.Calculator, selected, maxDocID, workers)
	if err != nil {
		return nil, err
	}
	if len(expanded) == 0 {
		return q, nil
	}

	nodes := make([]Node, 0, len(expanded)+1)
	nodes = append(nodes, q.Root)
	for _, e := range expanded {
		nodes = append(nodes, e.node)
	}
	sum, _ := LookupCombiner("sum")
	root := NewOr(nodes, sum)

	if _, err := GetDocumentFrequency(ctx, q.Info, root, maxDocID, workers); err != nil {
		return nil, err
	}

	return &Query{
		Root:         root,
		Info:         q.Info,
		Policy:       q.Policy,
		Calculator:   q.Calculator,
		Combiner:     q.Combiner,
		Seeds:        q.Seeds,
		DefaultMatch: q.DefaultMatch,
	}, nil
}
