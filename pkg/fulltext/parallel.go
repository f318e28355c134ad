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
	"sync"

	"golang.org/x/sync/errgroup"

	"sydneygo.dev/sydney/pkg/dberr"
)

// DocumentFrequencyCalculatingLimit caps how many terms query expansion
// (expansion.go) measures document frequency for in one batch: mining
// document frequency for every candidate term from a seed document's
// term pool at once could mean fanning out across thousands of terms
// simultaneously, so expansion processes the pool this many terms at a
// time instead.
const DocumentFrequencyCalculatingLimit = 100

// minDocsPerWorker is the smallest document-id range GetDocumentFrequency
// and GetResult will hand to their own worker: fewer documents than this
// and forking workers costs more than it saves, so the caller falls back
// to fewer workers.
const minDocsPerWorker = 1000

// docRange is a half-open [Start, End) span of document ids assigned to
// one worker.
type docRange struct {
	start, end DocID
}

// splitRanges partitions [start, end) into at most k contiguous,
// (nearly) equal-sized ranges. It never returns an empty range and
// never returns more ranges than there are documents to cover.
func splitRanges(start, end DocID, k int) []docRange {
	if end <= start || k <= 0 {
		return nil
	}
	total := uint64(end - start)
	if uint64(k) > total {
		k = int(total)
	}
	size := total / uint64(k)
	rem := total % uint64(k)

	ranges := make([]docRange, 0, k)
	cur := start
	for i := 0; i < k; i++ {
		n := size
		if uint64(i) < rem {
			n++
		}
		if n == 0 {
			continue
		}
		next := cur + DocID(n)
		ranges = append(ranges, docRange{start: cur, end: next})
		cur = next
	}
	return ranges
}

// mergeFrequency folds src into dst in place: document frequency and
// total term frequency add, and children are merged pairwise by
// position. dst and src must describe the same operator tree walked
// over disjoint document ranges, so they always have the same number
// of children at every level; a mismatch means the caller merged
// frequencies from two different queries.
func mergeFrequency(dst, src *Frequency) error {
	if dst == nil || src == nil {
		return dberr.BadArgumentf("fulltext: cannot merge nil frequency")
	}
	if len(dst.Children) != len(src.Children) {
		return dberr.BadArgumentf("fulltext: frequency shape mismatch: %d vs %d children", len(dst.Children), len(src.Children))
	}
	dst.DocumentFrequency += src.DocumentFrequency
	dst.TotalTermFrequency += src.TotalTermFrequency
	for i := range dst.Children {
		if err := mergeFrequency(dst.Children[i], src.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

// workerCount clamps the requested worker count to a sane, positive
// value and, for small ranges, to one worker per minDocsPerWorker
// documents.
func workerCount(start, end DocID, workers int) int {
	if workers < 1 {
		workers = 1
	}
	span := uint64(end - start)
	max := span / minDocsPerWorker
	if max < 1 {
		max = 1
	}
	if uint64(workers) > max {
		workers = int(max)
	}
	return workers
}

// GetDocumentFrequency walks node over [1, maxDocID] using up to
// workers goroutines, each over a disjoint sub-range of a cloned node
// and a cloned info, and merges the partial results structurally. The
// merged Frequency is the same regardless of how many workers did the
// walk, since ranges are disjoint and merges are commutative.
func GetDocumentFrequency(ctx context.Context, info *SearchInformation, node Node, maxDocID DocID, workers int) (*Frequency, error) {
	start, end := DocID(1), maxDocID+1
	ranges := splitRanges(start, end, workerCount(start, end, workers))
	if len(ranges) == 0 {
		return CountFrequency(node, info, start, start), nil
	}

	partials := make([]*Frequency, len(ranges))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range ranges {
		i, r := i, r
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			partials[i] = CountFrequency(node.Clone(), info.Copy(), r.start, r.end)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := partials[0]
	for _, p := range partials[1:] {
		if err := mergeFrequency(result, p); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// GetCount returns the number of documents in [1, maxDocID] that match
// node, computed the same way GetDocumentFrequency is: a parallel walk
// over disjoint ranges, merged structurally. It reports the root
// Frequency's DocumentFrequency, which is the size of the match set
// (not an estimate).
func GetCount(ctx context.Context, info *SearchInformation, node Node, maxDocID DocID, workers int) (uint32, error) {
	freq, err := GetDocumentFrequency(ctx, info, node, maxDocID, workers)
	if err != nil {
		return 0, err
	}
	return freq.DocumentFrequency, nil
}

// ScoredDoc is one scored hit from GetResult.
type ScoredDoc struct {
	ID    DocID
	Score float64
}

// GetResult walks node over [1, maxDocID] using up to workers
// goroutines, scoring every match, and returns all hits sorted by
// descending score (ties broken by ascending id). Partial results are
// merged into the running total as each worker finishes rather than
// all at once at the end, so the merge cost is amortized across the
// walk instead of paid in one batch after the slowest worker returns.
func GetResult(ctx context.Context, info *SearchInformation, node Node, maxDocID DocID, workers int) ([]ScoredDoc, error) {
	start, end := DocID(1), maxDocID+1
	ranges := splitRanges(start, end, workerCount(start, end, workers))
	if len(ranges) == 0 {
		return nil, nil
	}

	var mu sync.Mutex
	var merged []ScoredDoc

	g, gctx := errgroup.WithContext(ctx)
	for _, r := range ranges {
		r := r
		g.Go(func() error {
			n := node.Clone()
			in := info.Copy()
			var partial []ScoredDoc
			for id := r.start; id < r.end; {
				if err := gctx.Err(); err != nil {
					return err
				}
				next := n.LowerBound(in, id, false)
				if next == UndefinedDocID || next >= r.end {
					break
				}
				partial = append(partial, ScoredDoc{ID: next, Score: n.Score(in)})
				if next == UndefinedDocID-1 {
					break
				}
				id = next + 1
			}
			mu.Lock()
			merged = mergeScoredSorted(merged, partial)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return merged, nil
}

// mergeScoredSorted merges incoming (already-ascending-by-id, since it
// came from one increasing LowerBound walk) into base, which is kept
// sorted by descending score at all times.
func mergeScoredSorted(base, incoming []ScoredDoc) []ScoredDoc {
	if len(incoming) == 0 {
		return base
	}
	merged := make([]ScoredDoc, 0, len(base)+len(incoming))
	merged = append(merged, base...)
	merged = append(merged, incoming...)
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Score != merged[j].Score {
			return merged[i].Score > merged[j].Score
		}
		return merged[i].ID < merged[j].ID
	})
	return merged
}
