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
	"testing"
)

// evenTermDocs builds a doc->tf map for every even document in
// [2, 1000], term frequency 3 in each.
func evenTermDocs() map[DocID]uint32 {
	docs := make(map[DocID]uint32, 500)
	for id := DocID(2); id <= 1000; id += 2 {
		docs[id] = 3
	}
	return docs
}

// TestParallelDocumentFrequency checks that a term occurring in every
// even document in [2,1000] has document frequency 500 and total term
// frequency 1500 (3 per doc), regardless of worker count.
func TestParallelDocumentFrequency(t *testing.T) {
	for _, workers := range []int{1, 2, 4, 7, 16} {
		node := term(t, evenTermDocs())
		freq, err := GetDocumentFrequency(context.Background(), info(), node, 1000, workers)
		if err != nil {
			t.Fatalf("workers=%d: GetDocumentFrequency: %v", workers, err)
		}
		if freq.DocumentFrequency != 500 {
			t.Fatalf("workers=%d: DocumentFrequency = %d, want 500", workers, freq.DocumentFrequency)
		}
		if freq.TotalTermFrequency != 1500 {
			t.Fatalf("workers=%d: TotalTermFrequency = %d, want 1500", workers, freq.TotalTermFrequency)
		}
	}
}

func TestParallelGetCount(t *testing.T) {
	node := term(t, evenTermDocs())
	count, err := GetCount(context.Background(), info(), node, 1000, 4)
	if err != nil {
		t.Fatalf("GetCount: %v", err)
	}
	if count != 500 {
		t.Fatalf("count = %d, want 500", count)
	}
}

func TestParallelGetResult(t *testing.T) {
	node := term(t, map[DocID]uint32{4: 1, 400: 5, 800: 2})
	results, err := GetResult(context.Background(), info(), node, 1000, 3)
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	// Descending score order: doc 400 (tf 5) scores highest, then 800
	// (tf 2), then 4 (tf 1), under the "tf" calculator.
	want := []DocID{400, 800, 4}
	for i, w := range want {
		if results[i].ID != w {
			t.Fatalf("results[%d].ID = %d, want %d (results=%v)", i, results[i].ID, w, results)
		}
	}
}

func TestSplitRanges(t *testing.T) {
	ranges := splitRanges(1, 11, 3)
	var total uint64
	prevEnd := DocID(1)
	for _, r := range ranges {
		if r.start != prevEnd {
			t.Fatalf("ranges not contiguous: %+v", ranges)
		}
		total += uint64(r.end - r.start)
		prevEnd = r.end
	}
	if prevEnd != 11 {
		t.Fatalf("ranges do not cover up to 11: %+v", ranges)
	}
	if total != 10 {
		t.Fatalf("ranges cover %d documents, want 10", total)
	}
}

func TestMergeFrequencyShapeMismatch(t *testing.T) {
	dst := &Frequency{DocumentFrequency: 1}
	src := &Frequency{DocumentFrequency: 1, Children: []*Frequency{{}}}
	if err := mergeFrequency(dst, src); err == nil {
		t.Fatal("expected shape-mismatch error, got nil")
	}
}
