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

func TestTermPoolWeightsByDistinctSeeds(t *testing.T) {
	pool := NewTermPool()
	pool.AddSeed(SeedDocument{ID: 1, Terms: []string{"alpha", "beta", "alpha"}})
	pool.AddSeed(SeedDocument{ID: 2, Terms: []string{"alpha", "gamma"}})

	terms := pool.Terms()
	if len(terms) != 3 {
		t.Fatalf("Terms() = %v, want 3 distinct terms", terms)
	}

	weights := make(map[string]float64, len(terms))
	for _, term := range terms {
		e := pool.entries[term]
		weights[term] = DefaultWeightTerm(term, e.documents, e.total, pool.seeds)
	}

	selected := DefaultSelectTerm(weights, 1)
	if len(selected) != 1 || selected[0] != "alpha" {
		t.Fatalf("DefaultSelectTerm top-1 = %v, want [alpha] (alpha appears in both seeds)", selected)
	}
}

func TestExpandQueryAddsSelectedTerms(t *testing.T) {
	idx := fakeIndex{
		"root": NewMemoryPostingList(map[DocID]uint32{1: 1}, nil),
		"more": NewMemoryPostingList(map[DocID]uint32{1: 1, 2: 1}, nil),
		"rare": NewMemoryPostingList(map[DocID]uint32{2: 1}, nil),
	}
	info := NewSearchInformation(Word)
	info.DocumentCount = 2
	info.TotalDocumentLength = 2
	info.TotalDocumentFrequency = 3

	q, err := BuildQuery(`#term[e,,ja](root)`, idx, info)
	if err != nil {
		t.Fatalf("BuildQuery: %v", err)
	}
	q.DefaultMatch = MatchExact
	q.Calculator = "tf"
	q.Seeds = []SeedDocument{
		{ID: 1, Terms: []string{"more", "more"}},
		{ID: 2, Terms: []string{"more", "rare"}},
	}

	expanded, err := ExpandQuery(context.Background(), q, idx, 1, nil, nil, 2, 2)
	if err != nil {
		t.Fatalf("ExpandQuery: %v", err)
	}
	if expanded == q {
		t.Fatal("ExpandQuery returned the original query unchanged, want an expanded one")
	}

	or, ok := expanded.Root.(*Or)
	if !ok {
		t.Fatalf("expanded.Root is %T, want *Or", expanded.Root)
	}
	// one operand for the original root plus one for the single
	// selected term (max=1, and "more" outweighs "rare").
	if len(or.children) != 2 {
		t.Fatalf("expanded.Root has %d children, want 2", len(or.children))
	}
}

func TestExpandQueryNoSeedsReturnsOriginal(t *testing.T) {
	idx := fakeIndex{"root": NewMemoryPostingList(map[DocID]uint32{1: 1}, nil)}
	info := NewSearchInformation(Word)
	info.DocumentCount = 1

	q, err := BuildQuery(`#term[e,,ja](root)`, idx, info)
	if err != nil {
		t.Fatalf("BuildQuery: %v", err)
	}

	expanded, err := ExpandQuery(context.Background(), q, idx, 5, nil, nil, 1, 1)
	if err != nil {
		t.Fatalf("ExpandQuery: %v", err)
	}
	if expanded != q {
		t.Fatal("ExpandQuery with no seeds should return the same query unchanged")
	}
}
