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
	"testing"

	"sydneygo.dev/sydney/pkg/dberr"
)

// fakeIndex resolves tea literal text against a fixed table of posting
// lists, standing in for a real inverted-index driver.
type fakeIndex map[string]*MemoryPostingList

func (idx fakeIndex) Lookup(text, lang string, match MatchCode) (PostingList, error) {
	list, ok := idx[text]
	if !ok {
		return nil, dberr.BadArgumentf("fulltext: no such term %q", text)
	}
	return list.Clone(), nil
}

func TestBuildQueryAndNot(t *testing.T) {
	idx := fakeIndex{
		"x": NewMemoryPostingList(
			map[DocID]uint32{1: 3, 2: 1, 3: 5},
			map[DocID]uint64{1: 10, 2: 10, 3: 10},
		),
		"y": NewMemoryPostingList(
			map[DocID]uint32{2: 2},
			map[DocID]uint64{2: 10},
		),
	}
	info := NewSearchInformation(Word)
	info.DocumentCount = 3
	info.TotalDocumentLength = 30
	info.TotalDocumentFrequency = 2

	q, err := BuildQuery(`#and-not(#term[e,,ja](x),#term[e,,ja](y))`, idx, info)
	if err != nil {
		t.Fatalf("BuildQuery: %v", err)
	}

	var got []DocID
	for id := DocID(0); ; {
		next := q.Root.LowerBound(info, id, false)
		if next == UndefinedDocID {
			break
		}
		got = append(got, next)
		if score := q.Root.Score(info); score <= 0 {
			t.Fatalf("Score(%d) = %v, want > 0", next, score)
		}
		id = next + 1
	}

	want := []DocID{1, 3}
	if len(got) != len(want) {
		t.Fatalf("matched docs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("matched docs = %v, want %v", got, want)
		}
	}
}

func TestBuildQueryUnknownCommand(t *testing.T) {
	info := NewSearchInformation(Word)
	if _, err := BuildQuery(`#bogus(#term[e,,ja](x))`, fakeIndex{}, info); err == nil {
		t.Fatal("BuildQuery with unknown command: want error, got nil")
	}
}

func TestBuildQueryScaleAndOr(t *testing.T) {
	idx := fakeIndex{
		"x": NewMemoryPostingList(map[DocID]uint32{1: 1}, nil),
		"y": NewMemoryPostingList(map[DocID]uint32{1: 1}, nil),
	}
	info := NewSearchInformation(Word)
	info.DocumentCount = 1
	info.TotalDocumentLength = 1
	info.TotalDocumentFrequency = 2

	q, err := BuildQuery(`#scale[2](#or[sum](#term[e,,ja](x),#term[e,,ja](y)))`, idx, info)
	if err != nil {
		t.Fatalf("BuildQuery: %v", err)
	}
	if next := q.Root.LowerBound(info, 0, false); next != 1 {
		t.Fatalf("LowerBound = %v, want 1", next)
	}
	if score := q.Root.Score(info); score != 4 {
		t.Fatalf("Score = %v, want 4 (2 terms * tf=1, doubled by #scale)", score)
	}
}
