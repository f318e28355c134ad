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

import "testing"

// TestTermAndIntersection checks the leapfrog intersection only visits
// documents every field carries.
func TestTermAndIntersection(t *testing.T) {
	title := term(t, map[DocID]uint32{1: 1, 2: 1, 5: 1})
	body := term(t, map[DocID]uint32{2: 1, 5: 1, 6: 1})
	combine, _ := LookupCombiner("sum")
	node := NewTermAnd([]FieldTerm{
		{Node: title, Scale: 1},
		{Node: body, Scale: 1},
	}, combine)

	in := info()
	var got []DocID
	for id := DocID(1); ; {
		next := node.LowerBound(in, id, false)
		if next == UndefinedDocID {
			break
		}
		got = append(got, next)
		if next == UndefinedDocID-1 {
			break
		}
		id = next + 1
	}
	want := []DocID{2, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

// TestTermTfSumsFrequency checks TermTf sums per-field term frequency
// (scaled) before scoring, rather than combining independent scores.
func TestTermTfSumsFrequency(t *testing.T) {
	title := term(t, map[DocID]uint32{1: 2})
	body := term(t, map[DocID]uint32{1: 3})
	node := NewTermTf([]FieldTerm{
		{Node: title, Scale: 1},
		{Node: body, Scale: 2},
	}, mustCalc(t, "tf", ""))

	in := &SearchInformation{DocumentCount: 10}
	if id := node.LowerBound(in, 1, false); id != 1 {
		t.Fatalf("LowerBound = %d, want 1", id)
	}
	// tf calculator's FirstStep returns its raw TermFrequency argument
	// and SecondStep is always 1, so Score should equal the scaled sum:
	// 2*1 + 3*2 = 8.
	if got, want := node.Score(in), 8.0; got != want {
		t.Fatalf("Score = %v, want %v", got, want)
	}
}

// TestTermOrFieldScopedInfo checks each field consults its own bound
// SearchInformation replica rather than the one passed to LowerBound.
func TestTermOrFieldScopedInfo(t *testing.T) {
	title := term(t, map[DocID]uint32{1: 1})
	body := term(t, map[DocID]uint32{2: 1})
	combine, _ := LookupCombiner("sum")
	node := NewTermOr(
		[]Node{title, body},
		[]*SearchInformation{info(), info()},
		combine,
	)

	var got []DocID
	for id := DocID(1); ; {
		next := node.LowerBound(nil, id, false)
		if next == UndefinedDocID {
			break
		}
		got = append(got, next)
		id = next + 1
	}
	want := []DocID{1, 2}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
