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

import "sydneygo.dev/sydney/pkg/fulltext/calc"

// TermSingle wraps a single leaf inverted-list cursor. It caches the
// IDF-like SecondStep value at the first Score() call, since it
// depends only on corpus-wide statistics that don't change across this
// node's lifetime.
type TermSingle struct {
	list PostingList
	calc calc.Calculator

	idf     float64
	idfDone bool
}

// NewTermSingle constructs a TermSingle leaf. calculator must already
// have had Prepare called with corpus statistics; a nil calculator
// panics at construction, since Go has no null-pointer method dispatch
// to fail into later.
func NewTermSingle(list PostingList, calculator calc.Calculator) *TermSingle {
	if calculator == nil {
		panic("fulltext: TermSingle requires a non-nil calculator")
	}
	return &TermSingle{list: list, calc: calculator}
}

func (n *TermSingle) LowerBound(_ *SearchInformation, id DocID, rough bool) DocID {
	return n.list.LowerBound(id, rough)
}

func (n *TermSingle) Score(_ *SearchInformation) float64 {
	if !n.idfDone {
		n.idf = n.calc.SecondStep([]calc.Argument{
			{Type: calc.DocumentFrequency, Value: float64(n.list.DocumentFrequency())},
			{Type: calc.TotalDocumentFrequency, Value: float64(n.list.DocumentFrequency())},
		})
		n.idfDone = true
	}
	first := n.calc.FirstStep([]calc.Argument{
		{Type: calc.TermFrequency, Value: float64(n.list.TermFrequency())},
		{Type: calc.DocumentLength, Value: float64(n.list.DocumentLength())},
	})
	return first * n.idf
}

func (n *TermSingle) Estimate(_ *SearchInformation, collectionSize uint32) uint32 {
	df := n.list.DocumentFrequency()
	if df > collectionSize {
		return collectionSize
	}
	return df
}

func (n *TermSingle) TermFrequencyAt(_ *SearchInformation) uint64 {
	return uint64(n.list.TermFrequency())
}

func (n *TermSingle) Children() []Node { return nil }

func (n *TermSingle) Clone() Node {
	return &TermSingle{list: n.list.Clone(), calc: n.calc.Copy()}
}
