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

// TermTf fuses term frequency across several fields before scoring:
// positionally it behaves like Or (minimum current document across
// fields), but instead of combining independent per-field scores it
// sums each matching field's term frequency (scaled) and feeds the sum
// through one shared calculator.
type TermTf struct {
	fields []FieldTerm
	calc   calc.Calculator
	cur    []DocID
	curDoc DocID

	idf     float64
	idfDone bool
}

func NewTermTf(fields []FieldTerm, calculator calc.Calculator) *TermTf {
	if calculator == nil {
		panic("fulltext: TermTf requires a non-nil calculator")
	}
	cur := make([]DocID, len(fields))
	for i := range cur {
		cur[i] = UndefinedDocID
	}
	return &TermTf{fields: fields, calc: calculator, cur: cur, curDoc: UndefinedDocID}
}

func (n *TermTf) LowerBound(info *SearchInformation, id DocID, rough bool) DocID {
	min := UndefinedDocID
	for i, f := range n.fields {
		if n.cur[i] < id {
			n.cur[i] = f.Node.LowerBound(info, id, rough)
		}
		if n.cur[i] < min {
			min = n.cur[i]
		}
	}
	n.curDoc = min
	return min
}

func (n *TermTf) Score(info *SearchInformation) float64 {
	if !n.idfDone {
		df := float64(n.Estimate(info, info.DocumentCount))
		n.idf = n.calc.SecondStep([]calc.Argument{
			{Type: calc.DocumentFrequency, Value: df},
			{Type: calc.TotalDocumentFrequency, Value: df},
		})
		n.idfDone = true
	}
	var tfSum float64
	for i, f := range n.fields {
		if n.cur[i] == n.curDoc {
			tfSum += f.Scale * float64(f.Node.TermFrequencyAt(info))
		}
	}
	first := n.calc.FirstStep([]calc.Argument{{Type: calc.TermFrequency, Value: tfSum}})
	return first * n.idf
}

func (n *TermTf) Estimate(info *SearchInformation, collectionSize uint32) uint32 {
	if collectionSize == 0 {
		return 0
	}
	prod := 1.0
	for _, f := range n.fields {
		ni := float64(f.Node.Estimate(info, collectionSize))
		prod *= 1 - ni/float64(collectionSize)
	}
	return uint32(float64(collectionSize) * (1 - prod))
}

func (n *TermTf) TermFrequencyAt(info *SearchInformation) uint64 {
	var total uint64
	for i, f := range n.fields {
		if n.cur[i] == n.curDoc {
			total += f.Node.TermFrequencyAt(info)
		}
	}
	return total
}

func (n *TermTf) Children() []Node {
	children := make([]Node, len(n.fields))
	for i, f := range n.fields {
		children[i] = f.Node
	}
	return children
}

func (n *TermTf) Clone() Node {
	fields := make([]FieldTerm, len(n.fields))
	for i, f := range n.fields {
		fields[i] = FieldTerm{Node: f.Node.Clone(), Scale: f.Scale, Geta: f.Geta}
	}
	return NewTermTf(fields, n.calc.Copy())
}
