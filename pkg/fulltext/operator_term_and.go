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

// FieldTerm binds a child node to the scale/geta pair a multi-column
// node applies before combining: combinedScore = combine(scale₁·score₁
// +geta₁, scale₂·score₂+geta₂, ...).
type FieldTerm struct {
	Node  Node
	Scale float64
	Geta  float64
}

// TermAnd requires every field term to match the same document (spec
// §4.2): a leapfrog-style intersection that restarts from whichever
// child jumped furthest ahead.
type TermAnd struct {
	fields  []FieldTerm
	combine Combiner
	cur     DocID
}

func NewTermAnd(fields []FieldTerm, combine Combiner) *TermAnd {
	return &TermAnd{fields: fields, combine: combine, cur: UndefinedDocID}
}

func (n *TermAnd) LowerBound(info *SearchInformation, id DocID, rough bool) DocID {
	target := id
	for {
		agree := true
		for _, f := range n.fields {
			d := f.Node.LowerBound(info, target, rough)
			if d == UndefinedDocID {
				n.cur = UndefinedDocID
				return UndefinedDocID
			}
			if d != target {
				target = d
				agree = false
			}
		}
		if agree {
			n.cur = target
			return target
		}
	}
}

func (n *TermAnd) Score(info *SearchInformation) float64 {
	var score float64
	first := true
	for _, f := range n.fields {
		s := f.Scale*f.Node.Score(info) + f.Geta
		if first {
			score = s
			first = false
			continue
		}
		score = n.combine(score, s)
	}
	return score
}

func (n *TermAnd) Estimate(info *SearchInformation, collectionSize uint32) uint32 {
	min := collectionSize
	for _, f := range n.fields {
		if e := f.Node.Estimate(info, collectionSize); e < min {
			min = e
		}
	}
	return min
}

func (n *TermAnd) TermFrequencyAt(info *SearchInformation) uint64 {
	var total uint64
	for _, f := range n.fields {
		total += f.Node.TermFrequencyAt(info)
	}
	return total
}

func (n *TermAnd) Children() []Node {
	children := make([]Node, len(n.fields))
	for i, f := range n.fields {
		children[i] = f.Node
	}
	return children
}

func (n *TermAnd) Clone() Node {
	fields := make([]FieldTerm, len(n.fields))
	for i, f := range n.fields {
		fields[i] = FieldTerm{Node: f.Node.Clone(), Scale: f.Scale, Geta: f.Geta}
	}
	return NewTermAnd(fields, n.combine)
}
