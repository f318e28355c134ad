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

// Or is the n-ary boolean-or operator node. Each child tracks its own
// current document; LowerBound advances any child whose cached
// document is behind id and returns the minimum across all children.
type Or struct {
	children []Node
	combine  Combiner
	cur      []DocID
	curDoc   DocID
}

// NewOr builds an Or node over children, combining matching children's
// scores with combine.
func NewOr(children []Node, combine Combiner) *Or {
	cur := make([]DocID, len(children))
	for i := range cur {
		cur[i] = UndefinedDocID
	}
	return &Or{children: children, combine: combine, cur: cur, curDoc: UndefinedDocID}
}

func (n *Or) LowerBound(info *SearchInformation, id DocID, rough bool) DocID {
	min := UndefinedDocID
	for i, c := range n.children {
		if n.cur[i] < id {
			n.cur[i] = c.LowerBound(info, id, rough)
		}
		if n.cur[i] < min {
			min = n.cur[i]
		}
	}
	n.curDoc = min
	return min
}

func (n *Or) Score(info *SearchInformation) float64 {
	var score float64
	first := true
	for i, c := range n.children {
		if n.cur[i] != n.curDoc {
			continue
		}
		if first {
			score = c.Score(info)
			first = false
			continue
		}
		score = n.combine(score, c.Score(info))
	}
	return score
}

func (n *Or) Estimate(info *SearchInformation, collectionSize uint32) uint32 {
	if collectionSize == 0 {
		return 0
	}
	prod := 1.0
	for _, c := range n.children {
		ni := float64(c.Estimate(info, collectionSize))
		prod *= 1 - ni/float64(collectionSize)
	}
	return uint32(float64(collectionSize) * (1 - prod))
}

func (n *Or) TermFrequencyAt(info *SearchInformation) uint64 {
	var total uint64
	for i, c := range n.children {
		if n.cur[i] == n.curDoc {
			total += c.TermFrequencyAt(info)
		}
	}
	return total
}

func (n *Or) Children() []Node { return n.children }

func (n *Or) Clone() Node {
	children := make([]Node, len(n.children))
	for i, c := range n.children {
		children[i] = c.Clone()
	}
	return NewOr(children, n.combine)
}
