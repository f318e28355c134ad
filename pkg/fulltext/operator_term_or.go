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

// termOrField binds one field's node to its own SearchInformation
// replica, since TermOr fans out over field-scoped SearchInformation
// copies rather than the caller's shared one: it behaves as Or but
// over per-field SearchInformation replicas.
type termOrField struct {
	node Node
	info *SearchInformation
}

// TermOr is Or's multi-column sibling: same positional-minimum
// advancement, but each field consults its own SearchInformation
// replica instead of the one passed to TermOr itself.
type TermOr struct {
	fields  []termOrField
	combine Combiner
	cur     []DocID
	curDoc  DocID
}

// NewTermOr builds a TermOr over one (node, replica) pair per field.
func NewTermOr(nodes []Node, infos []*SearchInformation, combine Combiner) *TermOr {
	fields := make([]termOrField, len(nodes))
	cur := make([]DocID, len(nodes))
	for i := range nodes {
		fields[i] = termOrField{node: nodes[i], info: infos[i]}
		cur[i] = UndefinedDocID
	}
	return &TermOr{fields: fields, combine: combine, cur: cur, curDoc: UndefinedDocID}
}

func (n *TermOr) LowerBound(_ *SearchInformation, id DocID, rough bool) DocID {
	min := UndefinedDocID
	for i, f := range n.fields {
		if n.cur[i] < id {
			n.cur[i] = f.node.LowerBound(f.info, id, rough)
		}
		if n.cur[i] < min {
			min = n.cur[i]
		}
	}
	n.curDoc = min
	return min
}

func (n *TermOr) Score(_ *SearchInformation) float64 {
	var score float64
	first := true
	for i, f := range n.fields {
		if n.cur[i] != n.curDoc {
			continue
		}
		s := f.node.Score(f.info)
		if first {
			score = s
			first = false
			continue
		}
		score = n.combine(score, s)
	}
	return score
}

func (n *TermOr) Estimate(_ *SearchInformation, collectionSize uint32) uint32 {
	if collectionSize == 0 {
		return 0
	}
	prod := 1.0
	for _, f := range n.fields {
		ni := float64(f.node.Estimate(f.info, collectionSize))
		prod *= 1 - ni/float64(collectionSize)
	}
	return uint32(float64(collectionSize) * (1 - prod))
}

func (n *TermOr) TermFrequencyAt(_ *SearchInformation) uint64 {
	var total uint64
	for i, f := range n.fields {
		if n.cur[i] == n.curDoc {
			total += f.node.TermFrequencyAt(f.info)
		}
	}
	return total
}

func (n *TermOr) Children() []Node {
	children := make([]Node, len(n.fields))
	for i, f := range n.fields {
		children[i] = f.node
	}
	return children
}

func (n *TermOr) Clone() Node {
	nodes := make([]Node, len(n.fields))
	infos := make([]*SearchInformation, len(n.fields))
	for i, f := range n.fields {
		nodes[i] = f.node.Clone()
		infos[i] = f.info.Copy()
	}
	return NewTermOr(nodes, infos, n.combine)
}
