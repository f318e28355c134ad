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

// Weight scales its operand's score by a constant factor, the tea
// command #scale[f](A).
type Weight struct {
	operand Node
	scale   float64
}

func NewWeight(operand Node, scale float64) *Weight {
	return &Weight{operand: operand, scale: scale}
}

func (n *Weight) LowerBound(info *SearchInformation, id DocID, rough bool) DocID {
	return n.operand.LowerBound(info, id, rough)
}

func (n *Weight) Score(info *SearchInformation) float64 {
	return n.operand.Score(info) * n.scale
}

func (n *Weight) Estimate(info *SearchInformation, collectionSize uint32) uint32 {
	return n.operand.Estimate(info, collectionSize)
}

func (n *Weight) TermFrequencyAt(info *SearchInformation) uint64 {
	return n.operand.TermFrequencyAt(info)
}

func (n *Weight) Children() []Node { return []Node{n.operand} }

func (n *Weight) Clone() Node {
	return NewWeight(n.operand.Clone(), n.scale)
}
