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

// Package fulltext implements the inverted-index query engine: the
// boolean/score operator tree, the tea-syntax parser (pkg/fulltext/tea),
// score calculators (pkg/fulltext/calc), and the fork-join parallel
// document-frequency/count/result collectors.
package fulltext

import "math"

// DocID is a 32-bit document identifier, the full-text analogue of
// vector.Key.
type DocID uint32

// UndefinedDocID marks a cursor that has been exhausted.
const UndefinedDocID DocID = math.MaxUint32

// Frequency mirrors the operator tree's shape: one node per query
// operator, each carrying its own document frequency and total term
// frequency plus its children's, so that per-range worker results can
// be merged structurally regardless of how many workers produced them.
type Frequency struct {
	DocumentFrequency  uint32
	TotalTermFrequency uint64
	Children           []*Frequency
}
