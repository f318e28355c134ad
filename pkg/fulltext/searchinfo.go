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

// IndexType selects how the underlying inverted index tokenizes text.
type IndexType int

const (
	Dual IndexType = iota
	Word
	Ngram
)

// TermEntry is one TermMap value: the per-term bookkeeping a Query
// keeps between DF/TF collection passes.
type TermEntry struct {
	QueryTermFrequency uint32
	DocumentFrequency  uint32
	TotalTermFrequency uint64
	Done               bool
	Term               Node
}

// TermMap maps a tea-string term to its bookkeeping entry. Shared
// read-mostly across SearchInformation copies: writes happen only
// single-threaded, between parallel sections.
type TermMap map[string]*TermEntry

// SearchInformation is the per-search context threaded through every
// Node method. Copy() is used to hand each parallel worker its own
// counters while sharing the term map.
type SearchInformation struct {
	DocumentCount          uint32
	AverageDocumentLength  float64
	TotalDocumentLength    uint64
	TotalDocumentFrequency uint32

	Terms TermMap
	owns  bool

	Index       IndexType
	Normalized  bool
	LocationAware bool
}

// NewSearchInformation constructs an owning SearchInformation with a
// fresh, empty TermMap.
func NewSearchInformation(index IndexType) *SearchInformation {
	return &SearchInformation{
		Index: index,
		Terms: TermMap{},
		owns:  true,
	}
}

// Copy returns a non-owning SearchInformation for one worker: it
// shares si's TermMap by reference (read-mostly during a parallel
// section) but copies the scalar counters independently.
func (si *SearchInformation) Copy() *SearchInformation {
	cp := *si
	cp.owns = false
	return &cp
}

// Owns reports whether this SearchInformation owns (and may mutate)
// its TermMap, as opposed to a worker's read-mostly Copy.
func (si *SearchInformation) Owns() bool { return si.owns }
