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

import "sort"

// PostingList is one term's inverted list: the leaf cursor TermSingle
// wraps. The index-file driver that actually stores postings on disk
// is out of scope here; PostingList is the seam a real driver
// implements.
type PostingList interface {
	// LowerBound advances to the least document id >= id carrying this
	// term, or UndefinedDocID if none remains.
	LowerBound(id DocID, rough bool) DocID
	// TermFrequency returns the term's frequency in the current
	// document.
	TermFrequency() uint32
	// DocumentLength returns the current document's total length, for
	// length-normalizing calculators.
	DocumentLength() uint64
	// DocumentFrequency returns the term's document frequency across
	// the whole corpus.
	DocumentFrequency() uint32
	// TotalTermFrequency returns the term's total frequency across the
	// whole corpus.
	TotalTermFrequency() uint64
	// Clone returns an independent cursor over the same postings,
	// positioned before the first document.
	Clone() PostingList
}

// MemoryPostingList is a PostingList backed by an in-memory sorted
// posting table, used where no on-disk inverted-index driver is wired
// (the memory-only test index, grounded on Perkeep's
// index.NewMemoryIndex pattern of backing a real interface with an
// in-memory implementation for tests).
type MemoryPostingList struct {
	docs   []DocID
	tf     map[DocID]uint32
	dl     map[DocID]uint64
	df     uint32
	ttf    uint64
	cursor int
	cur    DocID
}

// NewMemoryPostingList builds a posting list from an explicit
// doc->termFrequency map and an optional doc->documentLength map (nil
// entries read back as 0).
func NewMemoryPostingList(termFrequency map[DocID]uint32, documentLength map[DocID]uint64) *MemoryPostingList {
	docs := make([]DocID, 0, len(termFrequency))
	var ttf uint64
	for id, tf := range termFrequency {
		docs = append(docs, id)
		ttf += uint64(tf)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i] < docs[j] })
	return &MemoryPostingList{
		docs: docs,
		tf:   termFrequency,
		dl:   documentLength,
		df:   uint32(len(docs)),
		ttf:  ttf,
		cur:  UndefinedDocID,
	}
}

func (p *MemoryPostingList) LowerBound(id DocID, rough bool) DocID {
	if p.cur != UndefinedDocID && p.cur >= id {
		return p.cur
	}
	for p.cursor < len(p.docs) && p.docs[p.cursor] < id {
		p.cursor++
	}
	if p.cursor >= len(p.docs) {
		p.cur = UndefinedDocID
		return UndefinedDocID
	}
	p.cur = p.docs[p.cursor]
	return p.cur
}

func (p *MemoryPostingList) TermFrequency() uint32 {
	if p.cur == UndefinedDocID {
		return 0
	}
	return p.tf[p.cur]
}

func (p *MemoryPostingList) DocumentLength() uint64 {
	if p.cur == UndefinedDocID || p.dl == nil {
		return 0
	}
	return p.dl[p.cur]
}

func (p *MemoryPostingList) DocumentFrequency() uint32  { return p.df }
func (p *MemoryPostingList) TotalTermFrequency() uint64 { return p.ttf }

func (p *MemoryPostingList) Clone() PostingList {
	return &MemoryPostingList{
		docs: p.docs,
		tf:   p.tf,
		dl:   p.dl,
		df:   p.df,
		ttf:  p.ttf,
		cur:  UndefinedDocID,
	}
}
