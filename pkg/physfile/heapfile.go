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

package physfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
)

// HeapFile is the default File implementation: a flat os.File page
// heap plus a goleveldb database recording which page ids are
// allocated. goleveldb is used here exactly the way the teacher uses
// it for its recommended indexer backend (github.com/syndtr/goleveldb),
// repurposed to track page liveness instead of index postings.
//
// HeapFile keeps at most one page fixed in its own cache slot: callers
// are expected to layer their own header-vs-data cache slots on top by
// using two HeapFile page numbers (0 is always the header page), but
// HeapFile itself only ever holds one Page in-flight until DetachPage
// is called, which is sufficient to absorb the "reattach to the same
// page" optimization ported from Vector::PageManager::AutoPageObject.
// DetachPage's retain flag decides whether that one cache slot survives
// a detach: under a no-version or batch-mode transaction the same page
// tends to be reattached again immediately (a scan revisiting the page
// it just wrote, or a batch load walking pages in key order), so the
// cache is left alone instead of being dropped and re-read from disk.
type HeapFile struct {
	mu       sync.Mutex
	f        *os.File
	meta     *leveldb.DB
	pageSize int
	nextID   uint32 // next unallocated page id

	cached   *Page
	cachedOK bool
}

// OpenHeapFile opens (creating if absent) a page heap at dataPath with
// its allocation metadata in a goleveldb database at metaPath.
func OpenHeapFile(dataPath, metaPath string, pageSize int) (*HeapFile, error) {
	f, err := os.OpenFile(dataPath, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("physfile: open data file: %w", err)
	}
	db, err := leveldb.OpenFile(metaPath, nil)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("physfile: open metadata store: %w", err)
	}
	h := &HeapFile{f: f, meta: db, pageSize: pageSize}
	h.nextID = h.scanNextID()
	return h, nil
}

func (h *HeapFile) metaKey(id uint32) []byte {
	k := make([]byte, 5)
	k[0] = 'p'
	binary.BigEndian.PutUint32(k[1:], id)
	return k
}

func (h *HeapFile) scanNextID() uint32 {
	iter := h.meta.NewIterator(nil, nil)
	defer iter.Release()
	var max uint32
	found := false
	for iter.Next() {
		k := iter.Key()
		if len(k) != 5 || k[0] != 'p' {
			continue
		}
		id := binary.BigEndian.Uint32(k[1:])
		if !found || id > max {
			max, found = id, true
		}
	}
	if !found {
		return 0
	}
	return max + 1
}

func (h *HeapFile) PageSize() int { return h.pageSize }

func (h *HeapFile) isAllocated(id uint32) bool {
	_, err := h.meta.Get(h.metaKey(id), nil)
	return err == nil
}

// AllocatePageAt reserves pageID specifically (used by vector.File,
// which derives the page id deterministically from the VectorKey
// rather than letting the heap choose it). It is not part of the File
// interface because that contract only promises "the next available
// page"; callers that need deterministic page ids use this method via
// a type assertion, documented in vector's grounding notes.
func (h *HeapFile) AllocatePageAt(pageID uint32) (*Page, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.isAllocated(pageID) {
		return nil, fmt.Errorf("physfile: page %d already allocated", pageID)
	}
	if err := h.meta.Put(h.metaKey(pageID), []byte{1}, nil); err != nil {
		return nil, err
	}
	if pageID >= h.nextID {
		h.nextID = pageID + 1
	}
	return &Page{ID: pageID, Data: make([]byte, h.pageSize)}, nil
}

func (h *HeapFile) AllocatePage() (*Page, error) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.mu.Unlock()
	if err := h.meta.Put(h.metaKey(id), []byte{1}, nil); err != nil {
		return nil, err
	}
	return &Page{ID: id, Data: make([]byte, h.pageSize)}, nil
}

func (h *HeapFile) FreePage(pageID uint32) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.isAllocated(pageID) {
		return ErrNoSuchPage
	}
	if h.cachedOK && h.cached.ID == pageID {
		h.cachedOK = false
		h.cached = nil
	}
	return h.meta.Delete(h.metaKey(pageID), nil)
}

func (h *HeapFile) AttachPage(pageID uint32, mode FixMode) (*Page, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cachedOK && h.cached.ID == pageID {
		// Reattach to the already-fixed page: no I/O, mirroring
		// AutoPageObject's same-vector-key fast path.
		return h.cached, nil
	}
	if !h.isAllocated(pageID) {
		return nil, ErrNoSuchPage
	}
	buf := make([]byte, h.pageSize)
	off := int64(pageID) * int64(h.pageSize)
	if _, err := h.f.ReadAt(buf, off); err != nil && !isEOFShortRead(err) {
		return nil, fmt.Errorf("physfile: read page %d: %w", pageID, err)
	}
	p := &Page{ID: pageID, Data: buf}
	h.cached, h.cachedOK = p, true
	return p, nil
}

func isEOFShortRead(err error) bool {
	// A page that was allocated but never written yet reads back as a
	// short/EOF read; callers see a zero-filled page, matching a newly
	// allocated page's implicit zero state.
	return errors.Is(err, io.EOF)
}

func (h *HeapFile) DetachPage(p *Page, unfix UnfixMode, retain bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if unfix == UnfixDirty {
		off := int64(p.ID) * int64(h.pageSize)
		if _, err := h.f.WriteAt(p.Data, off); err != nil {
			return fmt.Errorf("physfile: write page %d: %w", p.ID, err)
		}
	}
	if !retain && h.cachedOK && h.cached.ID == p.ID {
		h.cachedOK = false
		h.cached = nil
	}
	return nil
}

func (h *HeapFile) GetNextPageID(after uint32) (uint32, bool) {
	start := after
	iter := h.meta.NewIterator(nil, nil)
	defer iter.Release()
	var best uint32
	found := false
	for iter.Next() {
		k := iter.Key()
		if len(k) != 5 || k[0] != 'p' {
			continue
		}
		id := binary.BigEndian.Uint32(k[1:])
		if id <= start {
			continue
		}
		if !found || id < best {
			best, found = id, true
		}
	}
	return best, found
}

func (h *HeapFile) Close() error {
	ferr := h.f.Close()
	merr := h.meta.Close()
	if ferr != nil {
		return ferr
	}
	return merr
}

var _ File = (*HeapFile)(nil)
