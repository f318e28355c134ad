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

package vector

import (
	"io"
	"sort"
	"sync"
	"time"

	"sydneygo.dev/sydney/pkg/availability"
	"sydneygo.dev/sydney/pkg/dberr"
	"sydneygo.dev/sydney/pkg/physfile"
	"sydneygo.dev/sydney/pkg/trans"
)

// TransferSpeed is the assumed disk transfer rate in bytes/second used
// by GetProcessCost. It's a package variable rather than a constant so
// tests and callers can tune it without a config plumbing exercise.
var TransferSpeed float64 = 100 * 1024 * 1024

// pageAllocator is implemented by physfile.File backends that support
// allocating a specific page id, needed because VectorFile derives
// page ids deterministically from the VectorKey rather than letting
// the backing store choose them.
type pageAllocator interface {
	AllocatePageAt(id uint32) (*physfile.Page, error)
}

// File is a VectorFile: a fixed-width row file keyed by Key.
type File struct {
	mu sync.Mutex

	fid    *FileIdentifier
	schema *Schema
	layout *layout
	lock   string // availability lock name

	pf            physfile.File
	substantiated bool
	newBackend    func() (physfile.File, error)

	header *header

	opened bool
	opt    *OpenOption
	txn    trans.Transaction

	cur        cursorState
	marked     *cursorState
	pagesCache []uint32 // sorted allocated data page ids, for Scan

	fetchPending   bool
	fetchKey       Key
	countDelivered bool
}

type cursorState struct {
	pageIdx  int // index into pagesCache
	blockIdx int // next block to examine within pagesCache[pageIdx]
	started  bool
}

// New constructs an unopened, uncreated VectorFile. newBackend is
// called at most once, lazily, the first time a page must actually be
// allocated ("substantiate").
func New(lockName string, newBackend func() (physfile.File, error)) *File {
	return &File{lock: lockName, newBackend: newBackend}
}

// retainCache reports whether pages detached under the current
// transaction should stay in the backend's cache rather than being
// evicted immediately: non-versioned and batch-mode transactions don't
// need the eviction-on-detach discipline that protects concurrent
// multi-version readers, and tend to revisit the same page right away.
func (f *File) retainCache() bool {
	return f.txn != nil && (f.txn.IsNoVersion() || f.txn.IsBatchMode())
}

// Create records the mounted state and version into the file
// identifier and validates the schema; it does not touch physical
// storage.
func (f *File) Create(fid *FileIdentifier) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	schema, err := Validate(fid.Columns)
	if err != nil {
		return err
	}
	l, err := newLayout(fid.PageSizeBytes(), schema.BlockSize)
	if err != nil {
		return err
	}
	f.fid = fid
	f.schema = schema
	f.layout = l
	f.header = &header{Version: uint32(fid.Version)}
	return nil
}

func (f *File) ensureSubstantiated() error {
	if f.substantiated {
		return nil
	}
	pf, err := f.newBackend()
	if err != nil {
		return dberr.Unexpectedf("vector: open backend: %v", err)
	}
	f.pf = pf
	hp, err := f.pf.AllocatePage()
	if err != nil {
		return dberr.Unexpectedf("vector: allocate header page: %v", err)
	}
	if hp.ID != 0 {
		return dberr.Unexpectedf("vector: header page must be id 0, got %d", hp.ID)
	}
	f.header.FirstKey = Undefined
	f.header.LastKey = Undefined
	f.header.LastModified = nowFunc()
	buf := make([]byte, headerEncodedSize)
	f.header.encode(buf)
	copy(hp.Data, buf)
	if err := f.pf.DetachPage(hp, physfile.UnfixDirty, f.retainCache()); err != nil {
		return err
	}
	f.substantiated = true
	return nil
}

// nowFunc is overridable in tests that need deterministic timestamps.
var nowFunc = func() int64 { return time.Now().UnixNano() }

// Open opens the file under opt and associates it with txn, whose mode
// governs both GetCount's fast path and whether detached pages stay
// cached.
func (f *File) Open(opt *OpenOption, txn trans.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.opened {
		return dberr.NotSupportedf("vector: reopen")
	}
	f.opt = opt
	f.txn = txn
	f.opened = true
	f.cur = cursorState{}
	f.marked = nil
	f.fetchPending = false
	f.countDelivered = false

	if opt.Mode == ModeRead && opt.SubMode == SubModeScan {
		f.refreshPagesCache()
	}
	return nil
}

func (f *File) refreshPagesCache() {
	f.pagesCache = f.pagesCache[:0]
	if !f.substantiated {
		return
	}
	id := uint32(0)
	for {
		next, ok := f.pf.GetNextPageID(id)
		if !ok {
			break
		}
		f.pagesCache = append(f.pagesCache, next)
		id = next
	}
	sort.Slice(f.pagesCache, func(i, j int) bool { return f.pagesCache[i] < f.pagesCache[j] })
}

// Close ends the open session. Header mutations are already durable
// (counters are updated under the write latch before storeHeaderLocked
// returns), so Close never fails.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = false
	f.opt = nil
	f.txn = nil
	return nil
}

// Fetch records the key the next Get() under ReadSubMode=Fetch should
// return.
func (f *File) Fetch(key Key) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.opened || f.opt.Mode != ModeRead || f.opt.SubMode != SubModeFetch {
		return dberr.BadArgumentf("vector: fetch() requires OpenMode=Read,ReadSubMode=Fetch")
	}
	f.fetchKey = key
	f.fetchPending = true
	return nil
}

func (f *File) checkOpen() error {
	if !f.opened {
		return dberr.ErrFileNotOpen
	}
	return nil
}

// Get returns the next tuple under the file's current mode, or io.EOF.
func (f *File) Get() ([]interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkOpen(); err != nil {
		return nil, err
	}

	if f.opt.ProjectCount {
		if f.countDelivered {
			return nil, io.EOF
		}
		f.countDelivered = true
		cnt := f.liveCountLocked()
		return []interface{}{cnt}, nil
	}

	switch f.opt.Mode {
	case ModeInitialize:
		return nil, dberr.NotSupportedf("vector: get() under Initialize mode")
	case ModeSearch:
		return f.getSearchLocked()
	case ModeRead:
		if f.opt.SubMode == SubModeFetch {
			return f.getFetchLocked()
		}
		return f.getScanLocked()
	default:
		return nil, dberr.NotSupportedf("vector: get() under mode %v", f.opt.Mode)
	}
}

func (f *File) liveCountLocked() uint32 {
	return f.header.ObjectCount
}

func (f *File) getFetchLocked() ([]interface{}, error) {
	if !f.fetchPending {
		return nil, io.EOF
	}
	f.fetchPending = false
	return f.lookupLocked(f.fetchKey)
}

func (f *File) getSearchLocked() ([]interface{}, error) {
	if f.countDelivered {
		return nil, io.EOF
	}
	f.countDelivered = true
	key, ok := asKey(f.opt.SearchValue)
	if !ok {
		return nil, dberr.BadArgumentf("vector: SearchValue is not a valid key")
	}
	return f.lookupLocked(key)
}

func asKey(v interface{}) (Key, bool) {
	switch n := v.(type) {
	case uint32:
		return Key(n), true
	case int:
		return Key(n), true
	case int64:
		return Key(n), true
	case Key:
		return n, true
	default:
		return 0, false
	}
}

func (f *File) lookupLocked(key Key) ([]interface{}, error) {
	if !f.substantiated {
		return nil, io.EOF
	}
	pageID := f.layout.pageID(key)
	blockID := f.layout.blockID(key)
	p, err := f.pf.AttachPage(pageID, physfile.FixReadOnly)
	if err == physfile.ErrNoSuchPage {
		return nil, io.EOF
	}
	if err != nil {
		return nil, dberr.Unexpectedf("vector: attach page %d: %v", pageID, err)
	}
	defer f.pf.DetachPage(p, physfile.UnfixNotDirty, f.retainCache())
	if !f.layout.testBit(p.Data, blockID) {
		return nil, io.EOF
	}
	block := f.layout.block(p.Data, blockID)
	return f.schema.decodeBlock(key, block), nil
}

func (f *File) getScanLocked() ([]interface{}, error) {
	for {
		if f.cur.pageIdx >= len(f.pagesCache) {
			return nil, io.EOF
		}
		scanIdx := f.cur.pageIdx
		if f.opt.SortOrder {
			scanIdx = len(f.pagesCache) - 1 - f.cur.pageIdx
		}
		pageID := f.pagesCache[scanIdx]
		if pageID == 0 {
			f.cur.pageIdx++
			f.cur.blockIdx = 0
			continue
		}
		p, err := f.pf.AttachPage(pageID, physfile.FixReadOnly)
		if err != nil {
			return nil, dberr.Unexpectedf("vector: attach page %d: %v", pageID, err)
		}

		block := f.layout.blocksPerPage
		var blockID int
		if f.opt.SortOrder {
			blockID = block - 1 - f.cur.blockIdx
		} else {
			blockID = f.cur.blockIdx
		}
		if blockID < 0 || blockID >= block {
			f.pf.DetachPage(p, physfile.UnfixNotDirty, f.retainCache())
			f.cur.pageIdx++
			f.cur.blockIdx = 0
			continue
		}
		f.cur.blockIdx++
		live := f.layout.testBit(p.Data, blockID)
		var tuple []interface{}
		var key Key
		if live {
			key = f.layout.keyOf(pageID, blockID)
			tuple = f.schema.decodeBlock(key, f.layout.block(p.Data, blockID))
		}
		f.pf.DetachPage(p, physfile.UnfixNotDirty, f.retainCache())
		if live {
			return tuple, nil
		}
		// not live: keep scanning within the same page/position
	}
}

// Insert inserts tuple; tuple[0] is the key.
func (f *File) Insert(tuple []interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkOpen(); err != nil {
		return err
	}
	key, ok := asKey(tuple[0])
	if !ok || !key.Valid() {
		return dberr.BadArgumentf("vector: insert with invalid key")
	}
	if err := f.ensureSubstantiated(); err != nil {
		return err
	}

	pageID := f.layout.pageID(key)
	blockID := f.layout.blockID(key)
	p, err := f.attachOrAllocate(pageID)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		unfix := physfile.UnfixNotDirty
		if committed {
			unfix = physfile.UnfixDirty
		}
		f.pf.DetachPage(p, unfix, f.retainCache())
	}()

	if f.layout.testBit(p.Data, blockID) {
		return dberr.BadArgumentf("vector: key %d already present", key)
	}
	block := f.layout.block(p.Data, blockID)
	if err := f.schema.encodeBlock(tuple, block); err != nil {
		return err
	}
	f.layout.setBit(p.Data, blockID, true)
	f.layout.setCount(p.Data, f.layout.count(p.Data)+1)
	committed = true

	f.header.ObjectCount++
	if f.header.FirstKey == Undefined || key < f.header.FirstKey {
		f.header.FirstKey = key
	}
	if f.header.LastKey == Undefined || key > f.header.LastKey {
		f.header.LastKey = key
	}
	f.header.LastModified = nowFunc()
	return f.storeHeaderLocked()
}

func (f *File) attachOrAllocate(pageID uint32) (*physfile.Page, error) {
	p, err := f.pf.AttachPage(pageID, physfile.FixWrite)
	if err == nil {
		return p, nil
	}
	if err != physfile.ErrNoSuchPage {
		return nil, dberr.Unexpectedf("vector: attach page %d: %v", pageID, err)
	}
	alloc, ok := f.pf.(pageAllocator)
	if !ok {
		return nil, dberr.Unexpectedf("vector: backend cannot allocate deterministic page ids")
	}
	return alloc.AllocatePageAt(pageID)
}

func (f *File) storeHeaderLocked() error {
	hp, err := f.pf.AttachPage(0, physfile.FixWrite)
	if err != nil {
		return dberr.Unexpectedf("vector: attach header page: %v", err)
	}
	buf := make([]byte, headerEncodedSize)
	f.header.encode(buf)
	copy(hp.Data, buf)
	return f.pf.DetachPage(hp, physfile.UnfixDirty, f.retainCache())
}

// Update updates the non-key columns of keyTuple's row selected by
// opt.TargetFieldIndex. On failure, the original values are restored;
// if restoration itself fails the file is marked unavailable.
func (f *File) Update(keyTuple []interface{}, tuple []interface{}) (err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkOpen(); err != nil {
		return err
	}
	if f.opt.Mode != ModeUpdate {
		return dberr.IllegalFileAccessf("vector: update() requires OpenMode=Update")
	}
	key, ok := asKey(keyTuple[0])
	if !ok {
		return dberr.BadArgumentf("vector: update with invalid key")
	}
	pageID := f.layout.pageID(key)
	blockID := f.layout.blockID(key)
	p, attachErr := f.pf.AttachPage(pageID, physfile.FixWrite)
	if attachErr == physfile.ErrNoSuchPage {
		return dberr.BadArgumentf("vector: update of missing key %d", key)
	}
	if attachErr != nil {
		return dberr.Unexpectedf("vector: attach page %d: %v", pageID, attachErr)
	}
	if !f.layout.testBit(p.Data, blockID) {
		f.pf.DetachPage(p, physfile.UnfixNotDirty, f.retainCache())
		return dberr.BadArgumentf("vector: update of missing key %d", key)
	}

	block := f.layout.block(p.Data, blockID)
	backup := append([]byte(nil), block...)

	applyErr := f.applyUpdateLocked(key, block, tuple)
	if applyErr == nil {
		f.pf.DetachPage(p, physfile.UnfixDirty, f.retainCache())
		return nil
	}

	// Roll back to the original bytes.
	copy(block, backup)
	if detachErr := f.pf.DetachPage(p, physfile.UnfixDirty, f.retainCache()); detachErr != nil {
		availability.Default.Set(f.lock, false)
		return dberr.Unexpectedf("vector: rollback failed after %v: %v", applyErr, detachErr)
	}
	return applyErr
}

func (f *File) applyUpdateLocked(key Key, block []byte, tuple []interface{}) error {
	full := f.schema.decodeBlock(key, block)
	targets := f.opt.TargetFieldIndex
	if len(targets) == 0 {
		for i := 1; i < len(full); i++ {
			targets = append(targets, i)
		}
	}
	if len(targets) != len(tuple) {
		return dberr.BadArgumentf("vector: update tuple has %d values, %d targets selected", len(tuple), len(targets))
	}
	for i, colIdx := range targets {
		if colIdx <= 0 || colIdx >= len(full) {
			return dberr.BadArgumentf("vector: update target field index %d out of range", colIdx)
		}
		full[colIdx] = tuple[i]
	}
	return f.schema.encodeBlock(full, block)
}

// Expunge removes the row at keyTuple's key. Rollback follows the same
// pattern as Update.
func (f *File) Expunge(keyTuple []interface{}) (err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkOpen(); err != nil {
		return err
	}
	key, ok := asKey(keyTuple[0])
	if !ok {
		return dberr.BadArgumentf("vector: expunge with invalid key")
	}
	pageID := f.layout.pageID(key)
	blockID := f.layout.blockID(key)
	p, attachErr := f.pf.AttachPage(pageID, physfile.FixWrite)
	if attachErr == physfile.ErrNoSuchPage {
		return dberr.BadArgumentf("vector: expunge of missing key %d", key)
	}
	if attachErr != nil {
		return dberr.Unexpectedf("vector: attach page %d: %v", pageID, attachErr)
	}
	if !f.layout.testBit(p.Data, blockID) {
		f.pf.DetachPage(p, physfile.UnfixNotDirty, f.retainCache())
		return dberr.BadArgumentf("vector: expunge of missing key %d", key)
	}

	f.layout.setBit(p.Data, blockID, false)
	f.layout.setCount(p.Data, f.layout.count(p.Data)-1)
	if detachErr := f.pf.DetachPage(p, physfile.UnfixDirty, f.retainCache()); detachErr != nil {
		availability.Default.Set(f.lock, false)
		return dberr.Unexpectedf("vector: expunge detach: %v", detachErr)
	}

	f.header.ObjectCount--
	f.header.LastModified = nowFunc()
	needFirst := key == f.header.FirstKey
	needLast := key == f.header.LastKey
	if needFirst || needLast {
		f.recomputeExtremesLocked(needFirst, needLast)
	}
	return f.storeHeaderLocked()
}

func (f *File) recomputeExtremesLocked(needFirst, needLast bool) {
	if f.header.ObjectCount == 0 {
		f.header.FirstKey = Undefined
		f.header.LastKey = Undefined
		return
	}
	f.refreshPagesCache()
	if needFirst {
		if k, ok := f.scanExtremeLocked(true); ok {
			f.header.FirstKey = k
		}
	}
	if needLast {
		if k, ok := f.scanExtremeLocked(false); ok {
			f.header.LastKey = k
		}
	}
}

func (f *File) scanExtremeLocked(ascending bool) (Key, bool) {
	n := len(f.pagesCache)
	for i := 0; i < n; i++ {
		idx := i
		if !ascending {
			idx = n - 1 - i
		}
		pageID := f.pagesCache[idx]
		if pageID == 0 {
			continue
		}
		p, err := f.pf.AttachPage(pageID, physfile.FixReadOnly)
		if err != nil {
			continue
		}
		found, blockID, ok := searchBit(f.layout, p.Data, ascending)
		f.pf.DetachPage(p, physfile.UnfixNotDirty, f.retainCache())
		if found {
			return f.layout.keyOf(pageID, blockID), ok
		}
	}
	return Undefined, false
}

func searchBit(l *layout, data []byte, ascending bool) (found bool, blockID int, ok bool) {
	if ascending {
		for b := 0; b < l.blocksPerPage; b++ {
			if l.testBit(data, b) {
				return true, b, true
			}
		}
	} else {
		for b := l.blocksPerPage - 1; b >= 0; b-- {
			if l.testBit(data, b) {
				return true, b, true
			}
		}
	}
	return false, 0, false
}

// Mark saves the current scan position (a cursor stack of depth 1).
func (f *File) Mark() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkOpen(); err != nil {
		return err
	}
	saved := f.cur
	f.marked = &saved
	return nil
}

// Rewind restores the last Mark()ed position, or behaves like Reset if
// nothing was marked.
func (f *File) Rewind() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkOpen(); err != nil {
		return err
	}
	if f.marked == nil {
		f.cur = cursorState{}
		return nil
	}
	f.cur = *f.marked
	return nil
}

// Reset restarts the scan from the beginning; repeated calls are a
// no-op.
func (f *File) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkOpen(); err != nil {
		return err
	}
	f.cur = cursorState{}
	return nil
}

// GetCount returns the cached header count under a read-only
// transaction, or a freshly reread count otherwise. On an unmounted
// file it returns 0 rather than erroring.
func (f *File) GetCount() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.substantiated {
		return 0
	}
	if f.txn == nil || f.txn.Category() == trans.ReadOnly {
		return f.header.ObjectCount
	}
	hp, err := f.pf.AttachPage(0, physfile.FixReadOnly)
	if err != nil {
		return f.header.ObjectCount
	}
	h := decodeHeader(hp.Data)
	f.pf.DetachPage(hp, physfile.UnfixNotDirty, f.retainCache())
	return h.ObjectCount
}

// GetProcessCost estimates the I/O cost of scanning this file once,
// proportional to its page size and inversely proportional to how many
// rows fit per page.
func (f *File) GetProcessCost() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.opt == nil || f.layout == nil {
		return 0
	}
	switch f.opt.Mode {
	case ModeRead, ModeSearch:
		return float64(f.fid.PageSizeBytes()) / TransferSpeed / float64(f.layout.blocksPerPage)
	default:
		return 0
	}
}
