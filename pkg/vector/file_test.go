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
	"path/filepath"
	"testing"

	"sydneygo.dev/sydney/pkg/catalog"
	"sydneygo.dev/sydney/pkg/physfile"
	"sydneygo.dev/sydney/pkg/trans"
)

func newTestFile(t *testing.T) *File {
	t.Helper()
	dir := t.TempDir()
	fid := &FileIdentifier{
		PageSizeKiB: 4,
		Version:     2,
		Columns: []catalog.Column{
			{Name: "key", Type: catalog.UInt32},
			{Name: "payload", Type: catalog.UInt32},
		},
	}
	f := New("test-lock", func() (physfile.File, error) {
		return physfile.OpenHeapFile(
			filepath.Join(dir, "data.heap"),
			filepath.Join(dir, "meta.ldb"),
			fid.PageSizeBytes(),
		)
	})
	if err := f.Create(fid); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return f
}

func openUpdate(t *testing.T, f *File) {
	t.Helper()
	opt, err := ParseOpenOption(map[string]interface{}{"OpenMode": "Update"})
	if err != nil {
		t.Fatalf("ParseOpenOption: %v", err)
	}
	if err := f.Open(opt, trans.ReadOnlyTransaction()); err != nil {
		t.Fatalf("Open: %v", err)
	}
}

func insertAll(t *testing.T, f *File, keys, payloads []uint32) {
	t.Helper()
	openUpdate(t, f)
	for i, k := range keys {
		if err := f.Insert([]interface{}{k, payloads[i]}); err != nil {
			t.Fatalf("Insert(%d): %v", k, err)
		}
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestInsertExpungeCount(t *testing.T) {
	f := newTestFile(t)
	insertAll(t, f, []uint32{1, 17, 65537}, []uint32{10, 20, 30})

	if got := f.GetCount(); got != 3 {
		t.Fatalf("GetCount() = %d, want 3", got)
	}
	if f.header.FirstKey != 1 || f.header.LastKey != 65537 {
		t.Fatalf("first/last = %d/%d, want 1/65537", f.header.FirstKey, f.header.LastKey)
	}

	openUpdate(t, f)
	if err := f.Expunge([]interface{}{uint32(17)}); err != nil {
		t.Fatalf("Expunge: %v", err)
	}
	f.Close()

	if got := f.GetCount(); got != 2 {
		t.Fatalf("GetCount() after expunge = %d, want 2", got)
	}
	if f.header.FirstKey != 1 || f.header.LastKey != 65537 {
		t.Fatalf("first/last after expunge = %d/%d, want 1/65537", f.header.FirstKey, f.header.LastKey)
	}
}

func scanAll(t *testing.T, f *File, descending bool) []uint32 {
	t.Helper()
	opt, err := ParseOpenOption(map[string]interface{}{
		"OpenMode":    "Read",
		"ReadSubMode": "Scan",
		"SortOrder":   descending,
	})
	if err != nil {
		t.Fatalf("ParseOpenOption: %v", err)
	}
	if err := f.Open(opt, trans.ReadOnlyTransaction()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	var keys []uint32
	for {
		tuple, err := f.Get()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		keys = append(keys, tuple[0].(uint32))
	}
	return keys
}

func TestScanOrder(t *testing.T) {
	f := newTestFile(t)
	insertAll(t, f, []uint32{5, 2, 9, 1}, []uint32{0, 0, 0, 0})

	got := scanAll(t, f, false)
	want := []uint32{1, 2, 5, 9}
	if !equalUint32(got, want) {
		t.Fatalf("ascending scan = %v, want %v", got, want)
	}

	got = scanAll(t, f, true)
	want = []uint32{9, 5, 2, 1}
	if !equalUint32(got, want) {
		t.Fatalf("descending scan = %v, want %v", got, want)
	}
}

// fetch() of a key never inserted returns EOF, not an error.
func TestFetchMiss(t *testing.T) {
	f := newTestFile(t)
	insertAll(t, f, []uint32{1, 2, 3}, []uint32{0, 0, 0})

	opt, err := ParseOpenOption(map[string]interface{}{
		"OpenMode":    "Read",
		"ReadSubMode": "Fetch",
	})
	if err != nil {
		t.Fatalf("ParseOpenOption: %v", err)
	}
	if err := f.Open(opt, trans.ReadOnlyTransaction()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	if err := f.Fetch(42); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if _, err := f.Get(); err != io.EOF {
		t.Fatalf("Get() after miss = %v, want io.EOF", err)
	}
}

// TestRoundTrip checks that insert then fetch returns the same tuple,
// and that fetch returns EOF once the row has been expunged.
func TestRoundTrip(t *testing.T) {
	f := newTestFile(t)
	insertAll(t, f, []uint32{7}, []uint32{99})

	fetchOne := func(key uint32) ([]interface{}, error) {
		opt, _ := ParseOpenOption(map[string]interface{}{
			"OpenMode":    "Read",
			"ReadSubMode": "Fetch",
		})
		if err := f.Open(opt, trans.ReadOnlyTransaction()); err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer f.Close()
		if err := f.Fetch(Key(key)); err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		return f.Get()
	}

	tuple, err := fetchOne(7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if tuple[0].(uint32) != 7 || tuple[1].(uint32) != 99 {
		t.Fatalf("tuple = %v, want [7 99]", tuple)
	}

	openUpdate(t, f)
	if err := f.Expunge([]interface{}{uint32(7)}); err != nil {
		t.Fatalf("Expunge: %v", err)
	}
	f.Close()

	if _, err := fetchOne(7); err != io.EOF {
		t.Fatalf("Get() after expunge = %v, want io.EOF", err)
	}
}

// TestMarkRewindReset checks that repeated reset() calls are a no-op,
// and that mark/rewind restores the pre-mark scan position.
func TestMarkRewindReset(t *testing.T) {
	f := newTestFile(t)
	insertAll(t, f, []uint32{1, 2, 3}, []uint32{0, 0, 0})

	opt, _ := ParseOpenOption(map[string]interface{}{"OpenMode": "Read", "ReadSubMode": "Scan"})
	if err := f.Open(opt, trans.ReadOnlyTransaction()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	first, err := f.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if err := f.Mark(); err != nil {
		t.Fatalf("Mark: %v", err)
	}
	second, err := f.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if first[0] == second[0] {
		t.Fatalf("expected distinct tuples before rewind")
	}
	if err := f.Rewind(); err != nil {
		t.Fatalf("Rewind: %v", err)
	}
	replay, err := f.Get()
	if err != nil {
		t.Fatalf("Get after rewind: %v", err)
	}
	if replay[0] != second[0] {
		t.Fatalf("Get() after Rewind() = %v, want %v (repeat of pre-mark position)", replay, second)
	}

	if err := f.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if err := f.Reset(); err != nil {
		t.Fatalf("second Reset: %v", err)
	}
	restart, err := f.Get()
	if err != nil {
		t.Fatalf("Get after Reset: %v", err)
	}
	if restart[0] != first[0] {
		t.Fatalf("Get() after Reset() = %v, want %v", restart, first)
	}
}

// TestVerify checks that popcount(bitmap) == page.count for every
// page, and that the sum equals header.objectCount, on a healthy file.
func TestVerify(t *testing.T) {
	f := newTestFile(t)
	insertAll(t, f, []uint32{1, 17, 65537, 65538}, []uint32{1, 2, 3, 4})

	var reports []string
	f.Verify(Correct, ProgressFunc(func(pageID uint32, msg string) {
		reports = append(reports, msg)
	}))
	if len(reports) != 0 {
		t.Fatalf("Verify reported inconsistencies on a healthy file: %v", reports)
	}
}

func equalUint32(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
