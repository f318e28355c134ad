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
	"fmt"

	"sydneygo.dev/sydney/pkg/physfile"
)

// VerifyTreatment selects how thoroughly Verify checks the file,
// restoring the two levels the original Vector::File::verify supports.
type VerifyTreatment int

const (
	// LightCheck only compares popcount(bitmap) to page.count per page.
	LightCheck VerifyTreatment = iota
	// Correct additionally cross-checks the header's objectCount and
	// first/lastVectorKey bounds.
	Correct
)

// Progress receives verify() inconsistency reports. verify() never
// throws: every mismatch is reported here and checking moves on to the
// next page.
type Progress interface {
	Report(pageID uint32, msg string)
}

// ProgressFunc adapts a function to Progress.
type ProgressFunc func(pageID uint32, msg string)

func (f ProgressFunc) Report(pageID uint32, msg string) { f(pageID, msg) }

// Verify walks every allocated page, checking popcount(bitmap) ==
// page.count and, at Correct treatment, that the sum of page counts
// equals header.objectCount and no live block falls outside
// [firstVectorKey, lastVectorKey].
func (f *File) Verify(treatment VerifyTreatment, progress Progress) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.substantiated {
		return
	}
	f.refreshPagesCache()

	var total uint32
	for _, pageID := range f.pagesCache {
		if pageID == 0 {
			continue
		}
		p, err := f.pf.AttachPage(pageID, physfile.FixReadOnly)
		if err != nil {
			progress.Report(pageID, fmt.Sprintf("attach failed: %v", err))
			continue
		}
		count := f.layout.count(p.Data)
		pop := f.layout.popcount(p.Data)
		ok := true
		if uint32(pop) != count {
			progress.Report(pageID, fmt.Sprintf("popcount(bitmap)=%d != page.count=%d", pop, count))
			ok = false
		}
		if ok && treatment == Correct {
			f.checkBoundsLocked(pageID, p.Data, progress)
		}
		total += count
		f.pf.DetachPage(p, physfile.UnfixNotDirty, false)
	}

	if treatment == Correct && total != f.header.ObjectCount {
		progress.Report(0, fmt.Sprintf("sum(page.count)=%d != header.objectCount=%d", total, f.header.ObjectCount))
	}
}

func (f *File) checkBoundsLocked(pageID uint32, data []byte, progress Progress) {
	for b := 0; b < f.layout.blocksPerPage; b++ {
		if !f.layout.testBit(data, b) {
			continue
		}
		key := f.layout.keyOf(pageID, b)
		if f.header.FirstKey != Undefined && key < f.header.FirstKey {
			progress.Report(pageID, fmt.Sprintf("live key %d precedes firstVectorKey %d", key, f.header.FirstKey))
			return
		}
		if f.header.LastKey != Undefined && key > f.header.LastKey {
			progress.Report(pageID, fmt.Sprintf("live key %d exceeds lastVectorKey %d", key, f.header.LastKey))
			return
		}
	}
}
