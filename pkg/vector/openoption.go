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
	"sydneygo.dev/sydney/pkg/dberr"
	"sydneygo.dev/sydney/pkg/sydconfig"
)

// OpenMode is the OpenMode key of a VectorFile's OpenOption.
type OpenMode int

const (
	ModeRead OpenMode = iota
	ModeSearch
	ModeUpdate
	ModeBatch
	ModeInitialize
)

// ReadSubMode is the ReadSubMode key, meaningful only when
// OpenMode == ModeRead.
type ReadSubMode int

const (
	SubModeScan ReadSubMode = iota
	SubModeFetch
)

// CompareOp enumerates SearchOpe values. Vector only ever supports EQ;
// any other value is rejected at OpenOption parse time, restoring the
// behavior of original_source's Vector::OpenParameter.
type CompareOp int

const (
	OpEQ CompareOp = iota
	opOther
)

// OpenOption is the decoded OpenMode/ReadSubMode/... bag.
type OpenOption struct {
	Mode        OpenMode
	SubMode     ReadSubMode
	GetByBitSet bool

	// FieldSelect lists the column indexes to project; nil means all
	// columns. TargetFieldNumber/TargetFieldIndex.N restrict updates to
	// the listed non-key columns.
	FieldSelect       []int
	TargetFieldIndex  []int
	ProjectCount      bool // a "count" pseudo-column was selected

	SortOrder bool // true = descending

	// Vector-specific search parameters.
	SearchFieldIndex int
	SearchValue      interface{}
	SearchOpe        CompareOp
}

// ParseOpenOption decodes a sydconfig.Obj, enforcing SearchOpe==EQ and
// valid OpenMode/ReadSubMode combinations.
func ParseOpenOption(o sydconfig.Obj) (*OpenOption, error) {
	modeStr := o.OptionalString("OpenMode", "Read")
	opt := &OpenOption{}
	switch modeStr {
	case "Read":
		opt.Mode = ModeRead
	case "Search":
		opt.Mode = ModeSearch
	case "Update":
		opt.Mode = ModeUpdate
	case "Batch":
		opt.Mode = ModeBatch
	case "Initialize":
		opt.Mode = ModeInitialize
	default:
		return nil, dberr.BadArgumentf("vector: unknown OpenMode %q", modeStr)
	}

	subStr := o.OptionalString("ReadSubMode", "Scan")
	switch subStr {
	case "Scan":
		opt.SubMode = SubModeScan
	case "Fetch":
		opt.SubMode = SubModeFetch
	default:
		return nil, dberr.BadArgumentf("vector: unknown ReadSubMode %q", subStr)
	}

	opt.GetByBitSet = o.OptionalBool("GetByBitSet", false)
	opt.SortOrder = o.OptionalBool("SortOrder", false)
	opt.ProjectCount = o.OptionalBool("ProjectCount", false)

	if opt.Mode == ModeSearch {
		opt.SearchFieldIndex = o.OptionalInt("SearchFieldIndex", 0)
		opt.SearchValue, _ = o.Raw("SearchValue")
		opeStr := o.OptionalString("SearchOpe", "EQ")
		if opeStr != "EQ" {
			return nil, dberr.NotSupportedf("vector: SearchOpe %q (only EQ is supported)", opeStr)
		}
		opt.SearchOpe = OpEQ
	}

	if err := o.Validate(); err != nil {
		return nil, err
	}
	return opt, nil
}
