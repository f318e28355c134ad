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

	"sydneygo.dev/sydney/pkg/catalog"
	"sydneygo.dev/sydney/pkg/sydconfig"
)

// FileIdentifier is the string-keyed parameter bag identifying a
// VectorFile: PageSize, Area.0, Mounted, Temporary, ReadOnly,
// FieldNumber, FieldType.N, Version.
type FileIdentifier struct {
	PageSizeKiB int
	Area        string
	Mounted     bool
	Temporary   bool
	ReadOnly    bool
	Columns     []catalog.Column
	Version     int
}

// ParseFileIdentifier decodes a sydconfig.Obj into a FileIdentifier,
// defaulting PageSize to 4 KiB for Version==1 and to the same 4 KiB
// driver default otherwise — this driver has no larger native page
// size to offer.
func ParseFileIdentifier(o sydconfig.Obj, columns []catalog.Column) (*FileIdentifier, error) {
	version := o.OptionalInt("Version", 2)
	defaultPageSize := 4
	fid := &FileIdentifier{
		PageSizeKiB: o.OptionalInt("PageSize", defaultPageSize),
		Area:        o.OptionalString("Area.0", ""),
		Mounted:     o.OptionalBool("Mounted", false),
		Temporary:   o.OptionalBool("Temporary", false),
		ReadOnly:    o.OptionalBool("ReadOnly", false),
		Version:     version,
		Columns:     columns,
	}
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("vector: bad file identifier: %w", err)
	}
	return fid, nil
}

// PageSizeBytes returns the configured page size in bytes.
func (f *FileIdentifier) PageSizeBytes() int { return f.PageSizeKiB * 1024 }
