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
	"encoding/binary"
	"fmt"
	"math"

	"sydneygo.dev/sydney/pkg/catalog"
	"sydneygo.dev/sydney/pkg/dberr"
)

// Schema is the validated, fixed-width column layout of a VectorFile.
// Columns[0] is always the key column (a catalog.UInt32 column); the
// remaining columns make up one Block, and the VectorKey itself is
// never persisted in the block.
type Schema struct {
	Columns    []catalog.Column // Columns[0] is the key
	BlockSize  int              // sum of non-key field byte widths
	fieldSizes []int            // byte width per non-key column
}

// Validate builds a Schema from columns, failing BadArgument on the
// first variable-length field: variable-length fields fail creation.
func Validate(columns []catalog.Column) (*Schema, error) {
	if len(columns) < 1 {
		return nil, dberr.BadArgumentf("vector: schema needs at least a key column")
	}
	if columns[0].Type != catalog.UInt32 {
		return nil, dberr.BadArgumentf("vector: key column must be UInt32, got %v", columns[0].Type)
	}
	s := &Schema{Columns: columns}
	for i, c := range columns[1:] {
		size, err := fieldSize(c)
		if err != nil {
			return nil, dberr.BadArgumentf("vector: column %d (%s): %v", i+1, c.Name, err)
		}
		s.fieldSizes = append(s.fieldSizes, size)
		s.BlockSize += size
	}
	return s, nil
}

func fieldSize(c catalog.Column) (int, error) {
	switch c.Type {
	case catalog.Int32, catalog.UInt32, catalog.Float32:
		return 4, nil
	case catalog.Int64, catalog.UInt64, catalog.Float64:
		return 8, nil
	case catalog.FixedString:
		if c.Length <= 0 {
			return 0, fmt.Errorf("fixed string column must declare a positive Length")
		}
		return c.Length, nil
	default:
		return 0, fmt.Errorf("variable-length or unknown type %v not supported", c.Type)
	}
}

// encodeBlock writes the non-key columns of tuple (tuple[1:]) into buf,
// which must be exactly s.BlockSize bytes.
func (s *Schema) encodeBlock(tuple []interface{}, buf []byte) error {
	if len(tuple) != len(s.Columns) {
		return dberr.BadArgumentf("vector: tuple has %d fields, schema has %d", len(tuple), len(s.Columns))
	}
	off := 0
	for i, c := range s.Columns[1:] {
		n := s.fieldSizes[i]
		if err := encodeField(c, tuple[i+1], buf[off:off+n]); err != nil {
			return dberr.BadArgumentf("vector: column %q: %v", c.Name, err)
		}
		off += n
	}
	return nil
}

func encodeField(c catalog.Column, v interface{}, out []byte) error {
	switch c.Type {
	case catalog.Int32:
		n, ok := v.(int32)
		if !ok {
			return fmt.Errorf("expected int32, got %T", v)
		}
		binary.LittleEndian.PutUint32(out, uint32(n))
	case catalog.UInt32:
		n, ok := v.(uint32)
		if !ok {
			return fmt.Errorf("expected uint32, got %T", v)
		}
		binary.LittleEndian.PutUint32(out, n)
	case catalog.Int64:
		n, ok := v.(int64)
		if !ok {
			return fmt.Errorf("expected int64, got %T", v)
		}
		binary.LittleEndian.PutUint64(out, uint64(n))
	case catalog.UInt64:
		n, ok := v.(uint64)
		if !ok {
			return fmt.Errorf("expected uint64, got %T", v)
		}
		binary.LittleEndian.PutUint64(out, n)
	case catalog.Float32:
		f, ok := v.(float32)
		if !ok {
			return fmt.Errorf("expected float32, got %T", v)
		}
		binary.LittleEndian.PutUint32(out, math.Float32bits(f))
	case catalog.Float64:
		f, ok := v.(float64)
		if !ok {
			return fmt.Errorf("expected float64, got %T", v)
		}
		binary.LittleEndian.PutUint64(out, math.Float64bits(f))
	case catalog.FixedString:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		if len(s) > len(out) {
			return fmt.Errorf("string %q exceeds column width %d", s, len(out))
		}
		copy(out, s)
		for i := len(s); i < len(out); i++ {
			out[i] = 0
		}
	default:
		return fmt.Errorf("unsupported type %v", c.Type)
	}
	return nil
}

// decodeBlock reads a full tuple (key + non-key columns) out of a
// block's bytes.
func (s *Schema) decodeBlock(key Key, block []byte) []interface{} {
	tuple := make([]interface{}, len(s.Columns))
	tuple[0] = uint32(key)
	off := 0
	for i, c := range s.Columns[1:] {
		n := s.fieldSizes[i]
		tuple[i+1] = decodeField(c, block[off:off+n])
		off += n
	}
	return tuple
}

func decodeField(c catalog.Column, in []byte) interface{} {
	switch c.Type {
	case catalog.Int32:
		return int32(binary.LittleEndian.Uint32(in))
	case catalog.UInt32:
		return binary.LittleEndian.Uint32(in)
	case catalog.Int64:
		return int64(binary.LittleEndian.Uint64(in))
	case catalog.UInt64:
		return binary.LittleEndian.Uint64(in)
	case catalog.Float32:
		return math.Float32frombits(binary.LittleEndian.Uint32(in))
	case catalog.Float64:
		return math.Float64frombits(binary.LittleEndian.Uint64(in))
	case catalog.FixedString:
		end := len(in)
		for end > 0 && in[end-1] == 0 {
			end--
		}
		return string(in[:end])
	default:
		return nil
	}
}
