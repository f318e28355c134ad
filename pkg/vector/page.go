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
	"math/bits"

	"sydneygo.dev/sydney/pkg/dberr"
)

// layout describes one page's geometry, derived once at Open/Create
// time from the page size and the schema's block size:
//
//	u32 count
//	bitmap: ceil(blocksPerPage/8) bytes, MSB-first within each byte
//	block area: blocksPerPage * blockSize bytes
//
// blocksPerPage = 8*(dataSize-4) / (8*blockSize+1)
type layout struct {
	dataSize      int
	blockSize     int
	blocksPerPage int
	bitmapBytes   int
	countOff      int
	bitmapOff     int
	blockAreaOff  int
}

func newLayout(dataSize, blockSize int) (*layout, error) {
	if blockSize <= 0 {
		return nil, dberr.BadArgumentf("vector: block size must be positive")
	}
	if dataSize <= 4 {
		return nil, dberr.BadArgumentf("vector: page too small for a header")
	}
	blocksPerPage := (8 * (dataSize - 4)) / (8*blockSize + 1)
	if blocksPerPage < 1 {
		return nil, dberr.BadArgumentf("vector: page size %d too small for block size %d", dataSize, blockSize)
	}
	bitmapBytes := (blocksPerPage + 7) / 8
	l := &layout{
		dataSize:      dataSize,
		blockSize:     blockSize,
		blocksPerPage: blocksPerPage,
		bitmapBytes:   bitmapBytes,
		countOff:      0,
		bitmapOff:     4,
		blockAreaOff:  4 + bitmapBytes,
	}
	if l.blockAreaOff+blocksPerPage*blockSize > dataSize {
		return nil, dberr.Unexpectedf("vector: layout overflows page (need %d, have %d)",
			l.blockAreaOff+blocksPerPage*blockSize, dataSize)
	}
	return l, nil
}

func (l *layout) count(data []byte) uint32 {
	return binary.LittleEndian.Uint32(data[l.countOff:])
}

func (l *layout) setCount(data []byte, n uint32) {
	binary.LittleEndian.PutUint32(data[l.countOff:], n)
}

func (l *layout) bitmap(data []byte) []byte {
	return data[l.bitmapOff : l.bitmapOff+l.bitmapBytes]
}

func (l *layout) block(data []byte, blockID int) []byte {
	off := l.blockAreaOff + blockID*l.blockSize
	return data[off : off+l.blockSize]
}

// testBit reports whether blockID is live.
func (l *layout) testBit(data []byte, blockID int) bool {
	b := l.bitmap(data)
	byteIdx := blockID / 8
	bitIdx := 7 - uint(blockID%8) // MSB-first within byte
	return b[byteIdx]&(1<<bitIdx) != 0
}

func (l *layout) setBit(data []byte, blockID int, v bool) {
	b := l.bitmap(data)
	byteIdx := blockID / 8
	bitIdx := 7 - uint(blockID%8)
	if v {
		b[byteIdx] |= 1 << bitIdx
	} else {
		b[byteIdx] &^= 1 << bitIdx
	}
}

// popcount returns the number of live blocks recorded in the bitmap,
// used by verify() to cross-check against the stored count.
func (l *layout) popcount(data []byte) int {
	n := 0
	for _, b := range l.bitmap(data) {
		n += bits.OnesCount8(b)
	}
	return n
}

// pageID returns the 1-based page id containing key (blockID gives the
// block within that page); page 0 is always the header page.
func (l *layout) pageID(key Key) uint32 {
	return 1 + uint32(key)/uint32(l.blocksPerPage)
}

func (l *layout) blockID(key Key) int {
	return int(uint32(key) % uint32(l.blocksPerPage))
}

// keyOf reconstructs the VectorKey for blockID on the page with the
// given 1-based pageID.
func (l *layout) keyOf(pageID uint32, blockID int) Key {
	return Key((pageID-1)*uint32(l.blocksPerPage) + uint32(blockID))
}
