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

import "encoding/binary"

// header is the page-0 FileInfo: version, total objectCount,
// first/lastVectorKey, lastModifiedTimestamp (stored as Unix
// nanoseconds, the Go analogue of the DateTime-canonical 8-byte form).
type header struct {
	Version      uint32
	ObjectCount  uint32
	FirstKey     Key
	LastKey      Key
	LastModified int64
}

const headerEncodedSize = 4 + 4 + 4 + 4 + 8

func (h *header) encode(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:], h.Version)
	binary.LittleEndian.PutUint32(buf[4:], h.ObjectCount)
	binary.LittleEndian.PutUint32(buf[8:], uint32(h.FirstKey))
	binary.LittleEndian.PutUint32(buf[12:], uint32(h.LastKey))
	binary.LittleEndian.PutUint64(buf[16:], uint64(h.LastModified))
}

func decodeHeader(buf []byte) *header {
	return &header{
		Version:      binary.LittleEndian.Uint32(buf[0:]),
		ObjectCount:  binary.LittleEndian.Uint32(buf[4:]),
		FirstKey:     Key(binary.LittleEndian.Uint32(buf[8:])),
		LastKey:      Key(binary.LittleEndian.Uint32(buf[12:])),
		LastModified: int64(binary.LittleEndian.Uint64(buf[16:])),
	}
}
