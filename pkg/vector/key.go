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

// Package vector implements the fixed-width, page-managed row file
// keyed by a 32-bit VectorKey.
package vector

import "math"

// Key is a VectorKey: a unique row identifier. Undefined denotes "no
// key" and is never a valid row identifier.
type Key uint32

// Undefined is the reserved VectorKey value meaning "undefined".
const Undefined Key = math.MaxUint32

// Valid reports whether k is usable as a row identifier, i.e. is
// neither 0 nor Undefined.
func (k Key) Valid() bool { return k != Undefined && k != 0 }
