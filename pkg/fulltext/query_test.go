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

package fulltext

import "testing"

func TestQueryCloneIndependence(t *testing.T) {
	node := term(t, map[DocID]uint32{1: 1, 5: 1})
	q := &Query{Root: node, Info: info(), Policy: None, Calculator: "tf"}

	clone := q.Clone()
	in := clone.Info
	if id := clone.Root.LowerBound(in, 1, false); id != 1 {
		t.Fatalf("clone LowerBound = %d, want 1", id)
	}
	// Advancing the clone's root must not disturb q's own cursor.
	if id := q.Root.LowerBound(q.Info, 1, false); id != 1 {
		t.Fatalf("original LowerBound = %d, want 1 (clone advancement leaked)", id)
	}
	if clone.Root == q.Root {
		t.Fatal("Clone must deep-copy Root, not share it")
	}
	if clone.Info == q.Info {
		t.Fatal("Clone must deep-copy Info, not share it")
	}
}
