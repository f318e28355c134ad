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

// Package availability tracks the process-wide "database available"
// flag. A component that fails to undo a partial write calls
// Set(lockName, false); the administrator must intervene before the
// named lock is usable again.
package availability

import (
	"log"
	"sync"
)

// Tracker records per-lock-name availability. The zero value is ready
// to use and treats every lock name as available until told otherwise.
type Tracker struct {
	mu   sync.RWMutex
	down map[string]bool
}

// Default is the process-wide tracker, analogous to the single global
// Checkpoint::Database of the source system.
var Default = &Tracker{}

// Set marks lockName as available (ok=true) or quarantined (ok=false).
// Every transition is logged unconditionally: this is the one signal an
// administrator has that a file has been taken offline.
func (t *Tracker) Set(lockName string, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.down == nil {
		t.down = make(map[string]bool)
	}
	was := !t.down[lockName]
	t.down[lockName] = !ok
	if was != ok {
		if ok {
			log.Printf("availability: %q restored", lockName)
		} else {
			log.Printf("availability: %q marked UNAVAILABLE, administrator intervention required", lockName)
		}
	}
}

// IsAvailable reports whether lockName has not been quarantined.
func (t *Tracker) IsAvailable(lockName string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return !t.down[lockName]
}
