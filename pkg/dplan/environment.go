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

// Package dplan implements the distributed query planner: access-plan
// candidates and relations for cascade (horizontally partitioned) and
// replicated tables, rewriting each relation into per-cascade SQL.
package dplan

import "sync"

// Environment owns every planner object (Candidate, Relation, Predicate,
// Scalar) for one planning session, registered by integer id; ownership
// is by the Environment. Grounded on Perkeep's blobserver.Loader
// registry pattern but keyed by int rather than string since the
// planner always constructs its own ids rather than reading them from
// user-facing config.
type Environment struct {
	mu      sync.Mutex
	nextID  int
	objects map[int]interface{}
}

// NewEnvironment returns an empty Environment.
func NewEnvironment() *Environment {
	return &Environment{objects: make(map[int]interface{})}
}

// Register assigns obj a fresh id and returns it.
func (e *Environment) Register(obj interface{}) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	e.objects[id] = obj
	return id
}

// Get returns the object registered under id, or nil if none is.
func (e *Environment) Get(id int) interface{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.objects[id]
}
