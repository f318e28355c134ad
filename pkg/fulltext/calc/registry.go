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

package calc

import (
	"fmt"
	"sync"
)

// Factory builds a fresh Calculator from its tea-syntax parameter
// string, e.g. "1.2,0.75" (k1,b) for Okapi.
type Factory func(params string) (Calculator, error)

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// Register adds a built-in calculator factory under name. Called from
// each calculator's init(); panics on a duplicate name since that can
// only happen from a programming error at startup.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("calc: calculator %q already registered", name))
	}
	registry[name] = f
}

// RegisterExternal adds a calculator factory supplied by code outside
// this package, standing in for the DBGetScoreCalculator DLL entry
// point of the original driver: Go has no DLL-loading story in this
// core, so "external" calculators are anything registered at runtime
// rather than compiled into this package.
func RegisterExternal(name string, f Factory) error {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[name]; exists {
		return fmt.Errorf("calc: calculator %q already registered", name)
	}
	registry[name] = f
	return nil
}

// New constructs a calculator by name, parsing params through its
// factory and then Initialize.
func New(name, params string) (Calculator, error) {
	mu.RLock()
	f, ok := registry[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("calc: unknown calculator %q", name)
	}
	c, err := f(params)
	if err != nil {
		return nil, err
	}
	if err := c.Initialize(params); err != nil {
		return nil, err
	}
	return c, nil
}
