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

import "math"

// Combiner folds two child scores into one, used by Or/TermAnd/TermOr
// to fold a list of per-child scores as combiner(s1, combiner(s2, ...)).
type Combiner func(a, b float64) float64

var combiners = map[string]Combiner{
	"sum": func(a, b float64) float64 { return a + b },
	"max": math.Max,
	"min": math.Min,
}

// LookupCombiner returns the named combiner, or (nil, false) if name
// isn't one of the built-ins.
func LookupCombiner(name string) (Combiner, bool) {
	c, ok := combiners[name]
	return c, ok
}
