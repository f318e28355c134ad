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

// Normalized divides term frequency by document length, penalizing
// long documents without a full BM25 saturation curve.
type Normalized struct{}

func (*Normalized) Initialize(string) error { return nil }

func (*Normalized) Prepare(uint32, uint64, uint32) error { return nil }

func (*Normalized) FirstStep(args []Argument) float64 {
	tf, _ := Find(args, TermFrequency)
	dl, ok := Find(args, DocumentLength)
	if !ok || dl == 0 {
		return tf
	}
	return tf / dl
}

func (*Normalized) SecondStep([]Argument) float64 { return 1 }

func (*Normalized) Copy() Calculator { return &Normalized{} }

func init() {
	Register("normalized", func(string) (Calculator, error) { return &Normalized{}, nil })
}
