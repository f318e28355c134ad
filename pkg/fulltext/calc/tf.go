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

// Tf scores purely on raw term frequency: no length normalization, no
// IDF. Useful as a baseline and in tests.
type Tf struct{}

func (*Tf) Initialize(string) error { return nil }

func (*Tf) Prepare(uint32, uint64, uint32) error { return nil }

func (*Tf) FirstStep(args []Argument) float64 {
	tf, _ := Find(args, TermFrequency)
	return tf
}

func (*Tf) SecondStep([]Argument) float64 { return 1 }

func (*Tf) Copy() Calculator { return &Tf{} }

func init() { Register("tf", func(string) (Calculator, error) { return &Tf{}, nil }) }
