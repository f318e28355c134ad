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

import "math"

// TfIdf is the classic tf * log(N/df) calculator.
type TfIdf struct {
	documentCount uint32
}

func (*TfIdf) Initialize(string) error { return nil }

func (c *TfIdf) Prepare(_ uint32, _ uint64, documentCount uint32) error {
	c.documentCount = documentCount
	return nil
}

func (*TfIdf) FirstStep(args []Argument) float64 {
	tf, _ := Find(args, TermFrequency)
	return tf
}

func (c *TfIdf) SecondStep(args []Argument) float64 {
	df, _ := Find(args, DocumentFrequency)
	if df <= 0 || c.documentCount == 0 {
		return 1
	}
	ratio := float64(c.documentCount) / df
	if ratio <= 0 {
		return 1
	}
	return math.Log(ratio)
}

func (c *TfIdf) Copy() Calculator {
	cp := *c
	return &cp
}

func init() {
	Register("tfidf", func(string) (Calculator, error) { return &TfIdf{}, nil })
}
