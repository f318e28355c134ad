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
	"math"
	"strconv"
	"strings"
)

// Okapi implements BM25: k1 controls term-frequency saturation, b
// controls document-length normalization strength. Parameters are
// given as "k1,b" (e.g. "1.2,0.75"); both default if the string is
// empty.
type Okapi struct {
	k1, b                 float64
	averageDocumentLength float64
	documentCount         uint32
}

func (c *Okapi) Initialize(params string) error {
	c.k1, c.b = 1.2, 0.75
	params = strings.TrimSpace(params)
	if params == "" {
		return nil
	}
	parts := strings.Split(params, ",")
	if len(parts) != 2 {
		return fmt.Errorf("calc: okapi parameters must be \"k1,b\", got %q", params)
	}
	k1, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return fmt.Errorf("calc: okapi k1: %w", err)
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return fmt.Errorf("calc: okapi b: %w", err)
	}
	c.k1, c.b = k1, b
	return nil
}

func (c *Okapi) Prepare(_ uint32, totalDocumentLength uint64, documentCount uint32) error {
	c.documentCount = documentCount
	if documentCount > 0 {
		c.averageDocumentLength = float64(totalDocumentLength) / float64(documentCount)
	}
	return nil
}

func (c *Okapi) FirstStep(args []Argument) float64 {
	tf, _ := Find(args, TermFrequency)
	dl, ok := Find(args, DocumentLength)
	if !ok {
		dl = c.averageDocumentLength
	}
	norm := c.averageDocumentLength
	if norm == 0 {
		norm = dl
	}
	var lengthNorm float64 = 1
	if norm > 0 {
		lengthNorm = (1 - c.b) + c.b*(dl/norm)
	}
	return (tf * (c.k1 + 1)) / (tf + c.k1*lengthNorm)
}

func (c *Okapi) SecondStep(args []Argument) float64 {
	df, _ := Find(args, DocumentFrequency)
	n := float64(c.documentCount)
	idf := math.Log((n-df+0.5)/(df+0.5) + 1)
	if idf < 0 {
		return 0
	}
	return idf
}

func (c *Okapi) Copy() Calculator {
	cp := *c
	return &cp
}

func init() {
	Register("okapi", func(params string) (Calculator, error) { return &Okapi{}, nil })
}
