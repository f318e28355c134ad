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
	"math"
	"testing"
)

func TestTf(t *testing.T) {
	c, err := New("tf", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := c.FirstStep([]Argument{{Type: TermFrequency, Value: 4}})
	if got != 4 {
		t.Fatalf("FirstStep = %v, want 4", got)
	}
	if got := c.SecondStep(nil); got != 1 {
		t.Fatalf("SecondStep = %v, want 1", got)
	}
}

func TestTfIdf(t *testing.T) {
	c, err := New("tfidf", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Prepare(0, 0, 1000); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	idf := c.SecondStep([]Argument{{Type: DocumentFrequency, Value: 500}})
	want := math.Log(2)
	if math.Abs(idf-want) > 1e-9 {
		t.Fatalf("SecondStep = %v, want %v", idf, want)
	}
}

func TestOkapiDefaultsAndParams(t *testing.T) {
	c, err := New("okapi", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	o := c.(*Okapi)
	if o.k1 != 1.2 || o.b != 0.75 {
		t.Fatalf("defaults = %v/%v, want 1.2/0.75", o.k1, o.b)
	}

	c2, err := New("okapi", "2.0,0.5")
	if err != nil {
		t.Fatalf("New with params: %v", err)
	}
	o2 := c2.(*Okapi)
	if o2.k1 != 2.0 || o2.b != 0.5 {
		t.Fatalf("parsed = %v/%v, want 2.0/0.5", o2.k1, o2.b)
	}

	if _, err := New("okapi", "bad"); err == nil {
		t.Fatalf("expected error for malformed okapi params")
	}
}

func TestUnknownCalculator(t *testing.T) {
	if _, err := New("does-not-exist", ""); err == nil {
		t.Fatalf("expected error for unknown calculator")
	}
}

func TestRegisterExternalDuplicate(t *testing.T) {
	if err := RegisterExternal("tf", nil); err == nil {
		t.Fatalf("expected error registering an already-registered name")
	}
}
