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

package dplan

import "testing"

func TestCheckIndexArgumentClassifyAndResidual(t *testing.T) {
	pEq := ComparePredicate{Op: "=", Left: Column("id"), Right: Literal{Value: 1}}
	pLike := ComparePredicate{Op: "LIKE", Left: Column("name"), Right: Literal{Value: "%x%"}}
	pRange := ComparePredicate{Op: ">", Left: Column("score"), Right: Literal{Value: 10}}

	arg := NewCheckIndexArgument()
	arg.Classify(pEq, FetchableByKey)
	arg.Classify(pRange, IndexScan)
	// pLike is intentionally left unclassified, standing in for a
	// predicate no index can help with at all.

	if b, ok := arg.BucketOf(pEq); !ok || b != FetchableByKey {
		t.Errorf("pEq bucket = %v, %v", b, ok)
	}

	residual := arg.Residual([]Predicate{pEq, pLike, pRange})
	if len(residual) != 1 || residual[0] != pLike {
		t.Errorf("residual = %v, want [pLike]", residual)
	}
}

func TestCheckIndexArgumentMustScanIsResidual(t *testing.T) {
	p := ComparePredicate{Op: "<>", Left: Column("x"), Right: Literal{Value: 1}}
	arg := NewCheckIndexArgument()
	arg.Classify(p, MustScan)
	residual := arg.Residual([]Predicate{p})
	if len(residual) != 1 {
		t.Fatalf("want p to remain residual, got %v", residual)
	}
}

func TestAdoptIndexArgumentHasIndex(t *testing.T) {
	var a AdoptIndexArgument
	if a.HasIndex() {
		t.Error("zero-value AdoptIndexArgument should report no index")
	}
	a.File = "idx_id"
	if !a.HasIndex() {
		t.Error("AdoptIndexArgument with a File should report an index")
	}
}

func TestInquiryTableBits(t *testing.T) {
	single := &Table{Name: "t", Cascades: []Cascade{{ID: 0}}}
	got := single.Inquiry(ReferTable | Distributed)
	if got&ReferTable == 0 {
		t.Error("single-cascade table should hold ReferTable")
	}
	if got&Distributed != 0 {
		t.Error("single-cascade table should not hold Distributed")
	}

	multi := &Table{Name: "t", Cascades: []Cascade{{ID: 0}, {ID: 1}}}
	got = multi.Inquiry(ReferTable | Distributed)
	if got&Distributed == 0 {
		t.Error("multi-cascade table should hold Distributed")
	}
}

func TestInquiryCascadeUnionDistinctBit(t *testing.T) {
	u := &CascadeUnion{Distinct: true}
	got := u.Inquiry(Distinct)
	if got&Distinct == 0 {
		t.Error("Distinct-flagged union should report Distinct bit")
	}

	u2 := &CascadeUnion{Distinct: false}
	got = u2.Inquiry(Distinct)
	if got&Distinct != 0 {
		t.Error("non-distinct union should not report Distinct bit")
	}
}
