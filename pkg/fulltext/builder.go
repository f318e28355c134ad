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

import (
	"strconv"

	"sydneygo.dev/sydney/pkg/dberr"
	"sydneygo.dev/sydney/pkg/fulltext/calc"
	"sydneygo.dev/sydney/pkg/fulltext/tea"
)

// MatchCode is one of the tea-syntax match codes a #term/#word/#freetext
// command's first argument names: m=multi-language, n=string,
// e=exact-word, h=word-head, t=word-tail, s=simple-word.
type MatchCode int

const (
	MatchMulti MatchCode = iota
	MatchString
	MatchExact
	MatchHead
	MatchTail
	MatchSimple
)

// parseMatchCode parses a single-letter match code; an empty string
// defaults to MatchSimple, the least restrictive match.
func parseMatchCode(code string) (MatchCode, error) {
	switch code {
	case "", "s":
		return MatchSimple, nil
	case "m":
		return MatchMulti, nil
	case "n":
		return MatchString, nil
	case "e":
		return MatchExact, nil
	case "h":
		return MatchHead, nil
	case "t":
		return MatchTail, nil
	default:
		return 0, dberr.WrongParameterf(code)
	}
}

// Index resolves a term to its posting list during tree construction,
// the seam a real inverted-index driver (pkg/fulltextdriver, out of
// scope here per the index-file-driver Non-goal) implements.
type Index interface {
	Lookup(text, lang string, match MatchCode) (PostingList, error)
}

// defaultCalculator is the calculator used when a tea command's calc
// argument is left empty.
const defaultCalculator = "tf"

// Builder turns a parsed tea.Expr into an executable operator tree:
// Parse alone only produces an AST, Build resolves it against an Index
// and SearchInformation into Nodes ready for LowerBound/Score.
type Builder struct {
	Index Index
	Info  *SearchInformation
}

// NewBuilder returns a Builder that resolves term lookups against
// index and prepares calculators with info's corpus statistics.
func NewBuilder(index Index, info *SearchInformation) *Builder {
	return &Builder{Index: index, Info: info}
}

// BuildQuery parses input as tea syntax and builds the resulting
// operator tree against b's Index and SearchInformation.
func BuildQuery(input string, index Index, info *SearchInformation) (*Query, error) {
	expr, err := tea.Parse(input)
	if err != nil {
		return nil, err
	}
	b := NewBuilder(index, info)
	root, err := b.Build(expr)
	if err != nil {
		return nil, err
	}
	return &Query{Root: root, Info: info}, nil
}

// Build recursively resolves e into a Node, dispatching on e.Command.
func (b *Builder) Build(e *tea.Expr) (Node, error) {
	if e == nil || e.IsLiteral() {
		return nil, dberr.WrongParameterf(e.String())
	}
	switch e.Command {
	case "and-not":
		return b.buildAndNot(e)
	case "and":
		return b.buildAnd(e)
	case "or":
		return b.buildOr(e)
	case "scale":
		return b.buildScale(e)
	case "term", "word":
		return b.buildTerm(e)
	case "freetext":
		return b.buildFreetext(e)
	case "syn", "wordlist":
		return b.buildSynonymGroup(e)
	case "location", "end":
		return b.buildPassThrough(e)
	case "window":
		return b.buildWindow(e)
	default:
		return nil, dberr.NotSupportedf("fulltext: unknown tea command %q", e.Command)
	}
}

func (b *Builder) buildAndNot(e *tea.Expr) (Node, error) {
	if len(e.Children) != 2 {
		return nil, dberr.BadArgumentf("fulltext: #and-not takes exactly 2 children, got %d", len(e.Children))
	}
	left, err := b.Build(e.Children[0])
	if err != nil {
		return nil, err
	}
	right, err := b.Build(e.Children[1])
	if err != nil {
		return nil, err
	}
	return NewAndNot(left, right), nil
}

func (b *Builder) combiner(args []string) (Combiner, error) {
	if len(args) != 1 {
		return nil, dberr.BadArgumentf("fulltext: expected exactly one combiner name, got %d args", len(args))
	}
	combine, ok := LookupCombiner(args[0])
	if !ok {
		return nil, dberr.WrongParameterf(args[0])
	}
	return combine, nil
}

func (b *Builder) buildChildren(children []*tea.Expr) ([]Node, error) {
	nodes := make([]Node, len(children))
	for i, c := range children {
		n, err := b.Build(c)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}

func (b *Builder) buildFieldTerms(children []*tea.Expr) ([]FieldTerm, error) {
	nodes, err := b.buildChildren(children)
	if err != nil {
		return nil, err
	}
	fields := make([]FieldTerm, len(nodes))
	for i, n := range nodes {
		fields[i] = FieldTerm{Node: n, Scale: 1, Geta: 0}
	}
	return fields, nil
}

func (b *Builder) buildAnd(e *tea.Expr) (Node, error) {
	combine, err := b.combiner(e.Args)
	if err != nil {
		return nil, err
	}
	fields, err := b.buildFieldTerms(e.Children)
	if err != nil {
		return nil, err
	}
	return NewTermAnd(fields, combine), nil
}

func (b *Builder) buildOr(e *tea.Expr) (Node, error) {
	combine, err := b.combiner(e.Args)
	if err != nil {
		return nil, err
	}
	children, err := b.buildChildren(e.Children)
	if err != nil {
		return nil, err
	}
	return NewOr(children, combine), nil
}

func (b *Builder) buildScale(e *tea.Expr) (Node, error) {
	if len(e.Args) != 1 || len(e.Children) != 1 {
		return nil, dberr.BadArgumentf("fulltext: #scale takes one arg and one child")
	}
	f, err := strconv.ParseFloat(e.Args[0], 64)
	if err != nil {
		return nil, dberr.WrongParameterf(e.Args[0])
	}
	child, err := b.Build(e.Children[0])
	if err != nil {
		return nil, err
	}
	return NewWeight(child, f), nil
}

// buildLeaf resolves a single literal-text child against b.Index under
// match/lang and returns a prepared TermSingle over it.
func (b *Builder) buildLeaf(match MatchCode, calcName, lang string, textExpr *tea.Expr) (Node, error) {
	if textExpr == nil || !textExpr.IsLiteral() {
		return nil, dberr.BadArgumentf("fulltext: term command needs a literal text child")
	}
	if calcName == "" {
		calcName = defaultCalculator
	}
	list, err := b.Index.Lookup(textExpr.Text, lang, match)
	if err != nil {
		return nil, err
	}
	calculator, err := calc.New(calcName, "")
	if err != nil {
		return nil, err
	}
	if err := calculator.Prepare(b.Info.TotalDocumentFrequency, b.Info.TotalDocumentLength, b.Info.DocumentCount); err != nil {
		return nil, err
	}
	return NewTermSingle(list, calculator), nil
}

// buildTerm handles both "#term[match,calc,lang](text)" and
// "#word[match,lang](text)" (wordlist's per-word children, which take
// no calculator argument and fall back to defaultCalculator).
func (b *Builder) buildTerm(e *tea.Expr) (Node, error) {
	if len(e.Children) != 1 {
		return nil, dberr.BadArgumentf("fulltext: #%s takes exactly one child", e.Command)
	}
	var matchArg, calcArg, langArg string
	switch e.Command {
	case "term":
		if len(e.Args) != 3 {
			return nil, dberr.BadArgumentf("fulltext: #term takes 3 args, got %d", len(e.Args))
		}
		matchArg, calcArg, langArg = e.Args[0], e.Args[1], e.Args[2]
	case "word":
		if len(e.Args) != 2 {
			return nil, dberr.BadArgumentf("fulltext: #word takes 2 args, got %d", len(e.Args))
		}
		matchArg, langArg = e.Args[0], e.Args[1]
	}
	match, err := parseMatchCode(matchArg)
	if err != nil {
		return nil, err
	}
	return b.buildLeaf(match, calcArg, langArg, e.Children[0])
}

// buildFreetext handles "#freetext[match,lang,scale,max](text)". max
// bounds how many terms query expansion (expansion.go) may add from
// this freetext's seed documents; it has no effect on the single leaf
// built here.
func (b *Builder) buildFreetext(e *tea.Expr) (Node, error) {
	if len(e.Args) != 4 || len(e.Children) != 1 {
		return nil, dberr.BadArgumentf("fulltext: #freetext takes 4 args and one child")
	}
	match, err := parseMatchCode(e.Args[0])
	if err != nil {
		return nil, err
	}
	lang := e.Args[1]
	scale, err := strconv.ParseFloat(e.Args[2], 64)
	if err != nil {
		return nil, dberr.WrongParameterf(e.Args[2])
	}
	leaf, err := b.buildLeaf(match, "", lang, e.Children[0])
	if err != nil {
		return nil, err
	}
	if scale == 1 {
		return leaf, nil
	}
	return NewWeight(leaf, scale), nil
}

// buildSynonymGroup handles "#syn(A,B,...)" and
// "#wordlist[n](#word[...](w),...)": both score a document that
// matches any one variant, summing the variants that do. wordlist's
// proximity window n is not checked — that requires position data from
// an on-disk positional index, out of scope per the index-file-driver
// Non-goal — so a wordlist match is treated the same as a synonym
// group's unordered union.
func (b *Builder) buildSynonymGroup(e *tea.Expr) (Node, error) {
	children, err := b.buildChildren(e.Children)
	if err != nil {
		return nil, err
	}
	sum, _ := LookupCombiner("sum")
	return NewOr(children, sum), nil
}

// buildPassThrough handles "#location[p](A)" and "#end[p](A)": both
// constrain where within a document A may match, which again requires
// position data from an on-disk positional index. Without one, the
// constraint cannot be checked, so the wrapped node is returned
// unchanged rather than silently claiming to enforce it.
func (b *Builder) buildPassThrough(e *tea.Expr) (Node, error) {
	if len(e.Children) != 1 {
		return nil, dberr.BadArgumentf("fulltext: #%s takes exactly one child", e.Command)
	}
	return b.Build(e.Children[0])
}

// buildWindow handles "#window[lo,hi,o|u](A,B,...)": without a
// positional index to check the [lo,hi] distance window, this
// approximates the constraint as requiring every child to match the
// same document (like #and with the sum combiner) rather than
// dropping the constraint entirely.
func (b *Builder) buildWindow(e *tea.Expr) (Node, error) {
	fields, err := b.buildFieldTerms(e.Children)
	if err != nil {
		return nil, err
	}
	sum, _ := LookupCombiner("sum")
	return NewTermAnd(fields, sum), nil
}
