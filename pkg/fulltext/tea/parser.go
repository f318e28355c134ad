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

// Package tea parses tea-syntax, the full-text query language's
// internal string form: "#cmd[arg,arg,...](child,child,...)", where
// each child is itself either a nested #cmd expression or a literal
// (quoted or bare) piece of text. Its recursive-descent structure
// follows pkg/search's expression parser, adapted from that package's
// "predicate:arg" shape to tea's command/argument/children shape.
package tea

import (
	"strconv"
	"strings"

	"sydneygo.dev/sydney/pkg/dberr"
)

// Expr is one node of a parsed tea expression. A node with a non-empty
// Command is a "#cmd[Args](Children)" form; a node with an empty
// Command is a literal leaf (Text holds its value), the form
// #freetext and #term take for the text they search.
type Expr struct {
	Command  string
	Args     []string
	Children []*Expr
	Text     string
}

// IsLiteral reports whether e is a text leaf rather than a command.
func (e *Expr) IsLiteral() bool { return e.Command == "" }

// Parse parses a complete tea expression. It returns dberr.ErrWrongParameter
// (via dberr.WrongParameterf, carrying the offending substring) if the
// input is malformed or if anything is left over after a complete
// expression is read.
func Parse(input string) (*Expr, error) {
	_, tokens := lex(input)
	p := &parser{input: input, toks: drain(tokens)}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.typ != tokenEOF {
		return nil, dberr.WrongParameterf(input[tok.pos:])
	}
	return e, nil
}

func drain(c chan token) []token {
	var toks []token
	for t := range c {
		toks = append(toks, t)
	}
	return toks
}

type parser struct {
	input string
	toks  []token
	pos   int
}

func (p *parser) peek() token {
	if p.pos >= len(p.toks) {
		return token{typ: tokenEOF, pos: len(p.input)}
	}
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) fail(at int) error {
	return dberr.WrongParameterf(p.input[at:])
}

func (p *parser) parseExpr() (*Expr, error) {
	tok := p.peek()
	switch tok.typ {
	case tokenHash:
		return p.parseCommand()
	case tokenText:
		p.next()
		return &Expr{Text: tok.val}, nil
	case tokenQuotedText:
		p.next()
		text, err := strconv.Unquote(tok.val)
		if err != nil {
			return nil, p.fail(tok.pos)
		}
		return &Expr{Text: text}, nil
	case tokenError:
		p.next()
		return nil, dberr.WrongParameterf(tok.val)
	default:
		return nil, p.fail(tok.pos)
	}
}

func (p *parser) parseCommand() (*Expr, error) {
	p.next() // '#'
	nameTok := p.next()
	if nameTok.typ != tokenIdent {
		return nil, p.fail(nameTok.pos)
	}
	e := &Expr{Command: nameTok.val}

	if p.peek().typ == tokenLBracket {
		p.next()
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		e.Args = args
	}

	open := p.peek()
	if open.typ != tokenLParen {
		return nil, p.fail(open.pos)
	}
	p.next()
	children, err := p.parseChildren()
	if err != nil {
		return nil, err
	}
	e.Children = children
	return e, nil
}

// parseArgs reads a comma-separated argument list already past its
// opening '[' and returns after consuming the closing ']'. An argument
// between two commas (or before ']'/after '[') with no text is the
// empty string, matching tea commands like #term[e,,ja] that omit a
// positional argument.
func (p *parser) parseArgs() ([]string, error) {
	if p.peek().typ == tokenRBracket {
		p.next()
		return nil, nil
	}
	var args []string
	for {
		val := ""
		switch p.peek().typ {
		case tokenText:
			val = p.next().val
		case tokenQuotedText:
			tok := p.next()
			s, err := strconv.Unquote(tok.val)
			if err != nil {
				return nil, p.fail(tok.pos)
			}
			val = s
		}
		args = append(args, val)

		switch p.peek().typ {
		case tokenComma:
			p.next()
			continue
		case tokenRBracket:
			p.next()
			return args, nil
		default:
			return nil, p.fail(p.peek().pos)
		}
	}
}

// parseChildren reads a comma-separated child list already past its
// opening '(' and returns after consuming the closing ')'.
func (p *parser) parseChildren() ([]*Expr, error) {
	if p.peek().typ == tokenRParen {
		p.next()
		return nil, nil
	}
	var children []*Expr
	for {
		child, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		children = append(children, child)

		switch p.peek().typ {
		case tokenComma:
			p.next()
			continue
		case tokenRParen:
			p.next()
			return children, nil
		default:
			return nil, p.fail(p.peek().pos)
		}
	}
}

// String reconstructs the canonical tea-syntax form of e: quoting
// arguments/text only when they contain characters a bare token can't
// carry. Parsing String's output reproduces an equivalent tree: command,
// args and children all round-trip, though a literal that needed
// quoting to be reproduced unambiguously is quoted on the way back out
// even if the original source left it bare.
func (e *Expr) String() string {
	if e.IsLiteral() {
		return quoteIfNeeded(e.Text)
	}
	var b strings.Builder
	b.WriteByte('#')
	b.WriteString(e.Command)
	if e.Args != nil {
		b.WriteByte('[')
		for i, a := range e.Args {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quoteIfNeeded(a))
		}
		b.WriteByte(']')
	}
	b.WriteByte('(')
	for i, c := range e.Children {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(c.String())
	}
	b.WriteByte(')')
	return b.String()
}

func quoteIfNeeded(s string) string {
	if s == "" {
		return ""
	}
	if strings.IndexFunc(s, func(r rune) bool { return !isTeaTextRune(r) }) < 0 {
		return s
	}
	return strconv.Quote(s)
}
