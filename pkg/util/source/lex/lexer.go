// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package lex

import "github.com/consensys/go-isel/pkg/util/source"

// Token associates a kind with a given range of characters in the text being
// scanned.
type Token struct {
	Kind uint
	Span source.Span
}

// LexRule associates groups of characters accepted by a scanner with a given
// token kind.
//
// nolint
type LexRule[T any] struct {
	scanner Scanner[T]
	kind    uint
}

// Rule constructs a new lexing rule which maps matching characters to a given
// token kind.
func Rule[T any](scanner Scanner[T], kind uint) LexRule[T] {
	return LexRule[T]{scanner, kind}
}

// Lexer tokenises a given input sequence by trying each rule in turn, taking
// the first which matches.
type Lexer[T any] struct {
	items []T
	index int
	rules []LexRule[T]
	// Next token (if already scanned)
	next *Token
}

// NewLexer constructs a new lexer with a given set of lexing rules.
func NewLexer[T any](input []T, rules ...LexRule[T]) *Lexer[T] {
	return &Lexer[T]{input, 0, rules, nil}
}

// Index returns the current index within the items array.
func (p *Lexer[T]) Index() uint {
	return uint(p.index)
}

// Remaining determines how many items from the original sequence were left.
func (p *Lexer[T]) Remaining() uint {
	return uint(max(0, len(p.items)-p.index))
}

// HasNext checks whether or not another token can be produced.
func (p *Lexer[T]) HasNext() bool {
	p.scan()
	return p.next != nil
}

// Next returns the next token and advances the lexer.
func (p *Lexer[T]) Next() Token {
	p.scan()
	//
	if p.next == nil {
		panic("no token available")
	}
	//
	next := *p.next
	p.next = nil
	// An end-of-file token has an empty span, so step over it explicitly.
	if p.index == len(p.items) {
		p.index++
	} else {
		p.index = next.Span.End()
	}
	//
	return next
}

// Collect tokenises everything remaining in one go.  Tokenisation stops at the
// first point where no rule matches; Remaining() then identifies how much was
// left.
func (p *Lexer[T]) Collect() []Token {
	var tokens []Token
	//
	for p.HasNext() {
		tokens = append(tokens, p.Next())
	}
	//
	return tokens
}

func (p *Lexer[T]) scan() {
	if p.next != nil || p.index > len(p.items) {
		return
	}
	//
	for _, r := range p.rules {
		if n := r.scanner(p.items[p.index:]); n > 0 {
			end := min(len(p.items), p.index+int(n))
			p.next = &Token{r.kind, source.NewSpan(p.index, end)}
			//
			return
		}
	}
}
