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
package sexp

import (
	"unicode"

	"github.com/consensys/go-isel/pkg/util/source"
)

// ParseAll converts a given source file into zero or more S-expressions, or
// returns an error if the text is malformed.  A source map is also returned so
// that later stages can report errors against the original text.
func ParseAll(srcfile *source.File) ([]SExp, *source.Map[SExp], *source.SyntaxError) {
	p := NewParser(srcfile)
	//
	terms := make([]SExp, 0)
	//
	for {
		term, err := p.Parse()
		//
		if err != nil {
			return nil, p.srcmap, err
		} else if term == nil {
			// EOF reached
			return terms, p.srcmap, nil
		}
		//
		terms = append(terms, term)
	}
}

// Parser represents a parser in the process of parsing a given source file
// into one or more S-expressions.
type Parser struct {
	srcfile *source.File
	// Cache (for simplicity)
	text []rune
	// Current position within text
	index int
	// Mapping from constructed S-Expressions to their spans in the original text.
	srcmap *source.Map[SExp]
}

// NewParser constructs a new instance of Parser
func NewParser(srcfile *source.File) *Parser {
	return &Parser{
		srcfile: srcfile,
		text:    srcfile.Contents(),
		index:   0,
		srcmap:  source.NewSourceMap[SExp](srcfile),
	}
}

// SourceMap returns the source map constructed during parsing.
func (p *Parser) SourceMap() *source.Map[SExp] {
	return p.srcmap
}

// Parse the next S-Expression, returning nil when the end of the input is
// reached.
func (p *Parser) Parse() (SExp, *source.SyntaxError) {
	var term SExp
	// Skip over any whitespace, so the span of this term starts correctly.
	p.skipWhiteSpace()
	//
	start := p.index
	token := p.next()
	//
	switch {
	case token == nil:
		return nil, nil
	case len(token) == 1 && token[0] == ')':
		p.index--
		return nil, p.error("unexpected end-of-list")
	case len(token) == 1 && token[0] == '(':
		elements, err := p.parseList()
		if err != nil {
			return nil, err
		}
		//
		term = &List{elements}
	default:
		term = &Symbol{string(token)}
	}
	//
	p.srcmap.Put(term, source.NewSpan(start, p.index))
	//
	return term, nil
}

func (p *Parser) next() []rune {
	p.skipWhiteSpace()
	//
	if p.index == len(p.text) {
		return nil
	} else if c := p.text[p.index]; c == '(' || c == ')' {
		p.index++
		return p.text[p.index-1 : p.index]
	}
	//
	start := p.index
	//
	for p.index < len(p.text) && !isDelimiter(p.text[p.index]) {
		p.index++
	}
	//
	return p.text[start:p.index]
}

// Skip whitespace and ";" comments, which run to the end of the line.
func (p *Parser) skipWhiteSpace() {
	for p.index < len(p.text) {
		c := p.text[p.index]
		//
		if c == ';' {
			for p.index < len(p.text) && p.text[p.index] != '\n' {
				p.index++
			}
		} else if unicode.IsSpace(c) {
			p.index++
		} else {
			return
		}
	}
}

func (p *Parser) parseList() ([]SExp, *source.SyntaxError) {
	var elements []SExp
	//
	for {
		p.skipWhiteSpace()
		//
		if p.index == len(p.text) {
			return nil, p.error("unexpected end-of-file")
		} else if p.text[p.index] == ')' {
			p.index++
			return elements, nil
		}
		//
		element, err := p.Parse()
		if err != nil {
			return nil, err
		}
		//
		elements = append(elements, element)
	}
}

// Construct a parser error at the current position in the input stream.
func (p *Parser) error(msg string) *source.SyntaxError {
	end := min(p.index+1, len(p.text))
	return p.srcfile.SyntaxError(source.NewSpan(min(p.index, end), end), msg)
}

func isDelimiter(c rune) bool {
	return c == '(' || c == ')' || c == ';' || unicode.IsSpace(c)
}
