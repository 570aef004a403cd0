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
package ir

import (
	"slices"

	"github.com/consensys/go-isel/pkg/util/source"
	"github.com/consensys/go-isel/pkg/util/source/lex"
)

// Parse accepts a given source file holding a three-address program, and
// parses it into a program.  The returned source map associates the index of
// each instruction with its span in the source file, so that errors arising
// later (e.g. during graph construction) can be highlighted.
func Parse(srcfile *source.File) (Program, *source.Map[uint], []source.SyntaxError) {
	return NewParser(srcfile).Parse()
}

// ============================================================================
// Lexer
// ============================================================================

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace (including newlines)
const WHITESPACE uint = 1

// COMMENT signals "; ... \n"
const COMMENT uint = 2

// EQUALS signals "="
const EQUALS uint = 3

// COMMA signals ","
const COMMA uint = 4

// IDENTIFIER signals a value name, an operation or a keyword.
const IDENTIFIER uint = 5

// KEYWORD_INPUT is the keyword introducing declared inputs.
const KEYWORD_INPUT = "input"

// Rule for describing whitespace
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\r'), lex.Unit('\n')))

var identifierStart lex.Scanner[rune] = lex.Or(
	lex.Unit('_'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'))

var identifierRest lex.Scanner[rune] = lex.Many(lex.Or(
	lex.Unit('_'),
	lex.Unit('\''),
	lex.Within('0', '9'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z')))

// Rule for describing identifiers
var identifier lex.Scanner[rune] = lex.And(identifierStart, identifierRest)

// Comments start with ';' (or ';;') and continue until a newline or EOF.
var comment lex.Scanner[rune] = lex.And(lex.Unit(';'), lex.Until('\n'))

// lexing rules
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(comment, COMMENT),
	lex.Rule(lex.Unit('='), EQUALS),
	lex.Rule(lex.Unit(','), COMMA),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Eof[rune](), END_OF),
}

// ============================================================================
// Parser
// ============================================================================

// Parser is a parser for three-address programs.
type Parser struct {
	srcfile *source.File
	tokens  []lex.Token
	// Maps instruction indices to their spans.
	srcmap *source.Map[uint]
	// Position within the tokens
	index int
}

// NewParser constructs a new parser for a given source file.
func NewParser(srcfile *source.File) *Parser {
	return &Parser{srcfile, nil, source.NewSourceMap[uint](srcfile), 0}
}

// Parse the entire source file into a program, or produce one or more syntax
// errors.
func (p *Parser) Parse() (Program, *source.Map[uint], []source.SyntaxError) {
	var program Program
	//
	if errs := p.lex(); len(errs) > 0 {
		return program, p.srcmap, errs
	}
	//
	for p.lookahead().Kind != END_OF {
		var errs []source.SyntaxError
		//
		if p.atInputDeclaration() {
			var inputs []string
			//
			if inputs, errs = p.parseInputs(program.Inputs); len(errs) == 0 {
				program.Inputs = append(program.Inputs, inputs...)
			}
		} else {
			var (
				start = p.index
				insn  Instruction
			)
			//
			if insn, errs = p.parseInstruction(); len(errs) == 0 {
				p.srcmap.Put(uint(len(program.Instructions)), p.spanOf(start, p.index-1))
				program.Instructions = append(program.Instructions, insn)
			}
		}
		//
		if len(errs) > 0 {
			return program, p.srcmap, errs
		}
	}
	//
	return program, p.srcmap, nil
}

// Initialise lexer and lex contents
func (p *Parser) lex() []source.SyntaxError {
	var (
		lexer  = lex.NewLexer(p.srcfile.Contents(), rules...)
		tokens = lexer.Collect()
	)
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		start, end := lexer.Index(), lexer.Index()+lexer.Remaining()
		err := p.srcfile.SyntaxError(source.NewSpan(int(start), int(end)), "unknown text encountered")
		//
		return []source.SyntaxError{*err}
	}
	// Remove whitespace and comments
	p.tokens = slices.DeleteFunc(tokens, func(t lex.Token) bool {
		return t.Kind == WHITESPACE || t.Kind == COMMENT
	})
	//
	return nil
}

// An input declaration starts with the "input" keyword, unless the keyword is
// itself being used as a destination (i.e. "input = ...").
func (p *Parser) atInputDeclaration() bool {
	lookahead := p.lookahead()
	//
	return lookahead.Kind == IDENTIFIER && p.string(lookahead) == KEYWORD_INPUT &&
		p.tokens[p.index+1].Kind != EQUALS
}

func (p *Parser) parseInputs(declared []string) ([]string, []source.SyntaxError) {
	var inputs []string
	// Skip keyword
	p.index++
	//
	for first := true; first || p.match(COMMA); first = false {
		lookahead := p.lookahead()
		name, errs := p.parseIdentifier()
		//
		if len(errs) > 0 {
			return nil, errs
		} else if slices.Contains(declared, name) || slices.Contains(inputs, name) {
			return nil, p.syntaxErrors(lookahead, "input already declared")
		}
		//
		inputs = append(inputs, name)
	}
	//
	return inputs, nil
}

func (p *Parser) parseInstruction() (Instruction, []source.SyntaxError) {
	var (
		insn     Instruction
		mnemonic lex.Token
		errs     []source.SyntaxError
	)
	//
	if insn.Dst, errs = p.parseIdentifier(); len(errs) > 0 {
		return insn, errs
	} else if _, errs = p.expect(EQUALS); len(errs) > 0 {
		return insn, errs
	} else if mnemonic, errs = p.expect(IDENTIFIER); len(errs) > 0 {
		return insn, errs
	} else if op, ok := ParseOpcode(p.string(mnemonic)); !ok || !op.IsBinary() {
		return insn, p.syntaxErrors(mnemonic, "unknown operation")
	} else {
		insn.Op = op
	}
	//
	if insn.Lhs, errs = p.parseIdentifier(); len(errs) > 0 {
		return insn, errs
	} else if _, errs = p.expect(COMMA); len(errs) > 0 {
		return insn, errs
	} else if insn.Rhs, errs = p.parseIdentifier(); len(errs) > 0 {
		return insn, errs
	}
	//
	return insn, nil
}

func (p *Parser) parseIdentifier() (string, []source.SyntaxError) {
	tok, errs := p.expect(IDENTIFIER)
	//
	if len(errs) > 0 {
		return "", errs
	}
	//
	return p.string(tok), nil
}

// Get the text representing the given token as a string.
func (p *Parser) string(token lex.Token) string {
	return p.srcfile.Text(token.Span)
}

// Lookahead returns the next token.  This must exist because EOF is always
// appended at the end of the token stream.
func (p *Parser) lookahead() lex.Token {
	return p.tokens[p.index]
}

// Expect returns an error if the next token is not what was expected.
func (p *Parser) expect(kind uint) (lex.Token, []source.SyntaxError) {
	lookahead := p.lookahead()
	//
	if lookahead.Kind != kind {
		return lookahead, p.syntaxErrors(lookahead, "unexpected token")
	}
	//
	p.index++
	//
	return lookahead, nil
}

// Match attempts to match the given token.
func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

func (p *Parser) spanOf(firstToken, lastToken int) source.Span {
	start := p.tokens[firstToken].Span.Start()
	end := p.tokens[lastToken].Span.End()
	//
	return source.NewSpan(start, end)
}

func (p *Parser) syntaxErrors(token lex.Token, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.SyntaxError(token.Span, msg)}
}
