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
package pattern

import (
	"fmt"

	"github.com/consensys/go-isel/pkg/ir"
	"github.com/consensys/go-isel/pkg/util/source"
	"github.com/consensys/go-isel/pkg/util/source/sexp"
)

// UNCONSTRAINED is the symbol denoting an unconstrained operand slot.
const UNCONSTRAINED = "_"

// Error arises when an S-expression does not describe a valid pattern.  It
// identifies the offending term, so that callers holding a source map can
// report it against the original text.
type Error struct {
	term sexp.SExp
	msg  string
}

// Term returns the S-expression responsible for this error.
func (p *Error) Term() sexp.SExp {
	return p.term
}

// Message returns the message of this error without its term.
func (p *Error) Message() string {
	return p.msg
}

func (p *Error) Error() string {
	return fmt.Sprintf("%s (%s)", p.msg, p.term.String())
}

// SyntaxError converts this error into a syntax error using a given source map.
// The map must contain the offending term.
func (p *Error) SyntaxError(srcmap *source.Map[sexp.SExp]) *source.SyntaxError {
	return srcmap.SyntaxError(p.term, p.msg)
}

// Parse converts an S-expression into a pattern.  A symbol "op" or a
// singleton list "(op)" is a leaf pattern, whilst "(op L R)" is a binary
// pattern whose operands are patterns or "_".
func Parse(term sexp.SExp) (*Pattern, error) {
	if symbol := term.AsSymbol(); symbol != nil {
		if symbol.Value == UNCONSTRAINED {
			return nil, &Error{term, "unconstrained pattern not permitted here"}
		}
		//
		op, err := parseOpcode(term)
		if err != nil {
			return nil, err
		}
		//
		return Leaf(op), nil
	}
	//
	list := term.AsList()
	//
	switch list.Len() {
	case 1:
		op, err := parseOpcode(list.Get(0))
		if err != nil {
			return nil, err
		}
		//
		return Leaf(op), nil
	case 3:
		op, err := parseOpcode(list.Get(0))
		if err != nil {
			return nil, err
		}
		//
		left, err := parseOperand(list.Get(1))
		if err != nil {
			return nil, err
		}
		//
		right, err := parseOperand(list.Get(2))
		if err != nil {
			return nil, err
		}
		//
		return Binary(op, left, right), nil
	default:
		return nil, &Error{term, "expected (op) or (op lhs rhs)"}
	}
}

// Parse an operand position, where "_" is unconstrained.
func parseOperand(term sexp.SExp) (*Pattern, error) {
	if symbol := term.AsSymbol(); symbol != nil && symbol.Value == UNCONSTRAINED {
		return nil, nil
	}
	//
	return Parse(term)
}

func parseOpcode(term sexp.SExp) (ir.Opcode, error) {
	symbol := term.AsSymbol()
	//
	if symbol == nil {
		return 0, &Error{term, "expected opcode"}
	} else if op, ok := ir.ParseOpcode(symbol.Value); ok {
		return op, nil
	}
	//
	return 0, &Error{term, "unknown opcode"}
}
