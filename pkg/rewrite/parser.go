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
package rewrite

import (
	"fmt"
	"unicode"

	"github.com/va5ve/swift/pkg/util"
)

// The textual notation parsed here matches the String renderings of symbols,
// terms and rules.  For example:
//
//	τ_0_0.[P:A] => τ_0_0.[P:B]
//	τ_0_0.[concrete: Map<τ_0_0.[P:A], Int>] => τ_0_0
//
// A rules file holds one rule per line, with blank lines and comments
// (prefixed by "//") ignored.

// SyntaxError signals a malformed term or rule, identifying where in the
// text the problem lies.
type SyntaxError struct {
	// Index (in runes) at which the error was detected.
	Index uint
	// Description of the problem.
	Message string
}

//nolint:revive
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d: %s", e.Index, e.Message)
}

// ParseTerm parses a term in dotted notation.
func ParseTerm(text string) (Term, *SyntaxError) {
	p := &parser{runes: []rune(text)}
	//
	term, err := p.parseTerm()
	if err != nil {
		return term, err
	}
	// Check nothing left over.
	if !p.done() {
		return term, p.fail("unexpected trailing text")
	}
	//
	return term, nil
}

// ParseSystem parses a rules file, returning a rewrite system holding the
// rules in the order given.
func ParseSystem(text string) (*System, *SyntaxError) {
	var (
		system = NewSystem()
		p      = &parser{runes: []rune(text)}
	)
	//
	for {
		p.skipWhitespace()
		//
		if p.done() {
			return system, nil
		}
		//
		lhs, rhs, err := p.parseRule()
		if err != nil {
			return nil, err
		}
		//
		system.AddRule(lhs, rhs, util.None[Path]())
	}
}

// ============================================================================
// Parser
// ============================================================================

type parser struct {
	runes []rune
	index uint
}

func (p *parser) parseRule() (Term, Term, *SyntaxError) {
	var empty Term
	//
	lhs, err := p.parseTerm()
	if err != nil {
		return empty, empty, err
	}
	//
	p.skipSpaces()
	//
	if !p.match("=>") {
		return empty, empty, p.fail("expected \"=>\"")
	}
	//
	p.skipSpaces()
	//
	rhs, err := p.parseTerm()
	if err != nil {
		return empty, empty, err
	}
	//
	return lhs, rhs, nil
}

func (p *parser) parseTerm() (Term, *SyntaxError) {
	var symbols []Symbol
	//
	for {
		symbol, err := p.parseSymbol()
		if err != nil {
			return Term{}, err
		}
		//
		symbols = append(symbols, symbol)
		//
		if !p.match(".") {
			return NewTerm(symbols...), nil
		}
	}
}

func (p *parser) parseSymbol() (Symbol, *SyntaxError) {
	var empty Symbol
	//
	switch {
	case p.match("τ_"):
		return p.parseGenericParam()
	case p.match("["):
		return p.parseBracketedSymbol()
	case p.done():
		return empty, p.fail("expected a symbol")
	}
	//
	name, err := p.parseIdentifier()
	if err != nil {
		return empty, err
	}
	//
	return NewNameSymbol(name), nil
}

func (p *parser) parseGenericParam() (Symbol, *SyntaxError) {
	depth, err := p.parseNumber()
	if err != nil {
		return Symbol{}, err
	}
	//
	if !p.match("_") {
		return Symbol{}, p.fail("expected \"_\"")
	}
	//
	index, err := p.parseNumber()
	if err != nil {
		return Symbol{}, err
	}
	//
	return NewGenericParamSymbol(depth, index), nil
}

// parseBracketedSymbol parses the remainder of a symbol opened with "[":
// either a protocol [P], an associated type [P:A], or a property symbol
// [layout: L], [superclass: C<..>] or [concrete: C<..>].
func (p *parser) parseBracketedSymbol() (Symbol, *SyntaxError) {
	var empty Symbol
	//
	name, err := p.parseIdentifier()
	if err != nil {
		return empty, err
	}
	//
	switch {
	case p.match("]"):
		return NewProtocolSymbol(name), nil
	case p.match(": "):
		return p.parsePropertySymbol(name)
	case p.match(":"):
		return p.parseAssociatedType(name)
	}
	//
	return empty, p.fail("expected \"]\" or \":\"")
}

func (p *parser) parseAssociatedType(protocol string) (Symbol, *SyntaxError) {
	name, err := p.parseIdentifier()
	if err != nil {
		return Symbol{}, err
	}
	//
	if !p.match("]") {
		return Symbol{}, p.fail("expected \"]\"")
	}
	//
	return NewAssociatedTypeSymbol(protocol, name), nil
}

func (p *parser) parsePropertySymbol(keyword string) (Symbol, *SyntaxError) {
	var empty Symbol
	//
	name, err := p.parseIdentifier()
	if err != nil {
		return empty, err
	}
	//
	if keyword == "layout" {
		if !p.match("]") {
			return empty, p.fail("expected \"]\"")
		}
		//
		return NewLayoutSymbol(name), nil
	}
	//
	substitutions, err := p.parseSubstitutions()
	if err != nil {
		return empty, err
	}
	//
	if !p.match("]") {
		return empty, p.fail("expected \"]\"")
	}
	//
	switch keyword {
	case "superclass":
		return NewSuperclassSymbol(name, substitutions...), nil
	case "concrete":
		return NewConcreteTypeSymbol(name, substitutions...), nil
	}
	//
	return empty, p.fail(fmt.Sprintf("unknown property \"%s\"", keyword))
}

func (p *parser) parseSubstitutions() ([]Term, *SyntaxError) {
	if !p.match("<") {
		return nil, nil
	}
	//
	var substitutions []Term
	//
	for {
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		//
		substitutions = append(substitutions, term)
		//
		if p.match(", ") || p.match(",") {
			continue
		}
		//
		if p.match(">") {
			return substitutions, nil
		}
		//
		return nil, p.fail("expected \",\" or \">\"")
	}
}

func (p *parser) parseIdentifier() (string, *SyntaxError) {
	start := p.index
	//
	for !p.done() && isIdentifierRune(p.runes[p.index]) {
		p.index++
	}
	//
	if start == p.index {
		return "", p.fail("expected an identifier")
	}
	//
	return string(p.runes[start:p.index]), nil
}

func (p *parser) parseNumber() (uint, *SyntaxError) {
	start := p.index
	number := uint(0)
	//
	for !p.done() && unicode.IsDigit(p.runes[p.index]) {
		number = (number * 10) + uint(p.runes[p.index]-'0')
		p.index++
	}
	//
	if start == p.index {
		return 0, p.fail("expected a number")
	}
	//
	return number, nil
}

// match consumes the given text if it occurs at the current position.
func (p *parser) match(text string) bool {
	runes := []rune(text)
	//
	if p.index+uint(len(runes)) > uint(len(p.runes)) {
		return false
	}
	//
	for i, r := range runes {
		if p.runes[p.index+uint(i)] != r {
			return false
		}
	}
	//
	p.index += uint(len(runes))
	//
	return true
}

// skipSpaces consumes spaces and tabs.
func (p *parser) skipSpaces() {
	for !p.done() && (p.runes[p.index] == ' ' || p.runes[p.index] == '\t') {
		p.index++
	}
}

// skipWhitespace consumes whitespace of any kind, along with comments.
func (p *parser) skipWhitespace() {
	for !p.done() {
		if unicode.IsSpace(p.runes[p.index]) {
			p.index++
		} else if p.match("//") {
			for !p.done() && p.runes[p.index] != '\n' {
				p.index++
			}
		} else {
			return
		}
	}
}

func (p *parser) done() bool {
	return p.index >= uint(len(p.runes))
}

func (p *parser) fail(message string) *SyntaxError {
	return &SyntaxError{p.index, message}
}

func isIdentifierRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
