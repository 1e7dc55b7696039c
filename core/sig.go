/* Copyright 2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package core

import (
	"sort"
	"strings"
)

// VarargName is the key in Sig.ParamTypes for the "..." mapping.
const VarargName = "..."

// ParamKind tags an element of a parameter list.
type ParamKind int

const (
	// NamedParam is a single required parameter.
	NamedParam ParamKind = iota

	// GroupParam is a bracketed, optional subsequence.  Groups
	// nest.
	GroupParam

	// VarargParam is the final "..." element.
	VarargParam
)

// Param is an element of the positional parameter list.
type Param struct {
	Kind ParamKind

	// Name is set for NamedParam.
	Name string

	// Kids holds the members of a GroupParam.
	Kids []*Param
}

// Sig is a parsed docstring signature.
type Sig struct {
	// Designator is the dotted path as written, possibly with a
	// ":method" final segment.
	Designator string

	// Prefix is the Designator with ":" replaced by "." -- the
	// prefix of every check-error message.
	Prefix string

	// IsMethod reports whether the designator had a ":" segment.
	IsMethod bool

	// Params is the positional parameter list, order and nesting
	// preserved.
	Params []*Param

	// Returns holds the return clauses.  Semantically the return
	// value language is the alternation of these.
	Returns []*Expr

	// ParamTypes maps a parameter name (or VarargName) to its
	// type expression.
	ParamTypes map[string]*Expr

	// Text is the signature paragraph exactly as it appeared in
	// the docstring.
	Text string
}

// ParseDoc scans the docstring for its signature paragraph and parses
// it.
//
// Paragraphs are delimited by blank lines.  The first paragraph whose
// head parses as "designator ( parameter-list )" is the signature
// paragraph; trouble after that point is an error, not a reason to
// keep scanning.  If no paragraph qualifies, the error is
// *NoSignature.
func ParseDoc(doc string) (*Sig, error) {
	for _, paragraph := range strings.Split(doc, "\n\n") {
		sig, err := parseParagraph(paragraph)
		if sig == nil && err == nil {
			continue // not a signature shape
		}
		return sig, err
	}
	return nil, &NoSignature{}
}

// parseParagraph returns (nil, nil) when the paragraph doesn't have
// the signature shape at all.
func parseParagraph(paragraph string) (*Sig, error) {
	lx := newLexer(paragraph)
	p := &sigParser{lx: lx}

	sig, ok := p.head()
	if !ok {
		return nil, nil
	}
	sig.Text = paragraph

	if err := p.tail(sig); err != nil {
		return nil, err
	}
	return sig, nil
}

type sigParser struct {
	lx *lexer
}

// head parses "designator ( parameter-list )".  The bool result
// reports whether the paragraph has that shape; a false means "keep
// scanning paragraphs", never an error.
func (p *sigParser) head() (*Sig, bool) {
	t := p.lx.next()
	if t.kind != tokIdent {
		return nil, false
	}
	designator := t.text
	isMethod := false

	for {
		t = p.lx.next()
		if t.kind == tokDot {
			t = p.lx.next()
			if t.kind != tokIdent {
				return nil, false
			}
			designator += "." + t.text
			continue
		}
		if t.kind == tokColon {
			t = p.lx.next()
			if t.kind != tokIdent {
				return nil, false
			}
			designator += ":" + t.text
			isMethod = true
			t = p.lx.next()
		}
		break
	}

	if t.kind != tokLParen {
		return nil, false
	}

	params, ok := p.paramList(tokRParen, true)
	if !ok {
		return nil, false
	}

	return &Sig{
		Designator: designator,
		Prefix:     strings.Replace(designator, ":", ".", 1),
		IsMethod:   isMethod,
		Params:     params,
		ParamTypes: make(map[string]*Expr, 4),
	}, true
}

// paramList parses items up to the given closing token.  Commas are
// optional separators.  A vararg is accepted only at the top level
// (allowVararg) and only as the final item.
func (p *sigParser) paramList(closer tokenKind, allowVararg bool) ([]*Param, bool) {
	acc := []*Param{}
	for {
		t := p.lx.next()
		switch t.kind {
		case closer:
			return acc, true
		case tokComma:
			continue
		case tokIdent:
			acc = append(acc, &Param{Kind: NamedParam, Name: t.text})
		case tokLBrack:
			kids, ok := p.paramList(tokRBrack, false)
			if !ok {
				return nil, false
			}
			acc = append(acc, &Param{Kind: GroupParam, Kids: kids})
		case tokEllipsis:
			if !allowVararg {
				return nil, false
			}
			acc = append(acc, &Param{Kind: VarargParam})
			// Only a comma may separate "..." from the closer.
			for {
				t = p.lx.next()
				if t.kind == tokComma {
					continue
				}
				break
			}
			return acc, t.kind == closer
		default:
			return nil, false
		}
	}
}

// tail parses the return clauses and the mapping lines.  The head
// already established that this paragraph is the signature, so
// trouble here is an error.
func (p *sigParser) tail(sig *Sig) error {
	for {
		t := p.lx.next()
		switch t.kind {
		case tokEOF:
			return nil

		case tokArrow:
			e, err := p.expr()
			if err != nil {
				return err
			}
			sig.Returns = append(sig.Returns, e)

		case tokIdent:
			name := t.text
			if t = p.lx.next(); t.kind != tokColon {
				return p.fail(t, "expected ':' after parameter name")
			}
			e, err := p.altOfNames()
			if err != nil {
				return err
			}
			if _, have := sig.ParamTypes[name]; have {
				return &ParamRedefined{name}
			}
			sig.ParamTypes[name] = e

		case tokEllipsis:
			if t = p.lx.next(); t.kind != tokColon {
				return p.fail(t, "expected ':' after '...'")
			}
			e, err := p.expr()
			if err != nil {
				return err
			}
			if _, have := sig.ParamTypes[VarargName]; have {
				return &ParamRedefined{VarargName}
			}
			sig.ParamTypes[VarargName] = e

		default:
			return p.fail(t, "unexpected token")
		}
	}
}

// altOfNames parses the restricted right-hand side of a named
// parameter mapping: type names separated by '/'.
func (p *sigParser) altOfNames() (*Expr, error) {
	var kids []*Expr
	for {
		t := p.lx.next()
		if t.kind != tokIdent {
			return nil, p.fail(t, "expected type name")
		}
		kids = append(kids, NewName(t.text))
		if !p.lx.eat(tokSlash) {
			return NewAlt(kids...), nil
		}
	}
}

// expr parses a full type expression.  ',' (sequence) binds loosest,
// then '/' (alternation), then the postfix '*' and '?'.
func (p *sigParser) expr() (*Expr, error) {
	var kids []*Expr
	for {
		e, err := p.alt()
		if err != nil {
			return nil, err
		}
		kids = append(kids, e)
		if !p.lx.eat(tokComma) {
			return NewSeq(kids...), nil
		}
	}
}

func (p *sigParser) alt() (*Expr, error) {
	var kids []*Expr
	for {
		e, err := p.postfix()
		if err != nil {
			return nil, err
		}
		kids = append(kids, e)
		if !p.lx.eat(tokSlash) {
			return NewAlt(kids...), nil
		}
	}
}

func (p *sigParser) postfix() (*Expr, error) {
	e, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		if p.lx.eat(tokStar) {
			e = NewStar(e)
			continue
		}
		if p.lx.eat(tokQuest) {
			e = NewOpt(e)
			continue
		}
		return e, nil
	}
}

func (p *sigParser) primary() (*Expr, error) {
	t := p.lx.next()
	switch t.kind {
	case tokIdent:
		return NewName(t.text), nil
	case tokLParen:
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		if t = p.lx.next(); t.kind != tokRParen {
			return nil, p.fail(t, "expected ')'")
		}
		return e, nil
	}
	return nil, p.fail(t, "expected type expression")
}

func (p *sigParser) fail(t token, reason string) error {
	return &MalformedSignature{Pos: t.pos, Reason: reason}
}

// String renders the signature in canonical form.  Parsing the
// result gives a Sig equal to this one (modulo Text).
func (sig *Sig) String() string {
	var buf strings.Builder
	buf.WriteString(sig.Designator)
	buf.WriteString("(")
	renderParams(&buf, sig.Params)
	buf.WriteString(")")
	for _, r := range sig.Returns {
		buf.WriteString(" ==> ")
		buf.WriteString(r.String())
	}
	// Mapping lines in parameter-list order, vararg last.
	for _, name := range sig.mappedNames() {
		buf.WriteString("\n")
		buf.WriteString(name)
		buf.WriteString(" : ")
		buf.WriteString(sig.ParamTypes[name].String())
	}
	return buf.String()
}

func renderParams(buf *strings.Builder, params []*Param) {
	for i, pm := range params {
		if 0 < i {
			buf.WriteString(", ")
		}
		switch pm.Kind {
		case NamedParam:
			buf.WriteString(pm.Name)
		case GroupParam:
			buf.WriteString("[")
			renderParams(buf, pm.Kids)
			buf.WriteString("]")
		case VarargParam:
			buf.WriteString("...")
		}
	}
}

// mappedNames lists the ParamTypes keys in parameter-list order,
// with any names that aren't in the list (and the vararg) after.
func (sig *Sig) mappedNames() []string {
	var acc []string
	seen := make(map[string]bool, len(sig.ParamTypes))
	var walk func(params []*Param)
	walk = func(params []*Param) {
		for _, pm := range params {
			switch pm.Kind {
			case NamedParam:
				if _, have := sig.ParamTypes[pm.Name]; have && !seen[pm.Name] {
					seen[pm.Name] = true
					acc = append(acc, pm.Name)
				}
			case GroupParam:
				walk(pm.Kids)
			}
		}
	}
	walk(sig.Params)
	var extra []string
	for name := range sig.ParamTypes {
		if name == VarargName || seen[name] {
			continue
		}
		// A mapping for a name that's not in the list: rare,
		// but don't lose it.
		extra = append(extra, name)
	}
	sort.Strings(extra)
	acc = append(acc, extra...)
	if _, have := sig.ParamTypes[VarargName]; have {
		acc = append(acc, VarargName)
	}
	return acc
}
