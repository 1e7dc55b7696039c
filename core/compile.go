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

// Turning a Sig into Checkers.
//
// The parameter list is walked in order, each item contributing an
// NFA fragment; the fragments are concatenated, determinized, and
// wrapped in a Checker.  Return clauses are simpler: the alternation
// of the clauses is just a type expression.

// DefaultStackOffset is the stack offset carried into CheckErrors
// when the caller doesn't configure one.
var DefaultStackOffset = 1

// paramType gives the effective type expression for a named
// parameter: its mapping line, or the name itself as a type name.
func (sig *Sig) paramType(name string) *Expr {
	if e, have := sig.ParamTypes[name]; have {
		return e
	}
	return NewName(name)
}

// selfType resolves the implicit receiver's type: "object" when
// that's registered, else "userdata / table" when both are, else
// "self" itself (which then resolves like any other unmapped name).
func selfType(reg *Registry) *Expr {
	if reg.Has("object") {
		return NewName("object")
	}
	if reg.Has("userdata") && reg.Has("table") {
		return NewAlt(NewName("userdata"), NewName("table"))
	}
	return NewName("self")
}

// ArgsNFA assembles the NFA for the signature's full argument list.
func (sig *Sig) ArgsNFA(reg *Registry) (*NFA, error) {
	params := sig.Params
	if sig.IsMethod {
		params = append([]*Param{{Kind: NamedParam, Name: "self"}}, params...)
	}

	used := make(map[string]bool, len(params))
	acc := newEmptyNFA()

	var walk func(params []*Param, into *NFA) error
	walk = func(params []*Param, into *NFA) error {
		for _, pm := range params {
			switch pm.Kind {
			case NamedParam:
				if used[pm.Name] {
					return &DuplicateParamUse{pm.Name}
				}
				used[pm.Name] = true

				e := sig.paramType(pm.Name)
				if pm.Name == "self" && sig.IsMethod {
					if _, mapped := sig.ParamTypes["self"]; !mapped {
						e = selfType(reg)
					}
				}
				frag, err := exprNFA(e, reg)
				if err != nil {
					return err
				}
				into.Append(frag)

			case GroupParam:
				group := newEmptyNFA()
				if err := walk(pm.Kids, group); err != nil {
					return err
				}
				if group.N == 1 {
					continue // "[ ]" is vacuous; an epsilon self-loop is not
				}
				group.MakeOpt()
				into.Append(group)

			case VarargParam:
				e, have := sig.ParamTypes[VarargName]
				if !have {
					e = NewStar(NewName("any"))
				}
				frag, err := exprNFA(e, reg)
				if err != nil {
					return err
				}
				into.Append(frag)
			}
		}
		return nil
	}

	if err := walk(params, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// RetsNFA assembles the NFA for the return-value language: the
// alternation of the signature's return clauses.  With no return
// clauses there is no return language and the result is nil.
func (sig *Sig) RetsNFA(reg *Registry) (*NFA, error) {
	if len(sig.Returns) == 0 {
		return nil, nil
	}
	return exprNFA(NewAlt(sig.Returns...), reg)
}

// ArgChecker builds the argument checker for a parsed signature.
func (sig *Sig) ArgChecker(reg *Registry, stackOffset int) (*Checker, error) {
	nfa, err := sig.ArgsNFA(reg)
	if err != nil {
		return nil, err
	}
	indexOffset := 0
	if sig.IsMethod {
		indexOffset = -1
	}
	return newChecker(sig, ArgumentError, nfa.Determinize(), indexOffset, stackOffset), nil
}

// RetChecker builds the return-value checker, or nil if the
// signature declares no returns.
func (sig *Sig) RetChecker(reg *Registry, stackOffset int) (*Checker, error) {
	nfa, err := sig.RetsNFA(reg)
	if err != nil || nfa == nil {
		return nil, err
	}
	return newChecker(sig, ReturnError, nfa.Determinize(), 0, stackOffset), nil
}

// CheckArgs parses the docstring and builds its argument checker.
func CheckArgs(doc string, reg *Registry) (*Checker, error) {
	sig, err := ParseDoc(doc)
	if err != nil {
		return nil, err
	}
	return sig.ArgChecker(reg, DefaultStackOffset)
}

// CheckRets parses the docstring and builds its return checker.  A
// signature without return clauses gives (nil, nil).
func CheckRets(doc string, reg *Registry) (*Checker, error) {
	sig, err := ParseDoc(doc)
	if err != nil {
		return nil, err
	}
	return sig.RetChecker(reg, DefaultStackOffset)
}
