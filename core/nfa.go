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

// NFAs are graphs with cycles (Star makes loops), so states and
// transitions are plain integer-indexed records, not linked objects.
// State 1 is the only start state; state n is the only accept state,
// and it never has outgoing transitions.

// Trans is an NFA transition.  A nil Pred is an epsilon edge.
type Trans struct {
	From, To int
	Pred     *Pred
}

// NFA is a nondeterministic automaton over value predicates.
//
// An NFA is mutated in place while an expression or a parameter list
// is being built, and discarded once the DFA exists.
type NFA struct {
	// N is the number of states.  Start is 1; accept is N.
	N int

	Trans []Trans

	// HasUserType: some transition tests a caller-registered
	// predicate.
	HasUserType bool

	// Nonlinear: the graph branches or loops; it's not a simple
	// chain.
	Nonlinear bool

	// NeedsBacktracking: subset construction may leave
	// nondeterminism over user predicates, so the checker has to
	// try alternatives at call time.  Conservative: may be true
	// when linear checking would in fact suffice, never the
	// reverse.
	NeedsBacktracking bool
}

// newPredNFA is the leaf: one transition from start to accept.
func newPredNFA(p *Pred) *NFA {
	return &NFA{
		N:           2,
		Trans:       []Trans{{From: 1, To: 2, Pred: p}},
		HasUserType: p.User,
	}
}

// newEmptyNFA accepts exactly the empty sequence.  Used for an empty
// parameter list; expressions never produce it.
func newEmptyNFA() *NFA {
	return &NFA{N: 1}
}

// shift renumbers every state by delta.
func (a *NFA) shift(delta int) {
	for i := range a.Trans {
		a.Trans[i].From += delta
		a.Trans[i].To += delta
	}
}

// Append concatenates b onto a: b's states are renumbered to start
// after a's, and an epsilon edge joins a's old accept to b's start.
//
// Flag rule: appending a user-typed fragment onto an already
// branching graph is what can make the eventual DFA ambiguous, so
// that combination sets NeedsBacktracking.
func (a *NFA) Append(b *NFA) {
	if a.Nonlinear && b.HasUserType {
		a.NeedsBacktracking = true
	}

	offset := a.N
	b.shift(offset)
	a.Trans = append(a.Trans, Trans{From: offset, To: offset + 1})
	a.Trans = append(a.Trans, b.Trans...)
	a.N += b.N

	a.HasUserType = a.HasUserType || b.HasUserType
	a.Nonlinear = a.Nonlinear || b.Nonlinear
	a.NeedsBacktracking = a.NeedsBacktracking || b.NeedsBacktracking
}

// altNFA splices the given NFAs between a fresh start and a fresh
// accept.
func altNFA(kids []*NFA) *NFA {
	if len(kids) == 1 {
		kid := kids[0]
		kid.Nonlinear = true
		if kid.HasUserType {
			kid.NeedsBacktracking = true
		}
		return kid
	}

	acc := &NFA{N: 1, Nonlinear: true}
	total := 2
	for _, kid := range kids {
		total += kid.N
	}

	offset := 1
	for _, kid := range kids {
		kid.shift(offset)
		acc.Trans = append(acc.Trans, Trans{From: 1, To: offset + 1})
		acc.Trans = append(acc.Trans, kid.Trans...)
		acc.Trans = append(acc.Trans, Trans{From: offset + kid.N, To: total})
		offset += kid.N

		acc.HasUserType = acc.HasUserType || kid.HasUserType
		acc.NeedsBacktracking = acc.NeedsBacktracking || kid.NeedsBacktracking
		acc.Nonlinear = acc.Nonlinear || kid.Nonlinear
	}
	acc.N = total

	if acc.HasUserType {
		acc.NeedsBacktracking = true
	}

	return acc
}

// MakeOpt adds an epsilon edge from start to accept.
func (a *NFA) MakeOpt() {
	a.Trans = append(a.Trans, Trans{From: 1, To: a.N})
	a.Nonlinear = true
	if a.HasUserType {
		a.NeedsBacktracking = true
	}
}

// MakeStar turns the NFA into zero-or-more: loop the accept back to
// the start ("one or more"), move the accept to a fresh state so it
// has no outgoing edges, then make the whole thing optional.
func (a *NFA) MakeStar() {
	a.Trans = append(a.Trans, Trans{From: a.N, To: 1})
	a.Trans = append(a.Trans, Trans{From: a.N, To: a.N + 1})
	a.N++
	a.MakeOpt()
}

// exprNFA builds the NFA for a type expression, resolving type names
// in the registry.  An unknown name is a build-time error.
func exprNFA(e *Expr, reg *Registry) (*NFA, error) {
	switch e.Kind {
	case NameExpr:
		p, have := reg.Lookup(e.Name)
		if !have {
			return nil, &UndefinedType{e.Name}
		}
		return newPredNFA(p), nil

	case SeqExpr:
		acc, err := exprNFA(e.Kids[0], reg)
		if err != nil {
			return nil, err
		}
		for _, kid := range e.Kids[1:] {
			b, err := exprNFA(kid, reg)
			if err != nil {
				return nil, err
			}
			acc.Append(b)
		}
		return acc, nil

	case AltExpr:
		kids := make([]*NFA, 0, len(e.Kids))
		for _, kid := range e.Kids {
			b, err := exprNFA(kid, reg)
			if err != nil {
				return nil, err
			}
			kids = append(kids, b)
		}
		return altNFA(kids), nil

	case StarExpr:
		a, err := exprNFA(e.Kids[0], reg)
		if err != nil {
			return nil, err
		}
		a.MakeStar()
		return a, nil

	case OptExpr:
		a, err := exprNFA(e.Kids[0], reg)
		if err != nil {
			return nil, err
		}
		a.MakeOpt()
		return a, nil
	}

	panic("unknown Expr kind")
}
