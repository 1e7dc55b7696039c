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
	"strings"
)

// Checker validates a value sequence against a DFA.
//
// A Checker is a pure function over its DFA and predicate table; it
// never mutates anything and is safe to call concurrently.
//
// The DFA is walked at call time via per-state transition tables.
// Generating and loading code per checker would buy nothing here and
// would grow the attack surface.
type Checker struct {
	prefix string
	kind   ErrorKind

	dfa    *DFA
	states [][]DTrans

	// indexOffset shifts user-visible positions.  For a method
	// it's -1 so that the implicit self is "no. 0" and the first
	// declared parameter stays "no. 1".
	indexOffset int

	// stackOffset is carried into CheckErrors for the host's
	// error facility.
	stackOffset int
}

func newChecker(sig *Sig, kind ErrorKind, dfa *DFA, indexOffset, stackOffset int) *Checker {
	return &Checker{
		prefix:      sig.Prefix,
		kind:        kind,
		dfa:         dfa,
		states:      dfa.outgoing(),
		indexOffset: indexOffset,
		stackOffset: stackOffset,
	}
}

// NeedsBacktracking reports which evaluation mode this checker uses.
func (c *Checker) NeedsBacktracking() bool {
	return c.dfa.NeedsBacktracking
}

// Check validates vals.  On acceptance the values pass through
// unchanged; on rejection the error is a *CheckError.
func (c *Checker) Check(vals ...interface{}) ([]interface{}, error) {
	if c.dfa.NeedsBacktracking {
		return c.checkBacktracking(vals)
	}
	return c.checkLinear(vals)
}

// checkLinear commits to the first matching transition at each state.
func (c *Checker) checkLinear(vals []interface{}) ([]interface{}, error) {
	state := 1
	for i, v := range vals {
		next := 0
		for _, t := range c.states[state] {
			if t.Pred.F(v) {
				next = t.To
				break
			}
		}
		if next == 0 {
			return nil, c.deadEnd(state, i, vals)
		}
		state = next
	}
	if !c.dfa.Accepting[state] {
		return nil, c.exhausted(state, len(vals))
	}
	return vals, nil
}

// checkBacktracking tries matching transitions in order, backing up
// on a later failure.  The first pass computes only accept/reject;
// only a rejection pays for message collection.
func (c *Checker) checkBacktracking(vals []interface{}) ([]interface{}, error) {
	if c.sat(1, 0, vals) {
		return vals, nil
	}

	var (
		clauses   []string
		seen      = make(map[string]bool, 4)
		deadState = -1
		deadPos   int
	)
	add := func(state, i int, clause string) {
		if deadState < 0 {
			deadState, deadPos = state, i
		}
		if !seen[clause] {
			seen[clause] = true
			clauses = append(clauses, clause)
		}
	}
	c.collect(1, 0, vals, add)

	err := c.deadEndError(deadState, deadPos, vals) // structured fields from the first dead end
	err.Body = strings.Join(clauses, " , or ")
	return nil, err
}

func (c *Checker) sat(state, i int, vals []interface{}) bool {
	if i == len(vals) {
		return c.dfa.Accepting[state]
	}
	for _, t := range c.states[state] {
		if t.Pred.F(vals[i]) && c.sat(t.To, i+1, vals) {
			return true
		}
	}
	return false
}

// collect revisits the whole exploration and records the message for
// every point where a path died.  Any one of them could have been the
// intended path, so the caller joins them as a disjunction.
func (c *Checker) collect(state, i int, vals []interface{}, add func(int, int, string)) {
	if i == len(vals) {
		if !c.dfa.Accepting[state] {
			add(state, i, missingClause(c.kind, c.expectedAt(state), i+1+c.indexOffset))
		}
		return
	}
	matched := false
	for _, t := range c.states[state] {
		if t.Pred.F(vals[i]) {
			matched = true
			c.collect(t.To, i+1, vals, add)
		}
	}
	if !matched {
		add(state, i, c.deadEndBody(state, i, vals))
	}
}

// expectedAt lists the type names on the state's outgoing
// transitions, in canonical transition order.
func (c *Checker) expectedAt(state int) []string {
	ts := c.states[state]
	acc := make([]string, len(ts))
	for i, t := range ts {
		acc[i] = t.Pred.Name
	}
	return acc
}

// deadEndBody renders the clause for a state with no matching
// transition: what was expected, what was got, and -- when the state
// was already accepting -- that the value was surplus anyway.
func (c *Checker) deadEndBody(state, i int, vals []interface{}) string {
	expected := c.expectedAt(state)
	var parts []string
	if 0 < len(expected) {
		parts = append(parts, unexpectedClause(c.kind, expected, i+1+c.indexOffset, KindOf(vals[i])))
	}
	if c.dfa.Accepting[state] {
		parts = append(parts, surplusClause(c.kind, i+c.indexOffset))
	}
	return strings.Join(parts, " or ")
}

func (c *Checker) deadEnd(state, i int, vals []interface{}) *CheckError {
	e := c.deadEndError(state, i, vals)
	e.Body = c.deadEndBody(state, i, vals)
	return e
}

// deadEndError fills the structured fields; the caller sets Body.
func (c *Checker) deadEndError(state, i int, vals []interface{}) *CheckError {
	got := ""
	if i < len(vals) {
		got = KindOf(vals[i])
	}
	return &CheckError{
		Prefix:      c.prefix,
		Kind:        c.kind,
		Position:    i + 1 + c.indexOffset,
		Expected:    c.expectedAt(state),
		Got:         got,
		Surplus:     c.dfa.Accepting[state],
		StackOffset: c.stackOffset,
	}
}

func (c *Checker) exhausted(state, n int) *CheckError {
	expected := c.expectedAt(state)
	return &CheckError{
		Prefix:      c.prefix,
		Kind:        c.kind,
		Body:        missingClause(c.kind, expected, n+1+c.indexOffset),
		Position:    n + 1 + c.indexOffset,
		Expected:    expected,
		StackOffset: c.stackOffset,
	}
}
