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
)

// DTrans is a DFA transition.  Pred is never nil.
type DTrans struct {
	From, To int
	Pred     *Pred
}

// DFA is the determinized automaton a Checker walks.
//
// State 1 is the start state.  Transitions are keyed by predicate
// identity: for any (state, *Pred) pair there is at most one
// transition.  Two predicates that share a name stay distinct.
type DFA struct {
	NumStates int

	Trans []DTrans

	// Accepting is indexed by state id (entry 0 unused).
	Accepting []bool

	// NeedsBacktracking is inherited from the NFA.
	NeedsBacktracking bool
}

// Determinize runs the powerset construction.
//
// DFA states are discovered breadth-first from the epsilon closure of
// the NFA start state, which therefore becomes DFA state 1.  State
// sets are kept as sorted int slices and compared linearly; there are
// never enough of them to warrant more.
func (nfa *NFA) Determinize() *DFA {
	eps := make([][]int, nfa.N+1)
	for _, t := range nfa.Trans {
		if t.Pred == nil {
			eps[t.From] = append(eps[t.From], t.To)
		}
	}

	closure := func(set []int) []int {
		seen := make(map[int]bool, len(set))
		stack := append([]int{}, set...)
		for 0 < len(stack) {
			s := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if seen[s] {
				continue
			}
			seen[s] = true
			stack = append(stack, eps[s]...)
		}
		acc := make([]int, 0, len(seen))
		for s := range seen {
			acc = append(acc, s)
		}
		sort.Ints(acc)
		return acc
	}

	sets := [][]int{nil, closure([]int{1})} // 1-based ids
	findOrAdd := func(set []int) (int, bool) {
	SET:
		for id := 1; id < len(sets); id++ {
			if len(sets[id]) != len(set) {
				continue
			}
			for i, s := range sets[id] {
				if s != set[i] {
					continue SET
				}
			}
			return id, false
		}
		sets = append(sets, set)
		return len(sets) - 1, true
	}

	dfa := &DFA{
		NeedsBacktracking: nfa.NeedsBacktracking,
	}

	for id := 1; id < len(sets); id++ {
		set := sets[id]

		// Group this set's outgoing transitions by predicate
		// identity, preserving the NFA's construction order so
		// that the result is deterministic.
		var preds []*Pred
		targets := make(map[*Pred][]int, 4)
		for _, t := range nfa.Trans {
			if t.Pred == nil || !contains(set, t.From) {
				continue
			}
			if _, have := targets[t.Pred]; !have {
				preds = append(preds, t.Pred)
			}
			targets[t.Pred] = append(targets[t.Pred], t.To)
		}

		for _, p := range preds {
			to, _ := findOrAdd(closure(targets[p]))
			dfa.Trans = append(dfa.Trans, DTrans{From: id, To: to, Pred: p})
		}
	}

	dfa.NumStates = len(sets) - 1
	dfa.Accepting = make([]bool, len(sets))
	for id := 1; id < len(sets); id++ {
		dfa.Accepting[id] = contains(sets[id], nfa.N)
	}

	// Canonical transition order: stable error messages and stable
	// checker tables depend on it.
	sort.SliceStable(dfa.Trans, func(i, j int) bool {
		a, b := dfa.Trans[i], dfa.Trans[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.To != b.To {
			return a.To < b.To
		}
		return a.Pred.Name < b.Pred.Name
	})

	return dfa
}

// contains does binary search over a sorted set.
func contains(set []int, s int) bool {
	i := sort.SearchInts(set, s)
	return i < len(set) && set[i] == s
}

// outgoing builds the per-state transition table.
func (dfa *DFA) outgoing() [][]DTrans {
	acc := make([][]DTrans, dfa.NumStates+1)
	for _, t := range dfa.Trans {
		acc[t.From] = append(acc[t.From], t)
	}
	return acc
}
