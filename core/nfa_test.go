package core

import (
	"testing"
)

func buildNFA(t *testing.T, e *Expr, reg *Registry) *NFA {
	t.Helper()
	nfa, err := exprNFA(e, reg)
	if err != nil {
		t.Fatalf("exprNFA error %v", err)
	}
	return nfa
}

func TestNFALeaf(t *testing.T) {
	nfa := buildNFA(t, NewName("number"), NewRegistry())
	if nfa.N != 2 || len(nfa.Trans) != 1 {
		t.Fatalf("wrong shape: %#v", nfa)
	}
	if nfa.Nonlinear || nfa.HasUserType || nfa.NeedsBacktracking {
		t.Fatalf("wrong flags: %#v", nfa)
	}
}

func TestNFAUndefinedType(t *testing.T) {
	_, err := exprNFA(NewName("nope"), NewRegistry())
	ut, is := err.(*UndefinedType)
	if !is || ut.Name != "nope" {
		t.Fatalf("wanted UndefinedType(nope), got %v", err)
	}
}

func TestNFASeqStaysLinear(t *testing.T) {
	e := NewSeq(NewName("number"), NewName("string"), NewName("boolean"))
	nfa := buildNFA(t, e, NewRegistry())
	if nfa.Nonlinear || nfa.NeedsBacktracking {
		t.Fatalf("a chain shouldn't be nonlinear: %#v", nfa)
	}
}

func TestNFAAcceptHasNoOutgoing(t *testing.T) {
	reg := NewRegistry()
	for _, e := range []*Expr{
		NewName("number"),
		NewStar(NewName("number")),
		NewOpt(NewSeq(NewName("number"), NewName("string"))),
		NewAlt(NewName("number"), NewSeq(NewName("string"), NewName("table"))),
	} {
		nfa := buildNFA(t, e, reg)
		for _, tr := range nfa.Trans {
			if tr.From == nfa.N {
				t.Fatalf("accept state has outgoing edge in %s: %#v", e, nfa)
			}
		}
	}
}

func TestNFANoEpsilonSelfLoop(t *testing.T) {
	reg := NewRegistry()
	e := NewStar(NewAlt(NewOpt(NewName("number")), NewStar(NewName("string"))))
	nfa := buildNFA(t, e, reg)
	for _, tr := range nfa.Trans {
		if tr.Pred == nil && tr.From == tr.To {
			t.Fatalf("epsilon self-loop: %#v", nfa)
		}
	}
}

func TestNFABacktrackingFlags(t *testing.T) {
	reg := NewRegistry()
	reg.Register("mine", func(x interface{}) bool { return true })

	for _, c := range []struct {
		expr *Expr
		want bool
	}{
		// Builtin-only structures never need backtracking.
		{NewAlt(NewName("number"), NewName("boolean")), false},
		{NewStar(NewName("number")), false},
		// A user type under Alt, Opt, or Star does.
		{NewAlt(NewName("mine"), NewName("number")), true},
		{NewOpt(NewName("mine")), true},
		{NewStar(NewName("mine")), true},
		// A user type appended to a branching prefix does.
		{NewSeq(NewOpt(NewName("table")), NewName("mine")), true},
		// A user type in a plain chain doesn't.
		{NewSeq(NewName("number"), NewName("mine")), false},
	} {
		nfa := buildNFA(t, c.expr, reg)
		if nfa.NeedsBacktracking != c.want {
			t.Fatalf("%s: NeedsBacktracking = %v, wanted %v",
				c.expr, nfa.NeedsBacktracking, c.want)
		}
	}
}

func TestDeterminizeShape(t *testing.T) {
	reg := NewRegistry()

	// number/boolean from one state: two transitions out of the
	// start, both to accepting states.
	nfa := buildNFA(t, NewAlt(NewName("number"), NewName("boolean")), reg)
	dfa := nfa.Determinize()

	var fromStart []DTrans
	for _, tr := range dfa.Trans {
		if tr.From == 1 {
			fromStart = append(fromStart, tr)
		}
	}
	if len(fromStart) != 2 {
		t.Fatalf("wrong start fanout: %#v", dfa)
	}
	if fromStart[0].Pred.Name != "number" || fromStart[1].Pred.Name != "boolean" {
		t.Fatalf("wrong canonical order: %v, %v", fromStart[0].Pred.Name, fromStart[1].Pred.Name)
	}
	if dfa.Accepting[1] {
		t.Fatal("start shouldn't accept")
	}
	for _, tr := range fromStart {
		if !dfa.Accepting[tr.To] {
			t.Fatal("targets should accept")
		}
	}
}

func TestDeterminizeMergesByIdentity(t *testing.T) {
	reg := NewRegistry()
	reg.Register("custom", func(x interface{}) bool { return x == nil })

	// The same Pred on both Alt branches collapses to one DFA
	// transition; re-registering under the same name makes a new
	// identity.
	nfa := buildNFA(t, NewAlt(NewName("custom"), NewName("custom")), reg)
	dfa := nfa.Determinize()
	count := 0
	for _, tr := range dfa.Trans {
		if tr.From == 1 {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("same predicate should merge: %#v", dfa.Trans)
	}
}

func TestDeterminizeDFAIsDeterministic(t *testing.T) {
	reg := NewRegistry()
	e := NewStar(NewAlt(
		NewSeq(NewName("table"), NewAlt(NewName("string"), NewName("number"))),
		NewName("boolean")))
	dfa := buildNFA(t, e, reg).Determinize()

	seen := make(map[int]map[*Pred]bool)
	for _, tr := range dfa.Trans {
		if seen[tr.From] == nil {
			seen[tr.From] = make(map[*Pred]bool)
		}
		if seen[tr.From][tr.Pred] {
			t.Fatalf("duplicate (state, predicate): %#v", tr)
		}
		seen[tr.From][tr.Pred] = true
	}
}
