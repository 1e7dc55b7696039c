package doctest

import (
	"testing"
)

func TestExtract(t *testing.T) {
	doc := `incr( n ) ==> number
n : number

Bump a number by one.

> incr(41)
42
> incr(0)
1

> x = 1
> x
1`

	ts := Extract(doc)
	if len(ts) != 2 {
		t.Fatalf("wrong transcript count %d", len(ts))
	}
	if len(ts[0].Steps) != 2 {
		t.Fatalf("wrong step count %d", len(ts[0].Steps))
	}
	first := ts[0].Steps[0]
	if first.Input != "incr(41)" {
		t.Fatalf("wrong input %q", first.Input)
	}
	if len(first.Want) != 1 || first.Want[0] != "42" {
		t.Fatalf("wrong want %v", first.Want)
	}
	if len(ts[1].Steps) != 2 {
		t.Fatalf("wrong second transcript %v", ts[1])
	}
	if got := ts[1].Steps[0].Want; len(got) != 0 {
		t.Fatalf("assignment step shouldn't expect output: %v", got)
	}
}

func TestExtractNone(t *testing.T) {
	if ts := Extract("No transcripts here.\n\nJust prose."); len(ts) != 0 {
		t.Fatalf("found transcripts in prose: %v", ts)
	}
}

func TestRun(t *testing.T) {
	ts := Extract(`> 41 + 1
42
> "a" + "b"
ab
> 1 < 2
true`)

	results := (&Runner{}).Run(ts)
	if len(results) != 3 {
		t.Fatalf("wrong result count %d", len(results))
	}
	for _, r := range results {
		if !r.Pass {
			t.Fatalf("step %q failed: got %v, wanted %v", r.Input, r.Got, r.Want)
		}
	}
}

func TestRunFailure(t *testing.T) {
	ts := Extract(`> 1 + 1
3`)

	results := (&Runner{}).Run(ts)
	failed := Failed(results)
	if len(failed) != 1 {
		t.Fatalf("wanted one failure, got %v", results)
	}
	if failed[0].Got[0] != "2" {
		t.Fatalf("wrong got %v", failed[0].Got)
	}
}

func TestRunSharedState(t *testing.T) {
	ts := Extract(`> x = 10
> x * 2
20`)

	if failed := Failed((&Runner{}).Run(ts)); len(failed) != 0 {
		t.Fatalf("state didn't carry: %v", failed)
	}
}

func TestMatchVariables(t *testing.T) {
	bs := bindings{}
	if !matchLines([]string{"?"}, []string{"whatever"}, bs) {
		t.Fatal("anonymous variable should match")
	}
	if !matchLines([]string{"?id"}, []string{"abc"}, bs) {
		t.Fatal("named variable should match")
	}
	if !matchLines([]string{"?id"}, []string{"abc"}, bs) {
		t.Fatal("consistent rebinding should match")
	}
	if matchLines([]string{"?id"}, []string{"xyz"}, bs) {
		t.Fatal("inconsistent rebinding shouldn't match")
	}
	if matchLines([]string{"a"}, []string{"b"}, bs) {
		t.Fatal("literal mismatch should fail")
	}
	if matchLines([]string{"a", "b"}, []string{"a"}, bs) {
		t.Fatal("length mismatch should fail")
	}
}
