package docs

import (
	"testing"
)

func TestTableRegisterFor(t *testing.T) {
	tbl := NewTable()
	tbl.Register("string.rep", "string.rep( s, n ) ==> string")

	doc, have := tbl.For("string.rep")
	if !have || doc == "" {
		t.Fatal("registered docstring missing")
	}
	if _, have = tbl.For("nope"); have {
		t.Fatal("unregistered name found")
	}
}

func TestTableSnoopSeesPastAndFuture(t *testing.T) {
	tbl := NewTable()
	tbl.Register("a", "doc a")

	var got []string
	tbl.Snoop(func(name, doc string) {
		got = append(got, name)
	})
	tbl.Register("b", "doc b")

	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("callback saw %v", got)
	}
}

func TestTableNamesSorted(t *testing.T) {
	tbl := NewTable()
	for _, name := range []string{"zeta", "alpha", "mu"} {
		tbl.Register(name, "doc")
	}
	names := tbl.Names()
	if len(names) != 3 || names[0] != "alpha" || names[1] != "mu" || names[2] != "zeta" {
		t.Fatalf("wrong names %v", names)
	}
}
