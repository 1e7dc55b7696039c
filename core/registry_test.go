package core

import (
	"testing"
)

func TestRegistryBuiltins(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"any", "nil", "boolean", "number", "string", "table", "function", "userdata"} {
		p, have := reg.Lookup(name)
		if !have {
			t.Fatalf("builtin %q missing", name)
		}
		if p.User {
			t.Fatalf("builtin %q marked as user", name)
		}
	}
	if reg.Has("object") {
		t.Fatal(`"object" shouldn't be builtin`)
	}
}

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("mytable", func(x interface{}) bool { return false }); err != nil {
		t.Fatal(err)
	}
	p, _ := reg.Lookup("mytable")
	if !p.User {
		t.Fatal("registered predicate should be user")
	}

	// Re-registration makes a new identity.
	if err := reg.Register("mytable", func(x interface{}) bool { return true }); err != nil {
		t.Fatal(err)
	}
	p2, _ := reg.Lookup("mytable")
	if p == p2 {
		t.Fatal("re-registration should mint a new Pred")
	}
}

func TestRegistryBadName(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"", "1x", "a-b", "a b", "π"} {
		if err := reg.Register(name, func(x interface{}) bool { return true }); err == nil {
			t.Fatalf("bad name %q accepted", name)
		}
	}
	for _, name := range []string{"x", "_", "A1", "snake_case", "number2"} {
		if err := reg.Register(name, func(x interface{}) bool { return true }); err != nil {
			t.Fatalf("good name %q rejected: %v", name, err)
		}
	}
}

func TestKindOf(t *testing.T) {
	for _, c := range []struct {
		x    interface{}
		want string
	}{
		{nil, "nil"},
		{true, "boolean"},
		{12, "number"},
		{int64(12), "number"},
		{12.5, "number"},
		{"s", "string"},
		{map[string]interface{}{}, "table"},
		{[]interface{}{1, 2}, "table"},
		{map[interface{}]interface{}{}, "table"},
		{func(...interface{}) ([]interface{}, error) { return nil, nil }, "function"},
		{Func(nil), "function"},
		{&handleT{}, "userdata"},
		{make(chan int), "userdata"},
	} {
		if got := KindOf(c.x); got != c.want {
			t.Fatalf("KindOf(%#v) = %q, wanted %q", c.x, got, c.want)
		}
	}
}
