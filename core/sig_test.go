package core

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, doc string) *Sig {
	t.Helper()
	sig, err := ParseDoc(doc)
	if err != nil {
		t.Fatalf("ParseDoc error %v for %s", err, doc)
	}
	return sig
}

func TestParseDesignator(t *testing.T) {
	for _, c := range []struct {
		doc      string
		prefix   string
		isMethod bool
	}{
		{"f()", "f", false},
		{"m.f()", "m.f", false},
		{"m.o.f()", "m.o.f", false},
		{"m.o:f()", "m.o.f", true},
		{"obj:method( n )\nn : number", "obj.method", true},
	} {
		sig := mustParse(t, c.doc)
		if sig.Prefix != c.prefix {
			t.Fatalf("%s: prefix %q, wanted %q", c.doc, sig.Prefix, c.prefix)
		}
		if sig.IsMethod != c.isMethod {
			t.Fatalf("%s: isMethod %v", c.doc, sig.IsMethod)
		}
	}
}

func TestParseSkipsProse(t *testing.T) {
	doc := `Increment a counter; see below for the gory details.

incr( n ) ==> number
n : number

And a trailing paragraph.`

	sig := mustParse(t, doc)
	if sig.Prefix != "incr" {
		t.Fatalf("wrong signature: %q", sig.Prefix)
	}
	if len(sig.Returns) != 1 {
		t.Fatalf("wrong returns: %v", sig.Returns)
	}
}

func TestParseNoSignature(t *testing.T) {
	_, err := ParseDoc("Just words.\n\nMore words.")
	if _, is := err.(*NoSignature); !is {
		t.Fatalf("wanted *NoSignature, got %v", err)
	}
}

func TestParseComments(t *testing.T) {
	doc := `f( a, -- the first one
   b ) ==> number -- what you get
a : number -- see?
b : string`

	sig := mustParse(t, doc)
	if len(sig.Params) != 2 {
		t.Fatalf("wrong params: %v", sig.Params)
	}
	if len(sig.ParamTypes) != 2 {
		t.Fatalf("wrong mappings: %v", sig.ParamTypes)
	}
}

func TestParseArrows(t *testing.T) {
	for _, arrow := range []string{"=>", "==>", "=====>"} {
		sig := mustParse(t, "f( n ) "+arrow+" number\nn : number")
		if len(sig.Returns) != 1 {
			t.Fatalf("arrow %q: returns %v", arrow, sig.Returns)
		}
	}
}

func TestParseGroups(t *testing.T) {
	sig := mustParse(t, `func( [string [, userdata] [, boolean],] [number,] ... )
... : ((table, string/number) / boolean)*`)

	if len(sig.Params) != 3 {
		t.Fatalf("wrong top-level params: %d", len(sig.Params))
	}
	g := sig.Params[0]
	if g.Kind != GroupParam || len(g.Kids) != 3 {
		t.Fatalf("wrong first group: %#v", g)
	}
	if g.Kids[1].Kind != GroupParam || g.Kids[2].Kind != GroupParam {
		t.Fatal("nested groups not preserved")
	}
	if sig.Params[2].Kind != VarargParam {
		t.Fatal("vararg not last")
	}

	va := sig.ParamTypes[VarargName]
	if va == nil || va.Kind != StarExpr {
		t.Fatalf("wrong vararg type: %v", va)
	}
}

func TestParseReturnPrecedence(t *testing.T) {
	sig := mustParse(t, `f() ==> number/string, string`)
	r := sig.Returns[0]
	if r.Kind != SeqExpr || len(r.Kids) != 2 {
		t.Fatalf("wrong shape: %v", r)
	}
	if r.Kids[0].Kind != AltExpr {
		t.Fatalf("',' should bind loosest: %v", r)
	}
}

func TestParseMultipleReturnClauses(t *testing.T) {
	sig := mustParse(t, `f() ==> number ==> string, string`)
	if len(sig.Returns) != 2 {
		t.Fatalf("wrong returns: %v", sig.Returns)
	}
}

func TestParseParamRedefined(t *testing.T) {
	_, err := ParseDoc("f( a ) ==> number\na : number\na : string")
	pr, is := err.(*ParamRedefined)
	if !is {
		t.Fatalf("wanted *ParamRedefined, got %v", err)
	}
	if pr.Name != "a" {
		t.Fatalf("wrong name %q", pr.Name)
	}
}

func TestParseMalformed(t *testing.T) {
	for _, doc := range []string{
		"f( a ) ==> ",
		"f( a ) ==> number\na :",
		"f() ==> (number",
		"f() xyz ==> number",
	} {
		_, err := ParseDoc(doc)
		if _, is := err.(*MalformedSignature); !is {
			t.Fatalf("%q: wanted *MalformedSignature, got %v", doc, err)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, doc := range []string{
		"f()",
		"incr( n ) ==> number\nn : number",
		"obj:method( n ) ==> string\nn : number/boolean",
		"func( [string [, userdata] [, boolean],] [number,] ... )\n... : ((table, string/number) / boolean)*",
		"f( a, b ) ==> number/string, string\na : number\nb : string",
		"f() ==> (number, string)*",
		"f() ==> number? ==> string",
	} {
		sig := mustParse(t, doc)
		again := mustParse(t, sig.String())
		if !sameSig(sig, again) {
			t.Fatalf("round trip changed %q:\n%s\nvs\n%s", doc, sig.String(), again.String())
		}
	}
}

func sameSig(a, b *Sig) bool {
	if a.Designator != b.Designator || a.IsMethod != b.IsMethod {
		return false
	}
	if len(a.Params) != len(b.Params) || len(a.Returns) != len(b.Returns) ||
		len(a.ParamTypes) != len(b.ParamTypes) {
		return false
	}
	var sameParams func(xs, ys []*Param) bool
	sameParams = func(xs, ys []*Param) bool {
		if len(xs) != len(ys) {
			return false
		}
		for i, x := range xs {
			y := ys[i]
			if x.Kind != y.Kind || x.Name != y.Name || !sameParams(x.Kids, y.Kids) {
				return false
			}
		}
		return true
	}
	if !sameParams(a.Params, b.Params) {
		return false
	}
	for i, r := range a.Returns {
		if !r.Equal(b.Returns[i]) {
			return false
		}
	}
	for name, e := range a.ParamTypes {
		if !e.Equal(b.ParamTypes[name]) {
			return false
		}
	}
	return true
}

func TestParseTextPreserved(t *testing.T) {
	paragraph := "incr( n ) ==> number -- bump\nn : number"
	doc := "Bump a number.\n\n" + paragraph + "\n\n> incr(41)\n42"
	sig := mustParse(t, doc)
	if !strings.Contains(sig.Text, "-- bump") {
		t.Fatalf("raw text not preserved: %q", sig.Text)
	}
}
