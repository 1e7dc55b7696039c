package help

import (
	"strings"
	"testing"

	"github.com/Comcast/docent/docs"
)

func corpus() *Corpus {
	tbl := docs.NewTable()
	tbl.Register("string.rep", `string.rep( s, n ) ==> string
s : string
n : number

Returns s repeated n times.`)
	tbl.Register("string.len", `string.len( s ) ==> number
s : string

Returns the length of s.`)
	tbl.Register("math.floor", `math.floor( n ) ==> number
n : number

Rounds n down.`)
	return NewCorpus(tbl)
}

func TestLookup(t *testing.T) {
	c := corpus()
	doc, have := c.Lookup("string.rep")
	if !have || !strings.Contains(doc, "repeated") {
		t.Fatalf("lookup failed: %q %v", doc, have)
	}
	if _, have = c.Lookup("string.nope"); have {
		t.Fatal("found a ghost")
	}
}

func TestSearch(t *testing.T) {
	c := corpus()

	hits := c.Search("string")
	if len(hits) != 2 || hits[0].Name != "string.len" || hits[1].Name != "string.rep" {
		t.Fatalf("wrong hits %v", hits)
	}

	hits = c.Search("rounds")
	if len(hits) != 1 || hits[0].Name != "math.floor" || !hits[0].InBody {
		t.Fatalf("wrong body hits %v", hits)
	}

	if hits = c.Search("zebra"); len(hits) != 0 {
		t.Fatalf("wrong empty result %v", hits)
	}
}

func TestSignature(t *testing.T) {
	c := corpus()
	sig, have := c.Signature("math.floor")
	if !have || !strings.HasPrefix(sig, "math.floor( n )") {
		t.Fatalf("wrong signature %q", sig)
	}
}

func TestRender(t *testing.T) {
	html := string(Render("Some *emphatic* docs."))
	if !strings.Contains(html, "<em>emphatic</em>") {
		t.Fatalf("markdown not rendered: %q", html)
	}
	page := string(RenderPage("f", "body"))
	if !strings.Contains(page, "<title>f</title>") || !strings.Contains(page, "body") {
		t.Fatalf("wrong page: %q", page)
	}
}
