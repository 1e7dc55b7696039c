package help

import (
	"context"
	"path/filepath"
	"testing"
)

func TestIndex(t *testing.T) {
	ctx := context.Background()
	ix := NewIndex(filepath.Join(t.TempDir(), "help.db"))
	if err := ix.Open(ctx); err != nil {
		t.Fatal(err)
	}
	defer ix.Close(ctx)

	c := corpus()
	if err := ix.Sync(ctx, c); err != nil {
		t.Fatal(err)
	}

	doc, have, err := ix.Lookup(ctx, "string.rep")
	if err != nil || !have || doc == "" {
		t.Fatalf("lookup: %q %v %v", doc, have, err)
	}

	if _, have, err = ix.Lookup(ctx, "ghost"); err != nil || have {
		t.Fatalf("ghost lookup: %v %v", have, err)
	}

	hits, err := ix.Search(ctx, "string")
	if err != nil || len(hits) != 2 {
		t.Fatalf("search: %v %v", hits, err)
	}

	// Sync again after a change; the bucket is rewritten, not
	// merged.
	c.Table.Register("os.clock", "os.clock() ==> number")
	if err := ix.Sync(ctx, c); err != nil {
		t.Fatal(err)
	}
	if _, have, _ = ix.Lookup(ctx, "os.clock"); !have {
		t.Fatal("resync missed the new entry")
	}
}
