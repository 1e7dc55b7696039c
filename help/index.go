package help

import (
	"context"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

// docsBucket is the bucket holding name -> docstring.
var docsBucket = []byte("docs")

// Index is a persistent help index.
//
// A long-running help service keeps its corpus in a bolt file so
// that lookups survive restarts and don't require reloading the
// batteries.
type Index struct {
	filename string
	db       *bolt.DB
}

// NewIndex makes an Index for the given file.
func NewIndex(filename string) *Index {
	return &Index{filename: filename}
}

// Open opens the underlying database.
func (ix *Index) Open(ctx context.Context) error {
	opts := &bolt.Options{
		Timeout: time.Second,
	}
	db, err := bolt.Open(ix.filename, 0644, opts)
	if err != nil {
		return err
	}
	ix.db = db
	return nil
}

// Close closes the underlying database.
func (ix *Index) Close(ctx context.Context) error {
	if ix == nil || ix.db == nil {
		return nil
	}
	return ix.db.Close()
}

// Sync rewrites the docs bucket from the corpus.
func (ix *Index) Sync(ctx context.Context, c *Corpus) error {
	return ix.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(docsBucket); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		b, err := tx.CreateBucket(docsBucket)
		if err != nil {
			return err
		}
		for _, name := range c.Table.Names() {
			doc, _ := c.Table.For(name)
			if err := b.Put([]byte(name), []byte(doc)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Lookup reads one docstring from the index.
func (ix *Index) Lookup(ctx context.Context, name string) (string, bool, error) {
	var (
		doc  string
		have bool
	)
	err := ix.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(docsBucket)
		if b == nil {
			return nil
		}
		if bs := b.Get([]byte(name)); bs != nil {
			doc, have = string(bs), true
		}
		return nil
	})
	return doc, have, err
}

// Search scans keys and values for the substring.
func (ix *Index) Search(ctx context.Context, substr string) ([]Hit, error) {
	needle := strings.ToLower(substr)
	var acc []Hit
	err := ix.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(docsBucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			inName := strings.Contains(strings.ToLower(string(k)), needle)
			inBody := strings.Contains(strings.ToLower(string(v)), needle)
			if inName || inBody {
				acc = append(acc, Hit{Name: string(k), InBody: inBody && !inName})
			}
			return nil
		})
	})
	return acc, err
}
