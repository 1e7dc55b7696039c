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

// Package help is interactive docstring lookup: by dotted name, or by
// substring over names and bodies.
package help

import (
	"sort"
	"strings"

	"github.com/Comcast/docent/docs"
)

// Corpus answers help queries against a docs table.
type Corpus struct {
	Table *docs.Table
}

// NewCorpus wraps the given table (or the default one when nil).
func NewCorpus(t *docs.Table) *Corpus {
	if t == nil {
		t = docs.DefaultTable
	}
	return &Corpus{Table: t}
}

// Lookup returns the docstring for a dotted name.
func (c *Corpus) Lookup(name string) (string, bool) {
	return c.Table.For(name)
}

// Hit is one search result.
type Hit struct {
	Name string

	// InBody reports that the substring matched the docstring
	// body but not the name.
	InBody bool
}

// Search finds names whose name or docstring contains the substring
// (case-insensitively), sorted by name.
func (c *Corpus) Search(substr string) []Hit {
	needle := strings.ToLower(substr)
	var acc []Hit
	for _, name := range c.Table.Names() {
		doc, _ := c.Table.For(name)
		inName := strings.Contains(strings.ToLower(name), needle)
		inBody := strings.Contains(strings.ToLower(doc), needle)
		if inName || inBody {
			acc = append(acc, Hit{Name: name, InBody: inBody && !inName})
		}
	}
	sort.Slice(acc, func(i, j int) bool { return acc[i].Name < acc[j].Name })
	return acc
}

// Signature returns the first paragraph of the docstring, which for
// documented functions is usually the signature.
func (c *Corpus) Signature(name string) (string, bool) {
	doc, have := c.Table.For(name)
	if !have {
		return "", false
	}
	return strings.TrimSpace(strings.Split(doc, "\n\n")[0]), true
}
