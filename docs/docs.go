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

// Package docs associates docstrings with named host values and
// dispatches callbacks when that happens.
//
// This is plumbing.  The interesting consumers are the typecheck
// pipeline (which compiles a checker from every docstring that has a
// signature), the help system, and the doctest runner.
package docs

import (
	"sort"
	"sync"
)

// Callback is invoked for each (name, docstring) association.
type Callback func(name, doc string)

// Table holds docstrings by dotted name.
type Table struct {
	sync.Mutex
	docs      map[string]string
	callbacks []Callback
}

// NewTable makes an empty table.
func NewTable() *Table {
	return &Table{
		docs: make(map[string]string, 64),
	}
}

// DefaultTable is the process-wide table the package-level functions
// use.
var DefaultTable = NewTable()

// Register associates a docstring with a name, replacing any
// previous association, and dispatches the callbacks.
func (t *Table) Register(name, doc string) {
	t.Lock()
	t.docs[name] = doc
	cbs := append([]Callback{}, t.callbacks...)
	t.Unlock()

	for _, cb := range cbs {
		cb(name, doc)
	}
}

// Snoop adds a callback.  The callback immediately sees every
// association already made, then every future one.
func (t *Table) Snoop(cb Callback) {
	t.Lock()
	t.callbacks = append(t.callbacks, cb)
	existing := make(map[string]string, len(t.docs))
	for name, doc := range t.docs {
		existing[name] = doc
	}
	t.Unlock()

	names := make([]string, 0, len(existing))
	for name := range existing {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cb(name, existing[name])
	}
}

// For retrieves the docstring for a name.
func (t *Table) For(name string) (string, bool) {
	t.Lock()
	doc, have := t.docs[name]
	t.Unlock()
	return doc, have
}

// Names lists the registered names, sorted.
func (t *Table) Names() []string {
	t.Lock()
	acc := make([]string, 0, len(t.docs))
	for name := range t.docs {
		acc = append(acc, name)
	}
	t.Unlock()
	sort.Strings(acc)
	return acc
}

// Register associates in the DefaultTable.
func Register(name, doc string) {
	DefaultTable.Register(name, doc)
}

// Snoop subscribes to the DefaultTable.
func Snoop(cb Callback) {
	DefaultTable.Snoop(cb)
}

// For reads from the DefaultTable.
func For(name string) (string, bool) {
	return DefaultTable.For(name)
}
