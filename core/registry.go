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

package core

import (
	"reflect"
	"sync"
)

// Predicate is a pure test on a host value.
//
// A Predicate should have no side effects, and it should be cheap.
// The checker can call a predicate many times on the same value (once
// per candidate transition).
type Predicate func(x interface{}) bool

// Pred is a registered predicate.
//
// The identity of a Pred -- its address -- is what distinguishes
// transitions in NFAs and DFAs.  Two registrations under the same
// name yield two distinct Preds.  Never compare predicates by name.
type Pred struct {
	// Name is the type name used in signatures.
	Name string

	// F is the predicate itself.
	F Predicate

	// User reports whether this predicate came from a caller
	// rather than from NewRegistry.  Only user predicates can
	// force the backtracking checker (see NFA flags).
	User bool
}

// Registry maps type names to predicates.
//
// All registrations should happen before any signature that mentions
// them is compiled.  The lock exists so that a multi-threaded host
// can read-share a registry safely after that initialization phase.
type Registry struct {
	sync.RWMutex
	preds map[string]*Pred
}

// NewRegistry creates a Registry populated with the builtin
// (primitive) type names: any, nil, boolean, number, string, table,
// function, and userdata.
//
// "object" is deliberately not builtin.  With no "object" entry, a
// method's implicit self parameter falls back to userdata / table.
func NewRegistry() *Registry {
	reg := &Registry{
		preds: make(map[string]*Pred, 16),
	}
	builtin := func(name string, f Predicate) {
		reg.preds[name] = &Pred{Name: name, F: f}
	}

	builtin("any", func(x interface{}) bool { return true })
	builtin("nil", func(x interface{}) bool { return x == nil })
	for _, name := range []string{"boolean", "number", "string", "table", "function", "userdata"} {
		kind := name
		builtin(name, func(x interface{}) bool { return KindOf(x) == kind })
	}

	return reg
}

// Register adds or replaces a predicate.
//
// The name must match the type-name grammar ([A-Za-z_][A-Za-z0-9_]*).
// Replacing a name does not affect checkers that were already built:
// they hold the old Pred.
func (reg *Registry) Register(name string, f Predicate) error {
	if !IsTypeName(name) {
		return &BadTypeName{name}
	}
	reg.Lock()
	reg.preds[name] = &Pred{Name: name, F: f, User: true}
	reg.Unlock()
	return nil
}

// Lookup resolves a type name.
func (reg *Registry) Lookup(name string) (*Pred, bool) {
	reg.RLock()
	p, have := reg.preds[name]
	reg.RUnlock()
	return p, have
}

// Has reports whether the name is registered.
func (reg *Registry) Has(name string) bool {
	_, have := reg.Lookup(name)
	return have
}

// IsTypeName reports whether s matches [A-Za-z_][A-Za-z0-9_]*.
func IsTypeName(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z':
		case 'A' <= c && c <= 'Z':
		case c == '_':
		case '0' <= c && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// KindOf gives the host-level kind label for a value.
//
// These labels appear in "(got ...)" clauses of check errors, and
// they name the builtin predicates.  The classification follows what
// the host environment's Export produces: all numeric types are
// "number", maps and slices are "table", and anything else that isn't
// a primitive is "userdata".
func KindOf(x interface{}) string {
	switch x.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return "number"
	case string:
		return "string"
	case map[string]interface{}, map[interface{}]interface{}, []interface{}:
		return "table"
	}
	// Named types (the host exports those too) still classify by
	// shape.
	switch reflect.ValueOf(x).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return "table"
	case reflect.Func:
		return "function"
	}
	return "userdata"
}
