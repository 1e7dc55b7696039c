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

// Package host is the dynamically typed environment whose values get
// checked.
//
// It's a thin wrapper around Goja, which is a Go implementation of
// ECMAScript 5.1+.  See https://github.com/dop251/goja.  Everything
// that crosses the boundary is Export()ed, so checkers and doctests
// only ever see interface{} values (float64/int64, string, bool,
// map[string]interface{}, []interface{}, nil, or something opaque).
package host

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Comcast/docent/core"

	"github.com/dop251/goja"
)

// H is one host environment.
//
// An H is not safe for concurrent use; give each goroutine its own.
type H struct {
	vm *goja.Runtime
}

// New makes a host environment with a "kindof" utility predefined
// (doctests like to ask).
func New() *H {
	h := &H{vm: goja.New()}
	h.vm.Set("kindof", func(x interface{}) string {
		return core.KindOf(export(x))
	})
	return h
}

// Eval runs the source and exports the result.
func (h *H) Eval(src string) (interface{}, error) {
	v, err := h.vm.RunString(src)
	if err != nil {
		return nil, err
	}
	return export(v), nil
}

// Define binds a global.
func (h *H) Define(name string, value interface{}) error {
	return h.vm.Set(name, value)
}

// DefineFunc binds a global callable.  The host's callers see a
// variadic function whose returned values come back as an array (or
// the single value itself).
func (h *H) DefineFunc(name string, f core.Func) error {
	return h.vm.Set(name, func(args ...interface{}) (interface{}, error) {
		for i, a := range args {
			args[i] = export(a)
		}
		rets, err := f(args...)
		if err != nil {
			return nil, err
		}
		switch len(rets) {
		case 0:
			return nil, nil
		case 1:
			return rets[0], nil
		default:
			return rets, nil
		}
	})
}

// Func returns the named global as a callable, if it is one.
//
// The host's own functions return a single value, so the resulting
// Func yields zero returns (for undefined/null) or one.
func (h *H) Func(name string) (core.Func, bool) {
	v := h.vm.Get(name)
	if v == nil {
		return nil, false
	}
	callable, ok := goja.AssertFunction(v)
	if !ok {
		return nil, false
	}
	return func(args ...interface{}) ([]interface{}, error) {
		gargs := make([]goja.Value, len(args))
		for i, a := range args {
			gargs[i] = h.vm.ToValue(a)
		}
		res, err := callable(goja.Undefined(), gargs...)
		if err != nil {
			return nil, err
		}
		x := export(res)
		if x == nil {
			return nil, nil
		}
		return []interface{}{x}, nil
	}, true
}

// Global resolves a dotted path ("math.floor") to an exported value.
func (h *H) Global(dotted string) (interface{}, error) {
	parts := strings.Split(dotted, ".")
	var x interface{} = export(h.vm.GlobalObject())
	for _, part := range parts {
		m, is := x.(map[string]interface{})
		if !is {
			return nil, fmt.Errorf("%s is not a table", dotted)
		}
		var have bool
		if x, have = m[part]; !have {
			return nil, errors.New("undefined: " + dotted)
		}
	}
	return export(x), nil
}

// export unwraps goja values.
func export(x interface{}) interface{} {
	if v, is := x.(goja.Value); is {
		if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
			return nil
		}
		return v.Export()
	}
	return x
}

// Render gives the display form of a value, the way transcripts show
// results: nil as "nil", strings bare, booleans and numbers as
// literals, and anything else in Go's default %v format.
func (h *H) Render(x interface{}) string {
	switch vv := x.(type) {
	case nil:
		return "nil"
	case string:
		return vv
	case bool:
		if vv {
			return "true"
		}
		return "false"
	case float64:
		return fmt.Sprintf("%g", vv)
	case int64:
		return fmt.Sprintf("%d", vv)
	}
	return fmt.Sprintf("%v", x)
}
