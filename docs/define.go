package docs

import (
	"strings"

	"github.com/Comcast/docent/core"
	"github.com/Comcast/docent/host"
)

// Define is the decoration entry point for Go-implemented host
// functions: it registers the docstring, wraps the function with the
// checkers the docstring's signature yields, and installs the result
// as a host global.
//
// The name must be a plain (undotted) identifier; the host can only
// rebind top-level globals.
func Define(t *Table, h *host.H, reg *core.Registry, cfg *core.Config, name, doc string, f core.Func) error {
	wrapped, err := core.Decorate(f, doc, cfg, reg)
	if err != nil {
		return err
	}
	t.Register(name, doc)
	return h.DefineFunc(name, wrapped)
}

// AutoDecorate subscribes to the table (via Snoop) and decorates host
// globals as docstrings arrive: whenever a plain (undotted) name with
// a callable global gets a docstring, that global is replaced by its
// decorated version.  Associations already in the table are decorated
// immediately.
//
// Build errors follow cfg.OnBuildError exactly as in core.Decorate; a
// name whose decoration fails (or whose callback doesn't swallow the
// error) is left undecorated.
//
// Dotted names can't be rebound from outside the host, so they are
// skipped.  Define has the same restriction: it takes plain names only.
func AutoDecorate(t *Table, h *host.H, reg *core.Registry, cfg *core.Config) {
	// Remember the undecorated functions so that a re-registered
	// docstring decorates the original, not the previous wrapper.
	originals := make(map[string]core.Func)

	t.Snoop(func(name, doc string) {
		if strings.Contains(name, ".") {
			return
		}
		f, have := originals[name]
		if !have {
			var is bool
			if f, is = h.Func(name); !is {
				return
			}
			originals[name] = f
		}
		wrapped, err := core.Decorate(f, doc, cfg, reg)
		if err != nil {
			return
		}
		h.DefineFunc(name, wrapped)
	})
}
