package core

// Func is a host callable over dynamic values.
//
// The host environment's functions all project onto this shape:
// positional inputs, positional outputs, and an error channel for
// the host's own failures.
type Func func(args ...interface{}) ([]interface{}, error)

// Config controls Decorate.
//
// A Config is captured by value at decoration time: flipping a field
// later affects only decorations performed after the change.
type Config struct {
	// Enabled gates decoration entirely.
	Enabled bool

	// CheckArguments and CheckReturns selectively suppress one
	// side.
	CheckArguments bool
	CheckReturns   bool

	// OnBuildError is invoked with any build-time error (no
	// signature, malformed signature, undefined type, ...).  If it
	// returns nil the error is considered handled, and decoration
	// degrades: whatever checker couldn't be built is skipped.
	//
	// The default (nil) elevates the error: Decorate returns it.
	OnBuildError func(error) error

	// StackOffset is passed through to CheckErrors so the host's
	// error facility can point tracebacks at the caller.
	StackOffset int
}

// DefaultConfig is used when Decorate is given a nil Config.
var DefaultConfig = &Config{
	Enabled:        true,
	CheckArguments: true,
	CheckReturns:   true,
}

func (cfg *Config) buildError(err error) error {
	if cfg.OnBuildError == nil {
		return err
	}
	return cfg.OnBuildError(err)
}

// Decorate wraps f so that calls are validated against the
// docstring's signature.
//
// Inputs run through the argument checker, f runs on what passes,
// and outputs run through the return checker.  A missing or broken
// signature goes to cfg.OnBuildError; if that callback swallows the
// error, the corresponding checker is simply absent.  With no
// checkers at all, f itself is returned.
func Decorate(f Func, doc string, cfg *Config, reg *Registry) (Func, error) {
	if cfg == nil {
		cfg = DefaultConfig
	}
	if !cfg.Enabled {
		return f, nil
	}

	stackOffset := cfg.StackOffset
	if stackOffset == 0 {
		stackOffset = DefaultStackOffset
	}

	sig, err := ParseDoc(doc)
	if err != nil {
		if err = cfg.buildError(err); err != nil {
			return nil, err
		}
		return f, nil
	}

	var argc, retc *Checker

	if cfg.CheckArguments {
		if argc, err = sig.ArgChecker(reg, stackOffset); err != nil {
			if err = cfg.buildError(err); err != nil {
				return nil, err
			}
			argc = nil
		}
	}

	if cfg.CheckReturns {
		if retc, err = sig.RetChecker(reg, stackOffset); err != nil {
			if err = cfg.buildError(err); err != nil {
				return nil, err
			}
			retc = nil
		}
	}

	if argc == nil && retc == nil {
		return f, nil
	}

	return func(args ...interface{}) ([]interface{}, error) {
		if argc != nil {
			if _, err := argc.Check(args...); err != nil {
				return nil, err
			}
		}
		rets, err := f(args...)
		if err != nil {
			return nil, err
		}
		if retc != nil {
			if _, err := retc.Check(rets...); err != nil {
				return nil, err
			}
		}
		return rets, nil
	}, nil
}
