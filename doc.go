// Package docent attaches docstrings to host values and checks calls
// against the signatures those docstrings declare.
//
// The type-checking pipeline is in package 'core'; help, doctests,
// batteries, and the host environment live beside it; and some
// command-line tools are in `cmd`.
//
// See https://github.com/Comcast/docent/blob/master/README.md for more.
package docent
