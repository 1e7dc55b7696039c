package core

// These errors are user errors, not internal errors.
//
// Build-time errors come out of signature parsing and checker
// construction; check-time errors come out of a Checker.  The text of
// the check-time errors is a frozen contract: tests (and users'
// doctests) match on substrings of these messages.

import (
	"strings"
)

// NoSignature occurs when a docstring contains no signature
// paragraph.
//
// Whether that's a problem is up to the caller; Decorate treats it as
// a build error and routes it to the configured callback.
type NoSignature struct{}

func (e *NoSignature) Error() string {
	return "docstring has no signature"
}

// MalformedSignature occurs when a paragraph starts out like a
// signature but can't be parsed as one.
type MalformedSignature struct {
	// Pos is a byte offset into the signature paragraph.
	Pos    int
	Reason string
}

func (e *MalformedSignature) Error() string {
	return "malformed signature at offset " + itoa(e.Pos) + ": " + e.Reason
}

// ParamRedefined occurs when two mapping lines give types for the
// same parameter name.
type ParamRedefined struct {
	Name string
}

func (e *ParamRedefined) Error() string {
	return `parameter "` + e.Name + `" redefined`
}

// DuplicateParamUse occurs when the same parameter name appears twice
// in the parameter list.
type DuplicateParamUse struct {
	Name string
}

func (e *DuplicateParamUse) Error() string {
	return `parameter "` + e.Name + `" used twice in parameter list`
}

// UndefinedType occurs when a signature mentions a type name that
// isn't in the Registry at build time.  A checker never reports this:
// every name is resolved before a Checker exists.
type UndefinedType struct {
	Name string
}

func (e *UndefinedType) Error() string {
	return `type "` + e.Name + `" not defined`
}

// BadTypeName occurs when Registry.Register is given a name that
// doesn't match the type-name grammar.
type BadTypeName struct {
	Name string
}

func (e *BadTypeName) Error() string {
	return `bad type name "` + e.Name + `"`
}

// ErrorKind says which side of a call a CheckError is about.
type ErrorKind int

const (
	// ArgumentError means the inputs were rejected.
	ArgumentError ErrorKind = iota

	// ReturnError means the outputs were rejected.
	ReturnError
)

func (k ErrorKind) noun() string {
	if k == ReturnError {
		return "return value"
	}
	return "argument"
}

// CheckError is a check-time rejection.
//
// The rendered message is "{prefix}: {body}." where the prefix is the
// signature's designator with ":" replaced by "." and the body is one
// or more clauses.  For a linear checker there is one clause (plus an
// optional "too many" rider); a backtracking checker can aggregate
// one clause per explored alternative, joined by " , or ".
type CheckError struct {
	// Prefix is Sig.Prefix for the signature that built the
	// checker.
	Prefix string

	Kind ErrorKind

	// Body is the message without prefix and final period.
	Body string

	// Position is the user-visible index of the offending value
	// (already shifted by the checker's index offset).  For an
	// aggregated backtracking error, it's the position from the
	// first clause.
	Position int

	// Expected holds the type names that would have been accepted
	// at the failure point, in canonical order.
	Expected []string

	// Got is the observed kind label, or "" when the input was
	// exhausted.
	Got string

	// Surplus reports that a "too many" clause applies.
	Surplus bool

	// StackOffset is carried for the host's error facility so
	// that tracebacks point at the caller, not the checker.  The
	// core itself doesn't interpret it.
	StackOffset int
}

func (e *CheckError) Error() string {
	return e.Prefix + ": " + e.Body + "."
}

// itoa avoids strconv for the two-digit numbers in error text.
//
// Positions in real signatures are tiny, but handle the general case
// anyway.
func itoa(n int) string {
	if n < 0 {
		return "-" + itoa(-n)
	}
	if n < 10 {
		return string(rune('0' + n))
	}
	return itoa(n/10) + string(rune('0'+n%10))
}

// clause builders, shared by the linear and backtracking checkers.

func unexpectedClause(kind ErrorKind, expected []string, pos int, got string) string {
	return strings.Join(expected, "/") + " expected for " + kind.noun() +
		" no. " + itoa(pos) + " (got " + got + ")"
}

func missingClause(kind ErrorKind, expected []string, pos int) string {
	return "missing " + kind.noun() + "(s) at index " + itoa(pos) +
		" (expected " + strings.Join(expected, "/") + ")"
}

func surplusClause(kind ErrorKind, limit int) string {
	return "too many " + kind.noun() + "s (expected " + itoa(limit) + ")"
}
