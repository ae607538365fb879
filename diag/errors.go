// Package diag implements the transformer's structured error types,
// each carrying the source coordinate of the construct that triggered it
// so a caller can report `file:line:col: message` the way a compiler
// diagnostic does.
//
// Grounded on docscribe's ParseError/FormatError: a Message plus
// structured location fields, an Error() that assembles them into one
// readable line, and an Unwrap() so callers can still use errors.As
// against an underlying cause. Where docscribe wraps one generic
// ParseError, this package gives each of §4.7's failure modes its own
// named type, since each one needs a different set of structured fields
// (a variable name, a rejected distance expression, a misspelled
// annotation token) rather than a single freeform Message string.
package diag

import (
	"fmt"
	"strings"

	"github.com/shadowdp-go/shadowdp/cast"
)

// MissingParameterAnnotation is reported when a function body's first two
// statements are not the adjacency and parameter-distance annotation
// strings §4.7's Function rule requires.
type MissingParameterAnnotation struct {
	Pos   cast.Pos
	Found string
}

func (e *MissingParameterAnnotation) Error() string {
	return fmt.Sprintf("%s: missing parameter annotation: expected a string literal, found %s",
		posString(e.Pos), e.Found)
}

// MissingSamplingAnnotation is reported when a `Lap(...)` call is missing
// its selector/η-distance string argument.
type MissingSamplingAnnotation struct {
	Pos cast.Pos
}

func (e *MissingSamplingAnnotation) Error() string {
	return fmt.Sprintf("%s: Lap(...) call is missing its sampling annotation argument", posString(e.Pos))
}

// ReturnDistanceNotZero is reported when the aligned distance of a
// return statement's expression is not provably 0.
type ReturnDistanceNotZero struct {
	Pos      cast.Pos
	Name     string
	Distance string
}

func (e *ReturnDistanceNotZero) Error() string {
	return fmt.Sprintf("%s: return value %q has non-zero aligned distance %q; a returned value must align exactly",
		posString(e.Pos), e.Name, e.Distance)
}

// SamplingMisplaced is reported when a Lap(...) declaration occurs while
// pc holds and shadow execution is not disabled for the function.
type SamplingMisplaced struct {
	Pos cast.Pos
}

func (e *SamplingMisplaced) Error() string {
	return fmt.Sprintf("%s: sampling command may only appear outside a divergent branch unless SHADOW tracking is disabled", posString(e.Pos))
}

// NonInjectiveAnnotation is reported when a sampling command's
// η-distance function fails the injectivity check §4.5 performs.
type NonInjectiveAnnotation struct {
	Pos         cast.Pos
	EtaDistance string
}

func (e *NonInjectiveAnnotation) Error() string {
	return fmt.Sprintf("%s: sampling annotation's η-distance %q is not injective under the query-adjacency precondition",
		posString(e.Pos), e.EtaDistance)
}

// UnsupportedConstruct is reported for a program shape the restricted
// grammar's transformer cannot handle: an array reference inside a
// shadow branch, a function call other than Lap/assume/assert/havoc, or
// a statement whose enclosing block could not be determined.
type UnsupportedConstruct struct {
	Pos    cast.Pos
	Detail string
}

func (e *UnsupportedConstruct) Error() string {
	return fmt.Sprintf("%s: unsupported construct: %s", posString(e.Pos), e.Detail)
}

// AnnotationSyntaxError is reported when an adjacency or
// parameter-distance annotation string fails to parse, optionally
// carrying a nearest-match suggestion for a misspelled selector token
// (the annotation-recovery addition).
type AnnotationSyntaxError struct {
	Pos        cast.Pos
	Raw        string
	Reason     string
	Suggestion string // empty when no close match was found
}

func (e *AnnotationSyntaxError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: malformed annotation %q: %s", posString(e.Pos), e.Raw, e.Reason)
	if e.Suggestion != "" {
		fmt.Fprintf(&sb, " (did you mean %q?)", e.Suggestion)
	}
	return sb.String()
}

func posString(pos cast.Pos) string {
	if pos.IsZero() {
		return "<unknown position>"
	}
	return pos.String()
}
