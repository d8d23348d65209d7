package hypergraph

import (
	"errors"
	"fmt"

	"github.com/roach88/hgx/internal/ident"
)

// Error is returned by every failing hypergraph operation.
//
// Error carries a stable Code so that callers (and any binding layer)
// can branch on the category without parsing messages:
//   - DIMENSION_MISMATCH: weights or metadata length does not match edges
//   - INVALID_EDGE: an edge has fewer than two distinct members
//   - NOT_FOUND: a referenced node, edge or attribute is absent
//   - INVALID_ARGUMENT: a value is unusable (bad id, weights on an unweighted graph)
type Error struct {
	// Code identifies the error category.
	Code Code

	// Op is the operation that failed, e.g. "AddEdges".
	Op string

	// Message is a human-readable description.
	Message string

	// Details contains additional context such as the offending index.
	Details map[string]string

	// Err is the underlying cause, if any.
	Err error
}

// Code categorizes hypergraph errors.
type Code string

const (
	// CodeDimensionMismatch indicates parallel inputs of different lengths.
	CodeDimensionMismatch Code = "DIMENSION_MISMATCH"

	// CodeInvalidEdge indicates an edge with fewer than two distinct members.
	CodeInvalidEdge Code = "INVALID_EDGE"

	// CodeNotFound indicates a missing node, edge or attribute.
	CodeNotFound Code = "NOT_FOUND"

	// CodeInvalidArgument indicates an unusable argument value.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
)

// Sentinels for errors.Is. They match any *Error with the same Code.
var (
	ErrDimensionMismatch = &Error{Code: CodeDimensionMismatch, Message: "dimension mismatch"}
	ErrInvalidEdge       = &Error{Code: CodeInvalidEdge, Message: "invalid edge"}
	ErrNotFound          = &Error{Code: CodeNotFound, Message: "not found"}
	ErrInvalidArgument   = &Error{Code: CodeInvalidArgument, Message: "invalid argument"}
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

func hasCode(err error, code Code) bool {
	var he *Error
	if errors.As(err, &he) {
		return he.Code == code
	}
	return false
}

// IsNotFound returns true if err is a NOT_FOUND error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsInvalidEdge returns true if err is an INVALID_EDGE error.
func IsInvalidEdge(err error) bool {
	return hasCode(err, CodeInvalidEdge)
}

// IsDimensionMismatch returns true if err is a DIMENSION_MISMATCH error.
func IsDimensionMismatch(err error) bool {
	return hasCode(err, CodeDimensionMismatch)
}

// IsInvalidArgument returns true if err is an INVALID_ARGUMENT error.
func IsInvalidArgument(err error) bool {
	return hasCode(err, CodeInvalidArgument)
}

func newDimensionError(op, what string, want, got int) *Error {
	return &Error{
		Code:    CodeDimensionMismatch,
		Op:      op,
		Message: fmt.Sprintf("%s length %d does not match %d edges", what, got, want),
		Details: map[string]string{
			"what": what,
			"want": fmt.Sprintf("%d", want),
			"got":  fmt.Sprintf("%d", got),
		},
	}
}

func newNotFoundError(op, what string, ref any) *Error {
	return &Error{
		Code:    CodeNotFound,
		Op:      op,
		Message: fmt.Sprintf("%s %v not found", what, ref),
		Details: map[string]string{what: fmt.Sprint(ref)},
	}
}

func newArgumentError(op, msg string) *Error {
	return &Error{Code: CodeInvalidArgument, Op: op, Message: msg}
}

// fromIdent maps identifier and canonicalization failures onto codes.
// index is the position in a batch, or -1 for single-item calls.
func fromIdent(op string, err error, index int) *Error {
	code := CodeInvalidArgument
	if errors.Is(err, ident.ErrTooFewMembers) {
		code = CodeInvalidEdge
	}
	e := &Error{Code: code, Op: op, Message: err.Error(), Err: err}
	if index >= 0 {
		e.Message = fmt.Sprintf("edge %d: %s", index, err.Error())
		e.Details = map[string]string{"index": fmt.Sprintf("%d", index)}
	}
	return e
}
