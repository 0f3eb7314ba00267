// Package errors defines the error taxonomy shared by the finna-xml
// document model. Every failure surfaces as an *Error carrying a stable
// code plus whatever context the failing call had (offending literal,
// source position).
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a failure class.
type ErrorCode string

const (
	// ErrParse indicates the XML token stream was malformed.
	ErrParse ErrorCode = "xml-parse-error"
	// ErrNoDocument indicates an operation on an uninitialized document.
	ErrNoDocument ErrorCode = "xml-no-document"
	// ErrInvalidNotation indicates a name satisfying neither the bracketed
	// nor the spaced qualified-name spelling.
	ErrInvalidNotation ErrorCode = "notation-invalid"
	// ErrNamespaceRequired indicates an unqualified name with no default
	// namespace configured to complete it.
	ErrNamespaceRequired ErrorCode = "notation-namespace-required"
	// ErrPathSyntax indicates unbalanced brace notation in a path string.
	ErrPathSyntax ErrorCode = "path-syntax"
	// ErrInvalidFormat indicates an import value failing the shape check.
	ErrInvalidFormat ErrorCode = "invalid-document-format"
	// ErrPrefixNotResolved indicates a namespace with no derivable prefix
	// at render time.
	ErrPrefixNotResolved ErrorCode = "prefix-not-resolved"
	// ErrMutationInProgress indicates Filter or Modify re-entered from one
	// of its own callbacks.
	ErrMutationInProgress ErrorCode = "mutation-in-progress"
)

// Error is the concrete error type returned by the document model.
type Error struct {
	Code    ErrorCode
	Message string
	Literal string // offending name, segment, or path, when applicable
	Line    int
	Column  int
}

// Error returns the code, position, message, and literal in a compact form.
func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Line > 0 {
		msg = fmt.Sprintf("%s: %s (line %d, column %d)", e.Code, e.Message, e.Line, e.Column)
	}
	if e.Literal != "" {
		msg += ": " + e.Literal
	}
	return msg
}

// Is matches another *Error with the same code, so callers can use
// errors.Is(err, &Error{Code: ErrNoDocument}).
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// CodeOf returns the code of err, or the empty code for foreign errors.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Parse wraps a token-stream diagnostic with its source position.
func Parse(message string, line, column int) *Error {
	return &Error{Code: ErrParse, Message: message, Line: line, Column: column}
}

// NoDocument reports an operation on a document with no parsed tree.
func NoDocument() *Error {
	return &Error{Code: ErrNoDocument, Message: "no document"}
}

// InvalidNotation reports a name in neither accepted spelling.
func InvalidNotation(literal string) *Error {
	return &Error{Code: ErrInvalidNotation, Message: "name must use {namespace}local or \"namespace local\" notation", Literal: literal}
}

// NamespaceRequired reports an unqualified name with no default namespace.
func NamespaceRequired(literal string) *Error {
	return &Error{Code: ErrNamespaceRequired, Message: "must use correct notation, or default namespace must be defined", Literal: literal}
}

// PathSyntax reports unbalanced brace notation in a delimited path.
func PathSyntax(message, literal string) *Error {
	return &Error{Code: ErrPathSyntax, Message: message, Literal: literal}
}

// InvalidFormat reports an import value failing the minimal shape check.
func InvalidFormat(message string) *Error {
	return &Error{Code: ErrInvalidFormat, Message: message}
}

// PrefixNotResolved reports a namespace with no prefix at render time.
func PrefixNotResolved(namespace string) *Error {
	return &Error{Code: ErrPrefixNotResolved, Message: "no prefix resolvable for namespace", Literal: namespace}
}

// MutationInProgress reports Filter or Modify re-entered from a callback.
func MutationInProgress() *Error {
	return &Error{Code: ErrMutationInProgress, Message: "filter/modify must not be re-entered from a callback"}
}
