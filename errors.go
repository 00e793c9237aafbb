package main

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	UnboundSymbol ErrorKind = iota
	ArityError
	TypeError
	MalformedExpression
	DuplicateBinding
	UnspecifiedReference
	NotCallable
)

var kindNames = [...]string{
	UnboundSymbol:        "UnboundSymbol",
	ArityError:           "ArityError",
	TypeError:            "TypeError",
	MalformedExpression:  "MalformedExpression",
	DuplicateBinding:     "DuplicateBinding",
	UnspecifiedReference: "UnspecifiedReference",
	NotCallable:          "NotCallable",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// EvalError is returned by every failing evaluation. Form is the offending
// expression or symbol, when there is one.
type EvalError struct {
	Kind ErrorKind
	Form Datum
	Msg  string
}

func (e *EvalError) Error() string {
	if e.Form == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Msg, Print(e.Form))
}

func newError(kind ErrorKind, form Datum, format string, args ...any) *EvalError {
	return &EvalError{Kind: kind, Form: form, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the error kind from err if it wraps an *EvalError.
func KindOf(err error) (ErrorKind, bool) {
	var evalErr *EvalError
	if errors.As(err, &evalErr) {
		return evalErr.Kind, true
	}
	return 0, false
}
