// Package errchain attaches human-readable context to failures.
//
// A Chain renders its own context on the first line and its cause indented
// beneath it, so nested chains print as a tree of what was being attempted:
//
//	loading config
//	  reading /etc/multisearch.yaml
//	    open /etc/multisearch.yaml: permission denied
package errchain

import (
	"errors"
	"fmt"
	"strings"
)

const indent = "  "

// Chain is a context description with an optional cause.
type Chain struct {
	context any
	cause   error
}

// New returns a Chain with no cause.
func New(context any) *Chain {
	return &Chain{context: context}
}

// Wrap returns err with context attached, or nil if err is nil.
func Wrap(err error, context any) error {
	if err == nil {
		return nil
	}
	return &Chain{context: context, cause: err}
}

// WrapFunc is Wrap with a lazily computed context. fn is only called when err
// is not nil.
func WrapFunc(err error, fn func() any) error {
	if err == nil {
		return nil
	}
	return &Chain{context: fn(), cause: err}
}

// Require turns an optional result into an error. It returns v when ok is
// true and a Chain carrying context otherwise.
func Require[T any](v T, ok bool, context any) (T, error) {
	if ok {
		return v, nil
	}
	var zero T
	return zero, New(context)
}

// RequireFunc is Require with a lazily computed context.
func RequireFunc[T any](v T, ok bool, fn func() any) (T, error) {
	if ok {
		return v, nil
	}
	var zero T
	return zero, New(fn())
}

// Context returns the context value of c.
func (c *Chain) Context() any {
	return c.context
}

// Error renders the context followed by the indented cause chain.
func (c *Chain) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprint(c.context))
	if c.cause != nil {
		for _, line := range strings.Split(c.cause.Error(), "\n") {
			b.WriteString("\n")
			b.WriteString(indent)
			b.WriteString(line)
		}
	}
	return b.String()
}

// Unwrap returns the cause, if any.
func (c *Chain) Unwrap() error {
	return c.cause
}

// Root returns the innermost error of err, following Unwrap.
func Root(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
