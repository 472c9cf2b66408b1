// File: strata/result.go
package strata

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors surfaced as causes on ConfigError records.
var (
	// ErrNotFound marks a config file that does not exist.
	ErrNotFound = errors.New("config file not found")
	// ErrCLIParse marks malformed command-line arguments.
	ErrCLIParse = errors.New("failed to parse CLI args")
)

// ErrorKind classifies resolution errors.
type ErrorKind int

const (
	// ErrorLayerLoad is an I/O or parse failure for one layer.
	ErrorLayerLoad ErrorKind = iota
	// ErrorMissingRequired is a required schema field unset after the merge.
	ErrorMissingRequired
	// ErrorConstruction is a coercion, validation, or assembly failure.
	ErrorConstruction
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorLayerLoad:
		return "layer-load"
	case ErrorMissingRequired:
		return "missing-required"
	case ErrorConstruction:
		return "construction"
	default:
		return "unknown"
	}
}

// ConfigError is one diagnosable failure from a resolution run: the layer
// involved, a message, an optional underlying cause, and the dotted key
// path when the error concerns a single field.
type ConfigError struct {
	Layer   Layer
	Kind    ErrorKind
	Path    string
	Message string
	Cause   error
}

func (e ConfigError) Error() string {
	msg := fmt.Sprintf("%s [%s]", e.Message, e.Layer)
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e ConfigError) Unwrap() error { return e.Cause }

// Metadata describes how a successful resolution came together.
type Metadata struct {
	// Sources maps each merged key path to the layer that supplied it.
	Sources map[string]Layer
	// Loaded lists the layers that actually loaded, highest precedence first.
	Loaded []Layer
	// ResolvedAt is when the run completed.
	ResolvedAt time.Time
}

// Result is the outcome of one resolution run: either a built value with
// metadata, or an ordered list of accumulated errors. A best-effort
// success may still carry nonfatal layer errors; OK distinguishes the two.
// The caller owns the result; it is produced once and never mutated.
type Result[T any] struct {
	value  T
	meta   Metadata
	errors []ConfigError
	ok     bool
}

func success[T any](value T, meta Metadata, errs []ConfigError) Result[T] {
	return Result[T]{value: value, meta: meta, errors: errs, ok: true}
}

func failure[T any](errs []ConfigError) Result[T] {
	return Result[T]{errors: errs}
}

// OK reports whether resolution produced a usable value.
func (r Result[T]) OK() bool { return r.ok }

// Value returns the built configuration; the zero value on failure.
func (r Result[T]) Value() T { return r.value }

// Metadata returns provenance and load information for a successful run.
func (r Result[T]) Metadata() Metadata { return r.meta }

// Errors returns every accumulated error in occurrence order. On a
// best-effort success this lists the nonfatal layer failures.
func (r Result[T]) Errors() []ConfigError {
	out := make([]ConfigError, len(r.errors))
	copy(out, r.errors)
	return out
}

// Err collapses the accumulated errors into one error, or nil when the
// run succeeded cleanly.
func (r Result[T]) Err() error {
	if r.ok && len(r.errors) == 0 {
		return nil
	}
	joined := make([]error, len(r.errors))
	for i, e := range r.errors {
		joined[i] = e
	}
	return errors.Join(joined...)
}
