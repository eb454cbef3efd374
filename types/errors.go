package types

import (
	"errors"
	"strings"
)

// Sentinel errors for the reactor library.
//
// These errors provide type-safe error checking using errors.Is() and
// errors.As(). Components wrap external errors with context using
// fmt.Errorf("...: %w", err) and reserve the sentinels below for known
// protocol and usage conditions.

// Operator construction and subscription errors.
var (
	// ErrNilSourceFactoryResult is returned when a source factory returns a
	// nil Publisher, which is a contract violation.
	ErrNilSourceFactoryResult = errors.New("the source factory returned a nil publisher")

	// ErrInvalidDemand is returned when Request is called with a non-positive
	// amount.
	ErrInvalidDemand = errors.New("demand must be positive")
)

// CompositeError carries a primary failure together with secondary failures
// that were suppressed while handling it, typically a resource cleanup
// failure raised on an already-failing path.
//
// The primary failure remains the reported cause: Error() leads with it and
// errors.Is/errors.As match it first. Suppressed failures stay reachable
// through Unwrap() and Suppressed().
type CompositeError struct {
	primary    error
	suppressed []error
}

// AddSuppressed attaches suppressed to primary without discarding either.
//
// When primary is already a *CompositeError the suppressed failure is
// appended to it; otherwise a new CompositeError is formed. A nil suppressed
// error returns primary unchanged, and a nil primary returns suppressed
// unchanged, so callers can compose unconditionally.
func AddSuppressed(primary, suppressed error) error {
	if suppressed == nil {
		return primary
	}
	if primary == nil {
		return suppressed
	}

	if ce, ok := primary.(*CompositeError); ok {
		ce.suppressed = append(ce.suppressed, suppressed)
		return ce
	}

	return &CompositeError{primary: primary, suppressed: []error{suppressed}}
}

// Primary returns the reported cause of err: the primary failure when err is
// a *CompositeError, err itself otherwise. Returns nil for a nil err.
func Primary(err error) error {
	var ce *CompositeError
	if errors.As(err, &ce) {
		return ce.primary
	}

	return err
}

// SuppressedOf returns the suppressed failures attached to err, or nil when
// err carries none.
func SuppressedOf(err error) []error {
	var ce *CompositeError
	if errors.As(err, &ce) {
		return ce.Suppressed()
	}

	return nil
}

// Error formats the primary failure followed by any suppressed failures.
func (e *CompositeError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.primary.Error())
	for _, s := range e.suppressed {
		sb.WriteString("; suppressed: ")
		sb.WriteString(s.Error())
	}

	return sb.String()
}

// Unwrap exposes the primary failure first, then suppressed failures, so
// errors.Is and errors.As traverse all of them.
func (e *CompositeError) Unwrap() []error {
	out := make([]error, 0, len(e.suppressed)+1)
	out = append(out, e.primary)
	out = append(out, e.suppressed...)

	return out
}

// Primary returns the reported cause.
func (e *CompositeError) Primary() error {
	return e.primary
}

// Suppressed returns a copy of the suppressed failures in attachment order.
func (e *CompositeError) Suppressed() []error {
	out := make([]error, len(e.suppressed))
	copy(out, e.suppressed)

	return out
}
