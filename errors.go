package reactor

import "github.com/itssanjib/reactor-core/types"

// Sentinel errors returned through the error-signal path.
var (
	// ErrNilSourceFactoryResult is delivered when a source factory returns a
	// nil Publisher, which is a contract violation. The resource created for
	// the attempt is released before the error is signalled.
	ErrNilSourceFactoryResult = types.ErrNilSourceFactoryResult

	// ErrInvalidDemand is delivered when Request is called with a
	// non-positive amount.
	ErrInvalidDemand = types.ErrInvalidDemand
)

// AddSuppressed attaches a secondary failure to a primary one without
// discarding either. See types.AddSuppressed.
func AddSuppressed(primary, suppressed error) error {
	return types.AddSuppressed(primary, suppressed)
}

// Primary returns the reported cause of err. See types.Primary.
func Primary(err error) error {
	return types.Primary(err)
}

// SuppressedOf returns the suppressed failures attached to err.
// See types.SuppressedOf.
func SuppressedOf(err error) []error {
	return types.SuppressedOf(err)
}
