package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddSuppressed_NilHandling(t *testing.T) {
	errA := errors.New("a")

	require.Nil(t, AddSuppressed(nil, nil))
	require.Equal(t, errA, AddSuppressed(errA, nil))
	require.Equal(t, errA, AddSuppressed(nil, errA))
}

func TestAddSuppressed_PrimaryStaysPrimary(t *testing.T) {
	primary := errors.New("factory failed")
	cleanup := errors.New("cleanup failed")

	err := AddSuppressed(primary, cleanup)
	require.Equal(t, primary, Primary(err))
	require.Equal(t, []error{cleanup}, SuppressedOf(err))

	// Both failures remain reachable for errors.Is.
	require.ErrorIs(t, err, primary)
	require.ErrorIs(t, err, cleanup)
}

func TestAddSuppressed_AppendsToExistingComposite(t *testing.T) {
	primary := errors.New("primary")
	first := errors.New("first suppressed")
	second := errors.New("second suppressed")

	err := AddSuppressed(AddSuppressed(primary, first), second)

	var ce *CompositeError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, primary, ce.Primary())
	require.Equal(t, []error{first, second}, ce.Suppressed())
}

func TestCompositeError_Message(t *testing.T) {
	err := AddSuppressed(errors.New("boom"), errors.New("close failed"))
	require.Equal(t, "boom; suppressed: close failed", err.Error())
}

func TestCompositeError_WrappedPrimaryMatches(t *testing.T) {
	sentinel := errors.New("sentinel")
	primary := fmt.Errorf("while reading: %w", sentinel)

	err := AddSuppressed(primary, errors.New("cleanup"))
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, primary, Primary(err))
}

func TestPrimaryAndSuppressedOf_PlainError(t *testing.T) {
	errA := errors.New("plain")

	require.Equal(t, errA, Primary(errA))
	require.Nil(t, SuppressedOf(errA))
	require.Nil(t, Primary(nil))
}
