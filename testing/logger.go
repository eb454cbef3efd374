package testing

import (
	"testing"

	"github.com/itssanjib/reactor-core/internal/logger"
	"github.com/itssanjib/reactor-core/types"
)

// NewTestLogger creates a logger instance that writes to the testing.T
// logger. This is useful for seeing operator log output during test runs.
func NewTestLogger(t *testing.T) types.Logger {
	return logger.NewTest(t)
}
