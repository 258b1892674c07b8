package stest

import (
	"log/slog"
	"testing"

	"github.com/neilotoole/slogt"
)

// NewLogger returns a logger that routes records through t.Log,
// so output is associated with the owning test.
func NewLogger(t testing.TB) *slog.Logger {
	return slogt.New(t)
}
