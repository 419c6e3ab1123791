package helper

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// GivenUniqueOwnerID returns an owner id that no other test uses.
func GivenUniqueOwnerID(t testing.TB, prefix string) string {
	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return prefix + "-" + id.String()
}

// ContextWithTimeout returns a context that is canceled after five seconds or when the test ends.
func ContextWithTimeout(t testing.TB) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	return ctx
}

// GivenSpiedLogger returns a slog.Logger writing into a fresh LogHandlerSpy.
func GivenSpiedLogger() (*slog.Logger, *LogHandlerSpy) {
	spy := NewLogHandlerSpy(false)

	return slog.New(spy), spy
}
