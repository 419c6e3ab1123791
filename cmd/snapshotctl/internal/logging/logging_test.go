package logging_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/AntonStoeckl/detached-state-go/cmd/snapshotctl/internal/logging"
)

func Test_ParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"":      zapcore.InfoLevel,
		"WARN":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for s, lvl := range cases {
		got, err := logging.ParseLevel(s)
		require.NoError(t, err)
		require.Equal(t, lvl, got)
	}

	_, err := logging.ParseLevel("verbose")
	require.ErrorIs(t, err, logging.ErrUnknownLogLevel)
}

func Test_Logger_PassesArgsAsFields(t *testing.T) {
	t.Parallel()

	core, recorded := observer.New(zapcore.DebugLevel)
	logger := logging.Wrap(zap.New(core).Sugar())

	logger.Info("snapshot saved", "owner_id", "button-1", "rows_affected", int64(1))
	logger.Debug("executed sql for: save", "query", "INSERT ...")
	logger.Warn("failed to close database rows")
	logger.Error("database execution failed", "error", "boom")

	require.Equal(t, 4, recorded.Len())

	saved := recorded.FilterMessage("snapshot saved").All()
	require.Len(t, saved, 1)
	require.Equal(t, zapcore.InfoLevel, saved[0].Level)
	require.Equal(t, "button-1", saved[0].ContextMap()["owner_id"])
	require.Equal(t, int64(1), saved[0].ContextMap()["rows_affected"])

	require.Equal(t, 1, recorded.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func Test_Logger_RespectsLevel(t *testing.T) {
	t.Parallel()

	core, recorded := observer.New(zapcore.WarnLevel)
	logger := logging.Wrap(zap.New(core).Sugar())

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	require.Equal(t, 1, recorded.Len())
}
