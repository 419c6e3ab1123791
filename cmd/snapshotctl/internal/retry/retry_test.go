package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/detached-state-go/cmd/snapshotctl/internal/retry"
)

var (
	errTransient = errors.New("connection refused")
	errPermanent = errors.New("password authentication failed")
)

func fast() []retry.Option {
	return []retry.Option{retry.WithBaseDelay(time.Millisecond), retry.WithJitterFactor(0)}
}

func Test_WithExponentialBackoff_SucceedsWithoutRetry(t *testing.T) {
	t.Parallel()

	calls := 0
	err := retry.WithExponentialBackoff(context.Background(), func(context.Context) error {
		calls++
		return nil
	}, fast()...)

	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func Test_WithExponentialBackoff_RetriesUntilSuccess(t *testing.T) {
	t.Parallel()

	calls := 0
	err := retry.WithExponentialBackoff(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errTransient
		}

		return nil
	}, fast()...)

	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func Test_WithExponentialBackoff_GivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	calls := 0
	err := retry.WithExponentialBackoff(context.Background(), func(context.Context) error {
		calls++
		return errTransient
	}, append(fast(), retry.WithMaxAttempts(4))...)

	require.ErrorIs(t, err, errTransient)
	require.Equal(t, 4, calls)
}

func Test_WithExponentialBackoff_FailsFastOnPermanentError(t *testing.T) {
	t.Parallel()

	calls := 0
	err := retry.WithExponentialBackoff(context.Background(), func(context.Context) error {
		calls++
		return errPermanent
	}, append(fast(), retry.WithRetryIf(func(err error) bool { return errors.Is(err, errTransient) }))...)

	require.ErrorIs(t, err, errPermanent)
	require.Equal(t, 1, calls)
}

func Test_WithExponentialBackoff_StopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := retry.WithExponentialBackoff(ctx, func(context.Context) error {
		calls++
		cancel()

		return errTransient
	}, retry.WithBaseDelay(time.Hour))

	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, err, errTransient)
	require.Equal(t, 1, calls)
}

func Test_WithExponentialBackoff_InvalidOptions(t *testing.T) {
	t.Parallel()

	fn := func(context.Context) error { return nil }

	require.ErrorIs(t, retry.WithExponentialBackoff(context.Background(), fn, retry.WithMaxAttempts(0)), retry.ErrInvalidMaxAttempts)
	require.ErrorIs(t, retry.WithExponentialBackoff(context.Background(), fn, retry.WithBaseDelay(-time.Second)), retry.ErrNegativeBaseDelay)
	require.ErrorIs(t, retry.WithExponentialBackoff(context.Background(), fn, retry.WithJitterFactor(1.5)), retry.ErrInvalidJitterFactor)
}
