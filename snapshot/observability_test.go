package snapshot_test

import (
	"log/slog"

	"github.com/AntonStoeckl/detached-state-go/snapshot"
)

var _ snapshot.Logger = (*slog.Logger)(nil)
