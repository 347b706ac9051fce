package store

import (
	"context"

	"github.com/launchdash/launchdash/internal/launch"
)

// Store defines the snapshot storage operations for launch records
type Store interface {
	// ReplaceLaunches swaps the whole snapshot for records
	ReplaceLaunches(ctx context.Context, source string, records []launch.Record) error
	ListLaunches(ctx context.Context) ([]launch.Record, error)
	CountLaunches(ctx context.Context) (int, error)
	LastImport(ctx context.Context) (*Import, error)

	// Lifecycle
	Close() error
}
