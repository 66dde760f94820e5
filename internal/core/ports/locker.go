package ports

import (
	"context"
	"time"
)

// Locker provides filesystem mutual exclusion around a build run.
//
//go:generate go run go.uber.org/mock/mockgen -source=locker.go -destination=mocks/mock_locker.go -package=mocks
type Locker interface {
	// Acquire repeatedly attempts to take the lock sentinel at path until
	// timeout elapses. On timeout the error identifies the presumed owner.
	Acquire(ctx context.Context, path string, timeout time.Duration) error

	// Release removes the sentinel. It is idempotent.
	Release(path string) error
}
