// Package lock implements filesystem mutual exclusion for build runs.
package lock

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Locker = (*FileLock)(nil)

// retryInterval is the fixed sleep between acquisition attempts.
const retryInterval = 500 * time.Millisecond

// owner is the metadata written into the lock sentinel for diagnostics.
type owner struct {
	PID       int       `json:"pid"`
	Timestamp time.Time `json:"timestamp"`
	Host      string    `json:"host"`
}

// FileLock implements ports.Locker with an exclusively-created sentinel file.
// The sentinel's presence is the mutual-exclusion signal; ownership is
// established by atomic creation.
type FileLock struct {
	logger ports.Logger
}

// NewFileLock creates a new FileLock.
func NewFileLock(logger ports.Logger) *FileLock {
	return &FileLock{logger: logger}
}

// Acquire attempts atomic creation of the sentinel at path, retrying at a
// fixed interval until timeout elapses. On timeout the error names the
// presumed owner and suggests manual removal.
func (l *FileLock) Acquire(ctx context.Context, path string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	for {
		created, err := l.tryCreate(path)
		if err != nil {
			return err
		}
		if created {
			return nil
		}

		current := l.readOwner(path)
		if time.Now().After(deadline) {
			return l.timeoutError(path, current)
		}
		l.logger.Info(fmt.Sprintf("build lock held by %s, waiting", describeOwner(current)))

		select {
		case <-ctx.Done():
			return zerr.Wrap(ctx.Err(), "lock acquisition interrupted")
		case <-time.After(retryInterval):
		}
	}
}

func (l *FileLock) tryCreate(path string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return false, zerr.Wrap(err, "failed to create lock directory")
	}

	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to create lock sentinel"), "path", path)
	}

	host, _ := os.Hostname()
	meta := owner{PID: os.Getpid(), Timestamp: time.Now().UTC(), Host: host}
	if err := json.NewEncoder(f).Encode(meta); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return false, zerr.Wrap(err, "failed to write lock owner metadata")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return false, zerr.Wrap(err, "failed to close lock sentinel")
	}
	return true, nil
}

// readOwner reads the current holder's metadata, best effort.
func (l *FileLock) readOwner(path string) *owner {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil
	}
	var o owner
	if err := json.Unmarshal(data, &o); err != nil {
		return nil
	}
	return &o
}

func (l *FileLock) timeoutError(path string, o *owner) error {
	err := zerr.With(domain.ErrLockTimeout, "path", path)
	if o != nil {
		err = zerr.With(err, "owner_pid", o.PID)
		err = zerr.With(err, "owner_host", o.Host)
		err = zerr.With(err, "held_since", o.Timestamp.Format(time.RFC3339))
	}
	return zerr.With(err, "hint", "if no build is running, remove the lock file manually")
}

func describeOwner(o *owner) string {
	if o == nil {
		return "unknown owner"
	}
	return fmt.Sprintf("pid %d on %s since %s", o.PID, o.Host, o.Timestamp.Format(time.RFC3339))
}

// Release removes the sentinel. Releasing an already-released lock is a no-op.
func (l *FileLock) Release(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return zerr.With(zerr.Wrap(err, "failed to remove lock sentinel"), "path", path)
	}
	return nil
}
