// Package memory provides a process-local storage.Storage backed by a
// concurrent map. Nothing survives a restart, so it suits tests, demos and
// the "memory" backend setting.
package memory

import (
	"context"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/aanand-mishra/student-records/internal/storage"
)

// Memory is an in-memory key-value store.
type Memory struct {
	entries *xsync.MapOf[string, string]
	closed  atomic.Bool
}

// New returns an empty store.
func New() *Memory {
	return &Memory{entries: xsync.NewMapOf[string, string]()}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	if m.closed.Load() {
		return "", false, storage.ErrClosed
	}
	value, ok := m.entries.Load(key)
	return value, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	if m.closed.Load() {
		return storage.ErrClosed
	}
	m.entries.Store(key, value)
	return nil
}

// Close marks the store closed and drops its contents.
func (m *Memory) Close() error {
	m.closed.Store(true)
	m.entries.Clear()
	return nil
}
