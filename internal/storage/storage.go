// Package storage defines the Storage interface, the contract any
// backing key-value store must satisfy to hold the application's state.
//
// The application persists exactly two entries:
//
//	"students" → JSON array of {name, dept, age, marks}
//	"darkMode" → the literal text "true" or "false"
//
// Backends only move opaque strings. Serialization, defaults and
// validation belong to the records package, so swapping SQLite for Redis
// or the in-memory map changes one line in main.go and nothing else.
package storage

import (
	"context"
	"errors"
)

// Keys under which the application state is stored.
const (
	KeyStudents = "students"
	KeyDarkMode = "darkMode"
)

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("storage: closed")

// Storage is the backing key-value contract.
// Any concrete type that implements ALL of these methods automatically
// satisfies this interface.
type Storage interface {
	// Get returns the value stored under key. found is false (with a nil
	// error) when the key has never been written.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases the backend's resources.
	Close() error
}
