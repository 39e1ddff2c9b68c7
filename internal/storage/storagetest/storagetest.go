// Package storagetest is a conformance suite every storage.Storage
// backend runs from its own tests.
package storagetest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/storage"
)

// Factory returns a fresh, empty backend. The suite closes it.
type Factory func(t *testing.T) storage.Storage

// Run runs the suite against the backend produced by factory.
func Run(t *testing.T, name string, factory Factory) {
	t.Run(name, func(t *testing.T) {
		t.Run("MissingKey", func(t *testing.T) {
			testMissingKey(t, factory(t))
		})
		t.Run("SetGet", func(t *testing.T) {
			testSetGet(t, factory(t))
		})
		t.Run("Overwrite", func(t *testing.T) {
			testOverwrite(t, factory(t))
		})
		t.Run("IndependentKeys", func(t *testing.T) {
			testIndependentKeys(t, factory(t))
		})
		t.Run("EmptyAndLargeValues", func(t *testing.T) {
			testEmptyAndLargeValues(t, factory(t))
		})
	})
}

func testMissingKey(t *testing.T, s storage.Storage) {
	defer s.Close()

	value, found, err := s.Get(context.Background(), storage.KeyStudents)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)
}

func testSetGet(t *testing.T, s storage.Storage) {
	defer s.Close()
	ctx := context.Background()

	list := `[{"name":"Alice","dept":"CS","age":20,"marks":88}]`
	require.NoError(t, s.Set(ctx, storage.KeyStudents, list))

	value, found, err := s.Get(ctx, storage.KeyStudents)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, list, value)
}

func testOverwrite(t *testing.T, s storage.Storage) {
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, storage.KeyDarkMode, "false"))
	require.NoError(t, s.Set(ctx, storage.KeyDarkMode, "true"))

	value, found, err := s.Get(ctx, storage.KeyDarkMode)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "true", value)
}

func testIndependentKeys(t *testing.T, s storage.Storage) {
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, storage.KeyStudents, "[]"))
	require.NoError(t, s.Set(ctx, storage.KeyDarkMode, "true"))

	students, _, err := s.Get(ctx, storage.KeyStudents)
	require.NoError(t, err)
	dark, _, err := s.Get(ctx, storage.KeyDarkMode)
	require.NoError(t, err)

	assert.Equal(t, "[]", students)
	assert.Equal(t, "true", dark)
}

func testEmptyAndLargeValues(t *testing.T, s storage.Storage) {
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "empty", ""))
	value, found, err := s.Get(ctx, "empty")
	require.NoError(t, err)
	assert.True(t, found, "an empty value is still a stored value")
	assert.Empty(t, value)

	large := strings.Repeat(`{"name":"N","dept":"D","age":1,"marks":1},`, 5000)
	require.NoError(t, s.Set(ctx, "large", large))
	value, found, err = s.Get(ctx, "large")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, large, value)
}
