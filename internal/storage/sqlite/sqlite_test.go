package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/storage/storagetest"
)

func Test(t *testing.T) {
	storagetest.Run(t, "SQLite", func(t *testing.T) storage.Storage {
		s, err := New(filepath.Join(t.TempDir(), "storage.db"))
		require.NoError(t, err)
		return s
	})
}

func TestNew_CreatesParentDirAndPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "storage.db")
	ctx := context.Background()

	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, storage.KeyDarkMode, "true"))
	require.NoError(t, s.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, found, err := reopened.Get(ctx, storage.KeyDarkMode)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "true", value)
}

func TestClosedDatabaseReturnsErrors(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "storage.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, _, err = s.Get(context.Background(), storage.KeyStudents)
	assert.Error(t, err)
	assert.Error(t, s.Set(context.Background(), storage.KeyStudents, "[]"))
}
