package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/storage/storagetest"
)

func Test(t *testing.T) {
	storagetest.Run(t, "Memory", func(t *testing.T) storage.Storage {
		return New()
	})
}

func TestClosed(t *testing.T) {
	m := New()
	assert.NoError(t, m.Set(context.Background(), storage.KeyDarkMode, "true"))
	assert.NoError(t, m.Close())

	_, _, err := m.Get(context.Background(), storage.KeyDarkMode)
	assert.ErrorIs(t, err, storage.ErrClosed)
	assert.ErrorIs(t, m.Set(context.Background(), storage.KeyDarkMode, "false"), storage.ErrClosed)
}
