package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/storage/storagetest"
)

func newTestRedis(t *testing.T, mr *miniredis.Miniredis, prefix string) *Redis {
	t.Helper()
	r, err := New(Config{Addr: mr.Addr(), Prefix: prefix, DialTimeout: time.Second})
	require.NoError(t, err)
	return r
}

func Test(t *testing.T) {
	storagetest.Run(t, "Redis", func(t *testing.T) storage.Storage {
		return newTestRedis(t, miniredis.RunT(t), "records:")
	})
}

func TestKeysArePrefixed(t *testing.T) {
	mr := miniredis.RunT(t)
	r := newTestRedis(t, mr, "class-a:")
	defer r.Close()

	require.NoError(t, r.Set(context.Background(), storage.KeyDarkMode, "true"))

	got, err := mr.Get("class-a:darkMode")
	require.NoError(t, err)
	assert.Equal(t, "true", got)
	assert.False(t, mr.Exists("darkMode"))
}

func TestPrefixesIsolateLists(t *testing.T) {
	mr := miniredis.RunT(t)
	a := newTestRedis(t, mr, "a:")
	defer a.Close()
	b := newTestRedis(t, mr, "b:")
	defer b.Close()

	require.NoError(t, a.Set(context.Background(), storage.KeyStudents, "[]"))

	_, found, err := b.Get(context.Background(), storage.KeyStudents)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNew_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := New(Config{Addr: addr, DialTimeout: 200 * time.Millisecond})
	assert.ErrorIs(t, err, ErrConnection)
}

func TestServerErrorsAreReported(t *testing.T) {
	mr := miniredis.RunT(t)
	r := newTestRedis(t, mr, "")
	defer r.Close()

	mr.SetError("READONLY You can't write against a read only replica.")

	assert.Error(t, r.Set(context.Background(), storage.KeyStudents, "[]"))
	_, _, err := r.Get(context.Background(), storage.KeyStudents)
	assert.Error(t, err)
}
