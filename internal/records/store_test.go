package records

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/storage/memory"
	"github.com/aanand-mishra/student-records/internal/types"
)

var errDisk = errors.New("quota exceeded")

// faultyKV wraps a memory store and fails reads or writes on demand.
type faultyKV struct {
	*memory.Memory
	failGet map[string]bool
	failSet map[string]bool
	sets    int
}

func newFaultyKV() *faultyKV {
	return &faultyKV{
		Memory:  memory.New(),
		failGet: map[string]bool{},
		failSet: map[string]bool{},
	}
}

func (f *faultyKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failGet[key] {
		return "", false, errDisk
	}
	return f.Memory.Get(ctx, key)
}

func (f *faultyKV) Set(ctx context.Context, key, value string) error {
	f.sets++
	if f.failSet[key] {
		return errDisk
	}
	return f.Memory.Set(ctx, key, value)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestStore_LoadAbsentKeys(t *testing.T) {
	s := NewStore(memory.New(), discardLogger())

	students, dark := s.Load(context.Background())
	assert.NotNil(t, students)
	assert.Empty(t, students)
	assert.False(t, dark)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	list := []types.Student{alice, bob, carol, alice}

	for _, dark := range []bool{true, false} {
		require.NoError(t, NewStore(kv, discardLogger()).Save(ctx, list, dark))

		fresh := NewStore(kv, discardLogger())
		students, gotDark := fresh.Load(ctx)
		assert.Equal(t, list, students)
		assert.Equal(t, dark, gotDark)
		assert.Equal(t, list, fresh.Students())
		assert.Equal(t, dark, fresh.DarkMode())
	}
}

func TestStore_PersistedLayout(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()

	require.NoError(t, NewStore(kv, discardLogger()).Save(ctx, []types.Student{alice}, true))

	raw, found, err := kv.Get(ctx, storage.KeyStudents)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `[{"name":"Alice","dept":"CS","age":20,"marks":88}]`, raw)

	raw, found, err = kv.Get(ctx, storage.KeyDarkMode)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "true", raw)
}

func TestStore_SaveEmptyListWritesArray(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()

	require.NoError(t, NewStore(kv, discardLogger()).Save(ctx, nil, false))

	raw, _, err := kv.Get(ctx, storage.KeyStudents)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestStore_LoadDegradesToDefaults(t *testing.T) {
	tests := []struct {
		name     string
		students string
		darkMode string
	}{
		{"malformed json", `[{"name":`, "yes"},
		{"wrong shape", `{"name":"Alice"}`, "1"},
		{"invalid record", `[{"name":"Alice","dept":"CS","age":20,"marks":88},{"name":"","dept":"EE","age":0,"marks":50}]`, "TRUE"},
		{"null", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := memory.New()
			require.NoError(t, kv.Set(ctx, storage.KeyStudents, tt.students))
			require.NoError(t, kv.Set(ctx, storage.KeyDarkMode, tt.darkMode))

			var logs bytes.Buffer
			s := NewStore(kv, slog.New(slog.NewTextHandler(&logs, nil)))

			students, dark := s.Load(ctx)
			assert.Empty(t, students)
			assert.NotNil(t, students)
			assert.False(t, dark)
			assert.Contains(t, logs.String(), "level=WARN")
		})
	}
}

func TestStore_LoadReadFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	kv := newFaultyKV()
	require.NoError(t, kv.Memory.Set(ctx, storage.KeyDarkMode, "true"))
	kv.failGet[storage.KeyStudents] = true

	students, dark := NewStore(kv, discardLogger()).Load(ctx)
	assert.Empty(t, students)
	assert.True(t, dark, "the readable key still loads")
}

func TestStore_SaveFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	kv := newFaultyKV()
	kv.failSet[storage.KeyStudents] = true
	s := NewStore(kv, discardLogger())

	err := s.Save(ctx, []types.Student{alice}, true)

	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, storage.KeyStudents, se.Key)
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, errDisk)

	assert.Equal(t, []types.Student{alice}, s.Students(), "memory is not rolled back")
	assert.True(t, s.DarkMode())
	assert.Equal(t, 2, kv.sets, "darkMode is still written")

	raw, _, _ := kv.Memory.Get(ctx, storage.KeyDarkMode)
	assert.Equal(t, "true", raw)
}

func TestStore_SaveCopiesInput(t *testing.T) {
	s := NewStore(memory.New(), discardLogger())
	list := []types.Student{alice}
	require.NoError(t, s.Save(context.Background(), list, false))

	list[0] = bob
	assert.Equal(t, alice, s.Students()[0])

	out := s.Students()
	out[0] = bob
	assert.Equal(t, alice, s.Students()[0])
	assert.Equal(t, 1, s.Len())
}
