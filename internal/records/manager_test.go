package records

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/storage/memory"
	"github.com/aanand-mishra/student-records/internal/types"
)

// newManager returns a Manager over kv pre-populated with list.
func newManager(t *testing.T, kv storage.Storage, list ...types.Student) *Manager {
	t.Helper()
	store := NewStore(kv, discardLogger())
	if len(list) > 0 {
		require.NoError(t, store.Save(context.Background(), list, false))
	}
	return NewManager(store, discardLogger())
}

// reload reads back what is persisted in kv.
func reload(kv storage.Storage) ([]types.Student, bool) {
	return NewStore(kv, discardLogger()).Load(context.Background())
}

func TestManager_Add(t *testing.T) {
	kv := memory.New()
	m := newManager(t, kv, alice)

	index, err := m.Add(context.Background(), bob)
	require.NoError(t, err)
	assert.Equal(t, 1, index)

	persisted, _ := reload(kv)
	assert.Equal(t, []types.Student{alice, bob}, persisted)
}

func TestManager_AddInvalidLeavesEverythingUnchanged(t *testing.T) {
	kv := newFaultyKV()
	m := newManager(t, kv, alice)
	setsBefore := kv.sets

	_, err := m.Add(context.Background(), types.Student{Name: "Bob", Dept: "EE", Age: 0, Marks: 50})
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, []types.Student{alice}, m.store.Students())
	assert.Equal(t, setsBefore, kv.sets, "nothing is written")
}

func TestManager_Update(t *testing.T) {
	kv := memory.New()
	m := newManager(t, kv, alice, bob, carol)
	edited := types.Student{Name: "Bob", Dept: "EE", Age: 21, Marks: 95}

	require.NoError(t, m.Update(context.Background(), 1, edited))

	persisted, _ := reload(kv)
	assert.Equal(t, []types.Student{alice, edited, carol}, persisted)

	assert.ErrorIs(t, m.Update(context.Background(), 3, edited), ErrIndex)
	assert.ErrorIs(t, m.Update(context.Background(), 0, types.Student{}), ErrValidation)
}

func TestManager_Delete(t *testing.T) {
	kv := memory.New()
	m := newManager(t, kv, alice, bob)

	require.NoError(t, m.Delete(context.Background(), 0))

	persisted, _ := reload(kv)
	assert.Equal(t, []types.Student{bob}, persisted)

	assert.ErrorIs(t, m.Delete(context.Background(), 1), ErrIndex)
}

func TestManager_Get(t *testing.T) {
	m := newManager(t, memory.New(), alice, bob)

	got, err := m.Get(1)
	require.NoError(t, err)
	assert.Equal(t, bob, got)

	_, err = m.Get(2)
	assert.ErrorIs(t, err, ErrIndex)
	_, err = m.Get(-1)
	assert.ErrorIs(t, err, ErrIndex)
}

func TestManager_StudentsIsCopy(t *testing.T) {
	m := newManager(t, memory.New(), alice, bob)
	assert.Equal(t, 2, m.Len())

	got := m.Students()
	got[0].Name = "changed"

	again, err := m.Get(0)
	require.NoError(t, err)
	assert.Equal(t, alice, again)
}

func TestManager_List(t *testing.T) {
	list := numbered(12)
	list = append(list, types.Student{Name: "Zed", Dept: "EE", Age: 30, Marks: 40})
	m := newManager(t, memory.New(), list...)

	page := m.List("", 3, 5)
	assert.Equal(t, list[10:13], page.Items)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 13, page.TotalMatches)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 5, page.PageSize)

	page = m.List("ee", 1, 5)
	assert.Equal(t, []types.Student{list[12]}, page.Items)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.TotalMatches)

	page = m.List("nobody", 1, 5)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
}

func TestManager_DarkMode(t *testing.T) {
	kv := memory.New()
	m := newManager(t, kv, alice)
	ctx := context.Background()

	assert.False(t, m.DarkMode())

	dark, err := m.ToggleDarkMode(ctx)
	require.NoError(t, err)
	assert.True(t, dark)
	_, persistedDark := reload(kv)
	assert.True(t, persistedDark)

	require.NoError(t, m.SetDarkMode(ctx, false))
	assert.False(t, m.DarkMode())

	persisted, persistedDark := reload(kv)
	assert.False(t, persistedDark)
	assert.Equal(t, []types.Student{alice}, persisted, "toggling keeps the list")
}

func TestManager_StorageFailureKeepsMemoryChange(t *testing.T) {
	kv := newFaultyKV()
	m := newManager(t, kv, alice)
	kv.failSet[storage.KeyStudents] = true

	_, err := m.Add(context.Background(), bob)
	assert.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, []types.Student{alice, bob}, m.store.Students())

	persisted, _ := reload(kv)
	assert.Equal(t, []types.Student{alice}, persisted, "storage still holds the old list")

	kv.failSet[storage.KeyStudents] = false
	require.NoError(t, m.Delete(context.Background(), 0))
	persisted, _ = reload(kv)
	assert.Equal(t, []types.Student{bob}, persisted, "next save catches storage up")
}
