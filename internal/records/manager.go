package records

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aanand-mishra/student-records/internal/types"
)

// Page is one window of a search result.
type Page struct {
	Items        []types.Student `json:"items"`
	Page         int             `json:"page"`
	PageSize     int             `json:"pageSize"`
	TotalPages   int             `json:"totalPages"`
	TotalMatches int             `json:"totalMatches"`
}

// Manager applies operations to a Store and persists after each one.
//
// Every mutation follows the same steps: compute the new list from the
// live one, stop on a ValidationError or IndexError with nothing changed,
// otherwise Save. A Save failure is returned as-is; the change has already
// taken effect in memory.
type Manager struct {
	store *Store
	log   *slog.Logger

	// mu makes each read-compute-save sequence atomic with respect to the
	// others.
	mu sync.Mutex
}

// NewManager returns a Manager over store. A nil log uses slog.Default().
func NewManager(store *Store, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{store: store, log: log}
}

// Add appends candidate and returns its index.
func (m *Manager) Add(ctx context.Context, candidate types.Student) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := Upsert(m.store.Students(), candidate, nil)
	if err != nil {
		return 0, err
	}
	index := len(next) - 1

	m.log.Debug("student added", slog.Int("index", index))
	return index, m.persist(ctx, next, m.store.DarkMode())
}

// Update replaces the record at index with candidate.
func (m *Manager) Update(ctx context.Context, index int, candidate types.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := Upsert(m.store.Students(), candidate, &index)
	if err != nil {
		return err
	}

	m.log.Debug("student updated", slog.Int("index", index))
	return m.persist(ctx, next, m.store.DarkMode())
}

// Delete removes the record at index. Callers are expected to have asked
// the user for confirmation; Delete itself is unconditional.
func (m *Manager) Delete(ctx context.Context, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := RemoveAt(m.store.Students(), index)
	if err != nil {
		return err
	}

	m.log.Debug("student deleted", slog.Int("index", index))
	return m.persist(ctx, next, m.store.DarkMode())
}

// Get returns the record at index.
func (m *Manager) Get(index int) (types.Student, error) {
	students := m.store.Students()
	if index < 0 || index >= len(students) {
		return types.Student{}, &IndexError{Index: index, Len: len(students)}
	}
	return students[index], nil
}

// Students returns a copy of the live list.
func (m *Manager) Students() []types.Student {
	return m.store.Students()
}

// Len returns the number of records.
func (m *Manager) Len() int {
	return m.store.Len()
}

// List filters the live list by query and returns the requested window.
// The page number is echoed back unclamped.
func (m *Manager) List(query string, page, size int) Page {
	matches := Search(m.store.Students(), query)
	items, total := Paginate(matches, page, size)
	return Page{
		Items:        items,
		Page:         page,
		PageSize:     size,
		TotalPages:   total,
		TotalMatches: len(matches),
	}
}

// DarkMode returns the current display preference.
func (m *Manager) DarkMode() bool {
	return m.store.DarkMode()
}

// SetDarkMode stores the display preference.
func (m *Manager) SetDarkMode(ctx context.Context, dark bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.persist(ctx, m.store.Students(), dark)
}

// ToggleDarkMode flips the display preference and returns the new value.
func (m *Manager) ToggleDarkMode(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dark := !m.store.DarkMode()
	return dark, m.persist(ctx, m.store.Students(), dark)
}

func (m *Manager) persist(ctx context.Context, students []types.Student, dark bool) error {
	if err := m.store.Save(ctx, students, dark); err != nil {
		m.log.Error("failed to persist state, memory and storage now differ",
			slog.String("error", err.Error()))
		return err
	}
	return nil
}
