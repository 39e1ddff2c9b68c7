// Package records is the core of the application: the student list, the
// display preference, and every operation allowed on them.
//
// Three pieces, composed linearly:
//
//   - Store owns the live list and the darkMode flag and mirrors them to a
//     storage.Storage backend (Load once, Save after every change).
//   - The operations (Validate, Upsert, RemoveAt, Search, Paginate) are
//     pure functions over a list.
//   - Manager runs an operation, installs the result in the Store and then
//     saves, so persistence has one explicit call site.
//
// Form layers the create/edit state machine over a Manager.
//
// Records have no ID. A record is addressed by its index in the list, and
// deleting one shifts the index of every record after it.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
)

// Store holds the authoritative list and preference flag.
type Store struct {
	kv  storage.Storage
	log *slog.Logger

	mu       sync.RWMutex
	students []types.Student
	darkMode bool
}

// NewStore returns an empty Store over kv. Call Load to read persisted
// state. A nil log uses slog.Default().
func NewStore(kv storage.Storage, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		kv:       kv,
		log:      log,
		students: []types.Student{},
	}
}

// Load reads both persisted values and makes them the live state.
//
// It never fails. A read error, a missing key, or a value that does not
// parse leaves that value at its default (empty list, false) and is
// logged. A stored list holding any record that fails Validate counts as
// corrupted and is also replaced by the empty list.
func (s *Store) Load(ctx context.Context) ([]types.Student, bool) {
	students := s.loadStudents(ctx)
	darkMode := s.loadDarkMode(ctx)

	s.mu.Lock()
	s.students = students
	s.darkMode = darkMode
	s.mu.Unlock()

	s.log.Info("state loaded",
		slog.Int("students", len(students)),
		slog.Bool("dark_mode", darkMode))

	return slices.Clone(students), darkMode
}

func (s *Store) loadStudents(ctx context.Context) []types.Student {
	raw, found, err := s.kv.Get(ctx, storage.KeyStudents)
	if err != nil {
		s.log.Warn("cannot read students, starting empty", slog.String("error", err.Error()))
		return []types.Student{}
	}
	if !found {
		return []types.Student{}
	}

	var students []types.Student
	if err := json.Unmarshal([]byte(raw), &students); err != nil {
		s.log.Warn("stored students do not parse, starting empty", slog.String("error", err.Error()))
		return []types.Student{}
	}
	for i, st := range students {
		if err := Check(st); err != nil {
			s.log.Warn("stored students hold an invalid record, starting empty",
				slog.Int("index", i),
				slog.String("error", err.Error()))
			return []types.Student{}
		}
	}
	if students == nil {
		// "null" parses without error.
		students = []types.Student{}
	}
	return students
}

func (s *Store) loadDarkMode(ctx context.Context) bool {
	raw, found, err := s.kv.Get(ctx, storage.KeyDarkMode)
	if err != nil {
		s.log.Warn("cannot read dark mode, using light", slog.String("error", err.Error()))
		return false
	}
	if !found {
		return false
	}

	switch raw {
	case "true":
		return true
	case "false":
		return false
	default:
		s.log.Warn("stored dark mode does not parse, using light", slog.String("value", raw))
		return false
	}
}

// Save makes students and darkMode the live state and writes both to the
// backend. The live state is set first and stays set even when a write
// fails; the failure comes back as a *StorageError.
//
// The store keeps its own copy of students. When both writes fail the
// returned error joins both *StorageError values.
func (s *Store) Save(ctx context.Context, students []types.Student, darkMode bool) error {
	s.mu.Lock()
	s.students = slices.Clone(students)
	if s.students == nil {
		s.students = []types.Student{}
	}
	s.darkMode = darkMode
	snapshot := s.students
	s.mu.Unlock()

	// Both writes are attempted even when the first fails.
	return errors.Join(
		s.writeStudents(ctx, snapshot),
		s.writeDarkMode(ctx, darkMode),
	)
}

func (s *Store) writeStudents(ctx context.Context, students []types.Student) error {
	data, err := json.Marshal(students)
	if err != nil {
		return &StorageError{Op: "encode", Key: storage.KeyStudents, Err: err}
	}
	if err := s.kv.Set(ctx, storage.KeyStudents, string(data)); err != nil {
		return &StorageError{Op: "write", Key: storage.KeyStudents, Err: err}
	}
	return nil
}

func (s *Store) writeDarkMode(ctx context.Context, darkMode bool) error {
	if err := s.kv.Set(ctx, storage.KeyDarkMode, strconv.FormatBool(darkMode)); err != nil {
		return &StorageError{Op: "write", Key: storage.KeyDarkMode, Err: err}
	}
	return nil
}

// Students returns a copy of the live list.
func (s *Store) Students() []types.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.students)
}

// DarkMode returns the live preference flag.
func (s *Store) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.darkMode
}

// Len returns the number of live records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.students)
}
