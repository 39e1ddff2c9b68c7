package records

import (
	"context"
	"errors"

	"github.com/aanand-mishra/student-records/internal/types"
)

// FormState is the create/edit form's state.
type FormState int

const (
	// Idle: a submit creates a new record.
	Idle FormState = iota
	// Editing: a submit replaces the record at Form.EditIndex.
	Editing
)

func (s FormState) String() string {
	if s == Editing {
		return "editing"
	}
	return "idle"
}

// Form is the create/edit state machine a display layer drives:
//
//	Idle       --Submit(valid)--> Idle        (append)
//	Idle       --BeginEdit(i)---> Editing(i)
//	Editing(i) --Submit(valid)--> Idle        (replace at i)
//	Editing(i) --Cancel-------->  Idle
//	any        --Submit(invalid)-> unchanged
//
// A Form is not persisted and is not safe for concurrent use.
type Form struct {
	manager *Manager
	editing *int
}

// NewForm returns an Idle form over m.
func NewForm(m *Manager) *Form {
	return &Form{manager: m}
}

// State reports Idle or Editing.
func (f *Form) State() FormState {
	if f.editing == nil {
		return Idle
	}
	return Editing
}

// EditIndex returns the index under edit, if any.
func (f *Form) EditIndex() (int, bool) {
	if f.editing == nil {
		return 0, false
	}
	return *f.editing, true
}

// BeginEdit enters Editing(index) and returns the record to prefill the
// form with. An out-of-range index leaves the state unchanged.
func (f *Form) BeginEdit(index int) (types.Student, error) {
	s, err := f.manager.Get(index)
	if err != nil {
		return types.Student{}, err
	}
	f.editing = &index
	return s, nil
}

// Cancel returns to Idle without touching any record.
func (f *Form) Cancel() {
	f.editing = nil
}

// Submit appends (Idle) or replaces (Editing) with candidate.
//
// A ValidationError or IndexError leaves the state as it was so the user
// can correct the input. Any other outcome, including a StorageError,
// means the change is in memory and the form returns to Idle.
func (f *Form) Submit(ctx context.Context, candidate types.Student) error {
	var err error
	if f.editing == nil {
		_, err = f.manager.Add(ctx, candidate)
	} else {
		err = f.manager.Update(ctx, *f.editing, candidate)
	}

	if errors.Is(err, ErrValidation) || errors.Is(err, ErrIndex) {
		return err
	}
	f.editing = nil
	return err
}
