package records

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Sentinels for errors.Is. Each typed error below matches exactly one.
var (
	ErrValidation = errors.New("invalid student")
	ErrIndex      = errors.New("index out of range")
	ErrStorage    = errors.New("storage failure")
)

// ValidationError reports a candidate that failed Validate. Nothing was
// changed when it is returned.
type ValidationError struct {
	// Errs holds one entry per failing field, named by its JSON key.
	Errs validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errs))
	for _, fe := range e.Errs {
		fields = append(fields, fe.Field())
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(fields, ", "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Messages returns one plain sentence per failing field, in field order.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Errs))
	for _, fe := range e.Errs {
		switch fe.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", fe.Field()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("field %s must be greater than %s", fe.Field(), fe.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s", fe.Field(), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", fe.Field()))
		}
	}
	return msgs
}

// IndexError reports an index outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: %d not in [0, %d)", ErrIndex, e.Index, e.Len)
}

func (e *IndexError) Is(target error) bool { return target == ErrIndex }

// StorageError reports a backing store write failure. The in-memory state
// it was persisting has already been applied and is not rolled back.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s %q: %v", ErrStorage, e.Op, e.Key, e.Err)
}

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func (e *StorageError) Unwrap() error { return e.Err }
