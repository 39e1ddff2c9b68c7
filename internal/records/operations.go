package records

import (
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"

	"github.com/aanand-mishra/student-records/internal/types"
)

// validate is shared: a *validator.Validate caches struct metadata and is
// safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names ("name", "marks") so messages match
	// what the caller sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate reports whether candidate may be stored: name and dept
// non-empty, age > 0, 0 <= marks <= 100.
func Validate(candidate types.Student) bool {
	return Check(candidate) == nil
}

// Check is Validate with the reason attached. It returns a
// *ValidationError naming every failing field, or nil.
func Check(candidate types.Student) error {
	err := validate.Struct(candidate)
	if err == nil {
		return nil
	}
	// Struct only returns something other than ValidationErrors for
	// non-struct input, which a types.Student never is.
	return &ValidationError{Errs: err.(validator.ValidationErrors)}
}

// Upsert returns a new list with candidate applied.
//
// With editIndex nil the candidate is appended. Otherwise it replaces the
// element at *editIndex and every other element keeps its position. The
// input list is never modified.
//
// An invalid candidate is refused with *ValidationError and an edit index
// outside [0, len(list)) with *IndexError.
func Upsert(list []types.Student, candidate types.Student, editIndex *int) ([]types.Student, error) {
	if err := Check(candidate); err != nil {
		return nil, err
	}

	if editIndex == nil {
		out := make([]types.Student, len(list), len(list)+1)
		copy(out, list)
		return append(out, candidate), nil
	}

	i := *editIndex
	if i < 0 || i >= len(list) {
		return nil, &IndexError{Index: i, Len: len(list)}
	}
	out := slices.Clone(list)
	out[i] = candidate
	return out, nil
}

// RemoveAt returns a new list without the element at index. Every later
// element moves down one position, so its index changes.
func RemoveAt(list []types.Student, index int) ([]types.Student, error) {
	if index < 0 || index >= len(list) {
		return nil, &IndexError{Index: index, Len: len(list)}
	}
	out := make([]types.Student, 0, len(list)-1)
	out = append(out, list[:index]...)
	return append(out, list[index+1:]...), nil
}

// Search returns the records whose name or dept contains query, compared
// with Unicode case folding. An empty query matches everything. Matches
// keep their original relative order.
func Search(list []types.Student, query string) []types.Student {
	if query == "" {
		return slices.Clone(list)
	}

	out := make([]types.Student, 0)
	for _, s := range list {
		if Matches(s, query) {
			out = append(out, s)
		}
	}
	return out
}

// Matches reports whether s is one of the records Search keeps for query.
func Matches(s types.Student, query string) bool {
	if query == "" {
		return true
	}
	fold := cases.Fold()
	q := fold.String(query)
	return strings.Contains(fold.String(s.Name), q) || strings.Contains(fold.String(s.Dept), q)
}

// Paginate returns page (1-based) of size records and the total page
// count, ceil(len(list)/size).
//
// An empty list has zero pages. A page before the first or past the last,
// or a non-positive size, yields an empty window rather than an error.
func Paginate(list []types.Student, page, size int) ([]types.Student, int) {
	if size <= 0 {
		return []types.Student{}, 0
	}
	totalPages := len(list) / size
	if len(list)%size != 0 {
		totalPages++
	}

	if page < 1 || page > totalPages {
		return []types.Student{}, totalPages
	}

	start := (page - 1) * size
	end := start + min(size, len(list)-start)
	return slices.Clone(list[start:end]), totalPages
}
