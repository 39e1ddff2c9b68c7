// Package types holds all shared data structures (models) used across
// the application. records, storage, handlers and utils all import types
// without depending on each other.
package types

// Student represents one student record in the list.
//
// A Student carries no ID field: its position in the ordered list is the
// only way to address it. Two students with identical fields are
// indistinguishable.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — controls how the field appears when encoded to JSON.
//     These names are also the persisted layout of the "students" key,
//     so renaming one breaks every stored list.
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package. "required" means the string must be non-empty; gt/min/max
//     bound the integers. Marks of 0 is a legal score, so it is not
//     "required" (that would reject the zero value).
type Student struct {
	Name  string `json:"name"  validate:"required"`
	Dept  string `json:"dept"  validate:"required"`
	Age   int    `json:"age"   validate:"gt=0"`
	Marks int    `json:"marks" validate:"min=0,max=100"`
}

// Preferences holds display settings that live independently of the
// student list. It is persisted under its own key.
type Preferences struct {
	DarkMode bool `json:"darkMode"`
}
