// Package student contains the HTTP handlers for the student list.
//
// Each handler is built by a factory that captures its dependencies and
// returns the func(http.ResponseWriter, *http.Request) the router needs:
//
//	router.HandleFunc("POST /api/students", student.New(manager))
//
// Records have no ID: the {index} path segment is the record's current
// position in the list, so deleting index 0 moves every other record
// down by one.
package student

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/student-records/internal/records"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/utils/response"
)

// Records is the part of *records.Manager the handlers use.
type Records interface {
	Add(ctx context.Context, candidate types.Student) (int, error)
	Update(ctx context.Context, index int, candidate types.Student) error
	Delete(ctx context.Context, index int) error
	Get(index int) (types.Student, error)
	List(query string, page, size int) records.Page
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
// Validates and appends a student.
//
// Request body (JSON):
//
//	{ "name": "Alice", "dept": "CS", "age": 20, "marks": 88 }
//
// Success response (201 Created), the new record's position:
//
//	{ "index": 3 }
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or failed validation
//	500 Internal     — the record was added but could not be saved
//
// ─────────────────────────────────────────────────────────────────────────────
func New(recs Records) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		index, err := recs.Add(r.Context(), student)
		if err != nil {
			slog.Error("error creating student", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("student created", slog.Int("index", index))
		response.WriteJSON(w, http.StatusCreated, map[string]int{"index": index})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByIndex handles GET /api/students/{index}
//
// Error responses:
//
//	400 Bad Request  — index is not an integer
//	404 Not Found    — no record at that position
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByIndex(recs Records) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := pathIndex(w, r)
		if !ok {
			return
		}
		slog.Info("getting a student", slog.Int("index", index))

		student, err := recs.Get(index)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students?q=ali&page=2&size=5
// Filters by q (case-insensitive, name or dept) and returns one page.
//
// page defaults to 1 and size to the configured page size; either below 1
// is a 400. A page past the end returns empty items rather than an error.
//
// Success response (200 OK):
//
//	{ "items": [...], "page": 2, "pageSize": 5, "totalPages": 3, "totalMatches": 12 }
//
// ─────────────────────────────────────────────────────────────────────────────
func GetList(recs Records, defaultSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		slog.Info("listing students", slog.String("query", q.Get("q")))

		page, err := queryInt(q.Get("page"), 1)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(fmt.Errorf("invalid page: %w", err)))
			return
		}
		size, err := queryInt(q.Get("size"), defaultSize)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(fmt.Errorf("invalid size: %w", err)))
			return
		}
		if page < 1 || size < 1 {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("page and size must be at least 1")))
			return
		}

		response.WriteJSON(w, http.StatusOK, recs.List(q.Get("q"), page, size))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{index}
// Replaces the record at index; every other record keeps its position.
//
// Error responses:
//
//	400 Bad Request  — invalid index, empty body, or validation failure
//	404 Not Found    — no record at that position
//	500 Internal     — the record was replaced but could not be saved
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(recs Records) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := pathIndex(w, r)
		if !ok {
			return
		}
		slog.Info("updating a student", slog.Int("index", index))

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		if err := recs.Update(r.Context(), index, student); err != nil {
			slog.Error("error updating student",
				slog.Int("index", index),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("student updated", slog.Int("index", index))
		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/students/{index}?confirm=true
//
// The confirm parameter is the user's explicit confirmation. Without it
// nothing is removed and the server answers 428 Precondition Required.
//
// Success response (200 OK):
//
//	{ "status": "deleted" }
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(recs Records) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := pathIndex(w, r)
		if !ok {
			return
		}
		slog.Info("deleting a student", slog.Int("index", index))

		if confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm")); !confirmed {
			response.WriteJSON(w, http.StatusPreconditionRequired,
				response.GeneralError(errors.New("deletion must be confirmed with confirm=true")))
			return
		}

		if err := recs.Delete(r.Context(), index); err != nil {
			slog.Error("error deleting student",
				slog.Int("index", index),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("student deleted", slog.Int("index", index))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// decodeStudent reads the JSON body. On failure it has already written
// the 400 response.
func decodeStudent(w http.ResponseWriter, r *http.Request) (types.Student, bool) {
	var student types.Student
	err := json.NewDecoder(r.Body).Decode(&student)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return types.Student{}, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return types.Student{}, false
	}
	return student, true
}

// pathIndex parses {index}. On failure it has already written the 400
// response.
func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("invalid index: must be an integer")))
		return 0, false
	}
	return index, true
}

func queryInt(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
