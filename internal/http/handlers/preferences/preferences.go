// Package preferences contains the HTTP handlers for the display
// preference (light or dark mode). It is stored apart from the student
// list and saved on every change.
package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/utils/response"
)

// Preferences is the part of *records.Manager the handlers use.
type Preferences interface {
	DarkMode() bool
	SetDarkMode(ctx context.Context, dark bool) error
	ToggleDarkMode(ctx context.Context) (bool, error)
}

// Get handles GET /api/preferences
//
//	{ "darkMode": false }
func Get(prefs Preferences) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, types.Preferences{DarkMode: prefs.DarkMode()})
	}
}

// Set handles PUT /api/preferences with a body of { "darkMode": true }.
func Set(prefs Preferences) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			DarkMode *bool `json:"darkMode"`
		}
		err := json.NewDecoder(r.Body).Decode(&body)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		if body.DarkMode == nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("field darkMode is required")))
			return
		}

		if err := prefs.SetDarkMode(r.Context(), *body.DarkMode); err != nil {
			slog.Error("error saving preferences", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("preferences updated", slog.Bool("dark_mode", *body.DarkMode))
		response.WriteJSON(w, http.StatusOK, types.Preferences{DarkMode: *body.DarkMode})
	}
}

// Toggle handles POST /api/preferences/toggle and returns the new value.
func Toggle(prefs Preferences) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dark, err := prefs.ToggleDarkMode(r.Context())
		if err != nil {
			slog.Error("error saving preferences", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("preferences toggled", slog.Bool("dark_mode", dark))
		response.WriteJSON(w, http.StatusOK, types.Preferences{DarkMode: dark})
	}
}
