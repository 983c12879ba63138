// Package api exposes the CRUD surface over the event store. Handlers
// receive their dependencies explicitly; there is no ambient global
// state beyond the process-wide logger.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/runnerr0/inkwell/internal/sanitize"
	"github.com/runnerr0/inkwell/internal/storage"
)

// datePattern is the strict timestamp format enforced on update:
// YYYY-MM-DDTHH:MM:SS.sssZ.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`)

// Handler bundles the HTTP handlers with their dependencies.
type Handler struct {
	store    storage.Store
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewHandler creates a Handler backed by the given store.
func NewHandler(store storage.Store, logger zerolog.Logger) *Handler {
	return &Handler{
		store:    store,
		validate: validator.New(),
		logger:   logger,
	}
}

// eventPayload is the explicit request schema for create and update.
// Unknown JSON fields are ignored deterministically.
type eventPayload struct {
	Date    string   `json:"date" validate:"required"`
	Type    string   `json:"type" validate:"required"`
	RouteTo string   `json:"route_to"`
	Body    string   `json:"body" validate:"required"`
	Tags    []string `json:"tags"`
	Summary string   `json:"summary"`
	Title   string   `json:"title"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// internalError logs the underlying cause server-side and answers a
// generic message, never the detail.
func (h *Handler) internalError(w http.ResponseWriter, err error, msg string) {
	h.logger.Error().Err(err).Msg(msg)
	writeError(w, http.StatusInternalServerError, msg)
}

// eventID parses the numeric id path parameter.
func eventID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// Echo returns the POST request body as-is.
func (h *Handler) Echo(w http.ResponseWriter, r *http.Request) {
	var body any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	h.logger.Info().Interface("body", body).Msg("received POST data")
	writeJSON(w, http.StatusOK, body)
}

// CreateEvent persists a new event. Text fields are stored as received;
// sanitization happens on the read and update paths.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var payload eventPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.validate.Struct(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "date, type, and body are required fields")
		return
	}

	event := &storage.Event{
		Date:    payload.Date,
		Type:    payload.Type,
		RouteTo: payload.RouteTo,
		Body:    payload.Body,
		Tags:    payload.Tags,
		Summary: payload.Summary,
		Title:   payload.Title,
	}

	id, err := h.store.CreateEvent(r.Context(), event)
	if err != nil {
		h.internalError(w, err, "Failed to create event")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      id,
		"message": "Event created successfully",
	})
}

// sanitizeEvent strips tag-like substrings from the free-text fields of
// an event about to be returned to a client.
func sanitizeEvent(e *storage.Event) {
	e.Body = sanitize.Strip(e.Body)
	e.Summary = sanitize.Strip(e.Summary)
	e.Title = sanitize.Strip(e.Title)
}

// ListEvents returns every event, date-descending, sanitized.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.ListEvents(r.Context())
	if err != nil {
		h.internalError(w, err, "Failed to fetch events")
		return
	}

	for i := range events {
		sanitizeEvent(&events[i])
	}

	writeJSON(w, http.StatusOK, events)
}

// GetEvent returns a single sanitized event by id.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := eventID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID format")
		return
	}

	event, err := h.store.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		h.internalError(w, err, "Failed to fetch event")
		return
	}

	sanitizeEvent(event)
	writeJSON(w, http.StatusOK, event)
}

// UpdateEvent overwrites all mutable fields of an event. Unlike create,
// the update path sanitizes text fields and restricts the type and
// routing hint to their allowed character set.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := eventID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID format")
		return
	}

	var payload eventPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.validate.Struct(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "date, type, and body are required fields")
		return
	}

	if !datePattern.MatchString(payload.Date) {
		writeError(w, http.StatusBadRequest, "Invalid date format")
		return
	}

	event := &storage.Event{
		Date:    payload.Date,
		Type:    sanitize.Ident(payload.Type),
		RouteTo: sanitize.Ident(payload.RouteTo),
		Body:    sanitize.Strip(payload.Body),
		Tags:    payload.Tags,
		Summary: sanitize.Strip(payload.Summary),
		Title:   sanitize.Strip(payload.Title),
	}

	if err := h.store.UpdateEvent(r.Context(), id, event); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		h.internalError(w, err, "Failed to update event")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Event updated successfully"})
}

// DeleteEvent removes an event by id.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := eventID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID format")
		return
	}

	if err := h.store.DeleteEvent(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		h.internalError(w, err, "Failed to delete event")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}
