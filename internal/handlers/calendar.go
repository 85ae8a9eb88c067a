// Copyright (c) 2026 DXA Info <dev@dxag.info>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/middleware"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/models"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/store"
)

// CalendarHandler serves the scheduling endpoints: placing ideas on the
// calendar, taking them off, batch updates, and date-window queries.
type CalendarHandler struct {
	ideas *store.IdeaStore
}

// NewCalendarHandler creates a CalendarHandler.
func NewCalendarHandler(ideas *store.IdeaStore) *CalendarHandler {
	return &CalendarHandler{ideas: ideas}
}

// calendarEvent is the calendar projection of a scheduled idea.
type calendarEvent struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Start       time.Time          `json:"start"`
	Description string             `json:"description"`
	ContentType models.ContentType `json:"contentType"`
	Status      models.IdeaStatus  `json:"status"`
}

func toEvents(ideas []models.Idea) []calendarEvent {
	events := make([]calendarEvent, 0, len(ideas))
	for _, i := range ideas {
		if i.ScheduledDate == nil {
			continue
		}
		events = append(events, calendarEvent{
			ID:          i.ID,
			Title:       i.Title,
			Start:       *i.ScheduledDate,
			Description: i.Description,
			ContentType: i.ContentType,
			Status:      i.Status,
		})
	}
	return events
}

type scheduleRequest struct {
	ScheduledDate time.Time `json:"scheduledDate"`
}

// Schedule places an owned idea on the calendar. Rescheduling an already
// scheduled idea moves its date; the operation is idempotent.
func (h *CalendarHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	idea := resolveOwnedIdea(w, r, h.ideas)
	if idea == nil {
		return
	}

	var req scheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ScheduledDate.IsZero() {
		writeError(w, http.StatusBadRequest, "scheduledDate is required")
		return
	}

	updated, err := h.ideas.SetSchedule(idea.ID, req.ScheduledDate)
	if err != nil {
		slog.Error("schedule idea", "error", err, "id", idea.ID)
		writeError(w, http.StatusInternalServerError, "could not schedule idea")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Unschedule takes an owned idea off the calendar. Unscheduling an idea
// that is not scheduled succeeds as a no-op.
func (h *CalendarHandler) Unschedule(w http.ResponseWriter, r *http.Request) {
	idea := resolveOwnedIdea(w, r, h.ideas)
	if idea == nil {
		return
	}

	updated, err := h.ideas.ClearSchedule(idea.ID)
	if err != nil {
		slog.Error("unschedule idea", "error", err, "id", idea.ID)
		writeError(w, http.StatusInternalServerError, "could not unschedule idea")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Batch entries are decoded individually so one malformed entry (bad
// UUID, unparseable date) becomes a per-item error instead of failing
// the whole request.
type batchScheduleRequest struct {
	Updates []json.RawMessage `json:"updates"`
}

type batchScheduleItem struct {
	ID            uuid.UUID  `json:"id"`
	ScheduledDate *time.Time `json:"scheduledDate"` // nil clears the schedule
}

type batchItemError struct {
	ID    uuid.UUID `json:"id"`
	Error string    `json:"error"`
}

// Batch applies a set of schedule updates in one request. Items fail
// independently; the response always reports per-item outcomes with a
// 200 status even when every item failed.
func (h *CalendarHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req batchScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Updates) == 0 {
		writeError(w, http.StatusBadRequest, "updates array is required")
		return
	}

	data := middleware.SessionFromCtx(r.Context())

	var updated []models.Idea
	var failures []batchItemError

	for _, raw := range req.Updates {
		var item batchScheduleItem
		if err := json.Unmarshal(raw, &item); err != nil || item.ID == uuid.Nil {
			failures = append(failures, batchItemError{ID: item.ID, Error: "invalid entry"})
			continue
		}

		idea, err := h.ideas.FindByID(item.ID)
		if err != nil {
			slog.Error("batch find idea", "error", err, "id", item.ID)
			failures = append(failures, batchItemError{ID: item.ID, Error: "lookup failed"})
			continue
		}
		if idea == nil {
			failures = append(failures, batchItemError{ID: item.ID, Error: "idea not found"})
			continue
		}
		if !idea.OwnedBy(data.UserID) {
			failures = append(failures, batchItemError{ID: item.ID, Error: "not authorized"})
			continue
		}

		var result *models.Idea
		if item.ScheduledDate != nil {
			result, err = h.ideas.SetSchedule(item.ID, *item.ScheduledDate)
		} else {
			result, err = h.ideas.ClearSchedule(item.ID)
		}
		if err != nil {
			slog.Error("batch schedule", "error", err, "id", item.ID)
			failures = append(failures, batchItemError{ID: item.ID, Error: "update failed"})
			continue
		}

		updated = append(updated, *result)
	}

	if updated == nil {
		updated = []models.Idea{}
	}
	if failures == nil {
		failures = []batchItemError{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"updated": len(updated),
		"errors":  len(failures),
		"data": map[string]any{
			"updated": updated,
			"errors":  failures,
		},
	})
}

// Events returns the user's scheduled ideas as calendar events, optionally
// bounded by startDate/endDate query parameters (RFC 3339).
func (h *CalendarHandler) Events(w http.ResponseWriter, r *http.Request) {
	data := middleware.SessionFromCtx(r.Context())
	q := r.URL.Query()

	var from, to *time.Time
	if v := q.Get("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid startDate")
			return
		}
		from = &t
	}
	if v := q.Get("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid endDate")
			return
		}
		to = &t
	}

	ideas, err := h.ideas.ListScheduled(data.UserID, from, to)
	if err != nil {
		slog.Error("list calendar events", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load calendar")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": toEvents(ideas)})
}

// Today returns the events scheduled within the server's local calendar day.
func (h *CalendarHandler) Today(w http.ResponseWriter, r *http.Request) {
	data := middleware.SessionFromCtx(r.Context())

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Millisecond)

	ideas, err := h.ideas.ListScheduled(data.UserID, &start, &end)
	if err != nil {
		slog.Error("list today's ideas", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load today's schedule")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": toEvents(ideas)})
}

// parseDate accepts RFC 3339 timestamps and bare YYYY-MM-DD dates.
func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", v)
}
