// Copyright (c) 2026 DXA Info <dev@dxag.info>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/middleware"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/models"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/store"
)

// IdeaHandler serves the idea CRUD endpoints.
type IdeaHandler struct {
	ideas *store.IdeaStore
}

// NewIdeaHandler creates an IdeaHandler.
func NewIdeaHandler(ideas *store.IdeaStore) *IdeaHandler {
	return &IdeaHandler{ideas: ideas}
}

// ideaRequest is the mutable surface of an idea accepted on create/update.
type ideaRequest struct {
	Title               string             `json:"title"`
	Description         string             `json:"description"`
	ContentType         models.ContentType `json:"contentType"`
	Keywords            []string           `json:"keywords"`
	TargetAudience      string             `json:"targetAudience"`
	EstimatedEngagement string             `json:"estimatedEngagement"`
	Status              models.IdeaStatus  `json:"status"`
	IsSaved             *bool              `json:"isSaved"`
	Notes               string             `json:"notes"`
}

func (req *ideaRequest) validate() string {
	if strings.TrimSpace(req.Title) == "" {
		return "title is required"
	}
	if strings.TrimSpace(req.Description) == "" {
		return "description is required"
	}
	if req.ContentType != "" && !req.ContentType.Valid() {
		return "contentType must be one of blog, video, social"
	}
	if req.Status != "" && !req.Status.Valid() {
		return "status must be one of draft, in-progress, published, archived"
	}
	return ""
}

// resolveOwnedIdea loads the idea from the URL parameter and checks
// ownership. Existence is checked before ownership: an unknown ID is
// always 404, a foreign ID is 403. Returns nil after writing the error
// response.
func resolveOwnedIdea(w http.ResponseWriter, r *http.Request, ideas *store.IdeaStore) *models.Idea {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "idea not found")
		return nil
	}

	idea, err := ideas.FindByID(id)
	if err != nil {
		slog.Error("find idea", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return nil
	}
	if idea == nil {
		writeError(w, http.StatusNotFound, "idea not found")
		return nil
	}

	data := middleware.SessionFromCtx(r.Context())
	if !idea.OwnedBy(data.UserID) {
		writeError(w, http.StatusForbidden, "you do not have access to this idea")
		return nil
	}

	return idea
}

// Create persists a new idea for the authenticated user.
func (h *IdeaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ideaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	data := middleware.SessionFromCtx(r.Context())

	idea := &models.Idea{
		UserID:              data.UserID,
		Title:               strings.TrimSpace(req.Title),
		Description:         req.Description,
		ContentType:         req.ContentType,
		Keywords:            models.NormalizeKeywords(req.Keywords),
		TargetAudience:      req.TargetAudience,
		EstimatedEngagement: models.NormalizeEngagement(req.EstimatedEngagement),
		Status:              req.Status,
		Notes:               req.Notes,
	}
	if idea.ContentType == "" {
		idea.ContentType = models.ContentTypeBlog
	}
	if idea.TargetAudience == "" {
		idea.TargetAudience = "General audience"
	}
	if idea.Status == "" {
		idea.Status = models.IdeaStatusDraft
	}
	if req.IsSaved != nil {
		idea.IsSaved = *req.IsSaved
	}

	created, err := h.ideas.Create(idea)
	if err != nil {
		slog.Error("create idea", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create idea")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// List returns a filtered, paginated page of the user's ideas.
func (h *IdeaHandler) List(w http.ResponseWriter, r *http.Request) {
	data := middleware.SessionFromCtx(r.Context())
	q := r.URL.Query()

	f := store.IdeaFilter{
		Search: q.Get("search"),
	}
	if ct := models.ContentType(q.Get("contentType")); ct.Valid() {
		f.ContentType = ct
	}
	if st := models.IdeaStatus(q.Get("status")); st.Valid() {
		f.Status = st
	}
	if v := q.Get("isSaved"); v != "" {
		b := v == "true"
		f.IsSaved = &b
	}
	if v := q.Get("isScheduled"); v != "" {
		b := v == "true"
		f.IsScheduled = &b
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil {
		f.Page = n
	}
	if n, err := strconv.Atoi(q.Get("perPage")); err == nil {
		f.PerPage = n
	}

	items, total, err := h.ideas.List(data.UserID, f)
	if err != nil {
		slog.Error("list ideas", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list ideas")
		return
	}
	if items == nil {
		items = []models.Idea{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  items,
		"total": total,
	})
}

// Get returns a single owned idea.
func (h *IdeaHandler) Get(w http.ResponseWriter, r *http.Request) {
	idea := resolveOwnedIdea(w, r, h.ideas)
	if idea == nil {
		return
	}
	writeJSON(w, http.StatusOK, idea)
}

// Update rewrites the mutable fields of an owned idea. Scheduling fields
// are managed by the calendar endpoints and preserved here.
func (h *IdeaHandler) Update(w http.ResponseWriter, r *http.Request) {
	idea := resolveOwnedIdea(w, r, h.ideas)
	if idea == nil {
		return
	}

	var req ideaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	idea.Title = strings.TrimSpace(req.Title)
	idea.Description = req.Description
	if req.ContentType != "" {
		idea.ContentType = req.ContentType
	}
	idea.Keywords = models.NormalizeKeywords(req.Keywords)
	if req.TargetAudience != "" {
		idea.TargetAudience = req.TargetAudience
	}
	if req.EstimatedEngagement != "" {
		idea.EstimatedEngagement = models.NormalizeEngagement(req.EstimatedEngagement)
	}
	if req.Status != "" {
		idea.Status = req.Status
	}
	if req.IsSaved != nil {
		idea.IsSaved = *req.IsSaved
	}
	idea.Notes = req.Notes

	updated, err := h.ideas.Update(idea)
	if err != nil {
		slog.Error("update idea", "error", err, "id", idea.ID)
		writeError(w, http.StatusInternalServerError, "could not update idea")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete removes an owned idea.
func (h *IdeaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	idea := resolveOwnedIdea(w, r, h.ideas)
	if idea == nil {
		return
	}

	if err := h.ideas.Delete(idea.ID); err != nil {
		slog.Error("delete idea", "error", err, "id", idea.ID)
		writeError(w, http.StatusInternalServerError, "could not delete idea")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
