// Copyright (c) 2026 DXA Info <dev@dxag.info>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/ai"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/generator"
)

// GenerateHandler serves the AI idea generation endpoint.
type GenerateHandler struct {
	gen *generator.Generator
}

// NewGenerateHandler creates a GenerateHandler.
func NewGenerateHandler(gen *generator.Generator) *GenerateHandler {
	return &GenerateHandler{gen: gen}
}

// Generate produces idea candidates from the AI provider. Candidates are
// returned unpersisted; the client saves the ones worth keeping through
// the idea create endpoint.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generator.Request
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ideas, err := h.gen.Generate(r.Context(), req)
	if err != nil {
		var verr *generator.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		if errors.Is(err, ai.ErrUnavailable) {
			slog.Error("generation provider unavailable", "error", err)
			writeError(w, http.StatusBadGateway, "idea generation is temporarily unavailable")
			return
		}
		slog.Error("generate ideas", "error", err)
		writeError(w, http.StatusInternalServerError, "could not generate ideas")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": ideas})
}
