// Copyright (c) 2026 DXA Info <dev@dxag.info>
// All rights reserved. See LICENSE for details.

// Package generator orchestrates idea generation: it validates the request,
// builds the LLM prompt, consults the response cache, makes exactly one
// provider call, and tags parsed candidates with the request parameters.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/ai"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/models"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/parser"
)

const (
	defaultCount    = 3
	defaultAudience = "general audience"
	defaultTone     = "professional"

	maxTokens   = 1500
	temperature = 0.7

	systemPrompt = "You are a creative content strategist who generates innovative content ideas."
)

// ValidationError reports a missing or malformed generation parameter.
// It is returned before any external call is made.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

// Request holds the parameters for one generation call.
type Request struct {
	ContentType models.ContentType `json:"contentType"`
	Industry    string             `json:"industry"`
	Audience    string             `json:"audience"`
	Tone        string             `json:"tone"`
	Count       int                `json:"count"`
	Topic       string             `json:"topic"`    // optional hint
	Keywords    []string           `json:"keywords"` // optional hints
}

// normalized fills defaults for optional fields. Required fields are
// checked separately by validate.
func (r Request) normalized() Request {
	if r.Audience == "" {
		r.Audience = defaultAudience
	}
	if r.Tone == "" {
		r.Tone = defaultTone
	}
	if r.Count <= 0 {
		r.Count = defaultCount
	}
	return r
}

func (r Request) validate() error {
	if r.ContentType == "" {
		return &ValidationError{Field: "contentType", Msg: "content type is required"}
	}
	if !r.ContentType.Valid() {
		return &ValidationError{Field: "contentType", Msg: "must be one of blog, video, social"}
	}
	if strings.TrimSpace(r.Industry) == "" {
		return &ValidationError{Field: "industry", Msg: "industry is required"}
	}
	return nil
}

// Idea is a generation candidate tagged with the request parameters.
// It is returned to the caller unpersisted; saving is an explicit create.
type Idea struct {
	parser.Candidate
	ContentType models.ContentType `json:"contentType"`
	Tone        string             `json:"tone"`
	Industry    string             `json:"industry"`
}

// Cache is the injected response cache. Implementations store already
// parsed, tagged results under a deterministic request key. A nil Cache
// disables caching.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// Generator drives the generation pipeline against a single text provider.
type Generator struct {
	provider ai.Provider
	cache    Cache
}

// New creates a Generator. cache may be nil.
func New(provider ai.Provider, cache Cache) *Generator {
	return &Generator{provider: provider, cache: cache}
}

// Generate produces tagged idea candidates for the request. The provider is
// invoked at most once; identical recent requests are served from the cache
// with byte-identical results. Provider transport failures surface as
// ai.ErrUnavailable; malformed completions never fail — the parser degrades
// to placeholders instead.
func (g *Generator) Generate(ctx context.Context, req Request) ([]Idea, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	req = req.normalized()

	key := CacheKey(req)
	if g.cache != nil {
		if payload, ok := g.cache.Get(ctx, key); ok {
			var ideas []Idea
			if err := json.Unmarshal(payload, &ideas); err == nil {
				slog.Debug("generation cache hit", "key", key)
				return ideas, nil
			}
			slog.Warn("generation cache entry corrupt, regenerating", "key", key)
		}
	}

	raw, err := g.provider.Generate(ctx, ai.Request{
		System:      systemPrompt,
		Prompt:      BuildPrompt(req),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		if errors.Is(err, ai.ErrUnavailable) {
			return nil, err
		}
		// Treat any provider error as unavailability; the parser handles
		// everything a reachable provider can answer with.
		return nil, fmt.Errorf("%v: %w", err, ai.ErrUnavailable)
	}

	candidates := parser.Parse(raw, req.Count)

	ideas := make([]Idea, 0, len(candidates))
	for _, c := range candidates {
		ideas = append(ideas, Idea{
			Candidate:   c,
			ContentType: req.ContentType,
			Tone:        req.Tone,
			Industry:    req.Industry,
		})
	}

	if g.cache != nil {
		if payload, err := json.Marshal(ideas); err == nil {
			g.cache.Set(ctx, key, payload)
		}
	}

	return ideas, nil
}

// CacheKey derives the deterministic cache key for a normalized request.
// Optional topic/keyword hints are excluded on purpose: they vary freely
// and would fragment the cache.
func CacheKey(req Request) string {
	return fmt.Sprintf("%s|%s|%s|%s|%d",
		req.ContentType, strings.ToLower(req.Industry),
		strings.ToLower(req.Audience), strings.ToLower(req.Tone), req.Count)
}

// BuildPrompt renders the user prompt for a normalized request. The output
// is deterministic: the same request always produces the same prompt.
func BuildPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d creative %s content ideas for a %s business targeting %s with a %s tone.",
		req.Count, req.ContentType, req.Industry, req.Audience, req.Tone)

	if t := strings.TrimSpace(req.Topic); t != "" {
		fmt.Fprintf(&b, "\nFocus the ideas around this topic: %s.", t)
	}
	if kws := models.NormalizeKeywords(req.Keywords); len(kws) > 0 {
		fmt.Fprintf(&b, "\nWhere natural, work in these keywords: %s.", strings.Join(kws, ", "))
	}

	b.WriteString(`

For each idea, provide:
1. An engaging title
2. A brief description (2-3 sentences)
3. 3-5 relevant keywords
4. Target audience specifics
5. Estimated engagement potential (high, medium, or low)

Format the response as a JSON array of objects with the following properties: title, description, keywords (array), targetAudience, estimatedEngagement.`)

	return b.String()
}
