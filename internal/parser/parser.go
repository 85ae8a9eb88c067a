// Copyright (c) 2026 DXA Info <dev@dxag.info>
// All rights reserved. See LICENSE for details.

// Package parser normalizes free-form LLM completions into structured
// content-idea candidates. Models are asked for a JSON array but routinely
// return prose, fenced code blocks, or half-valid JSON, so parsing runs a
// three-tier fallback: whole-document JSON array, then embedded JSON object
// extraction, then plain-text segmentation. Malformed input is never an
// error — the last tier degrades to placeholder ideas instead.
package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/models"
)

// Candidate is one structured idea suggestion extracted from a completion.
// It is not persisted; the caller decides whether to save it.
type Candidate struct {
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Keywords            []string `json:"keywords"`
	TargetAudience      string   `json:"targetAudience"`
	EstimatedEngagement string   `json:"estimatedEngagement"`
}

const (
	defaultAudience      = "General audience"
	placeholderDesc      = "No description available. Please try generating ideas again."
	placeholderTitleExpr = "Content Idea %d"
)

var defaultKeywords = []string{"content", "idea"}

// Parse turns a raw completion into 0..n idea candidates. count is the
// number of ideas the caller asked the model for; when nothing usable can
// be extracted, exactly count placeholder candidates are returned so a
// positive request never yields an empty result.
func Parse(raw string, count int) []Candidate {
	text := strings.TrimSpace(raw)

	// Tier 1: the whole document is a JSON array.
	if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
		var items []Candidate
		if err := json.Unmarshal([]byte(text), &items); err == nil && len(items) > 0 {
			return normalizeAll(items)
		}
	}

	// Tier 2: JSON objects embedded in surrounding prose. Undecodable
	// spans are skipped; one bad object must not sink the rest.
	if strings.Contains(text, "{") && strings.Contains(text, "}") {
		var items []Candidate
		for _, span := range braceSpans(text) {
			var c Candidate
			if err := json.Unmarshal([]byte(span), &c); err == nil {
				items = append(items, c)
			}
		}
		if len(items) > 0 {
			return normalizeAll(items)
		}
	}

	// Tier 3: unstructured text segmentation.
	return segmentText(text, count)
}

// braceSpans returns the top-level balanced {...} regions of text in
// document order. Brace characters inside JSON string literals are ignored.
func braceSpans(text string) []string {
	var spans []string
	depth := 0
	start := -1
	inString := false
	escaped := false

	for i, r := range text {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					spans = append(spans, text[start:i+1])
					start = -1
				}
			}
		}
	}
	return spans
}

// blockSplit separates idea blocks on blank lines or leading enumerators
// (1., #, *, -, or "Idea N:").
var blockSplit = regexp.MustCompile(`(?i)\n\s*(?:\d+\.|#+|\*|-|idea\s+\d+\s*:|\n)`)

var (
	titleLabelRe    = regexp.MustCompile(`(?i)(?:title|idea)\s*:\s*(.+)`)
	descLabelRe     = regexp.MustCompile(`(?i)(?:description|summary)\s*:\s*(.+)`)
	keywordsLabelRe = regexp.MustCompile(`(?i)(?:keywords|tags)\s*:\s*(.+)`)
	audienceLabelRe = regexp.MustCompile(`(?i)(?:target\s+audience|audience)\s*:\s*(.+)`)
	engageLabelRe   = regexp.MustCompile(`(?i)engagement(?:\s+potential)?\s*:\s*(.+)`)
	anyLabelRe      = regexp.MustCompile(`(?i)^(?:title|idea|description|summary|keywords|tags|target\s+audience|audience|engagement(?:\s+potential)?)\s*:`)
	leadMarkersRe   = regexp.MustCompile(`^(?:[\s:#*\-]+|\d+[.)])+`)
)

// segmentText is the last-resort tier: split the completion into blocks and
// pull fields out of each by label or position.
func segmentText(text string, count int) []Candidate {
	blocks := make([]string, 0, count)
	for _, b := range blockSplit.Split(text, -1) {
		b = strings.TrimSpace(b)
		if b != "" {
			blocks = append(blocks, b)
		}
	}
	if len(blocks) > count {
		blocks = blocks[:count]
	}

	var items []Candidate
	usable := false
	for n, block := range blocks {
		c := parseBlock(block, n+1)
		if c.Title != fmt.Sprintf(placeholderTitleExpr, n+1) || c.Description != placeholderDesc {
			usable = true
		}
		items = append(items, c)
	}

	// Total parse failure still returns count ideas the user can retry from.
	if !usable {
		return placeholders(count)
	}
	return items
}

// parseBlock extracts one candidate from a text block. pos is the block's
// 1-based position, used for the synthesized title.
func parseBlock(block string, pos int) Candidate {
	lines := strings.Split(block, "\n")

	// Title: first non-empty line with leading list markers trimmed.
	title := ""
	titleIdx := -1
	for i, line := range lines {
		line = strings.TrimSpace(leadMarkersRe.ReplaceAllString(line, ""))
		if line != "" {
			title = line
			titleIdx = i
			break
		}
	}
	// A missing or implausibly long first line means the block probably
	// starts with prose; fall back to an explicit label, then a placeholder.
	if title == "" || len([]rune(title)) > 100 {
		if m := titleLabelRe.FindStringSubmatch(block); m != nil {
			title = strings.TrimSpace(m[1])
		} else {
			title = fmt.Sprintf(placeholderTitleExpr, pos)
		}
	}

	// Description: explicit label wins, else the next 1-2 non-label lines
	// after the title joined with spaces.
	desc := ""
	if m := descLabelRe.FindStringSubmatch(block); m != nil {
		desc = strings.TrimSpace(m[1])
	} else {
		var picked []string
		for i := titleIdx + 1; i < len(lines) && len(picked) < 2; i++ {
			line := strings.TrimSpace(lines[i])
			if line == "" || anyLabelRe.MatchString(line) {
				continue
			}
			picked = append(picked, line)
		}
		desc = strings.Join(picked, " ")
	}
	if desc == "" {
		desc = placeholderDesc
	}

	keywords := []string(models.NormalizeKeywords(splitKeywords(block)))
	if len(keywords) == 0 {
		keywords = append([]string(nil), defaultKeywords...)
	}

	audience := defaultAudience
	if m := audienceLabelRe.FindStringSubmatch(block); m != nil {
		audience = strings.TrimSpace(m[1])
	}

	engagement := string(models.EngagementMedium)
	if m := engageLabelRe.FindStringSubmatch(block); m != nil {
		engagement = string(models.NormalizeEngagement(m[1]))
	}

	return Candidate{
		Title:               title,
		Description:         desc,
		Keywords:            keywords,
		TargetAudience:      audience,
		EstimatedEngagement: engagement,
	}
}

// splitKeywords pulls the keyword list out of a labeled line, splitting on
// commas, semicolons, or pipes.
func splitKeywords(block string) []string {
	m := keywordsLabelRe.FindStringSubmatch(block)
	if m == nil {
		return nil
	}
	return strings.FieldsFunc(m[1], func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})
}

// normalizeAll applies the at-rest invariants to decoded candidates:
// keywords deduplicated/trimmed (defaulted when empty), engagement folded
// to high/medium/low, audience defaulted. Other fields pass through verbatim.
func normalizeAll(items []Candidate) []Candidate {
	for i := range items {
		items[i].Keywords = models.NormalizeKeywords(items[i].Keywords)
		if len(items[i].Keywords) == 0 {
			items[i].Keywords = append([]string(nil), defaultKeywords...)
		}
		items[i].EstimatedEngagement = string(models.NormalizeEngagement(items[i].EstimatedEngagement))
		if strings.TrimSpace(items[i].TargetAudience) == "" {
			items[i].TargetAudience = defaultAudience
		}
	}
	return items
}

// placeholders synthesizes count generic candidates.
func placeholders(count int) []Candidate {
	items := make([]Candidate, 0, count)
	for i := 1; i <= count; i++ {
		items = append(items, Candidate{
			Title:               fmt.Sprintf(placeholderTitleExpr, i),
			Description:         placeholderDesc,
			Keywords:            append([]string(nil), defaultKeywords...),
			TargetAudience:      defaultAudience,
			EstimatedEngagement: string(models.EngagementMedium),
		})
	}
	return items
}
