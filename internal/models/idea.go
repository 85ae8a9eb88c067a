// Copyright (c) 2026 DXA Info <dev@dxag.info>
// All rights reserved. See LICENSE for details.

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContentType classifies the kind of content an idea targets.
type ContentType string

const (
	ContentTypeBlog   ContentType = "blog"
	ContentTypeVideo  ContentType = "video"
	ContentTypeSocial ContentType = "social"
)

// Valid reports whether ct is one of the known content types.
func (ct ContentType) Valid() bool {
	switch ct {
	case ContentTypeBlog, ContentTypeVideo, ContentTypeSocial:
		return true
	}
	return false
}

// IdeaStatus represents the editorial state of an idea.
type IdeaStatus string

const (
	IdeaStatusDraft      IdeaStatus = "draft"
	IdeaStatusInProgress IdeaStatus = "in-progress"
	IdeaStatusPublished  IdeaStatus = "published"
	IdeaStatusArchived   IdeaStatus = "archived"
)

// Valid reports whether st is one of the known statuses.
func (st IdeaStatus) Valid() bool {
	switch st {
	case IdeaStatusDraft, IdeaStatusInProgress, IdeaStatusPublished, IdeaStatusArchived:
		return true
	}
	return false
}

// Engagement is the estimated engagement level of an idea.
type Engagement string

const (
	EngagementHigh   Engagement = "high"
	EngagementMedium Engagement = "medium"
	EngagementLow    Engagement = "low"
)

// NormalizeEngagement maps free-form engagement text onto the three known
// levels. "high" wins over "low" when both substrings appear; anything
// unrecognized becomes medium.
func NormalizeEngagement(raw string) Engagement {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "high"):
		return EngagementHigh
	case strings.Contains(s, "low"):
		return EngagementLow
	default:
		return EngagementMedium
	}
}

// Keywords is a list of keyword strings stored as a JSON array column.
type Keywords []string

// Value serializes keywords to JSON for storage.
func (k Keywords) Value() (driver.Value, error) {
	if k == nil {
		k = Keywords{}
	}
	return json.Marshal(k)
}

// Scan deserializes a JSON array column into keywords.
func (k *Keywords) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*k = Keywords{}
		return nil
	case []byte:
		return json.Unmarshal(v, k)
	case string:
		return json.Unmarshal([]byte(v), k)
	}
	return fmt.Errorf("keywords: unsupported scan type %T", src)
}

// NormalizeKeywords trims entries, drops empty strings, and removes
// duplicates while preserving first-seen order. Dedup is case-sensitive:
// "ai" and "AI" are distinct entries.
func NormalizeKeywords(in []string) Keywords {
	out := Keywords{}
	seen := make(map[string]struct{}, len(in))
	for _, kw := range in {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}

// Idea is a content idea owned by a single user. The scheduling invariant
// holds at rest: IsScheduled is true exactly when ScheduledDate is non-nil.
type Idea struct {
	ID                  uuid.UUID   `json:"id"`
	UserID              uuid.UUID   `json:"userId"`
	Title               string      `json:"title"`
	Description         string      `json:"description"`
	ContentType         ContentType `json:"contentType"`
	Keywords            Keywords    `json:"keywords"`
	TargetAudience      string      `json:"targetAudience"`
	EstimatedEngagement Engagement  `json:"estimatedEngagement"`
	Status              IdeaStatus  `json:"status"`
	IsSaved             bool        `json:"isSaved"`
	IsScheduled         bool        `json:"isScheduled"`
	ScheduledDate       *time.Time  `json:"scheduledDate"`
	Notes               string      `json:"notes"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}

// OwnedBy reports whether the idea belongs to the given user.
func (i *Idea) OwnedBy(userID uuid.UUID) bool {
	return i.UserID == userID
}

// ScheduleConsistent reports whether the scheduling invariant holds.
func (i *Idea) ScheduleConsistent() bool {
	return i.IsScheduled == (i.ScheduledDate != nil)
}
