// Copyright (c) 2026 DXA Info <dev@dxag.info>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/models"
)

// ideaColumns is the canonical column list shared by every idea query.
const ideaColumns = `id, user_id, title, description, content_type, keywords,
	       target_audience, estimated_engagement, status, is_saved,
	       is_scheduled, scheduled_date, notes, created_at, updated_at`

// IdeaFilter narrows an idea listing. Zero-value fields are ignored.
type IdeaFilter struct {
	ContentType models.ContentType
	Status      models.IdeaStatus
	IsSaved     *bool
	IsScheduled *bool
	Search      string // free-text match against title/description/keywords
	Page        int    // 1-based; 0 means first page
	PerPage     int    // 0 means default
}

const defaultPerPage = 20

// IdeaStore handles all idea-related database operations.
type IdeaStore struct {
	db *sql.DB
}

// NewIdeaStore creates a new IdeaStore with the given database connection.
func NewIdeaStore(db *sql.DB) *IdeaStore {
	return &IdeaStore{db: db}
}

func scanIdea(row interface{ Scan(...any) error }) (*models.Idea, error) {
	i := &models.Idea{}
	err := row.Scan(
		&i.ID, &i.UserID, &i.Title, &i.Description, &i.ContentType, &i.Keywords,
		&i.TargetAudience, &i.EstimatedEngagement, &i.Status, &i.IsSaved,
		&i.IsScheduled, &i.ScheduledDate, &i.Notes, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return i, nil
}

// Create inserts a new idea and returns it with generated ID and timestamps.
func (s *IdeaStore) Create(i *models.Idea) (*models.Idea, error) {
	i.Keywords = models.NormalizeKeywords(i.Keywords)
	row := s.db.QueryRow(`
		INSERT INTO ideas (user_id, title, description, content_type, keywords,
		                   target_audience, estimated_engagement, status,
		                   is_saved, is_scheduled, scheduled_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+ideaColumns,
		i.UserID, i.Title, i.Description, i.ContentType, i.Keywords,
		i.TargetAudience, i.EstimatedEngagement, i.Status,
		i.IsSaved, i.IsScheduled, i.ScheduledDate, i.Notes,
	)
	created, err := scanIdea(row)
	if err != nil {
		return nil, fmt.Errorf("create idea: %w", err)
	}
	return created, nil
}

// FindByID retrieves an idea by its UUID. Returns nil if not found.
func (s *IdeaStore) FindByID(id uuid.UUID) (*models.Idea, error) {
	row := s.db.QueryRow(`SELECT `+ideaColumns+` FROM ideas WHERE id = $1`, id)
	i, err := scanIdea(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find idea by id: %w", err)
	}
	return i, nil
}

// List returns a page of the user's ideas matching the filter, newest first,
// together with the total number of matching rows.
func (s *IdeaStore) List(userID uuid.UUID, f IdeaFilter) ([]models.Idea, int, error) {
	where := []string{"user_id = $1"}
	args := []any{userID}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.ContentType != "" {
		where = append(where, "content_type = "+arg(f.ContentType))
	}
	if f.Status != "" {
		where = append(where, "status = "+arg(f.Status))
	}
	if f.IsSaved != nil {
		where = append(where, "is_saved = "+arg(*f.IsSaved))
	}
	if f.IsScheduled != nil {
		where = append(where, "is_scheduled = "+arg(*f.IsScheduled))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		where = append(where, fmt.Sprintf(
			"(title ILIKE %s OR description ILIKE %s OR keywords::text ILIKE %s)", p, p, p))
	}

	cond := strings.Join(where, " AND ")

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM ideas WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ideas: %w", err)
	}

	perPage := f.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * perPage

	query := fmt.Sprintf("SELECT "+ideaColumns+" FROM ideas WHERE %s ORDER BY created_at DESC, id DESC LIMIT %s OFFSET %s",
		cond, arg(perPage), arg(offset))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list ideas: %w", err)
	}
	defer rows.Close()

	var items []models.Idea
	for rows.Next() {
		i, err := scanIdea(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan idea: %w", err)
		}
		items = append(items, *i)
	}
	return items, total, rows.Err()
}

// Update rewrites an idea's mutable fields. ID and owner never change.
func (s *IdeaStore) Update(i *models.Idea) (*models.Idea, error) {
	i.Keywords = models.NormalizeKeywords(i.Keywords)
	row := s.db.QueryRow(`
		UPDATE ideas SET
			title = $1, description = $2, content_type = $3, keywords = $4,
			target_audience = $5, estimated_engagement = $6, status = $7,
			is_saved = $8, is_scheduled = $9, scheduled_date = $10, notes = $11,
			updated_at = NOW()
		WHERE id = $12
		RETURNING `+ideaColumns,
		i.Title, i.Description, i.ContentType, i.Keywords,
		i.TargetAudience, i.EstimatedEngagement, i.Status,
		i.IsSaved, i.IsScheduled, i.ScheduledDate, i.Notes, i.ID,
	)
	updated, err := scanIdea(row)
	if err != nil {
		return nil, fmt.Errorf("update idea: %w", err)
	}
	return updated, nil
}

// Delete removes an idea by ID. Removal is unconditional — there is no
// soft-delete; ownership is verified by the caller before this runs.
func (s *IdeaStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM ideas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete idea: %w", err)
	}
	return nil
}

// SetSchedule places an idea on the calendar. Rescheduling an already
// scheduled idea simply moves its date.
func (s *IdeaStore) SetSchedule(id uuid.UUID, date time.Time) (*models.Idea, error) {
	row := s.db.QueryRow(`
		UPDATE ideas SET is_scheduled = TRUE, scheduled_date = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+ideaColumns, date, id)
	i, err := scanIdea(row)
	if err != nil {
		return nil, fmt.Errorf("set schedule: %w", err)
	}
	return i, nil
}

// ClearSchedule takes an idea off the calendar. A no-op for ideas that are
// already unscheduled.
func (s *IdeaStore) ClearSchedule(id uuid.UUID) (*models.Idea, error) {
	row := s.db.QueryRow(`
		UPDATE ideas SET is_scheduled = FALSE, scheduled_date = NULL, updated_at = NOW()
		WHERE id = $1
		RETURNING `+ideaColumns, id)
	i, err := scanIdea(row)
	if err != nil {
		return nil, fmt.Errorf("clear schedule: %w", err)
	}
	return i, nil
}

// ListScheduled returns the user's scheduled ideas ordered by scheduled date.
// from/to bound the range when non-nil; either or both may be supplied.
func (s *IdeaStore) ListScheduled(userID uuid.UUID, from, to *time.Time) ([]models.Idea, error) {
	where := []string{"user_id = $1", "is_scheduled = TRUE"}
	args := []any{userID}

	if from != nil {
		args = append(args, *from)
		where = append(where, fmt.Sprintf("scheduled_date >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		where = append(where, fmt.Sprintf("scheduled_date <= $%d", len(args)))
	}

	rows, err := s.db.Query(
		"SELECT "+ideaColumns+" FROM ideas WHERE "+strings.Join(where, " AND ")+" ORDER BY scheduled_date ASC",
		args...)
	if err != nil {
		return nil, fmt.Errorf("list scheduled ideas: %w", err)
	}
	defer rows.Close()

	var items []models.Idea
	for rows.Next() {
		i, err := scanIdea(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scheduled idea: %w", err)
		}
		items = append(items, *i)
	}
	return items, rows.Err()
}
