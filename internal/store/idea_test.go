// Copyright (c) 2026 DXA Info <dev@dxag.info>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/models"
)

func TestIdeaCreateAndFind(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db)
	ideas := NewIdeaStore(db)

	created, err := ideas.Create(&models.Idea{
		UserID:              user.ID,
		Title:               "My First Idea",
		Description:         "desc",
		ContentType:         models.ContentTypeVideo,
		Keywords:            models.Keywords{"go", "go", " testing "},
		TargetAudience:      "Developers",
		EstimatedEngagement: models.EngagementHigh,
		Status:              models.IdeaStatusDraft,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("ID should be generated")
	}
	if created.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	// Keywords normalized on write.
	if len(created.Keywords) != 2 || created.Keywords[0] != "go" || created.Keywords[1] != "testing" {
		t.Errorf("keywords: got %v", created.Keywords)
	}
	if created.IsScheduled || created.ScheduledDate != nil {
		t.Error("new ideas start unscheduled")
	}

	found, err := ideas.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil || found.Title != "My First Idea" {
		t.Errorf("found: %+v", found)
	}
}

func TestIdeaFindByIDMissing(t *testing.T) {
	db := testDB(t)
	ideas := NewIdeaStore(db)

	found, err := ideas.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Errorf("missing idea should be nil, got %+v", found)
	}
}

func TestIdeaListFilters(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db)
	ideas := NewIdeaStore(db)

	a := testIdea(t, db, user.ID, "Blog About Espresso")
	b := testIdea(t, db, user.ID, "Video On Latte Art")
	b.ContentType = models.ContentTypeVideo
	b.IsSaved = true
	if _, err := ideas.Update(b); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// Other users' ideas never show up.
	other := testUser(t, db)
	testIdea(t, db, other.ID, "Foreign Idea")

	all, total, err := ideas.List(user.ID, IdeaFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Fatalf("got %d/%d, want 2/2", len(all), total)
	}

	byType, _, err := ideas.List(user.ID, IdeaFilter{ContentType: models.ContentTypeVideo})
	if err != nil {
		t.Fatalf("List by type: %v", err)
	}
	if len(byType) != 1 || byType[0].ID != b.ID {
		t.Errorf("type filter: got %+v", byType)
	}

	saved := true
	bySaved, _, err := ideas.List(user.ID, IdeaFilter{IsSaved: &saved})
	if err != nil {
		t.Fatalf("List by saved: %v", err)
	}
	if len(bySaved) != 1 || bySaved[0].ID != b.ID {
		t.Errorf("saved filter: got %+v", bySaved)
	}

	bySearch, _, err := ideas.List(user.ID, IdeaFilter{Search: "espresso"})
	if err != nil {
		t.Fatalf("List by search: %v", err)
	}
	if len(bySearch) != 1 || bySearch[0].ID != a.ID {
		t.Errorf("search filter: got %+v", bySearch)
	}
}

func TestIdeaListPagination(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db)
	ideas := NewIdeaStore(db)

	for i := 0; i < 5; i++ {
		testIdea(t, db, user.ID, "Paged Idea")
	}

	page1, total, err := ideas.List(user.ID, IdeaFilter{Page: 1, PerPage: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 5 {
		t.Errorf("total: got %d, want 5", total)
	}
	if len(page1) != 2 {
		t.Errorf("page 1: got %d items", len(page1))
	}

	page3, _, err := ideas.List(user.ID, IdeaFilter{Page: 3, PerPage: 2})
	if err != nil {
		t.Fatalf("List page 3: %v", err)
	}
	if len(page3) != 1 {
		t.Errorf("page 3: got %d items, want 1", len(page3))
	}
}

func TestIdeaUpdate(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db)
	ideas := NewIdeaStore(db)

	i := testIdea(t, db, user.ID, "Before")
	i.Title = "After"
	i.Status = models.IdeaStatusPublished
	i.IsSaved = true

	updated, err := ideas.Update(i)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "After" || updated.Status != models.IdeaStatusPublished || !updated.IsSaved {
		t.Errorf("updated: %+v", updated)
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Error("UpdatedAt should not lag CreatedAt")
	}
}

func TestIdeaDelete(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db)
	ideas := NewIdeaStore(db)

	i := testIdea(t, db, user.ID, "Doomed")
	if err := ideas.Delete(i.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	found, err := ideas.FindByID(i.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Error("idea should be gone")
	}
}

func TestIdeaScheduleLifecycle(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db)
	ideas := NewIdeaStore(db)

	i := testIdea(t, db, user.ID, "Scheduled Idea")

	date := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	scheduled, err := ideas.SetSchedule(i.ID, date)
	if err != nil {
		t.Fatalf("SetSchedule: %v", err)
	}
	if !scheduled.IsScheduled || scheduled.ScheduledDate == nil {
		t.Fatalf("schedule state: %+v", scheduled)
	}
	if !scheduled.ScheduleConsistent() {
		t.Error("schedule invariant broken after SetSchedule")
	}

	// Rescheduling just moves the date.
	date2 := date.Add(24 * time.Hour)
	rescheduled, err := ideas.SetSchedule(i.ID, date2)
	if err != nil {
		t.Fatalf("SetSchedule again: %v", err)
	}
	if !rescheduled.ScheduledDate.Equal(date2) {
		t.Errorf("rescheduled date: got %v, want %v", rescheduled.ScheduledDate, date2)
	}

	cleared, err := ideas.ClearSchedule(i.ID)
	if err != nil {
		t.Fatalf("ClearSchedule: %v", err)
	}
	if cleared.IsScheduled || cleared.ScheduledDate != nil {
		t.Errorf("cleared state: %+v", cleared)
	}

	// Clearing twice is a no-op, not an error.
	if _, err := ideas.ClearSchedule(i.ID); err != nil {
		t.Errorf("ClearSchedule twice: %v", err)
	}
}

func TestIdeaListScheduled(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db)
	ideas := NewIdeaStore(db)

	now := time.Now()

	early := testIdea(t, db, user.ID, "Early")
	late := testIdea(t, db, user.ID, "Late")
	testIdea(t, db, user.ID, "Never Scheduled")

	if _, err := ideas.SetSchedule(early.ID, now.Add(24*time.Hour)); err != nil {
		t.Fatalf("SetSchedule early: %v", err)
	}
	if _, err := ideas.SetSchedule(late.ID, now.Add(96*time.Hour)); err != nil {
		t.Fatalf("SetSchedule late: %v", err)
	}

	all, err := ideas.ListScheduled(user.ID, nil, nil)
	if err != nil {
		t.Fatalf("ListScheduled: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d scheduled, want 2", len(all))
	}
	// Ascending by scheduled date.
	if all[0].Title != "Early" || all[1].Title != "Late" {
		t.Errorf("order: %q, %q", all[0].Title, all[1].Title)
	}

	from := now.Add(48 * time.Hour)
	bounded, err := ideas.ListScheduled(user.ID, &from, nil)
	if err != nil {
		t.Fatalf("ListScheduled from: %v", err)
	}
	if len(bounded) != 1 || bounded[0].Title != "Late" {
		t.Errorf("range filter: got %+v", bounded)
	}

	to := now.Add(48 * time.Hour)
	upper, err := ideas.ListScheduled(user.ID, nil, &to)
	if err != nil {
		t.Fatalf("ListScheduled to: %v", err)
	}
	if len(upper) != 1 || upper[0].Title != "Early" {
		t.Errorf("upper bound filter: got %+v", upper)
	}
}
