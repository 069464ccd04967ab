package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusNew, StatusResolved, StatusArchived} {
		if !ValidStatus(s) {
			t.Fatalf("ValidStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"", "New", "deleted", "RESOLVED", "open"} {
		if ValidStatus(s) {
			t.Fatalf("ValidStatus(%q) = true", s)
		}
	}
}

func TestTableNames(t *testing.T) {
	if (Feedback{}).TableName() != "feedback" {
		t.Fatalf("Feedback table = %q", (Feedback{}).TableName())
	}
	if (Tag{}).TableName() != "tags" {
		t.Fatalf("Tag table = %q", (Tag{}).TableName())
	}
	if (APIKey{}).TableName() != "api_keys" {
		t.Fatalf("APIKey table = %q", (APIKey{}).TableName())
	}
}

func TestFeedback_JSONShape(t *testing.T) {
	fb := Feedback{
		ID:        "141add05-4415-4938-b5a1-17e0d3171aff",
		UserID:    "u1",
		Content:   "Great app",
		Status:    StatusNew,
		CreatedAt: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC),
		Tags:      []Tag{{ID: "t1", Content: "praise", FeedbackID: "141add05-4415-4938-b5a1-17e0d3171aff"}},
	}
	b, err := json.Marshal(fb)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)

	// Wire shape uses camelCase keys and hides UpdatedAt.
	for _, key := range []string{`"id"`, `"userId"`, `"content"`, `"status"`, `"createdAt"`, `"tags"`, `"feedbackId"`} {
		if !strings.Contains(s, key) {
			t.Fatalf("missing %s in %s", key, s)
		}
	}
	if strings.Contains(s, "UpdatedAt") || strings.Contains(s, "updatedAt") {
		t.Fatalf("UpdatedAt must not serialize: %s", s)
	}
}

func TestTag_JSON_HidesParentBackreference(t *testing.T) {
	parent := Feedback{ID: "f1"}
	tag := Tag{ID: "t1", Content: "x", FeedbackID: "f1", Feedback: &parent}
	b, err := json.Marshal(tag)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), `"feedback"`) {
		t.Fatalf("parent backreference serialized: %s", b)
	}
}
