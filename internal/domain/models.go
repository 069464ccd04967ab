// Package domain defines the persistence models for feedback items, their
// tags, and API keys. These types are mapped with GORM and form the core
// data layer of the feedback backend.
package domain

import "time"

// Feedback lifecycle statuses. A feedback item is created as StatusNew and
// moves through the other states only via the explicit status-update
// operation performed by its owner.
const (
	StatusNew      = "new"
	StatusResolved = "resolved"
	StatusArchived = "archived"
)

// ValidStatus reports whether s is one of the recognized feedback statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusResolved, StatusArchived:
		return true
	}
	return false
}

// Feedback represents a single piece of user-submitted content with a
// lifecycle status. Rows are created exclusively through the API-key
// authenticated ingestion endpoint; the dashboard only lists them and
// mutates their status.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - UserID: identifier of the owning user, derived from the presented API
//     key at ingestion time; indexed for efficient retrieval. The row is
//     removed by cascade when the external auth store deletes the user.
//   - Content: full text of the feedback (never empty).
//   - Status: lifecycle state, defaults to "new" (enforced by DB constraint).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - Tags: labels attached at creation time, cascade-deleted with the row.
type Feedback struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"userId"    gorm:"type:varchar(64);not null;index:idx_user_feedback"`
	Content   string    `json:"content"   gorm:"type:text;not null"`
	Status    string    `json:"status"    gorm:"type:varchar(16);not null;default:'new';check:status IN ('new','resolved','archived')"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`

	// Tags are created in the same transaction as the feedback row and are
	// never mutated independently of it.
	Tags []Tag `json:"tags,omitempty" gorm:"foreignKey:FeedbackID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Feedback.
func (Feedback) TableName() string { return "feedback" }

// Tag is a label attached to a feedback item at creation time. Tag identity
// is assigned by the ingesting caller verbatim, which lets upstream
// integrations maintain their own taxonomy and retry with the same ids.
type Tag struct {
	ID         string `json:"id"         gorm:"type:text;primaryKey"`
	Content    string `json:"content"    gorm:"type:text;not null"`
	FeedbackID string `json:"feedbackId" gorm:"type:char(36);not null;index"`

	// Feedback is the parent item. Tags are cascade-deleted if it is removed.
	Feedback *Feedback `json:"-" gorm:"foreignKey:FeedbackID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Tag.
func (Tag) TableName() string { return "tags" }

// APIKey is a bearer secret that identifies the owning user for ingestion
// requests. The plaintext Key is returned to the caller exactly once, on
// creation; list responses expose only a truncated preview. Deletion is a
// hard delete, so there is no soft-delete marker on this model.
type APIKey struct {
	ID        string    `json:"id"        gorm:"type:text;primaryKey"`
	Name      string    `json:"name"      gorm:"type:varchar(255);not null"`
	Key       string    `json:"key"       gorm:"type:text;not null;uniqueIndex:ux_api_keys_key"`
	UserID    string    `json:"userId"    gorm:"type:varchar(64);not null;index:idx_user_api_keys"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the database table name for APIKey.
func (APIKey) TableName() string { return "api_keys" }
