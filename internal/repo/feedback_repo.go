// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Feedback
// model and its Tags.
//
// The repository follows a "thin" approach: it performs persistence and simple
// query composition, leaving business rules to the services package.
//
// Error semantics:
//   - When a feedback item is not found, functions return ErrNotFound.
//   - CreateFeedback is written against the handle it is given; callers that
//     need the feedback row and its tags to commit as one unit must pass a
//     transaction-bound handle (see services.FeedbackService.Create).
//   - On other DB errors (connectivity, constraints, etc.), the raw gorm
//     error is propagated.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jxdlabs/go-feedback-backend/internal/domain"
)

// CreateFeedback inserts a feedback row and its tag rows using the provided
// handle. The feedback id must be assigned by the caller; tag ids arrive
// verbatim from the ingesting client. Status is set to "new" and CreatedAt
// to UTC now.
//
// Tags are inserted after the feedback row so the FK constraint holds; when
// the handle is transaction-bound, a failing tag insert (e.g. duplicate tag
// id) rolls back the feedback row too, so partially-tagged feedback is never
// observable.
func CreateFeedback(ctx context.Context, db *gorm.DB, id, userID, content string, tags []domain.Tag) (*domain.Feedback, []domain.Tag, error) {
	fb := &domain.Feedback{
		ID:        id,
		UserID:    userID,
		Content:   content,
		Status:    domain.StatusNew,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(fb).Error; err != nil {
		return nil, nil, err
	}

	out := make([]domain.Tag, 0, len(tags))
	for _, t := range tags {
		row := domain.Tag{ID: t.ID, Content: t.Content, FeedbackID: fb.ID}
		if err := db.WithContext(ctx).Create(&row).Error; err != nil {
			return nil, nil, err
		}
		out = append(out, row)
	}
	return fb, out, nil
}

// ListFeedback returns all feedback owned by userID with tags preloaded,
// ordered by creation time descending (most recent first). When statuses is
// non-empty the result is restricted to rows whose status is in that set.
func ListFeedback(ctx context.Context, db *gorm.DB, userID string, statuses []string) ([]domain.Feedback, error) {
	var out []domain.Feedback
	q := db.WithContext(ctx).
		Preload("Tags").
		Where("user_id = ?", userID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.Order("created_at desc").Find(&out).Error
	return out, err
}

// CountFeedback returns the number of feedback rows owned by userID that
// match the optional status filter. On DB error, it returns the error.
func CountFeedback(ctx context.Context, db *gorm.DB, userID string, statuses []string) (int64, error) {
	var total int64
	q := db.WithContext(ctx).
		Model(&domain.Feedback{}).
		Where("user_id = ?", userID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.Count(&total).Error
	return total, err
}

// ListFeedbackPage returns a paginated slice of feedback for userID with tags
// preloaded, ordered by creation time descending. Tags are never truncated by
// pagination; each returned item carries its full tag set. Use CountFeedback
// to obtain the total for pagination metadata.
func ListFeedbackPage(ctx context.Context, db *gorm.DB, userID string, statuses []string, offset, limit int) ([]domain.Feedback, error) {
	var out []domain.Feedback
	q := db.WithContext(ctx).
		Preload("Tags").
		Where("user_id = ?", userID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetFeedback fetches a single feedback item by its id, without an ownership
// filter: the service layer distinguishes "absent" from "not yours" for the
// status-update path. Returns ErrNotFound when the row does not exist.
func GetFeedback(ctx context.Context, db *gorm.DB, id string) (*domain.Feedback, error) {
	var fb domain.Feedback
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&fb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &fb, nil
}

// UpdateFeedbackStatus sets the status of the feedback identified by id and
// returns the updated row with tags preloaded. If no rows are affected it
// returns ErrNotFound. Ownership must be verified by the caller beforehand.
func UpdateFeedbackStatus(ctx context.Context, db *gorm.DB, id, status string) (*domain.Feedback, error) {
	res := db.WithContext(ctx).
		Model(&domain.Feedback{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var fb domain.Feedback
	if err := db.WithContext(ctx).Preload("Tags").Where("id = ?", id).First(&fb).Error; err != nil {
		return nil, err
	}
	return &fb, nil
}

// FeedbackStats returns aggregate metadata for a user's feedback: the total
// number of rows and the maximum UpdatedAt timestamp among those rows. The
// HTTP layer uses this for cheap ETag generation on list responses.
//
// When the user has no feedback, the returned count is 0 and maxUpdatedAt
// is nil.
func FeedbackStats(ctx context.Context, db *gorm.DB, userID string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Feedback{}).Where("user_id = ?", userID)

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
