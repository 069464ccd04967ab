// Package services – FeedbackService
//
// This file implements the FeedbackService, which governs how feedback items
// enter the system and move through their lifecycle. It enforces business
// rules (non-empty content, non-empty tag set, valid statuses, ownership)
// and persists feedback together with its tags atomically. Service-level
// errors (e.g. ErrEmptyContent, ErrNoTags, ErrFeedbackNotFound, ErrNotOwner)
// are returned for predictable cases so handlers can map them to HTTP
// results consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jxdlabs/go-feedback-backend/internal/domain"
	"github.com/jxdlabs/go-feedback-backend/internal/repo"
)

// FeedbackService implements the use-cases around feedback items. It
// validates input, runs the multi-row create inside a transaction, and
// enforces ownership on mutation. The service is context-aware and safe for
// concurrent use.
type FeedbackService struct {
	// DB is the database handle used for all feedback operations.
	DB *gorm.DB
}

// Create persists a feedback item owned by ownerID together with its tags.
//
// Semantics and validation:
//   - content must be non-empty after trimming; otherwise ErrEmptyContent.
//   - tags must be a non-empty slice and every tag must carry a non-empty id
//     and content; otherwise ErrNoTags.
//   - Tag ids are taken verbatim from the caller. This is deliberate: the
//     ingesting integration controls tag identity, which lets it retry with
//     the same ids and maintain its own taxonomy.
//   - ownerID comes from API key resolution, never from request input.
//
// Concurrency & atomicity:
//   - The feedback row and all tag rows are written inside one transaction.
//     A failing tag insert (duplicate tag id, FK violation) rolls the whole
//     submission back; partially-tagged feedback is never observable.
//
// On success it returns the persisted feedback and its tags. Unexpected DB
// failures propagate as raw errors for the handler to surface as 500.
func (s *FeedbackService) Create(ctx context.Context, ownerID, content string, tags []domain.Tag) (*domain.Feedback, []domain.Tag, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil, ErrEmptyContent
	}
	if len(tags) == 0 {
		return nil, nil, ErrNoTags
	}
	for _, t := range tags {
		if strings.TrimSpace(t.ID) == "" || strings.TrimSpace(t.Content) == "" {
			return nil, nil, ErrNoTags
		}
	}

	var (
		fb  *domain.Feedback
		out []domain.Tag
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		fb, out, err = repo.CreateFeedback(ctx, tx, uuid.NewString(), ownerID, content, tags)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return fb, out, nil
}

// List returns all feedback owned by ownerID, newest first, each item with
// its full tag set. When statuses is non-empty the result is restricted to
// those lifecycle states; an unrecognized status yields ErrInvalidStatus
// rather than silently matching nothing.
func (s *FeedbackService) List(ctx context.Context, ownerID string, statuses []string) ([]domain.Feedback, error) {
	if err := validateStatuses(statuses); err != nil {
		return nil, err
	}
	return repo.ListFeedback(ctx, s.DB, ownerID, statuses)
}

// ListPage returns one page of feedback for ownerID plus the total count for
// pagination metadata. Page and pageSize are assumed pre-clamped by the
// transport layer. Tags are never truncated by pagination.
func (s *FeedbackService) ListPage(ctx context.Context, ownerID string, statuses []string, page, pageSize int) ([]domain.Feedback, int64, error) {
	if err := validateStatuses(statuses); err != nil {
		return nil, 0, err
	}
	total, err := repo.CountFeedback(ctx, s.DB, ownerID, statuses)
	if err != nil {
		return nil, 0, err
	}
	items, err := repo.ListFeedbackPage(ctx, s.DB, ownerID, statuses, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// UpdateStatus moves the feedback item feedbackID to status on behalf of
// ownerID and returns the updated row.
//
// Error cases are distinguished on purpose (unlike key revocation):
//   - status outside {new, resolved, archived} → ErrInvalidStatus.
//   - feedbackID absent → ErrFeedbackNotFound.
//   - present but owned by another user → ErrNotOwner, status unchanged.
func (s *FeedbackService) UpdateStatus(ctx context.Context, ownerID, feedbackID, status string) (*domain.Feedback, error) {
	if !domain.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	fb, err := repo.GetFeedback(ctx, s.DB, feedbackID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	if fb.UserID != ownerID {
		return nil, ErrNotOwner
	}

	return repo.UpdateFeedbackStatus(ctx, s.DB, feedbackID, status)
}

// validateStatuses rejects filter sets containing unknown statuses.
func validateStatuses(statuses []string) error {
	for _, st := range statuses {
		if !domain.ValidStatus(st) {
			return ErrInvalidStatus
		}
	}
	return nil
}
