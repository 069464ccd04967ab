// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the APIKey model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a key is not found (or not owned by the caller), functions return
//     ErrNotFound. The service layer decides whether to collapse that with
//     the unauthorized case.
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jxdlabs/go-feedback-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateAPIKey inserts a new APIKey row owned by userID. The id and the
// plaintext secret are generated by the service layer; CreatedAt is set to UTC.
//
// On success, it returns the persisted record (including the plaintext
// secret, which callers must surface exactly once). On failure, it returns
// a DB error.
func CreateAPIKey(ctx context.Context, db *gorm.DB, id, name, key, userID string) (*domain.APIKey, error) {
	k := &domain.APIKey{
		ID:        id,
		Name:      name,
		Key:       key,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(k).Error; err != nil {
		return nil, err
	}
	return k, nil
}

// ListAPIKeys returns all keys belonging to userID, ordered by creation time
// ascending (oldest first). It returns an empty slice if the user has no
// keys. On DB error, it returns the error.
func ListAPIKeys(ctx context.Context, db *gorm.DB, userID string) ([]domain.APIKey, error) {
	var out []domain.APIKey
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

// DeleteAPIKey hard-deletes the key identified by id, but only when it is
// owned by userID. Both conditions are applied in a single conditional
// delete; if no rows are affected the caller cannot tell a missing key from
// somebody else's key, and ErrNotFound is returned for both.
func DeleteAPIKey(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.APIKey{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ResolveAPIKeyOwner looks up a presented plaintext secret by exact match and
// returns the owning user id. It returns ErrNotFound when no key matches.
// Used only by the ingestion path.
func ResolveAPIKeyOwner(ctx context.Context, db *gorm.DB, key string) (string, error) {
	var k domain.APIKey
	err := db.WithContext(ctx).
		Where("key = ?", key).
		First(&k).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return k.UserID, nil
}
