// Package services – APIKeyService
//
// This file implements the APIKeyService, which manages the lifecycle of the
// bearer secrets used by the ingestion endpoint. It generates
// cryptographically random secrets, scopes reads and deletes to the owning
// user, and resolves presented secrets back to their owner. Service-level
// errors (ErrEmptyKeyName, ErrKeyNotFoundOrUnauthorized, ErrInvalidAPIKey)
// are returned for predictable cases so handlers can map them to HTTP
// results consistently.
package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/jxdlabs/go-feedback-backend/internal/domain"
	"github.com/jxdlabs/go-feedback-backend/internal/repo"
)

const (
	// keySecretBytes is the entropy of a generated secret (32 bytes = 256 bits,
	// 64 hex chars after encoding).
	keySecretBytes = 32
	// keyIDBytes is the entropy of a key's random identifier.
	keyIDBytes = 16
	// KeyPrefix marks generated secrets for operator triage in logs and
	// support tickets.
	KeyPrefix = "sk_"
)

// APIKeyService implements the use-cases around API key management. It is
// context-aware and safe for concurrent use.
type APIKeyService struct {
	// DB is the database handle used for all key operations.
	DB *gorm.DB
}

// Generate creates a new API key named name for ownerID.
//
// The secret is KeyPrefix plus 256 bits of crypto/rand entropy encoded as
// hex; the record id is a separate 128-bit random hex string. The returned
// record is the only place the plaintext secret is ever surfaced in full —
// subsequent List calls must not re-display it.
//
// Returns ErrEmptyKeyName when name is blank after trimming.
func (s *APIKeyService) Generate(ctx context.Context, ownerID, name string) (*domain.APIKey, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyKeyName
	}

	secret, err := randomHex(keySecretBytes)
	if err != nil {
		return nil, err
	}
	id, err := randomHex(keyIDBytes)
	if err != nil {
		return nil, err
	}

	return repo.CreateAPIKey(ctx, s.DB, id, name, KeyPrefix+secret, ownerID)
}

// List returns all keys owned by ownerID ordered by creation time ascending.
// The full secret is present on the returned records; the transport layer is
// responsible for truncating it to a preview.
func (s *APIKeyService) List(ctx context.Context, ownerID string) ([]domain.APIKey, error) {
	return repo.ListAPIKeys(ctx, s.DB, ownerID)
}

// Revoke hard-deletes the key keyID when it is owned by ownerID. A missing
// key and a key owned by another user both yield
// ErrKeyNotFoundOrUnauthorized — a single conditional delete, no existence
// probe.
func (s *APIKeyService) Revoke(ctx context.Context, ownerID, keyID string) error {
	err := repo.DeleteAPIKey(ctx, s.DB, keyID, ownerID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrKeyNotFoundOrUnauthorized
	}
	return err
}

// ResolveOwner maps a presented plaintext secret to the owning user id.
// Blank or unknown secrets yield ErrInvalidAPIKey. Used only by the
// ingestion handler; the resolved owner is what makes the API key a
// capability — the caller never supplies a user id.
func (s *APIKeyService) ResolveOwner(ctx context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", ErrInvalidAPIKey
	}
	owner, err := repo.ResolveAPIKeyOwner(ctx, s.DB, key)
	if errors.Is(err, repo.ErrNotFound) {
		return "", ErrInvalidAPIKey
	}
	return owner, err
}

// Preview returns the non-sensitive display form of a secret: the sk_ prefix
// plus the first 8 characters of the random part, followed by an ellipsis.
// Secrets too short to preview (never produced by Generate) are masked fully.
func Preview(secret string) string {
	const visible = len(KeyPrefix) + 8
	if len(secret) <= visible {
		return "********"
	}
	return secret[:visible] + "…"
}

// randomHex returns n bytes of crypto/rand entropy encoded as hex.
func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
