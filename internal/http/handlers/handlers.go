// Handler wiring for the public and dashboard APIs.
//
// Handlers are transport-thin: they validate input, delegate to application
// services, and translate domain/service errors into HTTP results. They
// depend on abstract service interfaces so tests can swap in stubs.
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jxdlabs/go-feedback-backend/internal/domain"
	"github.com/jxdlabs/go-feedback-backend/internal/http/middleware"
)

//
// Service contracts (context-aware)
//

// FeedbackService defines feedback lifecycle operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type FeedbackService interface {
	// Create persists a feedback item and its tags atomically for ownerID.
	Create(ctx context.Context, ownerID, content string, tags []domain.Tag) (*domain.Feedback, []domain.Tag, error)
	// List returns all feedback for ownerID, optionally filtered by status.
	List(ctx context.Context, ownerID string, statuses []string) ([]domain.Feedback, error)
	// ListPage returns a page of feedback for ownerID and the total count.
	ListPage(ctx context.Context, ownerID string, statuses []string, page, pageSize int) ([]domain.Feedback, int64, error)
	// UpdateStatus moves a feedback item to a new lifecycle state.
	UpdateStatus(ctx context.Context, ownerID, feedbackID, status string) (*domain.Feedback, error)
}

// APIKeyService defines API key management operations consumed by HTTP
// handlers.
type APIKeyService interface {
	// Generate creates a named key for ownerID and returns the full record,
	// plaintext secret included, exactly once.
	Generate(ctx context.Context, ownerID, name string) (*domain.APIKey, error)
	// List returns ownerID's keys ordered by creation time ascending.
	List(ctx context.Context, ownerID string) ([]domain.APIKey, error)
	// Revoke hard-deletes a key owned by ownerID.
	Revoke(ctx context.Context, ownerID, keyID string) error
	// ResolveOwner maps a presented ingestion secret to its owning user id.
	ResolveOwner(ctx context.Context, key string) (string, error)
}

// Handlers groups HTTP endpoints for ingestion, feedback, and API keys.
type Handlers struct {
	fbSvc  FeedbackService
	keySvc APIKeyService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(fbSvc FeedbackService, keySvc APIKeyService) *Handlers {
	return &Handlers{fbSvc: fbSvc, keySvc: keySvc}
}

// userID extracts the authenticated user id placed in the Gin context by the
// session auth gate. Dashboard routes are only mounted behind that gate, so
// an empty result means the route was wired without it — callers treat that
// as unauthenticated rather than guessing an identity from request input.
func userID(c *gin.Context) string {
	return middleware.UserIDFrom(c)
}
