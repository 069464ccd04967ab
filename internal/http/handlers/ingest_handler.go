// Ingestion HTTP handler.
//
// This file exposes the public, API-key-authenticated endpoint for
// submitting feedback:
//   - POST /api/feedback  (create feedback + tags)
//
// Unlike the dashboard endpoints, the wire shapes here are part of the SDK
// contract and keep their own envelope: {"error": ...} on failure and
// {"success": true, "feedback": ..., "tags": ...} on success. The request is
// processed as a strict sequence — method, key extraction, key resolution,
// body validation, atomic write — terminal on first failure, and the caller
// never supplies a user id: the API key is the capability that determines
// ownership.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jxdlabs/go-feedback-backend/internal/domain"
	"github.com/jxdlabs/go-feedback-backend/internal/http/middleware"
	"github.com/jxdlabs/go-feedback-backend/internal/services"
)

// HeaderAPIKey is the request header carrying the ingestion secret.
const HeaderAPIKey = "x-api-key"

// IngestTag is one caller-supplied tag in an ingestion payload. The id is
// taken verbatim; upstream integrations use stable ids to implement their
// own re-tagging and retry schemes.
type IngestTag struct {
	ID      string `json:"id" example:"t1"`
	Content string `json:"content" example:"feature-request"`
}

// IngestRequest is the JSON payload accepted by the ingestion endpoint.
type IngestRequest struct {
	Content string      `json:"content" example:"Great app"`
	Tags    []IngestTag `json:"tags"`
}

// IngestResponse is the success envelope returned on 201.
type IngestResponse struct {
	Success  bool            `json:"success" example:"true"`
	Feedback domain.Feedback `json:"feedback"`
	Tags     []domain.Tag    `json:"tags"`
}

// IngestError is the failure envelope for the ingestion endpoint. Details is
// populated only for validation failures; Message only for internal errors.
type IngestError struct {
	Error   string        `json:"error" example:"Invalid request body"`
	Details []IngestIssue `json:"details,omitempty"`
	Message string        `json:"message,omitempty"`
}

// IngestIssue is a single field-level validation problem.
type IngestIssue struct {
	Path    string `json:"path" example:"content"`
	Message string `json:"message" example:"must not be empty"`
}

// validateIngest collects every field-level problem in req so a failing
// caller can self-correct in one round trip.
func validateIngest(req IngestRequest) []IngestIssue {
	var issues []IngestIssue
	if req.Content == "" {
		issues = append(issues, IngestIssue{Path: "content", Message: "must contain at least 1 character"})
	}
	if len(req.Tags) == 0 {
		issues = append(issues, IngestIssue{Path: "tags", Message: "must contain at least 1 item"})
	}
	for i, tag := range req.Tags {
		if tag.ID == "" {
			issues = append(issues, IngestIssue{Path: pathf("tags", i, "id"), Message: "must contain at least 1 character"})
		}
		if tag.Content == "" {
			issues = append(issues, IngestIssue{Path: pathf("tags", i, "content"), Message: "must contain at least 1 character"})
		}
	}
	return issues
}

// pathf renders "tags.0.id"-style issue paths.
func pathf(root string, idx int, field string) string {
	return root + "." + itoa(idx) + "." + field
}

// itoa avoids strconv for the tiny non-negative indexes seen here.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b [20]byte
	pos := len(b)
	for n > 0 {
		pos--
		b[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(b[pos:])
}

// IngestFeedback godoc
// @ID          ingestFeedback
// @Summary     Submit feedback (API key)
// @Description Validates the presented API key, resolves the owning user, and writes the feedback item and its tags as one atomic unit.
// @Tags        Ingestion
// @Accept      json
// @Produce     json
//
// @Param       x-api-key  header  string  true  "Ingestion API key"  example(sk_abc123)
// @Param       body       body    handlers.IngestRequest true "Feedback payload"
//
// @Success     201  {object} handlers.IngestResponse
// @Failure     400  {object} handlers.IngestError "Invalid request body"
// @Failure     401  {object} handlers.IngestError "Missing or invalid API key"
// @Failure     500  {object} handlers.IngestError "Internal server error"
// @Router      /api/feedback [post]
func (h *Handlers) IngestFeedback(c *gin.Context) {
	ctx := c.Request.Context()

	// 1) Key extraction. The method check lives in the router (NoMethod).
	key := c.GetHeader(HeaderAPIKey)
	if key == "" {
		middleware.ObserveIngestOutcome(middleware.IngestOutcomeUnauthorized)
		c.AbortWithStatusJSON(http.StatusUnauthorized, IngestError{Error: "Missing x-api-key header"})
		return
	}

	// 2) Key resolution determines the owning user. Done before body parsing
	// so invalid callers learn nothing about what a valid payload looks like.
	ownerID, err := h.keySvc.ResolveOwner(ctx, key)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAPIKey) {
			middleware.ObserveIngestOutcome(middleware.IngestOutcomeUnauthorized)
			c.AbortWithStatusJSON(http.StatusUnauthorized, IngestError{Error: "Invalid API key"})
			return
		}
		h.ingestInternal(c, err)
		return
	}

	// 3) Body parse + schema validation with field-level issue reporting.
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.ObserveIngestOutcome(middleware.IngestOutcomeInvalid)
		c.AbortWithStatusJSON(http.StatusBadRequest, IngestError{
			Error:   "Invalid request body",
			Details: []IngestIssue{{Path: "", Message: "body must be a JSON object"}},
		})
		return
	}
	if issues := validateIngest(req); len(issues) > 0 {
		middleware.ObserveIngestOutcome(middleware.IngestOutcomeInvalid)
		c.AbortWithStatusJSON(http.StatusBadRequest, IngestError{
			Error:   "Invalid request body",
			Details: issues,
		})
		return
	}

	// 4) Atomic write: feedback + tags as one unit, caller tag ids verbatim.
	tags := make([]domain.Tag, 0, len(req.Tags))
	for _, t := range req.Tags {
		tags = append(tags, domain.Tag{ID: t.ID, Content: t.Content})
	}
	fb, outTags, err := h.fbSvc.Create(ctx, ownerID, req.Content, tags)
	if err != nil {
		// Validation already passed above; anything surfacing here is a
		// storage/transaction failure (e.g. duplicate tag id on retry).
		// Not retried server side: ingestion is at-most-once and callers
		// own retry via their tag ids.
		switch {
		case errors.Is(err, services.ErrEmptyContent), errors.Is(err, services.ErrNoTags):
			middleware.ObserveIngestOutcome(middleware.IngestOutcomeInvalid)
			c.AbortWithStatusJSON(http.StatusBadRequest, IngestError{
				Error:   "Invalid request body",
				Details: validateIngest(req),
			})
		default:
			h.ingestInternal(c, err)
		}
		return
	}

	middleware.ObserveIngestOutcome(middleware.IngestOutcomeAccepted)
	c.JSON(http.StatusCreated, IngestResponse{Success: true, Feedback: *fb, Tags: outTags})
}

// ingestInternal logs an unexpected failure with request context and returns
// the generic 500 envelope.
func (h *Handlers) ingestInternal(c *gin.Context, err error) {
	middleware.ObserveIngestOutcome(middleware.IngestOutcomeError)
	lg := middleware.LoggerFrom(c)
	lg.Error().Err(err).Msg("feedback ingestion failed")
	c.AbortWithStatusJSON(http.StatusInternalServerError, IngestError{
		Error:   "Internal server error",
		Message: err.Error(),
	})
}
