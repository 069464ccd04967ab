// Dashboard feedback HTTP handlers.
//
// This file exposes the authenticated REST endpoints for working with
// feedback items:
//   - GET /feedback              (list, optional status filter, paginated, ETag support)
//   - PUT /feedback/{id}/status  (move an item through its lifecycle)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses. The owner id always
// comes from the session auth gate; feedback items are never created here —
// ingestion is the only write path for new rows.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jxdlabs/go-feedback-backend/internal/domain"
	"github.com/jxdlabs/go-feedback-backend/internal/repo"
	"github.com/jxdlabs/go-feedback-backend/internal/services"
	"github.com/jxdlabs/go-feedback-backend/internal/utils"
)

//
// DTOs
//

// UpdateFeedbackStatusRequest is the JSON payload for a status update.
type UpdateFeedbackStatusRequest struct {
	// Status is the new lifecycle state: new, resolved, or archived.
	Status string `json:"status" binding:"required" example:"resolved"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListFeedbackResponse wraps a page of feedback and pagination information.
type ListFeedbackResponse struct {
	Feedback   []domain.Feedback `json:"feedback"`
	Pagination Pagination        `json:"pagination"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.ClampInt(utils.AtoiDefault(c.Query("page_size"), defaultPageSize), 1, maxPageSize)
	return
}

//
// Handlers
//

// ListFeedback godoc
// @ID          listFeedback
// @Summary     List feedback (paginated)
// @Description Returns a page of the user's feedback with embedded tags, newest first. Repeating the status query param restricts the result to those lifecycle states. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Feedback
// @Produce     json
//
// @Param       If-None-Match  header  string    false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       status         query   []string  false "Status filter (repeatable)"  collectionFormat(multi) Enums(new, resolved, archived)
// @Param       page           query   int       false "Page number"                  minimum(1) default(1)
// @Param       page_size      query   int       false "Items per page"               minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListFeedbackResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Security    BearerAuth
// @Router      /feedback [get]
func (h *Handlers) ListFeedback(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	page, pageSize := clampPagination(c)
	statuses := c.QueryArray("status")

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, ok := h.fbSvc.(*services.FeedbackService); ok {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.FeedbackStats(ctx, db, uid)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"feedback:%s:%d:%d"`, uid, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	// Fetch page.
	items, total, err := h.fbSvc.ListPage(ctx, uid, statuses, page, pageSize)
	if err != nil {
		if err == services.ErrInvalidStatus {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	resp := ListFeedbackResponse{
		Feedback: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	}
	ok(c, http.StatusOK, resp)
}

// UpdateFeedbackStatus godoc
// @ID          updateFeedbackStatus
// @Summary     Update feedback status
// @Description Moves a feedback item owned by the current user to a new lifecycle state and returns the updated item. A missing item and somebody else's item are reported differently here on purpose; the caller is already authenticated.
// @Tags        Feedback
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Feedback ID (UUID)"  format(uuid) example(141add05-4415-4938-b5a1-17e0d3171aff)
// @Param       body  body  handlers.UpdateFeedbackStatusRequest  true  "New status"
//
// @Success     200  {object} domain.Feedback
// @Failure     400  {object} handlers.ErrorResponse "Invalid status"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     403  {object} handlers.ErrorResponse "Not the owner"
// @Failure     404  {object} handlers.ErrorResponse "Feedback not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Security    BearerAuth
// @Router      /feedback/{id}/status [put]
func (h *Handlers) UpdateFeedbackStatus(c *gin.Context) {
	feedbackID := c.Param("id")

	var req UpdateFeedbackStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status required")
		return
	}

	fb, err := h.fbSvc.UpdateStatus(c.Request.Context(), userID(c), feedbackID, req.Status)
	if err != nil {
		switch err {
		case services.ErrInvalidStatus:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case services.ErrFeedbackNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "feedback not found")
		case services.ErrNotOwner:
			fail(c, http.StatusForbidden, ErrCodeForbidden, "feedback belongs to another user")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, fb)
}
