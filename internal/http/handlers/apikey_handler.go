// API key HTTP handlers.
//
// This file exposes the authenticated REST endpoints for managing ingestion
// keys:
//   - POST   /keys       (create; the only response ever carrying the full secret)
//   - GET    /keys       (list with truncated previews)
//   - DELETE /keys/{id}  (hard delete, owner only)
//
// Deleting a key that does not exist and deleting a key owned by somebody
// else produce the same 404 response. That collapse is intentional: the
// error must not confirm the existence of other users' keys.
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jxdlabs/go-feedback-backend/internal/services"
)

//
// DTOs
//

// CreateAPIKeyRequest is the JSON payload for creating an API key.
type CreateAPIKeyRequest struct {
	// Name labels the key for the key owner, e.g. the integrating site.
	Name string `json:"name" binding:"required,min=1,max=255" example:"marketing-site"`
}

// CreateAPIKeyResponse carries the full plaintext secret. It is returned on
// creation only; no other endpoint re-exposes the secret.
type CreateAPIKeyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"createdAt"`
}

// APIKeyItem is the list representation of a key: the secret is reduced to a
// recognizable preview.
type APIKeyItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	KeyPreview string    `json:"keyPreview"`
	CreatedAt  time.Time `json:"createdAt"`
}

//
// Handlers
//

// CreateAPIKey godoc
// @ID          createAPIKey
// @Summary     Create an API key
// @Description Generates a new ingestion key for the current user. The response is the only place the plaintext secret is ever shown — store it now.
// @Tags        Keys
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateAPIKeyRequest  true  "Key name"
//
// @Success     201  {object} handlers.CreateAPIKeyResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Security    BearerAuth
// @Router      /keys [post]
func (h *Handlers) CreateAPIKey(c *gin.Context) {
	var req CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required (1–255 chars)")
		return
	}

	key, err := h.keySvc.Generate(c.Request.Context(), userID(c), req.Name)
	if err != nil {
		if err == services.ErrEmptyKeyName {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}

	ok(c, http.StatusCreated, CreateAPIKeyResponse{
		ID:        key.ID,
		Name:      key.Name,
		Key:       key.Key,
		CreatedAt: key.CreatedAt,
	})
}

// ListAPIKeys godoc
// @ID          listAPIKeys
// @Summary     List API keys
// @Description Returns the current user's keys ordered oldest first. Secrets appear only as truncated previews.
// @Tags        Keys
// @Produce     json
//
// @Success     200  {array}  handlers.APIKeyItem
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Security    BearerAuth
// @Router      /keys [get]
func (h *Handlers) ListAPIKeys(c *gin.Context) {
	keys, err := h.keySvc.List(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	items := make([]APIKeyItem, len(keys))
	for i, k := range keys {
		items[i] = APIKeyItem{
			ID:         k.ID,
			Name:       k.Name,
			KeyPreview: services.Preview(k.Key),
			CreatedAt:  k.CreatedAt,
		}
	}
	ok(c, http.StatusOK, items)
}

// DeleteAPIKey godoc
// @ID          deleteAPIKey
// @Summary     Delete an API key
// @Description Hard-deletes a key owned by the current user. Missing and not-owned keys are indistinguishable in the response.
// @Tags        Keys
// @Produce     json
//
// @Param       id  path  string  true  "Key ID"
//
// @Success     204  {string} string "No Content"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     404  {object} handlers.ErrorResponse "Not found or unauthorized"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Security    BearerAuth
// @Router      /keys/{id} [delete]
func (h *Handlers) DeleteAPIKey(c *gin.Context) {
	if err := h.keySvc.Revoke(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		if err == services.ErrKeyNotFoundOrUnauthorized {
			fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
