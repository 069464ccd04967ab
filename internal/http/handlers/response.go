// Package handlers implements the HTTP endpoints: the public ingestion
// endpoint consumed by API keys and the session-gated dashboard API.
//
// This file holds the dashboard response helpers. Dashboard endpoints share
// one error envelope (ErrorResponse) with a stable machine code per failure
// mode, so UI clients can branch on `code` instead of parsing messages. The
// ingestion endpoint does NOT use these helpers: its wire shape is part of
// the client SDK contract and lives in ingest_handler.go.
//
// Example dashboard error:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "feedback not found"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jxdlabs/go-feedback-backend/internal/http/middleware"
)

// ErrorResponse is the error envelope returned by every dashboard endpoint.
// RequestID echoes the X-Request-ID response header so a client-side error
// report can be matched to server logs. Code is one of the errors.go
// constants; Message is safe to show to users.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Code      string `json:"code" example:"not_found"`
	Message   string `json:"message" example:"feedback not found"`
}

// fail aborts the request with a structured error envelope. Server errors
// (>=500) are additionally logged through the request-scoped logger so the
// envelope's request_id lines up with the log entry.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail exposes fail() to the router package, which needs the same envelope
// for its not-found and method-not-allowed fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes body as JSON with the given status.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes 204 with an empty body; used by key revocation.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
