// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the session auth gate for dashboard routes. The gate
// consumes an abstract contract — "a request yields an authenticated user id
// or nothing" — so the actual auth provider stays an external collaborator.
// A JWT-backed resolver is provided as the default production wiring; tests
// plug in plain functions.
//
// Every handler behind the gate receives the owner id exclusively through
// the Gin context (see UserIDFrom), never from client-supplied input. That
// closes a confused-deputy class of bug: no request body or query parameter
// can ever choose whose resources an operation touches.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ctxKeyUserID is the Gin context key under which the authenticated user id
// is stored by SessionAuth.
const ctxKeyUserID = "userID"

// ErrNoSession is returned by resolvers when the request carries no usable
// session credential.
var ErrNoSession = errors.New("no resolvable session")

// SessionResolver maps an incoming request to an authenticated user id.
// Returning an empty id or an error means the request is unauthenticated
// and the wrapped handler must not execute.
type SessionResolver func(c *gin.Context) (string, error)

// SessionAuth returns a Gin middleware that gates authenticated-only
// operations. On resolution failure the request is aborted with a 401
// envelope; on success the user id is stored in the context for handlers to
// read via UserIDFrom.
func SessionAuth(resolve SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := resolve(c)
		if err != nil || uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"request_id": c.Writer.Header().Get("X-Request-ID"),
				"code":       "unauthorized",
				"message":    "authentication required",
			})
			return
		}
		c.Set(ctxKeyUserID, uid)
		c.Next()
	}
}

// BearerTokenResolver returns a SessionResolver that validates an HS256
// bearer token from the Authorization header and yields its subject claim.
//
// Only the signature, expiry, and signing method are checked here; issuing
// sessions and the surrounding sign-in flow belong to the external auth
// provider.
func BearerTokenResolver(secret string) SessionResolver {
	return func(c *gin.Context) (string, error) {
		header := c.GetHeader("Authorization")
		if header == "" {
			return "", ErrNoSession
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", ErrNoSession
		}

		tok, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return "", ErrNoSession
		}

		sub, err := tok.Claims.GetSubject()
		if err != nil || sub == "" {
			return "", ErrNoSession
		}
		return sub, nil
	}
}

// UserIDFrom returns the authenticated user id stored by SessionAuth, or ""
// when the request did not pass through the gate.
func UserIDFrom(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
