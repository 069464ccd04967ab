// Package services defines the business logic for feedback and API keys.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

// Feedback-related errors.
var (
	// ErrEmptyContent is returned when a feedback submission contains empty
	// content after trimming.
	ErrEmptyContent = errors.New("content must not be empty")

	// ErrNoTags is returned when a feedback submission carries no tags, or a
	// tag with an empty id or content.
	ErrNoTags = errors.New("at least one tag with id and content is required")

	// ErrInvalidStatus is returned when a status value is outside the allowed
	// set (new, resolved, archived).
	ErrInvalidStatus = errors.New("status must be one of: new, resolved, archived")

	// ErrFeedbackNotFound indicates that the requested feedback item does not exist.
	ErrFeedbackNotFound = errors.New("feedback not found")

	// ErrNotOwner is returned when an authenticated user attempts to mutate a
	// feedback item owned by somebody else. Deliberately distinct from
	// ErrFeedbackNotFound: the caller is already authenticated, so existence
	// leakage here is acceptable and the clearer signal helps dashboards.
	ErrNotOwner = errors.New("feedback belongs to another user")
)

// API-key-related errors.
var (
	// ErrEmptyKeyName is returned when a key creation request carries an
	// empty name after trimming.
	ErrEmptyKeyName = errors.New("key name must not be empty")

	// ErrKeyNotFoundOrUnauthorized is the single combined error for revoking
	// a key that is missing or owned by another user. The two cases are
	// intentionally indistinguishable so callers cannot probe for the
	// existence of other users' keys.
	ErrKeyNotFoundOrUnauthorized = errors.New("API key not found or unauthorized")

	// ErrInvalidAPIKey is returned when a presented ingestion secret does not
	// match any stored key.
	ErrInvalidAPIKey = errors.New("invalid API key")
)
