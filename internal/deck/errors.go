// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import (
	"errors"
	"fmt"
)

// Validation errors are rejected before any I/O; the collections are left
// untouched.
var (
	ErrNameRequired      = errors.New("category name is required")
	ErrQuestionRequired  = errors.New("question is required")
	ErrProtectedCategory = errors.New(`the "General" category cannot be modified or deleted`)
	ErrCategoryNotFound  = errors.New("category not found")
	ErrFlashcardNotFound = errors.New("flashcard not found")
	ErrCycle             = errors.New("category cannot be its own ancestor")

	// ErrEmptyDeck is returned when a quiz session is started with no cards.
	ErrEmptyDeck = errors.New("nothing to study")

	// ErrStaleEpoch marks a backend result that arrived after a credential
	// transition; the result is discarded, never applied.
	ErrStaleEpoch = errors.New("operation superseded by a session change")

	// ErrUnauthorized indicates the remote service rejected the session
	// credential. The caller clears the credential and reloads as guest.
	ErrUnauthorized = errors.New("session credential rejected")
)

// BackendError wraps a failed physical operation against a backend. The
// in-memory collections are unchanged when it is returned.
type BackendError struct {
	Op     string // e.g. "create category"
	Status int    // HTTP status for remote calls, 0 for local
	Err    error
}

func (e *BackendError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }
