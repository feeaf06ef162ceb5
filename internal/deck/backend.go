// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import "context"

// Backend is the capability contract both stores satisfy: the remote
// flashcard service and the local guest store. The Manager is written once
// against this interface; selecting an implementation is the only place
// authentication state matters.
//
// Mutating calls return the canonical entity as the backend recorded it
// (remote: the server's acknowledged fields; local: the submitted fields
// plus a synthesized id). Failures propagate without retry.
type Backend interface {
	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, name, parentID string) (*Category, error)
	UpdateCategory(ctx context.Context, id, name, parentID string) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error

	ListFlashcards(ctx context.Context) ([]Flashcard, error)
	CreateFlashcard(ctx context.Context, question, answer, categoryID string) (*Flashcard, error)
	UpdateFlashcard(ctx context.Context, id, question, answer, categoryID string) (*Flashcard, error)
	DeleteFlashcard(ctx context.Context, id string) error
	BulkDeleteFlashcards(ctx context.Context, ids []string) error
}
