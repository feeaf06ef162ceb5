// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

// GeneralCategory is the protected root category. It always exists, and it
// is matched case-insensitively when guarding update/delete.
const GeneralCategory = "General"

// Category is a named node in the category tree. ParentID references
// another category's ID; empty means root-level. IDs are opaque strings:
// the remote service assigns numeric ids (carried here as their decimal
// form) and guest mode synthesizes nanoid tokens.
type Category struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	ParentID string `json:"parentId,omitempty" yaml:"parentId,omitempty"`
}

// Flashcard is a question/answer pair assigned to exactly one category.
// Answer may contain lightweight markup; rendering is not this package's
// concern.
type Flashcard struct {
	ID         string `json:"id" yaml:"id"`
	Question   string `json:"question" yaml:"question"`
	Answer     string `json:"answer" yaml:"answer"`
	CategoryID string `json:"categoryId" yaml:"categoryId"`
}

// Snapshot is the full in-memory state, used for user-initiated backup
// export. There is no import path.
type Snapshot struct {
	Categories []Category  `json:"categories" yaml:"categories"`
	Flashcards []Flashcard `json:"flashcards" yaml:"flashcards"`
}
