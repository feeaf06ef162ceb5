// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import (
	"context"
	"strings"
)

func findFlashcard(cards []Flashcard, id string) (Flashcard, bool) {
	for _, f := range cards {
		if f.ID == id {
			return f, true
		}
	}
	return Flashcard{}, false
}

// FlashcardByID looks up a flashcard in the current collection.
func (m *Manager) FlashcardByID(id string) (Flashcard, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return findFlashcard(m.flashcards, id)
}

// AddFlashcard validates the question and category, creates the card on the
// backend, and appends it to the collection. An empty answer is allowed.
func (m *Manager) AddFlashcard(ctx context.Context, question, answer, categoryID string) (Flashcard, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Flashcard{}, ErrQuestionRequired
	}

	m.mu.Lock()
	if _, ok := findCategory(m.categories, categoryID); !ok {
		m.mu.Unlock()
		return Flashcard{}, ErrCategoryNotFound
	}
	backend, epoch := m.backend, m.epoch
	m.mu.Unlock()

	created, err := backend.CreateFlashcard(ctx, question, answer, categoryID)
	if err != nil {
		return Flashcard{}, err
	}

	if err := m.commit(epoch, func() {
		m.flashcards = append(m.flashcards, *created)
	}); err != nil {
		return Flashcard{}, err
	}
	return *created, nil
}

// UpdateFlashcard rewrites a card's content and category assignment.
func (m *Manager) UpdateFlashcard(ctx context.Context, id, question, answer, categoryID string) (Flashcard, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Flashcard{}, ErrQuestionRequired
	}

	m.mu.Lock()
	if _, ok := findFlashcard(m.flashcards, id); !ok {
		m.mu.Unlock()
		return Flashcard{}, ErrFlashcardNotFound
	}
	if _, ok := findCategory(m.categories, categoryID); !ok {
		m.mu.Unlock()
		return Flashcard{}, ErrCategoryNotFound
	}
	backend, epoch := m.backend, m.epoch
	m.mu.Unlock()

	updated, err := backend.UpdateFlashcard(ctx, id, question, answer, categoryID)
	if err != nil {
		return Flashcard{}, err
	}

	if err := m.commit(epoch, func() {
		for i := range m.flashcards {
			if m.flashcards[i].ID == id {
				m.flashcards[i] = *updated
				break
			}
		}
	}); err != nil {
		return Flashcard{}, err
	}
	return *updated, nil
}

// DeleteFlashcard removes a single card.
func (m *Manager) DeleteFlashcard(ctx context.Context, id string) error {
	m.mu.Lock()
	if _, ok := findFlashcard(m.flashcards, id); !ok {
		m.mu.Unlock()
		return ErrFlashcardNotFound
	}
	backend, epoch := m.backend, m.epoch
	m.mu.Unlock()

	if err := backend.DeleteFlashcard(ctx, id); err != nil {
		return err
	}

	return m.commit(epoch, func() {
		kept := make([]Flashcard, 0, len(m.flashcards))
		for _, f := range m.flashcards {
			if f.ID != id {
				kept = append(kept, f)
			}
		}
		m.flashcards = kept
	})
}

// BulkDeleteFlashcards removes a batch of cards in one physical operation.
// Duplicate ids collapse; ids that match nothing are ignored.
func (m *Manager) BulkDeleteFlashcards(ctx context.Context, ids []string) error {
	drop := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if !drop[id] {
			drop[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return nil
	}

	backend, epoch := m.begin()
	if err := backend.BulkDeleteFlashcards(ctx, unique); err != nil {
		return err
	}

	return m.commit(epoch, func() {
		kept := make([]Flashcard, 0, len(m.flashcards))
		for _, f := range m.flashcards {
			if !drop[f.ID] {
				kept = append(kept, f)
			}
		}
		m.flashcards = kept
	})
}

// Filter returns the cards matching a category and a free-text needle,
// preserving collection order. An empty categoryID matches every category;
// a blank needle matches every card. The needle is trimmed and compared
// case-insensitively against both question and answer.
func (m *Manager) Filter(categoryID, search string) []Flashcard {
	needle := strings.ToLower(strings.TrimSpace(search))

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Flashcard, 0, len(m.flashcards))
	for _, f := range m.flashcards {
		if categoryID != "" && f.CategoryID != categoryID {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(f.Question), needle) &&
			!strings.Contains(strings.ToLower(f.Answer), needle) {
			continue
		}
		out = append(out, f)
	}
	return out
}
