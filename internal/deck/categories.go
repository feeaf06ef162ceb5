// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import (
	"context"
	"strings"
)

// descendantSet returns the ids of the category and every transitive child,
// derived from parent pointers at call time. A visited set keeps traversal
// finite even if stored data already contains a cycle.
func descendantSet(cats []Category, id string) map[string]bool {
	children := make(map[string][]string, len(cats))
	for _, c := range cats {
		if c.ParentID != "" {
			children[c.ParentID] = append(children[c.ParentID], c.ID)
		}
	}

	removed := map[string]bool{id: true}
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range children[cur] {
			if !removed[child] {
				removed[child] = true
				stack = append(stack, child)
			}
		}
	}
	return removed
}

// CategoryByID looks up a category in the current collection.
func (m *Manager) CategoryByID(id string) (Category, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return findCategory(m.categories, id)
}

func findCategory(cats []Category, id string) (Category, bool) {
	for _, c := range cats {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// wouldCycle reports whether re-parenting id under parentID would make the
// category its own ancestor. Walks the parent chain upward from parentID.
func wouldCycle(cats []Category, id, parentID string) bool {
	byID := make(map[string]Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	seen := map[string]bool{}
	for cur := parentID; cur != ""; {
		if cur == id {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
		parent, ok := byID[cur]
		if !ok {
			return false
		}
		cur = parent.ParentID
	}
	return false
}

// AddCategory validates the name and parent, creates the category on the
// backend, and appends it to the collection.
func (m *Manager) AddCategory(ctx context.Context, name, parentID string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrNameRequired
	}

	m.mu.Lock()
	if parentID != "" {
		if _, ok := findCategory(m.categories, parentID); !ok {
			m.mu.Unlock()
			return Category{}, ErrCategoryNotFound
		}
	}
	backend, epoch := m.backend, m.epoch
	m.mu.Unlock()

	created, err := backend.CreateCategory(ctx, name, parentID)
	if err != nil {
		return Category{}, err
	}

	if err := m.commit(epoch, func() {
		m.categories = append(m.categories, *created)
	}); err != nil {
		return Category{}, err
	}
	return *created, nil
}

// UpdateCategory renames or re-parents a category. The protected root and
// self-ancestry re-parenting are rejected before any I/O.
func (m *Manager) UpdateCategory(ctx context.Context, id, name, parentID string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrNameRequired
	}

	m.mu.Lock()
	target, ok := findCategory(m.categories, id)
	if !ok {
		m.mu.Unlock()
		return Category{}, ErrCategoryNotFound
	}
	if strings.EqualFold(target.Name, GeneralCategory) {
		m.mu.Unlock()
		return Category{}, ErrProtectedCategory
	}
	if parentID != "" {
		if _, ok := findCategory(m.categories, parentID); !ok {
			m.mu.Unlock()
			return Category{}, ErrCategoryNotFound
		}
		if wouldCycle(m.categories, id, parentID) {
			m.mu.Unlock()
			return Category{}, ErrCycle
		}
	}
	backend, epoch := m.backend, m.epoch
	m.mu.Unlock()

	updated, err := backend.UpdateCategory(ctx, id, name, parentID)
	if err != nil {
		return Category{}, err
	}

	if err := m.commit(epoch, func() {
		for i := range m.categories {
			if m.categories[i].ID == id {
				m.categories[i] = *updated
				break
			}
		}
	}); err != nil {
		return Category{}, err
	}
	return *updated, nil
}

// DeleteCategory removes a category, its whole descendant subtree, and every
// flashcard filed under any removed category. One physical delete against
// the backend; the backend cascades on its side. The in-memory removal of
// categories and flashcards lands as a single state change.
func (m *Manager) DeleteCategory(ctx context.Context, id string) error {
	m.mu.Lock()
	target, ok := findCategory(m.categories, id)
	if !ok {
		m.mu.Unlock()
		return ErrCategoryNotFound
	}
	if strings.EqualFold(target.Name, GeneralCategory) {
		m.mu.Unlock()
		return ErrProtectedCategory
	}
	removed := descendantSet(m.categories, id)
	backend, epoch := m.backend, m.epoch
	m.mu.Unlock()

	if err := backend.DeleteCategory(ctx, id); err != nil {
		return err
	}

	return m.commit(epoch, func() {
		kept := make([]Category, 0, len(m.categories))
		for _, c := range m.categories {
			if !removed[c.ID] {
				kept = append(kept, c)
			}
		}
		m.categories = kept

		keptCards := make([]Flashcard, 0, len(m.flashcards))
		for _, f := range m.flashcards {
			if !removed[f.CategoryID] {
				keptCards = append(keptCards, f)
			}
		}
		m.flashcards = keptCards
	})
}
