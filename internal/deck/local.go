// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/mtreilly/arc-recall/internal/store"
)

// Guest-mode blobs: two independently keyed JSON arrays in the device store,
// field names matching the in-memory shape (parentId/categoryId).
const (
	keyGuestCategories = "guest_categories"
	keyGuestFlashcards = "guest_flashcards"
)

// LocalBackend persists guest-mode data in the device store. Every mutation
// is a whole-collection rewrite: read the blob, patch it in memory, write it
// back. Two logically concurrent mutations are last-write-wins on the blob;
// acceptable for a single-user device store.
type LocalBackend struct {
	kv store.KVStore
}

// NewLocalBackend creates a guest backend over the given device store.
func NewLocalBackend(kv store.KVStore) *LocalBackend {
	return &LocalBackend{kv: kv}
}

// newLocalID synthesizes a collision-resistant id for one device. A coarse
// timestamp would collide under rapid successive creates.
func newLocalID() (string, error) {
	return gonanoid.New()
}

func (l *LocalBackend) readCategories(ctx context.Context) ([]Category, error) {
	data, err := l.kv.Get(ctx, keyGuestCategories)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cats []Category
	if err := json.Unmarshal(data, &cats); err != nil {
		return nil, fmt.Errorf("unmarshal categories: %w", err)
	}
	return cats, nil
}

func (l *LocalBackend) writeCategories(ctx context.Context, cats []Category) error {
	if cats == nil {
		cats = []Category{}
	}
	data, err := json.Marshal(cats)
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}
	return l.kv.Set(ctx, keyGuestCategories, data)
}

func (l *LocalBackend) readFlashcards(ctx context.Context) ([]Flashcard, error) {
	data, err := l.kv.Get(ctx, keyGuestFlashcards)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cards []Flashcard
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("unmarshal flashcards: %w", err)
	}
	return cards, nil
}

func (l *LocalBackend) writeFlashcards(ctx context.Context, cards []Flashcard) error {
	if cards == nil {
		cards = []Flashcard{}
	}
	data, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("marshal flashcards: %w", err)
	}
	return l.kv.Set(ctx, keyGuestFlashcards, data)
}

// seedGeneral guarantees the protected root category exists before any user
// category is created on a fresh device.
func (l *LocalBackend) seedGeneral(ctx context.Context, cats []Category) ([]Category, error) {
	for _, c := range cats {
		if strings.EqualFold(c.Name, GeneralCategory) {
			return cats, nil
		}
	}
	id, err := newLocalID()
	if err != nil {
		return nil, &BackendError{Op: "seed general category", Err: err}
	}
	cats = append([]Category{{ID: id, Name: GeneralCategory}}, cats...)
	if err := l.writeCategories(ctx, cats); err != nil {
		return nil, &BackendError{Op: "seed general category", Err: err}
	}
	return cats, nil
}

func (l *LocalBackend) ListCategories(ctx context.Context) ([]Category, error) {
	cats, err := l.readCategories(ctx)
	if err != nil {
		return nil, &BackendError{Op: "list categories", Err: err}
	}
	return l.seedGeneral(ctx, cats)
}

func (l *LocalBackend) CreateCategory(ctx context.Context, name, parentID string) (*Category, error) {
	cats, err := l.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	id, err := newLocalID()
	if err != nil {
		return nil, &BackendError{Op: "create category", Err: err}
	}
	cat := Category{ID: id, Name: name, ParentID: parentID}
	if err := l.writeCategories(ctx, append(cats, cat)); err != nil {
		return nil, &BackendError{Op: "create category", Err: err}
	}
	return &cat, nil
}

func (l *LocalBackend) UpdateCategory(ctx context.Context, id, name, parentID string) (*Category, error) {
	cats, err := l.readCategories(ctx)
	if err != nil {
		return nil, &BackendError{Op: "update category", Err: err}
	}
	for i := range cats {
		if cats[i].ID != id {
			continue
		}
		// Local writes the submitted fields verbatim.
		cats[i].Name = name
		cats[i].ParentID = parentID
		if err := l.writeCategories(ctx, cats); err != nil {
			return nil, &BackendError{Op: "update category", Err: err}
		}
		updated := cats[i]
		return &updated, nil
	}
	return nil, &BackendError{Op: "update category", Err: ErrCategoryNotFound}
}

// DeleteCategory removes the category, its descendants, and every flashcard
// in the removed set from the device store. There is no server to cascade
// for us here, so the cascade happens inside the adapter.
func (l *LocalBackend) DeleteCategory(ctx context.Context, id string) error {
	cats, err := l.readCategories(ctx)
	if err != nil {
		return &BackendError{Op: "delete category", Err: err}
	}
	removed := descendantSet(cats, id)

	kept := make([]Category, 0, len(cats))
	for _, c := range cats {
		if !removed[c.ID] {
			kept = append(kept, c)
		}
	}
	if err := l.writeCategories(ctx, kept); err != nil {
		return &BackendError{Op: "delete category", Err: err}
	}

	cards, err := l.readFlashcards(ctx)
	if err != nil {
		return &BackendError{Op: "delete category", Err: err}
	}
	keptCards := make([]Flashcard, 0, len(cards))
	for _, f := range cards {
		if !removed[f.CategoryID] {
			keptCards = append(keptCards, f)
		}
	}
	if err := l.writeFlashcards(ctx, keptCards); err != nil {
		return &BackendError{Op: "delete category", Err: err}
	}
	return nil
}

func (l *LocalBackend) ListFlashcards(ctx context.Context) ([]Flashcard, error) {
	cards, err := l.readFlashcards(ctx)
	if err != nil {
		return nil, &BackendError{Op: "list flashcards", Err: err}
	}
	return cards, nil
}

func (l *LocalBackend) CreateFlashcard(ctx context.Context, question, answer, categoryID string) (*Flashcard, error) {
	cards, err := l.readFlashcards(ctx)
	if err != nil {
		return nil, &BackendError{Op: "create flashcard", Err: err}
	}
	id, err := newLocalID()
	if err != nil {
		return nil, &BackendError{Op: "create flashcard", Err: err}
	}
	card := Flashcard{ID: id, Question: question, Answer: answer, CategoryID: categoryID}
	if err := l.writeFlashcards(ctx, append(cards, card)); err != nil {
		return nil, &BackendError{Op: "create flashcard", Err: err}
	}
	return &card, nil
}

func (l *LocalBackend) UpdateFlashcard(ctx context.Context, id, question, answer, categoryID string) (*Flashcard, error) {
	cards, err := l.readFlashcards(ctx)
	if err != nil {
		return nil, &BackendError{Op: "update flashcard", Err: err}
	}
	for i := range cards {
		if cards[i].ID != id {
			continue
		}
		cards[i].Question = question
		cards[i].Answer = answer
		cards[i].CategoryID = categoryID
		if err := l.writeFlashcards(ctx, cards); err != nil {
			return nil, &BackendError{Op: "update flashcard", Err: err}
		}
		updated := cards[i]
		return &updated, nil
	}
	return nil, &BackendError{Op: "update flashcard", Err: ErrFlashcardNotFound}
}

func (l *LocalBackend) DeleteFlashcard(ctx context.Context, id string) error {
	cards, err := l.readFlashcards(ctx)
	if err != nil {
		return &BackendError{Op: "delete flashcard", Err: err}
	}
	kept := make([]Flashcard, 0, len(cards))
	for _, f := range cards {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	if err := l.writeFlashcards(ctx, kept); err != nil {
		return &BackendError{Op: "delete flashcard", Err: err}
	}
	return nil
}

func (l *LocalBackend) BulkDeleteFlashcards(ctx context.Context, ids []string) error {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	cards, err := l.readFlashcards(ctx)
	if err != nil {
		return &BackendError{Op: "bulk delete flashcards", Err: err}
	}
	kept := make([]Flashcard, 0, len(cards))
	for _, f := range cards {
		if !drop[f.ID] {
			kept = append(kept, f)
		}
	}
	if err := l.writeFlashcards(ctx, kept); err != nil {
		return &BackendError{Op: "bulk delete flashcards", Err: err}
	}
	return nil
}
