// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import (
	"context"
	"errors"
	"testing"

	"github.com/mtreilly/arc-recall/internal/store"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(NewLocalBackend(store.NewMemoryStore()))
	if err := m.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	return m
}

func TestReloadSeedsGeneral(t *testing.T) {
	m := newTestManager(t)

	cats := m.Categories()
	if len(cats) != 1 {
		t.Fatalf("expected 1 category, got %d", len(cats))
	}
	if cats[0].Name != GeneralCategory {
		t.Errorf("expected %q, got %q", GeneralCategory, cats[0].Name)
	}
	if cats[0].ID == "" {
		t.Error("seeded category has no id")
	}
}

func TestAddCategory(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	cat, err := m.AddCategory(ctx, "Math", "")
	if err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	if cat.ID == "" {
		t.Error("created category has no id")
	}
	if cat.Name != "Math" {
		t.Errorf("expected name Math, got %q", cat.Name)
	}

	if _, ok := m.CategoryByID(cat.ID); !ok {
		t.Error("created category not in collection")
	}
}

func TestAddCategoryValidation(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	if _, err := m.AddCategory(ctx, "   ", ""); !errors.Is(err, ErrNameRequired) {
		t.Errorf("expected ErrNameRequired, got %v", err)
	}
	if _, err := m.AddCategory(ctx, "Math", "no-such-id"); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
	if len(m.Categories()) != 1 {
		t.Error("failed adds must not change the collection")
	}
}

func TestUpdateCategoryProtectsGeneral(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	general := m.Categories()[0]
	before := m.Categories()

	if _, err := m.UpdateCategory(ctx, general.ID, "Renamed", ""); !errors.Is(err, ErrProtectedCategory) {
		t.Fatalf("expected ErrProtectedCategory, got %v", err)
	}
	if err := m.DeleteCategory(ctx, general.ID); !errors.Is(err, ErrProtectedCategory) {
		t.Fatalf("expected ErrProtectedCategory, got %v", err)
	}

	after := m.Categories()
	if len(before) != len(after) {
		t.Fatal("collection size changed")
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("category %d changed: %+v != %+v", i, before[i], after[i])
		}
	}
}

func TestUpdateCategoryRejectsCycles(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	math, err := m.AddCategory(ctx, "Math", "")
	if err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	algebra, err := m.AddCategory(ctx, "Algebra", math.ID)
	if err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	linear, err := m.AddCategory(ctx, "Linear", algebra.ID)
	if err != nil {
		t.Fatalf("AddCategory: %v", err)
	}

	// Direct self-parent.
	if _, err := m.UpdateCategory(ctx, math.ID, "Math", math.ID); !errors.Is(err, ErrCycle) {
		t.Errorf("self-parent: expected ErrCycle, got %v", err)
	}
	// Re-parenting under a transitive descendant.
	if _, err := m.UpdateCategory(ctx, math.ID, "Math", linear.ID); !errors.Is(err, ErrCycle) {
		t.Errorf("descendant parent: expected ErrCycle, got %v", err)
	}
	// Moving a leaf is fine.
	if _, err := m.UpdateCategory(ctx, linear.ID, "Linear", math.ID); err != nil {
		t.Errorf("legal move rejected: %v", err)
	}
}

func TestDeleteCategoryCascades(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	math, _ := m.AddCategory(ctx, "Math", "")
	algebra, _ := m.AddCategory(ctx, "Algebra", math.ID)
	physics, _ := m.AddCategory(ctx, "Physics", "")

	inMath, _ := m.AddFlashcard(ctx, "2+2?", "4", math.ID)
	inAlgebra, _ := m.AddFlashcard(ctx, "x+x?", "2x", algebra.ID)
	inPhysics, err := m.AddFlashcard(ctx, "F=?", "ma", physics.ID)
	if err != nil {
		t.Fatalf("AddFlashcard: %v", err)
	}

	if err := m.DeleteCategory(ctx, math.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	for _, id := range []string{math.ID, algebra.ID} {
		if _, ok := m.CategoryByID(id); ok {
			t.Errorf("category %s should be gone", id)
		}
	}
	if _, ok := m.CategoryByID(physics.ID); !ok {
		t.Error("unrelated category removed")
	}

	for _, id := range []string{inMath.ID, inAlgebra.ID} {
		if _, ok := m.FlashcardByID(id); ok {
			t.Errorf("flashcard %s should be gone", id)
		}
	}
	if _, ok := m.FlashcardByID(inPhysics.ID); !ok {
		t.Error("unrelated flashcard removed")
	}
}

func TestDeleteCategoryCascadesInStore(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	m := NewManager(NewLocalBackend(kv))
	if err := m.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	math, _ := m.AddCategory(ctx, "Math", "")
	algebra, _ := m.AddCategory(ctx, "Algebra", math.ID)
	if _, err := m.AddFlashcard(ctx, "x+x?", "2x", algebra.ID); err != nil {
		t.Fatalf("AddFlashcard: %v", err)
	}

	if err := m.DeleteCategory(ctx, math.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	// A second manager over the same store must see the cascade.
	fresh := NewManager(NewLocalBackend(kv))
	if err := fresh.Reload(ctx); err != nil {
		t.Fatalf("Reload fresh: %v", err)
	}
	if got := len(fresh.Categories()); got != 1 {
		t.Errorf("expected only General to survive, got %d categories", got)
	}
	if got := len(fresh.Flashcards()); got != 0 {
		t.Errorf("expected no flashcards, got %d", got)
	}
}

func TestSwitchBackendDiscardsState(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	if _, err := m.AddCategory(ctx, "Math", ""); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}

	if err := m.SwitchBackend(ctx, NewLocalBackend(store.NewMemoryStore())); err != nil {
		t.Fatalf("SwitchBackend: %v", err)
	}

	cats := m.Categories()
	if len(cats) != 1 || cats[0].Name != GeneralCategory {
		t.Errorf("expected a fresh seeded collection, got %+v", cats)
	}
}

// staleBackend simulates a credential transition landing while a call is in
// flight: the switch happens inside CreateCategory.
type staleBackend struct {
	*LocalBackend
	m    *Manager
	next Backend
}

func (s *staleBackend) CreateCategory(ctx context.Context, name, parentID string) (*Category, error) {
	created, err := s.LocalBackend.CreateCategory(ctx, name, parentID)
	if err != nil {
		return nil, err
	}
	if err := s.m.SwitchBackend(ctx, s.next); err != nil {
		return nil, err
	}
	return created, nil
}

func TestStaleEpochResultDiscarded(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewLocalBackend(store.NewMemoryStore()))
	if err := m.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	next := NewLocalBackend(store.NewMemoryStore())
	stale := &staleBackend{
		LocalBackend: NewLocalBackend(store.NewMemoryStore()),
		m:            m,
		next:         next,
	}
	if err := m.SwitchBackend(ctx, Backend(stale)); err != nil {
		t.Fatalf("SwitchBackend: %v", err)
	}

	_, err := m.AddCategory(ctx, "Math", "")
	if !errors.Is(err, ErrStaleEpoch) {
		t.Fatalf("expected ErrStaleEpoch, got %v", err)
	}

	// The collection reflects the new backend, not the stale write.
	for _, c := range m.Categories() {
		if c.Name == "Math" {
			t.Error("stale result was committed")
		}
	}
}

func TestBulkDeleteCollapsesDuplicates(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	general := m.Categories()[0]
	a, _ := m.AddFlashcard(ctx, "q1", "a1", general.ID)
	b, _ := m.AddFlashcard(ctx, "q2", "a2", general.ID)
	c, err := m.AddFlashcard(ctx, "q3", "a3", general.ID)
	if err != nil {
		t.Fatalf("AddFlashcard: %v", err)
	}

	if err := m.BulkDeleteFlashcards(ctx, []string{a.ID, b.ID, a.ID, "no-such-id"}); err != nil {
		t.Fatalf("BulkDeleteFlashcards: %v", err)
	}

	if got := len(m.Flashcards()); got != 1 {
		t.Fatalf("expected 1 flashcard left, got %d", got)
	}
	if _, ok := m.FlashcardByID(c.ID); !ok {
		t.Error("surviving flashcard missing")
	}
}

func TestFlashcardRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	general := m.Categories()[0]
	baseline := len(m.Flashcards())

	card, err := m.AddFlashcard(ctx, "What is Go?", "A language", general.ID)
	if err != nil {
		t.Fatalf("AddFlashcard: %v", err)
	}

	updated, err := m.UpdateFlashcard(ctx, card.ID, "What is Go?", "A programming language", general.ID)
	if err != nil {
		t.Fatalf("UpdateFlashcard: %v", err)
	}
	if updated.Answer != "A programming language" {
		t.Errorf("update not applied: %+v", updated)
	}

	if err := m.DeleteFlashcard(ctx, card.ID); err != nil {
		t.Fatalf("DeleteFlashcard: %v", err)
	}
	if got := len(m.Flashcards()); got != baseline {
		t.Errorf("expected %d flashcards after round trip, got %d", baseline, got)
	}
}

func TestFlashcardValidation(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	general := m.Categories()[0]

	if _, err := m.AddFlashcard(ctx, "  ", "a", general.ID); !errors.Is(err, ErrQuestionRequired) {
		t.Errorf("expected ErrQuestionRequired, got %v", err)
	}
	if _, err := m.AddFlashcard(ctx, "q", "a", "no-such-id"); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
	if err := m.DeleteFlashcard(ctx, "no-such-id"); !errors.Is(err, ErrFlashcardNotFound) {
		t.Errorf("expected ErrFlashcardNotFound, got %v", err)
	}
	// Empty answer is allowed.
	if _, err := m.AddFlashcard(ctx, "q", "", general.ID); err != nil {
		t.Errorf("empty answer rejected: %v", err)
	}
}
