// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import (
	"context"
	"testing"

	"github.com/mtreilly/arc-recall/internal/store"
)

func TestLocalBackendSeedsGeneralOnce(t *testing.T) {
	ctx := context.Background()
	l := NewLocalBackend(store.NewMemoryStore())

	first, err := l.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(first) != 1 || first[0].Name != GeneralCategory {
		t.Fatalf("expected seeded General, got %+v", first)
	}

	second, err := l.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("General seeded twice: %+v", second)
	}
	if second[0].ID != first[0].ID {
		t.Error("seeded General id changed between lists")
	}
}

func TestLocalBackendCreateAssignsFreshIDs(t *testing.T) {
	ctx := context.Background()
	l := NewLocalBackend(store.NewMemoryStore())

	a, err := l.CreateCategory(ctx, "Physics", "")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	b, err := l.CreateCategory(ctx, "Physics", "")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if a.ID == "" || b.ID == "" {
		t.Fatal("created category missing id")
	}
	if a.ID == b.ID {
		t.Error("two creates shared an id")
	}
}

func TestLocalBackendPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()

	l := NewLocalBackend(kv)
	cat, err := l.CreateCategory(ctx, "Physics", "")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	card, err := l.CreateFlashcard(ctx, "F=?", "ma", cat.ID)
	if err != nil {
		t.Fatalf("CreateFlashcard: %v", err)
	}

	// A fresh backend over the same store reproduces the exact entities.
	fresh := NewLocalBackend(kv)
	cats, err := fresh.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	found := false
	for _, c := range cats {
		if c.ID == cat.ID && c.Name == "Physics" {
			found = true
		}
	}
	if !found {
		t.Errorf("created category not reproduced: %+v", cats)
	}

	cards, err := fresh.ListFlashcards(ctx)
	if err != nil {
		t.Fatalf("ListFlashcards: %v", err)
	}
	if len(cards) != 1 || cards[0] != *card {
		t.Errorf("created flashcard not reproduced: %+v", cards)
	}
}

func TestLocalBackendUpdateMissingEntity(t *testing.T) {
	ctx := context.Background()
	l := NewLocalBackend(store.NewMemoryStore())

	if _, err := l.UpdateCategory(ctx, "nope", "X", ""); err == nil {
		t.Error("expected error updating missing category")
	}
	if _, err := l.UpdateFlashcard(ctx, "nope", "q", "a", "c"); err == nil {
		t.Error("expected error updating missing flashcard")
	}
}
