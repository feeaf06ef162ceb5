// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import (
	"context"
	"testing"
)

func seedFilterFixture(t *testing.T) (*Manager, Category, Category) {
	t.Helper()
	ctx := context.Background()
	m := newTestManager(t)

	math, err := m.AddCategory(ctx, "Math", "")
	if err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	physics, err := m.AddCategory(ctx, "Physics", "")
	if err != nil {
		t.Fatalf("AddCategory: %v", err)
	}

	fixtures := []struct {
		q, a string
		cat  string
	}{
		{"What is 2+2?", "4", math.ID},
		{"Derivative of x^2?", "2x", math.ID},
		{"What is F=ma?", "Newton's second law", physics.ID},
		{"Speed of light?", "299792458 m/s", physics.ID},
	}
	for _, f := range fixtures {
		if _, err := m.AddFlashcard(ctx, f.q, f.a, f.cat); err != nil {
			t.Fatalf("AddFlashcard(%q): %v", f.q, err)
		}
	}
	return m, math, physics
}

func TestFilterNoCriteria(t *testing.T) {
	m, _, _ := seedFilterFixture(t)

	got := m.Filter("", "")
	all := m.Flashcards()
	if len(got) != len(all) {
		t.Fatalf("expected full collection (%d), got %d", len(all), len(got))
	}
	for i := range all {
		if got[i] != all[i] {
			t.Errorf("order not preserved at %d: %+v != %+v", i, got[i], all[i])
		}
	}
}

func TestFilterByCategory(t *testing.T) {
	m, math, _ := seedFilterFixture(t)

	got := m.Filter(math.ID, "")
	if len(got) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(got))
	}
	for _, f := range got {
		if f.CategoryID != math.ID {
			t.Errorf("card %q in wrong category", f.Question)
		}
	}
}

func TestFilterBySearch(t *testing.T) {
	m, _, _ := seedFilterFixture(t)

	// Case-insensitive, matches either side, surrounding whitespace ignored.
	got := m.Filter("", "  NEWTON  ")
	if len(got) != 1 || got[0].Question != "What is F=ma?" {
		t.Fatalf("unexpected result: %+v", got)
	}

	// Blank after trimming matches everything.
	if got := m.Filter("", "   "); len(got) != len(m.Flashcards()) {
		t.Errorf("blank needle should match all, got %d", len(got))
	}
}

func TestFilterComposesCriteria(t *testing.T) {
	m, math, physics := seedFilterFixture(t)

	// "what" matches one card in each category; the category narrows it.
	got := m.Filter(math.ID, "what")
	if len(got) != 1 || got[0].Question != "What is 2+2?" {
		t.Fatalf("unexpected result: %+v", got)
	}
	got = m.Filter(physics.ID, "what")
	if len(got) != 1 || got[0].Question != "What is F=ma?" {
		t.Fatalf("unexpected result: %+v", got)
	}

	// No intersection.
	if got := m.Filter(math.ID, "newton"); len(got) != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}
}
