// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import (
	"context"
	"sync"
)

// Manager is the single facade the rest of the tool talks to. It exclusively
// owns the in-memory Category and Flashcard collections for the lifetime of
// one authentication epoch and routes every physical mutation to the
// selected backend.
//
// Mutations follow one protocol: validate against current state, snapshot
// the epoch, call the backend outside the lock, then commit the in-memory
// patch only if the epoch is unchanged. A credential transition while a call
// is in flight bumps the epoch, so the stale result is discarded instead of
// applied.
type Manager struct {
	mu         sync.Mutex
	backend    Backend
	epoch      uint64
	categories []Category
	flashcards []Flashcard
}

// NewManager creates a facade over the given backend. Call Reload before
// reading collections.
func NewManager(b Backend) *Manager {
	return &Manager{backend: b}
}

// SwitchBackend installs a new backend after a credential transition,
// discards all in-memory state, and reloads from the new backend. No stale
// cross-backend data remains visible.
func (m *Manager) SwitchBackend(ctx context.Context, b Backend) error {
	m.mu.Lock()
	m.epoch++
	m.backend = b
	m.categories = nil
	m.flashcards = nil
	m.mu.Unlock()

	return m.Reload(ctx)
}

// Reload replaces both collections from the current backend.
func (m *Manager) Reload(ctx context.Context) error {
	backend, epoch := m.begin()

	cats, err := backend.ListCategories(ctx)
	if err != nil {
		return err
	}
	cards, err := backend.ListFlashcards(ctx)
	if err != nil {
		return err
	}

	return m.commit(epoch, func() {
		m.categories = cats
		m.flashcards = cards
	})
}

// begin snapshots the backend and epoch for one operation.
func (m *Manager) begin() (Backend, uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.backend, m.epoch
}

// commit applies an in-memory patch as a single state change, unless the
// epoch moved while the physical operation was in flight.
func (m *Manager) commit(epoch uint64, apply func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.epoch != epoch {
		return ErrStaleEpoch
	}
	apply()
	return nil
}

// Categories returns a copy of the category collection in insertion order.
func (m *Manager) Categories() []Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Category, len(m.categories))
	copy(out, m.categories)
	return out
}

// Flashcards returns a copy of the flashcard collection in insertion order.
func (m *Manager) Flashcards() []Flashcard {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Flashcard, len(m.flashcards))
	copy(out, m.flashcards)
	return out
}

// Snapshot captures the full current state for backup export.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := Snapshot{
		Categories: make([]Category, len(m.categories)),
		Flashcards: make([]Flashcard, len(m.flashcards)),
	}
	copy(snap.Categories, m.categories)
	copy(snap.Flashcards, m.flashcards)
	return snap
}
