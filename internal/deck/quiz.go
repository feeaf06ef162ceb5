// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

// Quiz is one self-paced study session over a snapshot of cards. It owns a
// shuffled copy of its source deck; later collection edits never reach a
// running session.
type Quiz struct {
	id     string
	source []Flashcard
	deck   []Flashcard
	index  int
	score  int
}

// NewQuiz starts a session over a copy of the given cards. Starting with an
// empty deck is refused.
func NewQuiz(cards []Flashcard) (*Quiz, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyDeck
	}
	q := &Quiz{
		id:     uuid.NewString(),
		source: make([]Flashcard, len(cards)),
	}
	copy(q.source, cards)
	q.reshuffle()
	return q, nil
}

func (q *Quiz) reshuffle() {
	q.deck = make([]Flashcard, len(q.source))
	copy(q.deck, q.source)
	rand.Shuffle(len(q.deck), func(i, j int) {
		q.deck[i], q.deck[j] = q.deck[j], q.deck[i]
	})
	q.index = 0
	q.score = 0
}

// ID identifies this session.
func (q *Quiz) ID() string { return q.id }

// Current returns the card awaiting an answer. ok is false once the session
// has finished.
func (q *Quiz) Current() (Flashcard, bool) {
	if q.Finished() {
		return Flashcard{}, false
	}
	return q.deck[q.index], true
}

// Answer grades the current card and advances to the next one. Each card is
// graded exactly once per pass; answering a finished session is a no-op.
func (q *Quiz) Answer(correct bool) {
	if q.Finished() {
		return
	}
	if correct {
		q.score++
	}
	q.index++
}

// Restart reshuffles the same source cards and resets progress and score.
func (q *Quiz) Restart() {
	q.reshuffle()
}

// Score is the number of cards answered correctly so far.
func (q *Quiz) Score() int { return q.score }

// Index is the number of cards answered so far.
func (q *Quiz) Index() int { return q.index }

// Length is the total number of cards in the session.
func (q *Quiz) Length() int { return len(q.deck) }

// Finished reports whether every card has been answered.
func (q *Quiz) Finished() bool { return q.index >= len(q.deck) }
