// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import (
	"errors"
	"testing"
)

func quizDeck(n int) []Flashcard {
	cards := make([]Flashcard, n)
	for i := range cards {
		cards[i] = Flashcard{
			ID:       string(rune('a' + i)),
			Question: "q" + string(rune('a'+i)),
			Answer:   "a" + string(rune('a'+i)),
		}
	}
	return cards
}

func TestNewQuizRejectsEmptyDeck(t *testing.T) {
	if _, err := NewQuiz(nil); !errors.Is(err, ErrEmptyDeck) {
		t.Errorf("expected ErrEmptyDeck, got %v", err)
	}
	if _, err := NewQuiz([]Flashcard{}); !errors.Is(err, ErrEmptyDeck) {
		t.Errorf("expected ErrEmptyDeck, got %v", err)
	}
}

func TestQuizDeckIsPermutationOfSource(t *testing.T) {
	source := quizDeck(10)
	quiz, err := NewQuiz(source)
	if err != nil {
		t.Fatalf("NewQuiz: %v", err)
	}
	if quiz.Length() != len(source) {
		t.Fatalf("expected %d cards, got %d", len(source), quiz.Length())
	}

	seen := make(map[string]bool)
	for !quiz.Finished() {
		card, ok := quiz.Current()
		if !ok {
			t.Fatal("Current returned !ok before Finished")
		}
		if seen[card.ID] {
			t.Fatalf("card %s shown twice", card.ID)
		}
		seen[card.ID] = true
		quiz.Answer(true)
	}
	if len(seen) != len(source) {
		t.Errorf("expected %d distinct cards, saw %d", len(source), len(seen))
	}
}

func TestQuizFinishesExactlyAfterLastCard(t *testing.T) {
	quiz, err := NewQuiz(quizDeck(5))
	if err != nil {
		t.Fatalf("NewQuiz: %v", err)
	}

	for i := 0; i < 5; i++ {
		if quiz.Finished() {
			t.Fatalf("finished early at %d", i)
		}
		quiz.Answer(i%2 == 0)
	}
	if !quiz.Finished() {
		t.Fatal("not finished after last answer")
	}
	if _, ok := quiz.Current(); ok {
		t.Error("Current should report !ok once finished")
	}
	if quiz.Score() != 3 {
		t.Errorf("expected score 3, got %d", quiz.Score())
	}

	// Answering past the end changes nothing.
	quiz.Answer(true)
	if quiz.Score() != 3 || quiz.Index() != 5 {
		t.Errorf("finished session mutated: score=%d index=%d", quiz.Score(), quiz.Index())
	}
}

func TestQuizRestartResetsProgress(t *testing.T) {
	quiz, err := NewQuiz(quizDeck(4))
	if err != nil {
		t.Fatalf("NewQuiz: %v", err)
	}
	for !quiz.Finished() {
		quiz.Answer(true)
	}

	quiz.Restart()
	if quiz.Finished() {
		t.Error("restarted session reports finished")
	}
	if quiz.Score() != 0 || quiz.Index() != 0 {
		t.Errorf("restart did not reset: score=%d index=%d", quiz.Score(), quiz.Index())
	}
	if quiz.Length() != 4 {
		t.Errorf("restart changed deck size: %d", quiz.Length())
	}
}

func TestQuizDoesNotMutateSource(t *testing.T) {
	source := quizDeck(8)
	want := make([]Flashcard, len(source))
	copy(want, source)

	quiz, err := NewQuiz(source)
	if err != nil {
		t.Fatalf("NewQuiz: %v", err)
	}
	for !quiz.Finished() {
		quiz.Answer(true)
	}
	quiz.Restart()

	for i := range want {
		if source[i] != want[i] {
			t.Fatalf("source mutated at %d: %+v != %+v", i, source[i], want[i])
		}
	}
}
