package main

import (
	"context"
	"errors"
	"testing"
)

func newTestSpelling() *SpellingGame {
	return NewSpellingGame(testSeed, SpellingPuzzle{
		OuterLetters: []string{"B", "R", "C", "T", "G", "-"},
		CenterLetter: "A",
	})
}

func spellWord(s *SpellingGame, word string) {
	for _, ch := range word {
		s.AppendLetter(string(ch))
	}
}

func submitSpellingVia(s *SpellingGame, oracle Oracle) {
	sess := &PlayerSession{Spelling: s}
	sess.SubmitSpellingGuess(context.Background(), oracle)
}

func TestAppendLetterFiltering(t *testing.T) {
	s := newTestSpelling()

	spellWord(s, "brca")
	if s.CurrentGuess != "BRCA" {
		t.Errorf("CurrentGuess = %q, want BRCA", s.CurrentGuess)
	}

	// Letters outside the puzzle set, digits and noise are ignored.
	before := s.CurrentGuess
	for _, ch := range []string{"Z", "Q", "5", ".", "", "AB"} {
		s.AppendLetter(ch)
	}
	if s.CurrentGuess != before {
		t.Errorf("Disallowed letters mutated guess: %q", s.CurrentGuess)
	}

	s.AppendLetter("-") // hyphen is part of this puzzle's set
	if s.CurrentGuess != "BRCA-" {
		t.Errorf("CurrentGuess = %q, want BRCA-", s.CurrentGuess)
	}

	s.InFlight = true
	s.AppendLetter("A")
	if s.CurrentGuess != "BRCA-" {
		t.Error("AppendLetter accepted input while a check was outstanding")
	}
}

func TestDeleteLetter(t *testing.T) {
	s := newTestSpelling()
	spellWord(s, "BRCA")
	s.Message = MsgOracleUnreachable

	s.DeleteLetter()
	if s.CurrentGuess != "BRC" {
		t.Errorf("CurrentGuess = %q, want BRC", s.CurrentGuess)
	}
	if s.Message != "" {
		t.Error("DeleteLetter did not clear the message")
	}

	s.CurrentGuess = ""
	s.DeleteLetter()
	if s.CurrentGuess != "" {
		t.Error("DeleteLetter mutated empty guess")
	}
}

func TestSubmitTooShortIsLocalNoOp(t *testing.T) {
	s := newTestSpelling()
	spellWord(s, "AB")
	oracle := &scriptedOracle{spellingOK: true}

	submitSpellingVia(s, oracle)

	if oracle.spellingCalls != 0 {
		t.Errorf("short guess reached the oracle (%d calls)", oracle.spellingCalls)
	}
	if s.CurrentGuess != "" {
		t.Errorf("CurrentGuess = %q, want cleared", s.CurrentGuess)
	}
	if s.Score != 0 || len(s.Guessed) != 0 {
		t.Error("short guess mutated score or guessed set")
	}
}

func TestSubmitDuplicateIsLocalNoOp(t *testing.T) {
	s := newTestSpelling()
	s.Guessed = []string{"BRCA"}
	s.Score = 4
	spellWord(s, "BRCA")
	oracle := &scriptedOracle{spellingOK: true}

	submitSpellingVia(s, oracle)

	if oracle.spellingCalls != 0 {
		t.Error("duplicate guess reached the oracle")
	}
	if s.Score != 4 || len(s.Guessed) != 1 {
		t.Error("duplicate guess mutated score or guessed set")
	}
	if s.CurrentGuess != "" {
		t.Error("duplicate guess left input in place")
	}
}

func TestSubmitAcceptedScores(t *testing.T) {
	s := newTestSpelling()
	oracle := &scriptedOracle{spellingOK: true}

	spellWord(s, "BRCA")
	submitSpellingVia(s, oracle)
	if s.Score != 4 || len(s.Guessed) != 1 || s.Guessed[0] != "BRCA" {
		t.Fatalf("after BRCA: score=%d guessed=%v", s.Score, s.Guessed)
	}

	spellWord(s, "GATA-")
	submitSpellingVia(s, oracle)
	if s.Score != 9 || len(s.Guessed) != 2 {
		t.Errorf("after GATA-: score=%d guessed=%v", s.Score, s.Guessed)
	}
	if s.Message != "" {
		t.Errorf("accepted guess left message %q", s.Message)
	}
}

func TestSubmitRejectedClearsSilently(t *testing.T) {
	s := newTestSpelling()
	oracle := &scriptedOracle{spellingOK: false}

	spellWord(s, "CTGA")
	submitSpellingVia(s, oracle)

	if oracle.spellingCalls != 1 {
		t.Errorf("spellingCalls = %d, want 1", oracle.spellingCalls)
	}
	if s.Score != 0 || len(s.Guessed) != 0 {
		t.Error("rejected guess mutated score or guessed set")
	}
	if s.CurrentGuess != "" {
		t.Error("rejected guess left input in place")
	}
	if s.Message != "" {
		t.Errorf("corpus rejection surfaced message %q, want silence", s.Message)
	}
}

func TestSubmitTransportFailureSurfacesMessage(t *testing.T) {
	s := newTestSpelling()
	oracle := &scriptedOracle{spellingErr: errors.New("timeout")}

	spellWord(s, "CTGA")
	submitSpellingVia(s, oracle)

	if s.Score != 0 || len(s.Guessed) != 0 {
		t.Error("transport failure mutated score or guessed set")
	}
	if s.Message != MsgOracleUnreachable {
		t.Errorf("Message = %q, want %q", s.Message, MsgOracleUnreachable)
	}
	if s.InFlight {
		t.Error("in-flight flag not released after transport failure")
	}
}

func TestSubmitWhileInFlightRefusedSpelling(t *testing.T) {
	s := newTestSpelling()
	spellWord(s, "BRCA")

	guess, ok := s.BeginSubmit()
	if !ok || guess != "BRCA" {
		t.Fatalf("BeginSubmit = (%q, %v)", guess, ok)
	}
	if _, ok := s.BeginSubmit(); ok {
		t.Error("second BeginSubmit accepted while a check was outstanding")
	}
	s.FinishSubmit(guess, true, nil)
	if s.InFlight {
		t.Error("FinishSubmit did not release the in-flight flag")
	}
}

func TestEmptyPuzzleGetsMessage(t *testing.T) {
	s := NewSpellingGame(testSeed, SpellingPuzzle{})
	if s.Message != MsgNoPuzzle {
		t.Errorf("Message = %q, want %q", s.Message, MsgNoPuzzle)
	}
	s.AppendLetter("A")
	if s.CurrentGuess != "" {
		t.Error("empty puzzle accepted a letter")
	}
}
