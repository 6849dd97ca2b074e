package main

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// spellingCharPattern matches the characters Spelling Gene accepts before
// the puzzle's own letter set is consulted.
var spellingCharPattern = regexp.MustCompile(`^[A-Z\-]$`)

// NewSpellingGame initializes a Spelling Gene session from the oracle's
// puzzle description. An empty puzzle (failed fetch) yields a board with no
// playable letters.
func NewSpellingGame(seed uint64, puzzle SpellingPuzzle) *SpellingGame {
	game := &SpellingGame{
		Seed:         seed,
		OuterLetters: puzzle.OuterLetters,
		CenterLetter: puzzle.CenterLetter,
		Guessed:      []string{},
	}
	if game.OuterLetters == nil {
		game.OuterLetters = []string{}
	}
	if len(game.OuterLetters) == 0 && game.CenterLetter == "" {
		game.Message = MsgNoPuzzle
	}
	return game
}

// Params identifies this game's puzzle instance for oracle calls.
func (s *SpellingGame) Params() SpellingParams {
	return SpellingParams{
		Seed:       s.Seed,
		MinLength:  SpellingMinLength,
		MinWords:   SpellingMinWords,
		NumLetters: SpellingNumLetters,
	}
}

// letterAllowed reports whether the puzzle contains the letter at all.
func (s *SpellingGame) letterAllowed(ch string) bool {
	return ch == s.CenterLetter || lo.Contains(s.OuterLetters, ch)
}

// AppendLetter adds one letter to the guess being built, from either the
// keyboard or a tile click. Letters outside the puzzle's set, and any input
// while a validity check is outstanding, are silently ignored.
func (s *SpellingGame) AppendLetter(ch string) {
	if s.InFlight {
		return
	}
	ch = strings.ToUpper(ch)
	if !spellingCharPattern.MatchString(ch) || !s.letterAllowed(ch) {
		return
	}
	s.CurrentGuess += ch
}

// DeleteLetter removes the last letter of the guess being built and clears
// any displayed message.
func (s *SpellingGame) DeleteLetter() {
	if s.InFlight {
		return
	}
	s.Message = ""
	if s.CurrentGuess == "" {
		return
	}
	s.CurrentGuess = s.CurrentGuess[:len(s.CurrentGuess)-1]
}

// BeginSubmit decides whether the current guess is worth an oracle call.
// Too-short guesses and guesses already found are cleared without any call
// and without mutating the score or the guessed set.
func (s *SpellingGame) BeginSubmit() (string, bool) {
	if s.InFlight {
		return "", false
	}
	guess := s.CurrentGuess
	if len(guess) < SpellingMinLength || lo.Contains(s.Guessed, guess) {
		s.CurrentGuess = ""
		return "", false
	}
	s.InFlight = true
	return guess, true
}

// FinishSubmit applies the oracle's validity answer. An accepted guess
// joins the guessed set and scores its length; a rejected guess is dropped
// silently; a transport failure is dropped with a visible message. The
// input is cleared on every path.
func (s *SpellingGame) FinishSubmit(guess string, accepted bool, err error) {
	s.InFlight = false
	s.CurrentGuess = ""
	if err != nil {
		s.Message = MsgOracleUnreachable
		return
	}
	s.Message = ""
	if !accepted {
		return
	}
	s.Guessed = append(s.Guessed, guess)
	s.Score += len(guess)
}
