package main

import (
	"sync"
	"time"
)

// LetterResult is a single letter's evaluation as reported by the oracle.
type LetterResult struct {
	Letter string `json:"letter"`
	State  string `json:"state"`
}

// Attempt is one fully evaluated guess row. It is produced atomically by a
// single oracle call and never modified afterwards.
type Attempt struct {
	Word    string         `json:"word"`
	Results []LetterResult `json:"results"`
}

// GenedleGame is a player's Genedle session: a bounded sequence of
// attempts, the row being typed, and the best-known state per keyboard key.
type GenedleGame struct {
	Seed         uint64            `json:"seed"`
	WordLength   int               `json:"wordLength"`
	Mode         string            `json:"mode"`
	Attempts     []Attempt         `json:"attempts"`
	CurrentInput string            `json:"currentInput"`
	Keyboard     map[string]string `json:"keyboard"`
	Status       string            `json:"status"`
	Message      string            `json:"message"`
	InFlight     bool              `json:"-"` // true while an oracle call is outstanding
}

// SpellingGame is a player's Spelling Gene session. The puzzle never ends;
// the guessed set and score only grow.
type SpellingGame struct {
	Seed         uint64   `json:"seed"`
	OuterLetters []string `json:"outerLetters"`
	CenterLetter string   `json:"centerLetter"`
	CurrentGuess string   `json:"currentGuess"`
	Guessed      []string `json:"guessed"`
	Score        int      `json:"score"`
	Message      string   `json:"message"`
	InFlight     bool     `json:"-"`
}

// PlayerSession bundles one browser session's games. mu serializes all
// state transitions and reads for the session: concurrent requests on the
// same cookie are real, and the games' in-flight flags are only meaningful
// when checked and set under it.
type PlayerSession struct {
	mu             sync.Mutex
	Genedle        *GenedleGame  `json:"genedle"`
	Spelling       *SpellingGame `json:"spelling"`
	LastAccessTime time.Time     `json:"lastAccessTime"`
}

// GuessRequest is the body of a Genedle guess submission.
type GuessRequest struct {
	Word    []string `json:"word"`
	Session uint64   `json:"session"`
	Mode    string   `json:"mode"`
}

// GuessVerdict is the decoded oracle response to a guess submission.
// Exactly one of the two variants is populated: a rejection carries a
// Reason code, an accepted guess carries IsCorrect and per-letter Result.
type GuessVerdict struct {
	Valid     bool
	Reason    string
	IsCorrect bool
	Result    []string
}

// SpellingParams identifies a Spelling Gene puzzle instance.
type SpellingParams struct {
	Seed       uint64
	MinLength  int
	MinWords   int
	NumLetters int
}

// SpellingPuzzle is the oracle's description of a puzzle's letters.
type SpellingPuzzle struct {
	OuterLetters []string `json:"outer_letters"`
	CenterLetter string   `json:"center_letter"`
}

type contextKey string
