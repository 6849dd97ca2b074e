package main

import (
	"errors"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// genedleCharPattern matches the characters a gene symbol may contain.
var genedleCharPattern = regexp.MustCompile(`^[A-Za-z0-9\-.]$`)

// stateRank orders letter states from least to most informative. Keyboard
// feedback only ever moves up this ranking, never back down.
var stateRank = map[string]int{
	LetterStateEmpty:   0,
	LetterStateAbsent:  1,
	LetterStatePresent: 2,
	LetterStateCorrect: 3,
}

// rejectionMessages maps oracle reason codes to user-facing text.
var rejectionMessages = map[string]string{
	ReasonNotEnoughLetters: MsgNotEnoughLetters,
	ReasonTooManyLetters:   MsgTooManyLetters,
	ReasonInvalidLetter:    MsgInvalidLetter,
	ReasonNotInCorpus:      MsgNotInCorpus,
	ReasonInternalError:    MsgInternalError,
}

var (
	errGameOver      = errors.New(MsgGameOver)
	errCheckInFlight = errors.New(MsgCheckInFlight)
)

// NewGenedleGame initializes a Genedle session for a seed. The mode
// defaults to hard; the word length comes from a prior oracle fetch and may
// be zero when that fetch failed, which leaves the board unplayable until
// the next new-game.
func NewGenedleGame(seed uint64, wordLength int, mode string) *GenedleGame {
	if mode != ModeNormal {
		mode = ModeHard
	}
	return &GenedleGame{
		Seed:       seed,
		WordLength: wordLength,
		Mode:       mode,
		Attempts:   []Attempt{},
		Keyboard:   map[string]string{},
		Status:     StatusInProgress,
	}
}

// AppendCharacter adds one character to the row being typed. Characters
// outside the accepted set, input past the word length, and input while the
// game is over or a check is outstanding are silently ignored.
func (g *GenedleGame) AppendCharacter(ch string) {
	if g.Status != StatusInProgress || g.InFlight {
		return
	}
	if g.WordLength <= 0 || len([]rune(g.CurrentInput)) >= g.WordLength {
		return
	}
	if !genedleCharPattern.MatchString(ch) {
		return
	}
	g.CurrentInput += strings.ToUpper(ch)
}

// DeleteCharacter removes the last typed character and clears any displayed
// message. It is a no-op while the game is over or a check is outstanding.
func (g *GenedleGame) DeleteCharacter() {
	if g.Status != StatusInProgress || g.InFlight {
		return
	}
	g.Message = ""
	if g.CurrentInput == "" {
		return
	}
	runes := []rune(g.CurrentInput)
	g.CurrentInput = string(runes[:len(runes)-1])
}

// BeginSubmit marks the session as waiting on the oracle and returns the
// word to validate. It refuses, without mutating anything, when the game is
// over or another submission is already outstanding. Every BeginSubmit must
// be paired with a FinishSubmit so the in-flight flag is always released.
func (g *GenedleGame) BeginSubmit() (string, error) {
	if g.Status != StatusInProgress {
		return "", errGameOver
	}
	if g.InFlight {
		return "", errCheckInFlight
	}
	g.InFlight = true
	return g.CurrentInput, nil
}

// FinishSubmit applies the oracle's verdict for the word returned by
// BeginSubmit. A transport failure or a rejection surfaces a message and
// records nothing: the attempt list, turn counter and keyboard are only
// touched by the accepted branch.
func (g *GenedleGame) FinishSubmit(word string, verdict GuessVerdict, err error) {
	g.InFlight = false
	if err != nil {
		g.Message = MsgOracleUnreachable
		return
	}
	if !verdict.Valid {
		g.Message = rejectionMessage(verdict.Reason)
		return
	}

	letters := strings.Split(word, "")
	attempt := Attempt{
		Word: word,
		Results: lo.Map(verdict.Result, func(state string, i int) LetterResult {
			lr := LetterResult{State: state}
			if i < len(letters) {
				lr.Letter = letters[i]
			}
			return lr
		}),
	}
	g.Attempts = append(g.Attempts, attempt)
	g.CurrentInput = ""
	g.foldIntoKeyboard(attempt)

	switch {
	case verdict.IsCorrect:
		g.Status = StatusWon
		g.Message = MsgWon
	case len(g.Attempts) >= GenedleMaxAttempts:
		g.Status = StatusLost
		g.Message = MsgLost
	default:
		g.Message = ""
	}
}

// foldIntoKeyboard upgrades each letter to the best state ever observed for
// it. Submission order is irrelevant: correct beats present beats absent.
func (g *GenedleGame) foldIntoKeyboard(attempt Attempt) {
	for _, lr := range attempt.Results {
		if stateRank[lr.State] > stateRank[g.Keyboard[lr.Letter]] {
			g.Keyboard[lr.Letter] = lr.State
		}
	}
}

// Rows returns the full board for rendering: recorded attempts, then the
// row being typed, then blank rows up to the attempt limit.
func (g *GenedleGame) Rows() [][]LetterResult {
	rows := lo.Map(g.Attempts, func(a Attempt, _ int) []LetterResult {
		return a.Results
	})
	if g.Status == StatusInProgress && len(rows) < GenedleMaxAttempts {
		typed := []rune(g.CurrentInput)
		current := lo.Times(g.WordLength, func(i int) LetterResult {
			lr := LetterResult{State: LetterStateEmpty}
			if i < len(typed) {
				lr.Letter = string(typed[i])
			}
			return lr
		})
		rows = append(rows, current)
	}
	for len(rows) < GenedleMaxAttempts {
		rows = append(rows, lo.Times(g.WordLength, func(_ int) LetterResult {
			return LetterResult{State: LetterStateEmpty}
		}))
	}
	return rows
}

// Turn reports how many attempts have been consumed.
func (g *GenedleGame) Turn() int {
	return len(g.Attempts)
}

// keyState pairs an on-screen key with its feedback class for rendering.
type keyState struct {
	Key   string
	State string
}

// keyboardLayout is every character a gene symbol may contain, arranged as
// on-screen key rows.
var keyboardLayout = []string{
	"QWERTYUIOP",
	"ASDFGHJKL",
	"ZXCVBNM-.",
	"1234567890",
}

// KeyboardRows returns the on-screen keyboard with the best-known state for
// each key folded in.
func (g *GenedleGame) KeyboardRows() [][]keyState {
	return lo.Map(keyboardLayout, func(row string, _ int) []keyState {
		return lo.Map(strings.Split(row, ""), func(key string, _ int) keyState {
			return keyState{Key: key, State: g.Keyboard[key]}
		})
	})
}

// rejectionMessage maps an oracle reason code to its user-facing message,
// with a generic fallback for codes this client does not know.
func rejectionMessage(reason string) string {
	if msg, ok := rejectionMessages[reason]; ok {
		return msg
	}
	logWarn("Oracle returned unknown rejection reason: %q", reason)
	return MsgUnknownRejection
}
