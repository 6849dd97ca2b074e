package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// getOrCreateSession retrieves the session ID from the cookie or creates a new one.
func (app *App) getOrCreateSession(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || len(sessionID) < 10 {
		sessionID = uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		secure := app.IsProduction
		c.SetCookie(SessionCookieName, sessionID, int(app.CookieMaxAge.Seconds()), "/", "", secure, true)
		logInfo("Created new session: %s", sessionID)
	}
	return sessionID
}

// getPlayerSession retrieves the session's games, restoring from disk when
// possible. A fresh session is started on the first visit and whenever the
// daily seed has rolled over since the stored games were created.
func (app *App) getPlayerSession(ctx context.Context, sessionID string) *PlayerSession {
	seed := dailySeed(time.Now())

	app.SessionMutex.RLock()
	sess, exists := app.Sessions[sessionID]
	app.SessionMutex.RUnlock()
	if exists {
		sess.mu.Lock()
		current := sess.Genedle != nil && sess.Genedle.Seed == seed
		if current {
			sess.LastAccessTime = time.Now()
		}
		sess.mu.Unlock()
		if current {
			return sess
		}
		logInfo("Daily seed rolled over for session %s, starting fresh games", sessionID)
	}

	if restored, err := app.loadPlayerSessionFromFile(sessionID); err == nil && restored.Genedle.Seed == seed {
		logInfo("Restored session %s from disk", sessionID)
		app.SessionMutex.Lock()
		app.Sessions[sessionID] = restored
		app.SessionMutex.Unlock()
		return restored
	}

	return app.newPlayerSession(ctx, sessionID)
}

// newPlayerSession builds today's games for a session and stores them.
func (app *App) newPlayerSession(ctx context.Context, sessionID string) *PlayerSession {
	seed := dailySeed(time.Now())
	logInfo("Creating new games for session %s (seed %d)", sessionID, seed)
	sess := &PlayerSession{
		Genedle:        app.newGenedleGame(ctx, seed, ModeHard),
		Spelling:       app.newSpellingGame(ctx, seed),
		LastAccessTime: time.Now(),
	}
	app.SessionMutex.Lock()
	app.Sessions[sessionID] = sess
	app.SessionMutex.Unlock()
	return sess
}

// newGenedleGame fetches the seed's word length and builds the game. On a
// fetch failure the board is created unplayable (length 0) with a message,
// so no session state is invented while the oracle is unreachable.
func (app *App) newGenedleGame(ctx context.Context, seed uint64, mode string) *GenedleGame {
	wordLength, err := app.Oracle.WordLength(ctx, seed)
	if err != nil {
		logWarn("Failed to fetch word length for seed %d: %v", seed, err)
		game := NewGenedleGame(seed, 0, mode)
		game.Message = MsgNoPuzzle
		return game
	}
	return NewGenedleGame(seed, wordLength, mode)
}

// newSpellingGame fetches the seed's puzzle letters and builds the game.
func (app *App) newSpellingGame(ctx context.Context, seed uint64) *SpellingGame {
	game := NewSpellingGame(seed, SpellingPuzzle{})
	puzzle, err := app.Oracle.SpellingPuzzle(ctx, game.Params())
	if err != nil {
		logWarn("Failed to fetch spelling puzzle for seed %d: %v", seed, err)
		return game
	}
	return NewSpellingGame(seed, puzzle)
}

// SubmitGenedleGuess runs one full Genedle submission cycle. The session
// lock is dropped for the duration of the oracle call; the in-flight flag
// set by BeginSubmit refuses re-entry and input edits in that window, and
// FinishSubmit always releases it.
func (p *PlayerSession) SubmitGenedleGuess(ctx context.Context, oracle Oracle) {
	reqID := requestIDFrom(ctx)

	p.mu.Lock()
	game := p.Genedle
	word, err := game.BeginSubmit()
	if err != nil {
		game.Message = err.Error()
		p.mu.Unlock()
		logWarn("[request_id=%v] Guess submission refused: %v", reqID, err)
		return
	}
	req := GuessRequest{Word: strings.Split(word, ""), Session: game.Seed, Mode: game.Mode}
	turn := game.Turn()
	p.mu.Unlock()

	logInfo("[request_id=%v] Genedle guess: %s (attempt %d/%d)", reqID, word, turn+1, GenedleMaxAttempts)
	verdict, oerr := oracle.SubmitGuess(ctx, req)
	if oerr != nil {
		logWarn("[request_id=%v] Oracle call failed: %v", reqID, oerr)
	}

	p.mu.Lock()
	game.FinishSubmit(word, verdict, oerr)
	p.mu.Unlock()
}

// SubmitSpellingGuess runs one full Spelling Gene guess cycle. Short and
// duplicate guesses never reach the oracle.
func (p *PlayerSession) SubmitSpellingGuess(ctx context.Context, oracle Oracle) {
	reqID := requestIDFrom(ctx)

	p.mu.Lock()
	game := p.Spelling
	guess, ok := game.BeginSubmit()
	if !ok {
		p.mu.Unlock()
		return
	}
	params := game.Params()
	p.mu.Unlock()

	logInfo("[request_id=%v] Spelling guess: %s", reqID, guess)
	accepted, err := oracle.CheckSpellingGuess(ctx, params, guess)
	if err != nil {
		logWarn("[request_id=%v] Spelling check failed: %v", reqID, err)
	}

	p.mu.Lock()
	game.FinishSubmit(guess, accepted, err)
	p.mu.Unlock()
}

// savePlayerSession updates the in-memory store and makes a best-effort
// write to disk. Callers hold the session lock.
func (app *App) savePlayerSession(sessionID string, sess *PlayerSession) {
	app.SessionMutex.Lock()
	app.Sessions[sessionID] = sess
	app.SessionMutex.Unlock()
	sess.LastAccessTime = time.Now()
	if err := app.savePlayerSessionToFile(sessionID, sess); err != nil {
		logWarn("Failed to persist session %s: %v", sessionID, err)
	}
}
