package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// renderGenedle writes the Genedle board, either as an HTMX fragment or as
// the full page. A non-empty message also goes out as an HX-Trigger payload
// so the client can announce it. Callers hold the session lock.
func (app *App) renderGenedle(c *gin.Context, game *GenedleGame) {
	if game.Message != "" {
		payload := map[string]string{"game_message": game.Message}
		if b, err := json.Marshal(payload); err == nil {
			c.Header("HX-Trigger", string(b))
		} else {
			logWarn("Failed to marshal HX-Trigger payload: %v", err)
		}
	}
	if c.GetHeader("HX-Request") == "true" {
		c.HTML(http.StatusOK, "genedle-board", gin.H{"game": game})
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title": "Genedle - Wordle for gene symbols",
		"game":  game,
	})
}

// renderSpelling is the Spelling Gene counterpart of renderGenedle.
func (app *App) renderSpelling(c *gin.Context, game *SpellingGame) {
	if game.Message != "" {
		payload := map[string]string{"game_message": game.Message}
		if b, err := json.Marshal(payload); err == nil {
			c.Header("HX-Trigger", string(b))
		} else {
			logWarn("Failed to marshal HX-Trigger payload: %v", err)
		}
	}
	if c.GetHeader("HX-Request") == "true" {
		c.HTML(http.StatusOK, "spelling-board", gin.H{"game": game})
		return
	}
	c.HTML(http.StatusOK, "spelling.html", gin.H{
		"title": "Spelling Gene",
		"game":  game,
	})
}

// homeHandler renders the Genedle page for the current session.
func (app *App) homeHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	sess := app.getPlayerSession(c.Request.Context(), sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	app.renderGenedle(c, sess.Genedle)
}

// genedleStateHandler renders the current Genedle board as a fragment.
func (app *App) genedleStateHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	sess := app.getPlayerSession(c.Request.Context(), sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	c.HTML(http.StatusOK, "genedle-board", gin.H{"game": sess.Genedle})
}

// genedleKeyHandler accumulates one typed character into the current row.
func (app *App) genedleKeyHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	sess := app.getPlayerSession(c.Request.Context(), sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.Genedle.AppendCharacter(c.PostForm("letter"))
	app.savePlayerSession(sessionID, sess)
	app.renderGenedle(c, sess.Genedle)
}

// genedleDeleteHandler removes the last typed character.
func (app *App) genedleDeleteHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	sess := app.getPlayerSession(c.Request.Context(), sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.Genedle.DeleteCharacter()
	app.savePlayerSession(sessionID, sess)
	app.renderGenedle(c, sess.Genedle)
}

// genedleGuessHandler submits the typed word to the oracle and applies the
// verdict.
func (app *App) genedleGuessHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)
	sess := app.getPlayerSession(ctx, sessionID)

	sess.SubmitGenedleGuess(ctx, app.Oracle)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	app.savePlayerSession(sessionID, sess)
	app.renderGenedle(c, sess.Genedle)
}

// genedleNewGameHandler resets the Genedle session for today's seed,
// optionally rotating the session cookie (?reset=1) and switching mode.
func (app *App) genedleNewGameHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)

	if c.Query("reset") == "1" {
		c.SetSameSite(http.SameSiteStrictMode)
		secure := app.IsProduction
		c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
		newSessionID := uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(SessionCookieName, newSessionID, int(app.CookieMaxAge.Seconds()), "/", "", secure, true)
		logInfo("Rotated session ID: %s -> %s", sessionID, newSessionID)
		sessionID = newSessionID
	}

	mode := c.PostForm("mode")
	if mode != ModeNormal {
		mode = ModeHard
	}
	game := app.newGenedleGame(ctx, dailySeed(time.Now()), mode)

	sess := app.getPlayerSession(ctx, sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.Genedle = game
	app.savePlayerSession(sessionID, sess)
	logInfo("New Genedle game for session %s (mode %s)", sessionID, mode)

	if c.GetHeader("HX-Request") == "true" {
		app.renderGenedle(c, sess.Genedle)
		return
	}
	c.Redirect(http.StatusSeeOther, RouteHome)
}

// spellingHandler renders the Spelling Gene page for the current session.
func (app *App) spellingHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	sess := app.getPlayerSession(c.Request.Context(), sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	app.renderSpelling(c, sess.Spelling)
}

// spellingStateHandler renders the current Spelling Gene board fragment.
func (app *App) spellingStateHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	sess := app.getPlayerSession(c.Request.Context(), sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	c.HTML(http.StatusOK, "spelling-board", gin.H{"game": sess.Spelling})
}

// spellingLetterHandler appends one clicked or typed letter to the guess.
func (app *App) spellingLetterHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	sess := app.getPlayerSession(c.Request.Context(), sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.Spelling.AppendLetter(c.PostForm("letter"))
	app.savePlayerSession(sessionID, sess)
	app.renderSpelling(c, sess.Spelling)
}

// spellingDeleteHandler removes the last letter of the guess being built.
func (app *App) spellingDeleteHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	sess := app.getPlayerSession(c.Request.Context(), sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.Spelling.DeleteLetter()
	app.savePlayerSession(sessionID, sess)
	app.renderSpelling(c, sess.Spelling)
}

// spellingGuessHandler submits the built guess for a validity check.
func (app *App) spellingGuessHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)
	sess := app.getPlayerSession(ctx, sessionID)

	sess.SubmitSpellingGuess(ctx, app.Oracle)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	app.savePlayerSession(sessionID, sess)
	app.renderSpelling(c, sess.Spelling)
}

// spellingNewGameHandler refetches today's puzzle and resets score and
// guessed words for the session.
func (app *App) spellingNewGameHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)
	game := app.newSpellingGame(ctx, dailySeed(time.Now()))

	sess := app.getPlayerSession(ctx, sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.Spelling = game
	app.savePlayerSession(sessionID, sess)
	logInfo("New Spelling Gene game for session %s", sessionID)

	if c.GetHeader("HX-Request") == "true" {
		app.renderSpelling(c, sess.Spelling)
		return
	}
	c.Redirect(http.StatusSeeOther, RouteSpelling)
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	uptime := time.Since(app.StartTime)
	app.SessionMutex.RLock()
	sessions := len(app.Sessions)
	app.SessionMutex.RUnlock()
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"env":       map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"sessions":  sessions,
		"oracle":    app.OracleBaseURL,
		"uptime":    formatUptime(uptime),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
