package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// savePlayerSessionToFile persists a session's games to disk.
func (app *App) savePlayerSessionToFile(sessionID string, sess *PlayerSession) error {
	if sessionID == "" || len(sessionID) < 10 {
		logWarn("Skipping save for invalid session ID: %s", sessionID)
		return nil
	}

	if err := os.MkdirAll(app.SessionDir, 0755); err != nil {
		logWarn("Failed to create sessions directory: %v", err)
		return err
	}

	sessionFile := filepath.Join(app.SessionDir, sessionID+".json")
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		logWarn("Failed to marshal session %s: %v", sessionID, err)
		return err
	}

	if err := os.WriteFile(sessionFile, data, 0644); err != nil {
		logWarn("Failed to write session file %s: %v", sessionFile, err)
		return err
	}
	return nil
}

// loadPlayerSessionFromFile restores a session's games from disk. Expired,
// corrupted or structurally invalid files are removed. The in-flight flags
// are always cleared on restore: an oracle call that was outstanding when
// the process died must not wedge the restored session.
func (app *App) loadPlayerSessionFromFile(sessionID string) (*PlayerSession, error) {
	if sessionID == "" || len(sessionID) < 10 {
		return nil, os.ErrNotExist
	}

	sessionFile := filepath.Join(app.SessionDir, sessionID+".json")
	info, err := os.Stat(sessionFile)
	if err != nil {
		return nil, err
	}

	fileAge := time.Since(info.ModTime())
	if fileAge > app.SessionTimeout {
		logInfo("Session file is too old (%v, max: %v), removing: %s", fileAge, app.SessionTimeout, sessionFile)
		os.Remove(sessionFile)
		return nil, os.ErrNotExist
	}

	data, err := os.ReadFile(sessionFile)
	if err != nil {
		logWarn("Failed to read session file %s: %v", sessionFile, err)
		return nil, err
	}

	var sess PlayerSession
	if err := json.Unmarshal(data, &sess); err != nil {
		logWarn("Session file %s is corrupted, removing: %v", sessionFile, err)
		os.Remove(sessionFile)
		return nil, os.ErrNotExist
	}

	if !validSessionStructure(&sess) {
		logWarn("Session file %s has invalid structure, removing", sessionFile)
		os.Remove(sessionFile)
		return nil, os.ErrNotExist
	}

	sess.Genedle.InFlight = false
	sess.Spelling.InFlight = false
	sess.LastAccessTime = time.Now()
	logInfo("Loaded session from file: %s (seed %d, attempts %d)", sessionFile, sess.Genedle.Seed, len(sess.Genedle.Attempts))
	return &sess, nil
}

// validSessionStructure rejects files that would violate game invariants.
func validSessionStructure(sess *PlayerSession) bool {
	if sess.Genedle == nil || sess.Spelling == nil {
		return false
	}
	if len(sess.Genedle.Attempts) > GenedleMaxAttempts {
		return false
	}
	switch sess.Genedle.Status {
	case StatusInProgress, StatusWon, StatusLost:
	default:
		return false
	}
	if sess.Genedle.Keyboard == nil {
		sess.Genedle.Keyboard = map[string]string{}
	}
	if sess.Genedle.Attempts == nil {
		sess.Genedle.Attempts = []Attempt{}
	}
	if sess.Spelling.Guessed == nil {
		sess.Spelling.Guessed = []string{}
	}
	return true
}

// cleanupOldSessions removes session files older than maxAge.
func (app *App) cleanupOldSessions(maxAge time.Duration) error {
	entries, err := os.ReadDir(app.SessionDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		logWarn("Failed to read sessions directory: %v", err)
		return err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	failed := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			logWarn("Failed to stat session file %s: %v", entry.Name(), err)
			failed++
			continue
		}
		if info.ModTime().Before(cutoff) {
			sessionFile := filepath.Join(app.SessionDir, entry.Name())
			if err := os.Remove(sessionFile); err != nil {
				logWarn("Failed to remove old session file %s: %v", sessionFile, err)
				failed++
			} else {
				removed++
			}
		}
	}

	logInfo("Session cleanup completed: removed %d files, %d errors", removed, failed)
	return nil
}
