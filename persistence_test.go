package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func writeSessionFile(t *testing.T, app *App, sessionID string, sess *PlayerSession, modTime *time.Time) string {
	t.Helper()
	if err := os.MkdirAll(app.SessionDir, 0755); err != nil {
		t.Fatalf("create session dir: %v", err)
	}
	path := filepath.Join(app.SessionDir, sessionID+".json")
	data, err := json.Marshal(sess)
	if err != nil {
		t.Fatalf("marshal session: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write session file: %v", err)
	}
	if modTime != nil {
		if err := os.Chtimes(path, *modTime, *modTime); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}
	return path
}

func playableSession(seed uint64) *PlayerSession {
	game := NewGenedleGame(seed, 4, ModeHard)
	game.Attempts = append(game.Attempts, Attempt{
		Word: "MIB2",
		Results: []LetterResult{
			{"M", LetterStateCorrect}, {"I", LetterStateAbsent},
			{"B", LetterStatePresent}, {"2", LetterStateAbsent},
		},
	})
	game.Keyboard["M"] = LetterStateCorrect
	return &PlayerSession{
		Genedle:        game,
		Spelling:       NewSpellingGame(seed, defaultPuzzle()),
		LastAccessTime: time.Now(),
	}
}

func TestSessionFileRoundTrip(t *testing.T) {
	app := newTestApp(t, &scriptedOracle{})
	sessionID := uuid.NewString()
	sess := playableSession(42)
	sess.Spelling.Guessed = []string{"BRCA"}
	sess.Spelling.Score = 4

	if err := app.savePlayerSessionToFile(sessionID, sess); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := app.loadPlayerSessionFromFile(sessionID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Genedle.Seed != 42 || len(loaded.Genedle.Attempts) != 1 {
		t.Errorf("genedle round trip lost data: %+v", loaded.Genedle)
	}
	if loaded.Genedle.Keyboard["M"] != LetterStateCorrect {
		t.Error("keyboard feedback lost in round trip")
	}
	if loaded.Spelling.Score != 4 || len(loaded.Spelling.Guessed) != 1 {
		t.Errorf("spelling round trip lost data: %+v", loaded.Spelling)
	}
	if loaded.Genedle.InFlight || loaded.Spelling.InFlight {
		t.Error("in-flight flags must be cleared on restore")
	}
	if loaded.LastAccessTime.IsZero() {
		t.Error("LastAccessTime not refreshed on load")
	}
}

func TestLoadRejectsShortSessionID(t *testing.T) {
	app := newTestApp(t, &scriptedOracle{})
	if _, err := app.loadPlayerSessionFromFile("short"); !os.IsNotExist(err) {
		t.Errorf("err = %v, want not-exist", err)
	}
	if err := app.savePlayerSessionToFile("short", playableSession(1)); err != nil {
		t.Errorf("save with short ID should be skipped, got %v", err)
	}
}

func TestLoadRemovesExpiredFile(t *testing.T) {
	app := newTestApp(t, &scriptedOracle{})
	sessionID := uuid.NewString()
	old := time.Now().Add(-(app.SessionTimeout + time.Hour))
	path := writeSessionFile(t, app, sessionID, playableSession(42), &old)

	if _, err := app.loadPlayerSessionFromFile(sessionID); !os.IsNotExist(err) {
		t.Errorf("err = %v, want not-exist", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expired session file was not removed")
	}
}

func TestLoadRemovesCorruptedFile(t *testing.T) {
	app := newTestApp(t, &scriptedOracle{})
	sessionID := uuid.NewString()
	if err := os.MkdirAll(app.SessionDir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(app.SessionDir, sessionID+".json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := app.loadPlayerSessionFromFile(sessionID); !os.IsNotExist(err) {
		t.Errorf("err = %v, want not-exist", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupted session file was not removed")
	}
}

func TestLoadRemovesInvalidStructure(t *testing.T) {
	app := newTestApp(t, &scriptedOracle{})

	tooMany := playableSession(42)
	for len(tooMany.Genedle.Attempts) <= GenedleMaxAttempts {
		tooMany.Genedle.Attempts = append(tooMany.Genedle.Attempts, Attempt{Word: "AAAA"})
	}
	missing := &PlayerSession{Genedle: NewGenedleGame(42, 4, ModeHard)}
	badStatus := playableSession(42)
	badStatus.Genedle.Status = "paused"

	for name, sess := range map[string]*PlayerSession{
		"too many attempts": tooMany,
		"missing spelling":  missing,
		"unknown status":    badStatus,
	} {
		sessionID := uuid.NewString()
		path := writeSessionFile(t, app, sessionID, sess, nil)
		if _, err := app.loadPlayerSessionFromFile(sessionID); !os.IsNotExist(err) {
			t.Errorf("%s: err = %v, want not-exist", name, err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("%s: invalid session file was not removed", name)
		}
	}
}

func TestCleanupOldSessions(t *testing.T) {
	app := newTestApp(t, &scriptedOracle{})
	old := time.Now().Add(-2 * time.Hour)
	oldPath := writeSessionFile(t, app, uuid.NewString(), playableSession(1), &old)
	freshPath := writeSessionFile(t, app, uuid.NewString(), playableSession(2), nil)

	if err := app.cleanupOldSessions(time.Hour); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Error("old session file survived cleanup")
	}
	if _, err := os.Stat(freshPath); err != nil {
		t.Error("fresh session file was removed by cleanup")
	}
}

func TestCleanupMissingDirIsNoOp(t *testing.T) {
	app := newTestApp(t, &scriptedOracle{})
	app.SessionDir = filepath.Join(app.SessionDir, "does-not-exist")
	if err := app.cleanupOldSessions(time.Hour); err != nil {
		t.Errorf("cleanup on missing dir: %v", err)
	}
}
