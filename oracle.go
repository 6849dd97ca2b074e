package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Oracle is the external validation service. It is authoritative for corpus
// membership, per-letter feedback and puzzle generation; this application
// never computes any of those itself.
type Oracle interface {
	WordLength(ctx context.Context, seed uint64) (int, error)
	SubmitGuess(ctx context.Context, req GuessRequest) (GuessVerdict, error)
	SpellingPuzzle(ctx context.Context, params SpellingParams) (SpellingPuzzle, error)
	CheckSpellingGuess(ctx context.Context, params SpellingParams, symbol string) (bool, error)
}

// geneOracle talks to the Genedle backend API over HTTP. All calls share a
// request timeout and a politeness limiter so a stuck or hammered upstream
// can never wedge a session indefinitely.
type geneOracle struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewGeneOracle builds the HTTP oracle client. rps bounds outgoing calls
// per second; timeout bounds each individual call.
func NewGeneOracle(baseURL string, timeout time.Duration, rps int) Oracle {
	if rps <= 0 {
		rps = 1
	}
	return &geneOracle{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// WordLength fetches the length of the seed's gene symbol. The backend
// reports -1 when it cannot resolve a word; that is an error here, not a
// playable length.
func (o *geneOracle) WordLength(ctx context.Context, seed uint64) (int, error) {
	var length int
	endpoint := fmt.Sprintf("%s/api/v1/genedle-letters/%d", o.baseURL, seed)
	if err := o.getJSON(ctx, endpoint, &length); err != nil {
		return 0, err
	}
	if length <= 0 {
		return 0, fmt.Errorf("oracle has no word for seed %d", seed)
	}
	return length, nil
}

// guessEnvelope is the externally tagged oracle response to a guess.
type guessEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// validGuessData is the payload of an accepted guess.
type validGuessData struct {
	IsCorrect bool     `json:"is_correct"`
	Result    []string `json:"result"`
}

// SubmitGuess posts a Genedle guess and decodes the verdict.
func (o *geneOracle) SubmitGuess(ctx context.Context, req GuessRequest) (GuessVerdict, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return GuessVerdict{}, fmt.Errorf("oracle limiter: %w", err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return GuessVerdict{}, fmt.Errorf("encode guess: %w", err)
	}

	endpoint := o.baseURL + "/api/v1/genedle-guess"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return GuessVerdict{}, fmt.Errorf("build guess request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return GuessVerdict{}, fmt.Errorf("oracle request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return GuessVerdict{}, fmt.Errorf("oracle returned status %d", resp.StatusCode)
	}

	var envelope guessEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return GuessVerdict{}, fmt.Errorf("decode guess response: %w", err)
	}

	switch envelope.Type {
	case VerdictTypeValid:
		var data validGuessData
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			return GuessVerdict{}, fmt.Errorf("decode valid guess data: %w", err)
		}
		return GuessVerdict{Valid: true, IsCorrect: data.IsCorrect, Result: data.Result}, nil
	case VerdictTypeInvalid:
		reason, err := decodeRejectionReason(envelope.Data)
		if err != nil {
			return GuessVerdict{}, err
		}
		return GuessVerdict{Valid: false, Reason: reason}, nil
	default:
		return GuessVerdict{}, fmt.Errorf("unexpected oracle verdict type %q", envelope.Type)
	}
}

// decodeRejectionReason handles both shapes an invalid verdict can take on
// the wire: a bare reason string ("not_in_corpus") or a single-key object
// carrying detail ({"internal_error": "..."}).
func decodeRejectionReason(data json.RawMessage) (string, error) {
	var reason string
	if err := json.Unmarshal(data, &reason); err == nil {
		return reason, nil
	}
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err == nil {
		for key := range tagged {
			return key, nil
		}
	}
	return "", fmt.Errorf("undecodable rejection reason: %s", string(data))
}

// SpellingPuzzle fetches the letters of a Spelling Gene puzzle instance.
func (o *geneOracle) SpellingPuzzle(ctx context.Context, params SpellingParams) (SpellingPuzzle, error) {
	var puzzle SpellingPuzzle
	endpoint := fmt.Sprintf("%s/api/v1/spelling-gene/%d/%d/%d/%d",
		o.baseURL, params.Seed, params.MinLength, params.MinWords, params.NumLetters)
	if err := o.getJSON(ctx, endpoint, &puzzle); err != nil {
		return SpellingPuzzle{}, err
	}
	return puzzle, nil
}

// CheckSpellingGuess asks the oracle whether a symbol belongs to the
// puzzle's solution set.
func (o *geneOracle) CheckSpellingGuess(ctx context.Context, params SpellingParams, symbol string) (bool, error) {
	var valid bool
	endpoint := fmt.Sprintf("%s/api/v1/spelling-gene-guess/%d/%d/%d/%d/%s",
		o.baseURL, params.Seed, params.MinLength, params.MinWords, params.NumLetters,
		url.PathEscape(symbol))
	if err := o.getJSON(ctx, endpoint, &valid); err != nil {
		return false, err
	}
	return valid, nil
}

// getJSON performs a rate-limited GET and decodes the JSON body into out.
func (o *geneOracle) getJSON(ctx context.Context, endpoint string, out any) error {
	if err := o.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("oracle limiter: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build oracle request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("oracle request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("oracle returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode oracle response: %w", err)
	}
	return nil
}
