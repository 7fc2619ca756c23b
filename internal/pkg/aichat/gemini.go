package aichat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/colloq/colloq/internal/pkg/apperrors"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("ai chat is not configured")

const defaultModel = "gemini-1.5-flash"

// Completer produces an assistant reply for a student question, optionally
// grounded in the content of a note the student is viewing.
type Completer interface {
	Complete(ctx context.Context, message, noteContext string) (string, error)
}

// GeminiClient calls the Google Generative Language API over HTTP.
type GeminiClient struct {
	apiKey string
	model  string
	client *http.Client
}

var _ Completer = (*GeminiClient)(nil)

// NewGeminiClient creates a client. An empty apiKey yields a client that
// reports ErrNotConfigured on every call, so the chat endpoint can degrade
// gracefully instead of the server refusing to start.
func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey: apiKey,
		model:  defaultModel,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Complete sends the prompt to Gemini and returns the generated text.
func (g *GeminiClient) Complete(ctx context.Context, message, noteContext string) (string, error) {
	if g.apiKey == "" {
		return "", ErrNotConfigured
	}

	if noteContext == "" {
		noteContext = "Brak kontekstu"
	}
	prompt := fmt.Sprintf(
		"Jesteś asystentem AI pomagającym studentom w nauce.\nKontekst notatki: %s\nPytanie studenta: %s\n\nUdziel pomocnej, zwięzłej i merytorycznej odpowiedzi.",
		noteContext, message)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode generate request: %w", err)
	}

	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: generate returned status %d", apperrors.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty completion", apperrors.ErrUpstreamUnavailable)
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
