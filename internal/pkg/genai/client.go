package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"github.com/ybamri/recycleapp/internal/pkg/logger"
)

// FallbackMessage is returned to the caller whenever the upstream model
// cannot produce an answer. The chat endpoint never surfaces upstream
// failures as HTTP errors.
const FallbackMessage = "Désolé, je n'ai pas pu générer de réponse. Réessaie dans un instant."

// Config holds settings for the Gemini REST API.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client calls the Gemini generateContent endpoint.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a Gemini client. Model and BaseURL fall back to
// sensible defaults when unset.
func NewClient(config Config) *Client {
	if config.Model == "" {
		config.Model = "gemini-2.0-flash"
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
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

// GenerateContent sends a single-turn prompt to the model and returns the
// generated text. Any failure (missing key, transport error, empty
// candidates) yields the fallback message and a nil error.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c.config.APIKey == "" {
		logger.Warn().Msg("Gemini API key not configured, returning fallback response")
		return FallbackMessage, nil
	}

	reqBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.config.BaseURL, c.config.Model, c.config.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error().Err(err).Str("model", c.config.Model).Msg("Gemini request failed")
		return FallbackMessage, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to read Gemini response body")
		return FallbackMessage, nil
	}

	if resp.StatusCode != http.StatusOK {
		logger.Error().
			Int("status", resp.StatusCode).
			Str("model", c.config.Model).
			Str("body", string(body)).
			Msg("Gemini returned non-OK status")
		return FallbackMessage, nil
	}

	text := gjson.GetBytes(body, "candidates.0.content.parts.0.text").String()
	if text == "" {
		logger.Warn().Str("model", c.config.Model).Msg("Gemini response contained no candidates")
		return FallbackMessage, nil
	}

	return text, nil
}
