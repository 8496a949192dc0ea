// Package gemini calls the Gemini generateContent endpoint to produce puzzle
// content text.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	DefaultEndpoint = "https://generativelanguage.googleapis.com"
	DefaultModel    = "gemini-2.0-flash"
)

// Config configures the generator endpoint and HTTP behavior.
type Config struct {
	Endpoint   string
	Model      string
	HTTPClient *http.Client
}

// Client implements content.Generator.
type Client struct {
	cfg Config
}

func New(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	return &Client{cfg: cfg}
}

type part struct {
	Text string `json:"text"`
}

type message struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType"`
}

type generateRequest struct {
	Contents         []message        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

// Generate sends prompt and returns the first text part of the first candidate.
func (c *Client) Generate(ctx context.Context, credential, prompt string) (string, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return "", fmt.Errorf("credential is required")
	}
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt is required")
	}

	payload, err := json.Marshal(generateRequest{
		Contents:         []message{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{ResponseMIMEType: "application/json"},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.Endpoint, "/") + "/v1beta/models/" + url.PathEscape(c.cfg.Model) + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// The key travels only in this header and is never echoed in errors.
	req.Header.Set("x-goog-api-key", credential)

	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read generate response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg := gjson.GetBytes(raw, "error.message").String()
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
			if len(msg) > 512 {
				msg = msg[:512]
			}
		}
		return "", fmt.Errorf("generate request status %d: %s", res.StatusCode, msg)
	}
	if !gjson.ValidBytes(raw) {
		return "", fmt.Errorf("generate response is not json")
	}

	text := strings.TrimSpace(gjson.GetBytes(raw, "candidates.0.content.parts.0.text").String())
	if text == "" {
		reason := gjson.GetBytes(raw, "promptFeedback.blockReason").String()
		if reason != "" {
			return "", fmt.Errorf("generate blocked: %s", reason)
		}
		return "", fmt.Errorf("generate response missing text")
	}
	return text, nil
}
