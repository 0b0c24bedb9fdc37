// Package ai holds the collaborator adapters: nutrition estimation,
// dietitian dialog and document parsing, all backed by Gemini. Every
// adapter tolerates a nil client and answers with a degraded result
// instead of an error wherever the calling flow must not fail.
package ai

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"nutribot_backend/platform/config"
	"nutribot_backend/platform/logger"
)

// Client wraps the shared Gemini client with the configured model and a
// per-call timeout bound.
type Client struct {
	gen     *genai.Client
	model   string
	timeout time.Duration
	log     *logger.Logger
}

// NewClient builds the shared client. It returns (nil, nil) when no API
// key is configured; adapters treat a nil client as permanently degraded.
func NewClient(ctx context.Context, cfg config.AIConfig, log *logger.Logger) (*Client, error) {
	if !cfg.IsAIEnabled() {
		return nil, nil
	}
	gen, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GetGeminiAPIKey(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{
		gen:     gen,
		model:   cfg.GetGeminiModel(),
		timeout: cfg.GetAITimeout(),
		log:     log,
	}, nil
}

// generate runs one bounded generation call and returns the raw text.
func (c *Client) generate(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.gen.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}

func formatPrompt(format, lang, body string) string {
	return fmt.Sprintf(format, lang, body)
}

func textContent(text string) []*genai.Content {
	return []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{genai.NewPartFromText(text)},
	}}
}
