// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/pdiddy/scribe-engine/pkg/types"
)

const defaultModel = "claude-sonnet-4-5-20250929"

// Anthropic is the production Client backed by the Anthropic Messages API.
type Anthropic struct {
	client    anthropic.Client
	model     string
	timeout   time.Duration
	hasAPIKey bool
}

// NewAnthropic builds a Client from cfg. An empty APIKey is allowed; every
// Request then fails with ErrNoCredential so callers fall back to heuristics.
func NewAnthropic(cfg types.AIConfig) *Anthropic {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Anthropic{
		client:    anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     model,
		timeout:   timeout,
		hasAPIKey: cfg.APIKey != "",
	}
}

// Request sends one user prompt and returns the first text block of the reply.
func (a *Anthropic) Request(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if !a.hasAPIKey {
		return "", ErrNoCredential
	}
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("%w: no text content in reply", ErrMalformed)
}
