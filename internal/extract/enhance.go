// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/scribe-engine/internal/ai"
	"github.com/pdiddy/scribe-engine/pkg/types"
)

const enhanceMaxTokens = 2048

// Enhancer runs the type-aware text cleanup prompt. Unlike extraction it has
// no heuristic fallback: when the model path is unavailable the caller
// defers the work to the enhancement queue.
type Enhancer struct {
	client ai.Client
}

// NewEnhancer builds an Enhancer. client may be nil; Enhance then always
// fails with ai.ErrNoCredential.
func NewEnhancer(client ai.Client) *Enhancer {
	return &Enhancer{client: client}
}

// Enhance asks the model to correct recognition artifacts in text without
// changing its meaning.
func (e *Enhancer) Enhance(ctx context.Context, text string, ct types.ContentType) (string, error) {
	if e.client == nil {
		return "", ai.ErrNoCredential
	}

	var buf bytes.Buffer
	err := enhancePromptTmpl.Execute(&buf, struct {
		ContentType types.ContentType
		Content     string
	}{ContentType: ct, Content: text})
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	reply, err := e.client.Request(ctx, buf.String(), enhanceMaxTokens)
	if err != nil {
		return "", err
	}

	enhanced := strings.TrimSpace(ai.StripFences(reply))
	if enhanced == "" {
		return "", fmt.Errorf("%w: empty reply", ai.ErrMalformed)
	}
	return enhanced, nil
}
