// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/pdiddy/scribe-engine/internal/ai"
	"github.com/pdiddy/scribe-engine/pkg/types"
)

const extractMaxTokens = 1024

// AIStrategy calls the remote model with a type-specific prompt that
// constrains the reply to the payload's JSON schema. Markdown code fences
// around the reply are tolerated; anything else unparsable is an error and
// the extractor falls back.
type AIStrategy[T types.Payload] struct {
	client ai.Client
	prompt *template.Template
}

// Source implements Strategy.
func (s *AIStrategy[T]) Source() Source { return SourceAI }

// Extract implements Strategy.
func (s *AIStrategy[T]) Extract(ctx context.Context, content string) (T, error) {
	var zero T

	var buf bytes.Buffer
	if err := s.prompt.Execute(&buf, struct{ Content string }{Content: content}); err != nil {
		return zero, fmt.Errorf("rendering prompt: %w", err)
	}

	reply, err := s.client.Request(ctx, buf.String(), extractMaxTokens)
	if err != nil {
		return zero, err
	}

	var data T
	if err := json.Unmarshal([]byte(ai.StripFences(reply)), &data); err != nil {
		return zero, fmt.Errorf("%w: %v", ai.ErrMalformed, err)
	}
	return data, nil
}

// newTyped assembles the shared strategy order for one payload type: model
// first when a client exists, heuristic always last.
func newTyped[T types.Payload](client ai.Client, tmpl *template.Template, heuristic func(string) T) *Extractor[T] {
	var strategies []Strategy[T]
	if client != nil {
		strategies = append(strategies, &AIStrategy[T]{client: client, prompt: tmpl})
	}
	strategies = append(strategies, heuristicStrategy[T]{fn: heuristic})
	return NewExtractor(strategies...)
}
