// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns a typed section's text into structured data. Every
// content type shares one contract: try the model first, fall back to a
// deterministic heuristic, and never fail to the caller. The worst-case
// output is an empty payload with HasMinimumData == false.
package extract

import (
	"context"

	"github.com/pdiddy/scribe-engine/internal/ai"
	"github.com/pdiddy/scribe-engine/pkg/types"
)

// Source identifies which strategy produced a result.
type Source string

const (
	SourceAI        Source = "ai"
	SourceHeuristic Source = "heuristic"
)

// Result is the extraction envelope for one payload type.
type Result[T types.Payload] struct {
	// Data is the extracted payload; unfilled fields stay zero.
	Data T `json:"data" yaml:"data"`

	// HasMinimumData reports whether at least one semantically required
	// field was populated. False is a legitimate outcome, not an error.
	HasMinimumData bool `json:"has_minimum_data" yaml:"has_minimum_data"`

	// Source is the strategy that produced Data.
	Source Source `json:"source" yaml:"source"`
}

// Strategy is one way of producing a payload from text. Strategies that
// cannot run (no credential, offline, malformed reply) return an error and
// the extractor moves on.
type Strategy[T types.Payload] interface {
	Source() Source
	Extract(ctx context.Context, content string) (T, error)
}

// Extractor tries an ordered list of strategies and stops at the first one
// whose payload carries minimum data. On exhaustion it returns the last
// successful strategy's output regardless of validity.
type Extractor[T types.Payload] struct {
	strategies []Strategy[T]
}

// NewExtractor builds an Extractor. The final strategy should be a
// heuristic, which always succeeds, so Extract can never come back empty-
// handed with an error.
func NewExtractor[T types.Payload](strategies ...Strategy[T]) *Extractor[T] {
	return &Extractor[T]{strategies: strategies}
}

// Extract runs the strategies in order. It never returns an error.
func (e *Extractor[T]) Extract(ctx context.Context, content string) Result[T] {
	var last Result[T]
	for _, s := range e.strategies {
		data, err := s.Extract(ctx, content)
		if err != nil {
			continue
		}
		last = Result[T]{Data: data, HasMinimumData: data.HasMinimumData(), Source: s.Source()}
		if last.HasMinimumData {
			return last
		}
	}
	return last
}

// heuristicStrategy adapts a pure function to the Strategy interface.
type heuristicStrategy[T types.Payload] struct {
	fn func(content string) T
}

func (h heuristicStrategy[T]) Source() Source { return SourceHeuristic }

func (h heuristicStrategy[T]) Extract(_ context.Context, content string) (T, error) {
	return h.fn(content), nil
}

// Engine bundles one extractor per content type.
type Engine struct {
	Email   *Extractor[types.EmailData]
	Event   *Extractor[types.EventData]
	Expense *Extractor[types.ExpenseData]
	Recipe  *Extractor[types.RecipeData]
	Todo    *Extractor[types.TodoData]
	Contact *Extractor[types.ContactData]
	Meeting *Extractor[types.MeetingData]
}

// NewEngine wires every extractor. client may be nil, in which case only
// the heuristic strategies run.
func NewEngine(client ai.Client) *Engine {
	return &Engine{
		Email:   newTyped(client, emailPromptTmpl, HeuristicEmail),
		Event:   newTyped(client, eventPromptTmpl, HeuristicEvent),
		Expense: newTyped(client, expensePromptTmpl, HeuristicExpense),
		Recipe:  newTyped(client, recipePromptTmpl, HeuristicRecipe),
		Todo:    newTyped(client, todoPromptTmpl, HeuristicTodo),
		Contact: newTyped(client, contactPromptTmpl, HeuristicContact),
		Meeting: newTyped(client, meetingPromptTmpl, HeuristicMeeting),
	}
}
