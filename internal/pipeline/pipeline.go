// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs a capture end to end: split into typed sections,
// extract structured data per section, enhance the text when the model is
// reachable, and persist the processed notes. Failed or skipped enhancement
// defers to the durable queue; nothing in the pipeline can fail a note.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/scribe-engine/internal/ai"
	"github.com/pdiddy/scribe-engine/internal/enhance"
	"github.com/pdiddy/scribe-engine/internal/extract"
	"github.com/pdiddy/scribe-engine/internal/split"
	"github.com/pdiddy/scribe-engine/pkg/types"
)

// ProcessedNote is the pipeline output for one section. Exactly one of the
// typed payload pointers is set for structured types; all stay nil for
// general notes.
type ProcessedNote struct {
	ID             string                     `json:"id" yaml:"id"`
	Section        types.NoteSection          `json:"section" yaml:"section"`
	Classification types.ClassificationRecord `json:"classification" yaml:"classification"`

	// EnhancedText is empty when enhancement was deferred to the queue.
	EnhancedText string `json:"enhanced_text,omitempty" yaml:"enhanced_text,omitempty"`

	Email   *extract.Result[types.EmailData]   `json:"email,omitempty" yaml:"email,omitempty"`
	Event   *extract.Result[types.EventData]   `json:"event,omitempty" yaml:"event,omitempty"`
	Expense *extract.Result[types.ExpenseData] `json:"expense,omitempty" yaml:"expense,omitempty"`
	Recipe  *extract.Result[types.RecipeData]  `json:"recipe,omitempty" yaml:"recipe,omitempty"`
	Todo    *extract.Result[types.TodoData]    `json:"todo,omitempty" yaml:"todo,omitempty"`
	Contact *extract.Result[types.ContactData] `json:"contact,omitempty" yaml:"contact,omitempty"`
	Meeting *extract.Result[types.MeetingData] `json:"meeting,omitempty" yaml:"meeting,omitempty"`
}

// Storer persists processed notes.
type Storer interface {
	Save(ctx context.Context, note ProcessedNote) error
}

// Options carries the pipeline's collaborators. Splitter and Engine are
// required; the rest may be nil and the corresponding stage is skipped.
type Options struct {
	Splitter *split.Splitter
	Engine   *extract.Engine
	Enhancer *extract.Enhancer
	Queue    *enhance.Queue
	Storer   Storer
	Online   ai.Connectivity
	Logger   *slog.Logger
}

// Pipeline processes captures. Safe for concurrent use.
type Pipeline struct {
	splitter *split.Splitter
	engine   *extract.Engine
	enhancer *extract.Enhancer
	queue    *enhance.Queue
	storer   Storer
	online   ai.Connectivity
	log      *slog.Logger
}

// New builds a Pipeline from its collaborators.
func New(opts Options) (*Pipeline, error) {
	if opts.Splitter == nil {
		return nil, fmt.Errorf("pipeline requires a splitter")
	}
	if opts.Engine == nil {
		return nil, fmt.Errorf("pipeline requires an extraction engine")
	}
	online := opts.Online
	if online == nil {
		online = ai.Always(true)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		splitter: opts.Splitter,
		engine:   opts.Engine,
		enhancer: opts.Enhancer,
		queue:    opts.Queue,
		storer:   opts.Storer,
		online:   online,
		log:      logger,
	}, nil
}

// Process runs one capture through every stage and returns the processed
// notes in section order. The only error sources are persistence failures;
// classification, extraction, and enhancement degrade instead of failing.
func (p *Pipeline) Process(ctx context.Context, capture types.RawCapture) ([]ProcessedNote, error) {
	classified := p.splitter.SplitClassified(ctx, capture.Text)

	notes := make([]ProcessedNote, len(classified))
	var wg sync.WaitGroup
	for i, c := range classified {
		wg.Add(1)
		go func(i int, c split.Classified) {
			defer wg.Done()
			notes[i] = p.processSection(ctx, c)
		}(i, c)
	}
	wg.Wait()

	for i := range notes {
		p.enhanceNote(ctx, &notes[i])
	}

	if p.storer != nil {
		for _, note := range notes {
			if err := p.storer.Save(ctx, note); err != nil {
				return notes, fmt.Errorf("saving note %s: %w", note.ID, err)
			}
		}
	}
	return notes, nil
}

// processSection extracts structured data for one classified section.
func (p *Pipeline) processSection(ctx context.Context, c split.Classified) ProcessedNote {
	note := ProcessedNote{
		ID:             uuid.NewString(),
		Section:        c.Section,
		Classification: c.Record,
	}

	content := c.Section.Content
	switch c.Section.ContentType {
	case types.TypeEmail:
		r := p.engine.Email.Extract(ctx, content)
		note.Email = &r
	case types.TypeEvent:
		r := p.engine.Event.Extract(ctx, content)
		note.Event = &r
	case types.TypeExpense:
		r := p.engine.Expense.Extract(ctx, content)
		note.Expense = &r
	case types.TypeRecipe:
		r := p.engine.Recipe.Extract(ctx, content)
		note.Recipe = &r
	case types.TypeTodo:
		r := p.engine.Todo.Extract(ctx, content)
		note.Todo = &r
	case types.TypeContact:
		r := p.engine.Contact.Extract(ctx, content)
		note.Contact = &r
	case types.TypeMeeting:
		r := p.engine.Meeting.Extract(ctx, content)
		note.Meeting = &r
	}
	return note
}

// enhanceNote attempts synchronous enhancement and defers to the queue when
// the attempt fails or is skipped. Enhancement duration is logged because
// this is the slowest stage of a processing run.
func (p *Pipeline) enhanceNote(ctx context.Context, note *ProcessedNote) {
	if p.enhancer == nil {
		return
	}

	if !p.online.Online() {
		p.log.Info("offline, deferring enhancement", "note", note.ID)
		p.deferEnhancement(ctx, note)
		return
	}

	started := time.Now()
	enhanced, err := p.enhancer.Enhance(ctx, note.Section.Content, note.Section.ContentType)
	if err != nil {
		p.log.Warn("enhancement failed, deferring",
			"note", note.ID, "error", err)
		p.deferEnhancement(ctx, note)
		return
	}
	p.log.Debug("enhanced note",
		"note", note.ID, "duration", time.Since(started).Round(time.Millisecond))
	note.EnhancedText = enhanced
}

func (p *Pipeline) deferEnhancement(ctx context.Context, note *ProcessedNote) {
	if p.queue == nil {
		return
	}
	if _, err := p.queue.Enqueue(ctx, note.Section.Content, note.Section.ContentType); err != nil {
		p.log.Error("enqueueing enhancement", "note", note.ID, "error", err)
	}
}
