// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package split partitions one capture into an ordered list of typed
// sections. Marker boundaries are the fast deterministic path; an AI
// semantic split is attempted for unmarked multi-topic text; the fallback is
// a single section typed by the classification cascade.
package split

import (
	"bytes"
	"context"
	"encoding/json"
	"text/template"

	"github.com/pdiddy/scribe-engine/internal/ai"
	"github.com/pdiddy/scribe-engine/internal/classify"
	"github.com/pdiddy/scribe-engine/internal/trigger"
	"github.com/pdiddy/scribe-engine/pkg/types"
)

const defaultMinSectionLen = 12

// Classified pairs a section with the record describing how its type was
// decided. Every section of every split path gets a record.
type Classified struct {
	Section types.NoteSection
	Record  types.ClassificationRecord
}

// Splitter divides captures into sections. All dependencies are injected.
type Splitter struct {
	minLen  int
	cascade *classify.Cascade
	client  ai.Client
	online  ai.Connectivity
}

// New builds a Splitter. client may be nil (no semantic split), online may
// be nil (assumed reachable).
func New(cfg types.SplitterConfig, cascade *classify.Cascade, client ai.Client, online ai.Connectivity) *Splitter {
	minLen := cfg.MinSectionLen
	if minLen <= 0 {
		minLen = defaultMinSectionLen
	}
	if online == nil {
		online = ai.Always(true)
	}
	return &Splitter{minLen: minLen, cascade: cascade, client: client, online: online}
}

// Split partitions text into ordered, non-overlapping sections that jointly
// cover it.
func (s *Splitter) Split(ctx context.Context, text string) []types.NoteSection {
	classified := s.SplitClassified(ctx, text)
	sections := make([]types.NoteSection, len(classified))
	for i, c := range classified {
		sections[i] = c.Section
	}
	return sections
}

// SplitClassified partitions text and reports how each section's type was
// decided. It never fails; the worst case is one section typed "general".
func (s *Splitter) SplitClassified(ctx context.Context, text string) []Classified {
	trig := trigger.Parse(text)

	// Multiple distinct marker types: split at marker boundaries.
	if len(trig.DistinctTypes()) >= 2 {
		return s.splitAtMarkers(ctx, text, trig.Matches)
	}

	// No markers at all: try a semantic split when the model is reachable.
	if len(trig.Matches) == 0 && s.client != nil && s.online.Online() {
		if sections, ok := s.semanticSplit(ctx, text); ok {
			return sections
		}
	}

	// Single section spanning the whole text, typed via the cascade. A lone
	// marker resolves here as an explicit classification with its tokens
	// stripped from the content.
	rec := s.cascade.Classify(ctx, text)
	return []Classified{{
		Section: types.NoteSection{
			ContentType: rec.Type,
			Content:     trigger.Strip(text, rec.Type),
			Start:       0,
			End:         len(text),
		},
		Record: rec,
	}}
}

// splitAtMarkers cuts text at each position where a marker of a new type
// begins. The span before the first marker attaches to the first section, so
// the sections jointly cover the text. Consecutive markers of the same type
// stay in one section.
func (s *Splitter) splitAtMarkers(ctx context.Context, text string, matches []trigger.Match) []Classified {
	var out []Classified

	emit := func(start, end int, ct types.ContentType) {
		out = append(out, Classified{
			Section: types.NoteSection{
				ContentType: ct,
				Content:     trigger.Strip(text[start:end], ct),
				Start:       start,
				End:         end,
			},
			Record: s.cascade.RecordExplicit(ctx, ct),
		})
	}

	start := 0
	current := matches[0].Type
	for _, m := range matches[1:] {
		if m.Type == current {
			continue
		}
		emit(start, m.Pos, current)
		start = m.Pos
		current = m.Type
	}
	emit(start, len(text), current)

	return out
}

// semanticPromptTmpl asks the model for byte-offset boundaries covering the
// text exactly, each with a type, confidence, and tag suggestions.
var semanticPromptTmpl = template.Must(template.New("split").Parse(`You are a note sectioning system. The text below may contain multiple unrelated topics. Propose section boundaries.

Allowed types: general, todo, meeting, email, expense, recipe, event, contact.

Respond with a single JSON object and nothing else:
{"sections": [{"type": "<allowed type>", "start": <byte offset>, "end": <byte offset>, "confidence": <float 0.0-1.0>, "tags": ["<lowercase-tag>"], "reasoning": "<one sentence>"}]}

Rules:
- Offsets index into the exact text below; the first section starts at 0 and the last ends at {{.Length}}.
- Sections must be ordered, non-overlapping, and jointly cover the text.
- If the text is a single topic, return exactly one section.

Text:
{{.Text}}
`))

type llmSection struct {
	Type       string   `json:"type"`
	Start      int      `json:"start"`
	End        int      `json:"end"`
	Confidence float64  `json:"confidence"`
	Tags       []string `json:"tags"`
	Reasoning  string   `json:"reasoning"`
}

type llmSplit struct {
	Sections []llmSection `json:"sections"`
}

// semanticSplit proposes boundaries via the model. Zero or one proposed
// section means "no split"; any boundary that fails the sanity checks
// rejects the whole proposal. Both cases fall through to the cascade path.
func (s *Splitter) semanticSplit(ctx context.Context, text string) ([]Classified, bool) {
	var buf bytes.Buffer
	err := semanticPromptTmpl.Execute(&buf, struct {
		Text   string
		Length int
	}{Text: text, Length: len(text)})
	if err != nil {
		return nil, false
	}

	reply, err := s.client.Request(ctx, buf.String(), 1024)
	if err != nil {
		return nil, false
	}

	var parsed llmSplit
	if err := json.Unmarshal([]byte(ai.StripFences(reply)), &parsed); err != nil {
		return nil, false
	}
	if len(parsed.Sections) < 2 {
		return nil, false
	}

	// Validate before recording anything: a rejected proposal must leave no
	// trace in analytics.
	prevEnd := 0
	for i, sec := range parsed.Sections {
		ct := types.ContentType(sec.Type)
		switch {
		case !ct.Valid(),
			sec.Start != prevEnd,
			sec.End <= sec.Start,
			sec.End > len(text),
			sec.End-sec.Start < s.minLen,
			sec.Confidence < 0 || sec.Confidence > 1:
			return nil, false
		}
		if i == len(parsed.Sections)-1 && sec.End != len(text) {
			return nil, false
		}
		prevEnd = sec.End
	}

	out := make([]Classified, 0, len(parsed.Sections))
	for _, sec := range parsed.Sections {
		ct := types.ContentType(sec.Type)
		out = append(out, Classified{
			Section: types.NoteSection{
				ContentType:   ct,
				Content:       text[sec.Start:sec.End],
				Start:         sec.Start,
				End:           sec.End,
				SuggestedTags: sec.Tags,
				Reasoning:     sec.Reasoning,
			},
			Record: s.cascade.RecordLLM(ctx, ct, sec.Confidence),
		})
	}

	return out, true
}
