// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"text/template"
	"time"

	"github.com/pdiddy/scribe-engine/internal/ai"
	"github.com/pdiddy/scribe-engine/internal/trigger"
	"github.com/pdiddy/scribe-engine/pkg/types"
)

const defaultThreshold = 0.6

// Recorder receives every ClassificationRecord the cascade produces.
// Analytics implements it; a nil Recorder disables recording.
type Recorder interface {
	Record(ctx context.Context, rec types.ClassificationRecord) error
}

// Cascade resolves a content type by priority: explicit marker, heuristic
// rules, remote model, default. Dependencies are injected; there is no
// package-level state.
type Cascade struct {
	threshold float64
	client    ai.Client
	online    ai.Connectivity
	recorder  Recorder

	// now is swapped in tests for stable timestamps.
	now func() time.Time
}

// New builds a Cascade. client may be nil (no AI step), online may be nil
// (assumed reachable), recorder may be nil (no analytics).
func New(cfg types.ClassifierConfig, client ai.Client, online ai.Connectivity, recorder Recorder) *Cascade {
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = defaultThreshold
	}
	if online == nil {
		online = ai.Always(true)
	}
	return &Cascade{
		threshold: threshold,
		client:    client,
		online:    online,
		recorder:  recorder,
		now:       time.Now,
	}
}

// Classify assigns a content type to text. It never fails: every path,
// including empty input and an unreachable model, produces a record. The
// record is also handed to the recorder before returning.
func (c *Cascade) Classify(ctx context.Context, text string) types.ClassificationRecord {
	// Recording is best-effort; a sink failure must not surface here.
	return c.emit(ctx, c.resolve(ctx, text))
}

// RecordExplicit emits the record for a type decided by an explicit marker,
// e.g. one section of a marker-boundary split. Confidence is always 1.0.
func (c *Cascade) RecordExplicit(ctx context.Context, ct types.ContentType) types.ClassificationRecord {
	return c.emit(ctx, types.ClassificationRecord{Type: ct, Method: types.MethodExplicit, Confidence: 1.0})
}

// RecordLLM emits the record for a type decided by the model outside the
// cascade itself, e.g. a section typed by the semantic splitter.
func (c *Cascade) RecordLLM(ctx context.Context, ct types.ContentType, confidence float64) types.ClassificationRecord {
	return c.emit(ctx, types.ClassificationRecord{Type: ct, Method: types.MethodLLM, Confidence: confidence})
}

func (c *Cascade) emit(ctx context.Context, rec types.ClassificationRecord) types.ClassificationRecord {
	rec.RecordedAt = c.now()
	if c.recorder != nil {
		_ = c.recorder.Record(ctx, rec)
	}
	return rec
}

func (c *Cascade) resolve(ctx context.Context, text string) types.ClassificationRecord {
	if strings.TrimSpace(text) == "" {
		return types.ClassificationRecord{Type: types.TypeGeneral, Method: types.MethodUnknown}
	}

	// 1. Explicit marker: authoritative.
	if ct, ok := trigger.Parse(text).Resolved(); ok {
		return types.ClassificationRecord{Type: ct, Method: types.MethodExplicit, Confidence: 1.0}
	}

	// 2. Heuristic shape rules.
	best := Best(text)
	if best.Confidence >= c.threshold {
		return types.ClassificationRecord{Type: best.Type, Method: types.MethodHeuristic, Confidence: best.Confidence}
	}

	// 3. Remote model, gated on credential and connectivity. Any failure
	// skips the step; there is no synchronous retry.
	if c.client != nil && c.online.Online() {
		if rec, ok := c.classifyLLM(ctx, text); ok {
			return rec
		}
	}

	// 4. Default.
	return types.ClassificationRecord{Type: types.TypeGeneral, Method: types.MethodUnknown}
}

// classifyPromptTmpl constrains the model to a one-object JSON reply naming
// one of the known content types.
var classifyPromptTmpl = template.Must(template.New("classify").Parse(`You are a note classification system. Assign exactly one content type to the text below.

Allowed types: general, todo, meeting, email, expense, recipe, event, contact.

Respond with a single JSON object and nothing else:
{"type": "<one allowed type>", "confidence": <float between 0.0 and 1.0>}

Text:
{{.Text}}
`))

type llmClassification struct {
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// classifyLLM asks the model for a type. Malformed replies, unknown types,
// and out-of-range confidences are all treated as "step did not apply".
func (c *Cascade) classifyLLM(ctx context.Context, text string) (types.ClassificationRecord, bool) {
	var buf bytes.Buffer
	if err := classifyPromptTmpl.Execute(&buf, struct{ Text string }{Text: text}); err != nil {
		return types.ClassificationRecord{}, false
	}

	reply, err := c.client.Request(ctx, buf.String(), 256)
	if err != nil {
		return types.ClassificationRecord{}, false
	}

	var parsed llmClassification
	if err := json.Unmarshal([]byte(ai.StripFences(reply)), &parsed); err != nil {
		return types.ClassificationRecord{}, false
	}

	ct := types.ContentType(parsed.Type)
	if !ct.Valid() || parsed.Confidence < 0 || parsed.Confidence > 1 {
		return types.ClassificationRecord{}, false
	}

	return types.ClassificationRecord{Type: ct, Method: types.MethodLLM, Confidence: parsed.Confidence}, true
}
