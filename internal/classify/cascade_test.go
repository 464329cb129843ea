// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pdiddy/scribe-engine/internal/ai"
	"github.com/pdiddy/scribe-engine/pkg/types"
)

// --- test doubles ---

// mockClient returns a canned reply or error and counts calls.
type mockClient struct {
	reply string
	err   error
	calls int
}

func (m *mockClient) Request(_ context.Context, _ string, _ int) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

// memRecorder captures emitted records.
type memRecorder struct {
	records []types.ClassificationRecord
	err     error
}

func (m *memRecorder) Record(_ context.Context, rec types.ClassificationRecord) error {
	m.records = append(m.records, rec)
	return m.err
}

func testCascade(client ai.Client, online ai.Connectivity, recorder Recorder) *Cascade {
	c := New(types.ClassifierConfig{}, client, online, recorder)
	c.now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }
	return c
}

// --- cascade priority tests ---

func TestClassifyEmptyInput(t *testing.T) {
	c := testCascade(nil, nil, nil)
	for _, text := range []string{"", "   ", "\n\t\n"} {
		rec := c.Classify(context.Background(), text)
		if rec.Type != types.TypeGeneral {
			t.Errorf("Classify(%q).Type = %s, want general", text, rec.Type)
		}
		if rec.Method != types.MethodUnknown {
			t.Errorf("Classify(%q).Method = %s, want unknown", text, rec.Method)
		}
		if rec.Confidence != 0 {
			t.Errorf("Classify(%q).Confidence = %.2f, want 0", text, rec.Confidence)
		}
	}
}

func TestClassifyExplicitMarkerWins(t *testing.T) {
	// The text is shaped like an expense but the marker is authoritative.
	client := &mockClient{reply: `{"type": "expense", "confidence": 0.9}`}
	c := testCascade(client, nil, nil)

	rec := c.Classify(context.Background(), "#meeting lunch with the vendor, $45.00 paid cash")
	if rec.Type != types.TypeMeeting {
		t.Errorf("Type = %s, want meeting", rec.Type)
	}
	if rec.Method != types.MethodExplicit {
		t.Errorf("Method = %s, want explicit", rec.Method)
	}
	if rec.Confidence != 1.0 {
		t.Errorf("Confidence = %.2f, want 1.0", rec.Confidence)
	}
	if client.calls != 0 {
		t.Errorf("model consulted %d times despite explicit marker", client.calls)
	}
}

func TestClassifyHeuristicAboveThreshold(t *testing.T) {
	client := &mockClient{reply: `{"type": "general", "confidence": 0.5}`}
	c := testCascade(client, nil, nil)

	rec := c.Classify(context.Background(), "Subject: Q3 review\nTo: team@example.com\nsee attached")
	if rec.Type != types.TypeEmail || rec.Method != types.MethodHeuristic {
		t.Errorf("got %s/%s, want email/heuristic", rec.Type, rec.Method)
	}
	if client.calls != 0 {
		t.Error("model consulted despite confident heuristic")
	}
}

func TestClassifyFallsThroughToLLM(t *testing.T) {
	client := &mockClient{reply: `{"type": "event", "confidence": 0.82}`}
	c := testCascade(client, ai.Always(true), nil)

	rec := c.Classify(context.Background(), "see whether the schedule still works for everyone involved")
	if rec.Type != types.TypeEvent || rec.Method != types.MethodLLM {
		t.Errorf("got %s/%s, want event/llm", rec.Type, rec.Method)
	}
	if rec.Confidence != 0.82 {
		t.Errorf("Confidence = %.2f, want 0.82", rec.Confidence)
	}
}

func TestClassifyLLMStripsFences(t *testing.T) {
	client := &mockClient{reply: "```json\n{\"type\": \"contact\", \"confidence\": 0.7}\n```"}
	c := testCascade(client, nil, nil)

	rec := c.Classify(context.Background(), "remind me who that was at the conference reception")
	if rec.Type != types.TypeContact || rec.Method != types.MethodLLM {
		t.Errorf("got %s/%s, want contact/llm", rec.Type, rec.Method)
	}
}

func TestClassifyDefaultWhenOffline(t *testing.T) {
	client := &mockClient{reply: `{"type": "event", "confidence": 0.9}`}
	c := testCascade(client, ai.Always(false), nil)

	rec := c.Classify(context.Background(), "a vague thought with no recognizable structure at all")
	if rec.Type != types.TypeGeneral || rec.Method != types.MethodUnknown {
		t.Errorf("got %s/%s, want general/unknown", rec.Type, rec.Method)
	}
	if client.calls != 0 {
		t.Error("model consulted while offline")
	}
}

func TestClassifyDefaultWithoutClient(t *testing.T) {
	c := testCascade(nil, nil, nil)
	rec := c.Classify(context.Background(), "a vague thought with no recognizable structure at all")
	if rec.Type != types.TypeGeneral || rec.Method != types.MethodUnknown {
		t.Errorf("got %s/%s, want general/unknown", rec.Type, rec.Method)
	}
}

func TestClassifyLLMFailuresFallToDefault(t *testing.T) {
	tests := []struct {
		name   string
		client *mockClient
	}{
		{"request error", &mockClient{err: errors.New("boom")}},
		{"no credential", &mockClient{err: ai.ErrNoCredential}},
		{"malformed json", &mockClient{reply: "not json at all"}},
		{"unknown type", &mockClient{reply: `{"type": "poem", "confidence": 0.9}`}},
		{"confidence above range", &mockClient{reply: `{"type": "todo", "confidence": 1.3}`}},
		{"confidence below range", &mockClient{reply: `{"type": "todo", "confidence": -0.1}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCascade(tt.client, nil, nil)
			rec := c.Classify(context.Background(), "a vague thought with no recognizable structure at all")
			if rec.Type != types.TypeGeneral || rec.Method != types.MethodUnknown {
				t.Errorf("got %s/%s, want general/unknown", rec.Type, rec.Method)
			}
		})
	}
}

func TestClassifyThresholdGatesHeuristic(t *testing.T) {
	// "Subject:" alone scores 0.55; a 0.5 threshold accepts it, the default
	// 0.6 does not.
	text := "Subject: hello\nplain text follows here"

	low := New(types.ClassifierConfig{Threshold: 0.5}, nil, nil, nil)
	if rec := low.Classify(context.Background(), text); rec.Method != types.MethodHeuristic {
		t.Errorf("threshold 0.5: Method = %s, want heuristic", rec.Method)
	}

	def := New(types.ClassifierConfig{}, nil, nil, nil)
	if rec := def.Classify(context.Background(), text); rec.Method != types.MethodUnknown {
		t.Errorf("default threshold: Method = %s, want unknown", rec.Method)
	}
}

// --- recording tests ---

func TestClassifyRecordsDecision(t *testing.T) {
	rec := &memRecorder{}
	c := testCascade(nil, nil, rec)

	out := c.Classify(context.Background(), "#todo buy milk")
	if len(rec.records) != 1 {
		t.Fatalf("recorded %d records, want 1", len(rec.records))
	}
	if rec.records[0].Type != out.Type || rec.records[0].Method != out.Method {
		t.Errorf("recorded %v, returned %v", rec.records[0], out)
	}
	if out.RecordedAt.IsZero() {
		t.Error("RecordedAt not stamped")
	}
}

func TestClassifyRecorderFailureIsSwallowed(t *testing.T) {
	rec := &memRecorder{err: errors.New("sink down")}
	c := testCascade(nil, nil, rec)

	out := c.Classify(context.Background(), "#todo buy milk")
	if out.Type != types.TypeTodo {
		t.Errorf("Type = %s, want todo despite recorder failure", out.Type)
	}
}

func TestRecordExplicitAndLLM(t *testing.T) {
	rec := &memRecorder{}
	c := testCascade(nil, nil, rec)

	exp := c.RecordExplicit(context.Background(), types.TypeRecipe)
	if exp.Method != types.MethodExplicit || exp.Confidence != 1.0 {
		t.Errorf("RecordExplicit = %v", exp)
	}

	llm := c.RecordLLM(context.Background(), types.TypeEvent, 0.66)
	if llm.Method != types.MethodLLM || llm.Confidence != 0.66 {
		t.Errorf("RecordLLM = %v", llm)
	}

	if len(rec.records) != 2 {
		t.Errorf("recorded %d records, want 2", len(rec.records))
	}
}
