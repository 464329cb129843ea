// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pdiddy/scribe-engine/internal/ai"
)

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

// --- strategy order tests ---

func TestExtractAIStrategyWins(t *testing.T) {
	client := &mockClient{reply: `{"merchant": "Corner Cafe", "amount": 8.40, "currency": "USD"}`}
	engine := NewEngine(client)

	result := engine.Expense.Extract(context.Background(), "corner cafe 8.40 total")
	if result.Source != SourceAI {
		t.Fatalf("Source = %s, want ai", result.Source)
	}
	if !result.HasMinimumData {
		t.Error("HasMinimumData = false, want true")
	}
	if result.Data.Merchant != "Corner Cafe" {
		t.Errorf("Merchant = %q, want Corner Cafe", result.Data.Merchant)
	}
	if result.Data.Amount == nil || *result.Data.Amount != 8.40 {
		t.Errorf("Amount = %v, want 8.40", result.Data.Amount)
	}
}

func TestExtractFallsBackOnAIError(t *testing.T) {
	tests := []struct {
		name   string
		client *mockClient
	}{
		{"no credential", &mockClient{err: ai.ErrNoCredential}},
		{"unavailable", &mockClient{err: ai.ErrUnavailable}},
		{"malformed reply", &mockClient{reply: "this is not json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(tt.client)
			result := engine.Expense.Extract(context.Background(), "Joe's Diner\n$12.50\ncash")
			if result.Source != SourceHeuristic {
				t.Fatalf("Source = %s, want heuristic", result.Source)
			}
			if !result.HasMinimumData {
				t.Error("heuristic found no minimum data")
			}
			if result.Data.Merchant != "Joe's Diner" {
				t.Errorf("Merchant = %q, want Joe's Diner", result.Data.Merchant)
			}
		})
	}
}

func TestExtractFallsBackWhenAIResultBelowMinimum(t *testing.T) {
	// The model parses but extracts nothing usable; the heuristic runs next.
	client := &mockClient{reply: `{}`}
	engine := NewEngine(client)

	result := engine.Todo.Extract(context.Background(), "- buy milk\n- call dentist")
	if result.Source != SourceHeuristic {
		t.Fatalf("Source = %s, want heuristic", result.Source)
	}
	if len(result.Data.Items) != 2 {
		t.Errorf("got %d items, want 2", len(result.Data.Items))
	}
}

func TestExtractNeverErrors(t *testing.T) {
	// Worst-case inputs still produce a result for every type: empty,
	// invalid UTF-8, raw binary, and an input far past any sensible size.
	engine := NewEngine(&mockClient{err: errors.New("hard failure")})
	ctx := context.Background()

	inputs := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"invalid utf-8", "Joe's caf\xe9\n\xff\xfe$12.50\x80 cash"},
		{"binary garbage", string([]byte{0, 1, 2, 3, 7, 8, 127, 255, 254, 253, 0})},
		{"multi-megabyte", strings.Repeat("nothing structured on this line\n", 1<<17)},
	}
	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			check := func(name string, source Source) {
				if source != SourceHeuristic {
					t.Errorf("%s: Source = %q, want heuristic", name, source)
				}
			}
			check("email", engine.Email.Extract(ctx, tt.content).Source)
			check("event", engine.Event.Extract(ctx, tt.content).Source)
			check("expense", engine.Expense.Extract(ctx, tt.content).Source)
			check("recipe", engine.Recipe.Extract(ctx, tt.content).Source)
			check("todo", engine.Todo.Extract(ctx, tt.content).Source)
			check("contact", engine.Contact.Extract(ctx, tt.content).Source)
			check("meeting", engine.Meeting.Extract(ctx, tt.content).Source)
		})
	}

	// Empty input additionally claims no minimum data anywhere.
	if r := engine.Email.Extract(ctx, ""); r.HasMinimumData {
		t.Error("email: empty input claimed minimum data")
	}
	if r := engine.Event.Extract(ctx, ""); r.HasMinimumData {
		t.Error("event: empty input claimed minimum data")
	}
	if r := engine.Expense.Extract(ctx, ""); r.HasMinimumData {
		t.Error("expense: empty input claimed minimum data")
	}
	if r := engine.Recipe.Extract(ctx, ""); r.HasMinimumData {
		t.Error("recipe: empty input claimed minimum data")
	}
	if r := engine.Todo.Extract(ctx, ""); r.HasMinimumData {
		t.Error("todo: empty input claimed minimum data")
	}
	if r := engine.Contact.Extract(ctx, ""); r.HasMinimumData {
		t.Error("contact: empty input claimed minimum data")
	}
	if r := engine.Meeting.Extract(ctx, ""); r.HasMinimumData {
		t.Error("meeting: empty input claimed minimum data")
	}
}

func TestExtractStripsCodeFences(t *testing.T) {
	client := &mockClient{reply: "```json\n{\"title\": \"Dentist\", \"date\": \"03/14\"}\n```"}
	engine := NewEngine(client)

	result := engine.Event.Extract(context.Background(), "dentist on 03/14")
	if result.Source != SourceAI {
		t.Fatalf("Source = %s, want ai", result.Source)
	}
	if result.Data.Title != "Dentist" || result.Data.Date != "03/14" {
		t.Errorf("Data = %+v", result.Data)
	}
}

func TestExtractWithoutClientSkipsAI(t *testing.T) {
	engine := NewEngine(nil)
	result := engine.Todo.Extract(context.Background(), "- one thing")
	if result.Source != SourceHeuristic {
		t.Errorf("Source = %s, want heuristic", result.Source)
	}
}

func TestExtractDeterministicWithoutAI(t *testing.T) {
	engine := NewEngine(nil)
	content := "Groceries\n- milk\n- eggs\nTotal $23.10 paid with visa"

	first := engine.Expense.Extract(context.Background(), content)
	for i := 0; i < 5; i++ {
		again := engine.Expense.Extract(context.Background(), content)
		if again.Data.Merchant != first.Data.Merchant ||
			again.Data.PaymentMethod != first.Data.PaymentMethod ||
			again.Data.Category != first.Data.Category {
			t.Fatalf("run %d differs: %+v vs %+v", i, again.Data, first.Data)
		}
	}
}
