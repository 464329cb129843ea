// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"testing"

	"github.com/pdiddy/scribe-engine/pkg/types"
)

func almostEqual(a, b float64) bool {
	diff := a - b
	return diff < 1e-9 && diff > -1e-9
}

func TestBestEmailFieldPrefixes(t *testing.T) {
	text := "Subject: Q3 planning\nTo: maria@example.com\nLet's move the review to Thursday."
	best := Best(text)
	if best.Type != types.TypeEmail {
		t.Fatalf("Best() = %s, want email", best.Type)
	}
	if best.Confidence != 0.8 {
		t.Errorf("confidence = %.2f, want 0.80", best.Confidence)
	}
}

func TestBestSingleFieldPrefixIsWeak(t *testing.T) {
	best := Best("Subject: hello\nplain text follows here")
	if best.Type != types.TypeEmail || best.Confidence != 0.55 {
		t.Errorf("Best() = %s %.2f, want email 0.55", best.Type, best.Confidence)
	}
}

func TestBestTodoBullets(t *testing.T) {
	text := "- buy milk\n- call dentist\n- renew passport"
	best := Best(text)
	if best.Type != types.TypeTodo {
		t.Fatalf("Best() = %s, want todo", best.Type)
	}
	// All three lines are bullets: 0.5 + 0.4*1.0 capped at 0.9.
	if best.Confidence != 0.9 {
		t.Errorf("confidence = %.2f, want 0.90", best.Confidence)
	}
}

func TestBestTodoCheckboxesAndNumbers(t *testing.T) {
	for _, text := range []string{
		"[ ] pack bags\n[x] book flight\n[ ] print tickets",
		"1. first step\n2. second step\n3. third step",
	} {
		if best := Best(text); best.Type != types.TypeTodo {
			t.Errorf("Best(%q) = %s, want todo", text, best.Type)
		}
	}
}

func TestBestTodoShortLineRun(t *testing.T) {
	text := "milk\neggs\nbread\nbutter"
	best := Best(text)
	if best.Type != types.TypeTodo || best.Confidence != 0.62 {
		t.Errorf("Best() = %s %.2f, want todo 0.62", best.Type, best.Confidence)
	}
}

func TestBestContactCard(t *testing.T) {
	text := "Jane Rivera\nAcme Corp\n555-867-5309\njane@acme.example"
	best := Best(text)
	if best.Type != types.TypeContact || best.Confidence != 0.75 {
		t.Errorf("Best() = %s %.2f, want contact 0.75", best.Type, best.Confidence)
	}
}

func TestBestExpenseAmounts(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"single amount", "Joe's Diner $12.50", 0.55},
		{"amount plus payment word", "Joe's Diner $12.50 paid cash", 0.70},
		{"two amounts plus payment", "Lunch $12.50 tip $2.00 visa", 0.80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best := Best(tt.text)
			if best.Type != types.TypeExpense {
				t.Fatalf("Best() = %s, want expense", best.Type)
			}
			if !almostEqual(best.Confidence, tt.want) {
				t.Errorf("confidence = %.2f, want %.2f", best.Confidence, tt.want)
			}
		})
	}
}

func TestBestRecipeHeader(t *testing.T) {
	text := "Pancakes\nIngredients:\n2 cups flour\n1 cup milk"
	best := Best(text)
	if best.Type != types.TypeRecipe || best.Confidence != 0.85 {
		t.Errorf("Best() = %s %.2f, want recipe 0.85", best.Type, best.Confidence)
	}
}

func TestBestRecipeUnitsOnly(t *testing.T) {
	text := "mix 2 cups flour with 250 ml milk and fold gently until it looks thick and smooth enough"
	best := Best(text)
	if best.Type != types.TypeRecipe || best.Confidence != 0.6 {
		t.Errorf("Best() = %s %.2f, want recipe 0.60", best.Type, best.Confidence)
	}
}

func TestBestEventDateAndTime(t *testing.T) {
	text := "Dentist appointment on 03/14 at 2:30pm over on Main Street downtown"
	best := Best(text)
	if best.Type != types.TypeEvent || best.Confidence != 0.7 {
		t.Errorf("Best() = %s %.2f, want event 0.70", best.Type, best.Confidence)
	}
}

func TestBestEventDateOnlyIsWeak(t *testing.T) {
	scores := ScoreAll("something happening on Jan 15 maybe, not fully sure about the details yet")
	for _, s := range scores {
		if s.Type == types.TypeEvent {
			if s.Confidence != 0.45 {
				t.Errorf("event confidence = %.2f, want 0.45", s.Confidence)
			}
			return
		}
	}
	t.Fatal("event score missing from ScoreAll")
}

func TestBestMeetingVocabulary(t *testing.T) {
	text := "Attendees: Ana, Raj\nAgenda was the rollout plan and we discussed the timeline at length"
	best := Best(text)
	if best.Type != types.TypeMeeting {
		t.Errorf("Best() = %s, want meeting", best.Type)
	}
}

func TestScoreAllDeterministicOrdering(t *testing.T) {
	text := "Subject: lunch receipt\nTotal $14.00 paid cash"
	first := ScoreAll(text)
	for i := 0; i < 10; i++ {
		again := ScoreAll(text)
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("run %d: position %d differs: %v vs %v", i, j, first[j], again[j])
			}
		}
	}
}

func TestScoreAllSortedDescending(t *testing.T) {
	scores := ScoreAll("Total $9.99 paid with visa\n- item one\n- item two")
	for i := 1; i < len(scores); i++ {
		if scores[i].Confidence > scores[i-1].Confidence {
			t.Errorf("scores not sorted at %d: %v after %v", i, scores[i], scores[i-1])
		}
	}
}

func TestBestPlainProseScoresNothing(t *testing.T) {
	best := Best("Thinking about how the garden looked this morning after the rain stopped.")
	if best.Confidence != 0 {
		t.Errorf("plain prose scored %s %.2f, want zero confidence", best.Type, best.Confidence)
	}
}
