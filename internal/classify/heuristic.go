// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns a content type to recognized text through a
// priority cascade: explicit trigger markers, structural heuristics, an
// optional remote model, and a "general" default. Classification never
// returns an error; the worst outcome is the default record.
package classify

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/scribe-engine/pkg/types"
)

// Score is one heuristic rule's verdict.
type Score struct {
	Type       types.ContentType
	Confidence float64
}

var (
	fieldPrefixRe = regexp.MustCompile(`(?im)^(from|to|cc|bcc|subject)\s*:`)
	emailAddrRe   = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe       = regexp.MustCompile(`\+?\d[\d \-().]{6,}\d`)
	amountRe      = regexp.MustCompile(`[$€£¥]\s?\d+(?:[.,]\d{1,2})?|\d+(?:[.,]\d{1,2})?\s?(?:[$€£¥]|USD|EUR|GBP)`)
	dateRe        = regexp.MustCompile(`(?i)\b(?:\d{1,2}[/.\-]\d{1,2}(?:[/.\-]\d{2,4})?|\d{4}-\d{2}-\d{2}|(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}(?:st|nd|rd|th)?)\b`)
	timeRe        = regexp.MustCompile(`(?i)\b\d{1,2}(?::\d{2})?\s?(?:am|pm)\b|\b\d{1,2}:\d{2}\b`)
	bulletRe      = regexp.MustCompile(`^\s*(?:[-*•]|\[[ xX]\]|\d+[.)])\s+`)
	unitRe        = regexp.MustCompile(`(?i)\b\d+(?:[./]\d+)?\s?(?:cups?|tbsp|tsp|oz|ounces?|grams?|g|kg|ml|l|lbs?|pounds?|cloves?|slices?)\b`)
	recipeHeadRe  = regexp.MustCompile(`(?im)^\s*(?:ingredients?|directions?|instructions?|steps|method)\s*:?\s*$`)
	meetingWordRe = regexp.MustCompile(`(?i)\b(attendees?|agenda|minutes|action items?|discussed|decisions?|follow[ -]?up)\b`)
	paymentWordRe = regexp.MustCompile(`(?i)\b(cash|credit|debit|visa|mastercard|amex|paypal|venmo|card)\b`)
)

// ScoreAll evaluates every heuristic rule against text and returns the
// verdicts sorted by confidence, highest first. Identical input always
// yields an identical ordering: ties break on the fixed rule order.
func ScoreAll(text string) []Score {
	lines := nonEmptyLines(text)

	scores := []Score{
		{types.TypeEmail, scoreEmail(text)},
		{types.TypeTodo, scoreTodo(lines)},
		{types.TypeContact, scoreContact(text, lines)},
		{types.TypeExpense, scoreExpense(text)},
		{types.TypeRecipe, scoreRecipe(text)},
		{types.TypeEvent, scoreEvent(text)},
		{types.TypeMeeting, scoreMeeting(text)},
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Confidence > scores[j].Confidence
	})
	return scores
}

// Best returns the highest-confidence heuristic verdict.
func Best(text string) Score {
	return ScoreAll(text)[0]
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// scoreEmail looks for repeated field-prefix tokens like "From:"/"Subject:".
func scoreEmail(text string) float64 {
	n := len(fieldPrefixRe.FindAllString(text, -1))
	switch {
	case n >= 2:
		return 0.8
	case n == 1:
		return 0.55
	default:
		return 0
	}
}

// scoreTodo looks for dense bullet, checkbox, or numbered lines, or a run of
// short list-shaped lines.
func scoreTodo(lines []string) float64 {
	if len(lines) == 0 {
		return 0
	}
	bullets := 0
	short := 0
	for _, line := range lines {
		if bulletRe.MatchString(line) {
			bullets++
		}
		if len(strings.TrimSpace(line)) < 30 {
			short++
		}
	}
	if bullets >= 2 {
		frac := float64(bullets) / float64(len(lines))
		conf := 0.5 + 0.4*frac
		if conf > 0.9 {
			conf = 0.9
		}
		return conf
	}
	if len(lines) >= 4 && short == len(lines) {
		return 0.62
	}
	return 0
}

// scoreContact looks for contact-card-shaped content: a phone number and an
// address-like email on separate short lines.
func scoreContact(text string, lines []string) float64 {
	hasPhone := phoneRe.MatchString(text)
	hasEmail := emailAddrRe.MatchString(text)
	switch {
	case hasPhone && hasEmail && len(lines) <= 8:
		return 0.75
	case hasPhone && len(lines) <= 5:
		return 0.45
	default:
		return 0
	}
}

// scoreExpense anchors on currency amounts.
func scoreExpense(text string) float64 {
	amounts := len(amountRe.FindAllString(text, -1))
	if amounts == 0 {
		return 0
	}
	conf := 0.55
	if amounts >= 2 {
		conf += 0.1
	}
	if paymentWordRe.MatchString(text) {
		conf += 0.15
	}
	return conf
}

// scoreRecipe looks for section headers first, measurement-unit lines second.
func scoreRecipe(text string) float64 {
	if recipeHeadRe.MatchString(text) {
		return 0.85
	}
	if len(unitRe.FindAllString(text, -1)) >= 2 {
		return 0.6
	}
	return 0
}

// scoreEvent needs a date, ideally with a time.
func scoreEvent(text string) float64 {
	hasDate := dateRe.MatchString(text)
	hasTime := timeRe.MatchString(text)
	switch {
	case hasDate && hasTime:
		return 0.7
	case hasDate:
		return 0.45
	default:
		return 0
	}
}

// scoreMeeting counts meeting vocabulary.
func scoreMeeting(text string) float64 {
	n := len(meetingWordRe.FindAllString(text, -1))
	switch {
	case n >= 2:
		return 0.7
	case n == 1:
		return 0.4
	default:
		return 0
	}
}
