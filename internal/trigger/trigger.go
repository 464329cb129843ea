// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package trigger detects explicit inline markers that name a content type
// and strips them from content. Matching is a pure string scan with no
// network or blocking calls.
package trigger

import (
	"sort"
	"strings"

	"github.com/pdiddy/scribe-engine/pkg/types"
)

// vocabularies maps each content type to its marker tokens. Tokens are
// matched case-insensitively as exact whitespace-delimited tokens, in both
// hashtag and bracketed forms.
var vocabularies = map[types.ContentType][]string{
	types.TypeTodo:    {"todo", "task", "tasks", "checklist"},
	types.TypeMeeting: {"meeting", "minutes"},
	types.TypeEmail:   {"email", "mail"},
	types.TypeExpense: {"expense", "receipt"},
	types.TypeRecipe:  {"recipe"},
	types.TypeEvent:   {"event", "calendar"},
	types.TypeContact: {"contact"},
	types.TypeGeneral: {"note"},
}

// markerTypes fixes the evaluation order across vocabularies so that
// first-match-wins is deterministic when two tokens share a position.
var markerTypes = []types.ContentType{
	types.TypeTodo, types.TypeMeeting, types.TypeEmail, types.TypeExpense,
	types.TypeRecipe, types.TypeEvent, types.TypeContact, types.TypeGeneral,
}

// Match is one marker occurrence.
type Match struct {
	// Type is the content type the marker names.
	Type types.ContentType

	// Pos is the byte offset of the marker in the original text.
	Pos int

	// Token is the matched text as it appears in the source.
	Token string
}

// Result holds everything the parser found in one text.
type Result struct {
	// Matches lists every marker occurrence, ordered by position.
	Matches []Match

	// HasDivider reports whether a line consisting solely of repeated
	// dashes was present.
	HasDivider bool
}

// Resolved returns the authoritative type: the first match by position.
// First-match-wins among distinct marker vocabularies.
func (r Result) Resolved() (types.ContentType, bool) {
	if len(r.Matches) == 0 {
		return "", false
	}
	return r.Matches[0].Type, true
}

// DistinctTypes returns the matched types in order of first occurrence.
func (r Result) DistinctTypes() []types.ContentType {
	seen := make(map[types.ContentType]bool)
	var out []types.ContentType
	for _, m := range r.Matches {
		if !seen[m.Type] {
			seen[m.Type] = true
			out = append(out, m.Type)
		}
	}
	return out
}

// Parse scans text for marker tokens of every vocabulary and for a
// structural divider line.
func Parse(text string) Result {
	var matches []Match
	for _, ct := range markerTypes {
		for _, word := range vocabularies[ct] {
			for _, form := range []string{"#" + word, "[" + word + "]"} {
				for _, pos := range tokenPositions(text, form) {
					matches = append(matches, Match{
						Type:  ct,
						Pos:   pos,
						Token: text[pos : pos+len(form)],
					})
				}
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Pos < matches[j].Pos
	})

	return Result{
		Matches:    matches,
		HasDivider: hasDividerLine(text),
	}
}

// Strip removes every marker occurrence of the chosen type from text.
// Removal is total-occurrence for that type only; markers of other types
// are left in place. A single adjacent space is collapsed with each token,
// so the result is the original text minus the tokens plus that one-space
// cleanup, not a byte-exact token cut.
func Strip(text string, ct types.ContentType) string {
	// Collect spans to remove, then cut back to front so positions stay valid.
	var spans [][2]int
	for _, word := range vocabularies[ct] {
		for _, form := range []string{"#" + word, "[" + word + "]"} {
			for _, pos := range tokenPositions(text, form) {
				spans = append(spans, [2]int{pos, pos + len(form)})
			}
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] > spans[j][0] })

	for _, sp := range spans {
		start, end := sp[0], sp[1]
		// Absorb one following space, or one preceding space at end of text.
		if end < len(text) && text[end] == ' ' {
			end++
		} else if start > 0 && text[start-1] == ' ' {
			start--
		}
		text = text[:start] + text[end:]
	}
	return text
}

// tokenPositions finds byte offsets of form in text as a standalone token:
// preceded and followed by start/end of text or whitespace. Matching folds
// ASCII case byte by byte against the original text, so offsets stay exact
// even when the text holds characters whose Unicode lowercase form has a
// different byte length.
func tokenPositions(text, form string) []int {
	var out []int
	for pos := 0; pos+len(form) <= len(text); pos++ {
		if !foldEqual(text[pos:pos+len(form)], form) {
			continue
		}
		if boundaryBefore(text, pos) && boundaryAfter(text, pos+len(form)) {
			out = append(out, pos)
		}
	}
	return out
}

// foldEqual reports whether s equals form ignoring ASCII case. form is
// always lowercase ASCII and len(s) == len(form).
func foldEqual(s, form string) bool {
	for i := 0; i < len(form); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != form[i] {
			return false
		}
	}
	return true
}

func boundaryBefore(s string, pos int) bool {
	if pos == 0 {
		return true
	}
	c := s[pos-1]
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func boundaryAfter(s string, end int) bool {
	if end >= len(s) {
		return true
	}
	c := s[end]
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ':' || c == ',' || c == '.'
}

// hasDividerLine reports whether any line consists solely of three or more
// dashes.
func hasDividerLine(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) >= 3 && strings.Count(trimmed, "-") == len(trimmed) {
			return true
		}
	}
	return false
}
