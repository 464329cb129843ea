// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/scribe-engine/pkg/types"
)

var (
	eventDateRe     = regexp.MustCompile(`(?i)\b(?:\d{1,2}[/.\-]\d{1,2}(?:[/.\-]\d{2,4})?|\d{4}-\d{2}-\d{2}|(?:mon|tues?|wednes|thurs?|fri|satur|sun)day|(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?|tomorrow|today)\b`)
	eventTimeRe     = regexp.MustCompile(`(?i)\b\d{1,2}(?::\d{2})?\s?(?:am|pm)\b|\b\d{1,2}:\d{2}\b`)
	locationLabelRe = regexp.MustCompile(`(?i)^\s*(?:location|where|venue|place)\s*:?\s*(.*)$`)
)

// HeuristicEvent fills EventData with regex-based date and time extraction.
// The location comes from a "location:"-labelled line or the line following
// a bare location-keyword line.
func HeuristicEvent(content string) types.EventData {
	var data types.EventData

	if m := eventDateRe.FindString(content); m != "" {
		data.Date = m
	}

	times := eventTimeRe.FindAllString(content, -1)
	if len(times) > 0 {
		data.StartTime = strings.TrimSpace(times[0])
	}
	if len(times) > 1 {
		data.EndTime = strings.TrimSpace(times[1])
	}

	lines := strings.Split(content, "\n")
	expectLocation := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if expectLocation {
			data.Location = trimmed
			expectLocation = false
			continue
		}

		if m := locationLabelRe.FindStringSubmatch(trimmed); m != nil {
			value := strings.TrimSpace(m[1])
			if value == "" {
				// Bare keyword line: the location is on the next line.
				expectLocation = true
			} else {
				data.Location = value
			}
			continue
		}

		if data.Title == "" && !isScheduleLine(trimmed) {
			data.Title = trimmed
		}
	}

	return data
}

// isScheduleLine reports whether the line carries only date/time content.
func isScheduleLine(line string) bool {
	stripped := eventDateRe.ReplaceAllString(line, "")
	stripped = eventTimeRe.ReplaceAllString(stripped, "")
	stripped = strings.Trim(stripped, " \t,-–@atAT")
	return strings.TrimSpace(stripped) == ""
}
