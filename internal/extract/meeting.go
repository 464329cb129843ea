// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/scribe-engine/pkg/types"
)

var (
	attendeesLineRe = regexp.MustCompile(`(?i)^\s*(?:attendees?|present|participants?)\s*:\s*(.+)$`)
	actionLineRe    = regexp.MustCompile(`(?i)^\s*(?:[-*•]\s*)?(?:action(?: item)?\s*:|todo\s*:?|ai\s*:)\s*(.+)$`)
	decisionWordRe  = regexp.MustCompile(`(?i)\b(?:decided|agreed|resolution|resolved)\b`)
	meetingDateRe   = regexp.MustCompile(`(?i)\b(?:\d{1,2}[/.\-]\d{1,2}(?:[/.\-]\d{2,4})?|\d{4}-\d{2}-\d{2})\b`)
)

// HeuristicMeeting fills MeetingData: attendee lines split on commas,
// action-prefixed lines become action items, decision vocabulary marks
// decisions, and the first plain line is the title.
func HeuristicMeeting(content string) types.MeetingData {
	var data types.MeetingData

	if m := meetingDateRe.FindString(content); m != "" {
		data.Date = m
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if m := attendeesLineRe.FindStringSubmatch(trimmed); m != nil {
			for _, name := range strings.Split(m[1], ",") {
				if n := strings.TrimSpace(name); n != "" {
					data.Attendees = append(data.Attendees, n)
				}
			}
			continue
		}

		if m := actionLineRe.FindStringSubmatch(trimmed); m != nil {
			data.ActionItems = append(data.ActionItems, strings.TrimSpace(m[1]))
			continue
		}

		if decisionWordRe.MatchString(trimmed) {
			data.Decisions = append(data.Decisions, strings.TrimLeft(trimmed, "-*• "))
			continue
		}

		if data.Title == "" {
			data.Title = trimmed
		}
	}

	return data
}
