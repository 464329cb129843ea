// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/scribe-engine/pkg/types"
)

var addressRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

// emailLabels is the ordered label vocabulary for line-prefix matching.
// Order matters: "to" must not swallow a "total:" line, so prefixes are
// matched against the whole label before the colon.
var emailLabels = []struct {
	label string
	set   func(e *types.EmailData, value string)
}{
	{"to", func(e *types.EmailData, v string) { e.To = append(e.To, splitAddresses(v)...) }},
	{"cc", func(e *types.EmailData, v string) { e.CC = append(e.CC, splitAddresses(v)...) }},
	{"bcc", func(e *types.EmailData, v string) { e.BCC = append(e.BCC, splitAddresses(v)...) }},
	{"from", func(e *types.EmailData, v string) { e.From = strings.TrimSpace(v) }},
	{"subject", func(e *types.EmailData, v string) { e.Subject = strings.TrimSpace(v) }},
}

// HeuristicEmail fills EmailData from line-prefix labels. Once a
// subject-like line has been seen, all subsequent non-empty lines are body.
func HeuristicEmail(content string) types.EmailData {
	var data types.EmailData
	var bodyLines []string
	subjectSeen := false

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if label, value, ok := splitLabel(trimmed); ok && !subjectSeen {
			matched := false
			for _, l := range emailLabels {
				if label == l.label {
					l.set(&data, value)
					matched = true
					break
				}
			}
			if matched {
				if label == "subject" {
					subjectSeen = true
				}
				continue
			}
		}

		if subjectSeen {
			bodyLines = append(bodyLines, trimmed)
		}
	}

	data.Body = strings.Join(bodyLines, "\n")
	return data
}

// splitLabel splits "Label: value" into a lowercased label and its value.
func splitLabel(line string) (label, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	label = strings.ToLower(strings.TrimSpace(line[:idx]))
	if strings.ContainsAny(label, " \t") {
		return "", "", false
	}
	return label, line[idx+1:], true
}

// splitAddresses pulls every address-shaped token from a recipient line.
// Names without addresses are kept whole.
func splitAddresses(value string) []string {
	if addrs := addressRe.FindAllString(value, -1); len(addrs) > 0 {
		return addrs
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
