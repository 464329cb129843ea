// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/scribe-engine/pkg/types"
)

var (
	contactPhoneRe = regexp.MustCompile(`\+?\d[\d \-().]{6,}\d`)
	orgSuffixRe    = regexp.MustCompile(`(?i)\b(?:inc|llc|ltd|corp|gmbh|co|company|group|labs)\b\.?`)
	streetRe       = regexp.MustCompile(`(?i)\b\d+\s+\w[\w ]*\s(?:st|street|ave|avenue|rd|road|blvd|boulevard|lane|ln|dr|drive|way)\b`)
)

// HeuristicContact fills ContactData from phone/email patterns and line
// shapes: the first plain line is the name, company-suffix lines are the
// organization, street-shaped lines are the address.
func HeuristicContact(content string) types.ContactData {
	var data types.ContactData

	if m := addressRe.FindString(content); m != "" {
		data.Email = m
	}
	if m := contactPhoneRe.FindString(content); m != "" {
		data.Phone = strings.TrimSpace(m)
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		switch {
		case streetRe.MatchString(trimmed):
			if data.Address == "" {
				data.Address = trimmed
			}
		case orgSuffixRe.MatchString(trimmed):
			if data.Organization == "" {
				data.Organization = trimmed
			}
		case data.Name == "" && !strings.ContainsAny(trimmed, "@0123456789"):
			data.Name = trimmed
		}
	}

	return data
}
