// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/scribe-engine/pkg/types"
)

var (
	todoPrefixRe = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+`)
	checkboxRe   = regexp.MustCompile(`^\s*(?:[-*•]\s*)?\[([ xX])\]\s*`)
	priorityRe   = regexp.MustCompile(`(?i)\b(?:urgent|asap|important|high priority)\b|!{1,}`)
)

// HeuristicTodo turns bullet, checkbox, and numbered lines into task items.
// A leading non-list line becomes the list title.
func HeuristicTodo(content string) types.TodoData {
	var data types.TodoData

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if m := checkboxRe.FindStringSubmatch(trimmed); m != nil {
			text := checkboxRe.ReplaceAllString(trimmed, "")
			data.Items = append(data.Items, todoItem(text, m[1] != " "))
			continue
		}

		if todoPrefixRe.MatchString(trimmed) {
			text := todoPrefixRe.ReplaceAllString(trimmed, "")
			data.Items = append(data.Items, todoItem(text, false))
			continue
		}

		if data.Title == "" && len(data.Items) == 0 {
			data.Title = trimmed
			continue
		}

		// Dense short lines without list prefixes still read as tasks when
		// the capture is list-shaped overall.
		if len(trimmed) < 60 {
			data.Items = append(data.Items, todoItem(trimmed, false))
		}
	}

	return data
}

func todoItem(text string, done bool) types.TodoItem {
	item := types.TodoItem{Done: done}
	if priorityRe.MatchString(text) {
		item.Priority = "high"
	}
	item.Text = strings.TrimSpace(strings.TrimRight(text, "!"))
	return item
}
