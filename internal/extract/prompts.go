// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "text/template"

// Each prompt constrains the model to the payload's JSON schema. Field
// names match the json tags in pkg/types exactly; the reply is parsed with
// encoding/json and anything off-schema falls back to the heuristic.

var emailPromptTmpl = template.Must(template.New("email").Parse(`You are a note structuring system. The text below is a draft email. Extract its fields.

Respond with a single JSON object and nothing else:
{"to": ["addr"], "cc": ["addr"], "bcc": ["addr"], "from": "addr", "subject": "...", "body": "..."}

Omit fields that are absent. Preserve the body's original wording.

Text:
{{.Content}}
`))

var eventPromptTmpl = template.Must(template.New("event").Parse(`You are a note structuring system. The text below describes a calendar event. Extract its fields.

Respond with a single JSON object and nothing else:
{"title": "...", "date": "YYYY-MM-DD or as written", "start_time": "...", "end_time": "...", "location": "...", "notes": "..."}

Omit fields that are absent.

Text:
{{.Content}}
`))

var expensePromptTmpl = template.Must(template.New("expense").Parse(`You are a note structuring system. The text below is a receipt or expense note. Extract its fields.

Respond with a single JSON object and nothing else:
{"merchant": "...", "amount": 12.50, "currency": "USD", "category": "...", "payment_method": "...", "date": "..."}

Omit fields that are absent. Amount is a number, not a string.

Text:
{{.Content}}
`))

var recipePromptTmpl = template.Must(template.New("recipe").Parse(`You are a note structuring system. The text below is a recipe. Extract its fields.

Respond with a single JSON object and nothing else:
{"title": "...", "ingredients": ["..."], "steps": ["..."], "servings": "...", "prep_time": "...", "cook_time": "..."}

Omit fields that are absent. Keep ingredient quantities as written.

Text:
{{.Content}}
`))

var todoPromptTmpl = template.Must(template.New("todo").Parse(`You are a note structuring system. The text below is a task list. Extract its items.

Respond with a single JSON object and nothing else:
{"title": "...", "items": [{"text": "...", "done": false, "priority": "high|normal"}]}

Omit fields that are absent. Mark an item done only if the text shows it completed.

Text:
{{.Content}}
`))

var contactPromptTmpl = template.Must(template.New("contact").Parse(`You are a note structuring system. The text below is contact information. Extract its fields.

Respond with a single JSON object and nothing else:
{"name": "...", "phone": "...", "email": "...", "organization": "...", "address": "..."}

Omit fields that are absent.

Text:
{{.Content}}
`))

var meetingPromptTmpl = template.Must(template.New("meeting").Parse(`You are a note structuring system. The text below is meeting notes. Extract its fields.

Respond with a single JSON object and nothing else:
{"title": "...", "date": "...", "attendees": ["..."], "action_items": ["..."], "decisions": ["..."], "summary": "..."}

Omit fields that are absent. Keep action items and decisions in source order.

Text:
{{.Content}}
`))

// enhancePromptTmpl is the type-aware cleanup prompt used by the
// enhancement path: fix recognition artifacts without changing meaning.
var enhancePromptTmpl = template.Must(template.New("enhance").Parse(`You are a text cleanup system. The text below was produced by OCR or speech transcription of a {{.ContentType}} note. Correct recognition errors, spacing, and obvious misspellings. Do not add, remove, or reorder information.

Respond with the corrected text only, no commentary.

Text:
{{.Content}}
`))
