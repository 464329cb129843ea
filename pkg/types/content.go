// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for the capture pipeline:
// content types, classification records, note sections, extraction payloads,
// enhancement queue items, and per-stage configuration.
package types

import "time"

// ContentType categorizes a captured note. The set is closed; every
// pipeline stage dispatches on it with a switch.
type ContentType string

const (
	TypeGeneral ContentType = "general"
	TypeTodo    ContentType = "todo"
	TypeMeeting ContentType = "meeting"
	TypeEmail   ContentType = "email"
	TypeExpense ContentType = "expense"
	TypeRecipe  ContentType = "recipe"
	TypeEvent   ContentType = "event"
	TypeContact ContentType = "contact"
)

// ContentTypes lists every recognized content type in a stable order.
var ContentTypes = []ContentType{
	TypeGeneral, TypeTodo, TypeMeeting, TypeEmail,
	TypeExpense, TypeRecipe, TypeEvent, TypeContact,
}

// Valid reports whether t is one of the recognized content types.
func (t ContentType) Valid() bool {
	for _, ct := range ContentTypes {
		if t == ct {
			return true
		}
	}
	return false
}

// ClassificationMethod identifies which cascade stage produced a type decision.
type ClassificationMethod string

const (
	MethodExplicit  ClassificationMethod = "explicit"
	MethodHeuristic ClassificationMethod = "heuristic"
	MethodLLM       ClassificationMethod = "llm"
	MethodUnknown   ClassificationMethod = "unknown"
)

// ClassificationRecord is the outcome of one classification call. A record
// is produced for every call, including the default "general" outcome.
type ClassificationRecord struct {
	// Type is the assigned content type.
	Type ContentType `json:"type" yaml:"type"`

	// Method is the cascade stage that resolved the type.
	Method ClassificationMethod `json:"method" yaml:"method"`

	// Confidence is in [0,1]. Explicit markers score 1.0; the default
	// outcome scores 0.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// RecordedAt is when the decision was made, used for analytics windows.
	RecordedAt time.Time `json:"recorded_at" yaml:"recorded_at"`
}

// RawCapture is recognized text handed to the pipeline by the capture
// subsystem. Immutable once created.
type RawCapture struct {
	// Text is the recognized text, exactly as produced by OCR or speech
	// transcription.
	Text string `json:"text" yaml:"text"`

	// ImageRef optionally points at the source image.
	ImageRef string `json:"image_ref,omitempty" yaml:"image_ref,omitempty"`
}

// NoteSection is a contiguous, typed sub-span of one capture's text.
type NoteSection struct {
	// ContentType is the type assigned to this section.
	ContentType ContentType `json:"content_type" yaml:"content_type"`

	// Content is the section text with trigger markers removed.
	Content string `json:"content" yaml:"content"`

	// Start and End are byte offsets of the section's span in the original
	// text, before marker removal. Sections never overlap and together
	// cover the original text.
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`

	// SuggestedTags are optional topic labels proposed during splitting.
	SuggestedTags []string `json:"suggested_tags,omitempty" yaml:"suggested_tags,omitempty"`

	// Reasoning optionally explains why the boundary was proposed.
	Reasoning string `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
}

// QueueState is the lifecycle state of an enhancement queue item.
type QueueState string

const (
	StatePending    QueueState = "pending"
	StateProcessing QueueState = "processing"
	StateDone       QueueState = "done"
	StateFailed     QueueState = "failed"
)

// EnhancementItem is one unit of deferred AI work. Items are created when a
// synchronous enhancement attempt definitively failed or was skipped, never
// speculatively.
type EnhancementItem struct {
	// ID is a UUID assigned at enqueue time.
	ID string `json:"id" yaml:"id"`

	// CapturedText is the text awaiting enhancement.
	CapturedText string `json:"captured_text" yaml:"captured_text"`

	// ContentType selects the enhancement prompt.
	ContentType ContentType `json:"content_type" yaml:"content_type"`

	// State is pending, processing, done, or failed.
	State QueueState `json:"state" yaml:"state"`

	// Attempts counts processing cycles. It increments exactly once per
	// cycle; at MaxAttempts the item becomes failed and is never retried.
	Attempts int `json:"attempts" yaml:"attempts"`

	// LastError records the most recent processing failure. Empty on success.
	LastError string `json:"last_error,omitempty" yaml:"last_error,omitempty"`

	// EnqueuedAt is when the item entered the queue.
	EnqueuedAt time.Time `json:"enqueued_at" yaml:"enqueued_at"`

	// UpdatedAt is when the item last changed state.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}
