// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// AIConfig holds shared settings for stages that call the remote text service.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API. An empty key disables
	// the AI path entirely; heuristic stages still run.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens caps the model reply length (default 1024).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Timeout bounds a single model call (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ClassifierConfig holds settings for the classification cascade.
type ClassifierConfig struct {
	AIConfig `yaml:",inline"`

	// Threshold is the minimum heuristic confidence required to accept a
	// heuristic decision without consulting the model (default 0.6).
	Threshold float64 `json:"threshold" yaml:"threshold"`
}

// SplitterConfig holds settings for the section splitter.
type SplitterConfig struct {
	AIConfig `yaml:",inline"`

	// MinSectionLen is the minimum section length, in bytes, accepted from
	// an AI-proposed semantic split (default 12).
	MinSectionLen int `json:"min_section_len" yaml:"min_section_len"`
}

// ExtractionConfig holds settings for the extraction engine.
type ExtractionConfig struct {
	AIConfig `yaml:",inline"`
}

// QueueConfig holds settings for the enhancement queue.
type QueueConfig struct {
	// DataDir is the base directory for durable state (contains index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxAttempts is the processing-cycle limit before an item becomes
	// failed (default 3).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`

	// ItemTimeout bounds the processing of a single item during a drain
	// (default 60s).
	ItemTimeout time.Duration `json:"item_timeout" yaml:"item_timeout"`
}

// AnalyticsConfig holds settings for classification analytics.
type AnalyticsConfig struct {
	// DataDir is the base directory for durable state (contains index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// StorerConfig holds settings for the default note storer.
type StorerConfig struct {
	// NotesDir is the directory processed notes are written to.
	NotesDir string `json:"notes_dir" yaml:"notes_dir"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Classifier ClassifierConfig `json:"classifier" yaml:"classifier"`
	Splitter   SplitterConfig   `json:"splitter" yaml:"splitter"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Queue      QueueConfig      `json:"queue" yaml:"queue"`
	Analytics  AnalyticsConfig  `json:"analytics" yaml:"analytics"`
	Storer     StorerConfig     `json:"storer" yaml:"storer"`
}
