// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scribe-engine/pkg/types"
)

// FileStorer writes each processed note to its own YAML file under NotesDir,
// named <id>-<type>.yaml.
type FileStorer struct {
	dir string
}

// NewFileStorer builds a FileStorer rooted at cfg.NotesDir.
func NewFileStorer(cfg types.StorerConfig) *FileStorer {
	return &FileStorer{dir: cfg.NotesDir}
}

// Save marshals the note to YAML and writes it to disk.
func (s *FileStorer) Save(_ context.Context, note ProcessedNote) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", s.dir, err)
	}

	data, err := yaml.Marshal(note)
	if err != nil {
		return fmt.Errorf("marshaling note: %w", err)
	}

	name := fmt.Sprintf("%s-%s.yaml", note.ID, note.Section.ContentType)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
