// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scribe-engine/internal/analytics"
	"github.com/pdiddy/scribe-engine/internal/classify"
	"github.com/pdiddy/scribe-engine/internal/enhance"
	"github.com/pdiddy/scribe-engine/internal/extract"
	"github.com/pdiddy/scribe-engine/internal/pipeline"
	"github.com/pdiddy/scribe-engine/internal/split"
	"github.com/pdiddy/scribe-engine/internal/store"
	"github.com/pdiddy/scribe-engine/pkg/types"
)

var processCmd = &cobra.Command{
	Use:   "process [text...]",
	Short: "Run a capture through the full ingestion pipeline",
	Long: `Process runs one capture end to end: split into typed sections, extract
structured data per section, enhance the text when the model is reachable,
and write one YAML note per section into the notes directory. Enhancement
that fails or is skipped lands on the durable queue for a later
"enhance drain".`,
	RunE: runProcess,
}

func init() {
	addAIFlags(processCmd)
	processCmd.Flags().String("file", "", "read text from a file instead of arguments")
	processCmd.Flags().Float64("threshold", 0, "minimum heuristic confidence (default 0.6)")
	processCmd.Flags().String("data-dir", "data", "base directory for durable state")
	processCmd.Flags().String("notes-dir", "notes", "directory processed notes are written to")
	processCmd.Flags().Bool("json", false, "output processed notes as JSON")

	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	text, err := readCaptureText(cmd, args)
	if err != nil {
		return err
	}

	dataDir, _ := cmd.Flags().GetString("data-dir")
	notesDir, _ := cmd.Flags().GetString("notes-dir")
	threshold, _ := cmd.Flags().GetFloat64("threshold")

	db, err := store.Open(dataDir)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()

	stats := analytics.New(db)
	if err := stats.EnsureSchema(ctx); err != nil {
		return err
	}

	queue := enhance.New(db, types.QueueConfig{DataDir: dataDir}, slog.Default())
	if err := queue.EnsureSchema(ctx); err != nil {
		return err
	}

	client := aiClientFromFlags(cmd)
	online := connectivityFromFlags(cmd)

	cascade := classify.New(types.ClassifierConfig{
		AIConfig:  aiConfigFromFlags(cmd),
		Threshold: threshold,
	}, client, online, stats)

	splitter := split.New(types.SplitterConfig{AIConfig: aiConfigFromFlags(cmd)}, cascade, client, online)

	pipe, err := pipeline.New(pipeline.Options{
		Splitter: splitter,
		Engine:   extract.NewEngine(client),
		Enhancer: extract.NewEnhancer(client),
		Queue:    queue,
		Storer:   pipeline.NewFileStorer(types.StorerConfig{NotesDir: notesDir}),
		Online:   online,
	})
	if err != nil {
		return err
	}

	notes, err := pipe.Process(ctx, types.RawCapture{Text: text})
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(notes)
	}

	for _, note := range notes {
		enhanced := "deferred"
		if note.EnhancedText != "" {
			enhanced = "done"
		}
		fmt.Printf("%s  %-8s  method: %-9s  confidence: %.2f  enhancement: %s\n",
			note.ID, note.Section.ContentType, note.Classification.Method,
			note.Classification.Confidence, enhanced)
	}
	fmt.Printf("\n%d note(s) written to %s\n", len(notes), notesDir)
	return nil
}
