// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scribe-engine/internal/analytics"
	"github.com/pdiddy/scribe-engine/internal/classify"
	"github.com/pdiddy/scribe-engine/internal/store"
	"github.com/pdiddy/scribe-engine/pkg/types"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [text...]",
	Short: "Classify captured text into a content type",
	Long: `Classify runs the classification cascade on one piece of text: explicit
trigger markers win, then content heuristics above the confidence threshold,
then the AI classifier when reachable, then the "general" default. Every
decision is recorded for the stats command unless --no-record is set.`,
	RunE: runClassify,
}

func init() {
	addAIFlags(classifyCmd)
	classifyCmd.Flags().String("file", "", "read text from a file instead of arguments")
	classifyCmd.Flags().Float64("threshold", 0, "minimum heuristic confidence (default 0.6)")
	classifyCmd.Flags().String("data-dir", "data", "base directory for durable state")
	classifyCmd.Flags().Bool("no-record", false, "skip recording the decision for analytics")
	classifyCmd.Flags().Bool("json", false, "output the decision as JSON")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	text, err := readCaptureText(cmd, args)
	if err != nil {
		return err
	}

	threshold, _ := cmd.Flags().GetFloat64("threshold")
	cfg := types.ClassifierConfig{
		AIConfig:  aiConfigFromFlags(cmd),
		Threshold: threshold,
	}

	ctx := context.Background()
	recorder, closeDB, err := recorderFromFlags(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	cascade := classify.New(cfg, aiClientFromFlags(cmd), connectivityFromFlags(cmd), recorder)
	rec := cascade.Classify(ctx, text)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	fmt.Printf("%s (method: %s, confidence: %.2f)\n", rec.Type, rec.Method, rec.Confidence)
	return nil
}

// recorderFromFlags opens the analytics store unless --no-record is set. The
// returned closer is always safe to call.
func recorderFromFlags(ctx context.Context, cmd *cobra.Command) (classify.Recorder, func(), error) {
	if noRecord, _ := cmd.Flags().GetBool("no-record"); noRecord {
		return nil, func() {}, nil
	}

	dataDir, _ := cmd.Flags().GetString("data-dir")
	db, err := store.Open(dataDir)
	if err != nil {
		return nil, func() {}, err
	}

	stats := analytics.New(db)
	if err := stats.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, func() {}, err
	}
	return stats, func() { db.Close() }, nil
}
