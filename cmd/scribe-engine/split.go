// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scribe-engine/internal/classify"
	"github.com/pdiddy/scribe-engine/internal/split"
	"github.com/pdiddy/scribe-engine/pkg/types"
)

var splitCmd = &cobra.Command{
	Use:   "split [text...]",
	Short: "Split a capture into typed sections",
	Long: `Split partitions one capture into ordered, typed sections. Distinct
trigger markers define the boundaries; unmarked multi-topic text is split
semantically by the model when reachable; otherwise the capture stays one
section typed by the classification cascade.`,
	RunE: runSplit,
}

func init() {
	addAIFlags(splitCmd)
	splitCmd.Flags().String("file", "", "read text from a file instead of arguments")
	splitCmd.Flags().Float64("threshold", 0, "minimum heuristic confidence (default 0.6)")
	splitCmd.Flags().Int("min-section-len", 0, "minimum AI-proposed section length in bytes (default 12)")
	splitCmd.Flags().String("data-dir", "data", "base directory for durable state")
	splitCmd.Flags().Bool("no-record", false, "skip recording decisions for analytics")
	splitCmd.Flags().Bool("json", false, "output sections as JSON")

	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	text, err := readCaptureText(cmd, args)
	if err != nil {
		return err
	}

	threshold, _ := cmd.Flags().GetFloat64("threshold")
	minLen, _ := cmd.Flags().GetInt("min-section-len")

	ctx := context.Background()
	recorder, closeDB, err := recorderFromFlags(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	client := aiClientFromFlags(cmd)
	online := connectivityFromFlags(cmd)
	cascade := classify.New(types.ClassifierConfig{
		AIConfig:  aiConfigFromFlags(cmd),
		Threshold: threshold,
	}, client, online, recorder)

	splitter := split.New(types.SplitterConfig{
		AIConfig:      aiConfigFromFlags(cmd),
		MinSectionLen: minLen,
	}, cascade, client, online)

	classified := splitter.SplitClassified(ctx, text)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(classified)
	}

	for i, c := range classified {
		fmt.Printf("[%d] %s (%d-%d, method: %s, confidence: %.2f)\n",
			i+1, c.Section.ContentType, c.Section.Start, c.Section.End,
			c.Record.Method, c.Record.Confidence)
		fmt.Println(c.Section.Content)
		if i < len(classified)-1 {
			fmt.Println()
		}
	}
	return nil
}
