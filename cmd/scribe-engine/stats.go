// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scribe-engine/internal/analytics"
	"github.com/pdiddy/scribe-engine/internal/store"
	"github.com/pdiddy/scribe-engine/pkg/types"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize recorded classification decisions",
	Long: `Stats aggregates the classification records written by classify, split,
and process: how often each content type was assigned and by which method
(explicit marker, heuristic, AI, or the general default). Use --since to
restrict the window and --type to focus on one content type.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().String("data-dir", "data", "base directory for durable state")
	statsCmd.Flags().Duration("since", 0, "restrict to records newer than this age (e.g. 24h, 7d as 168h)")
	statsCmd.Flags().String("type", "", "restrict to one content type")
	statsCmd.Flags().Bool("json", false, "output the summary as JSON")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	since, _ := cmd.Flags().GetDuration("since")
	typeFlag, _ := cmd.Flags().GetString("type")

	ct := types.ContentType(typeFlag)
	if typeFlag != "" && !ct.Valid() {
		return fmt.Errorf("unknown content type %q", typeFlag)
	}

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

	opts := analytics.QueryOptions{Type: ct}
	if since > 0 {
		opts.Since = time.Now().Add(-since)
	}

	summary, err := stats.Summarize(ctx, opts)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	if summary.Total == 0 {
		fmt.Println("No classification records in the window.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-10s  %-10s  %-7s  %s\n", "Type", "Method", "Count", "Share")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 40))
	for _, mc := range summary.Breakdown {
		fmt.Fprintf(os.Stdout, "%-10s  %-10s  %-7d  %5.1f%%\n",
			mc.Type, mc.Method, mc.Count, mc.Share*100)
	}
	fmt.Fprintf(os.Stdout, "\n%d record(s)\n", summary.Total)
	return nil
}
