// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scribe-engine/internal/enhance"
	"github.com/pdiddy/scribe-engine/internal/extract"
	"github.com/pdiddy/scribe-engine/internal/store"
	"github.com/pdiddy/scribe-engine/pkg/types"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance",
	Short: "Manage the enhancement queue (list, drain, purge)",
	Long: `Enhance manages the durable queue of deferred AI text cleanup. Items land
here when synchronous enhancement fails or is skipped while offline. Use
subcommands to inspect the queue, drain it when connectivity returns, or
purge finished items.`,
}

// --- list subcommand ---

var enhanceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List queued enhancement items",
	Long: `List shows queue items in FIFO order. Failed items stay visible for
diagnostics until purged.`,
	RunE: runEnhanceList,
}

func runEnhanceList(cmd *cobra.Command, args []string) error {
	queue, db, err := openQueue(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	states := statesFromFlag(cmd)
	items, err := queue.Items(context.Background(), states...)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(items) == 0 {
		fmt.Println("Queue is empty.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-8s  %-10s  %-8s  %s\n",
		"ID", "Type", "State", "Attempts", "Enqueued")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, item := range items {
		fmt.Fprintf(os.Stdout, "%-36s  %-8s  %-10s  %-8d  %s\n",
			item.ID, item.ContentType, item.State, item.Attempts,
			item.EnqueuedAt.Format("2006-01-02 15:04:05"))
		if item.LastError != "" {
			fmt.Fprintf(os.Stdout, "    last error: %s\n", item.LastError)
		}
	}
	fmt.Fprintf(os.Stdout, "\n%d item(s)\n", len(items))
	return nil
}

func statesFromFlag(cmd *cobra.Command) []types.QueueState {
	stateFlag, _ := cmd.Flags().GetString("state")
	if stateFlag == "" {
		return nil
	}
	var states []types.QueueState
	for _, s := range strings.Split(stateFlag, ",") {
		states = append(states, types.QueueState(strings.TrimSpace(s)))
	}
	return states
}

// --- drain subcommand ---

var enhanceDrainCmd = &cobra.Command{
	Use:   "drain",
	Short: "Process every pending queue item",
	Long: `Drain processes pending items in FIFO order. Enhanced text is written to
<data-dir>/enhanced/<id>.txt. An item that keeps failing becomes failed
after its attempt limit and is excluded from future drains.`,
	RunE: runEnhanceDrain,
}

func runEnhanceDrain(cmd *cobra.Command, args []string) error {
	queue, db, err := openQueue(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	dataDir, _ := cmd.Flags().GetString("data-dir")
	enhancedDir := filepath.Join(dataDir, "enhanced")
	if err := os.MkdirAll(enhancedDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", enhancedDir, err)
	}

	apply := func(_ context.Context, item types.EnhancementItem, enhanced string) error {
		path := filepath.Join(enhancedDir, item.ID+".txt")
		return os.WriteFile(path, []byte(enhanced), 0o644)
	}

	enhancer := extract.NewEnhancer(aiClientFromFlags(cmd))
	summary, err := queue.Drain(context.Background(), enhancer, apply)
	if err != nil {
		return err
	}

	fmt.Printf("Drained %d item(s): %d enhanced, %d requeued, %d failed\n",
		summary.Total(), summary.Enhanced, summary.Requeued, summary.Failed)
	return nil
}

// --- purge subcommand ---

var enhancePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete done and failed queue items",
	RunE:  runEnhancePurge,
}

func runEnhancePurge(cmd *cobra.Command, args []string) error {
	queue, db, err := openQueue(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	deleted, err := queue.Purge(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Purged %d item(s)\n", deleted)
	return nil
}

// --- shared helpers ---

func openQueue(cmd *cobra.Command) (*enhance.Queue, *sql.DB, error) {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	maxAttempts, _ := cmd.Flags().GetInt("max-attempts")

	db, err := store.Open(dataDir)
	if err != nil {
		return nil, nil, err
	}

	queue := enhance.New(db, types.QueueConfig{
		DataDir:     dataDir,
		MaxAttempts: maxAttempts,
	}, slog.Default())
	if err := queue.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, nil, err
	}
	return queue, db, nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	enhanceCmd.PersistentFlags().String("data-dir", "data", "base directory for durable state")
	enhanceCmd.PersistentFlags().Int("max-attempts", 0, "attempt limit before an item becomes failed (default 3)")

	// List flags.
	enhanceListCmd.Flags().String("state", "", "filter by state: pending, processing, done, failed (comma-separated)")
	enhanceListCmd.Flags().Bool("json", false, "output items as JSON")

	// Drain flags.
	addAIFlags(enhanceDrainCmd)

	// Wire subcommands.
	enhanceCmd.AddCommand(enhanceListCmd)
	enhanceCmd.AddCommand(enhanceDrainCmd)
	enhanceCmd.AddCommand(enhancePurgeCmd)

	rootCmd.AddCommand(enhanceCmd)
}
