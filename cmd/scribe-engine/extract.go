// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scribe-engine/internal/extract"
	"github.com/pdiddy/scribe-engine/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract --type <type> [text...]",
	Short: "Extract structured data from typed text",
	Long: `Extract runs the extraction engine for one content type on one piece of
text and prints the structured result as JSON. The AI extractor runs first
when a credential is available; the deterministic heuristic takes over on
any failure, so extraction always produces a result.`,
	RunE: runExtract,
}

func init() {
	addAIFlags(extractCmd)
	extractCmd.Flags().String("file", "", "read text from a file instead of arguments")
	extractCmd.Flags().String("type", "", "content type: email, event, expense, recipe, todo, contact, meeting")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	typeFlag, _ := cmd.Flags().GetString("type")
	ct := types.ContentType(typeFlag)
	if typeFlag == "" {
		return fmt.Errorf("--type is required")
	}
	if !ct.Valid() || ct == types.TypeGeneral {
		return fmt.Errorf("unsupported type %q: use email, event, expense, recipe, todo, contact, or meeting", typeFlag)
	}

	text, err := readCaptureText(cmd, args)
	if err != nil {
		return err
	}

	engine := extract.NewEngine(aiClientFromFlags(cmd))

	ctx := context.Background()
	var result any
	switch ct {
	case types.TypeEmail:
		result = engine.Email.Extract(ctx, text)
	case types.TypeEvent:
		result = engine.Event.Extract(ctx, text)
	case types.TypeExpense:
		result = engine.Expense.Extract(ctx, text)
	case types.TypeRecipe:
		result = engine.Recipe.Extract(ctx, text)
	case types.TypeTodo:
		result = engine.Todo.Extract(ctx, text)
	case types.TypeContact:
		result = engine.Contact.Extract(ctx, text)
	case types.TypeMeeting:
		result = engine.Meeting.Extract(ctx, text)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
