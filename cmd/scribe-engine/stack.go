// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scribe-engine/internal/ai"
	"github.com/pdiddy/scribe-engine/pkg/types"
)

const (
	anthropicKeySecret = "anthropic-api-key"
	probeTimeout       = 3 * time.Second
)

// readCaptureText resolves the input text for a stage command: the --file
// flag wins, then joined positional args, then stdin.
func readCaptureText(cmd *cobra.Command, args []string) (string, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("provide text as arguments, via --file, or on stdin")
	}
	return string(data), nil
}

// aiConfigFromFlags assembles an AIConfig from the command's --model flag,
// the viper configuration, and the loaded secrets, in that order.
func aiConfigFromFlags(cmd *cobra.Command) types.AIConfig {
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("model")
	}
	return types.AIConfig{
		Model:  model,
		APIKey: secretDefault(anthropicKeySecret, viper.GetString("api_key")),
	}
}

// aiClientFromFlags builds the model client, or nil when --no-ai is set.
func aiClientFromFlags(cmd *cobra.Command) ai.Client {
	if noAI, _ := cmd.Flags().GetBool("no-ai"); noAI {
		return nil
	}
	return ai.NewAnthropic(aiConfigFromFlags(cmd))
}

// connectivityFromFlags returns the connectivity check: --offline forces the
// offline path, otherwise a TCP dial probe decides.
func connectivityFromFlags(cmd *cobra.Command) ai.Connectivity {
	if offline, _ := cmd.Flags().GetBool("offline"); offline {
		return ai.Always(false)
	}
	return ai.DialProbe(probeTimeout)
}

// addAIFlags registers the flags every model-using command shares.
func addAIFlags(cmd *cobra.Command) {
	cmd.Flags().String("model", "", "AI model identifier")
	cmd.Flags().Bool("no-ai", false, "disable the AI path, run heuristics only")
	cmd.Flags().Bool("offline", false, "assume the model endpoint is unreachable")
}
