// Copyright 2026 Benoit Pereira da Silva
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli wires the echomine library (pkg/echomine/...) into a cobra
// command tree: list, search, export, and get. The library stays
// logger-agnostic; this package is the one place a *zap.Logger is
// constructed and threaded through as on_skip/progress callbacks.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aucontraire/echomine/pkg/echomine/ingest"
	"github.com/aucontraire/echomine/pkg/echomine/provider"
)

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	provider string
	verbose  bool
}

var flags rootFlags

var logger *zap.Logger

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "echomine",
		Short:         "List, search, and export AI chat transcript exports",
		Long:          "echomine ingests exported OpenAI and Claude chat transcripts and lists, full-text searches, or renders them to Markdown, streaming so memory stays independent of file size.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(flags.verbose)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			logger = l
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flags.provider, "provider", "auto", "Provider override: auto|openai|claude (bypasses detection when not auto)")
	cmd.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "Enable development-mode diagnostic logging to stderr")

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newGetCmd())

	return cmd
}

// Execute runs the echomine command tree.
func Execute() error {
	return newRootCmd().Execute()
}

// newLogger builds the zap.Logger the CLI hands to skip/progress callbacks:
// a production JSON encoder by default, or a development console encoder
// under --verbose (spec's ambient-stack logging section).
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// resolveAdapter picks the ingest.Adapter for path: an explicit --provider
// override bypasses detection (supplemented feature 1); "auto" (the
// default) runs provider.Detect.
func resolveAdapter(path string) (ingest.Adapter, error) {
	switch strings.ToLower(strings.TrimSpace(flags.provider)) {
	case "", "auto":
		return ingest.Open(path)
	case "openai":
		return ingest.New(provider.OpenAI), nil
	case "claude":
		return ingest.New(provider.Claude), nil
	default:
		return nil, fmt.Errorf("unknown --provider %q (expected auto, openai, or claude)", flags.provider)
	}
}
