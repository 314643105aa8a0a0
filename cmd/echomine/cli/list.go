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

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aucontraire/echomine/pkg/echomine/model"
)

// listRecord is the JSON wire shape for `echomine list --format json`
// (supplemented feature 3).
type listRecord struct {
	ConversationID string `json:"conversation_id"`
	Title          string `json:"title"`
	MessageCount   int    `json:"message_count"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

func newListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list <export-file>",
		Short: "List every conversation in an export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			adapter, err := resolveAdapter(path)
			if err != nil {
				return err
			}

			reporter := newSkipReporter()
			seq, err := adapter.StreamConversations(path, reporter.onSkip, reporter.onProgress)
			if err != nil {
				return err
			}

			var records []listRecord
			out := cmd.OutOrStdout()
			for conv, convErr := range seq {
				if convErr != nil {
					return convErr
				}
				if format == "json" {
					records = append(records, toListRecord(conv))
					continue
				}
				fmt.Fprintf(out, "%-24s %-40s %5d msgs  %s\n",
					conv.ID(), truncate(conv.Title(), 40), conv.MessageCount(),
					conv.UpdatedAtOrCreated().Format("2006-01-02T15:04:05Z"))
			}

			if format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(records); err != nil {
					return err
				}
			}

			reporter.summarize(cmd.ErrOrStderr())
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text|json")
	return cmd
}

func toListRecord(conv model.Conversation) listRecord {
	r := listRecord{
		ConversationID: conv.ID(),
		Title:          conv.Title(),
		MessageCount:   conv.MessageCount(),
		CreatedAt:      conv.CreatedAt().Format("2006-01-02T15:04:05Z"),
	}
	if updated, ok := conv.UpdatedAt(); ok {
		r.UpdatedAt = updated.Format("2006-01-02T15:04:05Z")
	}
	return r
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
