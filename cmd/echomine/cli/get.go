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
)

// newGetCmd groups the point-lookup operations spec §4.4 calls out
// separately from the streaming ones: get_conversation_by_id and
// get_message_by_id.
func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Point lookups: a single conversation or message by id",
	}
	cmd.AddCommand(newGetConversationCmd())
	cmd.AddCommand(newGetMessageCmd())
	return cmd
}

func newGetConversationCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "conversation <export-file> <conversation-id>",
		Short: "Fetch one conversation by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, id := args[0], args[1]

			adapter, err := resolveAdapter(path)
			if err != nil {
				return err
			}
			conv, ok, err := adapter.GetConversationByID(path, id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("conversation %q not found", id)
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(toListRecord(conv))
			}
			fmt.Fprintf(out, "%s\t%s\t%d messages\n", conv.ID(), conv.Title(), conv.MessageCount())
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text|json")
	return cmd
}

func newGetMessageCmd() *cobra.Command {
	var (
		conversationID string
		format         string
	)

	cmd := &cobra.Command{
		Use:   "message <export-file> <message-id>",
		Short: "Fetch one message by id, optionally narrowed to one conversation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, id := args[0], args[1]

			adapter, err := resolveAdapter(path)
			if err != nil {
				return err
			}
			msg, conv, ok, err := adapter.GetMessageByID(path, id, conversationID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("message %q not found", id)
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					ConversationID string `json:"conversation_id"`
					MessageID      string `json:"message_id"`
					Role           string `json:"role"`
					Content        string `json:"content"`
				}{conv.ID(), msg.ID(), string(msg.Role()), msg.Content()})
			}
			fmt.Fprintf(out, "[%s] %s: %s\n", conv.ID(), msg.Role(), msg.Content())
			return nil
		},
	}
	cmd.Flags().StringVar(&conversationID, "conversation", "", "Narrow the scan to this conversation id")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text|json")
	return cmd
}
