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
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aucontraire/echomine/pkg/echomine/export"
)

func newExportCmd() *cobra.Command {
	var (
		metadata   bool
		messageIDs bool
		output     string
	)

	cmd := &cobra.Command{
		Use:   "export <export-file> <conversation-id>",
		Short: "Render one conversation to Markdown",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, conversationID := args[0], args[1]

			adapter, err := resolveAdapter(path)
			if err != nil {
				return err
			}

			conv, ok, err := adapter.GetConversationByID(path, conversationID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("conversation %q not found", conversationID)
			}

			md, err := export.Render(conv, export.Options{
				IncludeMetadata:   metadata,
				IncludeMessageIDs: messageIDs,
			}, time.Now().UTC())
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}
			return os.WriteFile(output, []byte(md), 0o644)
		},
	}

	cmd.Flags().BoolVar(&metadata, "metadata", false, "Include a YAML front matter block")
	cmd.Flags().BoolVar(&messageIDs, "message-ids", false, "Include each message's id as inline code")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: stdout)")

	return cmd
}
