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
	"time"

	"github.com/spf13/cobra"

	"github.com/aucontraire/echomine/pkg/echomine/model"
	"github.com/aucontraire/echomine/pkg/echomine/search"
)

func newSearchCmd() *cobra.Command {
	var (
		keywords    []string
		phrases     []string
		exclude     []string
		matchAll    bool
		titleFilter string
		role        string
		fromDate    string
		toDate      string
		minMessages int
		maxMessages int
		sortBy      string
		sortOrder   string
		limit       int
		format      string
	)

	cmd := &cobra.Command{
		Use:   "search <export-file>",
		Short: "Full-text BM25 search over an export file's conversations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			opts := []search.QueryOption{
				search.WithKeywords(keywords...),
				search.WithPhrases(phrases...),
				search.WithExcludeKeywords(exclude...),
				search.WithLimit(limit),
			}
			if matchAll {
				opts = append(opts, search.WithMatchMode(search.MatchAll))
			}
			if titleFilter != "" {
				opts = append(opts, search.WithTitleFilter(titleFilter))
			}
			if role != "" {
				r := model.Role(role)
				if !r.Valid() {
					return fmt.Errorf("--role must be one of user, assistant, system")
				}
				opts = append(opts, search.WithRoleFilter(r))
			}
			from, to, err := parseDateRange(fromDate, toDate)
			if err != nil {
				return err
			}
			if from != nil || to != nil {
				opts = append(opts, search.WithDateRange(from, to))
			}
			minP, maxP := optionalInt(minMessages), optionalInt(maxMessages)
			if minP != nil || maxP != nil {
				opts = append(opts, search.WithMessageCountRange(minP, maxP))
			}
			if sortBy != "" || sortOrder != "" {
				opts = append(opts, search.WithSort(search.SortKey(sortBy), search.SortOrder(sortOrder)))
			}

			query, err := search.NewSearchQuery(opts...)
			if err != nil {
				return err
			}

			adapter, err := resolveAdapter(path)
			if err != nil {
				return err
			}

			results, err := adapter.Search(path, query)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				records := make([]search.Record, len(results))
				for i, r := range results {
					records[i] = r.ToRecord(query)
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			for _, r := range results {
				fmt.Fprintf(out, "%-24s score=%.3f  %s\n", r.Conversation().ID(), r.Score(), r.Conversation().Title())
				fmt.Fprintf(out, "  %s\n", r.Snippet())
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&keywords, "keyword", nil, "Scoring keyword (repeatable)")
	cmd.Flags().StringSliceVar(&phrases, "phrase", nil, "Literal phrase filter (repeatable)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Excluded keyword (repeatable)")
	cmd.Flags().BoolVar(&matchAll, "match-all", false, "Require every keyword to match (default: match any)")
	cmd.Flags().StringVar(&titleFilter, "title", "", "Case-insensitive title substring filter")
	cmd.Flags().StringVar(&role, "role", "", "Restrict scoring to one role: user|assistant|system")
	cmd.Flags().StringVar(&fromDate, "from", "", "Inclusive lower date bound (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toDate, "to", "", "Inclusive upper date bound (YYYY-MM-DD)")
	cmd.Flags().IntVar(&minMessages, "min-messages", 0, "Inclusive lower message-count bound")
	cmd.Flags().IntVar(&maxMessages, "max-messages", 0, "Inclusive upper message-count bound")
	cmd.Flags().StringVar(&sortBy, "sort-by", "", "Sort key: score|date|title|messages (default: score)")
	cmd.Flags().StringVar(&sortOrder, "sort-order", "", "Sort order: asc|desc (default: desc)")
	cmd.Flags().IntVar(&limit, "limit", search.DefaultLimit, "Maximum results to return (max 1000)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text|json")

	return cmd
}

func optionalInt(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func parseDateRange(from, to string) (*time.Time, *time.Time, error) {
	var fromT, toT *time.Time
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return nil, nil, fmt.Errorf("--from: %w", err)
		}
		fromT = &t
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return nil, nil, fmt.Errorf("--to: %w", err)
		}
		toT = &t
	}
	return fromT, toT, nil
}
