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

package search

import "github.com/aucontraire/echomine/pkg/echomine/model"

// SearchResult is one ranked conversation match. SearchResult is immutable.
type SearchResult struct {
	conversation      model.Conversation
	score             float64
	matchedMessageIDs []string
	snippet           string
}

func newSearchResult(conv model.Conversation, score float64, matchedMessageIDs []string, snippet string) SearchResult {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	ids := make([]string, len(matchedMessageIDs))
	copy(ids, matchedMessageIDs)
	return SearchResult{
		conversation:      conv,
		score:             score,
		matchedMessageIDs: ids,
		snippet:           snippet,
	}
}

// Conversation is the matched conversation.
func (r SearchResult) Conversation() model.Conversation { return r.conversation }

// Score is the normalized BM25 relevance score, in [0, 1].
func (r SearchResult) Score() float64 { return r.score }

// MatchedMessageIDs is the ordered subset of the conversation's message ids
// that contain a keyword or phrase match.
func (r SearchResult) MatchedMessageIDs() []string {
	out := make([]string, len(r.matchedMessageIDs))
	copy(out, r.matchedMessageIDs)
	return out
}

// Snippet is the extracted context snippet, or one of the fallback values
// "[Content unavailable]" / "[No content matched]".
func (r SearchResult) Snippet() string { return r.snippet }

// Record is the JSON-serializable result record named in spec §6 "Output
// formats": conversation_id, score, matched_message_ids, snippet, plus an
// echo of the query that produced it.
type Record struct {
	ConversationID    string     `json:"conversation_id"`
	Score             float64    `json:"score"`
	MatchedMessageIDs []string   `json:"matched_message_ids"`
	Snippet           string     `json:"snippet"`
	Metadata          RecordMeta `json:"metadata"`
}

// RecordMeta echoes the query that produced a Record.
type RecordMeta struct {
	Query QueryEcho `json:"query"`
}

// QueryEcho is the JSON-serializable echo of a SearchQuery.
type QueryEcho struct {
	Keywords        []string `json:"keywords,omitempty"`
	Phrases         []string `json:"phrases,omitempty"`
	MatchMode       string   `json:"match_mode"`
	ExcludeKeywords []string `json:"exclude_keywords,omitempty"`
	RoleFilter      string   `json:"role_filter,omitempty"`
	FromDate        string   `json:"from_date,omitempty"`
	ToDate          string   `json:"to_date,omitempty"`
	MinMessages     *int     `json:"min_messages,omitempty"`
	MaxMessages     *int     `json:"max_messages,omitempty"`
	SortBy          string   `json:"sort_by"`
	SortOrder       string   `json:"sort_order"`
	Limit           int      `json:"limit"`
}

// ToRecord converts r into its JSON wire shape, echoing query.
func (r SearchResult) ToRecord(query SearchQuery) Record {
	echo := QueryEcho{
		Keywords:        query.Keywords(),
		Phrases:         query.Phrases(),
		MatchMode:       string(query.MatchMode()),
		ExcludeKeywords: query.ExcludeKeywords(),
		SortBy:          string(query.SortBy()),
		SortOrder:       string(query.SortOrder()),
		Limit:           query.Limit(),
		MinMessages:     query.MinMessages(),
		MaxMessages:     query.MaxMessages(),
	}
	if role, ok := query.RoleFilter(); ok {
		echo.RoleFilter = string(role)
	}
	if from := query.FromDate(); from != nil {
		echo.FromDate = from.Format("2006-01-02")
	}
	if to := query.ToDate(); to != nil {
		echo.ToDate = to.Format("2006-01-02")
	}

	return Record{
		ConversationID:    r.conversation.ID(),
		Score:             r.score,
		MatchedMessageIDs: r.MatchedMessageIDs(),
		Snippet:           r.snippet,
		Metadata:          RecordMeta{Query: echo},
	}
}
