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

import (
	"iter"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/aucontraire/echomine/pkg/echomine/model"
	"github.com/aucontraire/echomine/pkg/echomine/tokenize"
)

// SkipFunc and ProgressFunc mirror the adapter callback shapes (package
// ingest), duplicated here with no dependency on package ingest so search
// stays a leaf package; package ingest depends on search, not vice versa.
type SkipFunc func(index int, id, kind, detail string)
type ProgressFunc func(count int)

// StreamFunc opens one streaming pass over a provider export. Each call must
// independently open and release its own resources, exactly like
// ingest.Adapter.StreamConversations. Execute calls it once.
type StreamFunc func(onSkip SkipFunc, progress ProgressFunc) (iter.Seq2[model.Conversation, error], error)

// surviving is a Pass-1 record: everything Pass 2 needs to score, sort, and
// snippet one conversation, without retaining the raw source bytes.
type surviving struct {
	conversation model.Conversation
	stats        docStats
	matchedIDs   []string
}

// Execute runs the two-pass search described in spec §4.6 and returns the
// final, already-sorted, already-limited sequence of SearchResults. It is
// itself eager (it must see every surviving document before it can sort),
// but the result it returns is bounded to at most query.Limit() items. The
// source is streamed once (Pass 1); Pass 2 scores the survivors retained in
// memory, each holding its normalized conversation, so memory grows with
// the number of conversations that pass the filters.
func Execute(stream StreamFunc, query SearchQuery) ([]SearchResult, error) {
	stats := newCorpusStats(query.Keywords())

	var survivors []surviving

	seq, err := stream(nil, nil)
	if err != nil {
		return nil, err
	}
	for conv, convErr := range seq {
		if convErr != nil {
			return nil, convErr
		}
		f, ok := applyFilters(conv, query)
		if !ok {
			continue
		}

		var ds docStats
		if query.HasScoringCriteria() {
			ds = stats.observe(f.text)
		}

		matchedIDs := matchedMessageIDs(f.messages, query)

		survivors = append(survivors, surviving{
			conversation: conv,
			stats:        ds,
			matchedIDs:   matchedIDs,
		})
	}

	avgdl := stats.averageLength()

	needles := append(append([]string(nil), query.Keywords()...), query.Phrases()...)

	results := make([]SearchResult, 0, len(survivors))
	for _, s := range survivors {
		var raw float64
		if query.HasScoringCriteria() {
			raw = score(stats, s.stats, avgdl)
		}
		normalized := normalizeScore(raw)

		snippet := extractSnippetFromMessages(s.conversation.Messages(), needles, s.matchedIDs)

		results = append(results, newSearchResult(s.conversation, normalized, s.matchedIDs, snippet))
	}

	sortResults(results, query)

	if len(results) > query.Limit() {
		results = results[:query.Limit()]
	}
	return results, nil
}

// matchedMessageIDs returns, in order, the ids of messages (from the
// role-filtered set) that contain a keyword token or a phrase substring.
// If the query has no scoring criteria at all, no message is considered
// "matched" (spec §4.6: "If the filter set is empty... score is 0 for
// all" -- there is nothing to highlight either).
func matchedMessageIDs(messages []model.Message, query SearchQuery) []string {
	if !query.HasScoringCriteria() {
		return nil
	}

	keywordTokens := make(map[string]struct{})
	for _, kw := range query.Keywords() {
		for _, tok := range tokenize.Tokens(kw) {
			keywordTokens[tok] = struct{}{}
		}
	}
	phrases := query.Phrases()

	var ids []string
	for _, m := range messages {
		content := m.Content()
		if containsAnyToken(content, keywordTokens) || containsAnyPhrase(content, phrases) {
			ids = append(ids, m.ID())
		}
	}
	return ids
}

func containsAnyToken(content string, tokens map[string]struct{}) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokenize.Tokens(content) {
		if _, ok := tokens[tok]; ok {
			return true
		}
	}
	return false
}

func containsAnyPhrase(content string, phrases []string) bool {
	if len(phrases) == 0 {
		return false
	}
	lower := strings.ToLower(content)
	for _, phrase := range phrases {
		if phrase == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}

var titleCollator = collate.New(language.Und, collate.IgnoreCase)

// sortResults sorts in place per query.SortBy()/SortOrder(), tie-broken
// always by conversation id ascending, stably (spec §4.6).
func sortResults(results []SearchResult, query SearchQuery) {
	asc := query.SortOrder() == SortAsc

	less := func(i, j int) bool {
		a, b := results[i], results[j]
		var cmp int
		switch query.SortBy() {
		case SortByDate:
			cmp = compareTime(a.Conversation().UpdatedAtOrCreated(), b.Conversation().UpdatedAtOrCreated())
		case SortByTitle:
			cmp = titleCollator.CompareString(a.Conversation().Title(), b.Conversation().Title())
		case SortByMessages:
			cmp = a.Conversation().MessageCount() - b.Conversation().MessageCount()
		default: // SortByScore
			cmp = compareFloat(a.Score(), b.Score())
		}

		if cmp == 0 {
			// Tie-break: always conversation_id ascending, regardless of
			// sort_order.
			return a.Conversation().ID() < b.Conversation().ID()
		}
		if asc {
			return cmp < 0
		}
		return cmp > 0
	}

	sort.SliceStable(results, less)
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
