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
	"strings"

	"github.com/aucontraire/echomine/pkg/echomine/model"
	"github.com/aucontraire/echomine/pkg/echomine/tokenize"
)

// filtered is the outcome of applying every non-score filter predicate
// (spec §4.5) to one conversation.
type filtered struct {
	messages []model.Message // role-filtered messages, in order
	text     string          // space-joined content of messages
}

// applyFilters runs the filter chain in spec order, short-circuiting on
// first rejection. ok is false if the conversation is rejected.
func applyFilters(conv model.Conversation, q SearchQuery) (filtered, bool) {
	// 1. Date filter: created_at.date() within [from_date, to_date] (spec §4.5 rule 1).
	createdDate := dateOnly(conv.CreatedAt())
	if from := q.FromDate(); from != nil && createdDate.Before(dateOnly(*from)) {
		return filtered{}, false
	}
	if to := q.ToDate(); to != nil && createdDate.After(dateOnly(*to)) {
		return filtered{}, false
	}

	// 2. Title filter.
	if q.HasTitleFilter() {
		if !strings.Contains(strings.ToLower(conv.Title()), strings.ToLower(q.TitleFilter())) {
			return filtered{}, false
		}
	}

	// 3. Message-count filter.
	count := conv.MessageCount()
	if min := q.MinMessages(); min != nil && count < *min {
		return filtered{}, false
	}
	if max := q.MaxMessages(); max != nil && count > *max {
		return filtered{}, false
	}

	// 4. Role filter.
	messages := conv.Messages()
	if role, has := q.RoleFilter(); has {
		restricted := make([]model.Message, 0, len(messages))
		for _, m := range messages {
			if m.Role() == role {
				restricted = append(restricted, m)
			}
		}
		if len(restricted) == 0 && (q.HasKeywordSearch() || q.HasPhraseSearch()) {
			return filtered{}, false
		}
		messages = restricted
	}

	text := joinContent(messages)

	// 5. Phrase filter.
	if q.HasPhraseSearch() {
		lower := strings.ToLower(text)
		matched := false
		for _, phrase := range q.Phrases() {
			if phrase == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(phrase)) {
				matched = true
				break
			}
		}
		if !matched {
			return filtered{}, false
		}
	}

	// 6. Exclude filter.
	if len(q.ExcludeKeywords()) > 0 {
		docTokens := tokenSet(text)
		for _, term := range q.ExcludeKeywords() {
			for _, tok := range tokenize.Tokens(term) {
				if _, present := docTokens[tok]; present {
					return filtered{}, false
				}
			}
		}
	}

	// 7. Match-mode filter: MatchAll needs every keyword token, MatchAny at
	// least one.
	if q.HasKeywordSearch() {
		docTokens := tokenSet(text)
		hasTokens, anyPresent := false, false
		for _, kw := range q.Keywords() {
			for _, tok := range tokenize.Tokens(kw) {
				hasTokens = true
				if _, present := docTokens[tok]; present {
					anyPresent = true
				} else if q.MatchMode() == MatchAll {
					return filtered{}, false
				}
			}
		}
		if hasTokens && !anyPresent {
			return filtered{}, false
		}
	}

	return filtered{messages: messages, text: text}, true
}

func joinContent(messages []model.Message) string {
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		parts = append(parts, m.Content())
	}
	return strings.Join(parts, " ")
}

func tokenSet(text string) map[string]struct{} {
	toks := tokenize.Tokens(text)
	set := make(map[string]struct{}, len(toks))
	for _, t := range toks {
		set[t] = struct{}{}
	}
	return set
}
