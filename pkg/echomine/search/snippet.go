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
	"fmt"
	"strings"

	"github.com/aucontraire/echomine/internal/econst"
	"github.com/aucontraire/echomine/pkg/echomine/model"
)

// Fallback snippet values (spec §3 SearchResult, §4.7).
const (
	FallbackUnavailable = "[Content unavailable]"
	FallbackNoMatch     = "[No content matched]"
)

const (
	snippetWindow  = econst.SnippetWindow
	snippetLeading = econst.SnippetLeadingContext
)

// extractSnippetFromMessages implements spec §4.7: find the first matched
// message's content, locate the earliest keyword/phrase hit, extract a
// bounded context window, and append a "(+N more)" indicator when more
// than one message matched.
func extractSnippetFromMessages(messages []model.Message, needles []string, matchedMessageIDs []string) string {
	if len(messages) == 0 {
		return FallbackUnavailable
	}
	if len(matchedMessageIDs) == 0 {
		return FallbackNoMatch
	}

	byID := make(map[string]model.Message, len(messages))
	for _, m := range messages {
		byID[m.ID()] = m
	}

	var content string
	found := false
	for _, id := range matchedMessageIDs {
		if m, ok := byID[id]; ok {
			content = m.Content()
			found = true
			break
		}
	}
	if !found {
		return FallbackNoMatch
	}

	snippet := extractSnippet(content, needles)

	if len(matchedMessageIDs) > 1 {
		snippet = fmt.Sprintf("%s (+%d more)", snippet, len(matchedMessageIDs)-1)
	}
	return snippet
}

// extractSnippet extracts a ~100-rune window from content around the first
// case-insensitive occurrence of any needle (keywords and phrases are
// treated uniformly as needles here, per spec §4.7 step 3). If no needle
// is found, returns the leading ~100 runes of content instead.
func extractSnippet(content string, needles []string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return FallbackUnavailable
	}

	runes := []rune(content)
	lowerContent := strings.ToLower(content)

	matchPos := -1
	for _, needle := range needles {
		needle = strings.TrimSpace(needle)
		if needle == "" {
			continue
		}
		byteIdx := strings.Index(lowerContent, strings.ToLower(needle))
		if byteIdx < 0 {
			continue
		}
		// Convert the byte offset (from strings.Index) to a rune offset,
		// since the window below is expressed in runes.
		pos := len([]rune(lowerContent[:byteIdx]))
		if matchPos == -1 || pos < matchPos {
			matchPos = pos
		}
	}

	var start, end int
	if matchPos >= 0 {
		start = matchPos - snippetLeading
		if start < 0 {
			start = 0
		}
		end = start + snippetWindow
	} else {
		start = 0
		end = snippetWindow
	}
	if end > len(runes) {
		end = len(runes)
	}

	snippet := string(runes[start:end])

	truncatedEnd := end < len(runes)
	if truncatedEnd {
		snippet = strings.TrimRight(snippet, " \t\n") + "..."
	}

	if start > 0 {
		if spacePos := strings.Index(snippet, " "); spacePos > 0 && spacePos < snippetLeading {
			snippet = "..." + snippet[spacePos+1:]
		} else {
			snippet = "..." + snippet
		}
	}

	return snippet
}
