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

// Package search implements the streaming BM25 ranker: corpus statistics,
// filter predicates, snippet extraction, and the two-pass orchestrator
// (spec §4.5, §4.6, §4.7).
package search

import (
	"strings"
	"time"

	"github.com/aucontraire/echomine/pkg/echomine/errrs"
	"github.com/aucontraire/echomine/pkg/echomine/model"
)

// MatchMode controls how multiple keywords combine (spec §3 SearchQuery).
type MatchMode string

const (
	// MatchAny keeps a result if at least one keyword token is present
	// (default).
	MatchAny MatchMode = "any"

	// MatchAll requires every keyword token to be present.
	MatchAll MatchMode = "all"
)

// SortKey selects what a SearchResult's sort position is derived from.
type SortKey string

const (
	SortByScore    SortKey = "score"
	SortByDate     SortKey = "date"
	SortByTitle    SortKey = "title"
	SortByMessages SortKey = "messages"
)

// SortOrder controls ascending vs. descending result order.
type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

const (
	// DefaultLimit is SearchQuery's default top-K size.
	DefaultLimit = 10
	// MaxLimit is the largest accepted top-K size.
	MaxLimit = 1000
)

// SearchQuery is an immutable set of search filters and output controls
// (spec §3). Build one with NewSearchQuery; all fields are optional except
// Limit, which has a validated default.
type SearchQuery struct {
	keywords        []string
	matchMode       MatchMode
	phrases         []string
	excludeKeywords []string
	titleFilter     string
	roleFilter      model.Role
	hasRoleFilter   bool
	fromDate        *time.Time
	toDate          *time.Time
	minMessages     *int
	maxMessages     *int
	sortBy          SortKey
	sortOrder       SortOrder
	limit           int
}

// QueryOption configures a SearchQuery built by NewSearchQuery.
type QueryOption func(*SearchQuery)

// WithKeywords sets the OR/AND (per match mode) scoring keywords.
func WithKeywords(keywords ...string) QueryOption {
	return func(q *SearchQuery) { q.keywords = append([]string(nil), keywords...) }
}

// WithMatchMode sets MatchAny (default) or MatchAll.
func WithMatchMode(mode MatchMode) QueryOption {
	return func(q *SearchQuery) { q.matchMode = mode }
}

// WithPhrases sets case-insensitive literal substrings; at least one must
// occur for a message to qualify.
func WithPhrases(phrases ...string) QueryOption {
	return func(q *SearchQuery) { q.phrases = append([]string(nil), phrases...) }
}

// WithExcludeKeywords sets tokens that disqualify a conversation if present.
func WithExcludeKeywords(keywords ...string) QueryOption {
	return func(q *SearchQuery) { q.excludeKeywords = append([]string(nil), keywords...) }
}

// WithTitleFilter sets a case-insensitive substring match on title.
func WithTitleFilter(substr string) QueryOption {
	return func(q *SearchQuery) { q.titleFilter = substr }
}

// WithRoleFilter restricts text aggregation to messages of the given role.
func WithRoleFilter(role model.Role) QueryOption {
	return func(q *SearchQuery) { q.roleFilter = role; q.hasRoleFilter = true }
}

// WithDateRange sets inclusive date bounds against created_at's date.
func WithDateRange(from, to *time.Time) QueryOption {
	return func(q *SearchQuery) { q.fromDate = from; q.toDate = to }
}

// WithMessageCountRange sets inclusive message-count bounds.
func WithMessageCountRange(min, max *int) QueryOption {
	return func(q *SearchQuery) { q.minMessages = min; q.maxMessages = max }
}

// WithSort sets the sort key and order.
func WithSort(by SortKey, order SortOrder) QueryOption {
	return func(q *SearchQuery) { q.sortBy = by; q.sortOrder = order }
}

// WithLimit sets the top-K size.
func WithLimit(limit int) QueryOption {
	return func(q *SearchQuery) { q.limit = limit }
}

// NewSearchQuery builds and validates a SearchQuery. Defaults: match_mode
// any, sort_by score, sort_order desc, limit 10.
func NewSearchQuery(opts ...QueryOption) (SearchQuery, error) {
	q := SearchQuery{
		matchMode: MatchAny,
		sortBy:    SortByScore,
		sortOrder: SortDesc,
		limit:     DefaultLimit,
	}
	for _, opt := range opts {
		opt(&q)
	}

	if q.matchMode == "" {
		q.matchMode = MatchAny
	}
	if q.matchMode != MatchAny && q.matchMode != MatchAll {
		return SearchQuery{}, errrs.NewValidationError("match_mode", "match_mode must be any or all")
	}
	if q.sortBy == "" {
		q.sortBy = SortByScore
	}
	switch q.sortBy {
	case SortByScore, SortByDate, SortByTitle, SortByMessages:
	default:
		return SearchQuery{}, errrs.NewValidationError("sort_by", "sort_by must be one of score, date, title, messages")
	}
	if q.sortOrder == "" {
		q.sortOrder = SortDesc
	}
	if q.sortOrder != SortAsc && q.sortOrder != SortDesc {
		return SearchQuery{}, errrs.NewValidationError("sort_order", "sort_order must be asc or desc")
	}
	if q.limit == 0 {
		q.limit = DefaultLimit
	}
	if q.limit < 1 || q.limit > MaxLimit {
		return SearchQuery{}, errrs.NewValidationError("limit", "limit must be between 1 and 1000")
	}
	if q.hasRoleFilter && !q.roleFilter.Valid() {
		return SearchQuery{}, errrs.NewValidationError("role_filter", "role_filter must be one of user, assistant, system")
	}
	if q.fromDate != nil && q.toDate != nil && q.toDate.Before(*q.fromDate) {
		return SearchQuery{}, errrs.NewValidationError("to_date", "to_date must be >= from_date")
	}
	if q.minMessages != nil && *q.minMessages < 1 {
		return SearchQuery{}, errrs.NewValidationError("min_messages", "min_messages must be >= 1")
	}
	if q.maxMessages != nil && *q.maxMessages < 1 {
		return SearchQuery{}, errrs.NewValidationError("max_messages", "max_messages must be >= 1")
	}
	if q.minMessages != nil && q.maxMessages != nil && *q.maxMessages < *q.minMessages {
		return SearchQuery{}, errrs.NewValidationError("max_messages", "max_messages must be >= min_messages")
	}

	return q, nil
}

// Keywords returns the scoring keywords.
func (q SearchQuery) Keywords() []string { return append([]string(nil), q.keywords...) }

// MatchMode returns the configured match mode.
func (q SearchQuery) MatchMode() MatchMode { return q.matchMode }

// Phrases returns the configured phrases.
func (q SearchQuery) Phrases() []string { return append([]string(nil), q.phrases...) }

// ExcludeKeywords returns the configured exclusion terms.
func (q SearchQuery) ExcludeKeywords() []string { return append([]string(nil), q.excludeKeywords...) }

// TitleFilter returns the configured title substring filter.
func (q SearchQuery) TitleFilter() string { return q.titleFilter }

// RoleFilter returns the configured role filter and whether one was set.
func (q SearchQuery) RoleFilter() (model.Role, bool) { return q.roleFilter, q.hasRoleFilter }

// FromDate returns the inclusive lower date bound, if any.
func (q SearchQuery) FromDate() *time.Time { return q.fromDate }

// ToDate returns the inclusive upper date bound, if any.
func (q SearchQuery) ToDate() *time.Time { return q.toDate }

// MinMessages returns the inclusive lower message-count bound, if any.
func (q SearchQuery) MinMessages() *int { return q.minMessages }

// MaxMessages returns the inclusive upper message-count bound, if any.
func (q SearchQuery) MaxMessages() *int { return q.maxMessages }

// SortBy returns the configured sort key.
func (q SearchQuery) SortBy() SortKey { return q.sortBy }

// SortOrder returns the configured sort order.
func (q SearchQuery) SortOrder() SortOrder { return q.sortOrder }

// Limit returns the configured top-K size.
func (q SearchQuery) Limit() int { return q.limit }

// HasKeywordSearch reports whether scoring keywords were provided.
func (q SearchQuery) HasKeywordSearch() bool { return len(q.keywords) > 0 }

// HasPhraseSearch reports whether phrase filters were provided.
func (q SearchQuery) HasPhraseSearch() bool { return len(q.phrases) > 0 }

// HasTitleFilter reports whether a non-blank title filter was provided.
func (q SearchQuery) HasTitleFilter() bool { return strings.TrimSpace(q.titleFilter) != "" }

// HasDateFilter reports whether either date bound was provided.
func (q SearchQuery) HasDateFilter() bool { return q.fromDate != nil || q.toDate != nil }

// HasScoringCriteria reports whether any scoring input (keywords or
// phrases) was provided. When false, the orchestrator skips BM25 entirely
// and every result's score is 0 (spec §4.6 "If the filter set is empty...").
func (q SearchQuery) HasScoringCriteria() bool {
	return q.HasKeywordSearch() || q.HasPhraseSearch()
}
