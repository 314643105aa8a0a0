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

package diagnostics

import (
	"sync"

	"github.com/google/uuid"
)

// SkipEvent is a single malformed-record notification, matching the
// `(index, id_if_any, error_kind, detail)` shape spec §4.4 step 3 describes
// for the adapter's on_skip callback.
type SkipEvent struct {
	// Index is the zero-based position of the record within the export's
	// top-level array.
	Index int

	// ID is the record's own id/uuid field, when it could be recovered
	// despite the validation failure. Empty if unavailable.
	ID string

	// Kind names the failure category (normally "validation", matching
	// errrs.KindValidation, but a parse-level failure on a single element
	// within an otherwise-streamable array is also recorded here).
	Kind string

	// Detail is a human-readable description of the failure.
	Detail string
}

// SkipLog is a bounded, time-ordered buffer of SkipEvents. SkipLog is safe
// for concurrent use: per spec §5, progress/skip callbacks are invoked on
// the calling thread and must themselves be thread-safe if shared across
// adapter invocations.
//
// SkipLog bounds memory by count, discarding the oldest event once the
// configured limit is exceeded, the same "oldest-first" discipline the
// adapter already applies conceptually to the source file (never holding
// more than one conversation's worth of source bytes at a time).
type SkipLog struct {
	// RunID uniquely tags one streaming session's skip-log snapshot, so a
	// caller correlating several concurrent ingests (spec §5: "safe to
	// invoke from multiple threads concurrently") can tell them apart in a
	// shared report.
	RunID uuid.UUID

	mu    sync.Mutex
	limit int
	items map[timedKey]SkipEvent
	keys  keyFactory
}

// NewSkipLog creates a SkipLog bounded to at most limit events. A limit <=
// 0 means unbounded (not recommended for untrusted exports).
func NewSkipLog(limit int) *SkipLog {
	return &SkipLog{
		RunID: uuid.New(),
		limit: limit,
		items: make(map[timedKey]SkipEvent),
	}
}

// Record appends ev to the log, evicting the oldest entry first if the log
// is at capacity. Record itself never returns an error: a full diagnostics
// buffer must never be the reason ingestion fails.
func (l *SkipLog) Record(ev SkipEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items[l.keys.next()] = ev

	if l.limit > 0 {
		for len(l.items) > l.limit {
			oldest, ok := l.oldestKeyLocked()
			if !ok {
				break
			}
			delete(l.items, oldest)
		}
	}
}

func (l *SkipLog) oldestKeyLocked() (timedKey, bool) {
	var oldest timedKey
	first := true
	for k := range l.items {
		if first || k.before(oldest) {
			oldest = k
			first = false
		}
	}
	return oldest, !first
}

// Events returns the retained skip events, in the order they were recorded.
// If more than the configured limit were recorded, only the most recent
// ones (up to limit) are present; the log keeps no count of evicted events.
func (l *SkipLog) Events() []SkipEvent {
	l.mu.Lock()
	defer l.mu.Unlock()

	keys := make([]timedKey, 0, len(l.items))
	for k := range l.items {
		keys = append(keys, k)
	}
	keys = sortedKeys(keys)

	out := make([]SkipEvent, 0, len(keys))
	for _, k := range keys {
		out = append(out, l.items[k])
	}
	return out
}

// Len returns the number of events currently retained (<= the configured
// limit).
func (l *SkipLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// OnSkip is a callback suitable for passing as an adapter's on_skip
// argument: it records the event and otherwise does nothing. Combine with a
// logger-backed callback via Chain for CLI use.
func (l *SkipLog) OnSkip(index int, id, kind, detail string) {
	l.Record(SkipEvent{Index: index, ID: id, Kind: kind, Detail: detail})
}

// Chain returns a callback that invokes l.OnSkip and then fn, in that
// order. Useful to combine in-memory aggregation with, e.g., structured
// logging.
func (l *SkipLog) Chain(fn func(index int, id, kind, detail string)) func(int, string, string, string) {
	return func(index int, id, kind, detail string) {
		l.OnSkip(index, id, kind, detail)
		if fn != nil {
			fn(index, id, kind, detail)
		}
	}
}
