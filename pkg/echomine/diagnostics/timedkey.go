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

// Package diagnostics provides a small, bounded, time-ordered buffer for the
// skip events a streaming adapter reports during ingestion (spec §7 "skip
// events"). A pathological export can contain tens of thousands of
// malformed records; without a bound, collecting every skip event for a
// final report would itself defeat the O(1) memory goal the streaming
// pipeline exists to provide (spec §5, §8 "Streaming memory").
package diagnostics

import (
	"sort"
	"sync"
	"time"
)

// timedKey is a collision-proof, totally ordered insertion key: t is the
// wall-clock arrival time in Unix nanoseconds, n breaks ties between
// events recorded within the same nanosecond.
type timedKey struct {
	t int64
	n uint64
}

func (k timedKey) before(other timedKey) bool {
	if k.t != other.t {
		return k.t < other.t
	}
	return k.n < other.n
}

// keyFactory generates strictly increasing timedKeys even when the
// wall clock reports the same nanosecond twice in a row, or moves
// backwards.
type keyFactory struct {
	mu    sync.Mutex
	lastT int64
	seq   uint64
}

func (kf *keyFactory) next() timedKey {
	now := time.Now().UnixNano()

	kf.mu.Lock()
	defer kf.mu.Unlock()

	switch {
	case now > kf.lastT:
		kf.lastT = now
		kf.seq = 0
	case now == kf.lastT:
		kf.seq++
	default:
		now = kf.lastT
		kf.seq++
	}
	return timedKey{t: now, n: kf.seq}
}

func sortedKeys(keys []timedKey) []timedKey {
	out := make([]timedKey, len(keys))
	copy(out, keys)
	sort.Slice(out, func(i, j int) bool { return out[i].before(out[j]) })
	return out
}
