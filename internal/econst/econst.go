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

// Package econst holds small numeric constants shared across the core
// packages. None of these are part of the public API; they exist so the
// magic numbers live in one place instead of being copy-pasted.
package econst

const (
	// ProgressEvery is how many successfully-yielded conversations elapse
	// between two calls to a streaming adapter's progress callback.
	ProgressEvery = 500

	// SnippetWindow is the target length, in runes, of an extracted search
	// snippet before ellipsis is added.
	SnippetWindow = 100

	// SnippetLeadingContext is how many runes of context are kept before a
	// matched keyword when the match does not fall at the start of the
	// message.
	SnippetLeadingContext = 20

	// SkipLogLimit bounds the number of skip events retained in memory by
	// the default diagnostics.SkipLog used by the CLI, independent of how
	// many malformed records a pathological export contains.
	SkipLogLimit = 1000
)
