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

// Package tokenize produces the single canonical token sequence used by
// every scoring and filter predicate in the search engine: queries, corpus
// statistics, and match predicates all tokenize through this package so
// they agree on word boundaries.
package tokenize

import (
	"unicode"

	"golang.org/x/text/cases"
)

var foldCaser = cases.Fold()

// Tokens splits s into the canonical token sequence:
//
//  1. s is lowercased with a Unicode-aware case fold (not a simple byte
//     lowercase -- this matters for non-ASCII Latin letters).
//  2. Every maximal run of ASCII letters/digits is emitted, in the order it
//     appears in the (folded) input.
//  3. Every remaining Unicode word character that is not ASCII
//     letter/digit/underscore is then emitted, one token per character.
//
// Latin runs are emitted before the non-Latin characters regardless of
// where each appears in the original string: the result preserves
// multi-set equality with the input's word content, not positional order.
// Callers that need positional order must track offsets themselves.
func Tokens(s string) []string {
	folded := foldCaser.String(s)
	runes := []rune(folded)

	tokens := make([]string, 0, len(runes)/3+1)

	// Pass 1: maximal [a-z0-9]+ runs, encounter order.
	var run []rune
	flush := func() {
		if len(run) > 0 {
			tokens = append(tokens, string(run))
			run = run[:0]
		}
	}
	for _, r := range runes {
		if isASCIIAlnum(r) {
			run = append(run, r)
		} else {
			flush()
		}
	}
	flush()

	// Pass 2: non-Latin word characters, one token per rune, encounter order.
	for _, r := range runes {
		if isASCIIAlnum(r) || r == '_' {
			continue
		}
		if unicode.IsSpace(r) || !isWordRune(r) {
			continue
		}
		tokens = append(tokens, string(r))
	}

	return tokens
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// isWordRune reports whether r counts as a "word character" for tokenizing
// purposes: letters, digits (non-ASCII digits included, matching Python's
// \w under re.UNICODE), and the ASCII underscore is excluded by the caller
// explicitly since spec §4.1 excludes it from the non-Latin pass.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
