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
	"math"

	"github.com/aucontraire/echomine/pkg/echomine/tokenize"
)

// BM25 parameters, fixed per spec §4.5.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// corpusStats accumulates the document-frequency table and length sum for
// the query's token vocabulary only (spec §4.6: "counters are bounded by
// the vocabulary intersecting the query"); IDF is never needed for a term
// outside the query, so there is no reason to track the full corpus
// vocabulary.
type corpusStats struct {
	queryTokens   []string // all query keyword tokens, in order, duplicates kept
	queryTokenSet map[string]struct{}
	docFrequency  map[string]int
	documentCount int
	lengthSum     int
}

func newCorpusStats(keywords []string) *corpusStats {
	var flat []string
	set := make(map[string]struct{})
	for _, kw := range keywords {
		for _, tok := range tokenize.Tokens(kw) {
			flat = append(flat, tok)
			set[tok] = struct{}{}
		}
	}
	return &corpusStats{
		queryTokens:   flat,
		queryTokenSet: set,
		docFrequency:  make(map[string]int),
	}
}

// docStats is the lightweight per-surviving-document record kept between
// Pass 1 and Pass 2 (spec §4.6).
type docStats struct {
	length int
	tf     map[string]int // counts, restricted to corpusStats.queryTokenSet
}

// observe tokenizes docText and folds it into the running corpus stats,
// returning the per-document record to retain for Pass 2.
func (c *corpusStats) observe(docText string) docStats {
	tokens := tokenize.Tokens(docText)
	tf := make(map[string]int, len(c.queryTokenSet))
	seen := make(map[string]struct{}, len(c.queryTokenSet))

	for _, tok := range tokens {
		if _, wanted := c.queryTokenSet[tok]; !wanted {
			continue
		}
		tf[tok]++
		seen[tok] = struct{}{}
	}
	for tok := range seen {
		c.docFrequency[tok]++
	}

	c.documentCount++
	c.lengthSum += len(tokens)

	return docStats{length: len(tokens), tf: tf}
}

// averageLength returns avgdl, or 0 if no documents were observed.
func (c *corpusStats) averageLength() float64 {
	if c.documentCount == 0 {
		return 0
	}
	return float64(c.lengthSum) / float64(c.documentCount)
}

// idf computes IDF(t) = log((N - df + 0.5)/(df + 0.5) + 1). A term absent
// from the corpus (df == 0, including terms never observed because no
// surviving document used them) has IDF 0, matching the "absent from the
// corpus" degenerate case in spec §4.5.
func (c *corpusStats) idf(token string) float64 {
	df, ok := c.docFrequency[token]
	if !ok || df == 0 {
		return 0
	}
	n := float64(c.documentCount)
	return math.Log((n-float64(df)+0.5)/(float64(df)+0.5) + 1.0)
}

// score computes the raw (unnormalized) BM25 score for one document given
// its docStats and the shared corpus statistics. Returns 0 without
// dividing by zero when avgdl is 0 or the corpus is empty (spec §4.5
// "Degenerate cases").
func score(c *corpusStats, d docStats, avgdl float64) float64 {
	if avgdl == 0 || c.documentCount == 0 {
		return 0
	}

	var total float64
	for _, tok := range c.queryTokens {
		idf := c.idf(tok)
		if idf == 0 {
			continue
		}
		tf := float64(d.tf[tok])
		if tf == 0 {
			continue
		}
		numerator := tf * (bm25K1 + 1.0)
		denominator := tf + bm25K1*(1.0-bm25B+bm25B*(float64(d.length)/avgdl))
		total += idf * (numerator / denominator)
	}
	return total
}

// normalizeScore maps a raw BM25 score to [0, 1] via s/(s+1), clamped.
func normalizeScore(raw float64) float64 {
	if raw <= 0 {
		return 0
	}
	n := raw / (raw + 1.0)
	if n > 1 {
		return 1
	}
	return n
}
