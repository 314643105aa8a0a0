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

// Package ingest implements the streaming provider adapters (spec §4.4): a
// pull-based JSON array cursor shared by both providers, and the
// OpenAI/Claude normalizers that sit on top of it. The adapter is stateless
// (spec §9 "Dynamic provider polymorphism" / "Generator-style streaming"):
// every operation takes a file path and opens its own handle, released when
// the returned sequence is dropped, exhausted, or errors.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/aucontraire/echomine/internal/econst"
	"github.com/aucontraire/echomine/pkg/echomine/errrs"
	"github.com/aucontraire/echomine/pkg/echomine/model"
)

// SkipFunc and ProgressFunc are the adapter's optional streaming callbacks
// (spec §4.4 "stream_conversations(path, on_skip?, progress?)"). Passed as
// explicit first-class values rather than hidden module state (spec §9
// "Callbacks vs. return values").
type SkipFunc func(index int, id, kind, detail string)
type ProgressFunc func(count int)

// normalizeFunc parses one raw top-level array element into a Conversation.
// Returning an error whose Kind() is errrs.KindValidation tells streamArray
// to skip the record and continue (spec §7 "Validation during streaming");
// any other error aborts the stream (spec §7 "Parse... fail fast").
type normalizeFunc func(raw json.RawMessage) (model.Conversation, error)

// streamArray opens path and walks its top-level JSON array one element at a
// time with a pull parser (encoding/json.Decoder.Token/More/Decode), so at
// most one raw record is materialized at a time (spec §4.4 "the adapter
// never materializes the whole array"). The file handle and decoder state
// are released, via defer inside the generator, whether the consumer
// exhausts the sequence, stops early, or an error aborts it (spec §4.4
// "Early termination & cancellation").
func streamArray(path string, normalize normalizeFunc, onSkip SkipFunc, progress ProgressFunc) (iter.Seq2[model.Conversation, error], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(f)
	tok, err := dec.Token()
	if err != nil {
		f.Close()
		if err == io.EOF {
			return func(yield func(model.Conversation, error) bool) {}, nil
		}
		return nil, errrs.NewParseError("failed to read top-level JSON token", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		f.Close()
		return nil, errrs.NewParseError(fmt.Sprintf("expected top-level JSON array, got %v", tok), nil)
	}

	return func(yield func(model.Conversation, error) bool) {
		defer f.Close()

		index := 0
		successCount := 0
		for dec.More() {
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				yield(model.Conversation{}, errrs.NewParseError("failed to decode export record", err))
				return
			}

			conv, normErr := normalize(raw)
			if normErr != nil {
				if echoErr, ok := normErr.(errrs.Error); ok && echoErr.Kind() == errrs.KindValidation {
					if onSkip != nil {
						onSkip(index, recordID(raw), string(echoErr.Kind()), echoErr.Error())
					}
					index++
					continue
				}
				yield(model.Conversation{}, normErr)
				return
			}

			index++
			successCount++
			if !yield(conv, nil) {
				return
			}
			if progress != nil && successCount%econst.ProgressEvery == 0 {
				progress(successCount)
			}
		}
	}, nil
}

// recordID recovers a record's own id, for skip-event reporting, without
// requiring the record to have normalized successfully. It tries both
// providers' id field names.
func recordID(raw json.RawMessage) string {
	var probe struct {
		ID   string `json:"id"`
		UUID string `json:"uuid"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ""
	}
	if probe.ID != "" {
		return probe.ID
	}
	return probe.UUID
}
