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

// Package provider classifies an export file as OpenAI-style or
// Claude-style (spec §4.3). Detection is a closed tagged variant, not
// runtime duck typing (spec §9 "Dynamic provider polymorphism"): Kind is
// the tag, and dispatch on it is static in package ingest.
package provider

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/gjson"

	"github.com/aucontraire/echomine/pkg/echomine/errrs"
)

// Kind identifies the export provider format.
type Kind string

const (
	// OpenAI identifies a ChatGPT-style export (a `mapping` node graph).
	OpenAI Kind = "openai"

	// Claude identifies an Anthropic-style export (an ordered
	// `chat_messages` list).
	Claude Kind = "claude"
)

// Detect inspects the first element of the top-level JSON array read from r
// and classifies it, per spec §4.3:
//
//  1. Element absent (empty array) -> OpenAI (default; spec's Open Question
//     notes this default is deliberately permissive).
//  2. Element contains a "chat_messages" key -> Claude.
//  3. Element contains a "mapping" key -> OpenAI.
//  4. Otherwise -> UnsupportedFormatError.
//
// Detect reads only as many bytes as the first record requires: it opens a
// streaming JSON token cursor rather than unmarshaling the whole array, so
// memory use is independent of file size (spec §4.3 "O(1) bytes
// proportional to the first record").
func Detect(r io.Reader) (Kind, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return OpenAI, nil
		}
		return "", errrs.NewParseError("failed to read top-level JSON token", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '[' {
		return "", errrs.NewParseError(fmt.Sprintf("expected top-level JSON array, got %v", tok), nil)
	}

	if !dec.More() {
		// Empty array.
		return OpenAI, nil
	}

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return "", errrs.NewParseError("failed to decode first export record", err)
	}

	if !gjson.ValidBytes(raw) {
		return "", errrs.NewParseError("first export record is not valid JSON", nil)
	}

	first := gjson.ParseBytes(raw)
	if first.Get("chat_messages").Exists() {
		return Claude, nil
	}
	if first.Get("mapping").Exists() {
		return OpenAI, nil
	}

	return "", errrs.NewUnsupportedFormatError(
		"unrecognized export format: expected a 'mapping' key (OpenAI) or a 'chat_messages' key (Claude) on the first record",
	)
}
