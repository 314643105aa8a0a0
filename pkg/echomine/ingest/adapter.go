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

package ingest

import (
	"iter"
	"os"

	"github.com/aucontraire/echomine/pkg/echomine/model"
	"github.com/aucontraire/echomine/pkg/echomine/provider"
	"github.com/aucontraire/echomine/pkg/echomine/search"
)

// Adapter is the shared streaming contract both providers satisfy (spec
// §4.4, §9 "a shared adapter trait/interface"). Provider detection returns a
// tag (package provider); dispatch on it is static via New, never runtime
// duck typing.
type Adapter interface {
	// StreamConversations lazily yields every conversation in path, in
	// source order, skipping malformed entries and reporting them to onSkip.
	StreamConversations(path string, onSkip SkipFunc, progress ProgressFunc) (iter.Seq2[model.Conversation, error], error)

	// GetConversationByID streams path and returns the first conversation
	// whose id matches, or ok == false at EOF.
	GetConversationByID(path, id string) (conv model.Conversation, ok bool, err error)

	// GetMessageByID returns the message and its owning conversation. If
	// conversationID is non-empty it narrows the scan to that conversation
	// instead of scanning the whole export (spec §4.4 "Lookups").
	GetMessageByID(path, messageID, conversationID string) (msg model.Message, conv model.Conversation, ok bool, err error)

	// Search runs query over path through the two-pass BM25 orchestrator
	// (spec §4.6).
	Search(path string, query search.SearchQuery) ([]search.SearchResult, error)
}

// New returns the Adapter for the given provider kind.
func New(kind provider.Kind) Adapter {
	if kind == provider.Claude {
		return claudeAdapter{}
	}
	return openaiAdapter{}
}

// Open detects path's provider (spec §4.3) and returns the matching Adapter.
func Open(path string) (Adapter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	kind, err := provider.Detect(f)
	if err != nil {
		return nil, err
	}
	return New(kind), nil
}

// getConversationByID streams path with normalize and returns the first
// conversation whose id matches.
func getConversationByID(path string, normalize normalizeFunc, id string) (model.Conversation, bool, error) {
	seq, err := streamArray(path, normalize, nil, nil)
	if err != nil {
		return model.Conversation{}, false, err
	}
	for conv, convErr := range seq {
		if convErr != nil {
			return model.Conversation{}, false, convErr
		}
		if conv.ID() == id {
			return conv, true, nil
		}
	}
	return model.Conversation{}, false, nil
}

// getMessageByID streams path with normalize, optionally narrowed to
// conversationID, and returns the first message matching messageID.
func getMessageByID(path string, normalize normalizeFunc, messageID, conversationID string) (model.Message, model.Conversation, bool, error) {
	seq, err := streamArray(path, normalize, nil, nil)
	if err != nil {
		return model.Message{}, model.Conversation{}, false, err
	}
	for conv, convErr := range seq {
		if convErr != nil {
			return model.Message{}, model.Conversation{}, false, convErr
		}
		if conversationID != "" && conv.ID() != conversationID {
			continue
		}
		if msg, ok := conv.MessageByID(messageID); ok {
			return msg, conv, true, nil
		}
		if conversationID != "" {
			// The hinted conversation was found but doesn't contain the
			// message; no other conversation can, so stop scanning.
			return model.Message{}, model.Conversation{}, false, nil
		}
	}
	return model.Message{}, model.Conversation{}, false, nil
}

// runSearch adapts streamArray to search.StreamFunc's callback shape and
// delegates to the orchestrator.
func runSearch(path string, normalize normalizeFunc, query search.SearchQuery) ([]search.SearchResult, error) {
	stream := func(onSkip search.SkipFunc, progress search.ProgressFunc) (iter.Seq2[model.Conversation, error], error) {
		return streamArray(path, normalize, SkipFunc(onSkip), ProgressFunc(progress))
	}
	return search.Execute(stream, query)
}
