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
	"encoding/json"
	"fmt"
	"iter"
	"time"

	"github.com/aucontraire/echomine/pkg/echomine/errrs"
	"github.com/aucontraire/echomine/pkg/echomine/model"
	"github.com/aucontraire/echomine/pkg/echomine/search"
)

// claudeExport is the raw Claude-style conversation record (spec §6): an
// already-ordered chat_messages list, mapped directly without graph
// reconstruction.
type claudeExport struct {
	UUID         string              `json:"uuid"`
	Name         string              `json:"name"`
	CreatedAt    string              `json:"created_at"`
	UpdatedAt    string              `json:"updated_at"`
	ChatMessages []claudeChatMessage `json:"chat_messages"`
}

type claudeChatMessage struct {
	UUID      string `json:"uuid"`
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// claudeAdapter implements Adapter over Claude-style exports.
type claudeAdapter struct{}

func (claudeAdapter) StreamConversations(path string, onSkip SkipFunc, progress ProgressFunc) (iter.Seq2[model.Conversation, error], error) {
	return streamArray(path, normalizeClaude, onSkip, progress)
}

func (claudeAdapter) GetConversationByID(path, id string) (model.Conversation, bool, error) {
	return getConversationByID(path, normalizeClaude, id)
}

func (claudeAdapter) GetMessageByID(path, messageID, conversationID string) (model.Message, model.Conversation, bool, error) {
	return getMessageByID(path, normalizeClaude, messageID, conversationID)
}

func (claudeAdapter) Search(path string, query search.SearchQuery) ([]search.SearchResult, error) {
	return runSearch(path, normalizeClaude, query)
}

// normalizeClaudeSender maps a Claude sender field to a normalized Role
// (spec §6 "Sender mapping: human -> user, assistant -> assistant"). Unlike
// model.NormalizeRole, "human" is a Claude-specific spelling and must be
// handled before falling through to the generic normalizer.
func normalizeClaudeSender(sender string) model.Role {
	if sender == "human" {
		return model.RoleUser
	}
	return model.NormalizeRole(sender)
}

func normalizeClaude(raw json.RawMessage) (model.Conversation, error) {
	var exp claudeExport
	if err := json.Unmarshal(raw, &exp); err != nil {
		return model.Conversation{}, errrs.NewValidationError("", fmt.Sprintf("malformed claude record: %v", err))
	}
	if exp.UUID == "" {
		return model.Conversation{}, errrs.NewValidationError("uuid", "conversation uuid must not be empty")
	}

	createdAt, err := parseClaudeTime(exp.CreatedAt)
	if err != nil {
		return model.Conversation{}, errrs.NewValidationError("created_at", err.Error())
	}

	var updatedAt *time.Time
	if exp.UpdatedAt != "" {
		u, err := parseClaudeTime(exp.UpdatedAt)
		if err != nil {
			return model.Conversation{}, errrs.NewValidationError("updated_at", err.Error())
		}
		updatedAt = &u
	}

	messages := make([]model.Message, 0, len(exp.ChatMessages))
	parentID := ""
	for i, cm := range exp.ChatMessages {
		ts, tsErr := parseClaudeTime(cm.CreatedAt)
		if tsErr != nil {
			ts = createdAt
		}

		msgID := cm.UUID
		if msgID == "" {
			msgID = fmt.Sprintf("%s-msg-%d", exp.UUID, i)
		}

		metadata := map[string]any{"original_role": cm.Sender}
		msg, err := model.NewMessage(msgID, cm.Text, normalizeClaudeSender(cm.Sender), ts, parentID, nil, metadata)
		if err != nil {
			return model.Conversation{}, err
		}
		messages = append(messages, msg)
		parentID = msgID
	}

	return model.NewConversation(exp.UUID, exp.Name, createdAt, updatedAt, messages)
}

// parseClaudeTime parses an ISO 8601 timestamp with a Z suffix or an
// explicit offset (spec §6), normalizing to UTC.
func parseClaudeTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
