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
	"strings"
	"time"

	"github.com/aucontraire/echomine/pkg/echomine/errrs"
	"github.com/aucontraire/echomine/pkg/echomine/model"
	"github.com/aucontraire/echomine/pkg/echomine/search"
)

// openaiExport is the raw OpenAI-style conversation record (spec §6): a
// node-graph keyed by message id, walked from current_node back to the root.
type openaiExport struct {
	ID          string                       `json:"id"`
	Title       string                       `json:"title"`
	CreateTime  float64                      `json:"create_time"`
	UpdateTime  *float64                     `json:"update_time"`
	CurrentNode string                       `json:"current_node"`
	Mapping     map[string]openaiMappingNode `json:"mapping"`
}

type openaiMappingNode struct {
	ID       string         `json:"id"`
	Message  *openaiMessage `json:"message"`
	Parent   *string        `json:"parent"`
	Children []string       `json:"children"`
}

type openaiMessage struct {
	ID         string         `json:"id"`
	Author     openaiAuthor   `json:"author"`
	Content    openaiContent  `json:"content"`
	CreateTime *float64       `json:"create_time"`
	UpdateTime *float64       `json:"update_time"`
	Metadata   map[string]any `json:"metadata"`
}

type openaiAuthor struct {
	Role string `json:"role"`
}

// openaiContent's Parts mixes plain text strings and, for content_type
// "multimodal_text", image_asset_pointer objects (spec §6). Raw messages
// defer the string-vs-object decision to flattenOpenAIContent.
type openaiContent struct {
	ContentType string            `json:"content_type"`
	Parts       []json.RawMessage `json:"parts"`
}

type openaiImagePart struct {
	ContentType  string         `json:"content_type"`
	AssetPointer string         `json:"asset_pointer"`
	SizeBytes    *int64         `json:"size_bytes"`
	Width        *int           `json:"width"`
	Height       *int           `json:"height"`
	Metadata     map[string]any `json:"metadata"`
}

// openaiAdapter implements Adapter over OpenAI-style exports.
type openaiAdapter struct{}

func (openaiAdapter) StreamConversations(path string, onSkip SkipFunc, progress ProgressFunc) (iter.Seq2[model.Conversation, error], error) {
	return streamArray(path, normalizeOpenAI, onSkip, progress)
}

func (openaiAdapter) GetConversationByID(path, id string) (model.Conversation, bool, error) {
	return getConversationByID(path, normalizeOpenAI, id)
}

func (openaiAdapter) GetMessageByID(path, messageID, conversationID string) (model.Message, model.Conversation, bool, error) {
	return getMessageByID(path, normalizeOpenAI, messageID, conversationID)
}

func (openaiAdapter) Search(path string, query search.SearchQuery) ([]search.SearchResult, error) {
	return runSearch(path, normalizeOpenAI, query)
}

// normalizeOpenAI reconstructs the linear root-to-leaf message order by
// walking current_node back to the root via parent pointers, then reverses
// it, per spec §4.4 step 2 and §9 "Cyclic/graph message structures".
func normalizeOpenAI(raw json.RawMessage) (model.Conversation, error) {
	var exp openaiExport
	if err := json.Unmarshal(raw, &exp); err != nil {
		return model.Conversation{}, errrs.NewValidationError("", fmt.Sprintf("malformed openai record: %v", err))
	}
	if exp.ID == "" {
		return model.Conversation{}, errrs.NewValidationError("id", "conversation id must not be empty")
	}

	orderedIDs := walkToRoot(exp.CurrentNode, exp.Mapping)

	messages := make([]model.Message, 0, len(orderedIDs))
	parentMsgID := ""
	for _, nodeID := range orderedIDs {
		node, ok := exp.Mapping[nodeID]
		if !ok || node.Message == nil {
			// Scaffolding nodes (e.g. the synthetic system root) carry no
			// message and are skipped, not surfaced.
			continue
		}
		m := node.Message

		content, images, err := flattenOpenAIContent(m.Content)
		if err != nil {
			return model.Conversation{}, err
		}

		ts := timeFromUnix(m.CreateTime)
		if ts.IsZero() {
			ts = timeFromUnix(&exp.CreateTime)
		}

		metadata := cloneAny(m.Metadata)
		metadata["original_role"] = m.Author.Role

		msgID := m.ID
		if msgID == "" {
			msgID = nodeID
		}

		msg, err := model.NewMessage(msgID, content, model.NormalizeRole(m.Author.Role), ts, parentMsgID, images, metadata)
		if err != nil {
			return model.Conversation{}, err
		}
		messages = append(messages, msg)
		parentMsgID = msgID
	}

	if len(messages) == 0 {
		return model.Conversation{}, errrs.NewValidationError("messages", "conversation has no renderable messages")
	}

	createdAt := timeFromUnix(&exp.CreateTime)
	var updatedAt *time.Time
	if exp.UpdateTime != nil {
		u := timeFromUnix(exp.UpdateTime)
		updatedAt = &u
	}

	return model.NewConversation(exp.ID, exp.Title, createdAt, updatedAt, messages)
}

// walkToRoot follows parent pointers from currentNode back to the root and
// returns the node ids in root-to-leaf order. A defensive visited set guards
// against a malformed, cyclic mapping; the source is never trusted blindly.
func walkToRoot(currentNode string, mapping map[string]openaiMappingNode) []string {
	if currentNode == "" {
		return nil
	}

	var reversed []string
	visited := make(map[string]struct{})
	nodeID := currentNode
	for nodeID != "" {
		if _, dup := visited[nodeID]; dup {
			break
		}
		visited[nodeID] = struct{}{}
		reversed = append(reversed, nodeID)

		node, ok := mapping[nodeID]
		if !ok || node.Parent == nil {
			break
		}
		nodeID = *node.Parent
	}

	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	return reversed
}

// flattenOpenAIContent walks content.parts: string fragments concatenate
// into the returned text; image_asset_pointer objects accumulate into
// images (spec §4.4 step 2, §8 scenario 6).
func flattenOpenAIContent(c openaiContent) (string, []model.ImageRef, error) {
	var textParts []string
	var images []model.ImageRef

	for _, raw := range c.Parts {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			textParts = append(textParts, s)
			continue
		}

		var part openaiImagePart
		if err := json.Unmarshal(raw, &part); err != nil || part.ContentType != "image_asset_pointer" {
			continue
		}
		img, err := model.NewImageRef(part.AssetPointer, part.SizeBytes, part.Width, part.Height, part.Metadata)
		if err != nil {
			return "", nil, err
		}
		images = append(images, img)
	}

	return strings.Join(textParts, ""), images, nil
}

// timeFromUnix converts a POSIX timestamp in seconds (possibly fractional)
// to UTC. A nil pointer yields the zero Time, which callers treat as "no
// timestamp available" and fall back to the conversation's create_time.
func timeFromUnix(sec *float64) time.Time {
	if sec == nil {
		return time.Time{}
	}
	whole := int64(*sec)
	frac := *sec - float64(whole)
	return time.Unix(whole, int64(frac*1e9)).UTC()
}

func cloneAny(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
