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

package ingest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aucontraire/echomine/pkg/echomine/ingest"
	"github.com/aucontraire/echomine/pkg/echomine/model"
	"github.com/aucontraire/echomine/pkg/echomine/provider"
	"github.com/aucontraire/echomine/pkg/echomine/search"
)

const openaiFixture = `[
  {
    "id": "conv-000001",
    "title": "Test Conversation 1",
    "create_time": 1700000000.0,
    "update_time": 1700000010.0,
    "current_node": "msg-000001-01",
    "mapping": {
      "msg-000001-00": {
        "id": "msg-000001-00",
        "message": {
          "id": "msg-000001-00",
          "author": {"role": "user"},
          "content": {"content_type": "text", "parts": ["User message 0"]},
          "create_time": 1700000000.0,
          "metadata": {}
        },
        "parent": null,
        "children": ["msg-000001-01"]
      },
      "msg-000001-01": {
        "id": "msg-000001-01",
        "message": {
          "id": "msg-000001-01",
          "author": {"role": "assistant"},
          "content": {"content_type": "text", "parts": ["Assistant response 0"]},
          "create_time": 1700000010.0,
          "metadata": {}
        },
        "parent": "msg-000001-00",
        "children": []
      }
    },
    "moderation_results": []
  },
  {
    "id": "conv-000002",
    "title": "Multimodal Conversation",
    "create_time": 1700000100.0,
    "update_time": null,
    "current_node": "msg-000002-00",
    "mapping": {
      "msg-000002-00": {
        "id": "msg-000002-00",
        "message": {
          "id": "msg-000002-00",
          "author": {"role": "user"},
          "content": {
            "content_type": "multimodal_text",
            "parts": [
              "See this:",
              {"content_type": "image_asset_pointer", "asset_pointer": "sediment://file_abc", "width": 100, "height": 50}
            ]
          },
          "create_time": 1700000100.0,
          "metadata": {}
        },
        "parent": null,
        "children": []
      }
    },
    "moderation_results": []
  },
  {
    "id": "",
    "title": "Missing id, should be skipped",
    "create_time": 1700000200.0,
    "current_node": "x",
    "mapping": {}
  }
]`

const claudeFixture = `[
  {
    "uuid": "c-0001",
    "name": "Claude Conversation 1",
    "created_at": "2024-01-15T10:00:00.000000Z",
    "updated_at": "2024-01-15T10:05:00.000000Z",
    "chat_messages": [
      {"uuid": "m-0001", "text": "Can you help me with this Python code?", "content": [{"type": "text", "text": "Can you help me with this Python code?"}], "sender": "human", "created_at": "2024-01-15T10:00:00.000000Z", "updated_at": "2024-01-15T10:00:00.000000Z", "attachments": [], "files": []},
      {"uuid": "m-0002", "text": "Sure, I'd be happy to help!", "content": [{"type": "text", "text": "Sure, I'd be happy to help!"}], "sender": "assistant", "created_at": "2024-01-15T10:01:00.000000Z", "updated_at": "2024-01-15T10:01:00.000000Z", "attachments": [], "files": []}
    ]
  }
]`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "export.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetectAndOpen(t *testing.T) {
	openaiPath := writeFixture(t, openaiFixture)
	adapter, err := ingest.Open(openaiPath)
	require.NoError(t, err)
	assert.IsType(t, ingest.New(provider.OpenAI), adapter)

	claudePath := writeFixture(t, claudeFixture)
	adapter, err = ingest.Open(claudePath)
	require.NoError(t, err)
	assert.IsType(t, ingest.New(provider.Claude), adapter)
}

func TestOpenAIStreamConversationsSkipsInvalid(t *testing.T) {
	path := writeFixture(t, openaiFixture)
	adapter := ingest.New(provider.OpenAI)

	var skipped []string
	onSkip := func(index int, id, kind, detail string) {
		skipped = append(skipped, kind)
	}

	seq, err := adapter.StreamConversations(path, onSkip, nil)
	require.NoError(t, err)

	var convs []model.Conversation
	for conv, convErr := range seq {
		require.NoError(t, convErr)
		convs = append(convs, conv)
	}

	require.Len(t, convs, 2)
	assert.Equal(t, "conv-000001", convs[0].ID())
	assert.Equal(t, 2, convs[0].MessageCount())
	assert.Equal(t, model.RoleUser, convs[0].Messages()[0].Role())
	assert.Equal(t, model.RoleAssistant, convs[0].Messages()[1].Role())
	assert.Equal(t, "msg-000001-00", convs[0].Messages()[1].ParentID())

	require.Len(t, skipped, 1)
	assert.Equal(t, "validation", skipped[0])
}

func TestOpenAIMultimodalNormalization(t *testing.T) {
	path := writeFixture(t, openaiFixture)
	adapter := ingest.New(provider.OpenAI)

	conv, ok, err := adapter.GetConversationByID(path, "conv-000002")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, conv.Messages(), 1)

	msg := conv.Messages()[0]
	assert.Equal(t, "See this:", msg.Content())
	require.Len(t, msg.Images(), 1)
	assert.Equal(t, "sediment://file_abc", msg.Images()[0].AssetPointer())
	w, ok := msg.Images()[0].Width()
	require.True(t, ok)
	assert.Equal(t, 100, w)
}

func TestOpenAIGetMessageByIDWithHint(t *testing.T) {
	path := writeFixture(t, openaiFixture)
	adapter := ingest.New(provider.OpenAI)

	msg, conv, ok, err := adapter.GetMessageByID(path, "msg-000001-01", "conv-000001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "conv-000001", conv.ID())
	assert.Equal(t, "Assistant response 0", msg.Content())

	_, _, ok, err = adapter.GetMessageByID(path, "does-not-exist", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClaudeNormalization(t *testing.T) {
	path := writeFixture(t, claudeFixture)
	adapter := ingest.New(provider.Claude)

	conv, ok, err := adapter.GetConversationByID(path, "c-0001")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, conv.Messages(), 2)
	assert.Equal(t, model.RoleUser, conv.Messages()[0].Role())
	assert.Equal(t, model.RoleAssistant, conv.Messages()[1].Role())
	assert.Equal(t, "human", conv.Messages()[0].Metadata()["original_role"])
}

func TestSearchThroughAdapter(t *testing.T) {
	path := writeFixture(t, openaiFixture)
	adapter := ingest.New(provider.OpenAI)

	q, err := search.NewSearchQuery(search.WithKeywords("assistant"))
	require.NoError(t, err)

	results, err := adapter.Search(path, q)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "conv-000001", results[0].Conversation().ID())
}

func TestStreamIdempotent(t *testing.T) {
	path := writeFixture(t, openaiFixture)
	adapter := ingest.New(provider.OpenAI)

	collect := func() []string {
		seq, err := adapter.StreamConversations(path, nil, nil)
		require.NoError(t, err)
		var ids []string
		for conv, convErr := range seq {
			require.NoError(t, convErr)
			ids = append(ids, conv.ID())
		}
		return ids
	}

	assert.Equal(t, collect(), collect())
}

func TestStreamEarlyTermination(t *testing.T) {
	path := writeFixture(t, openaiFixture)
	adapter := ingest.New(provider.OpenAI)

	seq, err := adapter.StreamConversations(path, nil, nil)
	require.NoError(t, err)

	count := 0
	for range seq {
		count++
		break
	}
	assert.Equal(t, 1, count)
}
