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

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `[
  {
    "id": "conv-1",
    "title": "Trip planning",
    "create_time": 1700000000.0,
    "update_time": 1700000010.0,
    "current_node": "m2",
    "mapping": {
      "m1": {
        "id": "m1",
        "message": {"id": "m1", "author": {"role": "user"}, "content": {"content_type": "text", "parts": ["Where should I go in Kyoto?"]}, "create_time": 1700000000.0, "metadata": {}},
        "parent": null,
        "children": ["m2"]
      },
      "m2": {
        "id": "m2",
        "message": {"id": "m2", "author": {"role": "assistant"}, "content": {"content_type": "text", "parts": ["Visit Fushimi Inari."]}, "create_time": 1700000010.0, "metadata": {}},
        "parent": "m1",
        "children": []
      }
    },
    "moderation_results": []
  }
]`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListText(t *testing.T) {
	path := writeFixture(t)
	out, err := run(t, "list", path)
	require.NoError(t, err)
	assert.Contains(t, out, "conv-1")
	assert.Contains(t, out, "Trip planning")
}

func TestListJSON(t *testing.T) {
	path := writeFixture(t)
	out, err := run(t, "list", "--format", "json", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"conversation_id": "conv-1"`)
}

func TestSearchFindsKeyword(t *testing.T) {
	path := writeFixture(t)
	out, err := run(t, "search", "--keyword", "kyoto", path)
	require.NoError(t, err)
	assert.Contains(t, out, "conv-1")
}

func TestSearchJSON(t *testing.T) {
	path := writeFixture(t)
	out, err := run(t, "search", "--keyword", "fushimi", "--format", "json", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"conversation_id": "conv-1"`)
	assert.Contains(t, out, `"matched_message_ids"`)
}

func TestSearchInvalidRole(t *testing.T) {
	path := writeFixture(t)
	_, err := run(t, "search", "--role", "bogus", path)
	require.Error(t, err)
}

func TestExportMarkdown(t *testing.T) {
	path := writeFixture(t)
	out, err := run(t, "export", path, "conv-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Fushimi Inari")
	assert.Contains(t, out, "## 👤 User")
}

func TestExportMissingConversation(t *testing.T) {
	path := writeFixture(t)
	_, err := run(t, "export", path, "does-not-exist")
	require.Error(t, err)
}

func TestGetConversation(t *testing.T) {
	path := writeFixture(t)
	out, err := run(t, "get", "conversation", path, "conv-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Trip planning")
}

func TestGetMessage(t *testing.T) {
	path := writeFixture(t)
	out, err := run(t, "get", "message", "--conversation", "conv-1", path, "m2")
	require.NoError(t, err)
	assert.Contains(t, out, "Fushimi Inari")
}

func TestProviderOverride(t *testing.T) {
	path := writeFixture(t)
	out, err := run(t, "--provider", "openai", "list", path)
	require.NoError(t, err)
	assert.Contains(t, out, "conv-1")
}
