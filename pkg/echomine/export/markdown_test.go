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

package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aucontraire/echomine/pkg/echomine/export"
	"github.com/aucontraire/echomine/pkg/echomine/model"
)

func conversation(t *testing.T) model.Conversation {
	t.Helper()
	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	img, err := model.NewImageRef("sediment://file_abc", nil, nil, nil, nil)
	require.NoError(t, err)

	m1, err := model.NewMessage("msg-1", "Hello there", model.RoleUser, ts, "", nil, nil)
	require.NoError(t, err)
	m2, err := model.NewMessage("msg-2", "See this:", model.RoleAssistant, ts.Add(time.Minute), "msg-1", []model.ImageRef{img}, nil)
	require.NoError(t, err)

	conv, err := model.NewConversation("conv-1", "Test Export", ts, nil, []model.Message{m1, m2})
	require.NoError(t, err)
	return conv
}

func TestRenderWithoutMetadata(t *testing.T) {
	conv := conversation(t)
	out, err := export.Render(conv, export.Options{}, time.Now())
	require.NoError(t, err)

	assert.False(t, strings.HasPrefix(out, "---\n"))
	assert.Contains(t, out, "## 👤 User")
	assert.Contains(t, out, "## 🤖 Assistant")
	assert.Contains(t, out, "Hello there")
	assert.Contains(t, out, "![Image](file_abc.png)")
	assert.Contains(t, out, "---\n") // message separator still present
}

func TestRenderWithMetadata(t *testing.T) {
	conv := conversation(t)
	exportDate := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	out, err := export.Render(conv, export.Options{IncludeMetadata: true}, exportDate)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "---\n"))
	assert.Contains(t, out, "id: conv-1")
	assert.Contains(t, out, "title: Test Export")
	assert.Contains(t, out, "message_count: 2")
	assert.Contains(t, out, "2024-02-01T00:00:00Z")
	assert.Contains(t, out, "exported_by: echomine")
}

func TestRenderWithMessageIDs(t *testing.T) {
	conv := conversation(t)
	out, err := export.Render(conv, export.Options{IncludeMessageIDs: true}, time.Now())
	require.NoError(t, err)

	assert.Contains(t, out, "`msg-1`")
	assert.Contains(t, out, "`msg-2`")
}

func TestRenderDeterministic(t *testing.T) {
	conv := conversation(t)
	exportDate := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	out1, err := export.Render(conv, export.Options{IncludeMetadata: true, IncludeMessageIDs: true}, exportDate)
	require.NoError(t, err)
	out2, err := export.Render(conv, export.Options{IncludeMetadata: true, IncludeMessageIDs: true}, exportDate)
	require.NoError(t, err)

	assert.Equal(t, out1, out2)
}
