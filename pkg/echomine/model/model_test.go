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

package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aucontraire/echomine/pkg/echomine/model"
)

func mustMessage(t *testing.T, id, content string, role model.Role, ts time.Time, parentID string) model.Message {
	t.Helper()
	m, err := model.NewMessage(id, content, role, ts, parentID, nil, nil)
	require.NoError(t, err)
	return m
}

func TestNewMessageRejectsEmptyID(t *testing.T) {
	_, err := model.NewMessage("", "hi", model.RoleUser, time.Now(), "", nil, nil)
	require.Error(t, err)
}

func TestNewMessageRejectsZeroTimestamp(t *testing.T) {
	_, err := model.NewMessage("m1", "hi", model.RoleUser, time.Time{}, "", nil, nil)
	require.Error(t, err)
}

func TestNewMessageRejectsInvalidRole(t *testing.T) {
	_, err := model.NewMessage("m1", "hi", model.Role("bogus"), time.Now(), "", nil, nil)
	require.Error(t, err)
}

func TestNormalizeRoleCollapsesUnknown(t *testing.T) {
	assert.Equal(t, model.RoleAssistant, model.NormalizeRole("tool"))
	assert.Equal(t, model.RoleAssistant, model.NormalizeRole("function"))
	assert.Equal(t, model.RoleUser, model.NormalizeRole("user"))
	assert.Equal(t, model.RoleSystem, model.NormalizeRole("system"))
}

func TestNewConversationRejectsZeroMessages(t *testing.T) {
	_, err := model.NewConversation("c1", "title", time.Now(), nil, nil)
	require.Error(t, err)
}

func TestNewConversationRejectsUpdatedBeforeCreated(t *testing.T) {
	now := time.Now()
	before := now.Add(-time.Hour)
	msg := mustMessage(t, "m1", "hi", model.RoleUser, now, "")
	_, err := model.NewConversation("c1", "t", now, &before, []model.Message{msg})
	require.Error(t, err)
}

func TestNewConversationRejectsDanglingParent(t *testing.T) {
	now := time.Now()
	msg := mustMessage(t, "m1", "hi", model.RoleUser, now, "does-not-exist")
	_, err := model.NewConversation("c1", "t", now, nil, []model.Message{msg})
	require.Error(t, err)
}

func TestNewConversationRejectsDuplicateMessageID(t *testing.T) {
	now := time.Now()
	m1 := mustMessage(t, "m1", "hi", model.RoleUser, now, "")
	m2 := mustMessage(t, "m1", "hi again", model.RoleAssistant, now, "")
	_, err := model.NewConversation("c1", "t", now, nil, []model.Message{m1, m2})
	require.Error(t, err)
}

func TestUpdatedAtOrCreatedFallsBack(t *testing.T) {
	now := time.Now()
	msg := mustMessage(t, "m1", "hi", model.RoleUser, now, "")
	conv, err := model.NewConversation("c1", "t", now, nil, []model.Message{msg})
	require.NoError(t, err)
	assert.WithinDuration(t, now.UTC(), conv.UpdatedAtOrCreated(), time.Second)

	later := now.Add(time.Hour)
	conv2, err := model.NewConversation("c2", "t", now, &later, []model.Message{msg})
	require.NoError(t, err)
	assert.WithinDuration(t, later.UTC(), conv2.UpdatedAtOrCreated(), time.Second)
}

func TestMessageByID(t *testing.T) {
	now := time.Now()
	m1 := mustMessage(t, "m1", "hi", model.RoleUser, now, "")
	conv, err := model.NewConversation("c1", "t", now, nil, []model.Message{m1})
	require.NoError(t, err)

	found, ok := conv.MessageByID("m1")
	require.True(t, ok)
	assert.Equal(t, "hi", found.Content())

	_, ok = conv.MessageByID("missing")
	assert.False(t, ok)
}
