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

package model

import (
	"time"

	"github.com/aucontraire/echomine/pkg/echomine/errrs"
)

// Conversation is one normalized chat transcript. Conversation is immutable
// once constructed via NewConversation; all scoring and rendering operate
// on a Conversation by value or by read-only reference.
type Conversation struct {
	id        string
	title     string
	createdAt time.Time
	updatedAt *time.Time
	messages  []Message
}

// NewConversation validates and constructs a Conversation.
//
//   - id must be non-empty.
//   - createdAt must be a non-zero, timezone-aware instant (stored as UTC).
//   - updatedAt, if present, must be >= createdAt.
//   - messages must be non-empty (spec §3: "Zero-message conversations are
//     rejected").
//   - every message's parentID, if non-empty, must reference another
//     message id within this same conversation. Callers that cannot
//     guarantee this should repair or drop the dangling reference (set
//     parentID to "") before calling NewConversation; NewConversation
//     itself fails validation rather than silently repairing, since the
//     repair decision belongs to the provider-specific adapter which knows
//     whether the dangling reference is expected (spec §3).
func NewConversation(id, title string, createdAt time.Time, updatedAt *time.Time, messages []Message) (Conversation, error) {
	if id == "" {
		return Conversation{}, errrs.NewValidationError("id", "conversation id must not be empty")
	}
	if createdAt.IsZero() {
		return Conversation{}, errrs.NewValidationError("created_at", "created_at must be timezone-aware and non-zero")
	}
	if len(messages) == 0 {
		return Conversation{}, errrs.NewValidationError("messages", "conversation must contain at least one message")
	}

	createdAtUTC := createdAt.UTC()

	var updatedAtUTC *time.Time
	if updatedAt != nil {
		u := updatedAt.UTC()
		if u.Before(createdAtUTC) {
			return Conversation{}, errrs.NewValidationError("updated_at", "updated_at must be >= created_at")
		}
		updatedAtUTC = &u
	}

	ids := make(map[string]struct{}, len(messages))
	for _, msg := range messages {
		if _, dup := ids[msg.ID()]; dup {
			return Conversation{}, errrs.NewValidationError("messages", "duplicate message id: "+msg.ID())
		}
		ids[msg.ID()] = struct{}{}
	}
	for _, msg := range messages {
		if msg.ParentID() != "" {
			if _, ok := ids[msg.ParentID()]; !ok {
				return Conversation{}, errrs.NewValidationError("messages", "message "+msg.ID()+" references unknown parent "+msg.ParentID())
			}
		}
	}

	msgs := make([]Message, len(messages))
	copy(msgs, messages)

	return Conversation{
		id:        id,
		title:     title,
		createdAt: createdAtUTC,
		updatedAt: updatedAtUTC,
		messages:  msgs,
	}, nil
}

// ID returns the conversation id.
func (c Conversation) ID() string { return c.id }

// Title returns the conversation title. May be empty.
func (c Conversation) Title() string { return c.title }

// CreatedAt returns the creation instant, in UTC.
func (c Conversation) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt returns the last-update instant and whether one was present.
func (c Conversation) UpdatedAt() (time.Time, bool) {
	if c.updatedAt == nil {
		return time.Time{}, false
	}
	return *c.updatedAt, true
}

// UpdatedAtOrCreated returns UpdatedAt() if present, else CreatedAt(). This
// is the canonical "last activity" instant used for date-sorted results and
// output records (spec §3); the search date filter uses CreatedAt instead.
func (c Conversation) UpdatedAtOrCreated() time.Time {
	if c.updatedAt != nil {
		return *c.updatedAt
	}
	return c.createdAt
}

// Messages returns the ordered messages in this conversation.
func (c Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// MessageCount returns len(Messages()).
func (c Conversation) MessageCount() int { return len(c.messages) }

// MessageByID returns the message with the given id, if present.
func (c Conversation) MessageByID(id string) (Message, bool) {
	for _, m := range c.messages {
		if m.ID() == id {
			return m, true
		}
	}
	return Message{}, false
}
