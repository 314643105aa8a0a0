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

// Message is one normalized utterance within a Conversation. Message is
// immutable once constructed; there is no setter surface. Build one via
// NewMessage, or copy-and-revalidate through the Conversation it belongs to.
type Message struct {
	id        string
	content   string
	role      Role
	timestamp time.Time
	parentID  string // "" means root
	images    []ImageRef
	metadata  map[string]any
}

// NewMessage validates and constructs a Message.
//
//   - id must be non-empty.
//   - role must be one of RoleUser, RoleAssistant, RoleSystem (callers
//     normalize provider-specific roles with NormalizeRole before calling
//     NewMessage; NewMessage itself does not coerce unknown roles).
//   - timestamp must be timezone-aware. Go's time.Time is always "aware" in
//     the sense of carrying a location, but a naive export field (e.g. a
//     bare Unix timestamp with no offset information) is represented by the
//     adapter as time.Time in UTC already, so this validation instead
//     rejects the zero value, which adapters use to signal "no timestamp
//     could be parsed".
//   - parentID may be empty (root message).
func NewMessage(id, content string, role Role, timestamp time.Time, parentID string, images []ImageRef, metadata map[string]any) (Message, error) {
	if id == "" {
		return Message{}, errrs.NewValidationError("id", "message id must not be empty")
	}
	if !role.Valid() {
		return Message{}, errrs.NewValidationError("role", "role must be one of user, assistant, system")
	}
	if timestamp.IsZero() {
		return Message{}, errrs.NewValidationError("timestamp", "timestamp must be timezone-aware and non-zero")
	}

	imgs := make([]ImageRef, len(images))
	copy(imgs, images)

	return Message{
		id:        id,
		content:   content,
		role:      role,
		timestamp: timestamp.UTC(),
		parentID:  parentID,
		images:    imgs,
		metadata:  cloneMetadata(metadata),
	}, nil
}

// ID returns the message's id, unique within its conversation.
func (m Message) ID() string { return m.id }

// Content returns the message text. It may be empty (deleted messages).
func (m Message) Content() string { return m.content }

// Role returns the normalized role.
func (m Message) Role() Role { return m.role }

// Timestamp returns the message timestamp, always in UTC.
func (m Message) Timestamp() time.Time { return m.timestamp }

// ParentID returns the id of this message's parent within the same
// conversation, or "" if this message is a root.
func (m Message) ParentID() string { return m.parentID }

// IsRoot reports whether this message has no parent.
func (m Message) IsRoot() bool { return m.parentID == "" }

// Images returns the ordered image attachments. May be empty.
func (m Message) Images() []ImageRef {
	out := make([]ImageRef, len(m.images))
	copy(out, m.images)
	return out
}

// Metadata returns a defensive copy of the provider-specific auxiliary
// fields, including "original_role" when the role was normalized from a
// different provider string.
func (m Message) Metadata() map[string]any {
	return cloneMetadata(m.metadata)
}

// WithParentID returns a copy of m with its parent id replaced, e.g. to
// repair or drop a dangling parent reference (spec §3 invariants). The
// shipped adapters do not call it: they assign parent ids while building
// each message.
func (m Message) WithParentID(parentID string) Message {
	m.parentID = parentID
	return m
}
