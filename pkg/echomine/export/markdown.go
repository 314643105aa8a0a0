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

// Package export renders one normalized conversation to a deterministic
// Markdown document (spec §4.8).
package export

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aucontraire/echomine/pkg/echomine/model"
)

// ExportedBy identifies this tool in generated front matter.
const ExportedBy = "echomine"

const isoLayout = "2006-01-02T15:04:05Z"

// Options controls optional rendering features (spec §4.8).
type Options struct {
	// IncludeMetadata emits a YAML front matter block before the messages.
	IncludeMetadata bool
	// IncludeMessageIDs appends each message's id as inline code after its
	// heading line.
	IncludeMessageIDs bool
}

// frontMatter is the YAML document rendered ahead of the message body when
// Options.IncludeMetadata is set (spec §4.8 step 1).
type frontMatter struct {
	ID           string `yaml:"id"`
	Title        string `yaml:"title"`
	CreatedAt    string `yaml:"created_at"`
	UpdatedAt    string `yaml:"updated_at"`
	MessageCount int    `yaml:"message_count"`
	ExportDate   string `yaml:"export_date"`
	ExportedBy   string `yaml:"exported_by"`
}

// Render converts conv to Markdown. exportDate is supplied by the caller
// (rather than sourced from time.Now internally) so that, given equal
// inputs, Render is pure and its output byte-for-byte reproducible (spec
// §4.8 "deterministic, reproducible byte-for-byte given equal input").
func Render(conv model.Conversation, opts Options, exportDate time.Time) (string, error) {
	var b strings.Builder

	if opts.IncludeMetadata {
		block, err := renderFrontMatter(conv, exportDate)
		if err != nil {
			return "", err
		}
		b.WriteString(block)
	}

	messages := conv.Messages()
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("---\n")
		}
		renderMessage(&b, conv.ID(), i, msg, opts)
	}

	return b.String(), nil
}

func renderFrontMatter(conv model.Conversation, exportDate time.Time) (string, error) {
	fm := frontMatter{
		ID:           conv.ID(),
		Title:        conv.Title(),
		CreatedAt:    conv.CreatedAt().UTC().Format(isoLayout),
		UpdatedAt:    conv.UpdatedAtOrCreated().UTC().Format(isoLayout),
		MessageCount: conv.MessageCount(),
		ExportDate:   exportDate.UTC().Format(isoLayout),
		ExportedBy:   ExportedBy,
	}

	out, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("failed to render front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(out)
	b.WriteString("---\n\n")
	return b.String(), nil
}

func renderMessage(b *strings.Builder, conversationID string, index int, msg model.Message, opts Options) {
	b.WriteString(headingFor(msg.Role()))
	b.WriteString("\n\n")
	b.WriteString(msg.Timestamp().UTC().Format(isoLayout))
	b.WriteString("\n")

	if opts.IncludeMessageIDs {
		b.WriteString("`")
		b.WriteString(messageDisplayID(conversationID, index, msg))
		b.WriteString("`\n")
	}

	b.WriteString("\n")
	if msg.Content() != "" {
		b.WriteString(msg.Content())
		b.WriteString("\n")
	}
	for _, img := range msg.Images() {
		b.WriteString(fmt.Sprintf("![Image](%s.png)\n", sanitizeBasename(img.AssetPointer())))
	}
	b.WriteString("\n")
}

func headingFor(role model.Role) string {
	switch role {
	case model.RoleUser:
		return "## 👤 User"
	case model.RoleSystem:
		return "## ⚙️ System"
	default:
		return "## 🤖 Assistant"
	}
}

// messageDisplayID returns msg's own id, or a deterministic synthesized
// fallback (spec §4.8 step 2: "msg-{conversation_id}-{zero_padded_index}")
// for the degenerate case of an id-less message. The normalized model
// otherwise guarantees a non-empty id (model.NewMessage rejects ""), so this
// fallback only fires for a record constructed outside the usual adapters.
func messageDisplayID(conversationID string, index int, msg model.Message) string {
	if msg.ID() != "" {
		return msg.ID()
	}
	return fmt.Sprintf("msg-%s-%04d", conversationID, index)
}

// sanitizeBasename derives a provider-neutral, filesystem-safe basename from
// an asset_pointer URI (spec §4.8 step 3, §8 scenario 6:
// "sediment://file_abc" -> "file_abc", which renderMessage writes as
// "file_abc.png").
func sanitizeBasename(assetPointer string) string {
	s := assetPointer
	if idx := strings.LastIndex(s, "/"); idx >= 0 {
		s = s[idx+1:]
	}

	var out strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			out.WriteRune(r)
		default:
			out.WriteRune('_')
		}
	}
	if out.Len() == 0 {
		return "image"
	}
	return out.String()
}
