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

// Role is a normalized message role. Every message, regardless of provider,
// is normalized to one of the three values below (spec §3 "Message.role").
type Role string

const (
	// RoleUser identifies a human-authored message.
	RoleUser Role = "user"

	// RoleAssistant identifies an AI-authored message. Unknown provider
	// roles, and tool/function roles, collapse to RoleAssistant.
	RoleAssistant Role = "assistant"

	// RoleSystem identifies a system/instruction message.
	RoleSystem Role = "system"
)

// NormalizeRole maps a provider-specific role string to a Role. It returns
// only the normalized role; retaining the original string under
// metadata["original_role"] is left to the caller.
func NormalizeRole(providerRole string) Role {
	switch providerRole {
	case "user":
		return RoleUser
	case "assistant":
		return RoleAssistant
	case "system":
		return RoleSystem
	default:
		// Tool/function roles and anything unrecognized collapse to
		// assistant (spec §3).
		return RoleAssistant
	}
}

// Valid reports whether r is one of the three normalized roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	default:
		return false
	}
}
