// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

// =============================================================================
// ROLES
// =============================================================================

// Wire roles used in conversation_history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// Turn is one entry of the conversation history sent with every question.
type Turn struct {
	Role    string `json:"role"`    // "user" or "assistant"
	Content string `json:"content"` // Message text as shown in the transcript
}

// NewUserTurn creates a user turn.
func NewUserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

// AskRequest is the request body for the ask endpoint.
// The probe leaves ConversationHistory nil so the field is omitted entirely.
type AskRequest struct {
	Question            string `json:"question"`
	ConversationHistory []Turn `json:"conversation_history,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// AskResponse is the decoded answer from the ask endpoint.
type AskResponse struct {
	Answer string
}

// askResponseBody mirrors the wire format. Answer is a pointer so a missing
// field can be told apart from an empty answer.
type askResponseBody struct {
	Answer *string `json:"answer"`
}
