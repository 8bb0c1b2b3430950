package service

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ValidationError carries the first violated rule as an end-user safe
// message. Controllers translate it into a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

const maxMessageLength = 2000

// ChatMessageInput is the normalized result of validating a chat-turn
// request body.
type ChatMessageInput struct {
	Message   string
	SessionID string
}

// ValidateChatMessage checks an untyped request payload against the
// chat-turn schema and returns the trimmed, typed input. Validation stops
// at the first violated rule. The conversationHistory field is accepted
// for wire compatibility but never read: the server re-derives history
// from the store.
func ValidateChatMessage(payload map[string]any) (*ChatMessageInput, error) {
	raw, ok := payload["message"]
	if !ok || raw == nil {
		return nil, &ValidationError{Message: "message is required"}
	}
	text, ok := raw.(string)
	if !ok {
		return nil, &ValidationError{Message: "message must be a string"}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Message: "message cannot be empty"}
	}
	// The bound is in characters, not bytes: multibyte input within the
	// limit must pass.
	if utf8.RuneCountInString(text) > maxMessageLength {
		return nil, &ValidationError{Message: "message must be 2000 characters or less"}
	}

	input := &ChatMessageInput{Message: text}

	if raw, ok := payload["sessionId"]; ok && raw != nil {
		sessionID, ok := raw.(string)
		if !ok {
			return nil, &ValidationError{Message: "sessionId must be a string"}
		}
		if !IsValidSessionID(sessionID) {
			return nil, &ValidationError{Message: "sessionId must be a valid UUID"}
		}
		input.SessionID = sessionID
	}
	return input, nil
}

// ValidateSessionID checks the history-lookup path parameter.
func ValidateSessionID(sessionID string) error {
	if sessionID == "" {
		return &ValidationError{Message: "sessionId is required"}
	}
	if !IsValidSessionID(sessionID) {
		return &ValidationError{Message: "sessionId must be a valid UUID"}
	}
	return nil
}

// IsValidSessionID reports whether s is a canonically formatted UUID.
// uuid.Parse also accepts braced and urn-prefixed forms, so the length
// check pins it to the 36-character wire format.
func IsValidSessionID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
