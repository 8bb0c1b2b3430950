package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"

	"supportchat/model"
	"supportchat/platform"
)

var logger = platform.Logger

// FailureKind classifies why a completion attempt produced no usable
// reply. The classification is best-effort telemetry: it drives which
// fixed user-safe string the handler substitutes, nothing more.
type FailureKind int

const (
	FailureUnknown FailureKind = iota
	FailureInvalidCredentials
	FailureRateLimited
	FailureTimeout
	FailureEmptyCompletion
)

// ReplyError wraps a completion failure with its classified kind. The
// underlying cause is for logs only and must never reach the client.
type ReplyError struct {
	Kind  FailureKind
	cause error
}

func (e *ReplyError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("reply generation failed (kind %d)", e.Kind)
	}
	return fmt.Sprintf("reply generation failed (kind %d): %v", e.Kind, e.cause)
}

func (e *ReplyError) Unwrap() error {
	return e.cause
}

// Fixed user-facing strings. Raw provider errors are never surfaced.
const (
	ReplyUnavailable = "Our AI assistant is currently unavailable. Please contact support directly or try again later."

	replyBadCredentials = "The support assistant is temporarily unavailable. Please contact support directly."
	replyRateLimited    = "We're experiencing high demand right now. Please try again in a moment."
	replyTimeout        = "The assistant took too long to respond. Please try again."
	replyGenericFailure = "Sorry, I'm having trouble answering right now. Please try again or contact support directly."
)

const (
	historyWindow  = 10
	maxReplyTokens = 500
	temperature    = 0.7
)

// ReplyService turns a conversation history plus a new customer message
// into an agent reply via the external completion service.
type ReplyService struct {
	client *openai.Client
	model  string
}

func NewReplyService(client *openai.Client, llmModel string) *ReplyService {
	return &ReplyService{client: client, model: llmModel}
}

// Enabled reports whether a completion client is configured. When false,
// callers use ReplyUnavailable without calling GenerateReply.
func (s *ReplyService) Enabled() bool {
	return s.client != nil
}

// GenerateReply composes the prompt and calls the completion service.
// It either returns a non-empty trimmed reply or a *ReplyError.
func (s *ReplyService) GenerateReply(ctx context.Context, history []model.Message, newMessageText string) (string, error) {
	if s.client == nil {
		return "", &ReplyError{Kind: FailureUnknown, cause: errors.New("no completion client configured")}
	}

	prompt := buildPrompt(history, newMessageText)

	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		}),
		Model:       openai.F(s.model),
		MaxTokens:   openai.F(int64(maxReplyTokens)),
		Temperature: openai.F(float64(temperature)),
	})
	if err != nil {
		return "", &ReplyError{Kind: classifyFailure(err), cause: err}
	}

	if len(completion.Choices) == 0 {
		return "", &ReplyError{Kind: FailureEmptyCompletion, cause: errors.New("completion returned no choices")}
	}
	reply := strings.TrimSpace(completion.Choices[0].Message.Content)
	if reply == "" {
		return "", &ReplyError{Kind: FailureEmptyCompletion, cause: errors.New("completion returned empty text")}
	}
	return reply, nil
}

// buildPrompt renders the knowledge preamble, the last historyWindow
// entries of history as Customer/Agent lines, the new message, and an
// empty Agent continuation cue.
func buildPrompt(history []model.Message, newMessageText string) string {
	var b strings.Builder
	b.WriteString(storeKnowledge)
	b.WriteString("\n\nConversation so far:\n")

	start := 0
	if len(history) > historyWindow {
		start = len(history) - historyWindow
	}
	for _, msg := range history[start:] {
		b.WriteString(fmt.Sprintf("%s: %s\n", roleLabel(msg.Sender), msg.Text))
	}

	b.WriteString(fmt.Sprintf("Customer: %s\n", newMessageText))
	b.WriteString("Agent:")
	return b.String()
}

func roleLabel(sender model.Sender) string {
	if sender == model.SenderAI {
		return "Agent"
	}
	return "Customer"
}

// classifyFailure maps a provider error onto a FailureKind by inspecting
// its text. Matching a third-party error format by substring is brittle,
// so everything unrecognized lands in FailureUnknown rather than guessing.
func classifyFailure(err error) FailureKind {
	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "401") ||
		strings.Contains(text, "api key") ||
		strings.Contains(text, "unauthorized") ||
		strings.Contains(text, "authentication"):
		return FailureInvalidCredentials
	case strings.Contains(text, "429") ||
		strings.Contains(text, "rate limit") ||
		strings.Contains(text, "quota"):
		return FailureRateLimited
	case strings.Contains(text, "timeout") ||
		strings.Contains(text, "timed out") ||
		strings.Contains(text, "deadline exceeded"):
		return FailureTimeout
	default:
		return FailureUnknown
	}
}

// FallbackReply picks the fixed user-safe string for a failed generation.
func FallbackReply(err error) string {
	var replyErr *ReplyError
	if !errors.As(err, &replyErr) {
		return replyGenericFailure
	}
	switch replyErr.Kind {
	case FailureInvalidCredentials:
		return replyBadCredentials
	case FailureRateLimited:
		return replyRateLimited
	case FailureTimeout:
		return replyTimeout
	default:
		return replyGenericFailure
	}
}
