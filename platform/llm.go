package platform

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// NewLLMClient builds the completion client. Returns nil when apiKey is
// empty; callers treat a nil client as "completion service not configured"
// and serve a fixed fallback reply instead of calling out.
func NewLLMClient(baseURL, apiKey string) *openai.Client {
	if apiKey == "" {
		return nil
	}
	return openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)
}
