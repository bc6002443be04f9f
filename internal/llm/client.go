package llm

import (
	"context"
	"errors"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrQuotaExhausted reports that the provider rejected the call because the
// account's usage allowance is depleted. Callers test for it with errors.Is
// and substitute fallback content; every other failure mode is a hard
// provider error.
var ErrQuotaExhausted = errors.New("provider quota exhausted")

type Message struct {
	Role    string
	Content string
}

type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

type Client interface {
	Generate(ctx context.Context, messages []Message) (Response, error)
}
