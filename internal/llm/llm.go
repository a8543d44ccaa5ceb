// Package llm provides chat-completion clients for the model backends
// used by the workshop client: a local ollama daemon, OpenAI, and Azure
// OpenAI deployments.
package llm

import "context"

// Message is a single chat message in a conversation transcript.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider is a chat-completion backend. Chat sends the full transcript
// and returns the assistant's reply text.
type Provider interface {
	Name() string
	Chat(ctx context.Context, messages []Message) (string, error)
}
