package domain

import "context"

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

type ChatTurn struct {
	ID       string   `json:"id"`
	Role     ChatRole `json:"role"`
	Text     string   `json:"text"`
	Fallback bool     `json:"fallback,omitempty"`
}

// ChatCollaborator is the external language model. history holds prior
// exchanges only; message is the new user text.
type ChatCollaborator interface {
	Reply(ctx context.Context, history []ChatTurn, message string) (string, error)
}

type ChatUseCase interface {
	Send(ctx context.Context, clientID, text string) (ChatTurn, error)
	Transcript(clientID string) []ChatTurn
	Reset(clientID string) []ChatTurn
}
