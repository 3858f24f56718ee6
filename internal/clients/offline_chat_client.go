package clients

import (
	"context"
	"errors"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
)

var ErrChatOffline = errors.New("chat assistant is not configured")

type offlineChatClient struct{}

// NewOfflineChatClient always fails, so callers fall back to their canned reply.
func NewOfflineChatClient() domain.ChatCollaborator {
	return offlineChatClient{}
}

func (offlineChatClient) Reply(context.Context, []domain.ChatTurn, string) (string, error) {
	return "", ErrChatOffline
}
