package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/gabinork/Gabi-Nork-Tech-2/pkg/async"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	ChatGreeting      = "Hello! I'm Gabby, your AI shopping assistant. How can I help you find the perfect tech today?"
	ChatEmptyFallback = "I'm having trouble connecting to the server right now. Please try again."
	ChatErrorFallback = "I apologize, but I'm currently experiencing high traffic. Please try again in a moment."

	greetingTurnID = "0"
)

func greetingTurn() domain.ChatTurn {
	return domain.ChatTurn{ID: greetingTurnID, Role: domain.ChatRoleAssistant, Text: ChatGreeting}
}

// chatSession is one client's conversation. generation bumps on every Reset
// so a late reply can tell it is stale.
type chatSession struct {
	mu         sync.Mutex
	turns      []domain.ChatTurn
	pending    bool
	generation int
}

// history returns the completed exchanges the model has seen. The greeting is
// local and fallback exchanges never reached the model.
func (s *chatSession) history() []domain.ChatTurn {
	out := make([]domain.ChatTurn, 0, len(s.turns))
	for i := 0; i+1 < len(s.turns); i++ {
		user, reply := s.turns[i], s.turns[i+1]
		if user.Role != domain.ChatRoleUser || reply.Role != domain.ChatRoleAssistant {
			continue
		}
		if !reply.Fallback {
			out = append(out, user, reply)
		}
		i++
	}
	return out
}

func (s *chatSession) snapshot() []domain.ChatTurn {
	out := make([]domain.ChatTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

var _ domain.ChatUseCase = (*chatUseCase)(nil)

type chatUseCase struct {
	mu           sync.Mutex
	sessions     map[string]*chatSession
	collaborator domain.ChatCollaborator
	timeout      time.Duration
	log          *logrus.Logger
}

func NewChatUseCase(collaborator domain.ChatCollaborator, timeout time.Duration, logger *logrus.Logger) domain.ChatUseCase {
	return &chatUseCase{
		sessions:     make(map[string]*chatSession),
		collaborator: collaborator,
		timeout:      timeout,
		log:          logger,
	}
}

func (uc *chatUseCase) session(clientID string) *chatSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s, ok := uc.sessions[clientID]
	if !ok {
		s = &chatSession{turns: []domain.ChatTurn{greetingTurn()}}
		uc.sessions[clientID] = s
	}
	return s
}

// Send appends the user's message and the assistant's reply. Only one send
// per client may be in flight; a second one gets ErrChatBusy.
func (uc *chatUseCase) Send(ctx context.Context, clientID, text string) (domain.ChatTurn, error) {
	message := strings.TrimSpace(text)
	if message == "" {
		return domain.ChatTurn{}, errors.New("invalid message: message cannot be empty")
	}

	s := uc.session(clientID)
	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return domain.ChatTurn{}, domain.ErrChatBusy
	}
	s.pending = true
	generation := s.generation
	history := s.history()
	s.turns = append(s.turns, domain.ChatTurn{ID: uuid.NewString(), Role: domain.ChatRoleUser, Text: message})
	s.mu.Unlock()

	reply := domain.ChatTurn{ID: uuid.NewString(), Role: domain.ChatRoleAssistant}
	reply.Text, reply.Fallback = uc.ask(ctx, clientID, history, message)

	s.mu.Lock()
	if s.generation == generation {
		s.turns = append(s.turns, reply)
	} else {
		uc.log.Debugf("Use Case: Dropping reply for client %s, conversation was reset", clientID)
	}
	s.pending = false
	s.mu.Unlock()

	return reply, nil
}

func (uc *chatUseCase) ask(ctx context.Context, clientID string, history []domain.ChatTurn, message string) (string, bool) {
	callCtx := ctx
	if uc.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	task := async.Go(callCtx, func(ctx context.Context) (string, error) {
		return uc.collaborator.Reply(ctx, history, message)
	})
	text, err := task.Await(callCtx)
	if err != nil {
		uc.log.Warnf("Use Case: Chat collaborator failed for client %s: %v", clientID, err)
		return ChatErrorFallback, true
	}
	if strings.TrimSpace(text) == "" {
		uc.log.Warnf("Use Case: Chat collaborator returned an empty reply for client %s", clientID)
		return ChatEmptyFallback, true
	}
	return text, false
}

func (uc *chatUseCase) Transcript(clientID string) []domain.ChatTurn {
	s := uc.session(clientID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Reset drops the conversation back to the greeting. A reply still in flight
// is discarded when it lands.
func (uc *chatUseCase) Reset(clientID string) []domain.ChatTurn {
	s := uc.session(clientID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = []domain.ChatTurn{greetingTurn()}
	s.generation++
	return s.snapshot()
}
