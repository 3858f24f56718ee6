package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/sirupsen/logrus"
)

const SessionKeyPrefix = "gabnork_user"

func SessionKey(clientID string) string {
	return SessionKeyPrefix + ":" + clientID
}

// uriComponentFixups turns QueryEscape output into encodeURIComponent output:
// spaces are %20 and the marks !'()* stay literal.
var uriComponentFixups = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func AvatarURL(name string) string {
	escaped := uriComponentFixups.Replace(url.QueryEscape(name))
	return "https://ui-avatars.com/api/?name=" + escaped + "&background=f59e0b&color=fff"
}

// SessionStore holds at most one identity for one client and mirrors it to
// durable storage. Storage failures never reach the caller.
type SessionStore struct {
	mu       sync.RWMutex
	key      string
	identity *domain.Identity
	storage  domain.KeyValueStorage
	now      func() time.Time
	log      *logrus.Logger
}

func NewSessionStore(storage domain.KeyValueStorage, key string, now func() time.Time, logger *logrus.Logger) *SessionStore {
	if now == nil {
		now = time.Now
	}
	return &SessionStore{
		key:     key,
		storage: storage,
		now:     now,
		log:     logger,
	}
}

func (s *SessionStore) Login(ctx context.Context, email, name string) domain.Identity {
	identity := domain.Identity{
		ID:     strconv.FormatInt(s.now().UnixMilli(), 10),
		Name:   name,
		Email:  email,
		Avatar: AvatarURL(name),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = &identity

	payload, err := json.Marshal(identity)
	if err != nil {
		s.log.Errorf("Use Case: Failed to encode identity for %s: %v", s.key, err)
		return identity
	}
	if err := s.storage.Set(ctx, s.key, string(payload)); err != nil {
		s.log.Warnf("Use Case: Failed to persist identity under %s, keeping it in memory: %v", s.key, err)
	}
	return identity
}

func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	if err := s.storage.Delete(ctx, s.key); err != nil {
		s.log.Warnf("Use Case: Failed to delete persisted identity %s: %v", s.key, err)
	}
}

// RehydrateOnStart restores a persisted identity. Absent, malformed or
// unreadable data leaves the store unauthenticated.
func (s *SessionStore) RehydrateOnStart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.storage.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.log.Warnf("Use Case: Failed to read persisted identity %s: %v", s.key, err)
		}
		s.identity = nil
		return
	}

	var identity domain.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil || identity.ID == "" {
		s.log.Warnf("Use Case: Ignoring malformed identity under %s", s.key)
		s.identity = nil
		return
	}
	s.identity = &identity
	s.log.Infof("Use Case: Rehydrated identity %s for %s", identity.ID, s.key)
}

func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

func (s *SessionStore) Identity() (*domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil, false
	}
	identity := *s.identity
	return &identity, true
}

var _ domain.SessionUseCase = (*sessionUseCase)(nil)

type sessionEntry struct {
	rehydrate sync.Once
	store     *SessionStore
}

type sessionUseCase struct {
	mu      sync.Mutex
	stores  map[string]*sessionEntry
	storage domain.KeyValueStorage
	now     func() time.Time
	log     *logrus.Logger
}

// NewSessionUseCase creates session stores lazily, one per client. A store is
// rehydrated from storage the first time it is created.
func NewSessionUseCase(storage domain.KeyValueStorage, logger *logrus.Logger) domain.SessionUseCase {
	return newSessionUseCase(storage, time.Now, logger)
}

func newSessionUseCase(storage domain.KeyValueStorage, now func() time.Time, logger *logrus.Logger) *sessionUseCase {
	return &sessionUseCase{
		stores:  make(map[string]*sessionEntry),
		storage: storage,
		now:     now,
		log:     logger,
	}
}

// store returns the client's session store. The storage read that rehydrates
// it happens outside uc.mu; callers for the same client wait on the entry.
func (uc *sessionUseCase) store(ctx context.Context, clientID string) *SessionStore {
	uc.mu.Lock()
	e, ok := uc.stores[clientID]
	if !ok {
		e = &sessionEntry{store: NewSessionStore(uc.storage, SessionKey(clientID), uc.now, uc.log)}
		uc.stores[clientID] = e
	}
	uc.mu.Unlock()

	e.rehydrate.Do(func() { e.store.RehydrateOnStart(ctx) })
	return e.store
}

func (uc *sessionUseCase) Login(ctx context.Context, clientID, email, name string) domain.Identity {
	identity := uc.store(ctx, clientID).Login(ctx, email, name)
	uc.log.Infof("Use Case: Client %s logged in as %s", clientID, identity.Email)
	return identity
}

func (uc *sessionUseCase) Logout(ctx context.Context, clientID string) {
	uc.store(ctx, clientID).Logout(ctx)
	uc.log.Infof("Use Case: Client %s logged out", clientID)
}

func (uc *sessionUseCase) CurrentIdentity(ctx context.Context, clientID string) (*domain.Identity, bool) {
	return uc.store(ctx, clientID).Identity()
}

func (uc *sessionUseCase) IsAuthenticated(ctx context.Context, clientID string) bool {
	return uc.store(ctx, clientID).IsAuthenticated()
}
