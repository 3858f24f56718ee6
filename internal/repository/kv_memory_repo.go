package repository

import (
	"context"
	"sync"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
)

type memoryKeyValueStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKeyValueStorage() domain.KeyValueStorage {
	return &memoryKeyValueStorage{data: make(map[string]string)}
}

func (s *memoryKeyValueStorage) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return v, nil
}

func (s *memoryKeyValueStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memoryKeyValueStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
