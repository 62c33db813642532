package store

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/ppiankov/brandprint/internal/model"
)

// MemoryStore keeps profiles in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*model.ExtractedProfile
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]*model.ExtractedProfile)}
}

// Save stores profile under a fresh UUID
func (s *MemoryStore) Save(ctx context.Context, profile *model.ExtractedProfile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if profile == nil {
		return "", errors.New("nil profile")
	}

	id := uuid.NewString()

	s.mu.Lock()
	s.profiles[id] = profile
	s.mu.Unlock()

	return id, nil
}

// Get returns the profile saved under id
func (s *MemoryStore) Get(ctx context.Context, id string) (*model.ExtractedProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// Len returns the number of stored profiles
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}
