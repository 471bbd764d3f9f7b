package session

import (
	"context"
	"sync"
	"time"

	"github.com/ANITHAC1201/joicy/internal/common"
	"github.com/ANITHAC1201/joicy/internal/users"
)

type memoryEntry struct {
	identity users.Identity
	expires  time.Time
}

// MemoryStore keeps sessions in process memory. Expired entries are dropped
// lazily on access.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	byUser   map[int64]map[string]struct{}
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		byUser:   make(map[int64]map[string]struct{}),
		now:      time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, id string, identity users.Identity, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = memoryEntry{identity: identity, expires: s.now().Add(ttl)}
	ids, ok := s.byUser[identity.ID]
	if !ok {
		ids = make(map[string]struct{})
		s.byUser[identity.ID] = ids
	}
	ids[id] = struct{}{}

	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (users.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return users.Identity{}, common.ErrSessionNotFound
	}
	if !s.now().Before(e.expires) {
		s.deleteLocked(id)
		return users.Identity{}, common.ErrSessionNotFound
	}

	return e.identity, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteLocked(id)
	return nil
}

func (s *MemoryStore) DeleteUser(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.byUser[userID] {
		delete(s.sessions, id)
	}
	delete(s.byUser, userID)
	return nil
}

func (s *MemoryStore) deleteLocked(id string) {
	e, ok := s.sessions[id]
	if !ok {
		return
	}
	delete(s.sessions, id)
	if ids := s.byUser[e.identity.ID]; ids != nil {
		delete(ids, id)
		if len(ids) == 0 {
			delete(s.byUser, e.identity.ID)
		}
	}
}
