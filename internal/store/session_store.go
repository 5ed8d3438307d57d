// Package store provides keyed persistence for interview sessions with
// expiry. The orchestrator assumes atomic put/get and nothing more.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"excel-interviewer/internal/model"

	"github.com/redis/go-redis/v9"
)

// SessionStore persists session snapshots keyed by session id.
type SessionStore interface {
	// Get returns the session or nil when unknown or expired.
	Get(ctx context.Context, id string) (*model.Session, error)

	// Put stores the session under the given TTL.
	Put(ctx context.Context, session *model.Session, ttl time.Duration) error

	// Delete removes the session.
	Delete(ctx context.Context, id string) error
}

type redisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func (s *redisSessionStore) Get(ctx context.Context, id string) (*model.Session, error) {
	data, err := s.client.Get(ctx, "interview:"+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var session model.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *redisSessionStore) Put(ctx context.Context, session *model.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, "interview:"+session.ID, data, ttl).Err()
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, "interview:"+id).Err()
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// memorySessionStore is the in-process fallback used when Redis is not
// configured, and by the test suite.
type memorySessionStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemorySessionStore creates an in-memory session store.
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *memorySessionStore) Get(_ context.Context, id string) (*model.Session, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok || s.now().After(entry.expiresAt) {
		return nil, nil
	}
	var session model.Session
	if err := json.Unmarshal(entry.data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *memorySessionStore) Put(_ context.Context, session *model.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[session.ID] = memoryEntry{
		data:      data,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *memorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}
