package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// StateTTL bounds how long an authorization attempt stays valid.
const StateTTL = 10 * time.Minute

const statePrefix = "autoposter:oauth_state:"

// StateCache stores OAuth state tokens in Redis with a TTL.
type StateCache struct {
	client *redis.Client
}

func NewStateCache(client *redis.Client) *StateCache {
	return &StateCache{client: client}
}

func (c *StateCache) Put(ctx context.Context, state string) error {
	return c.client.Set(ctx, statePrefix+state, "1", StateTTL).Err()
}

func (c *StateCache) Consume(ctx context.Context, state string) (bool, error) {
	if state == "" {
		return false, nil
	}
	_, err := c.client.GetDel(ctx, statePrefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MemoryStateStore is used when Redis is not configured.
type MemoryStateStore struct {
	mu     sync.Mutex
	states map[string]time.Time // state -> expiry
	now    func() time.Time
}

func NewMemoryStateStore(now func() time.Time) *MemoryStateStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStateStore{states: map[string]time.Time{}, now: now}
}

func (s *MemoryStateStore) Put(_ context.Context, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, exp := range s.states {
		if now.After(exp) {
			delete(s.states, k)
		}
	}
	s.states[state] = now.Add(StateTTL)
	return nil
}

func (s *MemoryStateStore) Consume(_ context.Context, state string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.states[state]
	if !ok {
		return false, nil
	}
	delete(s.states, state)
	return !s.now().After(exp), nil
}
