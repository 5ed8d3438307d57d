package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"excel-interviewer/internal/model"
)

// memoryEvaluationCache is a bounded in-process cache with TTL, used when
// Redis is not configured. Least-recently-used entries are evicted once the
// size cap is hit, so the cache cannot grow without bound in a long-running
// process.
type memoryEvaluationCache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	entries map[string]*list.Element
	order   *list.List // front = most recently used
	now     func() time.Time
}

type memoryCacheEntry struct {
	key       string
	eval      model.Evaluation
	expiresAt time.Time
}

// NewMemoryEvaluationCache creates a bounded in-memory evaluation cache.
func NewMemoryEvaluationCache(maxSize int, ttl time.Duration) EvaluationCache {
	if maxSize <= 0 {
		maxSize = 1024
	}
	return &memoryEvaluationCache{
		maxSize: maxSize,
		ttl:     ttl,
		entries: make(map[string]*list.Element),
		order:   list.New(),
		now:     time.Now,
	}
}

func (c *memoryEvaluationCache) Get(_ context.Context, key string) (*model.Evaluation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	entry := elem.Value.(*memoryCacheEntry)
	if c.now().After(entry.expiresAt) {
		c.order.Remove(elem)
		delete(c.entries, key)
		return nil, nil
	}

	c.order.MoveToFront(elem)
	copied := entry.eval
	return &copied, nil
}

func (c *memoryEvaluationCache) Set(_ context.Context, key string, eval *model.Evaluation) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*memoryCacheEntry)
		entry.eval = *eval
		entry.expiresAt = c.now().Add(c.ttl)
		c.order.MoveToFront(elem)
		return nil
	}

	for len(c.entries) >= c.maxSize {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*memoryCacheEntry).key)
	}

	c.entries[key] = c.order.PushFront(&memoryCacheEntry{
		key:       key,
		eval:      *eval,
		expiresAt: c.now().Add(c.ttl),
	})
	return nil
}
