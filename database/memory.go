package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"mitra-support-backend/models"
)

type counterKey struct {
	metric string
	key    string
}

// MemoryStore keeps counters for the lifetime of the process. It is the
// default when no database is configured.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[counterKey]*models.Counter
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: make(map[counterKey]*models.Counter)}
}

func (s *MemoryStore) Increment(ctx context.Context, metric, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := counterKey{metric: metric, key: key}
	c, ok := s.counters[k]
	if !ok {
		c = &models.Counter{Metric: metric, Key: key}
		s.counters[k] = c
	}
	c.Count++
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) Counters(ctx context.Context) ([]models.Counter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	out := make([]models.Counter, 0, len(s.counters))
	for _, c := range s.counters {
		out = append(out, *c)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Metric != out[j].Metric {
			return out[i].Metric < out[j].Metric
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close(context.Context) error { return nil }
