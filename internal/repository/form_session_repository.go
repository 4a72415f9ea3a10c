package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sadriving/sadriving-backend/internal/config"
	"github.com/sadriving/sadriving-backend/internal/model"
)

// ErrFormSessionNotFound is returned for unknown or expired form sessions.
var ErrFormSessionNotFound = errors.New("form session not found")

// MemoryFormSessionRepository keeps form sessions in process memory.
type MemoryFormSessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

type memoryEntry struct {
	session   model.FormSession
	expiresAt time.Time
}

// NewMemoryFormSessionRepository creates a new MemoryFormSessionRepository.
// Sessions expire ttl after their last save.
func NewMemoryFormSessionRepository(ttl time.Duration) *MemoryFormSessionRepository {
	return &MemoryFormSessionRepository{
		sessions: make(map[uuid.UUID]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Save stores a copy of the session and refreshes its expiry.
func (r *MemoryFormSessionRepository) Save(_ context.Context, s *model.FormSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = memoryEntry{session: *s, expiresAt: r.now().Add(r.ttl)}
	return nil
}

// Get returns a copy of the session.
func (r *MemoryFormSessionRepository) Get(_ context.Context, id uuid.UUID) (*model.FormSession, error) {
	r.mu.RLock()
	entry, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok || !r.now().Before(entry.expiresAt) {
		return nil, ErrFormSessionNotFound
	}
	s := entry.session
	return &s, nil
}

// Sweep drops expired sessions and returns how many were removed.
func (r *MemoryFormSessionRepository) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, entry := range r.sessions {
		if !now.Before(entry.expiresAt) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps expired sessions every interval until ctx is done.
func (r *MemoryFormSessionRepository) StartJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// RedisFormSessionRepository keeps form sessions in Redis as JSON strings.
type RedisFormSessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisFormSessionRepository creates a new RedisFormSessionRepository.
func NewRedisFormSessionRepository(rdb *redis.Client, ttl time.Duration) *RedisFormSessionRepository {
	return &RedisFormSessionRepository{rdb: rdb, ttl: ttl}
}

// Save writes the session and refreshes its TTL.
func (r *RedisFormSessionRepository) Save(ctx context.Context, s *model.FormSession) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal form session: %w", err)
	}
	key := config.CacheKey.FormSessionKey(s.ID.String())
	return r.rdb.Set(ctx, key, raw, r.ttl).Err()
}

// Get loads the session.
func (r *RedisFormSessionRepository) Get(ctx context.Context, id uuid.UUID) (*model.FormSession, error) {
	key := config.CacheKey.FormSessionKey(id.String())
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrFormSessionNotFound
		}
		return nil, err
	}

	var s model.FormSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode form session: %w", err)
	}
	return &s, nil
}
