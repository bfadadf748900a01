package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// IdempotencyEntry records one completed mutating request so a replay
// with the same key returns the original response.
type IdempotencyEntry struct {
	Key          string
	UserID       uuid.UUID
	RequestHash  string
	StatusCode   int
	ResponseBody []byte
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

type idemKey struct {
	key    string
	userID uuid.UUID
}

// IdempotencyRepository is an in-memory replay cache with lazy TTL
// expiry.
type IdempotencyRepository struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[idemKey]IdempotencyEntry
}

func NewIdempotencyRepository(ttl time.Duration) *IdempotencyRepository {
	return &IdempotencyRepository{
		ttl:     ttl,
		entries: make(map[idemKey]IdempotencyEntry),
	}
}

func (r *IdempotencyRepository) Get(key string, userID uuid.UUID) (*IdempotencyEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[idemKey{key, userID}]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		delete(r.entries, idemKey{key, userID})
		return nil, false
	}
	return &entry, true
}

func (r *IdempotencyRepository) Set(entry IdempotencyEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.ExpiresAt = now.Add(r.ttl)
	r.entries[idemKey{entry.Key, entry.UserID}] = entry
}
