package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/josh-kwaku/tradesim/internal/domain"
	"github.com/josh-kwaku/tradesim/internal/ledger"
)

// LedgerRepository maps each registered user to exactly one ledger.
type LedgerRepository struct {
	mu      sync.RWMutex
	ledgers map[uuid.UUID]*ledger.Ledger
}

func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{ledgers: make(map[uuid.UUID]*ledger.Ledger)}
}

func (r *LedgerRepository) Create(_ context.Context, userID uuid.UUID, l *ledger.Ledger) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ledgers[userID]; exists {
		return fmt.Errorf("Create: ledger already exists for user %s", userID)
	}
	r.ledgers[userID] = l
	return nil
}

func (r *LedgerRepository) Get(_ context.Context, userID uuid.UUID) (*ledger.Ledger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.ledgers[userID]
	if !ok {
		return nil, fmt.Errorf("Get: %w", domain.ErrNotFound)
	}
	return l, nil
}
