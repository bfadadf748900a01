package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/josh-kwaku/tradesim/internal/domain"
	"github.com/josh-kwaku/tradesim/internal/ledger"
	"github.com/josh-kwaku/tradesim/internal/market"
	"github.com/josh-kwaku/tradesim/internal/repository"
)

const TestPassword = "password123"

// SeedUser registers a user with a bcrypt-hashed TestPassword and an
// empty ledger, returning the user.
func SeedUser(t *testing.T, users *repository.UserRepository, ledgers *repository.LedgerRepository, email string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := ledgers.Create(context.Background(), user.ID, ledger.New(market.NewStaticSource())); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}
	return user
}

// FundedLedger returns a ledger over the static quote table with the
// given opening deposit already applied.
func FundedLedger(t *testing.T, openingCash int64) *ledger.Ledger {
	t.Helper()

	l := ledger.New(market.NewStaticSource())
	if _, err := l.Deposit(decimal.NewFromInt(openingCash)); err != nil {
		t.Fatalf("opening deposit: %v", err)
	}
	return l
}
