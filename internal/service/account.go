package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/josh-kwaku/tradesim/internal/domain"
	"github.com/josh-kwaku/tradesim/internal/ledger"
	"github.com/josh-kwaku/tradesim/internal/logging"
)

type userRepo interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type ledgerCreator interface {
	Create(ctx context.Context, userID uuid.UUID, l *ledger.Ledger) error
}

// AccountService registers users in the directory and hands each one an
// empty ledger. Credential verification lives here, not in the ledger
// core.
type AccountService struct {
	users   userRepo
	ledgers ledgerCreator
	prices  ledger.PriceSource
}

func NewAccountService(users userRepo, ledgers ledgerCreator, prices ledger.PriceSource) *AccountService {
	return &AccountService{users: users, ledgers: ledgers, prices: prices}
}

func (s *AccountService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	log := logging.FromContext(ctx)
	email = normalizeEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}
	if err := s.ledgers.Create(ctx, user.ID, ledger.New(s.prices)); err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}

	log.Info("user registered", "user_id", user.ID, "email", email)
	return user, nil
}

// Authenticate verifies credentials. Unknown emails and wrong passwords
// report the same error so the response does not leak which emails are
// registered.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("Authenticate: %w", domain.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("Authenticate: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("Authenticate: %w", domain.ErrInvalidCredentials)
	}
	return user, nil
}

func (s *AccountService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("GetUser: %w", err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
