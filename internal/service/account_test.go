package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/josh-kwaku/tradesim/internal/domain"
	"github.com/josh-kwaku/tradesim/internal/market"
	"github.com/josh-kwaku/tradesim/internal/repository"
)

func newAccountService() (*AccountService, *repository.LedgerRepository) {
	ledgers := repository.NewLedgerRepository()
	return NewAccountService(repository.NewUserRepository(), ledgers, market.NewStaticSource()), ledgers
}

func TestRegister(t *testing.T) {
	svc, ledgers := newAccountService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "  Jane@Example.COM ", "Jane", "hunter22")
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", user.Email, "email is normalized")
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")))

	l, err := ledgers.Get(ctx, user.ID)
	require.NoError(t, err, "registration creates the user's ledger")
	assert.True(t, l.Cash().IsZero())
	assert.Empty(t, l.TransactionHistory())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAccountService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "jane@example.com", "Jane", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "JANE@example.com", "Other Jane", "different")
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newAccountService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "jane@example.com", "Jane", "hunter22")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid credentials", email: "jane@example.com", password: "hunter22"},
		{name: "email case-insensitive", email: "Jane@Example.com", password: "hunter22"},
		{name: "wrong password", email: "jane@example.com", password: "nope", wantErr: domain.ErrInvalidCredentials},
		{name: "unknown email", email: "nobody@example.com", password: "hunter22", wantErr: domain.ErrInvalidCredentials},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			user, err := svc.Authenticate(ctx, tc.email, tc.password)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.ID, user.ID)
		})
	}
}

func TestGetUser(t *testing.T) {
	svc, _ := newAccountService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "jane@example.com", "Jane", "hunter22")
	require.NoError(t, err)

	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
}
