package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/tradesim/internal/auth"
	"github.com/josh-kwaku/tradesim/internal/domain"
)

type mockAccountService struct {
	user *domain.User
	err  error
}

func (m *mockAccountService) Register(_ context.Context, _, _, _ string) (*domain.User, error) {
	return m.user, m.err
}

func (m *mockAccountService) Authenticate(_ context.Context, _, _ string) (*domain.User, error) {
	return m.user, m.err
}

func testUser() *domain.User {
	return &domain.User{
		ID:    uuid.New(),
		Email: "jane@example.com",
		Name:  "Jane",
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svc        *mockAccountService
		wantStatus int
		wantCode   string
	}{
		{
			name:       "successful registration",
			body:       `{"email":"jane@example.com","name":"Jane","password":"hunter22"}`,
			svc:        &mockAccountService{user: testUser()},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "duplicate email",
			body:       `{"email":"jane@example.com","name":"Jane","password":"hunter22"}`,
			svc:        &mockAccountService{err: domain.ErrDuplicateEmail},
			wantStatus: http.StatusConflict,
			wantCode:   "EMAIL_ALREADY_REGISTERED",
		},
		{
			name:       "missing fields",
			body:       `{"email":"","name":"","password":""}`,
			svc:        &mockAccountService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "email without at sign",
			body:       `{"email":"janeexample.com","name":"Jane","password":"hunter22"}`,
			svc:        &mockAccountService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAuthHandler(tc.svc, "secret", time.Hour)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(tc.body))

			h.Register(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			resp := decodeResponse(t, rec)
			if tc.wantCode != "" {
				require.NotNil(t, resp.Error)
				assert.Equal(t, tc.wantCode, resp.Error.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	user := testUser()

	t.Run("valid credentials return a working token", func(t *testing.T) {
		h := NewAuthHandler(&mockAccountService{user: user}, "secret", time.Hour)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"email":"jane@example.com","password":"hunter22"}`))

		h.Login(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		require.True(t, resp.Success)

		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		token, ok := data["token"].(string)
		require.True(t, ok)

		claims, err := auth.ValidateToken(token, "secret")
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		h := NewAuthHandler(&mockAccountService{err: domain.ErrInvalidCredentials}, "secret", time.Hour)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"email":"jane@example.com","password":"wrong"}`))

		h.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		resp := decodeResponse(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
	})
}
