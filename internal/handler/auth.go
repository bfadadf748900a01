package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/josh-kwaku/tradesim/internal/auth"
	"github.com/josh-kwaku/tradesim/internal/domain"
	"github.com/josh-kwaku/tradesim/internal/logging"
)

type accountService interface {
	Register(ctx context.Context, email, name, password string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

type AuthHandler struct {
	accounts  accountService
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthHandler(accounts accountService, jwtSecret string, jwtExpiry time.Duration) *AuthHandler {
	return &AuthHandler{
		accounts:  accounts,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

type userDTO struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (r registerRequest) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, FieldError{Field: "email", Message: "required"})
	} else if !strings.Contains(r.Email, "@") {
		errs = append(errs, FieldError{Field: "email", Message: "must be an email address"})
	}
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "required"})
	}
	return errs
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		logging.FromContext(r.Context()).Warn("registration failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, userDTO{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "required"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "required"})
	}
	return errs
}

type loginResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email, h.jwtSecret, h.jwtExpiry)
	if err != nil {
		RespondAppError(w, ErrInternalError, nil)
		return
	}

	RespondSuccess(w, http.StatusOK, loginResponse{
		Token: token,
		User: userDTO{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		},
	})
}
