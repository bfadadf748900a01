package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/tradesim/internal/auth"
	"github.com/josh-kwaku/tradesim/internal/domain"
	"github.com/josh-kwaku/tradesim/internal/logging"
)

type cashService interface {
	Deposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*domain.Transaction, error)
	Withdraw(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*domain.Transaction, error)
}

// LedgerHandler serves the cash side of the ledger: deposits and
// withdrawals.
type LedgerHandler struct {
	trading cashService
}

func NewLedgerHandler(trading cashService) *LedgerHandler {
	return &LedgerHandler{trading: trading}
}

type cashRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (r cashRequest) Validate() []FieldError {
	var errs []FieldError
	if !r.Amount.IsPositive() {
		errs = append(errs, FieldError{Field: "amount", Message: "must be greater than zero"})
	}
	return errs
}

func (h *LedgerHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	var req cashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	tx, err := h.trading.Deposit(r.Context(), userID, req.Amount)
	if err != nil {
		logging.FromContext(r.Context()).Warn("deposit rejected", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, tx)
}

func (h *LedgerHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	var req cashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	tx, err := h.trading.Withdraw(r.Context(), userID, req.Amount)
	if err != nil {
		logging.FromContext(r.Context()).Warn("withdrawal rejected", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, tx)
}
