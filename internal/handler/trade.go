package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/josh-kwaku/tradesim/internal/auth"
	"github.com/josh-kwaku/tradesim/internal/domain"
	"github.com/josh-kwaku/tradesim/internal/logging"
)

type tradeService interface {
	Buy(ctx context.Context, userID uuid.UUID, symbol string, quantity int64) (*domain.Transaction, error)
	Sell(ctx context.Context, userID uuid.UUID, symbol string, quantity int64) (*domain.Transaction, error)
}

type TradeHandler struct {
	trading tradeService
}

func NewTradeHandler(trading tradeService) *TradeHandler {
	return &TradeHandler{trading: trading}
}

type tradeRequest struct {
	Symbol   string `json:"symbol"`
	Quantity int64  `json:"quantity"`
}

func (r tradeRequest) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.Symbol) == "" {
		errs = append(errs, FieldError{Field: "symbol", Message: "required"})
	}
	if r.Quantity <= 0 {
		errs = append(errs, FieldError{Field: "quantity", Message: "must be greater than zero"})
	}
	return errs
}

func (h *TradeHandler) Buy(w http.ResponseWriter, r *http.Request) {
	h.trade(w, r, h.trading.Buy, "buy rejected")
}

func (h *TradeHandler) Sell(w http.ResponseWriter, r *http.Request) {
	h.trade(w, r, h.trading.Sell, "sell rejected")
}

func (h *TradeHandler) trade(
	w http.ResponseWriter,
	r *http.Request,
	exec func(ctx context.Context, userID uuid.UUID, symbol string, quantity int64) (*domain.Transaction, error),
	rejectMsg string,
) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	tx, err := exec(r.Context(), userID, req.Symbol, req.Quantity)
	if err != nil {
		logging.FromContext(r.Context()).Warn(rejectMsg, "symbol", req.Symbol, "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, tx)
}
