package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/josh-kwaku/tradesim/internal/auth"
	"github.com/josh-kwaku/tradesim/internal/domain"
	"github.com/josh-kwaku/tradesim/internal/ledger"
	"github.com/josh-kwaku/tradesim/internal/logging"
	"github.com/josh-kwaku/tradesim/internal/service"
)

type portfolioService interface {
	Portfolio(ctx context.Context, userID uuid.UUID) (*service.PortfolioSummary, error)
	Holdings(ctx context.Context, userID uuid.UUID) ([]ledger.Holding, error)
	Transactions(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error)
}

type PortfolioHandler struct {
	trading portfolioService
}

func NewPortfolioHandler(trading portfolioService) *PortfolioHandler {
	return &PortfolioHandler{trading: trading}
}

func (h *PortfolioHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	summary, err := h.trading.Portfolio(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Error("portfolio valuation failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, summary)
}

func (h *PortfolioHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	holdings, err := h.trading.Holdings(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Error("holdings report failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, holdings)
}

func (h *PortfolioHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	history, err := h.trading.Transactions(r.Context(), userID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, history)
}
