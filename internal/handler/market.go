package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/tradesim/internal/domain"
	"github.com/josh-kwaku/tradesim/internal/fx"
	"github.com/josh-kwaku/tradesim/internal/logging"
	"github.com/josh-kwaku/tradesim/internal/market"
)

type quoteSource interface {
	Price(ctx context.Context, symbol domain.Symbol) (decimal.Decimal, error)
	AllPrices(ctx context.Context) (map[domain.Symbol]decimal.Decimal, error)
}

type rateSource interface {
	Rates(ctx context.Context) []fx.Rate
}

// MarketHandler serves the display screens: share prices, bond rates,
// currency rates, and news. None of it feeds the ledger directly; the
// ledger queries its own price source per operation.
type MarketHandler struct {
	quotes quoteSource
	rates  rateSource
}

func NewMarketHandler(quotes quoteSource, rates rateSource) *MarketHandler {
	return &MarketHandler{quotes: quotes, rates: rates}
}

type quoteDTO struct {
	Symbol domain.Symbol   `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}

func (h *MarketHandler) Prices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.quotes.AllPrices(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("price listing failed", "error", err)
		RespondAppError(w, ErrInternalError, nil)
		return
	}
	RespondSuccess(w, http.StatusOK, prices)
}

func (h *MarketHandler) Price(w http.ResponseWriter, r *http.Request) {
	symbol := domain.NormalizeSymbol(r.PathValue("symbol"))

	price, err := h.quotes.Price(r.Context(), symbol)
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, quoteDTO{Symbol: symbol, Price: price})
}

func (h *MarketHandler) Bonds(w http.ResponseWriter, r *http.Request) {
	RespondSuccess(w, http.StatusOK, market.BondRates())
}

func (h *MarketHandler) Currencies(w http.ResponseWriter, r *http.Request) {
	RespondSuccess(w, http.StatusOK, h.rates.Rates(r.Context()))
}

func (h *MarketHandler) News(w http.ResponseWriter, r *http.Request) {
	RespondSuccess(w, http.StatusOK, market.LatestNews())
}
