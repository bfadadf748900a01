package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/tradesim/internal/domain"
	"github.com/josh-kwaku/tradesim/internal/fx"
	"github.com/josh-kwaku/tradesim/internal/logging"
	"github.com/josh-kwaku/tradesim/internal/market"
)

// board holds the provider's quote table. Prices drift a little on every
// read so repeated valuations look alive.
type board struct {
	mu     sync.Mutex
	quotes map[domain.Symbol]decimal.Decimal
	jitter float64
}

func newBoard(jitter float64) *board {
	return &board{
		jitter: jitter,
		quotes: map[domain.Symbol]decimal.Decimal{
			"AAPL":  decimal.NewFromInt(150),
			"TSLA":  decimal.NewFromInt(250),
			"GOOGL": decimal.NewFromInt(2700),
			"MSFT":  decimal.NewFromInt(410),
			"AMZN":  decimal.NewFromInt(185),
		},
	}
}

func (b *board) price(sym domain.Symbol) (decimal.Decimal, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	price, ok := b.quotes[sym]
	if !ok {
		return decimal.Zero, false
	}
	return b.drift(sym, price), true
}

func (b *board) all() map[domain.Symbol]decimal.Decimal {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(map[domain.Symbol]decimal.Decimal, len(b.quotes))
	for sym, price := range b.quotes {
		out[sym] = b.drift(sym, price)
	}
	return out
}

// drift nudges the stored price by at most ±jitter and persists the
// move. Callers must hold b.mu.
func (b *board) drift(sym domain.Symbol, price decimal.Decimal) decimal.Decimal {
	if b.jitter <= 0 {
		return price
	}
	factor := 1 + (rand.Float64()*2-1)*b.jitter
	moved := price.Mul(decimal.NewFromFloat(factor)).Round(2)
	b.quotes[sym] = moved
	return moved
}

func main() {
	_ = godotenv.Load()

	logging.Init("mock-market", os.Getenv("LOG_LEVEL"), os.Getenv("APP_ENV"))

	port := 8081
	if p, err := strconv.Atoi(os.Getenv("MOCK_MARKET_PORT")); err == nil {
		port = p
	}
	jitter := 0.002
	if j, err := strconv.ParseFloat(os.Getenv("MOCK_MARKET_JITTER"), 64); err == nil {
		jitter = j
	}

	quotes := newBoard(jitter)
	rates := fx.NewRateService()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /prices", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, quotes.all())
	})
	mux.HandleFunc("GET /prices/{symbol}", func(w http.ResponseWriter, r *http.Request) {
		sym := domain.NormalizeSymbol(r.PathValue("symbol"))
		price, ok := quotes.price(sym)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown symbol"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"symbol": sym, "price": price})
	})
	mux.HandleFunc("GET /bonds", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, market.BondRates())
	})
	mux.HandleFunc("GET /currencies", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, rates.Rates(r.Context()))
	})
	mux.HandleFunc("GET /news", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, market.LatestNews())
	})

	addr := fmt.Sprintf(":%d", port)
	slog.Info("mock market started", "addr", addr, "jitter", jitter)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
