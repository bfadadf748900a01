package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/tradesim/internal/config"
	"github.com/josh-kwaku/tradesim/internal/domain"
	"github.com/josh-kwaku/tradesim/internal/fx"
	"github.com/josh-kwaku/tradesim/internal/handler"
	"github.com/josh-kwaku/tradesim/internal/ledger"
	"github.com/josh-kwaku/tradesim/internal/logging"
	"github.com/josh-kwaku/tradesim/internal/market"
	"github.com/josh-kwaku/tradesim/internal/metrics"
	"github.com/josh-kwaku/tradesim/internal/middleware"
	"github.com/josh-kwaku/tradesim/internal/repository"
	"github.com/josh-kwaku/tradesim/internal/service"
)

//go:embed openapi.yaml
var openapiSpec []byte

// priceSource is what the ledger and the market screens need from a
// quote provider; both the static table and the HTTP client satisfy it.
type priceSource interface {
	ledger.PriceSource
	AllPrices(ctx context.Context) (map[domain.Symbol]decimal.Decimal, error)
	Healthy(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("tradesim-api", cfg.LogLevel, cfg.AppEnv)

	prices := newPriceSource(cfg.MarketDataURL)

	users := repository.NewUserRepository()
	ledgers := repository.NewLedgerRepository()
	idemCache := repository.NewIdempotencyRepository(cfg.IdempotencyTTL)

	accounts := service.NewAccountService(users, ledgers, prices)
	trading := service.NewTradingService(ledgers)
	rates := fx.NewRateService()

	authHandler := handler.NewAuthHandler(accounts, cfg.JWTSecret, cfg.JWTExpiry)
	ledgerHandler := handler.NewLedgerHandler(trading)
	tradeHandler := handler.NewTradeHandler(trading)
	portfolioHandler := handler.NewPortfolioHandler(trading)
	marketHandler := handler.NewMarketHandler(prices, rates)
	healthHandler := handler.NewHealthHandler(prices)

	authMW := middleware.Auth(cfg.JWTSecret)
	idemMW := middleware.Idempotency(idemCache)

	public := func(h http.HandlerFunc) http.Handler {
		return middleware.Logging(h)
	}
	protected := func(h http.HandlerFunc) http.Handler {
		return authMW(middleware.Logging(h))
	}
	mutating := func(h http.HandlerFunc) http.Handler {
		return authMW(middleware.Logging(idemMW(h)))
	}

	mux := http.NewServeMux()

	mux.Handle("GET /health/live", public(healthHandler.Liveness))
	mux.Handle("GET /health/ready", public(healthHandler.Readiness))
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /docs", public(handler.ServeDocs()))
	mux.Handle("GET /docs/openapi.yaml", public(handler.ServeSpec(openapiSpec)))

	mux.Handle("POST /api/v1/auth/register", public(authHandler.Register))
	mux.Handle("POST /api/v1/auth/login", public(authHandler.Login))

	mux.Handle("GET /api/v1/market/prices", public(marketHandler.Prices))
	mux.Handle("GET /api/v1/market/prices/{symbol}", public(marketHandler.Price))
	mux.Handle("GET /api/v1/market/bonds", public(marketHandler.Bonds))
	mux.Handle("GET /api/v1/market/currencies", public(marketHandler.Currencies))
	mux.Handle("GET /api/v1/market/news", public(marketHandler.News))

	mux.Handle("POST /api/v1/ledger/deposits", mutating(ledgerHandler.Deposit))
	mux.Handle("POST /api/v1/ledger/withdrawals", mutating(ledgerHandler.Withdraw))
	mux.Handle("POST /api/v1/trades/buy", mutating(tradeHandler.Buy))
	mux.Handle("POST /api/v1/trades/sell", mutating(tradeHandler.Sell))

	mux.Handle("GET /api/v1/portfolio", protected(portfolioHandler.Summary))
	mux.Handle("GET /api/v1/portfolio/holdings", protected(portfolioHandler.Holdings))
	mux.Handle("GET /api/v1/portfolio/transactions", protected(portfolioHandler.Transactions))

	root := middleware.Tracing(middleware.Recovery(mux))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           root,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr, "price_source", priceSourceName(cfg.MarketDataURL))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func newPriceSource(marketDataURL string) priceSource {
	if marketDataURL == "" {
		return market.NewStaticSource()
	}
	return market.NewClient(marketDataURL)
}

func priceSourceName(marketDataURL string) string {
	if marketDataURL == "" {
		return "static"
	}
	return marketDataURL
}
