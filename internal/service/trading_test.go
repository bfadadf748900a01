package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/tradesim/internal/domain"
	"github.com/josh-kwaku/tradesim/internal/ledger"
	"github.com/josh-kwaku/tradesim/internal/market"
	"github.com/josh-kwaku/tradesim/internal/repository"
)

func newTradingFixture(t *testing.T) (*TradingService, uuid.UUID) {
	t.Helper()

	ledgers := repository.NewLedgerRepository()
	userID := uuid.New()
	require.NoError(t, ledgers.Create(context.Background(), userID, ledger.New(market.NewStaticSource())))
	return NewTradingService(ledgers), userID
}

func TestTradingFlow(t *testing.T) {
	svc, userID := newTradingFixture(t)
	ctx := context.Background()

	tx, err := svc.Deposit(ctx, userID, decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionDeposit, tx.Kind)

	tx, err = svc.Buy(ctx, userID, "aapl", 2)
	require.NoError(t, err)
	assert.Equal(t, domain.Symbol("AAPL"), tx.Symbol)

	summary, err := svc.Portfolio(ctx, userID)
	require.NoError(t, err)
	assert.True(t, summary.Cash.Equal(decimal.NewFromInt(700)), "cash: %s", summary.Cash)
	assert.True(t, summary.HoldingsValue.Equal(decimal.NewFromInt(300)))
	assert.True(t, summary.PortfolioValue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, summary.ProfitOrLoss.IsZero())

	holdings, err := svc.Holdings(ctx, userID)
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, int64(2), holdings[0].Quantity)

	_, err = svc.Sell(ctx, userID, "AAPL", 2)
	require.NoError(t, err)

	_, err = svc.Withdraw(ctx, userID, decimal.NewFromInt(500))
	require.NoError(t, err)

	history, err := svc.Transactions(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, history, 4)
}

func TestTradingErrorsPassThrough(t *testing.T) {
	svc, userID := newTradingFixture(t)
	ctx := context.Background()

	_, err := svc.Withdraw(ctx, userID, decimal.NewFromInt(10))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	_, err = svc.Buy(ctx, userID, "NOPE", 1)
	require.ErrorIs(t, err, domain.ErrUnknownSymbol)

	_, err = svc.Sell(ctx, userID, "AAPL", 1)
	require.ErrorIs(t, err, domain.ErrInsufficientHoldings)
}

func TestTradingUnknownUser(t *testing.T) {
	svc, _ := newTradingFixture(t)
	ctx := context.Background()

	_, err := svc.Deposit(ctx, uuid.New(), decimal.NewFromInt(100))
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Portfolio(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
