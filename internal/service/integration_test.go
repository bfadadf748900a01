package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/tradesim/internal/domain"
	"github.com/josh-kwaku/tradesim/internal/market"
	"github.com/josh-kwaku/tradesim/internal/repository"
)

// Full account lifecycle against real repositories and the static quote
// table: register, authenticate, fund, trade, report.
func TestAccountLifecycle(t *testing.T) {
	ctx := context.Background()

	users := repository.NewUserRepository()
	ledgers := repository.NewLedgerRepository()
	accounts := NewAccountService(users, ledgers, market.NewStaticSource())
	trading := NewTradingService(ledgers)

	user, err := accounts.Register(ctx, "jane@example.com", "Jane", "hunter22")
	require.NoError(t, err)

	authed, err := accounts.Authenticate(ctx, "jane@example.com", "hunter22")
	require.NoError(t, err)
	require.Equal(t, user.ID, authed.ID)

	_, err = trading.Deposit(ctx, user.ID, decimal.NewFromInt(1000))
	require.NoError(t, err)

	_, err = trading.Buy(ctx, user.ID, "AAPL", 5)
	require.NoError(t, err)

	summary, err := trading.Portfolio(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, summary.Cash.Equal(decimal.NewFromInt(250)), "cash: %s", summary.Cash)
	assert.True(t, summary.PortfolioValue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, summary.ProfitOrLoss.IsZero())

	// Oversell is rejected without touching state.
	_, err = trading.Sell(ctx, user.ID, "AAPL", 6)
	require.ErrorIs(t, err, domain.ErrInsufficientHoldings)

	_, err = trading.Sell(ctx, user.ID, "AAPL", 5)
	require.NoError(t, err)

	_, err = trading.Withdraw(ctx, user.ID, decimal.NewFromInt(1000))
	require.NoError(t, err)

	summary, err = trading.Portfolio(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, summary.Cash.IsZero())
	assert.True(t, summary.HoldingsValue.IsZero())
	assert.True(t, summary.ProfitOrLoss.Equal(decimal.NewFromInt(-1000)),
		"withdrawals count against the initial-deposit baseline")

	history, err := trading.Transactions(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, domain.TransactionDeposit, history[0].Kind)
	assert.Equal(t, domain.TransactionWithdrawal, history[3].Kind)
}

// A second registered account has its own ledger; activity on one never
// shows up in the other.
func TestAccountsAreIsolated(t *testing.T) {
	ctx := context.Background()

	users := repository.NewUserRepository()
	ledgers := repository.NewLedgerRepository()
	accounts := NewAccountService(users, ledgers, market.NewStaticSource())
	trading := NewTradingService(ledgers)

	jane, err := accounts.Register(ctx, "jane@example.com", "Jane", "pw-one")
	require.NoError(t, err)
	omar, err := accounts.Register(ctx, "omar@example.com", "Omar", "pw-two")
	require.NoError(t, err)

	_, err = trading.Deposit(ctx, jane.ID, decimal.NewFromInt(500))
	require.NoError(t, err)

	omarSummary, err := trading.Portfolio(ctx, omar.ID)
	require.NoError(t, err)
	assert.True(t, omarSummary.Cash.IsZero())

	omarHistory, err := trading.Transactions(ctx, omar.ID)
	require.NoError(t, err)
	assert.Empty(t, omarHistory)
}
