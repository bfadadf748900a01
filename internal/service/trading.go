package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/tradesim/internal/domain"
	"github.com/josh-kwaku/tradesim/internal/ledger"
	"github.com/josh-kwaku/tradesim/internal/logging"
	"github.com/josh-kwaku/tradesim/internal/metrics"
)

type ledgerResolver interface {
	Get(ctx context.Context, userID uuid.UUID) (*ledger.Ledger, error)
}

// TradingService resolves a user's ledger and delegates mutations and
// reporting to it. All business rules live in the ledger; this layer
// adds logging and metrics.
type TradingService struct {
	ledgers ledgerResolver
}

func NewTradingService(ledgers ledgerResolver) *TradingService {
	return &TradingService{ledgers: ledgers}
}

// PortfolioSummary is the portfolio tab: cash, market value of holdings,
// their sum, and profit/loss against the initial deposit.
type PortfolioSummary struct {
	Cash           decimal.Decimal `json:"cash"`
	HoldingsValue  decimal.Decimal `json:"holdings_value"`
	PortfolioValue decimal.Decimal `json:"portfolio_value"`
	ProfitOrLoss   decimal.Decimal `json:"profit_or_loss"`
}

func (s *TradingService) Deposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*domain.Transaction, error) {
	l, err := s.ledgers.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Deposit: %w", err)
	}

	tx, err := l.Deposit(amount)
	metrics.RecordTransaction(string(domain.TransactionDeposit), err)
	if err != nil {
		return nil, fmt.Errorf("Deposit: %w", err)
	}

	logging.FromContext(ctx).Info("deposit applied",
		"user_id", userID,
		"amount", amount,
		"cash", tx.ResultingCash,
	)
	return tx, nil
}

func (s *TradingService) Withdraw(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*domain.Transaction, error) {
	l, err := s.ledgers.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Withdraw: %w", err)
	}

	tx, err := l.Withdraw(amount)
	metrics.RecordTransaction(string(domain.TransactionWithdrawal), err)
	if err != nil {
		return nil, fmt.Errorf("Withdraw: %w", err)
	}

	logging.FromContext(ctx).Info("withdrawal applied",
		"user_id", userID,
		"amount", amount,
		"cash", tx.ResultingCash,
	)
	return tx, nil
}

func (s *TradingService) Buy(ctx context.Context, userID uuid.UUID, symbol string, quantity int64) (*domain.Transaction, error) {
	l, err := s.ledgers.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Buy: %w", err)
	}

	tx, err := l.Buy(ctx, symbol, quantity)
	metrics.RecordTransaction(string(domain.TransactionBuy), err)
	if err != nil {
		return nil, fmt.Errorf("Buy: %w", err)
	}

	logging.FromContext(ctx).Info("buy executed",
		"user_id", userID,
		"symbol", tx.Symbol,
		"quantity", quantity,
		"unit_price", tx.UnitPrice,
		"cost", tx.Amount,
	)
	return tx, nil
}

func (s *TradingService) Sell(ctx context.Context, userID uuid.UUID, symbol string, quantity int64) (*domain.Transaction, error) {
	l, err := s.ledgers.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Sell: %w", err)
	}

	tx, err := l.Sell(ctx, symbol, quantity)
	metrics.RecordTransaction(string(domain.TransactionSell), err)
	if err != nil {
		return nil, fmt.Errorf("Sell: %w", err)
	}

	logging.FromContext(ctx).Info("sell executed",
		"user_id", userID,
		"symbol", tx.Symbol,
		"quantity", quantity,
		"unit_price", tx.UnitPrice,
		"proceeds", tx.Amount,
	)
	return tx, nil
}

func (s *TradingService) Portfolio(ctx context.Context, userID uuid.UUID) (*PortfolioSummary, error) {
	l, err := s.ledgers.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Portfolio: %w", err)
	}

	val, err := l.Valuation(ctx)
	if err != nil {
		return nil, fmt.Errorf("Portfolio: %w", err)
	}

	total := val.Cash.Add(val.HoldingsValue)
	return &PortfolioSummary{
		Cash:           val.Cash,
		HoldingsValue:  val.HoldingsValue,
		PortfolioValue: total,
		ProfitOrLoss:   total.Sub(val.InitialDeposit),
	}, nil
}

func (s *TradingService) Holdings(ctx context.Context, userID uuid.UUID) ([]ledger.Holding, error) {
	l, err := s.ledgers.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Holdings: %w", err)
	}

	report, err := l.HoldingsReport(ctx)
	if err != nil {
		return nil, fmt.Errorf("Holdings: %w", err)
	}
	return report, nil
}

func (s *TradingService) Transactions(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	l, err := s.ledgers.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Transactions: %w", err)
	}
	return l.TransactionHistory(), nil
}
