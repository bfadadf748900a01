package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/tradesim/internal/domain"
)

// PriceSource resolves the current price of a symbol. Implementations
// return domain.ErrUnknownSymbol when the symbol cannot be resolved.
// The ledger never caches prices: every valuation re-queries the source.
type PriceSource interface {
	Price(ctx context.Context, symbol domain.Symbol) (decimal.Decimal, error)
}

// Holding is one row of a holdings report, marked to the current price.
type Holding struct {
	Symbol       domain.Symbol   `json:"symbol"`
	Quantity     int64           `json:"quantity"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	CurrentValue decimal.Decimal `json:"current_value"`
}

// Ledger holds one account's cash, stock holdings, and transaction log.
// Every mutation is all-or-nothing: it either applies fully and appends
// exactly one transaction, or fails leaving the state untouched. All
// methods take the ledger mutex, so reports observe cash and holdings
// from a single point in time.
type Ledger struct {
	mu             sync.Mutex
	prices         PriceSource
	cash           decimal.Decimal
	initialDeposit decimal.Decimal
	holdings       map[domain.Symbol]int64
	history        []domain.Transaction
}

func New(prices PriceSource) *Ledger {
	return &Ledger{
		prices:   prices,
		holdings: make(map[domain.Symbol]int64),
	}
}

// Deposit adds cash to the account. The first successful deposit fixes
// the initial deposit used as the profit/loss baseline; later deposits
// never re-baseline it.
func (l *Ledger) Deposit(amount decimal.Decimal) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("Deposit: %w", domain.ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.cash = l.cash.Add(amount)
	if l.initialDeposit.IsZero() {
		l.initialDeposit = amount
	}
	return l.record(domain.TransactionDeposit, amount, "", 0, nil), nil
}

// Withdraw removes cash from the account.
func (l *Ledger) Withdraw(amount decimal.Decimal) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("Withdraw: %w", domain.ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if amount.GreaterThan(l.cash) {
		return nil, fmt.Errorf("Withdraw: %w", domain.ErrInsufficientFunds)
	}
	l.cash = l.cash.Sub(amount)
	return l.record(domain.TransactionWithdrawal, amount, "", 0, nil), nil
}

// Buy purchases quantity shares of symbol at the source's current price.
func (l *Ledger) Buy(ctx context.Context, symbol string, quantity int64) (*domain.Transaction, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("Buy: %w", domain.ErrInvalidQuantity)
	}
	sym := domain.NormalizeSymbol(symbol)

	price, err := l.prices.Price(ctx, sym)
	if err != nil {
		return nil, fmt.Errorf("Buy %s: %w", sym, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cost := price.Mul(decimal.NewFromInt(quantity))
	if cost.GreaterThan(l.cash) {
		return nil, fmt.Errorf("Buy %s: %w", sym, domain.ErrInsufficientFunds)
	}

	l.cash = l.cash.Sub(cost)
	l.holdings[sym] += quantity
	return l.record(domain.TransactionBuy, cost, sym, quantity, &price), nil
}

// Sell disposes of quantity shares of symbol at the source's current
// price. An absent symbol counts as a holding of zero. The holdings
// entry is removed entirely when its quantity reaches zero.
func (l *Ledger) Sell(ctx context.Context, symbol string, quantity int64) (*domain.Transaction, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("Sell: %w", domain.ErrInvalidQuantity)
	}
	sym := domain.NormalizeSymbol(symbol)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.holdings[sym] < quantity {
		return nil, fmt.Errorf("Sell %s: %w", sym, domain.ErrInsufficientHoldings)
	}

	price, err := l.prices.Price(ctx, sym)
	if err != nil {
		return nil, fmt.Errorf("Sell %s: %w", sym, err)
	}

	proceeds := price.Mul(decimal.NewFromInt(quantity))
	l.cash = l.cash.Add(proceeds)
	if l.holdings[sym] == quantity {
		delete(l.holdings, sym)
	} else {
		l.holdings[sym] -= quantity
	}
	return l.record(domain.TransactionSell, proceeds, sym, quantity, &price), nil
}

// record appends a transaction for a mutation that has already been
// applied. Callers must hold l.mu.
func (l *Ledger) record(kind domain.TransactionKind, amount decimal.Decimal, sym domain.Symbol, qty int64, unitPrice *decimal.Decimal) *domain.Transaction {
	tx := domain.Transaction{
		ID:            uuid.New(),
		Kind:          kind,
		Timestamp:     time.Now().UTC(),
		Amount:        amount,
		Symbol:        sym,
		Quantity:      qty,
		UnitPrice:     unitPrice,
		ResultingCash: l.cash,
	}
	l.history = append(l.history, tx)
	return &tx
}

// Cash returns the current cash balance.
func (l *Ledger) Cash() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cash
}

// InitialDeposit returns the amount of the first successful deposit, or
// zero before any deposit.
func (l *Ledger) InitialDeposit() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.initialDeposit
}

// Position returns the currently held quantity for symbol, zero if the
// symbol is not held.
func (l *Ledger) Position(symbol string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holdings[domain.NormalizeSymbol(symbol)]
}

// HoldingsValue sums the market value of all holdings at current prices.
// A held symbol the source cannot price fails the whole computation with
// domain.ErrUnknownSymbol rather than silently valuing it at zero.
func (l *Ledger) HoldingsValue(ctx context.Context) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holdingsValueLocked(ctx)
}

func (l *Ledger) holdingsValueLocked(ctx context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for sym, qty := range l.holdings {
		price, err := l.prices.Price(ctx, sym)
		if err != nil {
			return decimal.Zero, fmt.Errorf("HoldingsValue %s: %w", sym, err)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(qty)))
	}
	return total, nil
}

// PortfolioValue returns cash plus the market value of all holdings.
func (l *Ledger) PortfolioValue(ctx context.Context) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	value, err := l.holdingsValueLocked(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("PortfolioValue: %w", err)
	}
	return l.cash.Add(value), nil
}

// ProfitOrLoss returns the portfolio value minus the initial deposit.
func (l *Ledger) ProfitOrLoss(ctx context.Context) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	value, err := l.holdingsValueLocked(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ProfitOrLoss: %w", err)
	}
	return l.cash.Add(value).Sub(l.initialDeposit), nil
}

// Valuation is a point-in-time view of the ledger's value: cash, the
// initial-deposit baseline, and the market value of holdings, all
// observed under one lock acquisition.
type Valuation struct {
	Cash           decimal.Decimal
	InitialDeposit decimal.Decimal
	HoldingsValue  decimal.Decimal
}

// Valuation reports cash and holdings value from a single point in time.
func (l *Ledger) Valuation(ctx context.Context) (*Valuation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	value, err := l.holdingsValueLocked(ctx)
	if err != nil {
		return nil, fmt.Errorf("Valuation: %w", err)
	}
	return &Valuation{
		Cash:           l.cash,
		InitialDeposit: l.initialDeposit,
		HoldingsValue:  value,
	}, nil
}

// HoldingsReport returns one row per held symbol marked to the current
// price, ordered by symbol ascending.
func (l *Ledger) HoldingsReport(ctx context.Context) ([]Holding, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	report := make([]Holding, 0, len(l.holdings))
	for sym, qty := range l.holdings {
		price, err := l.prices.Price(ctx, sym)
		if err != nil {
			return nil, fmt.Errorf("HoldingsReport %s: %w", sym, err)
		}
		report = append(report, Holding{
			Symbol:       sym,
			Quantity:     qty,
			CurrentPrice: price,
			CurrentValue: price.Mul(decimal.NewFromInt(qty)),
		})
	}
	sort.Slice(report, func(i, j int) bool { return report[i].Symbol < report[j].Symbol })
	return report, nil
}

// TransactionHistory returns a snapshot copy of the transaction log in
// chronological order. Mutating the returned slice does not affect the
// ledger.
func (l *Ledger) TransactionHistory() []domain.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	history := make([]domain.Transaction, len(l.history))
	copy(history, l.history)
	return history
}
