package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TransactionDeposit    TransactionKind = "deposit"
	TransactionWithdrawal TransactionKind = "withdrawal"
	TransactionBuy        TransactionKind = "buy"
	TransactionSell       TransactionKind = "sell"
)

// Transaction is an immutable record of one completed ledger mutation.
// Symbol, Quantity and UnitPrice are set only for buy/sell kinds.
// ResultingCash is the cash balance immediately after the mutation, kept
// for audit.
type Transaction struct {
	ID            uuid.UUID        `json:"id"`
	Kind          TransactionKind  `json:"kind"`
	Timestamp     time.Time        `json:"timestamp"`
	Amount        decimal.Decimal  `json:"amount"`
	Symbol        Symbol           `json:"symbol,omitempty"`
	Quantity      int64            `json:"quantity,omitempty"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	ResultingCash decimal.Decimal  `json:"resulting_cash"`
}
