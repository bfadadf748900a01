package domain

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInvalidQuantity      = errors.New("quantity must be greater than zero")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	ErrUnknownSymbol        = errors.New("unknown symbol")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidCurrency      = errors.New("invalid currency")
	ErrInvalidRequest       = errors.New("invalid request")
)
