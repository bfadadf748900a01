package fx

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/tradesim/internal/domain"
)

// RateService serves the currency-rates display screen. Rates are quoted
// against a USD base; cross rates are derived through USD. The ledger
// accounts in a single currency, so these rates are display-only.
type RateService struct {
	base  string
	rates map[string]decimal.Decimal
}

// Rate is one row of the currency screen.
type Rate struct {
	Currency string          `json:"currency"`
	Rate     decimal.Decimal `json:"rate"`
}

func NewRateService() *RateService {
	return &RateService{
		base: "USD",
		rates: map[string]decimal.Decimal{
			"USD": decimal.NewFromInt(1),
			"EUR": decimal.RequireFromString("0.85"),
			"GBP": decimal.RequireFromString("0.73"),
			"JPY": decimal.RequireFromString("110"),
			"CAD": decimal.RequireFromString("1.25"),
			"AUD": decimal.RequireFromString("1.35"),
			"CHF": decimal.RequireFromString("0.92"),
			"CNY": decimal.RequireFromString("6.45"),
		},
	}
}

// Rates returns all quoted currencies against the USD base, ordered by
// currency code.
func (s *RateService) Rates(_ context.Context) []Rate {
	out := make([]Rate, 0, len(s.rates))
	for code, rate := range s.rates {
		out = append(out, Rate{Currency: code, Rate: rate})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out
}

// CrossRate returns how many units of `to` one unit of `from` buys,
// derived through the USD base.
func (s *RateService) CrossRate(_ context.Context, from, to string) (decimal.Decimal, error) {
	fromRate, ok := s.rates[from]
	if !ok {
		return decimal.Zero, fmt.Errorf("CrossRate: %s: %w", from, domain.ErrInvalidCurrency)
	}
	toRate, ok := s.rates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("CrossRate: %s: %w", to, domain.ErrInvalidCurrency)
	}
	return toRate.DivRound(fromRate, 6), nil
}
