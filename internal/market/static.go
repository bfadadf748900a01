package market

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/tradesim/internal/domain"
)

// StaticSource serves prices from a fixed in-process quote table. It is
// the price source used when no market-data URL is configured, and the
// default collaborator in tests.
type StaticSource struct {
	quotes map[domain.Symbol]decimal.Decimal
}

func NewStaticSource() *StaticSource {
	return &StaticSource{quotes: map[domain.Symbol]decimal.Decimal{
		"AAPL":  decimal.NewFromInt(150),
		"TSLA":  decimal.NewFromInt(250),
		"GOOGL": decimal.NewFromInt(2700),
	}}
}

// NewStaticSourceWith builds a source over an explicit quote table.
func NewStaticSourceWith(quotes map[domain.Symbol]decimal.Decimal) *StaticSource {
	return &StaticSource{quotes: quotes}
}

func (s *StaticSource) Price(_ context.Context, symbol domain.Symbol) (decimal.Decimal, error) {
	price, ok := s.quotes[symbol]
	if !ok {
		return decimal.Zero, fmt.Errorf("Price %s: %w", symbol, domain.ErrUnknownSymbol)
	}
	return price, nil
}

func (s *StaticSource) AllPrices(_ context.Context) (map[domain.Symbol]decimal.Decimal, error) {
	prices := make(map[domain.Symbol]decimal.Decimal, len(s.quotes))
	for sym, price := range s.quotes {
		prices[sym] = price
	}
	return prices, nil
}

// Healthy always succeeds: there is nothing remote to reach.
func (s *StaticSource) Healthy(context.Context) error { return nil }

// BondRate is one row of the bond interest-rates display screen.
type BondRate struct {
	Term string          `json:"term"`
	Rate decimal.Decimal `json:"rate"`
}

// BondRates returns the displayed bond terms in ascending maturity order.
func BondRates() []BondRate {
	return []BondRate{
		{Term: "1-month", Rate: decimal.RequireFromString("0.05")},
		{Term: "3-month", Rate: decimal.RequireFromString("0.06")},
		{Term: "6-month", Rate: decimal.RequireFromString("0.07")},
		{Term: "1-year", Rate: decimal.RequireFromString("0.08")},
		{Term: "2-year", Rate: decimal.RequireFromString("0.09")},
		{Term: "3-year", Rate: decimal.RequireFromString("0.10")},
		{Term: "5-year", Rate: decimal.RequireFromString("0.12")},
		{Term: "10-year", Rate: decimal.RequireFromString("0.15")},
		{Term: "20-year", Rate: decimal.RequireFromString("0.18")},
		{Term: "30-year", Rate: decimal.RequireFromString("0.20")},
	}
}

// NewsItem is one entry of the news display screen.
type NewsItem struct {
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Timestamp time.Time `json:"timestamp"`
}

// LatestNews returns the mock headlines shown on the news tab.
func LatestNews() []NewsItem {
	now := time.Now().UTC()
	return []NewsItem{
		{
			Title:     "Market Hits All-Time High",
			Summary:   "Major indices reach record levels amid strong earnings.",
			Timestamp: now,
		},
		{
			Title:     "Tech Stocks Rally",
			Summary:   "Technology sector leads gains with AAPL and TSLA outperforming.",
			Timestamp: now,
		},
	}
}
