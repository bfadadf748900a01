package fx

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/tradesim/internal/domain"
)

func TestRates(t *testing.T) {
	svc := NewRateService()

	rates := svc.Rates(context.Background())
	require.Len(t, rates, 8)

	assert.Equal(t, "AUD", rates[0].Currency, "rates are ordered by currency code")
	assert.Equal(t, "USD", rates[7].Currency)

	byCode := make(map[string]decimal.Decimal, len(rates))
	for _, r := range rates {
		byCode[r.Currency] = r.Rate
	}
	assert.True(t, byCode["USD"].Equal(decimal.NewFromInt(1)), "base currency rates at 1")
	assert.True(t, byCode["EUR"].Equal(decimal.RequireFromString("0.85")))
}

func TestCrossRate(t *testing.T) {
	svc := NewRateService()
	ctx := context.Background()

	tests := []struct {
		name    string
		from    string
		to      string
		want    string
		wantErr error
	}{
		{name: "USD to EUR", from: "USD", to: "EUR", want: "0.85"},
		{name: "same currency", from: "GBP", to: "GBP", want: "1"},
		{name: "derived through base", from: "EUR", to: "GBP", want: "0.858824"},
		{name: "unknown source", from: "XYZ", to: "USD", wantErr: domain.ErrInvalidCurrency},
		{name: "unknown target", from: "USD", to: "XYZ", wantErr: domain.ErrInvalidCurrency},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rate, err := svc.CrossRate(ctx, tc.from, tc.to)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, rate.Equal(decimal.RequireFromString(tc.want)),
				"got %s, want %s", rate, tc.want)
		})
	}
}
