package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one observation of a currency pair, e.g. "KZT/USD".
// Rows only accumulate; the latest observation for a symbol is the one
// with the greatest id.
type ExchangeRate struct {
	ID        int64           `json:"id"`
	Symbol    string          `json:"symbol"`
	Rate      decimal.Decimal `json:"rate"`
	Timestamp int64           `json:"timestamp"`
	DateTime  time.Time       `json:"datetime"`
}
