package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Limit caps the monthly spend for one expense category, expressed in the
// reference currency. A category has at most one limit whose expiration lies
// in the future; removal is soft and just moves the expiration to now.
type Limit struct {
	ID                 int64           `json:"id"`
	LimitSum           decimal.Decimal `json:"limit_sum"`
	LimitDateTime      time.Time       `json:"limit_datetime"`
	ExpirationDateTime time.Time       `json:"expiration_datetime"`
	ExpenseCategory    string          `json:"expense_category"`
	Currency           string          `json:"limit_currency_shortname"`
}

// Active reports whether the limit has not yet expired at the given moment.
func (l *Limit) Active(now time.Time) bool {
	return l.ExpirationDateTime.After(now)
}
