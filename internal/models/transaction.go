package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a transfer between two accounts. It is an
// append-only fact: once persisted nothing is ever mutated, including the
// LimitExceeded flag, which is computed exactly once at creation time.
type Transaction struct {
	ID              int64           `json:"id"`
	AccountFrom     string          `json:"account_from"`
	AccountTo       string          `json:"account_to"`
	Currency        string          `json:"currency_shortname"`
	Sum             decimal.Decimal `json:"sum"`
	SumInReference  decimal.Decimal `json:"sum_in_reference"`
	ExpenseCategory string          `json:"expense_category"`
	DateTime        time.Time       `json:"transaction_datetime"`
	LimitExceeded   bool            `json:"limit_exceeded"`
}
