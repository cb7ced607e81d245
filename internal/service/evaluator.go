package service

import (
	"time"

	"github.com/nartaaboe/Solva/internal/models"
)

// limitEvaluator decides whether a candidate transaction pushes its
// category's accumulated spend over the limit.
type limitEvaluator struct {
	transactions TransactionRepository
}

// exceeds reports whether the candidate, on top of everything already spent
// in the limit's window, strictly exceeds the limit sum. The window is
// anchored at the limit's creation time, not at calendar-month boundaries,
// so limits created a day apart aggregate over different ranges.
//
// A limit older than one rolling month is treated as inert even if its
// expiration bookkeeping says otherwise; a transaction never fails just
// because no usable limit is configured.
//
// The whole window is re-summed on every call. That is O(window size) per
// transaction, traded deliberately for having no running counter to keep
// consistent.
func (e *limitEvaluator) exceeds(limit *models.Limit, candidate *models.Transaction) (bool, error) {
	if !limit.LimitDateTime.After(time.Now().AddDate(0, -1, 0)) {
		return false, nil
	}

	windowStart := limit.LimitDateTime
	windowEnd := limit.LimitDateTime.AddDate(0, 1, 0)
	persisted, err := e.transactions.FindTransactionsByRange(windowStart, windowEnd)
	if err != nil {
		return false, err
	}

	// The candidate is not yet persisted, so it seeds the total.
	total := candidate.SumInReference
	for _, t := range persisted {
		if t.ExpenseCategory == limit.ExpenseCategory {
			total = total.Add(t.SumInReference)
		}
	}

	// Equality does not count as exceeding.
	return total.GreaterThan(limit.LimitSum), nil
}
