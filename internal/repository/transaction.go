package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nartaaboe/Solva/internal/models"
)

const transactionColumns = `id, account_from, account_to, currency_shortname, sum, sum_in_reference,
		expense_category, transaction_datetime, limit_exceeded`

// InsertTransaction creates a new transaction in the database
func (r *Repository) InsertTransaction(t *models.Transaction) error {
	query := `
		INSERT INTO transactions (account_from, account_to, currency_shortname, sum, sum_in_reference,
			expense_category, transaction_datetime, limit_exceeded)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.db.QueryRow(query, t.AccountFrom, t.AccountTo, t.Currency, t.Sum, t.SumInReference,
		t.ExpenseCategory, t.DateTime, t.LimitExceeded).
		Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// FindTransactionsByRange retrieves transactions created inside [start, end).
func (r *Repository) FindTransactionsByRange(start, end time.Time) ([]models.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		WHERE transaction_datetime >= $1 AND transaction_datetime < $2
		ORDER BY id`, transactionColumns)
	rows, err := r.db.Query(query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions by range: %w", err)
	}
	return scanTransactions(rows)
}

// FindTransactionsByExceeded retrieves transactions by their limit-exceeded flag.
func (r *Repository) FindTransactionsByExceeded(exceeded bool) ([]models.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		WHERE limit_exceeded = $1
		ORDER BY id`, transactionColumns)
	rows, err := r.db.Query(query, exceeded)
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions by flag: %w", err)
	}
	return scanTransactions(rows)
}

// FindTransactionsByExceededAndCategory retrieves transactions by flag and category.
func (r *Repository) FindTransactionsByExceededAndCategory(exceeded bool, category string) ([]models.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		WHERE limit_exceeded = $1 AND expense_category = $2
		ORDER BY id`, transactionColumns)
	rows, err := r.db.Query(query, exceeded, category)
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions by flag and category: %w", err)
	}
	return scanTransactions(rows)
}

// FindTransactionsPage retrieves one page of transactions in creation order.
func (r *Repository) FindTransactionsPage(offset, limit int) ([]models.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		ORDER BY id
		OFFSET $1 LIMIT $2`, transactionColumns)
	rows, err := r.db.Query(query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions page: %w", err)
	}
	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.AccountFrom, &t.AccountTo, &t.Currency, &t.Sum,
			&t.SumInReference, &t.ExpenseCategory, &t.DateTime, &t.LimitExceeded); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return out, nil
}
