package repository

import (
	"database/sql"
	"fmt"

	"github.com/nartaaboe/Solva/internal/models"
)

// InsertLimit creates a new limit in the database
func (r *Repository) InsertLimit(limit *models.Limit) error {
	query := `
		INSERT INTO limits (limit_sum, limit_datetime, expiration_datetime, expense_category, limit_currency_shortname)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.db.QueryRow(query, limit.LimitSum, limit.LimitDateTime, limit.ExpirationDateTime,
		limit.ExpenseCategory, limit.Currency).
		Scan(&limit.ID)
	if err != nil {
		return fmt.Errorf("failed to insert limit: %w", err)
	}
	return nil
}

// FindLatestLimitByCategory retrieves the most recently created limit for a
// category, regardless of whether it has already expired.
func (r *Repository) FindLatestLimitByCategory(category string) (*models.Limit, error) {
	limit := &models.Limit{}
	query := `
		SELECT id, limit_sum, limit_datetime, expiration_datetime, expense_category, limit_currency_shortname
		FROM limits
		WHERE expense_category = $1
		ORDER BY id DESC
		LIMIT 1`
	err := r.db.QueryRow(query, category).
		Scan(&limit.ID, &limit.LimitSum, &limit.LimitDateTime, &limit.ExpirationDateTime,
			&limit.ExpenseCategory, &limit.Currency)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find limit: %w", err)
	}
	return limit, nil
}

// UpdateLimit persists a changed expiration for an existing limit.
func (r *Repository) UpdateLimit(limit *models.Limit) error {
	query := `
		UPDATE limits
		SET expiration_datetime = $1
		WHERE id = $2`
	if _, err := r.db.Exec(query, limit.ExpirationDateTime, limit.ID); err != nil {
		return fmt.Errorf("failed to update limit: %w", err)
	}
	return nil
}
