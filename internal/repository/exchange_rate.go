package repository

import (
	"database/sql"
	"fmt"

	"github.com/nartaaboe/Solva/internal/models"
)

// InsertExchangeRate appends a new rate observation for a symbol.
func (r *Repository) InsertExchangeRate(rate *models.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (symbol, rate, timestamp, datetime)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.db.QueryRow(query, rate.Symbol, rate.Rate, rate.Timestamp, rate.DateTime).
		Scan(&rate.ID)
	if err != nil {
		return fmt.Errorf("failed to insert exchange rate: %w", err)
	}
	return nil
}

// FindLatestRateBySymbol retrieves the most recently observed rate for a
// currency pair symbol such as "KZT/USD".
func (r *Repository) FindLatestRateBySymbol(symbol string) (*models.ExchangeRate, error) {
	rate := &models.ExchangeRate{}
	query := `
		SELECT id, symbol, rate, timestamp, datetime
		FROM exchange_rates
		WHERE symbol = $1
		ORDER BY id DESC
		LIMIT 1`
	err := r.db.QueryRow(query, symbol).
		Scan(&rate.ID, &rate.Symbol, &rate.Rate, &rate.Timestamp, &rate.DateTime)
	if err == sql.ErrNoRows {
		return nil, models.ErrRateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find exchange rate: %w", err)
	}
	return rate, nil
}
