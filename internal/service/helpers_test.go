package service

import (
	"errors"
	"io"
	"time"

	"github.com/nartaaboe/Solva/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeLimitRepo struct {
	limits    []models.Limit
	insertErr error
}

func (f *fakeLimitRepo) InsertLimit(limit *models.Limit) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	limit.ID = int64(len(f.limits) + 1)
	f.limits = append(f.limits, *limit)
	return nil
}

func (f *fakeLimitRepo) FindLatestLimitByCategory(category string) (*models.Limit, error) {
	for i := len(f.limits) - 1; i >= 0; i-- {
		if f.limits[i].ExpenseCategory == category {
			limit := f.limits[i]
			return &limit, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeLimitRepo) UpdateLimit(limit *models.Limit) error {
	for i := range f.limits {
		if f.limits[i].ID == limit.ID {
			f.limits[i] = *limit
			return nil
		}
	}
	return errors.New("limit not stored")
}

type fakeTransactionRepo struct {
	transactions []models.Transaction
	insertErr    error
	rangeErr     error
}

func (f *fakeTransactionRepo) InsertTransaction(t *models.Transaction) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	t.ID = int64(len(f.transactions) + 1)
	f.transactions = append(f.transactions, *t)
	return nil
}

func (f *fakeTransactionRepo) FindTransactionsByRange(start, end time.Time) ([]models.Transaction, error) {
	if f.rangeErr != nil {
		return nil, f.rangeErr
	}
	var out []models.Transaction
	for _, t := range f.transactions {
		if !t.DateTime.Before(start) && t.DateTime.Before(end) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) FindTransactionsByExceeded(exceeded bool) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, t := range f.transactions {
		if t.LimitExceeded == exceeded {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) FindTransactionsByExceededAndCategory(exceeded bool, category string) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, t := range f.transactions {
		if t.LimitExceeded == exceeded && t.ExpenseCategory == category {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) FindTransactionsPage(offset, limit int) ([]models.Transaction, error) {
	if offset >= len(f.transactions) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.transactions) {
		end = len(f.transactions)
	}
	return f.transactions[offset:end], nil
}

type fakeRateRepo struct {
	rates     map[string][]models.ExchangeRate
	insertErr error
}

func newFakeRateRepo() *fakeRateRepo {
	return &fakeRateRepo{rates: make(map[string][]models.ExchangeRate)}
}

func (f *fakeRateRepo) InsertExchangeRate(rate *models.ExchangeRate) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	rate.ID = int64(len(f.rates[rate.Symbol]) + 1)
	f.rates[rate.Symbol] = append(f.rates[rate.Symbol], *rate)
	return nil
}

func (f *fakeRateRepo) FindLatestRateBySymbol(symbol string) (*models.ExchangeRate, error) {
	observed := f.rates[symbol]
	if len(observed) == 0 {
		return nil, models.ErrRateNotFound
	}
	rate := observed[len(observed)-1]
	return &rate, nil
}

type fakeRateSource struct {
	rates map[string]models.ExchangeRate
	err   error
}

func (f *fakeRateSource) FetchLatestRates(symbols []string) (map[string]models.ExchangeRate, error) {
	return f.rates, f.err
}

type fakeAlertSender struct {
	sent []int64
	err  error
}

func (f *fakeAlertSender) SendLimitAlert(t *models.Transaction, limit *models.Limit) error {
	f.sent = append(f.sent, t.ID)
	return f.err
}
