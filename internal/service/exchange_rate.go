package service

import (
	"github.com/nartaaboe/Solva/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ExchangeRateRepository is the persistence surface the rate service needs.
type ExchangeRateRepository interface {
	InsertExchangeRate(rate *models.ExchangeRate) error
	FindLatestRateBySymbol(symbol string) (*models.ExchangeRate, error)
}

// RateSource is an external feed of currency-pair quotes. Pairs missing from
// a response are simply absent from the returned map.
type RateSource interface {
	FetchLatestRates(symbols []string) (map[string]models.ExchangeRate, error)
}

// ExchangeRateService converts amounts into the reference currency and keeps
// the stored rates fresh from an external source.
type ExchangeRateService struct {
	repo      ExchangeRateRepository
	source    RateSource
	log       *logrus.Logger
	reference string
	symbols   []string
}

// NewExchangeRateService initializes a new exchange rate service
func NewExchangeRateService(repo ExchangeRateRepository, source RateSource, log *logrus.Logger,
	reference string, symbols []string) *ExchangeRateService {
	return &ExchangeRateService{
		repo:      repo,
		source:    source,
		log:       log,
		reference: reference,
		symbols:   symbols,
	}
}

// GetBySymbol returns the latest observed rate for a pair symbol.
func (s *ExchangeRateService) GetBySymbol(symbol string) (*models.ExchangeRate, error) {
	return s.repo.FindLatestRateBySymbol(symbol)
}

// ConvertToReference converts an amount from the given currency into the
// reference currency using the latest stored rate. Amounts already in the
// reference currency pass through without a lookup. Staleness is tolerated:
// conversion never triggers a refresh.
func (s *ExchangeRateService) ConvertToReference(currency string, amount decimal.Decimal) (decimal.Decimal, error) {
	if currency == s.reference {
		return amount, nil
	}

	rate, err := s.repo.FindLatestRateBySymbol(currency + "/" + s.reference)
	if err != nil {
		return decimal.Decimal{}, err
	}

	converted := amount.Mul(rate.Rate)
	s.log.Debugf("Converted %s %s to %s %s at rate %s", amount, currency, converted, s.reference, rate.Rate)
	return converted, nil
}

// UpdateRates fetches the configured pairs from the external source and
// appends one observation per pair that arrived. It is meant to run
// unattended on a schedule, so failures are logged and swallowed: a partial
// response still stores the pairs that did come back, and a dead feed only
// costs a log line until the next tick.
func (s *ExchangeRateService) UpdateRates() {
	s.log.Info("Updating exchange rates...")

	rates, err := s.source.FetchLatestRates(s.symbols)
	if err != nil {
		s.log.Errorf("Failed to fetch exchange rates: %v", err)
		return
	}
	if len(rates) == 0 {
		s.log.Error("Exchange rate source returned no rates")
		return
	}

	stored := 0
	for symbol, rate := range rates {
		if err := s.repo.InsertExchangeRate(&rate); err != nil {
			s.log.Errorf("Failed to store rate for %s: %v", symbol, err)
			continue
		}
		stored++
	}
	s.log.Infof("Exchange rates updated: %d of %d pairs stored", stored, len(s.symbols))
}
