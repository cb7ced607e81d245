package service

import (
	"errors"
	"testing"
	"time"

	"github.com/nartaaboe/Solva/internal/models"
)

func TestConvertToReferenceIdentity(t *testing.T) {
	// No rate is stored, so any lookup would fail: identity conversion
	// must not touch the repository.
	svc := NewExchangeRateService(newFakeRateRepo(), nil, testLogger(), "USD", nil)

	got, err := svc.ConvertToReference("USD", dec("123.45"))
	if err != nil {
		t.Fatalf("ConvertToReference failed: %v", err)
	}
	if !got.Equal(dec("123.45")) {
		t.Errorf("got %s, want 123.45 unchanged", got)
	}
}

func TestConvertToReference(t *testing.T) {
	repo := newFakeRateRepo()
	if err := repo.InsertExchangeRate(&models.ExchangeRate{Symbol: "KZT/USD", Rate: dec("0.002")}); err != nil {
		t.Fatal(err)
	}
	svc := NewExchangeRateService(repo, nil, testLogger(), "USD", nil)

	got, err := svc.ConvertToReference("KZT", dec("1000"))
	if err != nil {
		t.Fatalf("ConvertToReference failed: %v", err)
	}
	if !got.Equal(dec("2")) {
		t.Errorf("got %s, want 2", got)
	}
}

func TestConvertToReferenceUsesLatestRate(t *testing.T) {
	repo := newFakeRateRepo()
	for _, rate := range []string{"0.002", "0.0021"} {
		if err := repo.InsertExchangeRate(&models.ExchangeRate{Symbol: "KZT/USD", Rate: dec(rate)}); err != nil {
			t.Fatal(err)
		}
	}
	svc := NewExchangeRateService(repo, nil, testLogger(), "USD", nil)

	got, err := svc.ConvertToReference("KZT", dec("1000"))
	if err != nil {
		t.Fatalf("ConvertToReference failed: %v", err)
	}
	if !got.Equal(dec("2.1")) {
		t.Errorf("got %s, want 2.1 from the latest observation", got)
	}
}

func TestConvertToReferenceRateNotFound(t *testing.T) {
	svc := NewExchangeRateService(newFakeRateRepo(), nil, testLogger(), "USD", nil)

	if _, err := svc.ConvertToReference("EUR", dec("10")); !errors.Is(err, models.ErrRateNotFound) {
		t.Errorf("err = %v, want ErrRateNotFound", err)
	}
}

func TestUpdateRates(t *testing.T) {
	repo := newFakeRateRepo()
	now := time.Now().UTC()
	source := &fakeRateSource{rates: map[string]models.ExchangeRate{
		"KZT/USD": {Symbol: "KZT/USD", Rate: dec("0.002"), Timestamp: now.Unix(), DateTime: now},
		"RUB/USD": {Symbol: "RUB/USD", Rate: dec("0.011"), Timestamp: now.Unix(), DateTime: now},
	}}
	svc := NewExchangeRateService(repo, source, testLogger(), "USD", []string{"KZT/USD", "RUB/USD", "KZT/RUB"})

	// The source answered for two of the three configured pairs; both
	// observations land, the missing pair is simply not stored.
	svc.UpdateRates()

	for _, symbol := range []string{"KZT/USD", "RUB/USD"} {
		if _, err := repo.FindLatestRateBySymbol(symbol); err != nil {
			t.Errorf("rate for %s not stored: %v", symbol, err)
		}
	}
	if _, err := repo.FindLatestRateBySymbol("KZT/RUB"); !errors.Is(err, models.ErrRateNotFound) {
		t.Errorf("unexpected rate stored for pair missing from the response")
	}
}

func TestUpdateRatesSourceFailure(t *testing.T) {
	repo := newFakeRateRepo()
	source := &fakeRateSource{err: errors.New("feed down")}
	svc := NewExchangeRateService(repo, source, testLogger(), "USD", []string{"KZT/USD"})

	// A dead feed is logged and skipped, never propagated.
	svc.UpdateRates()

	if len(repo.rates) != 0 {
		t.Error("no rates should be stored when the source fails")
	}
}

func TestGetBySymbol(t *testing.T) {
	repo := newFakeRateRepo()
	if err := repo.InsertExchangeRate(&models.ExchangeRate{Symbol: "KZT/USD", Rate: dec("0.002")}); err != nil {
		t.Fatal(err)
	}
	svc := NewExchangeRateService(repo, nil, testLogger(), "USD", nil)

	rate, err := svc.GetBySymbol("KZT/USD")
	if err != nil {
		t.Fatalf("GetBySymbol failed: %v", err)
	}
	if rate.Symbol != "KZT/USD" {
		t.Errorf("symbol = %q", rate.Symbol)
	}

	if _, err := svc.GetBySymbol("EUR/USD"); !errors.Is(err, models.ErrRateNotFound) {
		t.Errorf("err = %v, want ErrRateNotFound", err)
	}
}
