package service

import (
	"errors"
	"testing"
	"time"

	"github.com/nartaaboe/Solva/internal/models"
	"github.com/shopspring/decimal"
)

func TestSetNewLimit(t *testing.T) {
	repo := &fakeLimitRepo{}
	svc := NewLimitService(repo, testLogger())

	limit, err := svc.SetNewLimit("products", dec("500"), "USD")
	if err != nil {
		t.Fatalf("SetNewLimit failed: %v", err)
	}
	if limit.ID == 0 {
		t.Error("expected a persisted id")
	}
	if limit.ExpenseCategory != "products" || limit.Currency != "USD" {
		t.Errorf("unexpected limit fields: %+v", limit)
	}
	if !limit.LimitSum.Equal(dec("500")) {
		t.Errorf("limit sum = %s, want 500", limit.LimitSum)
	}
	if want := limit.LimitDateTime.AddDate(0, 1, 0); !limit.ExpirationDateTime.Equal(want) {
		t.Errorf("expiration = %s, want one month after creation", limit.ExpirationDateTime)
	}
	if !limit.Active(time.Now()) {
		t.Error("freshly created limit should be active")
	}
}

func TestSetNewLimitValidation(t *testing.T) {
	tests := []struct {
		name     string
		category string
		sum      decimal.Decimal
	}{
		{"zero sum", "products", decimal.Zero},
		{"negative sum", "products", dec("-10")},
		{"empty category", "", dec("100")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLimitService(&fakeLimitRepo{}, testLogger())
			if _, err := svc.SetNewLimit(tt.category, tt.sum, "USD"); !errors.Is(err, models.ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestSetNewLimitConflict(t *testing.T) {
	repo := &fakeLimitRepo{}
	svc := NewLimitService(repo, testLogger())

	if _, err := svc.SetNewLimit("products", dec("500"), "USD"); err != nil {
		t.Fatalf("first SetNewLimit failed: %v", err)
	}
	if _, err := svc.SetNewLimit("products", dec("700"), "USD"); !errors.Is(err, models.ErrConflictingLimit) {
		t.Errorf("err = %v, want ErrConflictingLimit", err)
	}

	// A different category is unaffected.
	if _, err := svc.SetNewLimit("travel", dec("700"), "USD"); err != nil {
		t.Errorf("SetNewLimit for other category failed: %v", err)
	}
}

func TestSetNewLimitAfterExpired(t *testing.T) {
	repo := &fakeLimitRepo{limits: []models.Limit{{
		ID:                 1,
		LimitSum:           dec("500"),
		LimitDateTime:      time.Now().AddDate(0, -2, 0),
		ExpirationDateTime: time.Now().AddDate(0, -1, 0),
		ExpenseCategory:    "products",
		Currency:           "USD",
	}}}
	svc := NewLimitService(repo, testLogger())

	if _, err := svc.SetNewLimit("products", dec("700"), "USD"); err != nil {
		t.Errorf("SetNewLimit over expired limit failed: %v", err)
	}
}

func TestGetCurrentLimit(t *testing.T) {
	repo := &fakeLimitRepo{}
	svc := NewLimitService(repo, testLogger())

	if _, err := svc.GetCurrentLimit("products"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for unknown category", err)
	}

	created, err := svc.SetNewLimit("products", dec("500"), "USD")
	if err != nil {
		t.Fatalf("SetNewLimit failed: %v", err)
	}
	got, err := svc.GetCurrentLimit("products")
	if err != nil {
		t.Fatalf("GetCurrentLimit failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got limit %d, want %d", got.ID, created.ID)
	}
}

func TestGetCurrentLimitExpired(t *testing.T) {
	// The expired row stays in storage but is invisible to callers.
	repo := &fakeLimitRepo{limits: []models.Limit{{
		ID:                 1,
		LimitSum:           dec("500"),
		LimitDateTime:      time.Now().AddDate(0, -2, 0),
		ExpirationDateTime: time.Now().AddDate(0, -1, 0),
		ExpenseCategory:    "products",
		Currency:           "USD",
	}}}
	svc := NewLimitService(repo, testLogger())

	if _, err := svc.GetCurrentLimit("products"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for expired limit", err)
	}
	if len(repo.limits) != 1 {
		t.Error("expired limit row should still exist")
	}
}

func TestRemoveLimit(t *testing.T) {
	repo := &fakeLimitRepo{}
	svc := NewLimitService(repo, testLogger())

	if _, err := svc.SetNewLimit("products", dec("500"), "USD"); err != nil {
		t.Fatalf("SetNewLimit failed: %v", err)
	}

	removed, err := svc.RemoveLimit("products")
	if err != nil {
		t.Fatalf("RemoveLimit failed: %v", err)
	}
	if removed.Active(time.Now().Add(time.Second)) {
		t.Error("removed limit should no longer be active")
	}
	if len(repo.limits) != 1 {
		t.Error("removal must not delete the row")
	}

	// Removing again finds only the deactivated limit.
	if _, err := svc.RemoveLimit("products"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("second RemoveLimit err = %v, want ErrNotFound", err)
	}
}
