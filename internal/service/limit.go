package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/nartaaboe/Solva/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// LimitRepository is the persistence surface the limit service needs.
type LimitRepository interface {
	InsertLimit(limit *models.Limit) error
	FindLatestLimitByCategory(category string) (*models.Limit, error)
	UpdateLimit(limit *models.Limit) error
}

// LimitService manages per-category spending limits. A category can hold at
// most one limit whose expiration lies in the future; that rule is enforced
// here at creation time, not by a storage constraint.
type LimitService struct {
	repo LimitRepository
	log  *logrus.Logger
}

// NewLimitService initializes a new limit service
func NewLimitService(repo LimitRepository, log *logrus.Logger) *LimitService {
	return &LimitService{repo: repo, log: log}
}

// SetNewLimit creates a limit for the category with a window of one month
// starting now. It fails if the category still has a live limit.
func (s *LimitService) SetNewLimit(category string, sum decimal.Decimal, currency string) (*models.Limit, error) {
	if !sum.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: limit sum must be positive", models.ErrInvalidArgument)
	}
	if category == "" {
		return nil, fmt.Errorf("%w: expense category is required", models.ErrInvalidArgument)
	}

	latest, err := s.repo.FindLatestLimitByCategory(category)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	now := time.Now()
	if latest != nil && latest.Active(now) {
		return nil, fmt.Errorf("%w for category %q", models.ErrConflictingLimit, category)
	}

	limit := &models.Limit{
		LimitSum:           sum,
		LimitDateTime:      now,
		ExpirationDateTime: now.AddDate(0, 1, 0),
		ExpenseCategory:    category,
		Currency:           currency,
	}
	if err := s.repo.InsertLimit(limit); err != nil {
		return nil, err
	}

	s.log.Infof("New limit set for category %q: %s %s", category, limit.LimitSum, limit.Currency)
	return limit, nil
}

// GetCurrentLimit returns the active limit for the category. An expired
// limit is indistinguishable from no limit at all: both report not found,
// even though the expired row is kept for audit.
func (s *LimitService) GetCurrentLimit(category string) (*models.Limit, error) {
	limit, err := s.repo.FindLatestLimitByCategory(category)
	if err != nil {
		return nil, err
	}
	if !limit.Active(time.Now()) {
		return nil, fmt.Errorf("%w: limit for category %q has expired", models.ErrNotFound, category)
	}
	return limit, nil
}

// RemoveLimit deactivates the category's current limit by moving its
// expiration to now. The row is never deleted. This is the only mutation a
// limit sees after creation.
func (s *LimitService) RemoveLimit(category string) (*models.Limit, error) {
	limit, err := s.GetCurrentLimit(category)
	if err != nil {
		return nil, err
	}

	limit.ExpirationDateTime = time.Now()
	if err := s.repo.UpdateLimit(limit); err != nil {
		return nil, err
	}

	s.log.Infof("Limit removed for category %q", category)
	return limit, nil
}
