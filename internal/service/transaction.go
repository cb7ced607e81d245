package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nartaaboe/Solva/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// TransactionRepository is the persistence surface the transaction service needs.
type TransactionRepository interface {
	InsertTransaction(t *models.Transaction) error
	FindTransactionsByRange(start, end time.Time) ([]models.Transaction, error)
	FindTransactionsByExceeded(exceeded bool) ([]models.Transaction, error)
	FindTransactionsByExceededAndCategory(exceeded bool, category string) ([]models.Transaction, error)
	FindTransactionsPage(offset, limit int) ([]models.Transaction, error)
}

// LimitProvider yields the active limit for a category.
type LimitProvider interface {
	GetCurrentLimit(category string) (*models.Limit, error)
}

// CurrencyConverter converts an amount into the reference currency.
type CurrencyConverter interface {
	ConvertToReference(currency string, amount decimal.Decimal) (decimal.Decimal, error)
}

// AlertSender notifies someone that a transaction went over its limit.
type AlertSender interface {
	SendLimitAlert(t *models.Transaction, limit *models.Limit) error
}

// TransactionService creates transactions and answers queries about them.
// Creation runs validation, currency conversion, the limit check and the
// insert as one sequence, serialized per category so two concurrent
// transactions cannot both read the same pre-insert window sum and sneak
// under the cap together.
type TransactionService struct {
	repo      TransactionRepository
	limits    LimitProvider
	converter CurrencyConverter
	alerts    AlertSender
	evaluator *limitEvaluator
	log       *logrus.Logger

	mu       sync.Mutex
	catLocks map[string]*sync.Mutex
}

// NewTransactionService initializes a new transaction service. alerts may be
// nil when no notification channel is configured.
func NewTransactionService(repo TransactionRepository, limits LimitProvider,
	converter CurrencyConverter, alerts AlertSender, log *logrus.Logger) *TransactionService {
	return &TransactionService{
		repo:      repo,
		limits:    limits,
		converter: converter,
		alerts:    alerts,
		evaluator: &limitEvaluator{transactions: repo},
		log:       log,
		catLocks:  make(map[string]*sync.Mutex),
	}
}

// CreateTransaction validates the request, converts the sum into the
// reference currency, checks the category's limit and persists the result.
// The limit-exceeded flag is computed here once and never revisited.
func (s *TransactionService) CreateTransaction(accountFrom, accountTo, currency string,
	sum decimal.Decimal, category string) (*models.Transaction, error) {
	if !sum.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: transaction sum must be positive", models.ErrInvalidArgument)
	}
	if accountFrom == "" || accountTo == "" {
		return nil, fmt.Errorf("%w: both accounts are required", models.ErrInvalidArgument)
	}
	if accountFrom == accountTo {
		return nil, fmt.Errorf("%w: cannot transfer to the same account", models.ErrInvalidArgument)
	}
	if category == "" {
		return nil, fmt.Errorf("%w: expense category is required", models.ErrInvalidArgument)
	}

	sumInReference, err := s.converter.ConvertToReference(currency, sum)
	if err != nil {
		return nil, err
	}

	t := &models.Transaction{
		AccountFrom:     accountFrom,
		AccountTo:       accountTo,
		Currency:        currency,
		Sum:             sum,
		SumInReference:  sumInReference,
		ExpenseCategory: category,
	}

	// Hold the category lock across evaluate+insert so the window sum a
	// concurrent creator reads always includes this transaction.
	lock := s.categoryLock(category)
	lock.Lock()
	defer lock.Unlock()

	limit, err := s.limits.GetCurrentLimit(category)
	switch {
	case errors.Is(err, models.ErrNotFound):
		t.LimitExceeded = false
	case err != nil:
		return nil, err
	default:
		exceeded, err := s.evaluator.exceeds(limit, t)
		if err != nil {
			return nil, err
		}
		t.LimitExceeded = exceeded
	}

	t.DateTime = time.Now()
	if err := s.repo.InsertTransaction(t); err != nil {
		return nil, err
	}

	if t.LimitExceeded {
		s.log.Warnf("Limit exceeded for category %q by transaction %d", category, t.ID)
		s.notify(t, limit)
	}
	return t, nil
}

// GetExceeding returns the transactions flagged as over-limit, optionally
// filtered by category. An empty category means all categories.
func (s *TransactionService) GetExceeding(category string) ([]models.Transaction, error) {
	if category == "" {
		return s.repo.FindTransactionsByExceeded(true)
	}
	return s.repo.FindTransactionsByExceededAndCategory(true, category)
}

// GetPage returns one page of transactions in creation order.
func (s *TransactionService) GetPage(page, size int) ([]models.Transaction, error) {
	if page < 0 || size <= 0 {
		return nil, fmt.Errorf("%w: page must be >= 0 and size > 0", models.ErrInvalidArgument)
	}
	return s.repo.FindTransactionsPage(page*size, size)
}

func (s *TransactionService) notify(t *models.Transaction, limit *models.Limit) {
	if s.alerts == nil {
		return
	}
	if err := s.alerts.SendLimitAlert(t, limit); err != nil {
		s.log.Errorf("Failed to send limit alert for transaction %d: %v", t.ID, err)
	}
}

func (s *TransactionService) categoryLock(category string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.catLocks[category]
	if !ok {
		lock = &sync.Mutex{}
		s.catLocks[category] = lock
	}
	return lock
}
