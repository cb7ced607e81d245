package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/nartaaboe/Solva/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// LimitService is the limit surface the handlers call.
type LimitService interface {
	SetNewLimit(category string, sum decimal.Decimal, currency string) (*models.Limit, error)
	GetCurrentLimit(category string) (*models.Limit, error)
	RemoveLimit(category string) (*models.Limit, error)
}

// TransactionService is the transaction surface the handlers call.
type TransactionService interface {
	CreateTransaction(accountFrom, accountTo, currency string, sum decimal.Decimal, category string) (*models.Transaction, error)
	GetExceeding(category string) ([]models.Transaction, error)
	GetPage(page, size int) ([]models.Transaction, error)
}

// RateService is the exchange-rate surface the handlers call.
type RateService interface {
	GetBySymbol(symbol string) (*models.ExchangeRate, error)
}

type Handler struct {
	limits       LimitService
	transactions TransactionService
	rates        RateService
	log          *logrus.Logger
}

func NewHandler(limits LimitService, transactions TransactionService, rates RateService, log *logrus.Logger) *Handler {
	return &Handler{limits: limits, transactions: transactions, rates: rates, log: log}
}

type limitRequest struct {
	LimitSum        decimal.Decimal `json:"limit_sum"`
	ExpenseCategory string          `json:"expense_category"`
	Currency        string          `json:"limit_currency_shortname"`
}

type transactionRequest struct {
	AccountFrom     string          `json:"account_from"`
	AccountTo       string          `json:"account_to"`
	Currency        string          `json:"currency_shortname"`
	Sum             decimal.Decimal `json:"sum"`
	ExpenseCategory string          `json:"expense_category"`
}

type errorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Status    int       `json:"status"`
}

// SetNewLimit handles limit creation
func (h *Handler) SetNewLimit(w http.ResponseWriter, r *http.Request) {
	var req limitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	limit, err := h.limits.SetNewLimit(req.ExpenseCategory, req.LimitSum, req.Currency)
	if err != nil {
		h.error(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, limit)
}

// GetCurrentLimit handles active-limit lookup for a category
func (h *Handler) GetCurrentLimit(w http.ResponseWriter, r *http.Request) {
	limit, err := h.limits.GetCurrentLimit(expenseCategory(r))
	if err != nil {
		h.error(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, limit)
}

// RemoveLimit handles limit deactivation
func (h *Handler) RemoveLimit(w http.ResponseWriter, r *http.Request) {
	limit, err := h.limits.RemoveLimit(expenseCategory(r))
	if err != nil {
		h.error(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, limit)
}

// CreateTransaction handles transaction creation
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.transactions.CreateTransaction(req.AccountFrom, req.AccountTo, req.Currency, req.Sum, req.ExpenseCategory)
	if err != nil {
		h.error(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, t)
}

// GetExceedingTransactions handles the over-limit transaction listing,
// optionally filtered by expense_category.
func (h *Handler) GetExceedingTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactions.GetExceeding(r.URL.Query().Get("expense_category"))
	if err != nil {
		h.error(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, transactionList(transactions))
}

// GetTransactions handles the paginated transaction listing.
// Defaults: page=0, size=10.
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 0)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "page must be an integer")
		return
	}
	size, err := queryInt(r, "size", 10)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "size must be an integer")
		return
	}

	transactions, err := h.transactions.GetPage(page, size)
	if err != nil {
		h.error(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, transactionList(transactions))
}

// GetExchangeRate handles latest-rate lookup by pair symbol
func (h *Handler) GetExchangeRate(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		h.writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	rate, err := h.rates.GetBySymbol(symbol)
	if err != nil {
		h.error(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rate)
}

// error maps a service error onto an HTTP status.
func (h *Handler) error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrRateNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrConflictingLimit):
		h.writeError(w, http.StatusConflict, err.Error())
	default:
		h.log.Errorf("Internal error: %v", err)
		h.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, errorResponse{
		Timestamp: time.Now(),
		Message:   message,
		Status:    status,
	})
}

// transactionList keeps empty results as [] instead of null.
func transactionList(transactions []models.Transaction) []models.Transaction {
	if transactions == nil {
		return []models.Transaction{}
	}
	return transactions
}

func expenseCategory(r *http.Request) string {
	category := r.URL.Query().Get("expense_category")
	if category == "" {
		return "products"
	}
	return category
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
