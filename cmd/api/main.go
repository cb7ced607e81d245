package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/nartaaboe/Solva/internal/config"
	"github.com/nartaaboe/Solva/internal/handler"
	"github.com/nartaaboe/Solva/internal/integrations/cbr"
	"github.com/nartaaboe/Solva/internal/integrations/twelvedata"
	"github.com/nartaaboe/Solva/internal/repository"
	"github.com/nartaaboe/Solva/internal/service"
	"github.com/nartaaboe/Solva/internal/utils/email"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	if err := repository.RunMigrations(db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)

	var source service.RateSource
	switch cfg.RateSource {
	case config.RateSourceCBR:
		source = cbr.NewClient(cfg.CBRURL, logger)
	default:
		source = twelvedata.NewClient(cfg.TwelveDataURL, cfg.TwelveDataAPIKey, logger)
	}

	rateSvc := service.NewExchangeRateService(repo, source, logger, cfg.ReferenceCurrency, cfg.RateSymbols)
	limitSvc := service.NewLimitService(repo, logger)

	var alerts service.AlertSender
	if cfg.AlertsEnabled() {
		alerts = email.NewSender(cfg, logger)
	}
	transactionSvc := service.NewTransactionService(repo, limitSvc, rateSvc, alerts, logger)
	h := handler.NewHandler(limitSvc, transactionSvc, rateSvc, logger)

	// Schedule the daily rate refresh
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.RateRefreshCron, rateSvc.UpdateRates); err != nil {
		logger.Fatalf("Failed to schedule rate refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	r.HandleFunc("/api/limit", h.SetNewLimit).Methods("POST")
	r.HandleFunc("/api/limit", h.GetCurrentLimit).Methods("GET")
	r.HandleFunc("/api/limit", h.RemoveLimit).Methods("DELETE")
	r.HandleFunc("/api/transaction", h.CreateTransaction).Methods("POST")
	r.HandleFunc("/api/transaction/exceeding-limit", h.GetExceedingTransactions).Methods("GET")
	r.HandleFunc("/api/transaction", h.GetTransactions).Methods("GET")
	r.HandleFunc("/api/exchange-rate", h.GetExchangeRate).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
