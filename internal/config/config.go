package config

import (
	"fmt"
	"os"
	"strings"
)

// Rate source names accepted in RATE_SOURCE.
const (
	RateSourceTwelveData = "twelvedata"
	RateSourceCBR        = "cbr"
)

// Config holds application configuration
type Config struct {
	Port              string
	DBConn            string
	LogLevel          string
	ReferenceCurrency string
	RateSource        string
	RateSymbols       []string
	RateRefreshCron   string
	TwelveDataURL     string
	TwelveDataAPIKey  string
	CBRURL            string
	SMTPHost          string
	SMTPPort          string
	SMTPUsername      string
	SMTPPassword      string
	SenderEmail       string
	AlertEmail        string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DBConn:            getEnv("DB_CONN", "host=localhost port=5432 user=test password=test dbname=solva sslmode=disable"),
		LogLevel:          getEnv("LOG_LEVEL", "INFO"),
		ReferenceCurrency: getEnv("REFERENCE_CURRENCY", "USD"),
		RateSource:        getEnv("RATE_SOURCE", RateSourceTwelveData),
		RateSymbols:       splitList(getEnv("RATE_SYMBOLS", "USD/KZT,USD/RUB,RUB/KZT,RUB/USD,KZT/USD,KZT/RUB")),
		RateRefreshCron:   getEnv("RATE_REFRESH_CRON", "0 10 * * *"),
		TwelveDataURL:     getEnv("TWELVE_DATA_URL", "https://api.twelvedata.com"),
		TwelveDataAPIKey:  getEnv("TWELVE_DATA_API_KEY", ""),
		CBRURL:            getEnv("CBR_URL", "https://www.cbr.ru/scripts/XML_daily.asp"),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getEnv("SMTP_PORT", "587"),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		SenderEmail:       getEnv("SENDER_EMAIL", ""),
		AlertEmail:        getEnv("ALERT_EMAIL", ""),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.RateSource != RateSourceTwelveData && cfg.RateSource != RateSourceCBR {
		return nil, fmt.Errorf("RATE_SOURCE must be %q or %q", RateSourceTwelveData, RateSourceCBR)
	}
	if cfg.RateSource == RateSourceTwelveData && cfg.TwelveDataAPIKey == "" {
		return nil, fmt.Errorf("TWELVE_DATA_API_KEY is required when RATE_SOURCE is %q", RateSourceTwelveData)
	}
	if len(cfg.RateSymbols) == 0 {
		return nil, fmt.Errorf("RATE_SYMBOLS must list at least one pair")
	}

	return cfg, nil
}

// AlertsEnabled reports whether the SMTP alert channel is fully configured.
func (c *Config) AlertsEnabled() bool {
	return c.SMTPHost != "" && c.SenderEmail != "" && c.AlertEmail != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
