package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultHTTPAddr         = ":8080"
	defaultDatabaseURL      = "tablebook.db"
	defaultJWTSecret        = "change-me-jwt-secret"
	defaultJWTAccessTTL     = "24h"
	defaultPaymentCurrency  = "ETB"
	defaultJoinPollInterval = "3s"
	defaultJoinPollTimeout  = "2m"
)

// RuntimeConfig carries everything the API process reads from the
// environment. Payment credentials are the shared secret used to verify
// callback signatures from the external collaborator.
type RuntimeConfig struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string

	JWTSecret    string
	JWTAccessTTL time.Duration

	PaymentMerchantID string
	PaymentSecret     string
	PaymentCurrency   string

	JoinPollInterval time.Duration
	JoinPollTimeout  time.Duration
}

func Load() (*RuntimeConfig, error) {
	cfg := &RuntimeConfig{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = getEnv("HTTP_ADDR", defaultHTTPAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	cfg.PaymentMerchantID = strings.TrimSpace(os.Getenv("PAYMENT_MERCHANT_ID"))
	cfg.PaymentSecret = strings.TrimSpace(os.Getenv("PAYMENT_SECRET"))
	cfg.PaymentCurrency = getEnv("PAYMENT_CURRENCY", defaultPaymentCurrency)

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.JoinPollInterval, err = parseDurationEnv("JOIN_POLL_INTERVAL", defaultJoinPollInterval)
	if err != nil {
		return nil, err
	}
	cfg.JoinPollTimeout, err = parseDurationEnv("JOIN_POLL_TIMEOUT", defaultJoinPollTimeout)
	if err != nil {
		return nil, err
	}

	if cfg.AppEnv == "prod" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in prod")
	}

	return cfg, nil
}

func getEnv(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(name, def string) (time.Duration, error) {
	raw := getEnv(name, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration in %s: %q", name, raw)
	}
	return d, nil
}
