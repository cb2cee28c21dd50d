// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"investrack/pkg/db"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string
	DB         db.Config

	// ReceiptDir is where uploaded payment receipts are written; the database
	// stores only the path.
	ReceiptDir string

	// ReferralBonusPercent is the share of a referred investor's first
	// verified investment credited to the referrer.
	ReferralBonusPercent decimal.Decimal

	MigrationsPath string
}

// LoadConfig loads configuration from environment variables, after a
// best-effort read of a local .env file.
func LoadConfig() (*AppConfig, error) {
	_ = godotenv.Load() // missing .env is fine outside local development

	serverPort := getEnv("SERVER_PORT", "8080")

	dbPortStr := getEnv("DB_PORT", "5432")
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	bonusStr := getEnv("REFERRAL_BONUS_PERCENT", "5")
	bonusPercent, err := decimal.NewFromString(bonusStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFERRAL_BONUS_PERCENT: %w", err)
	}
	if bonusPercent.IsNegative() {
		return nil, fmt.Errorf("REFERRAL_BONUS_PERCENT must not be negative, got %s", bonusStr)
	}

	return &AppConfig{
		ServerPort: serverPort,
		DB: db.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "user"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "investrackdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		ReceiptDir:           getEnv("RECEIPT_DIR", "uploads/receipts"),
		ReferralBonusPercent: bonusPercent,
		MigrationsPath:       getEnv("MIGRATIONS_PATH", "migrations"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
