package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	SubmissionsCSVPath string
	RequestsCSVPath    string

	ValuationAPIURL     string
	ValuationAPITimeout time.Duration

	AuctionURL      string
	PagesToScrape   int
	ListingsPerPage int
	ChromeBin       string

	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int

	LogLevel string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return fromEnv()
}

// LoadFile reads the given env files instead of ./.env.
func LoadFile(paths ...string) (*Config, error) {
	if err := godotenv.Load(paths...); err != nil {
		return nil, err
	}
	return fromEnv(), nil
}

func fromEnv() *Config {
	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "valuer"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "valuer123"),
		PostgresDB:       getEnv("POSTGRES_DB", "valuation_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		SubmissionsCSVPath: getEnv("SUBMISSIONS_CSV_PATH", "./input/submissions.csv"),
		RequestsCSVPath:    getEnv("REQUESTS_CSV_PATH", "./output/valuation_requests.csv"),

		ValuationAPIURL:     getEnv("VALUATION_API_URL", ""),
		ValuationAPITimeout: time.Duration(getEnvInt("VALUATION_API_TIMEOUT_MS", 15000)) * time.Millisecond,

		AuctionURL:      getEnv("AUCTION_URL", ""),
		PagesToScrape:   getEnvInt("PAGES_TO_SCRAPE", 2),
		ListingsPerPage: getEnvInt("LISTINGS_PER_PAGE", 10),
		ChromeBin:       getEnv("CHROME_BIN", ""),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 500),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
