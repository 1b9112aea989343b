package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// RedisConfig holds the monthly summary cache configuration. Empty Addr disables caching.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	SummaryTTL time.Duration
}

// KafkaConfig holds domain event publishing configuration. No brokers means events
// only reach in-process subscribers.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// PayrollConfig holds the thresholds shared by the timesheet, approval and ESI views.
type PayrollConfig struct {
	EsiSalaryThreshold decimal.Decimal
	EsiRate            decimal.Decimal
	DefaultOTRate      decimal.Decimal
	MinMarkedDays      int
	RecomputeCron      string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, using process environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hris_timesheet"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS"),
	}
	if len(config.App.AllowedOrigins) == 0 {
		config.App.AllowedOrigins = []string{"http://localhost:3000"}
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	summaryTTL, err := time.ParseDuration(getEnv("REDIS_SUMMARY_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_SUMMARY_TTL: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:       getEnv("REDIS_ADDR", ""),
		Password:   getEnv("REDIS_PASSWORD", ""),
		DB:         redisDB,
		SummaryTTL: summaryTTL,
	}

	// Kafka configuration
	config.Kafka = KafkaConfig{
		Brokers: getEnvSlice("KAFKA_BROKERS"),
		Topic:   getEnv("KAFKA_TOPIC", "hris.timesheet.events"),
	}

	// Payroll configuration
	payroll, err := loadPayroll()
	if err != nil {
		return nil, err
	}
	config.Payroll = payroll

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadPayroll() (PayrollConfig, error) {
	threshold, err := decimal.NewFromString(getEnv("ESI_SALARY_THRESHOLD", "21000"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid ESI_SALARY_THRESHOLD: %w", err)
	}
	rate, err := decimal.NewFromString(getEnv("ESI_RATE", "0.0075"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid ESI_RATE: %w", err)
	}
	otRate, err := decimal.NewFromString(getEnv("DEFAULT_OT_RATE", "70"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid DEFAULT_OT_RATE: %w", err)
	}
	minMarked, err := strconv.Atoi(getEnv("MIN_MARKED_DAYS", "26"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid MIN_MARKED_DAYS: %w", err)
	}

	return PayrollConfig{
		EsiSalaryThreshold: threshold,
		EsiRate:            rate,
		DefaultOTRate:      otRate,
		MinMarkedDays:      minMarked,
		RecomputeCron:      getEnv("PAYROLL_RECOMPUTE_CRON", "0 2 * * *"),
	}, nil
}

// DefaultPayroll returns the payroll configuration used when no environment is present.
func DefaultPayroll() PayrollConfig {
	return PayrollConfig{
		EsiSalaryThreshold: decimal.NewFromInt(21000),
		EsiRate:            decimal.RequireFromString("0.0075"),
		DefaultOTRate:      decimal.NewFromInt(70),
		MinMarkedDays:      26,
		RecomputeCron:      "0 2 * * *",
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return c.Payroll.Validate()
}

func (p PayrollConfig) Validate() error {
	if !p.EsiSalaryThreshold.IsPositive() {
		return fmt.Errorf("ESI_SALARY_THRESHOLD must be positive")
	}
	if p.EsiRate.IsNegative() || p.EsiRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("ESI_RATE must be between 0 and 1")
	}
	if p.DefaultOTRate.IsNegative() {
		return fmt.Errorf("DEFAULT_OT_RATE must not be negative")
	}
	if p.MinMarkedDays <= 0 || p.MinMarkedDays > 31 {
		return fmt.Errorf("MIN_MARKED_DAYS must be between 1 and 31")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
