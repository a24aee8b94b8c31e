package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"payroll/internal/domain/payroll"
)

type Config struct {
	InputFile          string
	ErrorFile          string
	ReportFile         string
	RegisterFile       string
	PDFFile            string
	PolicyFile         string
	EncryptionKey      string
	Company            string
	EchoOutput         bool
	LogLevel           string
	LogFormat          string
	Addr               string
	JWTSecret          string
	TokenTTL           time.Duration
	MaxBodyBytes       int64
	RateLimitPerMinute int
	MetricsEnabled     bool
	TrustProxyHeaders  bool
}

func Load() Config {
	return Config{
		InputFile:          getEnv("PAYROLL_INPUT", payroll.DefaultInputFile),
		ErrorFile:          getEnv("PAYROLL_ERROR_FILE", payroll.DefaultErrorFile),
		ReportFile:         getEnv("PAYROLL_REPORT_FILE", payroll.DefaultReportFile),
		RegisterFile:       getEnv("PAYROLL_REGISTER_FILE", ""),
		PDFFile:            getEnv("PAYROLL_PDF_FILE", ""),
		PolicyFile:         getEnv("PAYROLL_POLICY_FILE", ""),
		EncryptionKey:      getEnv("PAYROLL_ENCRYPTION_KEY", ""),
		Company:            getEnv("PAYROLL_COMPANY", payroll.DefaultCompany),
		EchoOutput:         getEnvBool("ECHO_OUTPUT", true),
		LogLevel:           getEnv("PAYROLL_LOG_LEVEL", "info"),
		LogFormat:          getEnv("PAYROLL_LOG_FORMAT", "text"),
		Addr:               getEnv("APP_ADDR", ":8080"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		TokenTTL:           getEnvDuration("TOKEN_TTL", 12*time.Hour),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
		TrustProxyHeaders:  getEnvBool("TRUST_PROXY_HEADERS", false),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate checks the settings a batch run needs.
func (c Config) Validate() error {
	if strings.TrimSpace(c.InputFile) == "" {
		return fmt.Errorf("PAYROLL_INPUT must not be empty")
	}
	if strings.TrimSpace(c.ErrorFile) == "" {
		return fmt.Errorf("PAYROLL_ERROR_FILE must not be empty")
	}
	if strings.TrimSpace(c.ReportFile) == "" {
		return fmt.Errorf("PAYROLL_REPORT_FILE must not be empty")
	}
	if c.ErrorFile == c.ReportFile {
		return fmt.Errorf("PAYROLL_ERROR_FILE and PAYROLL_REPORT_FILE must differ")
	}
	return nil
}

// ValidateServer checks the settings the HTTP service needs.
func (c Config) ValidateServer() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("APP_ADDR is required")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	return nil
}
