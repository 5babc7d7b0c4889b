// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for our application
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Security SecurityConfig
	Services ServicesConfig
	Printer  PrinterConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
	// Store header printed on every receipt (two lines)
	StoreName    string
	StoreAddress string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	// TTL for register sessions (active cart state)
	SessionTTL time.Duration
}

// JWTConfig contains cashier token configuration
type JWTConfig struct {
	Secret string
	Issuer string
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	TrustedProxies     []string
}

// ServicesConfig contains external collaborator configurations
type ServicesConfig struct {
	SaleSync SaleSyncConfig
	Rewards  RewardsConfig
	Orders   OrdersConfig
}

// SaleSyncConfig configures the Sale Persistence Service client
type SaleSyncConfig struct {
	BaseURL string
	Timeout time.Duration
}

// RewardsConfig configures the Reward Issuance Service client
type RewardsConfig struct {
	BaseURL string
	Timeout time.Duration
}

// OrdersConfig configures the online-order lifecycle collaborator
type OrdersConfig struct {
	BaseURL string
	Timeout time.Duration
}

// PrinterConfig contains thermal printer and print fallback configuration
type PrinterConfig struct {
	// Columns on 58mm paper
	PaperWidth int
	// Maximum bytes per write to the hardware link
	ChunkSize int
	// Pause between chunked writes so the device buffer drains
	ChunkDelay time.Duration
	// QR module size and error correction level (ESC/POS GS ( k values)
	QRModuleSize      byte
	QRErrorCorrection byte
	// Landing page that redeems a reward code scanned from the receipt
	RewardLandingURL string
	// Backend print service endpoint (tier two of the fallback chain)
	PrintServiceURL     string
	PrintServiceTimeout time.Duration
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:         getEnv("APP_NAME", "Pharmacy POS"),
			Version:      getEnv("APP_VERSION", "1.0.0"),
			Environment:  getEnv("APP_ENV", "development"),
			Debug:        getEnvAsBool("APP_DEBUG", true),
			StoreName:    getEnv("STORE_NAME", "Calloway Pharmacy"),
			StoreAddress: getEnv("STORE_ADDRESS", "123 Rizal Ave, Manila"),
		},
		Server: ServerConfig{
			Port:         getEnv("APP_PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			Name:         getEnv("DB_NAME", "pharmacy_pos"),
			User:         getEnv("DB_USER", "pos_user"),
			Password:     getEnv("DB_PASSWORD", "pos_password"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 300*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
			SessionTTL:   getEnvAsDuration("REGISTER_SESSION_TTL", 12*time.Hour),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-me-this-secret-must-be-32-chars!"),
			Issuer: getEnv("JWT_ISSUER", "pharmacy-auth"),
		},
		Security: SecurityConfig{
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},
		Services: ServicesConfig{
			SaleSync: SaleSyncConfig{
				BaseURL: getEnv("SALE_SYNC_URL", "http://localhost:9090"),
				Timeout: getEnvAsDuration("SALE_SYNC_TIMEOUT", 15*time.Second),
			},
			Rewards: RewardsConfig{
				BaseURL: getEnv("REWARDS_URL", "http://localhost:9091"),
				Timeout: getEnvAsDuration("REWARDS_TIMEOUT", 10*time.Second),
			},
			Orders: OrdersConfig{
				BaseURL: getEnv("ORDERS_URL", "http://localhost:9092"),
				Timeout: getEnvAsDuration("ORDERS_TIMEOUT", 10*time.Second),
			},
		},
		Printer: PrinterConfig{
			PaperWidth:          getEnvAsInt("PRINTER_PAPER_WIDTH", 32),
			ChunkSize:           getEnvAsInt("PRINTER_CHUNK_SIZE", 180),
			ChunkDelay:          getEnvAsDuration("PRINTER_CHUNK_DELAY", 30*time.Millisecond),
			QRModuleSize:        byte(getEnvAsInt("PRINTER_QR_MODULE_SIZE", 5)),
			QRErrorCorrection:   byte(getEnvAsInt("PRINTER_QR_EC_LEVEL", 49)),
			RewardLandingURL:    getEnv("REWARD_LANDING_URL", "https://rewards.callowaypharmacy.ph/claim"),
			PrintServiceURL:     getEnv("PRINT_SERVICE_URL", "http://localhost:9093"),
			PrintServiceTimeout: getEnvAsDuration("PRINT_SERVICE_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("DB_USER is required")
	}

	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	if c.Printer.PaperWidth < 20 {
		return fmt.Errorf("PRINTER_PAPER_WIDTH must be at least 20 columns")
	}
	if c.Printer.ChunkSize < 20 {
		return fmt.Errorf("PRINTER_CHUNK_SIZE must be at least 20 bytes")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
