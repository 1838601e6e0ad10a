package config

import (
	"bufio"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/sdk/trace"
)

// Application holds all the application-wide dependencies.
type Application struct {
	Config         Config
	Logger         zerolog.Logger
	DB             *pgxpool.Pool
	Redis          *redis.Client
	TracerProvider *trace.TracerProvider
}

// Config holds all the configuration variables for the application.
type Config struct {
	Port                        int      `mapstructure:"PORT"`
	App_Env                     string   `mapstructure:"APP_ENV"`
	App_Secret                  string   `mapstructure:"APP_SECRET"`
	CORS_Allowed_Origins        []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	DatabaseURL                 string   `mapstructure:"DATABASE_URL"`
	DbHost                      string   `mapstructure:"DB_HOST"`
	DbPort                      int      `mapstructure:"DB_PORT"`
	DbUser                      string   `mapstructure:"DB_USER"`
	DbPassword                  string   `mapstructure:"DB_PASSWORD"`
	DbName                      string   `mapstructure:"DB_NAME"`
	DbSslMode                   string   `mapstructure:"DB_SSL_MODE"`
	DbMaxConns                  int      `mapstructure:"DB_MAX_CONNS"`
	DbMinConns                  int      `mapstructure:"DB_MIN_CONNS"`
	RedisHost                   string   `mapstructure:"REDIS_HOST"`
	RedisPort                   int      `mapstructure:"REDIS_PORT"`
	RedisPassword               string   `mapstructure:"REDIS_PASSWORD"`
	RateLimit                   int      `mapstructure:"RATE_LIMIT"`
	LogLevel                    string   `mapstructure:"LOG_LEVEL"`
	RequestTimeout              int      `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	JWTIssuer                   string   `mapstructure:"JWT_ISSUER"`
	JWTExpirationMinutes        int      `mapstructure:"JWT_EXPIRATION_MINUTES"`
	RefreshTokenExpirationHours int      `mapstructure:"REFRESH_TOKEN_EXPIRATION_HOURS"`
	CacheTTLSeconds             int      `mapstructure:"CACHE_TTL_SECONDS"`
	BookingHorizonDays          int      `mapstructure:"BOOKING_HORIZON_DAYS"`
	OtelEnabled                 bool     `mapstructure:"OTEL_ENABLED"`
	OtelExporterEndpoint        string   `mapstructure:"OTEL_EXPORTER_ENDPOINT"`
	DefaultAdminUsername        string   `mapstructure:"DEFAULT_ADMIN_USERNAME"`
	DefaultAdminEmail           string   `mapstructure:"DEFAULT_ADMIN_EMAIL"`
	DefaultAdminPassword        string   `mapstructure:"DEFAULT_ADMIN_PASSWORD"`

	// dsnFromParts is set by Load when DatabaseURL was assembled from the DB_* keys.
	dsnFromParts bool
}

type ContextKey string

const (
	UserIDKey    = ContextKey("userID")
	RolesKey     = ContextKey("roles")
	RequestIDKey = ContextKey("request_id")
)

// Load reads configuration from secrets, environment variables, or defaults.
func Load() (config Config, err error) {
	// 1. Determine Environment First
	// We check OS Env directly first to decide how to load the rest
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	viper.Set("APP_ENV", env)

	// 2. Set Defaults based on Environment
	if env == "production" {
		viper.SetDefault("PORT", 8080)
		viper.SetDefault("RATE_LIMIT", 1000)
		viper.SetDefault("LOG_LEVEL", "info")
		viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 30)
		viper.SetDefault("JWT_EXPIRATION_MINUTES", 15)
		viper.SetDefault("REFRESH_TOKEN_EXPIRATION_HOURS", 24*7)
	} else {
		viper.SetDefault("PORT", 8080)
		viper.SetDefault("RATE_LIMIT", 100)
		viper.SetDefault("LOG_LEVEL", "debug")
		viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 60)
		viper.SetDefault("JWT_EXPIRATION_MINUTES", 60)
		viper.SetDefault("REFRESH_TOKEN_EXPIRATION_HOURS", 24*30)
		viper.SetDefault("DEFAULT_ADMIN_USERNAME", "admin")
		viper.SetDefault("DEFAULT_ADMIN_EMAIL", "admin@sms.local")
		viper.SetDefault("DEFAULT_ADMIN_PASSWORD", "Admin123!")
	}

	// Universal Defaults
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("DB_MAX_CONNS", 30)
	viper.SetDefault("DB_MIN_CONNS", 5)
	viper.SetDefault("JWT_ISSUER", "sms-backend")
	viper.SetDefault("CACHE_TTL_SECONDS", 300)
	viper.SetDefault("BOOKING_HORIZON_DAYS", 90)
	viper.SetDefault("OTEL_ENABLED", false)
	viper.SetDefault("OTEL_EXPORTER_ENDPOINT", "tempo:4318")

	// 3. Conditional Loading Logic
	if env == "development" {
		// --- DEVELOPMENT: Load from .env file ---
		// We try loading from current and parent directory
		_ = loadEnvFile(".env")
		_ = loadEnvFile("../.env")
	} else {
		// --- PRODUCTION: Load from Docker Secrets ---
		loadSecret("APP_SECRET", "app_secret")
		loadSecret("DATABASE_URL", "database_url")
		loadSecret("DB_HOST", "db_host")
		loadSecret("DB_PORT", "db_port")
		loadSecret("DB_USER", "db_user")
		loadSecret("DB_PASSWORD", "db_password")
		loadSecret("DB_NAME", "db_name")
		loadSecret("DB_SSL_MODE", "db_ssl_mode")
		loadSecret("REDIS_HOST", "redis_host")
		loadSecret("REDIS_PORT", "redis_port")
		loadSecret("REDIS_PASSWORD", "redis_password")
	}

	// 4. AutomaticEnv (System Env Vars override everything loaded so far)
	viper.AutomaticEnv()
	bindEnvs()

	// 5. Unmarshal
	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	// 6. Post-Load Logic
	if config.DatabaseURL == "" {
		config.dsnFromParts = true
		config.DatabaseURL = fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
			config.DbUser, config.DbPassword, config.DbHost, config.DbPort, config.DbName, config.DbSslMode,
		)
	}

	return
}

// loadSecret reads a file from /run/secrets and sets it in Viper
func loadSecret(key, name string) {
	candidates := []string{name, strings.ToUpper(name), strings.ToLower(name)}
	for _, filename := range candidates {
		path := fmt.Sprintf("/run/secrets/%s", filename)
		if _, err := os.Stat(path); err == nil {
			content, _ := os.ReadFile(path)
			if len(content) > 0 {
				viper.Set(key, strings.TrimSpace(string(content)))
				return
			}
		}
	}
}

// loadEnvFile parses a .env file and sets values into Viper AND os.Env
func loadEnvFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove surrounding quotes
		if len(value) > 1 && (value[0] == '"' || value[0] == '\'') && value[0] == value[len(value)-1] {
			value = value[1 : len(value)-1]
		}

		// LOGIC: Set in Viper (so Unmarshal works)
		// Only set if not already set by system env (precedence)
		if os.Getenv(key) == "" {
			viper.Set(key, value)
			os.Setenv(key, value) // Keep this if other libs rely on os.Getenv
		}
	}

	return scanner.Err()
}

// bindEnvs registers every Config key so Unmarshal sees env vars that have no default.
func bindEnvs() {
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		if key := t.Field(i).Tag.Get("mapstructure"); key != "" {
			_ = viper.BindEnv(key)
		}
	}
}

// Validate performs comprehensive configuration validation
func (c *Config) Validate() error {
	var errors []string

	if c.App_Secret == "" {
		errors = append(errors, "APP_SECRET is required")
	} else if len(c.App_Secret) < 32 {
		errors = append(errors, "APP_SECRET must be at least 32 characters long")
	}

	// DB_* parts are only needed when no DATABASE_URL was given.
	if c.DatabaseURL == "" || c.dsnFromParts {
		if c.DbUser == "" {
			errors = append(errors, "DB_USER is required")
		}
		if c.DbPassword == "" {
			errors = append(errors, "DB_PASSWORD is required")
		}
		if c.DbName == "" {
			errors = append(errors, "DB_NAME is required")
		}
	}

	if c.Port <= 0 || c.Port > 65535 {
		errors = append(errors, "PORT must be between 1 and 65535")
	}
	if c.JWTExpirationMinutes <= 0 {
		errors = append(errors, "JWT_EXPIRATION_MINUTES must be positive")
	}
	if c.RefreshTokenExpirationHours <= 0 {
		errors = append(errors, "REFRESH_TOKEN_EXPIRATION_HOURS must be positive")
	}
	if c.BookingHorizonDays <= 0 {
		errors = append(errors, "BOOKING_HORIZON_DAYS must be positive")
	}
	if c.RateLimit <= 0 {
		errors = append(errors, "RATE_LIMIT must be positive")
	}
	if c.RequestTimeout <= 0 {
		errors = append(errors, "REQUEST_TIMEOUT_SECONDS must be positive")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App_Env == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App_Env == "production"
}

// GetJWTExpiration returns the access token lifetime
func (c *Config) GetJWTExpiration() time.Duration {
	return time.Duration(c.JWTExpirationMinutes) * time.Minute
}

// GetRefreshTokenExpiration returns the refresh token lifetime
func (c *Config) GetRefreshTokenExpiration() time.Duration {
	return time.Duration(c.RefreshTokenExpirationHours) * time.Hour
}

// GetCacheTTL returns how long cached salons stay valid
func (c *Config) GetCacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// GetBookingHorizon returns how far ahead appointments may be booked
func (c *Config) GetBookingHorizon() time.Duration {
	return time.Duration(c.BookingHorizonDays) * 24 * time.Hour
}

// GetRequestTimeout returns the request timeout duration
func (c *Config) GetRequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}
