package config

import (
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Backend   BackendConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Pricing   PricingConfig
	Session   SessionConfig
	Printer   PrinterConfig
	Events    EventsConfig
	Log       LogConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// BackendConfig selects the persistence collaborator: "http" talks to the
// inventory API, "postgres" uses the local database.
type BackendConfig struct {
	Mode    string
	BaseURL string
	Timeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
	Seed     bool
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type PricingConfig struct {
	TaxRate decimal.Decimal
}

type SessionConfig struct {
	MaxSessions int
}

type PrinterConfig struct {
	Type         string
	USBPath      string
	Address      string
	Width        int
	StoreName    string
	StoreAddress string
	StorePhone   string
}

type EventsConfig struct {
	AMQPURL  string
	Exchange string
}

type LogConfig struct {
	Level string
}

const (
	BackendModeHTTP     = "http"
	BackendModePostgres = "postgres"
)

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "phonehub-pos")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("BACKEND_MODE", BackendModeHTTP)
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:3000/api")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 15)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "phonehub")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Kuala_Lumpur")
	viper.SetDefault("DB_SEED", true)
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("SST_RATE", "0.06")
	viper.SetDefault("SESSION_MAX", 256)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("STORE_NAME", "PhoneHub")
	viper.SetDefault("AMQP_EXCHANGE", "pos.events")
	viper.SetDefault("LOG_LEVEL", "info")

	taxRate, err := decimal.NewFromString(viper.GetString("SST_RATE"))
	if err != nil {
		log.Printf("Warning: invalid SST_RATE %q, using 0.06: %v", viper.GetString("SST_RATE"), err)
		taxRate = decimal.RequireFromString("0.06")
	}

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Backend: BackendConfig{
			Mode:    viper.GetString("BACKEND_MODE"),
			BaseURL: viper.GetString("BACKEND_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("BACKEND_TIMEOUT_SECONDS")) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
			Seed:     viper.GetBool("DB_SEED"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Pricing: PricingConfig{
			TaxRate: taxRate,
		},
		Session: SessionConfig{
			MaxSessions: viper.GetInt("SESSION_MAX"),
		},
		Printer: PrinterConfig{
			Type:         viper.GetString("PRINTER_TYPE"),
			USBPath:      viper.GetString("PRINTER_USB_PATH"),
			Address:      viper.GetString("PRINTER_ADDRESS"),
			Width:        viper.GetInt("PRINTER_WIDTH"),
			StoreName:    viper.GetString("STORE_NAME"),
			StoreAddress: viper.GetString("STORE_ADDRESS"),
			StorePhone:   viper.GetString("STORE_PHONE"),
		},
		Events: EventsConfig{
			AMQPURL:  viper.GetString("AMQP_URL"),
			Exchange: viper.GetString("AMQP_EXCHANGE"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
