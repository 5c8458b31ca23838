package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	StoreDriverFile     = "file"
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	DB        DBConfig
	Redis     RedisConfig
	Auth      AuthConfig
	JWT       JWTConfig
	Pricing   PricingConfig
	Scheduler SchedulerConfig
}

type AppConfig struct {
	Port       string
	Env        string
	LogLevel   string
	CORSOrigin string
}

type StoreConfig struct {
	Driver string
	Dir    string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Migrate  bool
}

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
}

type AuthConfig struct {
	Enabled     bool
	StaffAPIKey string
	AdminAPIKey string
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

type PricingConfig struct {
	BaseFee        decimal.Decimal
	TherapyFormula string
}

type SchedulerConfig struct {
	SyncOccupancy      bool
	DefaultSlotMinutes int
}

var ErrUnknownStoreDriver = errors.New("STORE_DRIVER must be file, postgres or redis")

// LoadConfig reads .env from the working directory when present, then the environment.
func LoadConfig() (*Config, error) {
	return Load(".env")
}

// Load reads the optional env file at path; environment variables win over it.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_CORS_ORIGIN", "*")
	v.SetDefault("STORE_DRIVER", StoreDriverFile)
	v.SetDefault("STORE_DIR", "data")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_KEY_PREFIX", "hospital:records:")
	v.SetDefault("PRICING_BASE_FEE", "50")
	v.SetDefault("PRICING_THERAPY_FORMULA", "surcharge")
	v.SetDefault("SCHEDULER_DEFAULT_SLOT_MINUTES", 60)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}

	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	baseFee, err := decimal.NewFromString(v.GetString("PRICING_BASE_FEE"))
	if err != nil {
		return nil, errors.New("PRICING_BASE_FEE must be a decimal number")
	}

	driver := strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER")))
	switch driver {
	case StoreDriverFile, StoreDriverPostgres, StoreDriverRedis:
	default:
		return nil, ErrUnknownStoreDriver
	}

	config := &Config{
		App: AppConfig{
			Port:       v.GetString("APP_PORT"),
			Env:        v.GetString("APP_ENV"),
			LogLevel:   v.GetString("LOG_LEVEL"),
			CORSOrigin: v.GetString("APP_CORS_ORIGIN"),
		},
		Store: StoreConfig{
			Driver: driver,
			Dir:    v.GetString("STORE_DIR"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			Migrate:  v.GetBool("DB_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:      v.GetString("REDIS_HOST"),
			Port:      v.GetString("REDIS_PORT"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
		},
		Auth: AuthConfig{
			Enabled:     v.GetBool("AUTH_ENABLED"),
			StaffAPIKey: v.GetString("AUTH_STAFF_API_KEY"),
			AdminAPIKey: v.GetString("AUTH_ADMIN_API_KEY"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		Pricing: PricingConfig{
			BaseFee:        baseFee,
			TherapyFormula: v.GetString("PRICING_THERAPY_FORMULA"),
		},
		Scheduler: SchedulerConfig{
			SyncOccupancy:      v.GetBool("SCHEDULER_SYNC_OCCUPANCY"),
			DefaultSlotMinutes: v.GetInt("SCHEDULER_DEFAULT_SLOT_MINUTES"),
		},
	}

	if config.Auth.Enabled && config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required when AUTH_ENABLED is true")
	}

	return config, nil
}
