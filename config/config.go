package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisHoldDB   int    `mapstructure:"REDIS_HOLD_DB"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisTaskDB   int    `mapstructure:"REDIS_TASK_DB"`

	// Slot calendar configuration.
	CalendarSource     string `mapstructure:"CALENDAR_SOURCE"` // "rules" or "remote"
	CalendarURL        string `mapstructure:"CALENDAR_URL"`
	CalendarID         string `mapstructure:"CALENDAR_ID"`
	CalFallbackOnEmpty bool   `mapstructure:"CAL_FALLBACK_ON_EMPTY"`
	ConflictBufferMin  int    `mapstructure:"CONFLICT_BUFFER_MIN"`
	HoldTTLMin         int    `mapstructure:"HOLD_TTL_MIN"`

	// Distance provider configuration.
	RoutingAPIURL      string  `mapstructure:"ROUTING_API_URL"`
	RoutingAPIKey      string  `mapstructure:"ROUTING_API_KEY"`
	GeocodeAPIURL      string  `mapstructure:"GEOCODE_API_URL"`
	GeocodeAPIKey      string  `mapstructure:"GEOCODE_API_KEY"`
	ProviderTimeoutSec int     `mapstructure:"PROVIDER_TIMEOUT_SEC"`
	BaseAddress        string  `mapstructure:"BASE_ADDRESS"`
	BasePostalCode     string  `mapstructure:"BASE_POSTAL_CODE"`
	NominalDistanceMi  float64 `mapstructure:"NOMINAL_DISTANCE_MILES"`
	SameZipMinimumMi   float64 `mapstructure:"SAME_ZIP_MINIMUM_MILES"`
	MinutesPerMile     float64 `mapstructure:"MINUTES_PER_MILE"`

	// Surcharge configuration.
	EveningCutoffHour int     `mapstructure:"EVENING_CUTOFF_HOUR"`
	WeekendSurcharge  float64 `mapstructure:"WEEKEND_SURCHARGE"`
	EveningSurcharge  float64 `mapstructure:"EVENING_SURCHARGE"`
	RushWindowHours   int     `mapstructure:"RUSH_WINDOW_HOURS"`
	RushSurcharge     float64 `mapstructure:"RUSH_SURCHARGE"`
	MaxPromoDiscount  float64 `mapstructure:"MAX_PROMO_DISCOUNT"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_HOLD_DB", 0)
	viper.SetDefault("REDIS_CACHE_DB", 1)
	viper.SetDefault("REDIS_TASK_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("CALENDAR_SOURCE", "rules")
	viper.SetDefault("CALENDAR_URL", "")
	viper.SetDefault("CALENDAR_ID", "primary")
	viper.SetDefault("CAL_FALLBACK_ON_EMPTY", false)
	viper.SetDefault("CONFLICT_BUFFER_MIN", 15)
	viper.SetDefault("HOLD_TTL_MIN", 10)
	viper.SetDefault("ROUTING_API_URL", "")
	viper.SetDefault("ROUTING_API_KEY", "")
	viper.SetDefault("GEOCODE_API_URL", "")
	viper.SetDefault("GEOCODE_API_KEY", "")
	viper.SetDefault("PROVIDER_TIMEOUT_SEC", 3)
	viper.SetDefault("BASE_ADDRESS", "6300 Emmett F Lowry Expy, Texas City, TX 77591")
	viper.SetDefault("BASE_POSTAL_CODE", "77591")
	viper.SetDefault("NOMINAL_DISTANCE_MILES", 20.0)
	viper.SetDefault("SAME_ZIP_MINIMUM_MILES", 3.0)
	viper.SetDefault("MINUTES_PER_MILE", 2.0)
	viper.SetDefault("EVENING_CUTOFF_HOUR", 18)
	viper.SetDefault("WEEKEND_SURCHARGE", 25.0)
	viper.SetDefault("EVENING_SURCHARGE", 20.0)
	viper.SetDefault("RUSH_WINDOW_HOURS", 4)
	viper.SetDefault("RUSH_SURCHARGE", 30.0)
	viper.SetDefault("MAX_PROMO_DISCOUNT", 50.0)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
