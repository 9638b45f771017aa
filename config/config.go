package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Booking store selection: "memory" (default) or "mongo".
	BookingStore string `mapstructure:"BOOKING_STORE"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`

	// Redis configuration (OAuth token store).
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisTokenDB  int    `mapstructure:"REDIS_TOKEN_DB"`

	// Google OAuth credentials for host calendar connections.
	GCPClientID     string `mapstructure:"GCP_CLIENT_ID"`
	GCPClientSecret string `mapstructure:"GCP_CLIENT_SECRET"`
	RedirectURI     string `mapstructure:"REDIRECT_URI"`

	// Gemini API key for event detail generation. Empty disables the
	// generator and the deterministic fallback is used instead.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Bookable-day shape, all in UTC.
	WorkdayStartHour int `mapstructure:"WORKDAY_START_HOUR"`
	WorkdayEndHour   int `mapstructure:"WORKDAY_END_HOUR"`
	SlotDurationMin  int `mapstructure:"SLOT_DURATION_MIN"`

	// Upper bound on a single calendar provider call, in seconds.
	CalendarTimeoutSec int `mapstructure:"CALENDAR_TIMEOUT_SEC"`
}

// HostEntry is one host in the configured roster. The roster order is
// canonical: availability checks and the round-robin scan both walk it
// in this order.
type HostEntry struct {
	ID    string `mapstructure:"id"`
	Name  string `mapstructure:"name"`
	Email string `mapstructure:"email"`
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
	viper.SetDefault("BOOKING_STORE", "memory")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_TOKEN_DB", 0)
	viper.SetDefault("GCP_CLIENT_ID", "")
	viper.SetDefault("GCP_CLIENT_SECRET", "")
	viper.SetDefault("REDIRECT_URI", "http://localhost:8080/auth/google/callback")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("WORKDAY_START_HOUR", 9)
	viper.SetDefault("WORKDAY_END_HOUR", 17)
	viper.SetDefault("SLOT_DURATION_MIN", 60)
	viper.SetDefault("CALENDAR_TIMEOUT_SEC", 10)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// LoadHosts reads the host roster from the "hosts" key of the config file.
// When none is configured, a demo roster is returned so the service comes
// up bookable out of the box.
func LoadHosts() []HostEntry {
	var hosts []HostEntry
	if err := viper.UnmarshalKey("hosts", &hosts); err != nil {
		log.Fatalf("Failed to load host roster: %v", err)
	}
	if len(hosts) == 0 {
		hosts = []HostEntry{
			{ID: "1", Name: "Alice", Email: "alice@example.com"},
			{ID: "2", Name: "Bob", Email: "bob@example.com"},
			{ID: "3", Name: "Charlie", Email: "charlie@example.com"},
			{ID: "4", Name: "Diana", Email: "diana@example.com"},
		}
	}
	return hosts
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
