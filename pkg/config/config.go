package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string
	Timezone  string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Scheduler SchedulerConfig
	Conflicts ConflictConfig
	Notify    NotifyConfig
	RateLimit RateLimitConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig holds the shared secret of the identity provider's tokens.
type JWTConfig struct {
	Secret string
	Issuer string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SchedulerConfig shapes the slot grid and the alternative search.
type SchedulerConfig struct {
	GridStart           string
	GridEnd             string
	SlotMinutes         int
	Days                []string
	TopN                int
	HorizonDays         int
	MaxRoomAlternatives int
}

// ConflictConfig controls the periodic sweep and its report cache.
type ConflictConfig struct {
	SweepInterval time.Duration
	CacheTTL      time.Duration
}

// NotifyConfig sizes the notification worker pool.
type NotifyConfig struct {
	Workers int
	Retries int
}

// RateLimitConfig throttles booking writes per user.
type RateLimitConfig struct {
	BookingsPerMinute int
	Burst             int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.Timezone = v.GetString("TIMEZONE")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret: v.GetString("JWT_SECRET"),
		Issuer: v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Scheduler = SchedulerConfig{
		GridStart:           v.GetString("SCHEDULER_GRID_START"),
		GridEnd:             v.GetString("SCHEDULER_GRID_END"),
		SlotMinutes:         v.GetInt("SCHEDULER_SLOT_MINUTES"),
		Days:                splitAndTrim(v.GetString("SCHEDULER_DAYS")),
		TopN:                v.GetInt("SCHEDULER_TOP_N"),
		HorizonDays:         v.GetInt("SCHEDULER_HORIZON_DAYS"),
		MaxRoomAlternatives: v.GetInt("SCHEDULER_MAX_ROOM_ALTERNATIVES"),
	}

	cfg.Conflicts = ConflictConfig{
		SweepInterval: parseDuration(v.GetString("CONFLICT_SWEEP_INTERVAL"), 15*time.Minute),
		CacheTTL:      parseDuration(v.GetString("CONFLICT_CACHE_TTL"), 10*time.Minute),
	}

	cfg.Notify = NotifyConfig{
		Workers: v.GetInt("NOTIFY_WORKERS"),
		Retries: v.GetInt("NOTIFY_RETRIES"),
	}

	cfg.RateLimit = RateLimitConfig{
		BookingsPerMinute: v.GetInt("BOOKING_RATE_LIMIT"),
		Burst:             v.GetInt("BOOKING_RATE_BURST"),
	}

	return cfg
}

// Location resolves TIMEZONE, falling back to UTC.
func (c *Config) Location() *time.Location {
	if c == nil || c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("TIMEZONE", "UTC")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "campus_buddy")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_ENABLED", true)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_ISSUER", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SCHEDULER_GRID_START", "09:00")
	v.SetDefault("SCHEDULER_GRID_END", "17:00")
	v.SetDefault("SCHEDULER_SLOT_MINUTES", 60)
	v.SetDefault("SCHEDULER_DAYS", "MON,TUE,WED,THU,FRI,SAT")
	v.SetDefault("SCHEDULER_TOP_N", 5)
	v.SetDefault("SCHEDULER_HORIZON_DAYS", 6)
	v.SetDefault("SCHEDULER_MAX_ROOM_ALTERNATIVES", 5)

	v.SetDefault("CONFLICT_SWEEP_INTERVAL", "15m")
	v.SetDefault("CONFLICT_CACHE_TTL", "10m")

	v.SetDefault("NOTIFY_WORKERS", 2)
	v.SetDefault("NOTIFY_RETRIES", 3)

	v.SetDefault("BOOKING_RATE_LIMIT", 30)
	v.SetDefault("BOOKING_RATE_BURST", 5)
}

func isMissingFile(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such file")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
