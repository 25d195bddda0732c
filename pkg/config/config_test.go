package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "09:00", cfg.Scheduler.GridStart)
	assert.Equal(t, []string{"MON", "TUE", "WED", "THU", "FRI", "SAT"}, cfg.Scheduler.Days)
	assert.Equal(t, 5, cfg.Scheduler.TopN)
	assert.Equal(t, 15*time.Minute, cfg.Conflicts.SweepInterval)
	assert.Equal(t, 10*time.Minute, cfg.Conflicts.CacheTTL)
	assert.Equal(t, 30, cfg.RateLimit.BookingsPerMinute)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("CONFLICT_SWEEP_INTERVAL", "not-a-duration")
	v.Set("CONFLICT_CACHE_TTL", "90s")
	v.Set("ALLOWED_ORIGINS", " https://a.campus.edu , ,https://b.campus.edu")
	v.Set("SCHEDULER_DAYS", "mon, wed")

	cfg := fromViper(v)
	assert.Equal(t, 15*time.Minute, cfg.Conflicts.SweepInterval)
	assert.Equal(t, 90*time.Second, cfg.Conflicts.CacheTTL)
	assert.Equal(t, []string{"https://a.campus.edu", "https://b.campus.edu"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"mon", "wed"}, cfg.Scheduler.Days)
}

func TestLocation(t *testing.T) {
	var nilCfg *Config
	assert.Equal(t, time.UTC, nilCfg.Location())
	assert.Equal(t, time.UTC, (&Config{Timezone: "Mars/Olympus"}).Location())
	assert.Equal(t, "UTC", (&Config{Timezone: "UTC"}).Location().String())
}
