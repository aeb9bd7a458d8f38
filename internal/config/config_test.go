package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, SourceEmbedded, cfg.Quiz.Source)
	assert.Equal(t, 15, cfg.Quiz.TimerDuration)
	assert.Equal(t, 5, cfg.Quiz.UrgentThreshold)
	assert.Equal(t, time.Second, cfg.Quiz.TickInterval)
	assert.Equal(t, 2*time.Second, cfg.Quiz.AdvanceDelay)
	assert.Equal(t, 5*time.Second, cfg.Quiz.CelebrationDuration)
	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, "sqlite3", cfg.DB.Driver)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
quiz:
  timer_duration: 20
  advance_delay: 3s
session:
  max_active: 5
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("QUIZ_URGENT_THRESHOLD", "7")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Quiz.TimerDuration)
	assert.Equal(t, 3*time.Second, cfg.Quiz.AdvanceDelay)
	assert.Equal(t, 7, cfg.Quiz.UrgentThreshold)
	assert.Equal(t, 5, cfg.Session.MaxActive)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
}

func TestLoad_InvalidTimings(t *testing.T) {
	t.Setenv("QUIZ_URGENT_THRESHOLD", "30")

	_, err := Load(t.TempDir())
	assert.ErrorContains(t, err, "urgent_threshold")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Quiz: QuizConfig{
				Source:          SourceEmbedded,
				TimerDuration:   15,
				UrgentThreshold: 5,
				TickInterval:    time.Second,
				AdvanceDelay:    2 * time.Second,
			},
			Session: SessionConfig{TTL: time.Minute, MaxActive: 1, SweepInterval: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown source", mutate: func(c *Config) { c.Quiz.Source = "s3" }, wantErr: "quiz.source"},
		{name: "zero timer", mutate: func(c *Config) { c.Quiz.TimerDuration = 0 }, wantErr: "timer_duration"},
		{name: "zero tick", mutate: func(c *Config) { c.Quiz.TickInterval = 0 }, wantErr: "tick_interval"},
		{name: "negative delay", mutate: func(c *Config) { c.Quiz.AdvanceDelay = -time.Second }, wantErr: "delays"},
		{name: "negative limit", mutate: func(c *Config) { c.Quiz.Limit = -1 }, wantErr: "limit"},
		{name: "no sessions", mutate: func(c *Config) { c.Session.MaxActive = 0 }, wantErr: "max_active"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfig_GetDSN(t *testing.T) {
	cfg := &Config{DB: DBConfig{Driver: "postgres", Host: "db", Port: 5432, User: "quiz", Password: "pw", DBName: "dishes"}}
	assert.Equal(t, "postgres://quiz:pw@db:5432/dishes?sslmode=disable", cfg.GetDSN())

	cfg.DB.Driver = "oracle"
	assert.Equal(t, "oracle://quiz:pw@db:5432/dishes", cfg.GetDSN())

	cfg.DB.DSN = "explicit"
	assert.Equal(t, "explicit", cfg.GetDSN())
}
