package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func noEnv(string) (string, bool) { return "", false }

func envOf(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{EnvEnvironment, EnvCorsAllowOrigins, EnvDBURL, EnvDBUser, EnvDBPassword, EnvDBName, EnvDBPort} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, realpath, err := LoadConfig(writeConfig(t, "log:\n  level: debug\n"))
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(realpath))
	assert.Equal(t, realpath, cfg.File)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":8000", cfg.Server.HttpPort)
	assert.Equal(t, "release", cfg.Server.RunMode)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, []string{"*"}, cfg.Cors.AllowOrigins)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.UseDatabase())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 500*time.Millisecond, cfg.GetSlowStoreThreshold())
	assert.Equal(t, 60*time.Second, cfg.GetContextTimeout())
	assert.Zero(t, cfg.App.WriteRateLimit)
	assert.Zero(t, cfg.App.WriteRateCapacity)
}

func TestLoadConfig_ExplicitFalseIsKept(t *testing.T) {
	cfg, _, err := LoadConfig(writeConfig(t, "database:\n  auto-migrate: false\ntracer:\n  enabled: false\n"))
	require.NoError(t, err)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.Tracer.Enabled)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, _, err = LoadConfig(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := &AppConfig{}
	cfg.Server.RunMode = "debug"
	cfg.Cors.AllowOrigins = []string{"*"}

	cfg.ApplyEnv(envOf(map[string]string{
		EnvEnvironment:      "Production",
		EnvCorsAllowOrigins: " https://a.example , ,https://b.example",
		EnvDBURL:            "postgres://db.internal/notes",
		EnvDBUser:           "notes",
		EnvDBPassword:       "secret",
		EnvDBName:           "notes_prod",
		EnvDBPort:           " 5433 ",
	}))

	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Log.Production)
	assert.Equal(t, "release", cfg.Server.RunMode)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Cors.AllowOrigins)
	assert.True(t, cfg.UseDatabase())
	assert.Equal(t, "notes", cfg.Database.UserName)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "notes_prod", cfg.Database.Name)
	assert.Equal(t, "5433", cfg.Database.Port)
}

func TestApplyEnv_EmptyCorsKeepsConfigured(t *testing.T) {
	cfg := &AppConfig{}
	cfg.Cors.AllowOrigins = []string{"https://only.example"}
	cfg.ApplyEnv(envOf(map[string]string{EnvCorsAllowOrigins: " , "}))
	assert.Equal(t, []string{"https://only.example"}, cfg.Cors.AllowOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_ShippedDefault(t *testing.T) {
	cfg, _, err := LoadConfig(filepath.Join("..", "..", "config", "config.yaml"))
	require.NoError(t, err)

	// 默认不限流
	assert.Zero(t, cfg.App.WriteRateLimit)
	assert.Zero(t, cfg.App.WriteRateCapacity)
	assert.Equal(t, ":8000", cfg.Server.HttpPort)
}

func TestConfig_Getters(t *testing.T) {
	cfg := &AppConfig{}
	cfg.App.WriteQueueCapacity = 7
	cfg.App.WriteQueueTimeout = "2s"
	cfg.App.SlowStoreThreshold = "not a duration"
	cfg.Tracer.Enabled = true

	wq := cfg.GetWriteQueueConfig()
	assert.Equal(t, 7, wq.QueueCapacity)
	assert.Equal(t, 2*time.Second, wq.WriteTimeout)
	assert.Zero(t, cfg.GetSlowStoreThreshold())

	assert.False(t, cfg.GetDatabaseConfig().Tracing)
	cfg.Tracer.AgentHost = "127.0.0.1:6831"
	assert.True(t, cfg.GetDatabaseConfig().Tracing)

	wp := cfg.GetWorkerPoolConfig()
	assert.Positive(t, wp.MaxWorkers)
	assert.Positive(t, wp.QueueSize)
}
