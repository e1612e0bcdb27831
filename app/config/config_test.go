package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for key := range defaults {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, ":8080", c.Addr())
	assert.Equal(t, "sqlite3", c.DBDriver)
	assert.Equal(t, 24*time.Hour, c.SessionTTL)
	assert.Equal(t, "admin", c.AdminUsername)
	assert.True(t, c.IsDevelopment())
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "postgres://blog@localhost/blog?sslmode=disable")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("APP_ENV", "production")

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, "postgres", c.DBDriver)
	assert.Equal(t, "postgres://blog@localhost/blog?sslmode=disable", c.DBDSN)
	assert.Equal(t, 30*time.Minute, c.SessionTTL)
	assert.False(t, c.IsDevelopment())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "blog.yml")
	require.NoError(t, os.WriteFile(path, []byte("PORT: \"7070\"\nADMIN_USERNAME: editor\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", c.Port)
	assert.Equal(t, "editor", c.AdminUsername)

	_, err = Load(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load("")
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Port:          "8080",
		Env:           "test",
		DBDriver:      "sqlite3",
		DBDSN:         ":memory:",
		SessionTTL:    time.Hour,
		SessionCookie: "s",
		AdminUsername: "admin",
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"non numeric port", func(c *Config) { c.Port = "http" }, true},
		{"missing dsn", func(c *Config) { c.DBDSN = "" }, true},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }, true},
		{"missing admin", func(c *Config) { c.AdminUsername = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
