package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			require.NoError(t, os.Unsetenv(k))
			t.Cleanup(func() { _ = os.Setenv(k, v) })
		}
	}
}

var allEnv = []string{
	EnvAccountName, EnvAccountKey, EnvEndpoint, EnvTokenSecret, EnvTokenIssuer,
	EnvStoreDriver, EnvRedisURL, EnvLogLevel, EnvLogFormat, EnvDemoUser, EnvDemoPass,
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "users", c.Tables.UsersTable)
	assert.Equal(t, 10*time.Second, c.Tables.Timeout)
	assert.Empty(t, c.Tables.AccountName)
	assert.Equal(t, "sqlite", c.Store.Driver)
	assert.Equal(t, "rentalauth.db", c.Store.SQLitePath)
	assert.Equal(t, "table", c.Auth.Checker)
	assert.Empty(t, c.Auth.DemoUser)
	assert.Empty(t, c.Auth.DemoPassword)
	assert.Equal(t, "authToken", c.Auth.TokenKey)
	assert.Equal(t, 30*time.Second, c.Auth.WatchInterval)
	assert.Equal(t, "text", c.Log.Format)
	assert.Equal(t, "info", c.Log.Level)

	require.NoError(t, c.Validate(), "defaults must validate")
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	unsetEnv(t, append(allEnv, "RENTALAUTH_CONFIG")...)

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	unsetEnv(t, append(allEnv, "RENTALAUTH_CONFIG")...)

	path := writeTempJSON(t, "", "", map[string]any{
		"tables": map[string]any{"account_name": "from-json", "users_table": "json_users"},
		"log":    map[string]any{"level": "debug"},
	})
	t.Setenv(EnvAccountName, "from-env")
	t.Setenv(EnvLogLevel, "warn")
	os.Args = []string{"testbin", "-c", path, "-l", "error"}

	cfg := LoadConfig()

	assert.Equal(t, "from-env", cfg.Tables.AccountName, "env beats json")
	assert.Equal(t, "json_users", cfg.Tables.UsersTable, "json beats defaults")
	assert.Equal(t, "error", cfg.Log.Level, "flags beat env")
}
