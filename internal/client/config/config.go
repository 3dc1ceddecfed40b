package config

import "time"

// Config holds runtime settings for the rentalauth CLI.
type Config struct {
	Tables TablesConfig
	Store  StoreConfig
	Auth   AuthConfig
	Log    LogConfig
}

// TablesConfig points at the table service holding the users table.
// Missing credentials are not a validation error: the table client reports
// them on first use.
type TablesConfig struct {
	AccountName string
	AccountKey  string
	Endpoint    string        `validate:"omitempty,url"`
	UsersTable  string        `validate:"required"`
	Timeout     time.Duration `validate:"gt=0"`
}

// StoreConfig selects where the session token is kept.
type StoreConfig struct {
	Driver     string `validate:"oneof=sqlite redis memory"`
	SQLitePath string `validate:"required_if=Driver sqlite"`
	RedisURL   string `validate:"required_if=Driver redis"`
	KeyPrefix  string
	TTL        time.Duration `validate:"gte=0"`
}

// AuthConfig configures credential checking and token handling. The demo
// account has no default and must be configured when Checker is "demo".
// A non-empty TokenSecret turns on HMAC signature verification.
type AuthConfig struct {
	Checker      string `validate:"oneof=table demo"`
	DemoUser     string `validate:"required_if=Checker demo"`
	DemoPassword string `validate:"required_if=Checker demo"`
	TokenKey     string `validate:"required"`
	TokenSecret  string
	TokenIssuer  string

	// WatchInterval is how often the CLI re-derives the session state to
	// report expiry; zero disables the watcher.
	WatchInterval time.Duration `validate:"gte=0"`
}

type LogConfig struct {
	Format string `validate:"oneof=text json zap"`
	Level  string `validate:"oneof=debug info warn error"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Tables.UsersTable = "users"
	c.Tables.Timeout = 10 * time.Second

	c.Store.Driver = "sqlite"
	c.Store.SQLitePath = "rentalauth.db"
	c.Store.KeyPrefix = "rentalauth:"

	c.Auth.Checker = "table"
	c.Auth.TokenKey = "authToken"
	c.Auth.WatchInterval = 30 * time.Second

	c.Log.Format = "text"
	c.Log.Level = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones. The result is not validated.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg, DotEnvFile)
	parseFlags(cfg)
	return cfg
}
