package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DotEnvFile is the .env file LoadConfig reads from the working directory.
const DotEnvFile = ".env"

// Environment variables read by parseEnv.
const (
	EnvAccountName = "AZURE_STORAGE_ACCOUNT_NAME"
	EnvAccountKey  = "AZURE_STORAGE_ACCOUNT_KEY"
	EnvEndpoint    = "AZURE_TABLES_ENDPOINT"
	EnvTokenSecret = "AUTH_TOKEN_SECRET"
	EnvTokenIssuer = "AUTH_TOKEN_ISSUER"
	EnvStoreDriver = "RENTALAUTH_STORE_DRIVER"
	EnvRedisURL    = "RENTALAUTH_REDIS_URL"
	EnvLogLevel    = "RENTALAUTH_LOG_LEVEL"
	EnvLogFormat   = "RENTALAUTH_LOG_FORMAT"
	EnvDemoUser    = "RENTALAUTH_DEMO_USER"
	EnvDemoPass    = "RENTALAUTH_DEMO_PASSWORD"
)

// parseEnv overlays Config with environment variables. Entries from the
// given .env files fill in variables missing from the process environment;
// the process environment itself is not modified. A missing .env file is
// not an error, a malformed one panics.
func parseEnv(cfg *Config, dotenvFiles ...string) {
	fileVars := map[string]string{}
	for _, f := range dotenvFiles {
		vars, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			panic(err)
		}
		for k, v := range vars {
			if _, seen := fileVars[k]; !seen {
				fileVars[k] = v
			}
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}

	for key, dst := range map[string]*string{
		EnvAccountName: &cfg.Tables.AccountName,
		EnvAccountKey:  &cfg.Tables.AccountKey,
		EnvEndpoint:    &cfg.Tables.Endpoint,
		EnvTokenSecret: &cfg.Auth.TokenSecret,
		EnvTokenIssuer: &cfg.Auth.TokenIssuer,
		EnvStoreDriver: &cfg.Store.Driver,
		EnvRedisURL:    &cfg.Store.RedisURL,
		EnvLogLevel:    &cfg.Log.Level,
		EnvLogFormat:   &cfg.Log.Format,
		EnvDemoUser:    &cfg.Auth.DemoUser,
		EnvDemoPass:    &cfg.Auth.DemoPassword,
	} {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
}
