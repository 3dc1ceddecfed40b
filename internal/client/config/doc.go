// Package config loads runtime configuration for the rentalauth CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c / -config or
//     $RENTALAUTH_CONFIG.
//  3. A .env file in the working directory and the process environment
//     (see parseEnv); real environment variables win over .env entries.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-n string   table storage account name
//	-k string   table storage account key
//	-e string   table service endpoint (emulator, tests)
//	-t string   users table name
//	-s string   token store driver: sqlite, redis or memory
//	-d string   sqlite database path
//	-r string   redis URL
//	-m string   credential checker: table or demo
//	-l string   log level
//
// Environment
//
//	AZURE_STORAGE_ACCOUNT_NAME, AZURE_STORAGE_ACCOUNT_KEY,
//	AZURE_TABLES_ENDPOINT, AUTH_TOKEN_SECRET, AUTH_TOKEN_ISSUER,
//	RENTALAUTH_STORE_DRIVER, RENTALAUTH_REDIS_URL, RENTALAUTH_LOG_LEVEL,
//	RENTALAUTH_LOG_FORMAT, RENTALAUTH_DEMO_USER, RENTALAUTH_DEMO_PASSWORD
//
// # JSON schema
//
// Durations use timex.Duration, so "3s" and integer nanoseconds both work.
// Missing keys keep their current value.
//
//	{
//	  "tables":  {"account_name": "rentals", "endpoint": "", "users_table": "users", "timeout": "10s"},
//	  "store":   {"driver": "sqlite", "sqlite_path": "rentalauth.db", "ttl": "0s"},
//	  "auth":    {"checker": "table", "token_key": "authToken", "watch_interval": "30s"},
//	  "log":     {"format": "text", "level": "info"}
//	}
//
// The account key and token secret may be put in the JSON file too, but the
// environment is the intended place for them.
package config
