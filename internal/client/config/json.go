package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/rentalauth/internal/flagx"
	"github.com/dmitrijs2005/rentalauth/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "empty" so a partial file only touches
// the keys it names.
type JsonConfig struct {
	Tables struct {
		AccountName *string         `json:"account_name"`
		AccountKey  *string         `json:"account_key"`
		Endpoint    *string         `json:"endpoint"`
		UsersTable  *string         `json:"users_table"`
		Timeout     *timex.Duration `json:"timeout"`
	} `json:"tables"`
	Store struct {
		Driver     *string         `json:"driver"`
		SQLitePath *string         `json:"sqlite_path"`
		RedisURL   *string         `json:"redis_url"`
		KeyPrefix  *string         `json:"key_prefix"`
		TTL        *timex.Duration `json:"ttl"`
	} `json:"store"`
	Auth struct {
		Checker      *string `json:"checker"`
		DemoUser     *string `json:"demo_user"`
		DemoPassword *string `json:"demo_password"`
		TokenKey     *string `json:"token_key"`
		TokenSecret  *string `json:"token_secret"`
		TokenIssuer  *string `json:"token_issuer"`

		WatchInterval *timex.Duration `json:"watch_interval"`
	} `json:"auth"`
	Log struct {
		Format *string `json:"format"`
		Level  *string `json:"level"`
	} `json:"log"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The path comes from flagx.ConfigPath; when it is empty nothing is loaded.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.Tables.AccountName, jc.Tables.AccountName)
	setString(&cfg.Tables.AccountKey, jc.Tables.AccountKey)
	setString(&cfg.Tables.Endpoint, jc.Tables.Endpoint)
	setString(&cfg.Tables.UsersTable, jc.Tables.UsersTable)
	setDuration(&cfg.Tables.Timeout, jc.Tables.Timeout)

	setString(&cfg.Store.Driver, jc.Store.Driver)
	setString(&cfg.Store.SQLitePath, jc.Store.SQLitePath)
	setString(&cfg.Store.RedisURL, jc.Store.RedisURL)
	setString(&cfg.Store.KeyPrefix, jc.Store.KeyPrefix)
	setDuration(&cfg.Store.TTL, jc.Store.TTL)

	setString(&cfg.Auth.Checker, jc.Auth.Checker)
	setString(&cfg.Auth.DemoUser, jc.Auth.DemoUser)
	setString(&cfg.Auth.DemoPassword, jc.Auth.DemoPassword)
	setString(&cfg.Auth.TokenKey, jc.Auth.TokenKey)
	setString(&cfg.Auth.TokenSecret, jc.Auth.TokenSecret)
	setString(&cfg.Auth.TokenIssuer, jc.Auth.TokenIssuer)
	setDuration(&cfg.Auth.WatchInterval, jc.Auth.WatchInterval)

	setString(&cfg.Log.Format, jc.Log.Format)
	setString(&cfg.Log.Level, jc.Log.Level)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
