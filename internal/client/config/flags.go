package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/rentalauth/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Only the flags listed in the package doc are considered; os.Args is
// filtered with flagx.FilterArgs so -c/-config and unknown flags do not
// break parsing. Panics on a malformed flag.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-n", "-k", "-e", "-t", "-s", "-d", "-r", "-m", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Tables.AccountName, "n", cfg.Tables.AccountName, "table storage account name")
	fs.StringVar(&cfg.Tables.AccountKey, "k", cfg.Tables.AccountKey, "table storage account key")
	fs.StringVar(&cfg.Tables.Endpoint, "e", cfg.Tables.Endpoint, "table service endpoint")
	fs.StringVar(&cfg.Tables.UsersTable, "t", cfg.Tables.UsersTable, "users table name")
	fs.StringVar(&cfg.Store.Driver, "s", cfg.Store.Driver, "token store driver (sqlite, redis, memory)")
	fs.StringVar(&cfg.Store.SQLitePath, "d", cfg.Store.SQLitePath, "sqlite database path")
	fs.StringVar(&cfg.Store.RedisURL, "r", cfg.Store.RedisURL, "redis URL")
	fs.StringVar(&cfg.Auth.Checker, "m", cfg.Auth.Checker, "credential checker (table, demo)")
	fs.StringVar(&cfg.Log.Level, "l", cfg.Log.Level, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
