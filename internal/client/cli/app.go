package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/rentalauth/internal/client/auth"
	"github.com/dmitrijs2005/rentalauth/internal/client/config"
	"github.com/dmitrijs2005/rentalauth/internal/client/storage"
	"github.com/dmitrijs2005/rentalauth/internal/client/tables"
	"github.com/dmitrijs2005/rentalauth/internal/client/token"
	"github.com/dmitrijs2005/rentalauth/internal/logging"
)

// tableClient is the part of tables.Client the CLI needs.
type tableClient interface {
	auth.EntityGetter
	QueryEntities(ctx context.Context, table, filter string) tables.QueryResult
}

type App struct {
	config *config.Config
	log    logging.Logger
	store  storage.StoreCloser
	tables tableClient
	auth   *auth.Manager
	reader *bufio.Reader
	out    io.Writer

	unsubscribe func()
}

// NewApp builds the client session described by c: logger, token store,
// table client, credential checker and the auth manager.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	log, err := logging.New(c.Log.Format, c.Log.Level, os.Stderr)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(ctx, storage.Options{
		Driver:     c.Store.Driver,
		SQLitePath: c.Store.SQLitePath,
		RedisURL:   c.Store.RedisURL,
		KeyPrefix:  c.Store.KeyPrefix,
		TTL:        c.Store.TTL,
	})
	if err != nil {
		log.Error(ctx, "error opening token store", "driver", c.Store.Driver, "error", err)
		return nil, err
	}

	tc := tables.NewClient(
		tables.Config{
			AccountName: c.Tables.AccountName,
			AccountKey:  c.Tables.AccountKey,
			Endpoint:    c.Tables.Endpoint,
		},
		tables.WithLogger(log.With("component", "tables")),
		tables.WithHTTPClient(&http.Client{Timeout: c.Tables.Timeout}),
	)

	checker, err := newChecker(c, tc)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	opts := []auth.Option{
		auth.WithLogger(log.With("component", "auth")),
		auth.WithTokenKey(c.Auth.TokenKey),
	}
	if c.Auth.TokenSecret != "" {
		opts = append(opts, auth.WithVerifier(token.Verifier{
			Key:    []byte(c.Auth.TokenSecret),
			Issuer: c.Auth.TokenIssuer,
		}))
	}

	return newApp(c, log, store, tc, auth.NewManager(store, checker, opts...), os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, log logging.Logger, store storage.StoreCloser, tc tableClient,
	m *auth.Manager, in io.Reader, out io.Writer) *App {
	a := &App{
		config: c,
		log:    log,
		store:  store,
		tables: tc,
		auth:   m,
		reader: bufio.NewReader(in),
		out:    out,
	}
	a.unsubscribe = m.Subscribe(a.onStateChange)
	return a
}

func newChecker(c *config.Config, g auth.EntityGetter) (auth.CredentialChecker, error) {
	switch c.Auth.Checker {
	case "table":
		return auth.NewTableChecker(g, c.Tables.UsersTable), nil
	case "demo":
		return auth.NewDemoChecker(c.Auth.DemoUser, c.Auth.DemoPassword), nil
	default:
		return nil, fmt.Errorf("unknown credential checker %q", c.Auth.Checker)
	}
}

// onStateChange is the manager subscriber standing in for a UI refresh.
func (a *App) onStateChange(p auth.Principal) {
	if p.IsAuthenticated() {
		fmt.Fprintf(a.out, "* signed in as %s\n", p)
		return
	}
	fmt.Fprintln(a.out, "* signed out")
}

// Run starts the session watcher and the REPL, and releases resources when
// the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.config.Auth.WatchInterval > 0 {
		go a.StartSessionWatcher(ctx, a.config.Auth.WatchInterval)
	}

	fmt.Fprintln(a.out, "rentalauth CLI (type 'help' for commands)")
	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}

// Close unsubscribes from the manager and closes the token store.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Error(context.Background(), "error closing token store", "error", err)
		}
	}
	if s, ok := a.log.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	p, err := a.auth.State(ctx)
	return err == nil && p.IsAuthenticated()
}

func (a *App) getStatus(ctx context.Context) string {
	p, err := a.auth.State(ctx)
	if err != nil || !p.IsAuthenticated() {
		return ""
	}
	return fmt.Sprintf("(%s)", p)
}

// StartSessionWatcher re-derives the session state every interval and
// reports when a session ends on its own, i.e. its token expired.
func (a *App) StartSessionWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	wasIn := a.isLoggedIn(ctx)
	for {
		select {
		case <-ticker.C:
			wasIn = a.checkSession(ctx, wasIn)

		case <-ctx.Done():
			return
		}
	}
}

// checkSession reports a session that was live and no longer is, and
// returns the current liveness.
func (a *App) checkSession(ctx context.Context, wasIn bool) bool {
	isIn := a.isLoggedIn(ctx)
	if wasIn && !isIn {
		a.log.Info(ctx, "session ended")
		fmt.Fprintln(a.out, "* session expired, please log in again")
	}
	return isIn
}
