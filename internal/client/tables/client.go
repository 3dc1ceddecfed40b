package tables

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/dmitrijs2005/rentalauth/internal/logging"
)

// Config identifies the storage account. Endpoint overrides the default
// https://{account}.table.core.windows.net (emulators, tests).
type Config struct {
	AccountName string
	AccountKey  string
	Endpoint    string
}

// ServiceURL returns the table service endpoint for the account.
func (c Config) ServiceURL() string {
	if c.Endpoint != "" {
		return strings.TrimRight(c.Endpoint, "/")
	}
	return fmt.Sprintf("https://%s.table.core.windows.net", c.AccountName)
}

func (c Config) configured() bool {
	return strings.TrimSpace(c.AccountName) != "" && strings.TrimSpace(c.AccountKey) != ""
}

type Option func(*Client)

// WithLogger sets the logger used for query failures.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithHTTPClient sets the HTTP client requests go through; its Timeout is
// the only request deadline besides the caller's context.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// withConnector replaces the SDK connection, for tests.
func withConnector(fn func(Config) (serviceAPI, error)) Option {
	return func(c *Client) { c.connect = fn }
}

// Client is a lazily connected table store client. It is safe for
// concurrent use.
type Client struct {
	cfg        Config
	log        logging.Logger
	httpClient *http.Client
	connect    func(Config) (serviceAPI, error)

	mu  sync.Mutex
	svc serviceAPI
}

// NewClient returns a Client for cfg. No connection is made and cfg is not
// validated until the first operation.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{cfg: cfg, log: logging.Nop{}}
	for _, o := range opts {
		o(c)
	}
	if c.connect == nil {
		c.connect = func(cfg Config) (serviceAPI, error) {
			return connectAzure(cfg, c.httpClient)
		}
	}
	return c
}

func (c *Client) table(name string) (tableAPI, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.svc == nil {
		svc, err := c.connect(c.cfg)
		if err != nil {
			return nil, err
		}
		c.svc = svc
	}
	return c.svc.table(name), nil
}

// GetEntity looks up (partitionKey, rowKey) in table and decodes the entity
// into out. found is false, with a nil error, when the entity does not exist.
func (c *Client) GetEntity(ctx context.Context, table, partitionKey, rowKey string, out any) (bool, error) {
	t, err := c.table(table)
	if err != nil {
		return false, err
	}

	raw, err := t.get(ctx, partitionKey, rowKey)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("get entity %s(%s): %w", table, partitionKey, err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode entity %s(%s): %w", table, partitionKey, err)
	}
	return true, nil
}

// QueryEntities returns every entity of table matching the OData filter
// (all entities when filter is empty), in service order. Failures are
// logged and carried in the result.
func (c *Client) QueryEntities(ctx context.Context, table, filter string) QueryResult {
	t, err := c.table(table)
	if err != nil {
		return QueryResult{Err: err}
	}

	rows, err := t.list(ctx, filter)
	if err != nil {
		c.log.Warn(ctx, "query error", "table", table, "filter", filter, "error", err)
		return QueryResult{Err: fmt.Errorf("query %s: %w", table, err)}
	}
	return QueryResult{Rows: rows}
}

// Get is the typed form of GetEntity. It returns nil when absent.
func Get[T any](ctx context.Context, c *Client, table, partitionKey, rowKey string) (*T, error) {
	var v T
	found, err := c.GetEntity(ctx, table, partitionKey, rowKey, &v)
	if err != nil || !found {
		return nil, err
	}
	return &v, nil
}

// Query is the typed form of QueryEntities.
func Query[T any](ctx context.Context, c *Client, table, filter string) ([]T, error) {
	return Decode[T](c.QueryEntities(ctx, table, filter))
}
