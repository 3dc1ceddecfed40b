package tables

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
)

// serviceAPI and tableAPI are the narrow slices of the SDK the client uses.
type serviceAPI interface {
	table(name string) tableAPI
}

type tableAPI interface {
	get(ctx context.Context, partitionKey, rowKey string) ([]byte, error)
	list(ctx context.Context, filter string) ([]json.RawMessage, error)
}

type azureService struct {
	svc *aztables.ServiceClient
}

func (a azureService) table(name string) tableAPI {
	return azureTable{c: a.svc.NewClient(name)}
}

type azureTable struct {
	c *aztables.Client
}

func (t azureTable) get(ctx context.Context, partitionKey, rowKey string) ([]byte, error) {
	resp, err := t.c.GetEntity(ctx, partitionKey, rowKey, nil)
	if err != nil {
		return nil, err
	}
	return resp.Value, nil
}

func (t azureTable) list(ctx context.Context, filter string) ([]json.RawMessage, error) {
	opts := &aztables.ListEntitiesOptions{}
	if filter != "" {
		opts.Filter = to.Ptr(filter)
	}

	var rows []json.RawMessage
	pager := t.c.NewListEntitiesPager(opts)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range page.Entities {
			rows = append(rows, json.RawMessage(e))
		}
	}
	return rows, nil
}

// connectAzure builds a shared-key service client. Retries are disabled.
func connectAzure(cfg Config, hc *http.Client) (serviceAPI, error) {
	if !cfg.configured() {
		return nil, ErrNotConfigured
	}

	cred, err := aztables.NewSharedKeyCredential(cfg.AccountName, cfg.AccountKey)
	if err != nil {
		return nil, fmt.Errorf("shared key credential: %w", err)
	}

	opts := &aztables.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{MaxRetries: -1},
		},
	}
	if hc != nil {
		opts.Transport = hc
	}

	svc, err := aztables.NewServiceClientWithSharedKey(cfg.ServiceURL(), cred, opts)
	if err != nil {
		return nil, fmt.Errorf("table service client: %w", err)
	}
	return azureService{svc: svc}, nil
}

// StatusCode returns the HTTP status carried by a service error, or 0.
func StatusCode(err error) int {
	var re *azcore.ResponseError
	if errors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}

func isNotFound(err error) bool {
	var re *azcore.ResponseError
	return errors.As(err, &re) && re.StatusCode == http.StatusNotFound
}
