package tables

import "errors"

// ErrNotConfigured is returned by the first operation when the account name
// or account key is missing.
var ErrNotConfigured = errors.New("table storage account name or key is not configured")
