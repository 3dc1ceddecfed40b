// Package tables adapts a remote partition/row-keyed table service (Azure
// Table storage) into two operations:
//
//   - GetEntity: point lookup by partition and row key. A 404 from the
//     service means "absent" and is not an error; other failures are
//     returned wrapped.
//   - QueryEntities: filtered scan materialized into a QueryResult, which
//     carries either the rows or the failure so callers can tell "no rows"
//     from "service unreachable".
//
// The endpoint handle is built lazily on first use. A missing account name
// or key surfaces as ErrNotConfigured from that first call, not from
// NewClient. Requests are not retried.
package tables
