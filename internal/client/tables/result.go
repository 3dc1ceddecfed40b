package tables

import (
	"encoding/json"
	"fmt"
)

// QueryResult is the outcome of QueryEntities: either Rows (possibly empty)
// or Err, never both.
type QueryResult struct {
	Rows []json.RawMessage
	Err  error
}

// Failed reports whether the query did not complete.
func (r QueryResult) Failed() bool { return r.Err != nil }

// Empty reports a successful query that matched nothing.
func (r QueryResult) Empty() bool { return r.Err == nil && len(r.Rows) == 0 }

// Decode unmarshals each row of r into T.
func Decode[T any](r QueryResult) ([]T, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]T, 0, len(r.Rows))
	for i, row := range r.Rows {
		var v T
		if err := json.Unmarshal(row, &v); err != nil {
			return nil, fmt.Errorf("decode row %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
