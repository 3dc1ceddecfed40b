// Package filex holds small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureParentDir creates the directory that will hold file, if needed,
// and returns it. In-memory and URI-style SQLite DSNs are left alone and
// yield "".
func EnsureParentDir(file string) (string, error) {
	if file == "" || file == ":memory:" || strings.HasPrefix(file, "file:") {
		return "", nil
	}

	dir := filepath.Dir(file)
	if dir == "." {
		return dir, nil
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
