// Package filex holds filesystem helpers for local database files.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureParentDir creates the directory that will hold path, if missing.
// A bare file name needs nothing.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// SQLiteFilePath reports the on-disk path of a SQLite DSN. In-memory
// databases and file: URIs return false.
func SQLiteFilePath(dsn string) (string, bool) {
	if dsn == "" || dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return "", false
	}
	path, _, _ := strings.Cut(dsn, "?")
	return path, path != ""
}
