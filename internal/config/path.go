// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a leading ~ against the user's home directory and
// expands $VAR environment references. Paths with no shorthand pass
// through unchanged; if the home directory cannot be determined the
// tilde is left as-is rather than guessed.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}

	if rest, ok := strings.CutPrefix(path, "~"); ok && (rest == "" || rest[0] == '/') {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, rest)
		}
	}

	return os.ExpandEnv(path)
}

// DefaultDatabasePath is where the document-session store lives when no
// path is configured.
func DefaultDatabasePath() string {
	return ExpandPath("~/.local/share/coaflow/coaflow.db")
}
