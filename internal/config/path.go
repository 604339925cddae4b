// Package config loads runtime configuration: file paths, the
// database location, and LLM provider settings.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a ~ prefix to the user's home directory and
// expands $VAR style environment variables, so paths from config
// files and flags can use either form.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
