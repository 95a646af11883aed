// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: bing-api-key.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultDir is the secrets directory relative to the working directory.
const DefaultDir = ".secrets/"

// SearchAPIKey names the file holding the image search subscription key.
const SearchAPIKey = "bing-api-key"

// Load reads every regular, non-hidden file in dir and returns a map of
// filename to trimmed contents; empty values are dropped. A missing
// directory yields an empty map. A file that cannot be read is logged as a
// warning on log (the standard logger when nil) and skipped.
func Load(dir string, log logrus.FieldLogger) (map[string]string, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	found := make(map[string]string, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.WithError(err).WithField("secret", name).Warn("could not read secret")
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			found[name] = v
		}
	}
	return found, nil
}

// Resolve returns configured when it is non-empty, otherwise the secret
// stored under key.
func Resolve(s map[string]string, key, configured string) string {
	if configured != "" {
		return configured
	}
	return s[key]
}
