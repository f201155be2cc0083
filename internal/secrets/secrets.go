// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads NCBI credentials kept outside the config file, one
// plain-text file per credential, e.g. .secrets/ncbi-api-key.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/get-papers/pkg/types"
)

const (
	KeyNCBIAPIKey = "ncbi-api-key"
	KeyNCBIEmail  = "ncbi-email"
)

// Keys lists the credential files Load looks for.
var Keys = []string{KeyNCBIAPIKey, KeyNCBIEmail}

// Load returns the trimmed contents of each file in Keys found in dir.
// Absent files, empty files and an absent dir are skipped silently;
// unreadable files are logged and skipped. dir naming a regular file is an error.
func Load(dir string, log *zap.SugaredLogger) (map[string]string, error) {
	found := make(map[string]string)

	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return found, nil
	case err != nil:
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	case !info.IsDir():
		return nil, fmt.Errorf("secrets path %s is not a directory", dir)
	}

	for _, key := range Keys {
		data, err := os.ReadFile(filepath.Join(dir, key))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			log.Warnw("could not read secret", "name", key, "error", err)
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			found[key] = v
		}
	}
	return found, nil
}

// ApplyPubMed fills the API key and contact email of cfg from s where cfg
// leaves them empty. Explicit configuration always wins.
func ApplyPubMed(cfg *types.PubMedConfig, s map[string]string) {
	if cfg.APIKey == "" {
		cfg.APIKey = s[KeyNCBIAPIKey]
	}
	if cfg.Email == "" {
		cfg.Email = s[KeyNCBIEmail]
	}
}
