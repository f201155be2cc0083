// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads get-papers settings from defaults, an optional YAML
// file, a .env file and GET_PAPERS_* environment variables, in increasing
// order of precedence. Command-line flags are applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pdiddy/get-papers/internal/pubmed"
	"github.com/pdiddy/get-papers/pkg/types"
)

const (
	// EnvPrefix prefixes every environment override, e.g. GET_PAPERS_PUBMED_API_KEY.
	EnvPrefix = "GET_PAPERS"

	configName = "get-papers"

	DefaultTimeout    = 60 * time.Second
	DefaultUserAgent  = "get-papers/0.1"
	DefaultMaxResults = 100
	DefaultMaxRetries = 5
)

// Options controls where Load looks for configuration.
type Options struct {
	// File is an explicit config file. When empty, ./get-papers.yaml and
	// ~/.config/get-papers/get-papers.yaml are searched.
	File string

	// EnvFile is a dotenv file loaded before reading the environment.
	// Missing files are ignored. Defaults to ".env".
	EnvFile string
}

// Loaded is the resolved configuration and the config file used, if any.
type Loaded struct {
	Config types.Config
	File   string
}

// Load resolves the configuration. Values already present in the process
// environment win over those in the dotenv file.
func Load(opts Options) (Loaded, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Loaded{}, fmt.Errorf("loading %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return Loaded{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Loaded{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Loaded{}, err
	}

	return Loaded{Config: cfg, File: v.ConfigFileUsed()}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pubmed.base_url", pubmed.DefaultBaseURL)
	v.SetDefault("pubmed.database", "pubmed")
	v.SetDefault("pubmed.timeout", DefaultTimeout)
	v.SetDefault("pubmed.user_agent", DefaultUserAgent)
	v.SetDefault("pubmed.max_results", DefaultMaxResults)
	v.SetDefault("pubmed.max_retries", DefaultMaxRetries)
	v.SetDefault("pubmed.tool", configName)
	v.SetDefault("pubmed.email", "")
	v.SetDefault("pubmed.api_key", "")
	v.SetDefault("output.file", "")
	v.SetDefault("output.format", string(types.FormatCSV))
	v.SetDefault("archive.path", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.encoding", "console")
}

// Validate rejects settings that would make a run fail later in a less
// obvious way.
func Validate(cfg types.Config) error {
	if cfg.PubMed.MaxResults <= 0 {
		return fmt.Errorf("invalid pubmed.max_results %d (must be positive)", cfg.PubMed.MaxResults)
	}
	if cfg.PubMed.MaxRetries < 0 {
		return fmt.Errorf("invalid pubmed.max_retries %d (must not be negative)", cfg.PubMed.MaxRetries)
	}
	if cfg.PubMed.Timeout <= 0 {
		return fmt.Errorf("invalid pubmed.timeout %s (must be positive)", cfg.PubMed.Timeout)
	}
	if strings.TrimSpace(cfg.PubMed.BaseURL) == "" {
		return fmt.Errorf("pubmed.base_url is empty")
	}
	switch cfg.Output.Format {
	case types.FormatCSV, types.FormatJSON, types.FormatYAML:
	default:
		return fmt.Errorf("invalid output.format %q: use csv, json or yaml", cfg.Output.Format)
	}
	return nil
}
