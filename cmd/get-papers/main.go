// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the get-papers CLI.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/get-papers/internal/archive"
	"github.com/pdiddy/get-papers/internal/config"
	"github.com/pdiddy/get-papers/internal/logging"
	"github.com/pdiddy/get-papers/internal/output"
	"github.com/pdiddy/get-papers/internal/pipeline"
	"github.com/pdiddy/get-papers/internal/pubmed"
	"github.com/pdiddy/get-papers/internal/secrets"
	"github.com/pdiddy/get-papers/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const secretsDir = ".secrets/"

var (
	// cfg is resolved once per invocation in PersistentPreRunE.
	cfg types.Config
	log = logging.Nop()
)

// rootCmd fetches, filters and writes papers for a single query.
var rootCmd = &cobra.Command{
	Use:   "get-papers <query>",
	Short: "Find PubMed papers with authors from pharmaceutical or biotech companies",
	Long: `get-papers searches PubMed for the given query, fetches the matching
records, and keeps papers with at least one author whose affiliation is not
academic. Each kept paper becomes one CSV row listing its non-academic authors,
the pharma/biotech companies they belong to, and a corresponding email.

The query uses PubMed syntax, e.g. "cancer immunotherapy AND 2023[dp]".
Output goes to standard output unless --file is given.`,
	Args:              cobra.ExactArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runGetPapers,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./get-papers.yaml or ~/.config/get-papers/get-papers.yaml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "print debug information")
	rootCmd.PersistentFlags().String("db", "", "SQLite archive of past runs (disabled when empty)")

	rootCmd.Flags().StringP("file", "f", "", "filename to save the results (default: standard output)")
	rootCmd.Flags().Int("max-results", config.DefaultMaxResults, "maximum number of papers to fetch")
	rootCmd.Flags().String("format", "csv", "output format: csv, json or yaml")
}

// setup resolves configuration, applies flag overrides, builds the logger
// and fills NCBI credentials from .secrets/.
func setup(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	loaded, err := config.Load(config.Options{File: cfgFile})
	if err != nil {
		return err
	}
	cfg = loaded.Config

	if err := applyFlags(cmd, &cfg); err != nil {
		return err
	}

	log = logging.New(cfg.Log.Level, cfg.Log.Encoding, cmd.ErrOrStderr())
	log.Debugw("debug mode enabled")
	if loaded.File != "" {
		log.Debugw("using config file", "path", loaded.File)
	}

	s, err := secrets.Load(secretsDir, log)
	if err != nil {
		return err
	}
	if len(s) > 0 {
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		log.Debugw("loaded secrets", "keys", keys)
	}
	secrets.ApplyPubMed(&cfg.PubMed, s)
	return nil
}

// applyFlags overrides c with every flag the user set explicitly.
func applyFlags(cmd *cobra.Command, c *types.Config) error {
	flags := cmd.Flags()
	if debug, _ := flags.GetBool("debug"); debug {
		c.Log.Level = "debug"
	}
	if flags.Changed("db") {
		c.Archive.Path, _ = flags.GetString("db")
	}
	if flags.Changed("file") {
		c.Output.File, _ = flags.GetString("file")
	}
	if flags.Changed("max-results") {
		c.PubMed.MaxResults, _ = flags.GetInt("max-results")
	}
	if flags.Changed("format") {
		s, _ := flags.GetString("format")
		f, err := output.ParseFormat(s)
		if err != nil {
			return err
		}
		c.Output.Format = f
	}
	return config.Validate(*c)
}

func runGetPapers(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var arch pipeline.Archiver
	if cfg.Archive.Path != "" {
		store, err := archive.Open(cfg.Archive.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		arch = store
	}

	summary, err := pipeline.Run(ctx, pubmed.NewClient(cfg.PubMed), arch, pipeline.Options{
		Query:      args[0],
		MaxResults: cfg.PubMed.MaxResults,
		Output:     cfg.Output,
		Stdout:     cmd.OutOrStdout(),
	}, log)
	if err != nil {
		return err
	}

	log.Infow("done", "fetched", summary.Fetched, "written", summary.Written)
	if summary.RunID != "" && cfg.Output.File != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Archived run %s\n", summary.RunID)
	}
	return nil
}

func main() {
	err := rootCmd.Execute()
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}
