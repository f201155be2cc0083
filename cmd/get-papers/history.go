// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/get-papers/internal/archive"
	"github.com/pdiddy/get-papers/internal/output"
	"github.com/pdiddy/get-papers/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived runs or re-emit the records of one run",
	Long: `History reads the SQLite archive named by --db (or archive.path in the
config file). Without --run it lists past runs, newest first. With --run it
writes that run's records in the chosen --format, to --file or standard output.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	if cfg.Archive.Path == "" {
		return fmt.Errorf("no archive configured: set --db or archive.path")
	}
	store, err := archive.Open(cfg.Archive.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, _ := cmd.Flags().GetString("run")
	if runID == "" {
		runs, err := store.Runs(cmd.Context())
		if err != nil {
			return err
		}
		log.Debugw("listing runs", "count", len(runs))
		return formatRuns(cmd.OutOrStdout(), cfg.Output.Format, runs)
	}

	records, err := store.Records(cmd.Context(), runID)
	if err != nil {
		return err
	}
	log.Debugw("re-emitting run", "run_id", runID, "count", len(records))

	w, closeOut, err := output.Open(cfg.Output.File, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := output.Write(w, cfg.Output.Format, records); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

// formatRuns prints runs as a table for csv (the default) or as structured
// JSON/YAML.
func formatRuns(w io.Writer, format types.OutputFormat, runs []archive.Run) error {
	switch format {
	case types.FormatJSON:
		if runs == nil {
			runs = []archive.Run{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	case types.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(runs); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No archived runs.")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-20s  %7s  %s\n", "Run", "Created", "Records", "Query")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, r := range runs {
		query := r.Query
		if len(query) > 30 {
			query = query[:27] + "..."
		}
		fmt.Fprintf(w, "%-36s  %-20s  %7d  %s\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.RecordCount, query)
	}
	fmt.Fprintf(w, "\n%d runs\n", len(runs))
	return nil
}

func init() {
	historyCmd.Flags().String("run", "", "run ID whose records to re-emit")
	historyCmd.Flags().StringP("file", "f", "", "filename to save the records (default: standard output)")
	historyCmd.Flags().String("format", "csv", "output format: csv, json or yaml")

	rootCmd.AddCommand(historyCmd)
}
