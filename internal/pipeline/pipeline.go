// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the three get-papers stages in order: fetch papers
// from PubMed, filter them to records with non-academic authors, and write
// the records out. A run optionally ends by archiving its records.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/get-papers/internal/filter"
	"github.com/pdiddy/get-papers/internal/output"
	"github.com/pdiddy/get-papers/pkg/types"
)

// Fetcher retrieves the papers matching a query.
type Fetcher interface {
	FetchPapers(ctx context.Context, query string, maxResults int) ([]types.Paper, error)
}

// Archiver records a finished run.
type Archiver interface {
	SaveRun(ctx context.Context, query string, records []types.FilteredRecord) (string, error)
}

// Options configures one run.
type Options struct {
	Query      string
	MaxResults int
	Output     types.OutputConfig

	// Stdout receives output when Output.File is empty.
	Stdout io.Writer
}

// Summary reports what a run did.
type Summary struct {
	Fetched int
	Written int
	RunID   string
}

// Run executes fetch, filter and write, then saves the run to archive when
// archive is non-nil.
func Run(ctx context.Context, fetcher Fetcher, archive Archiver, opts Options, log *zap.SugaredLogger) (Summary, error) {
	var summary Summary

	log.Debugw("fetching papers", "query", opts.Query, "max_results", opts.MaxResults)
	papers, err := fetcher.FetchPapers(ctx, opts.Query, opts.MaxResults)
	if err != nil {
		return summary, fmt.Errorf("fetching papers: %w", err)
	}
	summary.Fetched = len(papers)
	log.Debugw("found papers", "count", len(papers))

	records, err := filter.Filter(papers)
	if err != nil {
		return summary, fmt.Errorf("filtering papers: %w", err)
	}
	log.Debugw("filtered papers with non-academic authors", "count", len(records))

	w, closeOut, err := output.Open(opts.Output.File, opts.Stdout)
	if err != nil {
		return summary, err
	}
	if err := output.Write(w, opts.Output.Format, records); err != nil {
		closeOut()
		return summary, fmt.Errorf("writing output: %w", err)
	}
	if err := closeOut(); err != nil {
		return summary, fmt.Errorf("closing output: %w", err)
	}
	summary.Written = len(records)
	if opts.Output.File != "" {
		log.Debugw("results written", "file", opts.Output.File)
	}

	if archive != nil {
		id, err := archive.SaveRun(ctx, opts.Query, records)
		if err != nil {
			return summary, fmt.Errorf("archiving run: %w", err)
		}
		summary.RunID = id
		log.Debugw("run archived", "run_id", id)
	}

	return summary, nil
}
