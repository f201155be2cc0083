// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output serializes filtered records as CSV, JSON or YAML to a file
// or standard output.
package output

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/get-papers/pkg/types"
)

// Header is the fixed CSV header row.
var Header = []string{
	"PubmedID",
	"Title",
	"Publication Date",
	"Non-academic Author(s)",
	"Company Affiliation(s)",
	"Corresponding Author Email",
}

// ErrUnknownFormat is returned for a format other than csv, json or yaml.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates s and returns the matching format. Empty means CSV.
func ParseFormat(s string) (types.OutputFormat, error) {
	switch f := types.OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", types.FormatCSV:
		return types.FormatCSV, nil
	case types.FormatJSON, types.FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q: use csv, json or yaml", ErrUnknownFormat, s)
	}
}

// Write serializes records to w in the given format.
func Write(w io.Writer, format types.OutputFormat, records []types.FilteredRecord) error {
	switch format {
	case "", types.FormatCSV:
		return WriteCSV(w, records)
	case types.FormatJSON:
		return WriteJSON(w, records)
	case types.FormatYAML:
		return WriteYAML(w, records)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// WriteCSV writes the header and one row per record. Rows end in CRLF.
func WriteCSV(w io.Writer, records []types.FilteredRecord) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return fmt.Errorf("writing CSV row %s: %w", r.PubmedID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes records as an indented JSON array. An empty result is "[]".
func WriteJSON(w io.Writer, records []types.FilteredRecord) error {
	if records == nil {
		records = []types.FilteredRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteYAML writes records as a YAML sequence.
func WriteYAML(w io.Writer, records []types.FilteredRecord) error {
	if records == nil {
		records = []types.FilteredRecord{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// Open returns the destination for path, or stdout when path is empty.
// The returned close func must be called; for stdout it does nothing.
func Open(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}
