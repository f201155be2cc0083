// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter selects papers with at least one non-academic author and
// flattens each into a FilteredRecord.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/get-papers/internal/affiliation"
	"github.com/pdiddy/get-papers/pkg/types"
)

// ErrMissingPMID is returned when a qualifying paper carries no PMID.
var ErrMissingPMID = errors.New("paper has no PMID")

const listSep = ", "

// Filter returns one record per paper that has a non-academic author, in
// input order. Papers without one are dropped.
func Filter(papers []types.Paper) ([]types.FilteredRecord, error) {
	var records []types.FilteredRecord
	for i, p := range papers {
		rec, ok := Record(p)
		if !ok {
			continue
		}
		if rec.PubmedID == "" {
			return nil, fmt.Errorf("paper %d (%q): %w", i, p.Title, ErrMissingPMID)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Record builds the FilteredRecord for p. The boolean is false when no
// author qualifies as non-academic.
//
// An author counts only when both name parts and an affiliation are present.
// Company names come from non-academic pharma/biotech affiliations and are
// kept once each, in first-seen order.
func Record(p types.Paper) (types.FilteredRecord, bool) {
	var names, companies []string
	seen := make(map[string]bool)

	for _, a := range p.Authors {
		if !a.HasName() || a.Affiliation == "" {
			continue
		}
		c := affiliation.Classify(a.Affiliation)
		if !c.NonAcademic {
			continue
		}
		names = append(names, a.DisplayName())
		if c.PharmaBiotech && !seen[c.Company] {
			seen[c.Company] = true
			companies = append(companies, c.Company)
		}
	}

	if len(names) == 0 {
		return types.FilteredRecord{}, false
	}

	return types.FilteredRecord{
		PubmedID:            p.PMID,
		Title:               p.Title,
		PublicationDate:     pubDate(p.PubDate),
		NonAcademicAuthors:  strings.Join(names, listSep),
		CompanyAffiliations: strings.Join(companies, listSep),
		CorrespondingEmail:  CorrespondingEmail(p.Authors),
	}, true
}
