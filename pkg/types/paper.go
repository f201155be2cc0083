// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the get-papers pipeline:
// papers decoded from PubMed, the flat records derived from them, and the
// configuration for each stage.
package types

// Paper holds the article metadata decoded from a PubMed EFetch record.
// A Paper lives only for the duration of one run.
type Paper struct {
	// PMID is the PubMed identifier. Empty when the record carried none.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title is the full text of ArticleTitle, inline markup removed.
	Title string `json:"title" yaml:"title"`

	// PubDate holds the raw journal issue publication date parts.
	PubDate PubDate `json:"pub_date" yaml:"pub_date"`

	// Authors lists the article authors in source order.
	Authors []Author `json:"authors" yaml:"authors"`
}

// PubDate holds the Year, Month and Day text of a PubDate element. Any
// part may be empty; Month may be numeric or an abbreviation like "Jan".
type PubDate struct {
	Year  string `json:"year,omitempty" yaml:"year,omitempty"`
	Month string `json:"month,omitempty" yaml:"month,omitempty"`
	Day   string `json:"day,omitempty" yaml:"day,omitempty"`
}

// Author is one entry of an article's AuthorList.
type Author struct {
	LastName string `json:"last_name" yaml:"last_name"`
	ForeName string `json:"fore_name" yaml:"fore_name"`

	// Affiliation is the text of the author's first AffiliationInfo.
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`

	// Valid reports whether the record marked the author ValidYN="Y".
	Valid bool `json:"valid" yaml:"valid"`
}

// HasName reports whether both name parts are present.
func (a Author) HasName() bool {
	return a.LastName != "" && a.ForeName != ""
}

// DisplayName returns the name as "LastName ForeName".
func (a Author) DisplayName() string {
	return a.LastName + " " + a.ForeName
}
