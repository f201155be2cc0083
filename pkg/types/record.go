// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FilteredRecord is the flat row produced for a paper with at least one
// non-academic author. It is built once and never modified.
type FilteredRecord struct {
	// PubmedID is the PMID of the source paper.
	PubmedID string `json:"pubmed_id" yaml:"pubmed_id"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// PublicationDate is "YYYY-MM-DD", "YYYY-MM", "YYYY" or empty.
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// NonAcademicAuthors joins the non-academic author names with ", ".
	NonAcademicAuthors string `json:"non_academic_authors" yaml:"non_academic_authors"`

	// CompanyAffiliations joins the distinct pharma/biotech company names with ", ".
	CompanyAffiliations string `json:"company_affiliations" yaml:"company_affiliations"`

	// CorrespondingEmail is the first email found in a valid author's
	// affiliation, or empty.
	CorrespondingEmail string `json:"corresponding_author_email" yaml:"corresponding_author_email"`
}

// Row returns the record's fields in output column order.
func (r FilteredRecord) Row() []string {
	return []string{
		r.PubmedID,
		r.Title,
		r.PublicationDate,
		r.NonAcademicAuthors,
		r.CompanyAffiliations,
		r.CorrespondingEmail,
	}
}
