// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package affiliation classifies free-text author affiliations with fixed
// English keyword lists. Matching is a case-insensitive substring test.
package affiliation

import "strings"

var academicKeywords = []string{"university", "college", "institute", "school"}

var pharmaBiotechKeywords = []string{"pharma", "biotech", "pharmaceutical", "biotechnology"}

// IsNonAcademic reports whether aff mentions none of the academic keywords.
func IsNonAcademic(aff string) bool {
	return !containsAny(aff, academicKeywords)
}

// IsPharmaBiotech reports whether aff mentions a pharmaceutical or
// biotechnology keyword.
func IsPharmaBiotech(aff string) bool {
	return containsAny(aff, pharmaBiotechKeywords)
}

// CompanyName returns the text before the first comma of aff, trimmed.
func CompanyName(aff string) string {
	name, _, _ := strings.Cut(aff, ",")
	return strings.TrimSpace(name)
}

// Classification is the result of classifying one affiliation.
type Classification struct {
	NonAcademic   bool
	PharmaBiotech bool

	// Company is set only for non-academic pharma/biotech affiliations.
	Company string
}

// Classify applies all tests to aff at once.
func Classify(aff string) Classification {
	c := Classification{
		NonAcademic:   IsNonAcademic(aff),
		PharmaBiotech: IsPharmaBiotech(aff),
	}
	if c.NonAcademic && c.PharmaBiotech {
		c.Company = CompanyName(aff)
	}
	return c
}

func containsAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
