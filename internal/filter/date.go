// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/pdiddy/get-papers/pkg/types"
)

var monthAbbrevs = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// PublicationDate normalizes PubDate parts to "YYYY-MM-DD", "YYYY-MM",
// "YYYY" or "", keeping the most specific form whose parts all resolve.
// The year is used as given; month and day that do not parse are dropped.
func PublicationDate(year, month, day string) string {
	year = strings.TrimSpace(year)
	if year == "" {
		return ""
	}
	m := parseMonth(month)
	if m == 0 {
		return year
	}
	d := parseDay(day)
	if d == 0 {
		return fmt.Sprintf("%s-%02d", year, m)
	}
	return fmt.Sprintf("%s-%02d-%02d", year, m, d)
}

func pubDate(d types.PubDate) string {
	return PublicationDate(d.Year, d.Month, d.Day)
}

// parseMonth accepts "1".."12" or a three-letter English abbreviation and
// returns 0 for anything else.
func parseMonth(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if isAlpha(s) {
		return monthAbbrevs[strings.ToLower(s)]
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 12 {
		return 0
	}
	return n
}

// parseDay accepts "1".."31" and returns 0 for anything else.
func parseDay(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 31 {
		return 0
	}
	return n
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
