// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"strings"

	"github.com/pdiddy/get-papers/pkg/types"
)

// CorrespondingEmail returns the first whitespace-delimited token containing
// "@" in the affiliation of a valid author, scanning authors in order.
// Periods around the token are removed. It returns "" when none is found.
func CorrespondingEmail(authors []types.Author) string {
	for _, a := range authors {
		if !a.Valid || a.Affiliation == "" {
			continue
		}
		for _, tok := range strings.Fields(a.Affiliation) {
			if strings.Contains(tok, "@") {
				return strings.Trim(tok, ".")
			}
		}
	}
	return ""
}
