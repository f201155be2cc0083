// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"encoding/xml"
	"strings"

	"github.com/pdiddy/get-papers/pkg/types"
)

// ESearch response structure.
type esearchResult struct {
	XMLName  xml.Name `xml:"eSearchResult"`
	Count    string   `xml:"Count"`
	QueryKey string   `xml:"QueryKey"`
	WebEnv   string   `xml:"WebEnv"`
	IDs      []string `xml:"IdList>Id"`
	Error    string   `xml:"ERROR"`
}

// EFetch PubmedArticleSet structures. Only the fields the filter stage
// reads are mapped; PubmedBookArticle entries are skipped.
type articleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID    string  `xml:"PMID"`
	Article article `xml:"Article"`
}

type article struct {
	PubDate xmlPubDate  `xml:"Journal>JournalIssue>PubDate"`
	Title   innerText   `xml:"ArticleTitle"`
	Authors []xmlAuthor `xml:"AuthorList>Author"`
}

type xmlPubDate struct {
	Year  string `xml:"Year"`
	Month string `xml:"Month"`
	Day   string `xml:"Day"`
}

type xmlAuthor struct {
	ValidYN         string            `xml:"ValidYN,attr"`
	LastName        string            `xml:"LastName"`
	ForeName        string            `xml:"ForeName"`
	AffiliationInfo []affiliationInfo `xml:"AffiliationInfo"`
}

type affiliationInfo struct {
	Affiliation innerText `xml:"Affiliation"`
}

// innerText collects all character data inside an element, including text
// nested in inline markup such as <i> or <sup>.
type innerText string

func (t *innerText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch v := tok.(type) {
		case xml.CharData:
			b.Write(v)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				*t = innerText(strings.TrimSpace(b.String()))
				return nil
			}
			depth--
		}
	}
}

// toPaper converts a decoded PubmedArticle into the pipeline's Paper type.
func (a pubmedArticle) toPaper() types.Paper {
	art := a.Citation.Article
	p := types.Paper{
		PMID:  strings.TrimSpace(a.Citation.PMID),
		Title: string(art.Title),
		PubDate: types.PubDate{
			Year:  strings.TrimSpace(art.PubDate.Year),
			Month: strings.TrimSpace(art.PubDate.Month),
			Day:   strings.TrimSpace(art.PubDate.Day),
		},
	}
	for _, xa := range art.Authors {
		author := types.Author{
			LastName: strings.TrimSpace(xa.LastName),
			ForeName: strings.TrimSpace(xa.ForeName),
			Valid:    xa.ValidYN == "Y",
		}
		if len(xa.AffiliationInfo) > 0 {
			author.Affiliation = string(xa.AffiliationInfo[0].Affiliation)
		}
		p.Authors = append(p.Authors, author)
	}
	return p
}
