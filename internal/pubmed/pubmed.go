// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed retrieves article records from the NCBI E-utilities API.
// A fetch is two sequential requests: ESearch stores the matching IDs on the
// NCBI history server and returns a WebEnv/QueryKey pair, then EFetch
// retrieves the full PubMed XML for that history entry.
package pubmed

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/pdiddy/get-papers/internal/httputil"
	"github.com/pdiddy/get-papers/pkg/types"
)

// DefaultBaseURL is the public E-utilities root.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/"

const (
	defaultDatabase   = "pubmed"
	defaultMaxResults = 100
)

// ErrNoHistory is returned when ESearch matched records but omitted the
// WebEnv or QueryKey needed to fetch them.
var ErrNoHistory = errors.New("esearch response missing WebEnv or QueryKey")

// APIError carries an error message reported inside an E-utilities response body.
type APIError struct {
	Op      string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// SearchResult is the outcome of an ESearch call.
type SearchResult struct {
	Count    int
	IDs      []string
	WebEnv   string
	QueryKey string
}

// Client queries ESearch and EFetch.
type Client struct {
	http *resty.Client
	cfg  types.PubMedConfig
}

// NewClient builds a Client from cfg, filling defaults for the base URL,
// database and result cap.
func NewClient(cfg types.PubMedConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.Database == "" {
		cfg.Database = defaultDatabase
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	return &Client{
		http: httputil.NewClient(cfg.HTTPConfig),
		cfg:  cfg,
	}
}

// FetchPapers runs ESearch for query and then EFetch for the stored history,
// returning at most maxResults papers. maxResults <= 0 uses the configured cap.
func (c *Client) FetchPapers(ctx context.Context, query string, maxResults int) ([]types.Paper, error) {
	sr, err := c.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	return c.Fetch(ctx, sr, maxResults)
}

// Search runs ESearch with usehistory=y.
func (c *Client) Search(ctx context.Context, query string, maxResults int) (SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return SearchResult{}, fmt.Errorf("query is empty")
	}

	params := c.baseParams()
	params["term"] = query
	params["retmax"] = strconv.Itoa(c.limit(maxResults))
	params["usehistory"] = "y"

	body, err := c.get(ctx, "esearch.fcgi", params)
	if err != nil {
		return SearchResult{}, err
	}

	var res esearchResult
	if err := xml.Unmarshal(body, &res); err != nil {
		return SearchResult{}, fmt.Errorf("parsing esearch response: %w", err)
	}
	if msg := strings.TrimSpace(res.Error); msg != "" {
		return SearchResult{}, &APIError{Op: "esearch", Message: msg}
	}
	if len(res.IDs) > 0 && (res.WebEnv == "" || res.QueryKey == "") {
		return SearchResult{}, ErrNoHistory
	}

	sr := SearchResult{
		IDs:      res.IDs,
		WebEnv:   strings.TrimSpace(res.WebEnv),
		QueryKey: strings.TrimSpace(res.QueryKey),
	}
	if res.Count != "" {
		n, err := strconv.Atoi(strings.TrimSpace(res.Count))
		if err != nil {
			return SearchResult{}, fmt.Errorf("parsing esearch count %q: %w", res.Count, err)
		}
		sr.Count = n
	}
	return sr, nil
}

// Fetch runs EFetch against the history entry in sr. It returns no papers,
// without a request, when the search matched nothing.
func (c *Client) Fetch(ctx context.Context, sr SearchResult, maxResults int) ([]types.Paper, error) {
	if len(sr.IDs) == 0 {
		return nil, nil
	}
	if sr.WebEnv == "" || sr.QueryKey == "" {
		return nil, ErrNoHistory
	}

	params := c.baseParams()
	params["query_key"] = sr.QueryKey
	params["WebEnv"] = sr.WebEnv
	params["retmode"] = "xml"
	params["retstart"] = "0"
	params["retmax"] = strconv.Itoa(c.limit(maxResults))

	body, err := c.get(ctx, "efetch.fcgi", params)
	if err != nil {
		return nil, err
	}

	var set articleSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("parsing efetch response: %w", err)
	}

	papers := make([]types.Paper, 0, len(set.Articles))
	for _, a := range set.Articles {
		papers = append(papers, a.toPaper())
	}
	return papers, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	resp, err := httputil.GetWithRetry(ctx, c.http, c.cfg.BaseURL+endpoint, params, c.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", strings.TrimSuffix(endpoint, ".fcgi"), err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%s returned HTTP %d", strings.TrimSuffix(endpoint, ".fcgi"), resp.StatusCode())
	}
	return resp.Body(), nil
}

// baseParams returns the parameters common to every E-utilities call.
func (c *Client) baseParams() map[string]string {
	params := map[string]string{"db": c.cfg.Database}
	if c.cfg.Tool != "" {
		params["tool"] = c.cfg.Tool
	}
	if c.cfg.Email != "" {
		params["email"] = c.cfg.Email
	}
	if c.cfg.APIKey != "" {
		params["api_key"] = c.cfg.APIKey
	}
	return params
}

func (c *Client) limit(maxResults int) int {
	if maxResults > 0 {
		return maxResults
	}
	return c.cfg.MaxResults
}
