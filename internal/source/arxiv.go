// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source fetches recently published papers from the arXiv listing
// service and normalizes them into types.Paper records.
package source

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/paper-digest/internal/httputil"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// ErrSourceUnavailable reports that the listing service could not be reached
// or returned a response that could not be parsed.
var ErrSourceUnavailable = errors.New("paper source unavailable")

const (
	defaultBaseURL    = "https://export.arxiv.org/api/query"
	defaultMaxResults = 5

	// MaxDaysBack bounds the recency window.
	MaxDaysBack = 3650
)

// DefaultCategories is the category set queried when none are configured.
var DefaultCategories = []string{"cs.AI", "cs.LG", "cs.CL"}

// Arxiv queries the arXiv API for the newest submissions in a set of categories.
type Arxiv struct {
	client *http.Client
	cfg    types.SourceConfig
	now    func() time.Time
}

// Option configures an Arxiv source.
type Option func(*Arxiv)

// WithClock overrides the clock used for the recency cutoff.
func WithClock(now func() time.Time) Option {
	return func(a *Arxiv) { a.now = now }
}

// NewArxiv returns a source using client for requests. Zero-valued config
// fields fall back to the arXiv defaults.
func NewArxiv(client *http.Client, cfg types.SourceConfig, opts ...Option) *Arxiv {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultCategories
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	a := &Arxiv{client: client, cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FetchRecent issues one query sorted by submission date and returns the
// papers published strictly after now minus daysBack days, in service order.
func (a *Arxiv) FetchRecent(ctx context.Context, daysBack int) ([]types.Paper, error) {
	if daysBack < 1 || daysBack > MaxDaysBack {
		return nil, fmt.Errorf("daysBack must be between 1 and %d, got %d", MaxDaysBack, daysBack)
	}
	since := a.now().UTC().Add(-time.Duration(daysBack) * 24 * time.Hour)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.queryURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if a.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", a.cfg.UserAgent)
	}

	resp, err := a.do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: arXiv API request: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: arXiv API returned HTTP %d", ErrSourceUnavailable, resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("%w: parsing arXiv response: %v", ErrSourceUnavailable, err)
	}

	var papers []types.Paper
	for _, entry := range feed.Entries {
		p, err := entry.toPaper()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		if p.Published.After(since) {
			papers = append(papers, p)
		}
	}
	return papers, nil
}

// do sends a single request unless retries on throttling are configured.
func (a *Arxiv) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if a.cfg.MaxRetries <= 0 {
		return a.client.Do(req)
	}
	return httputil.DoWithRetry(ctx, a.client, req, a.cfg.MaxRetries)
}

// queryURL builds the request URL. The search_query value is assembled by
// hand because arXiv expects literal '+' separators around boolean operators.
func (a *Arxiv) queryURL() string {
	return fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		a.cfg.BaseURL, buildQuery(a.cfg.Categories, a.cfg.Keywords), a.cfg.MaxResults)
}

// buildQuery ORs the categories and, when keywords are present, ANDs the
// result with an ORed keyword filter.
func buildQuery(categories, keywords []string) string {
	cats := make([]string, 0, len(categories))
	for _, c := range categories {
		cats = append(cats, "cat:"+url.QueryEscape(c))
	}
	q := strings.Join(cats, "+OR+")
	if len(keywords) == 0 {
		return q
	}

	kws := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		terms := strings.Fields(kw)
		if len(terms) == 0 {
			continue
		}
		for i, t := range terms {
			terms[i] = url.QueryEscape(t)
		}
		if len(terms) == 1 {
			kws = append(kws, "all:"+terms[0])
		} else {
			kws = append(kws, "all:%22"+strings.Join(terms, "+")+"%22")
		}
	}
	if len(kws) == 0 {
		return q
	}
	return "%28" + q + "%29+AND+%28" + strings.Join(kws, "+OR+") + "%29"
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
	Links     []arxivLink   `xml:"link"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

func (e arxivEntry) toPaper() (types.Paper, error) {
	id := strings.TrimSpace(e.ID)
	if id == "" {
		return types.Paper{}, fmt.Errorf("entry without id")
	}
	published, err := time.Parse(time.RFC3339, strings.TrimSpace(e.Published))
	if err != nil {
		return types.Paper{}, fmt.Errorf("entry %s: parsing published date: %v", id, err)
	}

	p := types.Paper{
		ID:        id,
		Title:     collapseSpace(e.Title),
		Abstract:  collapseSpace(e.Summary),
		Authors:   []string{},
		Published: published.UTC(),
		PDFURL:    e.pdfURL(),
	}
	for _, au := range e.Authors {
		if name := strings.TrimSpace(au.Name); name != "" {
			p.Authors = append(p.Authors, name)
		}
	}
	return p, nil
}

// pdfURL prefers the feed's pdf link and falls back to rewriting the abs URL.
func (e arxivEntry) pdfURL() string {
	for _, l := range e.Links {
		if l.Title == "pdf" || l.Type == "application/pdf" {
			return l.Href
		}
	}
	return strings.Replace(strings.TrimSpace(e.ID), "/abs/", "/pdf/", 1)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
