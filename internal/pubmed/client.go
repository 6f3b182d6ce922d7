// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed talks to NCBI E-utilities: esearch for PubMed ids and
// efetch for the matching <PubmedArticle> records.
package pubmed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/pdiddy/pharma-papers/internal/httputil"
)

const (
	// DefaultBaseURL is the E-utilities root.
	DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultLimit is the default esearch retmax.
	DefaultLimit = 50

	database = "pubmed"
)

var (
	pathID      = etree.MustCompilePath(".//Id")
	pathArticle = etree.MustCompilePath(".//PubmedArticle")
)

// Service is the two-step E-utilities interaction.
type Service interface {
	Search(ctx context.Context, term string, limit int) ([]string, error)
	Fetch(ctx context.Context, ids []string) ([]*Record, error)
}

var _ Service = (*Client)(nil)

// Client is an HTTP client for esearch and efetch. It holds no state
// between calls.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	email      string
	tool       string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets the E-utilities root (for testing or mirrors). An empty
// value keeps DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithEmail sets the email parameter NCBI asks callers to send.
func WithEmail(email string) Option {
	return func(c *Client) {
		c.email = email
	}
}

// WithTool sets the tool parameter NCBI asks callers to send.
func WithTool(tool string) Option {
	return func(c *Client) {
		c.tool = tool
	}
}

// NewClient creates an E-utilities client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search runs esearch and returns up to limit PubMed ids in response order.
// A limit of zero or less uses DefaultLimit.
func (c *Client) Search(ctx context.Context, term string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	params := c.params()
	params.Set("term", term)
	params.Set("retmax", strconv.Itoa(limit))

	doc, err := c.get(ctx, "esearch.fcgi", params)
	if err != nil {
		return nil, fmt.Errorf("esearch: %w", err)
	}

	var ids []string
	for _, el := range doc.FindElementsPath(pathID) {
		if id := strings.TrimSpace(el.Text()); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Fetch runs efetch for ids in a single request and returns the
// <PubmedArticle> records in response order. No request is made for an
// empty id list.
func (c *Client) Fetch(ctx context.Context, ids []string) ([]*Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	params := c.params()
	params.Set("id", strings.Join(ids, ","))

	doc, err := c.get(ctx, "efetch.fcgi", params)
	if err != nil {
		return nil, fmt.Errorf("efetch: %w", err)
	}

	els := doc.FindElementsPath(pathArticle)
	records := make([]*Record, len(els))
	for i, el := range els {
		records[i] = NewRecord(el)
	}
	return records, nil
}

func (c *Client) params() url.Values {
	p := url.Values{
		"db":      {database},
		"retmode": {"xml"},
	}
	if c.tool != "" {
		p.Set("tool", c.tool)
	}
	if c.email != "" {
		p.Set("email", c.email)
	}
	return p
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (*etree.Document, error) {
	body, err := httputil.Get(ctx, c.httpClient, c.baseURL+"/"+endpoint, params, c.userAgent)
	if err != nil {
		return nil, err
	}
	return parseXML(body)
}

// parseXML reads body strictly; a body without a root element is an error.
func parseXML(body []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("parsing XML: no root element")
	}
	return doc, nil
}
