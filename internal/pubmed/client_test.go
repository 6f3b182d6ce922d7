// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pharma-papers/internal/httputil"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

// newEutilsServer serves esearch.xml and efetch.xml and records queries.
func newEutilsServer(t *testing.T, queries map[string]url.Values) *httptest.Server {
	t.Helper()
	search := readFixture(t, "esearch.xml")
	fetch := readFixture(t, "efetch.xml")
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		endpoint := strings.TrimPrefix(r.URL.Path, "/")
		if queries != nil {
			queries[endpoint] = r.URL.Query()
		}
		switch endpoint {
		case "esearch.fcgi":
			w.Write(search)
		case "efetch.fcgi":
			w.Write(fetch)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestClientSearch(t *testing.T) {
	queries := map[string]url.Values{}
	ts := newEutilsServer(t, queries)
	c := NewClient(WithBaseURL(ts.URL+"/"), WithHTTPClient(ts.Client()), WithTool("pharma-papers"), WithEmail("dev@example.com"))

	ids, err := c.Search(context.Background(), "cancer", 10)
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2"}, ids)
	q := queries["esearch.fcgi"]
	assert.Equal(t, "pubmed", q.Get("db"))
	assert.Equal(t, "cancer", q.Get("term"))
	assert.Equal(t, "10", q.Get("retmax"))
	assert.Equal(t, "xml", q.Get("retmode"))
	assert.Equal(t, "pharma-papers", q.Get("tool"))
	assert.Equal(t, "dev@example.com", q.Get("email"))
}

func TestClientSearchDefaultLimit(t *testing.T) {
	queries := map[string]url.Values{}
	ts := newEutilsServer(t, queries)
	c := NewClient(WithBaseURL(ts.URL), WithHTTPClient(ts.Client()))

	_, err := c.Search(context.Background(), "cancer", 0)
	require.NoError(t, err)

	assert.Equal(t, "50", queries["esearch.fcgi"].Get("retmax"))
	assert.Empty(t, queries["esearch.fcgi"].Get("tool"))
}

func TestClientFetch(t *testing.T) {
	queries := map[string]url.Values{}
	ts := newEutilsServer(t, queries)
	c := NewClient(WithBaseURL(ts.URL), WithHTTPClient(ts.Client()))

	records, err := c.Fetch(context.Background(), []string{"1", "2"})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "1,2", queries["efetch.fcgi"].Get("id"))
	assert.Equal(t, "pubmed", queries["efetch.fcgi"].Get("db"))

	pmid, ok := records[0].PMID()
	assert.True(t, ok)
	assert.Equal(t, "1", pmid)
	pmid, _ = records[1].PMID()
	assert.Equal(t, "2", pmid)
}

func TestClientFetchEmptyIDsMakesNoRequest(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()
	c := NewClient(WithBaseURL(ts.URL), WithHTTPClient(ts.Client()))

	records, err := c.Fetch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, records)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		status  bool
	}{
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			status:  true,
		},
		{
			name:    "malformed xml",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("<<<not xml")) },
		},
		{
			name:    "empty body",
			handler: func(w http.ResponseWriter, _ *http.Request) {},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()
			c := NewClient(WithBaseURL(ts.URL), WithHTTPClient(ts.Client()))

			_, err := c.Search(context.Background(), "q", 5)
			require.Error(t, err)
			assert.Equal(t, tt.status, errors.Is(err, httputil.ErrStatus))

			_, err = c.Fetch(context.Background(), []string{"1"})
			require.Error(t, err)
			assert.Equal(t, tt.status, errors.Is(err, httputil.ErrStatus))
		})
	}
}

func TestClientSendsUserAgent(t *testing.T) {
	var ua string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.Write([]byte("<eSearchResult><IdList/></eSearchResult>"))
	}))
	defer ts.Close()
	c := NewClient(WithBaseURL(ts.URL), WithHTTPClient(ts.Client()), WithUserAgent("pharma-papers/test"))

	ids, err := c.Search(context.Background(), "q", 5)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Equal(t, "pharma-papers/test", ua)
}

func TestLoggingServiceDelegates(t *testing.T) {
	ts := newEutilsServer(t, nil)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := NewLoggingService(NewClient(WithBaseURL(ts.URL), WithHTTPClient(ts.Client())), logger)

	ids, err := svc.Search(context.Background(), "cancer", 5)
	require.NoError(t, err)
	records, err := svc.Fetch(context.Background(), ids)
	require.NoError(t, err)

	assert.Len(t, records, 2)
	assert.Contains(t, buf.String(), "msg=esearch")
	assert.Contains(t, buf.String(), "count=2")
	assert.Contains(t, buf.String(), "msg=efetch")
	assert.Contains(t, buf.String(), "records=2")
}
