// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search runs the esearch/efetch round trip and keeps the papers
// that have commercially affiliated authors.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pdiddy/pharma-papers/internal/extract"
	"github.com/pdiddy/pharma-papers/internal/pubmed"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

// Stage names the request that failed.
type Stage string

const (
	StageNone   Stage = ""
	StageSearch Stage = "search"
	StageFetch  Stage = "fetch"
)

// RecordFailure is a record that could not be read and was skipped.
type RecordFailure struct {
	Index int
	PMID  string
	Err   error
}

// SearchOutput is the result of one SearchAndExtract call. A failed
// request is recorded in Stage and Err rather than returned, so callers
// always get a (possibly empty) list of papers.
type SearchOutput struct {
	Papers  []types.Paper
	IDs     int
	Records int
	Skipped []RecordFailure
	Stage   Stage
	Err     error
}

// Failed reports whether the esearch or efetch request failed.
func (o SearchOutput) Failed() bool {
	return o.Stage != StageNone
}

// Searcher drives a pubmed.Service and an extractor. It keeps no state
// between calls.
type Searcher struct {
	service   pubmed.Service
	extractor *extract.Extractor
	logger    *slog.Logger
}

// NewSearcher creates a Searcher. A nil extractor uses the default keyword
// table; a nil logger discards output.
func NewSearcher(service pubmed.Service, extractor *extract.Extractor, logger *slog.Logger) *Searcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if extractor == nil {
		extractor = extract.Default(logger)
	}
	return &Searcher{service: service, extractor: extractor, logger: logger}
}

// SearchAndExtract searches PubMed for query, fetches up to limit records in
// one request and returns the qualifying papers in response order.
func (s *Searcher) SearchAndExtract(ctx context.Context, query string, limit int, years extract.YearFilter) SearchOutput {
	if limit <= 0 {
		limit = pubmed.DefaultLimit
	}
	s.logger.Debug("searching pubmed", "query", query, "limit", limit)
	if len(years) > 0 {
		s.logger.Debug("filtering by year", "years", years.Years())
	}

	ids, err := s.service.Search(ctx, query, limit)
	if err != nil {
		s.logger.Debug("search failed", "err", err)
		return SearchOutput{Stage: StageSearch, Err: err}
	}
	out := SearchOutput{IDs: len(ids)}
	if len(ids) == 0 {
		s.logger.Debug("no ids found")
		return out
	}
	s.logger.Debug("found paper ids", "count", len(ids))

	records, err := s.service.Fetch(ctx, ids)
	if err != nil {
		s.logger.Debug("fetch failed", "err", err)
		out.Stage, out.Err = StageFetch, err
		return out
	}
	out.Records = len(records)
	s.logger.Debug("parsing records", "count", len(records))

	for i, rec := range records {
		p, ok, err := s.extractor.Extract(rec, years)
		if err != nil {
			pmid, _ := rec.PMID()
			s.logger.Debug("failed to parse record", "index", i, "pmid", pmid, "err", err)
			out.Skipped = append(out.Skipped, RecordFailure{Index: i, PMID: pmid, Err: err})
			continue
		}
		if ok {
			out.Papers = append(out.Papers, p)
		}
	}

	s.logger.Debug("finished parsing", "papers", len(out.Papers), "skipped", len(out.Skipped))
	return out
}

// ErrNoPapers is returned by writers asked to render an empty result.
var ErrNoPapers = errors.New("no papers")

// FormatConsole writes one block per paper with the six columns in order.
func FormatConsole(papers []types.Paper, w io.Writer) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "No matching papers found with non-academic affiliations.")
		return
	}

	fmt.Fprintf(w, "%d papers fetched with non-academic affiliations:\n", len(papers))
	keys := types.Keys()
	for i, p := range papers {
		fmt.Fprintf(w, "Paper %d\n", i+1)
		for j, v := range p.Values() {
			fmt.Fprintf(w, "%s: %s\n", keys[j], v)
		}
		fmt.Fprintln(w, strings.Repeat("-", 40))
	}
}

// FormatJSON writes papers as an indented JSON array to w.
func FormatJSON(papers []types.Paper, w io.Writer) error {
	if papers == nil {
		papers = []types.Paper{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(papers)
}
