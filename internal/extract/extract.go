// Package extract turns one PubMed record into an output row when at least
// one of its authors has a commercial affiliation.
package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/pdiddy/pharma-papers/internal/affiliation"
	"github.com/pdiddy/pharma-papers/internal/pubmed"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

// ErrMalformedRecord is returned for a record that lacks the structure
// every PubMed article has (e.g. no <MedlineCitation>).
var ErrMalformedRecord = errors.New("malformed record")

const joinSep = "; "

// YearFilter is a set of accepted publication years. The empty filter
// accepts every record, including those without a year.
type YearFilter map[string]struct{}

// NewYearFilter builds a filter from years. Blank entries are ignored.
func NewYearFilter(years []string) YearFilter {
	f := make(YearFilter, len(years))
	for _, y := range years {
		if y = strings.TrimSpace(y); y != "" {
			f[y] = struct{}{}
		}
	}
	return f
}

// Accepts reports whether year passes the filter. Matching is exact string
// equality.
func (f YearFilter) Accepts(year string) bool {
	if len(f) == 0 {
		return true
	}
	_, ok := f[year]
	return ok
}

// Years returns the filter's members sorted.
func (f YearFilter) Years() []string {
	out := make([]string, 0, len(f))
	for y := range f {
		out = append(out, y)
	}
	sort.Strings(out)
	return out
}

// Extractor builds Papers from records. The zero value is not usable; use
// New or Default.
type Extractor struct {
	classifier affiliation.Classifier
	logger     *slog.Logger
}

// New returns an Extractor using classifier. A nil logger discards output.
func New(classifier affiliation.Classifier, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{classifier: classifier, logger: logger}
}

// Default returns an Extractor over the built-in keyword table.
func Default(logger *slog.Logger) *Extractor {
	return New(affiliation.Default, logger)
}

// Extract returns the Paper for rec and true when rec passes years and
// names at least one commercially affiliated author. It returns false for
// records that are filtered out or purely academic, and an error wrapping
// ErrMalformedRecord when rec cannot be read at all.
//
// The email column takes the last address found in a commercial author's
// affiliation; an address in the CorrespondingAuthor affiliation then
// replaces it regardless of that author's classification.
func (x *Extractor) Extract(rec *pubmed.Record, years YearFilter) (types.Paper, bool, error) {
	if rec.Element() == nil {
		return types.Paper{}, false, fmt.Errorf("%w: nil element", ErrMalformedRecord)
	}
	pmid := orNA(rec.PMID())
	if !rec.HasCitation() {
		return types.Paper{}, false, fmt.Errorf("%w: pmid %s: no MedlineCitation", ErrMalformedRecord, pmid)
	}
	title := orNA(rec.Title())
	year := orNA(rec.Year())

	if !years.Accepts(year) {
		x.logger.Debug("skipping paper due to year filter", "pmid", pmid, "year", year)
		return types.Paper{}, false, nil
	}

	var names, affiliations []string
	email := types.NotAvailable

	for _, a := range rec.Authors() {
		if !x.classifier.IsCommercial(a.Affiliation) {
			continue
		}
		if name := a.DisplayName(); name != "" {
			names = append(names, name)
		}
		affiliations = append(affiliations, a.Affiliation)
		if m, ok := affiliation.FindEmail(a.Affiliation); ok {
			email = m
		}
	}

	if aff, ok := rec.CorrespondingAffiliation(); ok {
		if m, ok := affiliation.FindEmail(aff); ok {
			email = m
		}
	}

	if len(names) == 0 {
		return types.Paper{}, false, nil
	}

	x.logger.Debug("added paper with non-academic affiliation", "pmid", pmid, "authors", len(names))
	return types.Paper{
		PMID:                pmid,
		Title:               title,
		PublicationDate:     year,
		NonAcademicAuthors:  strings.Join(names, joinSep),
		CompanyAffiliations: strings.Join(uniqueSorted(affiliations), joinSep),
		CorrespondingEmail:  email,
	}, true, nil
}

func orNA(s string, ok bool) string {
	if !ok {
		return types.NotAvailable
	}
	return s
}

func uniqueSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
