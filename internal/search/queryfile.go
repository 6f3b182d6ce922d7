// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// QueryFile is the on-disk record of one search: what was asked and which
// papers qualified. It is written for the user and never read back by a
// later search.
type QueryFile struct {
	Query   QueryParams   `yaml:"query"`
	Papers  []types.Paper `yaml:"papers"`
	Summary QuerySummary  `yaml:"summary"`
}

// QueryParams stores the query parameters in a serializable form.
type QueryParams struct {
	Term  string   `yaml:"term"`
	Limit int      `yaml:"limit"`
	Years []string `yaml:"years,omitempty"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	IDs       int       `yaml:"ids"`
	Records   int       `yaml:"records"`
	Papers    int       `yaml:"papers"`
	Skipped   []string  `yaml:"skipped,omitempty"`
	Error     string    `yaml:"error,omitempty"`
	Timestamp time.Time `yaml:"timestamp"`
}

// NewQueryFile assembles a QueryFile from a finished search.
func NewQueryFile(term string, limit int, years []string, out SearchOutput, now time.Time) QueryFile {
	qf := QueryFile{
		Query:  QueryParams{Term: term, Limit: limit, Years: years},
		Papers: out.Papers,
		Summary: QuerySummary{
			IDs:       out.IDs,
			Records:   out.Records,
			Papers:    len(out.Papers),
			Timestamp: now,
		},
	}
	for _, f := range out.Skipped {
		qf.Summary.Skipped = append(qf.Summary.Skipped, fmt.Sprintf("#%d %s: %v", f.Index, f.PMID, f.Err))
	}
	if out.Err != nil {
		qf.Summary.Error = fmt.Sprintf("%s: %v", out.Stage, out.Err)
	}
	return qf
}

// WriteQueryFile saves qf to path as YAML.
func WriteQueryFile(path string, qf QueryFile) error {
	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}
