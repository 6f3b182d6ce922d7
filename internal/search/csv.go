package search

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// FormatCSV writes a header row of the six column names followed by one
// row per paper.
func FormatCSV(papers []types.Paper, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(types.Keys()); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, p := range papers {
		if err := cw.Write(p.Values()); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", p.PMID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile creates path and writes papers to it as CSV. An empty paper
// list is refused so an existing file is not truncated to a bare header.
func WriteCSVFile(path string, papers []types.Paper) (err error) {
	if len(papers) == 0 {
		return ErrNoPapers
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return FormatCSV(papers, f)
}
