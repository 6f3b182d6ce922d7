// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store exports search results to a SQLite database. Each export
// is a run tagged with a fresh id; the database is write-only from the
// point of view of a search.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// insertBatch bounds the rows per INSERT so the bound variables stay under
// SQLite's limit (8 per paper row).
const insertBatch = 500

// Store manages the export database.
type Store struct {
	db *sql.DB
}

// Run describes one exported search.
type Run struct {
	ID        string
	Query     string
	Years     []string
	Limit     int
	CreatedAt time.Time
}

// Open opens or creates the SQLite database at path and creates the
// schema if it does not exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			years TEXT,
			max_results INTEGER,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			run_id TEXT NOT NULL REFERENCES runs(id),
			position INTEGER NOT NULL,
			pmid TEXT NOT NULL,
			title TEXT,
			publication_date TEXT,
			non_academic_authors TEXT,
			company_affiliations TEXT,
			corresponding_email TEXT,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_pmid ON papers(pmid)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun writes run and its papers in one transaction. An empty run.ID
// is replaced with a new UUID; the id used is returned.
func (s *Store) SaveRun(ctx context.Context, run Run, papers []types.Paper) (string, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = sq.Insert("runs").
		Columns("id", "query", "years", "max_results", "created_at").
		Values(run.ID, run.Query, strings.Join(run.Years, ","), run.Limit, run.CreatedAt.Format(time.RFC3339)).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for start := 0; start < len(papers); start += insertBatch {
		end := min(start+insertBatch, len(papers))
		ins := sq.Insert("papers").Columns(
			"run_id", "position", "pmid", "title", "publication_date",
			"non_academic_authors", "company_affiliations", "corresponding_email",
		)
		for i := start; i < end; i++ {
			p := papers[i]
			ins = ins.Values(run.ID, i, p.PMID, p.Title, p.PublicationDate,
				p.NonAcademicAuthors, p.CompanyAffiliations, p.CorrespondingEmail)
		}
		if _, err := ins.RunWith(tx).ExecContext(ctx); err != nil {
			return "", fmt.Errorf("inserting papers %d-%d: %w", start, end-1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return run.ID, nil
}

// Papers returns the papers exported under runID in their original order.
func (s *Store) Papers(ctx context.Context, runID string) ([]types.Paper, error) {
	rows, err := sq.Select(
		"pmid", "title", "publication_date",
		"non_academic_authors", "company_affiliations", "corresponding_email",
	).
		From("papers").
		Where(sq.Eq{"run_id": runID}).
		OrderBy("position").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var out []types.Paper
	for rows.Next() {
		var p types.Paper
		if err := rows.Scan(&p.PMID, &p.Title, &p.PublicationDate,
			&p.NonAcademicAuthors, &p.CompanyAffiliations, &p.CorrespondingEmail); err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
