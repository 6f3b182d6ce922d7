// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testPapers() []types.Paper {
	return []types.Paper{
		{PMID: "2", Title: "Second", PublicationDate: "2021", NonAcademicAuthors: "B", CompanyAffiliations: "B Corp", CorrespondingEmail: types.NotAvailable},
		{PMID: "1", Title: "First", PublicationDate: "2020", NonAcademicAuthors: "A; C", CompanyAffiliations: "A Pharma", CorrespondingEmail: "a@pharma.com"},
	}
}

func TestSaveRunAssignsUUID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveRun(ctx, Run{Query: "cancer", Years: []string{"2020", "2021"}, Limit: 50}, testPapers())
	require.NoError(t, err)

	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	got, err := s.Papers(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, testPapers(), got, "order preserved")
}

func TestSaveRunKeepsRunsSeparate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.SaveRun(ctx, Run{Query: "a"}, testPapers())
	require.NoError(t, err)
	second, err := s.SaveRun(ctx, Run{ID: "fixed-id", Query: "b"}, testPapers()[:1])
	require.NoError(t, err)

	assert.Equal(t, "fixed-id", second)
	assert.NotEqual(t, first, second)

	got, err := s.Papers(ctx, second)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSaveRunLargeRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	const n = 10000
	papers := make([]types.Paper, n)
	for i := range papers {
		papers[i] = types.Paper{PMID: strconv.Itoa(i), Title: "T", CorrespondingEmail: types.NotAvailable}
	}

	id, err := s.SaveRun(ctx, Run{Query: "big", Limit: n}, papers)
	require.NoError(t, err)

	got, err := s.Papers(ctx, id)
	require.NoError(t, err)
	require.Len(t, got, n)
	assert.Equal(t, "0", got[0].PMID)
	assert.Equal(t, strconv.Itoa(insertBatch), got[insertBatch].PMID)
	assert.Equal(t, strconv.Itoa(n-1), got[n-1].PMID)
}

func TestSaveRunWithoutPapers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveRun(ctx, Run{Query: "nothing"}, nil)
	require.NoError(t, err)

	got, err := s.Papers(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveRunDuplicateIDFails(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.SaveRun(ctx, Run{ID: "dup", Query: "a"}, testPapers())
	require.NoError(t, err)
	_, err = s.SaveRun(ctx, Run{ID: "dup", Query: "a"}, testPapers())
	assert.Error(t, err)

	got, err := s.Papers(ctx, "dup")
	require.NoError(t, err)
	assert.Len(t, got, 2, "failed run rolled back")
}

func TestOpenReusesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.SaveRun(context.Background(), Run{ID: "r1", Query: "q"}, testPapers())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Papers(context.Background(), "r1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
