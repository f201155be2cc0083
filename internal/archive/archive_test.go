// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/get-papers/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecords() []types.FilteredRecord {
	return []types.FilteredRecord{
		{
			PubmedID:            "38000002",
			Title:               "Second by id, first saved",
			PublicationDate:     "2020-01",
			NonAcademicAuthors:  "Smith Jane",
			CompanyAffiliations: "XYZ Pharma Inc",
			CorrespondingEmail:  "jane@xyz.com",
		},
		{
			PubmedID:           "38000001",
			Title:              "First by id",
			PublicationDate:    "2019",
			NonAcademicAuthors: "Ng Tom",
		},
	}
}

func TestSaveRunAndRecords(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveRun(ctx, "cancer AND pharma", sampleRecords())
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err, "run id should be a UUID")

	got, err := s.Records(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), got)
}

func TestRunsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first, err := s.SaveRun(ctx, "first query", sampleRecords())
	require.NoError(t, err)
	second, err := s.SaveRun(ctx, "second query", nil)
	require.NoError(t, err)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, "second query", runs[0].Query)
	assert.Equal(t, 0, runs[0].RecordCount)
	assert.Equal(t, base.Add(2*time.Minute), runs[0].CreatedAt)

	assert.Equal(t, first, runs[1].ID)
	assert.Equal(t, 2, runs[1].RecordCount)
}

func TestRecordsEmptyRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveRun(ctx, "nothing matched", nil)
	require.NoError(t, err)

	got, err := s.Records(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecordsUnknownRun(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Records(context.Background(), "no-such-run")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	id, err := s.SaveRun(ctx, "persisted", sampleRecords())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
}

func TestSaveRunCancelledContext(t *testing.T) {
	s := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.SaveRun(ctx, "q", sampleRecords())
	assert.Error(t, err)

	runs, err := s.Runs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)
}
