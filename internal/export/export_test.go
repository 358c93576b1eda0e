package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/y3pio/unicon/internal/contrib"
)

func sampleRecords() []contrib.Record {
	d := time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC)
	return []contrib.Record{
		{Kind: contrib.KindCommit, RepoID: 1, ShortID: "abc1234", AuthorDate: d, Author: "dev"},
		{Kind: contrib.KindCommit, RepoID: 2, ShortID: "abc1234", AuthorDate: d, Author: "dev"},
		{Kind: contrib.KindCommit, RepoID: 1, ShortID: "def5678", AuthorDate: d.Add(time.Hour), Author: "dev"},
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()

	n, err := Export(dir, contrib.KindCommit, sampleRecords())
	require.NoError(t, err)
	require.Equal(t, 2, n, "duplicate short identifier collapsed")

	f, err := os.Open(filepath.Join(dir, "commits.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"author_date", "short_identifier", "author_identity"}, rows[0])
	require.Equal(t, []string{"2024-03-05T10:20:30Z", "abc1234", "dev"}, rows[1])
	require.Equal(t, "def5678", rows[2][1])

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestExportEmptyWritesNothing(t *testing.T) {
	dir := t.TempDir()

	n, err := Export(dir, contrib.KindReview, nil)
	require.NoError(t, err)
	require.Zero(t, n)
	require.NoFileExists(t, filepath.Join(dir, "code-reviews.csv"))
}

func TestImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	replay := t.TempDir()

	_, err := Export(dir, contrib.KindCommit, sampleRecords())
	require.NoError(t, err)

	stats, err := Import(dir, replay)
	require.NoError(t, err)
	require.Equal(t, ImportStats{Total: 2, Valid: 2, Imported: 2}, stats)

	body, err := os.ReadFile(filepath.Join(replay, "commits", "2024-03-05T10-20-30-abc1234.md"))
	require.NoError(t, err)
	require.Equal(t, "# Commit\n\n- **Date**: 2024-03-05 10:20:30\n- **SHA**: abc1234\n- **Author**: dev\n", string(body))

	// Consumed CSV is gone
	require.NoFileExists(t, filepath.Join(dir, "commits.csv"))
}

func TestImportIdempotent(t *testing.T) {
	dir := t.TempDir()
	replay := t.TempDir()

	_, err := Export(dir, contrib.KindCommit, sampleRecords())
	require.NoError(t, err)
	_, err = Import(dir, replay)
	require.NoError(t, err)

	// Same CSV again: everything already present
	_, err = Export(dir, contrib.KindCommit, sampleRecords())
	require.NoError(t, err)
	stats, err := Import(dir, replay)
	require.NoError(t, err)
	require.Equal(t, 2, stats.Skipped)
	require.Zero(t, stats.Imported)
	require.NoFileExists(t, filepath.Join(dir, "commits.csv"))
}

func TestImportCollisionKeepsCSVAndFile(t *testing.T) {
	dir := t.TempDir()
	replay := t.TempDir()

	_, err := Export(dir, contrib.KindCommit, sampleRecords()[:1])
	require.NoError(t, err)

	// Occupy the target path with foreign content
	target := filepath.Join(replay, "commits", "2024-03-05T10-20-30-abc1234.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("something else\n"), 0o644))

	stats, err := Import(dir, replay)
	require.ErrorIs(t, err, ErrCollision)
	require.Equal(t, 1, stats.Collisions)

	// Neither side is clobbered: existing file intact, CSV kept for a rerun
	body, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, "something else\n", string(body))
	require.FileExists(t, filepath.Join(dir, "commits.csv"))
}

func TestImportDiscardsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	replay := t.TempDir()

	csvBody := "author_date,short_identifier,author_identity\n" +
		"2024-03-05T10:20:30Z,abc1234,dev\n" +
		"not-a-date,xyz,dev\n" +
		"2024-03-05T11:00:00Z,,dev\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pull-requests.csv"), []byte(csvBody), 0o644))

	stats, err := Import(dir, replay)
	require.NoError(t, err)
	require.Equal(t, ImportStats{Total: 3, Valid: 1, Discarded: 2, Imported: 1}, stats)

	// Malformed rows never block consumption
	require.NoFileExists(t, filepath.Join(dir, "pull-requests.csv"))
}

func TestImportNoCSVs(t *testing.T) {
	stats, err := Import(t.TempDir(), t.TempDir())
	require.NoError(t, err)
	require.Equal(t, ImportStats{}, stats)
}
