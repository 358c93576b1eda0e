package artifact

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/y3pio/unicon/internal/contrib"
)

func TestFileName(t *testing.T) {
	date := time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC)
	require.Equal(t, "2024-03-05T10-20-30-abc1234.md", FileName(date, "abc1234"))
}

func TestFileNameNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("plus2", 2*3600)
	date := time.Date(2024, 3, 5, 12, 20, 30, 0, loc)
	require.Equal(t, "2024-03-05T10-20-30-abc1234.md", FileName(date, "abc1234"))
}

func TestParseFileDate(t *testing.T) {
	date, err := ParseFileDate("2024-03-05T10-20-30-abc1234.md")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC), date)

	_, err = ParseFileDate("README.md")
	require.Error(t, err)

	_, err = ParseFileDate("2024-99-99T00-00-00-x.md")
	require.Error(t, err)
}

func TestFileNameRoundTrip(t *testing.T) {
	date := time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)
	name := FileName(date, "pr-17")
	parsed, err := ParseFileDate(name)
	require.NoError(t, err)
	require.True(t, date.Equal(parsed))
}

func TestBody(t *testing.T) {
	date := time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC)

	body := Body(contrib.KindCommit, date, "abc1234", "dev")
	require.Equal(t, "# Commit\n\n- **Date**: 2024-03-05 10:20:30\n- **SHA**: abc1234\n- **Author**: dev\n", body)

	body = Body(contrib.KindPullRequest, date, "pr-17", "dev")
	require.Contains(t, body, "# Pull Request\n")
	require.Contains(t, body, "- **ID**: pr-17\n")
}

func TestScan(t *testing.T) {
	root := t.TempDir()

	write := func(dir, name string) {
		full := filepath.Join(root, dir)
		require.NoError(t, os.MkdirAll(full, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(full, name), []byte("x"), 0o644))
	}

	write("commits", "2024-03-05T10-20-30-bbb.md")
	write("commits", "2024-01-01T00-00-00-aaa.md")
	write("commits", "README.md")
	write("commits", "notes.txt")
	write("pull-requests", "2024-02-01T12-00-00-pr-3.md")
	write("code-reviews", "garbage-name.md")

	files, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, files, 3)

	// Chronological across kinds
	require.Equal(t, "2024-01-01T00-00-00-aaa.md", files[0].Name)
	require.Equal(t, contrib.KindPullRequest, files[1].Kind)
	require.Equal(t, "2024-03-05T10-20-30-bbb.md", files[2].Name)
	require.Equal(t, filepath.Join(root, "commits", files[2].Name), files[2].Path)
}

func TestScanMissingRoot(t *testing.T) {
	files, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	require.Empty(t, files)
}
