// Package artifact renders contribution records as markdown files inside
// the replay repository and scans existing files back out. An artifact
// carries only the contribution date, its short identifier, and the author
// identity; nothing else about the source repository survives the export.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/y3pio/unicon/internal/contrib"
	"github.com/y3pio/unicon/internal/format"
	"github.com/y3pio/unicon/internal/log"
)

// fileNameLayout orders artifact files chronologically under a plain
// lexicographic sort.
const fileNameLayout = "2006-01-02T15-04-05"

// FileName returns the artifact file name for a contribution.
func FileName(date time.Time, shortID string) string {
	return date.UTC().Format(fileNameLayout) + "-" + shortID + ".md"
}

// ParseFileDate recovers the contribution date from an artifact file name.
func ParseFileDate(name string) (time.Time, error) {
	base := strings.TrimSuffix(name, ".md")
	if len(base) < len(fileNameLayout) {
		return time.Time{}, fmt.Errorf("artifact name too short: %q", name)
	}
	t, err := time.Parse(fileNameLayout, base[:len(fileNameLayout)])
	if err != nil {
		return time.Time{}, fmt.Errorf("artifact name %q: %w", name, err)
	}
	return t.UTC(), nil
}

// Body renders the markdown content of an artifact.
func Body(kind contrib.Kind, date time.Time, shortID, author string) string {
	label := "ID"
	if kind == contrib.KindCommit {
		label = "SHA"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", kind.Title())
	fmt.Fprintf(&b, "- **Date**: %s\n", format.Full(date.UTC()))
	fmt.Fprintf(&b, "- **%s**: %s\n", label, shortID)
	fmt.Fprintf(&b, "- **Author**: %s\n", author)
	return b.String()
}

// File is one artifact found on disk.
type File struct {
	Kind contrib.Kind
	Path string
	Name string
	Date time.Time
}

// Scan walks the kind directories under root and returns every artifact,
// sorted by contribution date ascending (ties broken by name for a stable
// order). Files whose names do not carry a parseable date are skipped.
func Scan(root string) ([]File, error) {
	var files []File
	for _, kind := range contrib.AllKinds {
		dir := filepath.Join(root, kind.DirName())
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, ".md") || name == "README.md" {
				continue
			}
			date, err := ParseFileDate(name)
			if err != nil {
				log.Warn("artifact: skipping %s: %v", name, err)
				continue
			}
			files = append(files, File{
				Kind: kind,
				Path: filepath.Join(dir, name),
				Name: name,
				Date: date,
			})
		}
	}

	sort.Slice(files, func(i, j int) bool {
		if !files[i].Date.Equal(files[j].Date) {
			return files[i].Date.Before(files[j].Date)
		}
		return files[i].Name < files[j].Name
	})
	return files, nil
}
