package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/y3pio/unicon/internal/artifact"
	"github.com/y3pio/unicon/internal/contrib"
	"github.com/y3pio/unicon/internal/log"
)

// ErrCollision marks an artifact path already occupied by different
// content. The existing file is left untouched.
var ErrCollision = errors.New("artifact collision")

// ImportStats summarizes one import pass.
type ImportStats struct {
	Total      int // CSV rows seen, header excluded
	Valid      int // rows that parsed into a contribution
	Discarded  int // rows dropped as malformed
	Imported   int // artifact files newly written
	Skipped    int // artifacts already present with identical content
	Collisions int // paths occupied by different content
}

// Import reads every per-kind CSV under csvDir and materializes artifact
// files under replayRoot. The pass is idempotent: existing artifacts with
// identical content are skipped. A CSV is deleted only after every one of
// its rows has been fully handled without write failures or collisions, so
// an interrupted import can simply be rerun.
func Import(csvDir, replayRoot string) (ImportStats, error) {
	var stats ImportStats
	var firstErr error

	for _, kind := range contrib.AllKinds {
		csvPath := filepath.Join(csvDir, kind.CSVName())
		if _, err := os.Stat(csvPath); os.IsNotExist(err) {
			continue
		}

		clean, err := importKind(csvPath, replayRoot, kind, &stats)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if clean {
			if err := os.Remove(csvPath); err != nil {
				log.Warn("import: could not remove %s: %v", csvPath, err)
			} else {
				log.Debug("import: removed consumed %s", csvPath)
			}
		} else {
			log.Warn("import: keeping %s for a rerun", csvPath)
		}
	}

	return stats, firstErr
}

// importKind processes one CSV. clean reports whether every row landed and
// the file may be deleted.
func importKind(csvPath, replayRoot string, kind contrib.Kind, stats *ImportStats) (clean bool, err error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", csvPath, err)
	}
	defer f.Close()

	dir := filepath.Join(replayRoot, kind.DirName())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create %s: %w", dir, err)
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header := true
	clean = true
	for {
		row, rerr := r.Read()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			// The reader cannot recover mid-file; what was written stays
			return false, fmt.Errorf("read %s: %w", csvPath, rerr)
		}
		if header {
			header = false
			continue
		}

		stats.Total++
		date, shortID, author, ok := parseRow(row)
		if !ok {
			stats.Discarded++
			log.Warn("import: %s: discarding malformed row %v", kind.CSVName(), row)
			continue
		}
		stats.Valid++

		path := filepath.Join(dir, artifact.FileName(date, shortID))
		body := []byte(artifact.Body(kind, date, shortID, author))

		switch werr := writeArtifact(path, body); {
		case werr == nil:
			stats.Imported++
		case errors.Is(werr, errExists):
			stats.Skipped++
		case errors.Is(werr, ErrCollision):
			stats.Collisions++
			clean = false
			if err == nil {
				err = fmt.Errorf("%s: %w", filepath.Base(path), ErrCollision)
			}
		default:
			clean = false
			if err == nil {
				err = werr
			}
		}
	}

	return clean, err
}

var errExists = errors.New("artifact already present")

// writeArtifact creates path with body. An existing file with the same
// content yields errExists; different content yields ErrCollision. The
// existing file is never overwritten.
func writeArtifact(path string, body []byte) error {
	existing, err := os.ReadFile(path)
	if err == nil {
		if bytes.Equal(existing, body) {
			return errExists
		}
		return ErrCollision
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("probe %s: %w", path, err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func parseRow(row []string) (date time.Time, shortID, author string, ok bool) {
	if len(row) != 3 || row[1] == "" || row[2] == "" {
		return time.Time{}, "", "", false
	}
	t, err := time.Parse(dateLayout, row[0])
	if err != nil {
		return time.Time{}, "", "", false
	}
	return t.UTC(), row[1], row[2], true
}
