// Package export moves contribution records across the NDA boundary: the
// fetch side writes them to per-kind CSV files, the import side turns those
// CSVs into artifact files inside the replay repository. The CSV is the
// only thing meant to travel between machines.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/y3pio/unicon/internal/contrib"
	"github.com/y3pio/unicon/internal/log"
)

// csvHeader is the fixed column set of an export file. Three columns only;
// repository names and titles are deliberately absent.
var csvHeader = []string{"author_date", "short_identifier", "author_identity"}

const dateLayout = time.RFC3339

// Export writes the records of one kind to <dir>/<kind>.csv, deduplicated
// and atomically: the file appears complete or not at all. Nothing is
// written when records is empty.
func Export(dir string, kind contrib.Kind, records []contrib.Record) (int, error) {
	records = contrib.Dedup(records)
	if len(records) == 0 {
		log.Debug("export: no %s to write", kind.Plural())
		return 0, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create export dir: %w", err)
	}

	target := filepath.Join(dir, kind.CSVName())
	tmp, err := os.CreateTemp(dir, kind.CSVName()+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("create temp export file: %w", err)
	}
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("write export header: %w", err)
	}
	for _, r := range records {
		row := []string{r.AuthorDate.UTC().Format(dateLayout), r.ShortID, r.Author}
		if err := w.Write(row); err != nil {
			return 0, fmt.Errorf("write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("flush export file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close temp export file: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return 0, fmt.Errorf("publish export file: %w", err)
	}
	tmp = nil

	log.Info("export: wrote %d %s to %s", len(records), kind.Plural(), target)
	return len(records), nil
}
