// Package extract pulls per-repository contribution records from the GitHub
// API, one extractor per contribution kind. Extractors walk a repository
// sequentially; running different kinds concurrently is the caller's job.
package extract

import (
	"context"
	"time"

	"github.com/y3pio/unicon/internal/contrib"
	"github.com/y3pio/unicon/internal/log"
)

const perPage = 100

// Extractor pulls one kind of contribution out of a single repository.
type Extractor interface {
	Kind() contrib.Kind
	// Extract returns the records authored by the configured user in repo
	// on or after since.
	Extract(ctx context.Context, repo contrib.RepoRef, since time.Time) ([]contrib.Record, error)
}

// shortSHA truncates a full object SHA to the 7-character short form.
func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

// parseAPITime parses the RFC 3339 timestamps the API emits. The zero time
// and false are returned for anything unparseable; callers skip such
// records rather than fabricating a date.
func parseAPITime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		log.Warn("extract: unparseable timestamp %q: %v", s, err)
		return time.Time{}, false
	}
	return t.UTC(), true
}
