package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/y3pio/unicon/internal/contrib"
	"github.com/y3pio/unicon/internal/gateway"
	"github.com/y3pio/unicon/internal/log"
)

// CommitExtractor lists commits authored by the user. The commits endpoint
// filters server-side by author and since, so no early stop is needed.
type CommitExtractor struct {
	fetcher gateway.PageFetcher
	login   string
}

func NewCommitExtractor(fetcher gateway.PageFetcher, login string) *CommitExtractor {
	return &CommitExtractor{fetcher: fetcher, login: login}
}

func (e *CommitExtractor) Kind() contrib.Kind {
	return contrib.KindCommit
}

type commitPayload struct {
	SHA    string `json:"sha"`
	Commit struct {
		Author struct {
			Name string `json:"name"`
			Date string `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

func (e *CommitExtractor) Extract(ctx context.Context, repo contrib.RepoRef, since time.Time) ([]contrib.Record, error) {
	endpoint := fmt.Sprintf("/repos/%s/%s/commits?author=%s&since=%s&per_page=%d",
		repo.Owner, repo.Name, e.login, since.UTC().Format(time.RFC3339), perPage)

	var (
		records []contrib.Record
		cursor  gateway.Cursor
	)
	for {
		items, next, err := e.fetcher.FetchPage(ctx, endpoint, cursor)
		if err != nil {
			return nil, fmt.Errorf("list commits for %s: %w", repo.FullName(), err)
		}

		for _, raw := range items {
			var p commitPayload
			if err := json.Unmarshal(raw, &p); err != nil {
				log.Warn("extract: %s: skipping undecodable commit: %v", repo.FullName(), err)
				continue
			}
			date, ok := parseAPITime(p.Commit.Author.Date)
			if !ok {
				log.Warn("extract: %s: commit %s has no author date, skipped", repo.FullName(), shortSHA(p.SHA))
				continue
			}
			author := p.Commit.Author.Name
			if author == "" {
				author = e.login
			}
			records = append(records, contrib.Record{
				Kind:       contrib.KindCommit,
				RepoID:     repo.ID,
				ShortID:    shortSHA(p.SHA),
				AuthorDate: date,
				Author:     author,
			})
		}

		if next == "" {
			return records, nil
		}
		cursor = next
	}
}
