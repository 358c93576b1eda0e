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

// PullRequestExtractor lists pull requests opened by the user. The pulls
// endpoint cannot filter by author or date, so the listing is walked newest
// first and abandoned once creation dates cross the window start.
type PullRequestExtractor struct {
	fetcher gateway.PageFetcher
	login   string
}

func NewPullRequestExtractor(fetcher gateway.PageFetcher, login string) *PullRequestExtractor {
	return &PullRequestExtractor{fetcher: fetcher, login: login}
}

func (e *PullRequestExtractor) Kind() contrib.Kind {
	return contrib.KindPullRequest
}

type pullPayload struct {
	Number         int    `json:"number"`
	CreatedAt      string `json:"created_at"`
	MergeCommitSHA string `json:"merge_commit_sha"`
	User           struct {
		Login string `json:"login"`
	} `json:"user"`
}

// shortID prefers the merge commit SHA so the identifier lines up with the
// commit history; unmerged pull requests fall back to pr-<number>.
func (p pullPayload) shortID() string {
	if p.MergeCommitSHA != "" {
		return shortSHA(p.MergeCommitSHA)
	}
	return fmt.Sprintf("pr-%d", p.Number)
}

func (e *PullRequestExtractor) Extract(ctx context.Context, repo contrib.RepoRef, since time.Time) ([]contrib.Record, error) {
	endpoint := fmt.Sprintf("/repos/%s/%s/pulls?state=all&sort=created&direction=desc&per_page=%d",
		repo.Owner, repo.Name, perPage)

	var (
		records []contrib.Record
		cursor  gateway.Cursor
	)
	for {
		items, next, err := e.fetcher.FetchPage(ctx, endpoint, cursor)
		if err != nil {
			return nil, fmt.Errorf("list pull requests for %s: %w", repo.FullName(), err)
		}

		for _, raw := range items {
			var p pullPayload
			if err := json.Unmarshal(raw, &p); err != nil {
				log.Warn("extract: %s: skipping undecodable pull request: %v", repo.FullName(), err)
				continue
			}
			created, ok := parseAPITime(p.CreatedAt)
			if !ok {
				log.Warn("extract: %s: pull request #%d has no creation date, skipped", repo.FullName(), p.Number)
				continue
			}
			// Listing is newest first: everything past this point predates
			// the window.
			if created.Before(since) {
				return records, nil
			}
			if p.User.Login != e.login {
				continue
			}
			records = append(records, contrib.Record{
				Kind:       contrib.KindPullRequest,
				RepoID:     repo.ID,
				ShortID:    p.shortID(),
				AuthorDate: created,
				Author:     e.login,
			})
		}

		if next == "" {
			return records, nil
		}
		cursor = next
	}
}
