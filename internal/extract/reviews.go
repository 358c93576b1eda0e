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

// ReviewExtractor lists code reviews submitted by the user. Pull requests
// are walked newest-activity first so a PR updated before the window start
// cannot carry an in-window review; each candidate PR's reviews are then
// filtered by reviewer and submission date. Dismissed reviews are dropped.
type ReviewExtractor struct {
	fetcher gateway.PageFetcher
	login   string
}

func NewReviewExtractor(fetcher gateway.PageFetcher, login string) *ReviewExtractor {
	return &ReviewExtractor{fetcher: fetcher, login: login}
}

func (e *ReviewExtractor) Kind() contrib.Kind {
	return contrib.KindReview
}

type reviewPayload struct {
	ID          int64  `json:"id"`
	State       string `json:"state"`
	CommitID    string `json:"commit_id"`
	SubmittedAt string `json:"submitted_at"`
	User        struct {
		Login string `json:"login"`
	} `json:"user"`
}

func (r reviewPayload) shortID() string {
	if r.CommitID != "" {
		return shortSHA(r.CommitID)
	}
	return fmt.Sprintf("review-%d", r.ID)
}

type reviewedPull struct {
	Number    int    `json:"number"`
	UpdatedAt string `json:"updated_at"`
}

func (e *ReviewExtractor) Extract(ctx context.Context, repo contrib.RepoRef, since time.Time) ([]contrib.Record, error) {
	pulls, err := e.candidatePulls(ctx, repo, since)
	if err != nil {
		return nil, err
	}

	var records []contrib.Record
	for _, number := range pulls {
		rs, err := e.pullReviews(ctx, repo, number, since)
		if err != nil {
			return nil, err
		}
		records = append(records, rs...)
	}
	return records, nil
}

// candidatePulls lists pull request numbers whose last activity falls inside
// the window, newest first.
func (e *ReviewExtractor) candidatePulls(ctx context.Context, repo contrib.RepoRef, since time.Time) ([]int, error) {
	endpoint := fmt.Sprintf("/repos/%s/%s/pulls?state=all&sort=updated&direction=desc&per_page=%d",
		repo.Owner, repo.Name, perPage)

	var (
		numbers []int
		cursor  gateway.Cursor
	)
	for {
		items, next, err := e.fetcher.FetchPage(ctx, endpoint, cursor)
		if err != nil {
			return nil, fmt.Errorf("list reviewed pull requests for %s: %w", repo.FullName(), err)
		}

		for _, raw := range items {
			var p reviewedPull
			if err := json.Unmarshal(raw, &p); err != nil {
				log.Warn("extract: %s: skipping undecodable pull request: %v", repo.FullName(), err)
				continue
			}
			updated, ok := parseAPITime(p.UpdatedAt)
			if !ok || updated.Before(since) {
				return numbers, nil
			}
			numbers = append(numbers, p.Number)
		}

		if next == "" {
			return numbers, nil
		}
		cursor = next
	}
}

func (e *ReviewExtractor) pullReviews(ctx context.Context, repo contrib.RepoRef, number int, since time.Time) ([]contrib.Record, error) {
	endpoint := fmt.Sprintf("/repos/%s/%s/pulls/%d/reviews?per_page=%d",
		repo.Owner, repo.Name, number, perPage)

	var (
		records []contrib.Record
		cursor  gateway.Cursor
	)
	for {
		items, next, err := e.fetcher.FetchPage(ctx, endpoint, cursor)
		if err != nil {
			return nil, fmt.Errorf("list reviews for %s#%d: %w", repo.FullName(), number, err)
		}

		for _, raw := range items {
			var r reviewPayload
			if err := json.Unmarshal(raw, &r); err != nil {
				log.Warn("extract: %s#%d: skipping undecodable review: %v", repo.FullName(), number, err)
				continue
			}
			if r.User.Login != e.login || r.State == "DISMISSED" {
				continue
			}
			submitted, ok := parseAPITime(r.SubmittedAt)
			if !ok {
				log.Warn("extract: %s#%d: review %d has no submission date, skipped", repo.FullName(), number, r.ID)
				continue
			}
			if submitted.Before(since) {
				continue
			}
			records = append(records, contrib.Record{
				Kind:       contrib.KindReview,
				RepoID:     repo.ID,
				ShortID:    r.shortID(),
				AuthorDate: submitted,
				Author:     e.login,
			})
		}

		if next == "" {
			return records, nil
		}
		cursor = next
	}
}
