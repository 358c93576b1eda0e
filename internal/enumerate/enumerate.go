// Package enumerate lists every repository a GitHub account can reach under
// the configured affiliations.
package enumerate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/y3pio/unicon/internal/contrib"
	"github.com/y3pio/unicon/internal/gateway"
	"github.com/y3pio/unicon/internal/log"
)

const perPage = 100

// EnumerationError reports a failed enumeration together with the
// repositories collected before the failure, so callers can decide whether
// a partial sweep is still useful.
type EnumerationError struct {
	Partial []contrib.RepoRef
	Err     error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("repository enumeration failed after %d repos: %v", len(e.Partial), e.Err)
}

func (e *EnumerationError) Unwrap() error {
	return e.Err
}

// Enumerator pages through the authenticated account's repositories.
type Enumerator struct {
	fetcher gateway.PageFetcher
}

func New(fetcher gateway.PageFetcher) *Enumerator {
	return &Enumerator{fetcher: fetcher}
}

type repoPayload struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Private bool   `json:"private"`
	Owner   struct {
		Login string `json:"login"`
	} `json:"owner"`
}

// Repos returns every reachable repository under the given affiliations,
// deduplicated by repository ID. Order follows the API listing. On failure
// the returned error is an *EnumerationError carrying the repositories
// collected so far.
func (e *Enumerator) Repos(ctx context.Context, affiliations []contrib.Affiliation) ([]contrib.RepoRef, error) {
	parts := make([]string, len(affiliations))
	for i, a := range affiliations {
		parts[i] = string(a)
	}
	endpoint := fmt.Sprintf("/user/repos?per_page=%d&affiliation=%s", perPage, strings.Join(parts, ","))

	var (
		repos  []contrib.RepoRef
		seen   = make(map[int64]struct{})
		cursor gateway.Cursor
	)
	for {
		items, next, err := e.fetcher.FetchPage(ctx, endpoint, cursor)
		if err != nil {
			return nil, &EnumerationError{Partial: repos, Err: err}
		}

		for _, raw := range items {
			var p repoPayload
			if err := json.Unmarshal(raw, &p); err != nil {
				log.Warn("enumerate: skipping undecodable repo entry: %v", err)
				continue
			}
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			repos = append(repos, contrib.RepoRef{
				ID:      p.ID,
				Owner:   p.Owner.Login,
				Name:    p.Name,
				Private: p.Private,
			})
		}

		if next == "" {
			break
		}
		cursor = next
	}

	log.Info("enumerate: found %d repositories across %d affiliations", len(repos), len(affiliations))
	return repos, nil
}
