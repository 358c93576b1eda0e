package extract

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/y3pio/unicon/internal/contrib"
	"github.com/y3pio/unicon/internal/gateway"
)

var testRepo = contrib.RepoRef{ID: 42, Owner: "acme", Name: "widgets"}

// fakeFetcher serves canned pages. The first page of an endpoint is keyed
// by the endpoint path; follow-up pages by their cursor.
type fakeFetcher struct {
	pages    map[string]fakePage
	requests []string
	errOn    string
	err      error
}

type fakePage struct {
	items []string
	next  gateway.Cursor
}

func (f *fakeFetcher) FetchPage(_ context.Context, endpoint string, cursor gateway.Cursor) ([]json.RawMessage, gateway.Cursor, error) {
	key := endpoint
	if cursor != "" {
		key = string(cursor)
	}
	f.requests = append(f.requests, key)
	if f.err != nil && key == f.errOn {
		return nil, "", f.err
	}
	page, ok := f.pages[key]
	if !ok {
		return nil, "", errors.New("unexpected request: " + key)
	}
	out := make([]json.RawMessage, len(page.items))
	for i, s := range page.items {
		out[i] = json.RawMessage(s)
	}
	return out, page.next, nil
}

func TestCommitExtractor(t *testing.T) {
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	endpoint := "/repos/acme/widgets/commits?author=dev&since=2024-01-01T00:00:00Z&per_page=100"

	f := &fakeFetcher{pages: map[string]fakePage{
		endpoint: {
			items: []string{
				`{"sha":"aaaa111bbbb","commit":{"author":{"name":"Dev Eloper","date":"2024-03-05T10:20:30Z"}}}`,
			},
			next: "p2",
		},
		"p2": {
			items: []string{
				`{"sha":"cccc222dddd","commit":{"author":{"name":"","date":"2024-02-01T08:00:00Z"}}}`,
				`{"sha":"eeee333ffff","commit":{"author":{"name":"Dev Eloper","date":""}}}`,
			},
		},
	}}

	records, err := NewCommitExtractor(f, "dev").Extract(context.Background(), testRepo, since)
	require.NoError(t, err)
	require.Len(t, records, 2, "the dateless commit is skipped")

	require.Equal(t, "aaaa111", records[0].ShortID)
	require.Equal(t, "Dev Eloper", records[0].Author)
	require.Equal(t, time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC), records[0].AuthorDate)
	require.Equal(t, contrib.KindCommit, records[0].Kind)
	require.Equal(t, int64(42), records[0].RepoID)

	// Empty author name falls back to the login
	require.Equal(t, "dev", records[1].Author)
}

func TestCommitExtractor_FetchError(t *testing.T) {
	boom := errors.New("rate limited")
	endpoint := "/repos/acme/widgets/commits?author=dev&since=2024-01-01T00:00:00Z&per_page=100"
	f := &fakeFetcher{pages: map[string]fakePage{}, errOn: endpoint, err: boom}

	_, err := NewCommitExtractor(f, "dev").Extract(context.Background(),
		testRepo, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, boom)
}

func TestPullRequestExtractor_FiltersAndStopsEarly(t *testing.T) {
	since := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	endpoint := "/repos/acme/widgets/pulls?state=all&sort=created&direction=desc&per_page=100"

	f := &fakeFetcher{pages: map[string]fakePage{
		endpoint: {
			items: []string{
				`{"number":30,"created_at":"2024-07-01T00:00:00Z","merge_commit_sha":"feedbeefcafe","user":{"login":"dev"}}`,
				`{"number":29,"created_at":"2024-06-20T00:00:00Z","merge_commit_sha":"","user":{"login":"dev"}}`,
				`{"number":28,"created_at":"2024-06-10T00:00:00Z","merge_commit_sha":"aaaa","user":{"login":"someone-else"}}`,
				`{"number":5,"created_at":"2024-01-01T00:00:00Z","merge_commit_sha":"bbbb","user":{"login":"dev"}}`,
			},
			next: "never-fetched",
		},
	}}

	records, err := NewPullRequestExtractor(f, "dev").Extract(context.Background(), testRepo, since)
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.Equal(t, "feedbee", records[0].ShortID)
	require.Equal(t, "pr-29", records[1].ShortID, "unmerged PR falls back to its number")

	// The page pointed at a next cursor, but dates crossed the window start
	require.Len(t, f.requests, 1, "listing abandoned at the window boundary")
}

func TestReviewExtractor(t *testing.T) {
	since := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	pullsEndpoint := "/repos/acme/widgets/pulls?state=all&sort=updated&direction=desc&per_page=100"

	f := &fakeFetcher{pages: map[string]fakePage{
		pullsEndpoint: {
			items: []string{
				`{"number":7,"updated_at":"2024-07-01T00:00:00Z"}`,
				`{"number":3,"updated_at":"2024-01-01T00:00:00Z"}`,
			},
		},
		"/repos/acme/widgets/pulls/7/reviews?per_page=100": {
			items: []string{
				`{"id":501,"state":"APPROVED","commit_id":"abc1234def","submitted_at":"2024-06-15T09:00:00Z","user":{"login":"dev"}}`,
				`{"id":502,"state":"DISMISSED","commit_id":"abc1234def","submitted_at":"2024-06-16T09:00:00Z","user":{"login":"dev"}}`,
				`{"id":503,"state":"CHANGES_REQUESTED","commit_id":"","submitted_at":"2024-06-17T09:00:00Z","user":{"login":"someone-else"}}`,
				`{"id":504,"state":"COMMENTED","commit_id":"","submitted_at":"2024-05-01T09:00:00Z","user":{"login":"dev"}}`,
			},
		},
	}}

	records, err := NewReviewExtractor(f, "dev").Extract(context.Background(), testRepo, since)
	require.NoError(t, err)
	require.Len(t, records, 1, "dismissed, foreign, and out-of-window reviews are dropped")

	require.Equal(t, "abc1234", records[0].ShortID)
	require.Equal(t, contrib.KindReview, records[0].Kind)
	require.Equal(t, time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC), records[0].AuthorDate)

	// PR #3 went quiet before the window and is never queried for reviews
	for _, req := range f.requests {
		require.NotContains(t, req, "/pulls/3/")
	}
}

func TestReviewExtractor_FallbackID(t *testing.T) {
	r := reviewPayload{ID: 991}
	require.Equal(t, "review-991", r.shortID())
}

func TestShortSHA(t *testing.T) {
	require.Equal(t, "abcdef0", shortSHA("abcdef0123456789"))
	require.Equal(t, "abc", shortSHA("abc"))
}
