package contrib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKindNames(t *testing.T) {
	require.Equal(t, "commit", KindCommit.String())
	require.Equal(t, "pull-request", KindPullRequest.String())
	require.Equal(t, "code-review", KindReview.String())

	require.Equal(t, "commits.csv", KindCommit.CSVName())
	require.Equal(t, "pull-requests.csv", KindPullRequest.CSVName())
	require.Equal(t, "code-reviews.csv", KindReview.CSVName())

	require.Equal(t, "Pull Request", KindPullRequest.Title())
	require.Equal(t, "code reviews", KindReview.Plural())
}

func TestParseKind(t *testing.T) {
	for _, alias := range []string{"commit", "Commits", " commit "} {
		k, err := ParseKind(alias)
		require.NoError(t, err)
		require.Equal(t, KindCommit, k)
	}

	k, err := ParseKind("prs")
	require.NoError(t, err)
	require.Equal(t, KindPullRequest, k)

	k, err = ParseKind("review")
	require.NoError(t, err)
	require.Equal(t, KindReview, k)

	_, err = ParseKind("issues")
	require.Error(t, err)
}

func TestParseAffiliation(t *testing.T) {
	a, err := ParseAffiliation("owner")
	require.NoError(t, err)
	require.Equal(t, AffiliationOwner, a)

	a, err = ParseAffiliation("org-member")
	require.NoError(t, err)
	require.Equal(t, AffiliationOrgMember, a)

	_, err = ParseAffiliation("stranger")
	require.Error(t, err)
}

func TestRecordKey(t *testing.T) {
	r := Record{Kind: KindCommit, ShortID: "abc1234"}
	require.Equal(t, "commit:abc1234", r.Key())

	// Same identifier under a different kind is a different contribution
	pr := Record{Kind: KindPullRequest, ShortID: "abc1234"}
	require.NotEqual(t, r.Key(), pr.Key())
}

func TestDedup(t *testing.T) {
	d1 := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	d2 := d1.Add(time.Hour)

	records := []Record{
		{Kind: KindCommit, RepoID: 1, ShortID: "aaa", AuthorDate: d1, Author: "dev"},
		{Kind: KindCommit, RepoID: 2, ShortID: "aaa", AuthorDate: d2, Author: "dev"},
		{Kind: KindPullRequest, RepoID: 1, ShortID: "aaa", AuthorDate: d1, Author: "dev"},
		{Kind: KindCommit, RepoID: 1, ShortID: "bbb", AuthorDate: d1, Author: "dev"},
	}

	out := Dedup(records)
	require.Len(t, out, 3)
	// First occurrence wins: the fork copy from repo 2 is dropped
	require.Equal(t, int64(1), out[0].RepoID)
	require.Equal(t, "aaa", out[0].ShortID)
	require.Equal(t, KindPullRequest, out[1].Kind)
	require.Equal(t, "bbb", out[2].ShortID)
}

func TestDedupEmpty(t *testing.T) {
	require.Empty(t, Dedup(nil))
}
