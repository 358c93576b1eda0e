// Package contrib defines the contribution model shared by the fetch,
// export, import, and replay stages.
package contrib

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies one class of GitHub contribution.
type Kind int

const (
	KindCommit Kind = iota
	KindPullRequest
	KindReview
)

// AllKinds lists every kind in canonical order.
var AllKinds = []Kind{KindCommit, KindPullRequest, KindReview}

// String returns the canonical lowercase name used in flags and logs.
func (k Kind) String() string {
	switch k {
	case KindCommit:
		return "commit"
	case KindPullRequest:
		return "pull-request"
	case KindReview:
		return "code-review"
	default:
		return "unknown"
	}
}

// Plural returns the human-facing plural label for summaries.
func (k Kind) Plural() string {
	switch k {
	case KindCommit:
		return "commits"
	case KindPullRequest:
		return "pull requests"
	case KindReview:
		return "code reviews"
	default:
		return "unknown"
	}
}

// CSVName returns the export file name for the kind.
func (k Kind) CSVName() string {
	switch k {
	case KindCommit:
		return "commits.csv"
	case KindPullRequest:
		return "pull-requests.csv"
	case KindReview:
		return "code-reviews.csv"
	default:
		return "unknown.csv"
	}
}

// DirName returns the artifact directory name for the kind inside the
// replay repository.
func (k Kind) DirName() string {
	switch k {
	case KindCommit:
		return "commits"
	case KindPullRequest:
		return "pull-requests"
	case KindReview:
		return "code-reviews"
	default:
		return "unknown"
	}
}

// Title returns the heading used in artifact files.
func (k Kind) Title() string {
	switch k {
	case KindCommit:
		return "Commit"
	case KindPullRequest:
		return "Pull Request"
	case KindReview:
		return "Code Review"
	default:
		return "Unknown"
	}
}

// ParseKind maps a user-supplied name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "commit", "commits":
		return KindCommit, nil
	case "pull-request", "pull-requests", "pr", "prs":
		return KindPullRequest, nil
	case "code-review", "code-reviews", "review", "reviews":
		return KindReview, nil
	}
	return 0, fmt.Errorf("unknown contribution kind %q", s)
}

// Affiliation selects which repository relationships to enumerate.
type Affiliation string

const (
	AffiliationOwner        Affiliation = "owner"
	AffiliationCollaborator Affiliation = "collaborator"
	AffiliationOrgMember    Affiliation = "organization_member"
)

// AllAffiliations lists every affiliation in canonical order.
var AllAffiliations = []Affiliation{AffiliationOwner, AffiliationCollaborator, AffiliationOrgMember}

// ParseAffiliation maps a user-supplied name to an Affiliation.
func ParseAffiliation(s string) (Affiliation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "owner":
		return AffiliationOwner, nil
	case "collaborator":
		return AffiliationCollaborator, nil
	case "organization_member", "organization-member", "org-member", "member":
		return AffiliationOrgMember, nil
	}
	return "", fmt.Errorf("unknown affiliation %q", s)
}

// RepoRef identifies one repository the account can reach.
type RepoRef struct {
	ID      int64
	Owner   string
	Name    string
	Private bool
}

// FullName returns owner/name.
func (r RepoRef) FullName() string {
	return r.Owner + "/" + r.Name
}

// Record is one contribution with everything the pipeline is allowed to
// keep: a date, a short identifier, and the author identity. Repository
// names, commit messages, and review bodies never enter a Record.
type Record struct {
	Kind       Kind
	RepoID     int64
	ShortID    string
	AuthorDate time.Time
	Author     string
}

// Key returns the identity used for cross-repository deduplication.
func (r Record) Key() string {
	return r.Kind.String() + ":" + r.ShortID
}

// Dedup drops records whose Key was already seen, keeping the first
// occurrence and preserving order.
func Dedup(records []Record) []Record {
	seen := make(map[string]struct{}, len(records))
	out := records[:0:0]
	for _, r := range records {
		k := r.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}
