// Package fetch implements the pipeline's GitHub-facing half: enumerate
// reachable repositories, extract the configured user's contributions, and
// export them as anonymized per-kind CSV files.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/y3pio/unicon/internal/contrib"
	"github.com/y3pio/unicon/internal/dispatchers"
	"github.com/y3pio/unicon/internal/enumerate"
	"github.com/y3pio/unicon/internal/format"
	"github.com/y3pio/unicon/internal/gateway"
	"github.com/y3pio/unicon/internal/log"
	"github.com/y3pio/unicon/internal/store"
	"github.com/y3pio/unicon/internal/ui/style"
	"github.com/y3pio/unicon/internal/usage"
)

// fetchLastKey holds the completion time of the last successful fetch. It
// is only advanced after every selected kind exported cleanly, so a failed
// run repeats its window instead of losing it.
const fetchLastKey = "fetch_last"

func Run(args []string, flags *dispatchers.ParsedFlags) error {
	return run(args, flags, DefaultDeps())
}

// kindResult carries one kind's extraction outcome across the goroutine
// boundary.
type kindResult struct {
	kind         contrib.Kind
	records      []contrib.Record
	skippedRepos int
	err          error
}

func run(_ []string, flags *dispatchers.ParsedFlags, deps Deps) error {
	username, _ := deps.Get("github_username")
	if username == "" {
		return usage.MissingUsername()
	}
	token := deps.Token()
	if token == "" {
		return usage.MissingToken()
	}

	kinds, err := selectedKinds(flags)
	if err != nil {
		return usage.InvalidFlag("--kinds: " + err.Error())
	}
	affiliations, err := selectedAffiliations(flags, deps)
	if err != nil {
		return usage.InvalidFlag("--affiliations: " + err.Error())
	}
	since := resolveSince(flags, deps)

	if flags.Has("--pick") {
		if !deps.IsTerminal() {
			return errors.New("--pick requires an interactive terminal")
		}
		choices, accepted, err := deps.Pick(pickChoices{Kinds: kinds, Since: since})
		if err != nil {
			return err
		}
		if !accepted {
			deps.Println("Cancelled")
			return nil
		}
		kinds, since = choices.Kinds, choices.Since
	}

	exportsDir, _ := deps.Get("exports_path")
	apiURL, _ := deps.Get("github_api_url")

	started := deps.Now()
	deps.Printf("Fetching %s for %s since %s\n",
		kindList(kinds), style.Info(username), style.Info(format.Date(since)))

	ctx := context.Background()
	fetcher := deps.NewFetcher(apiURL, token)

	var enumDetail string
	repos, err := deps.Enumerate(ctx, fetcher, affiliations)
	if err != nil {
		var ee *enumerate.EnumerationError
		if errors.As(err, &ee) && len(ee.Partial) > 0 {
			deps.Println(style.Warning("Repository listing incomplete: " + ee.Err.Error()))
			repos = ee.Partial
			enumDetail = "repository listing incomplete: " + ee.Err.Error()
		} else {
			deps.RecordRun(store.Run{
				Command: "fetch", StartedAt: started, FinishedAt: deps.Now(),
				Status: store.RunStatusFailed, Detail: err.Error(),
			})
			return err
		}
	}
	deps.Printf("Scanning %s\n", style.Info(pluralize(len(repos), "repository", "repositories")))

	// One goroutine per kind; repositories within a kind are walked
	// sequentially. All extraction shares the fetcher and its rate budget.
	results := make([]kindResult, len(kinds))
	var wg sync.WaitGroup
	for i, kind := range kinds {
		wg.Add(1)
		go func(i int, kind contrib.Kind) {
			defer wg.Done()
			results[i] = extractKind(ctx, deps, fetcher, username, kind, repos, since)
		}(i, kind)
	}
	wg.Wait()

	hist := store.Run{Command: "fetch", StartedAt: started, Repos: len(repos), Status: store.RunStatusOK}
	if enumDetail != "" {
		// Repositories the listing never reached were not scanned, so
		// this run must not advance the incremental window.
		hist.Status = store.RunStatusPartial
		hist.Detail = enumDetail
	}
	var failures []string

	for _, res := range results {
		if res.err != nil {
			failures = append(failures, res.kind.String()+": "+res.err.Error())
			deps.Println(style.Error("✗ " + res.kind.Plural() + ": " + res.err.Error()))
			continue
		}

		n, err := deps.Export(exportsDir, res.kind, res.records)
		if err != nil {
			failures = append(failures, res.kind.String()+": "+err.Error())
			deps.Println(style.Error("✗ " + res.kind.Plural() + ": " + err.Error()))
			continue
		}

		switch res.kind {
		case contrib.KindCommit:
			hist.Commits = n
		case contrib.KindPullRequest:
			hist.PullRequests = n
		case contrib.KindReview:
			hist.CodeReviews = n
		}

		line := "✓ " + pluralize(n, strings.TrimSuffix(res.kind.Plural(), "s"), res.kind.Plural())
		if res.skippedRepos > 0 {
			line += style.Muted(" (" + pluralize(res.skippedRepos, "repo", "repos") + " skipped)")
			hist.Status = store.RunStatusPartial
		}
		deps.Println(style.Success(line))
	}

	hist.FinishedAt = deps.Now()
	if len(failures) > 0 {
		hist.Status = store.RunStatusFailed
		if enumDetail != "" {
			failures = append([]string{enumDetail}, failures...)
		}
		hist.Detail = strings.Join(failures, "; ")
		deps.RecordRun(hist)
		return errors.New("fetch incomplete: " + hist.Detail)
	}

	if hist.Status == store.RunStatusOK {
		if err := deps.SetConfig(fetchLastKey, hist.FinishedAt.UTC().Format(time.RFC3339)); err != nil {
			log.Warn("fetch: could not store completion time: %v", err)
		}
	}
	deps.RecordRun(hist)
	deps.Printf("Done in %s. CSVs in %s\n", format.Elapsed(hist.FinishedAt.Sub(started)), style.Muted(exportsDir))
	return nil
}

// extractKind walks every repository for one kind. A repository that fails
// is logged and skipped; the kind only fails as a whole when no repository
// could be read at all.
func extractKind(ctx context.Context, deps Deps, fetcher gateway.PageFetcher,
	username string, kind contrib.Kind, repos []contrib.RepoRef, since time.Time) kindResult {
	ex := deps.Extractor(fetcher, username, kind)
	res := kindResult{kind: kind}

	var lastErr error
	for _, repo := range repos {
		records, err := ex.Extract(ctx, repo, since)
		if err != nil {
			log.Warn("fetch: %s: skipping %s: %v", kind, repo.FullName(), err)
			res.skippedRepos++
			lastErr = err
			continue
		}
		res.records = append(res.records, records...)
	}

	if len(repos) > 0 && res.skippedRepos == len(repos) {
		res.err = fmt.Errorf("every repository failed, last error: %w", lastErr)
	}
	return res
}

func selectedKinds(flags *dispatchers.ParsedFlags) ([]contrib.Kind, error) {
	raw := flags.String("--kinds", "")
	if raw == "" {
		return contrib.AllKinds, nil
	}
	var kinds []contrib.Kind
	seen := make(map[contrib.Kind]bool)
	for _, part := range strings.Split(raw, ",") {
		k, err := contrib.ParseKind(part)
		if err != nil {
			return nil, err
		}
		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	return kinds, nil
}

func selectedAffiliations(flags *dispatchers.ParsedFlags, deps Deps) ([]contrib.Affiliation, error) {
	raw := flags.String("--affiliations", "")
	if raw == "" {
		raw, _ = deps.Get("affiliations")
	}
	if raw == "" {
		return contrib.AllAffiliations, nil
	}
	var out []contrib.Affiliation
	for _, part := range strings.Split(raw, ",") {
		a, err := contrib.ParseAffiliation(part)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// resolveSince picks the window start: the --since flag wins, then the
// configured since date, then the last successful fetch, then everything.
func resolveSince(flags *dispatchers.ParsedFlags, deps Deps) time.Time {
	if d := flags.Date("--since"); d != nil {
		return d.UTC()
	}
	if v, ok := deps.Get("since"); ok && v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t.UTC()
		}
		log.Warn("fetch: ignoring unparseable since config %q", v)
	}
	if v, ok := deps.Get(fetchLastKey); ok && v != "" && v != "0" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t.UTC()
		}
	}
	return time.Unix(0, 0).UTC()
}

func kindList(kinds []contrib.Kind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = k.Plural()
	}
	return strings.Join(parts, ", ")
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + plural
}
