package fetch

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/y3pio/unicon/internal/config"
	"github.com/y3pio/unicon/internal/contrib"
	"github.com/y3pio/unicon/internal/enumerate"
	"github.com/y3pio/unicon/internal/export"
	"github.com/y3pio/unicon/internal/extract"
	"github.com/y3pio/unicon/internal/gateway"
	"github.com/y3pio/unicon/internal/log"
	"github.com/y3pio/unicon/internal/paths"
	"github.com/y3pio/unicon/internal/store"
)

type Deps struct {
	Get        func(string) (string, bool)
	SetConfig  func(key, value string) error
	Token      func() string
	NewFetcher func(baseURL, token string) gateway.PageFetcher
	Enumerate  func(ctx context.Context, fetcher gateway.PageFetcher, affiliations []contrib.Affiliation) ([]contrib.RepoRef, error)
	Extractor  func(fetcher gateway.PageFetcher, login string, kind contrib.Kind) extract.Extractor
	Export     func(dir string, kind contrib.Kind, records []contrib.Record) (int, error)
	RecordRun  func(store.Run)
	IsTerminal func() bool
	Pick       func(choices pickChoices) (pickChoices, bool, error)
	Now        func() time.Time
	Printf     func(string, ...any) (int, error)
	Println    func(...any) (int, error)
}

func DefaultDeps() Deps {
	return Deps{
		Get: config.Get,
		SetConfig: func(key, value string) error {
			return config.NewProvider().Set(key, value)
		},
		Token: config.Token,
		NewFetcher: func(baseURL, token string) gateway.PageFetcher {
			return gateway.NewClient(gateway.Options{BaseURL: baseURL, Token: token}, gateway.NewBudget())
		},
		Enumerate: func(ctx context.Context, fetcher gateway.PageFetcher, affiliations []contrib.Affiliation) ([]contrib.RepoRef, error) {
			return enumerate.New(fetcher).Repos(ctx, affiliations)
		},
		Extractor: func(fetcher gateway.PageFetcher, login string, kind contrib.Kind) extract.Extractor {
			switch kind {
			case contrib.KindPullRequest:
				return extract.NewPullRequestExtractor(fetcher, login)
			case contrib.KindReview:
				return extract.NewReviewExtractor(fetcher, login)
			default:
				return extract.NewCommitExtractor(fetcher, login)
			}
		},
		Export:    export.Export,
		RecordRun: recordRun,
		IsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		},
		Pick:    runPicker,
		Now:     time.Now,
		Printf:  fmt.Printf,
		Println: fmt.Println,
	}
}

// recordRun appends to the local run history. History is best effort and
// never fails the command.
func recordRun(r store.Run) {
	s, err := store.New(paths.DBPath())
	if err != nil {
		log.Warn("fetch: run history unavailable: %v", err)
		return
	}
	defer s.Close()
	if _, err := s.RecordRun(r); err != nil {
		log.Warn("fetch: could not record run: %v", err)
	}
}
