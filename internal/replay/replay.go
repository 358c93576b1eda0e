// Package replay turns imported artifact files into git history: one
// commit per artifact, oldest first, each commit backdated to the
// contribution it represents.
package replay

import (
	"fmt"
	"time"

	"github.com/y3pio/unicon/internal/artifact"
	"github.com/y3pio/unicon/internal/contrib"
	"github.com/y3pio/unicon/internal/git"
	"github.com/y3pio/unicon/internal/log"
)

// Failure records one artifact that could not be committed.
type Failure struct {
	Name string
	Err  error
}

// Report summarizes one replay pass.
type Report struct {
	Committed int
	Skipped   int
	Failures  []Failure
}

// Failed reports whether any artifact could not be committed.
func (r Report) Failed() bool {
	return len(r.Failures) > 0
}

// Run scans repoPath for artifacts and commits every one that is not
// already in history, in chronological order. Passing kinds restricts
// the pass to those contribution kinds; none means all. A failing
// artifact is reported and skipped; the pass continues so a rerun only
// has the leftovers to deal with.
func Run(repoPath string, kinds ...contrib.Kind) (Report, error) {
	return run(repoPath, DefaultDeps(), kinds...)
}

// Deps holds the git and scan operations the replay drives.
type Deps struct {
	EnsureRepo     func(repoPath string) error
	Scan           func(root string) ([]artifact.File, error)
	RelPath        func(repoPath, path string) (string, error)
	HasHistory     func(repoPath, rel string) bool
	Add            func(repoPath, rel string) error
	CommitWithDate func(repoPath, rel, message string, date time.Time) error
}

func DefaultDeps() Deps {
	return Deps{
		EnsureRepo:     git.EnsureRepo,
		Scan:           artifact.Scan,
		RelPath:        git.RelPath,
		HasHistory:     git.HasHistory,
		Add:            git.Add,
		CommitWithDate: git.CommitWithDate,
	}
}

func run(repoPath string, deps Deps, kinds ...contrib.Kind) (Report, error) {
	if err := deps.EnsureRepo(repoPath); err != nil {
		return Report{}, err
	}

	files, err := deps.Scan(repoPath)
	if err != nil {
		return Report{}, err
	}
	files = filterKinds(files, kinds)

	var report Report
	for _, f := range files {
		rel, err := deps.RelPath(repoPath, f.Path)
		if err != nil {
			report.Failures = append(report.Failures, Failure{Name: f.Name, Err: err})
			continue
		}
		if deps.HasHistory(repoPath, rel) {
			report.Skipped++
			continue
		}

		message := fmt.Sprintf("%s %s", f.Kind.Title(), f.Name)
		if err := deps.Add(repoPath, rel); err != nil {
			log.Warn("replay: stage %s failed: %v", rel, err)
			report.Failures = append(report.Failures, Failure{Name: f.Name, Err: err})
			continue
		}
		if err := deps.CommitWithDate(repoPath, rel, message, f.Date); err != nil {
			log.Warn("replay: commit %s failed: %v", rel, err)
			report.Failures = append(report.Failures, Failure{Name: f.Name, Err: err})
			continue
		}
		report.Committed++
	}

	log.Info("replay: %d committed, %d skipped, %d failed",
		report.Committed, report.Skipped, len(report.Failures))
	return report, nil
}

func filterKinds(files []artifact.File, kinds []contrib.Kind) []artifact.File {
	if len(kinds) == 0 {
		return files
	}
	keep := make(map[contrib.Kind]bool, len(kinds))
	for _, k := range kinds {
		keep[k] = true
	}
	filtered := files[:0]
	for _, f := range files {
		if keep[f.Kind] {
			filtered = append(filtered, f)
		}
	}
	return filtered
}
