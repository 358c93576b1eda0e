// Package status reports what the pipeline last did on this machine and
// what is still waiting to move: exported CSVs not yet imported and
// artifacts not yet committed.
package status

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/y3pio/unicon/internal/config"
	"github.com/y3pio/unicon/internal/contrib"
	"github.com/y3pio/unicon/internal/dispatchers"
	"github.com/y3pio/unicon/internal/format"
	"github.com/y3pio/unicon/internal/log"
	"github.com/y3pio/unicon/internal/paths"
	"github.com/y3pio/unicon/internal/store"
	"github.com/y3pio/unicon/internal/ui/style"
)

const defaultLimit = 5

type Deps struct {
	Get       func(string) (string, bool)
	ListRuns  func(limit int) ([]store.Run, error)
	CSVExists func(dir string, kind contrib.Kind) bool
	Printf    func(string, ...any) (int, error)
	Println   func(...any) (int, error)
}

func DefaultDeps() Deps {
	return Deps{
		Get:      config.Get,
		ListRuns: listRuns,
		CSVExists: func(dir string, kind contrib.Kind) bool {
			_, err := os.Stat(filepath.Join(dir, kind.CSVName()))
			return err == nil
		},
		Printf:     fmt.Printf,
		Println:    fmt.Println,
	}
}

func listRuns(limit int) ([]store.Run, error) {
	s, err := store.New(paths.DBPath())
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.ListRuns(limit)
}

func Run(args []string, flags *dispatchers.ParsedFlags) error {
	return run(args, flags, DefaultDeps())
}

func run(_ []string, flags *dispatchers.ParsedFlags, deps Deps) error {
	limit := flags.Int("--limit", defaultLimit)

	exportsDir, _ := deps.Get("exports_path")
	deps.Println(style.Header("Pending"))
	pending := 0
	for _, kind := range contrib.AllKinds {
		if deps.CSVExists(exportsDir, kind) {
			deps.Printf("  %s waiting for import\n", kind.CSVName())
			pending++
		}
	}
	if pending == 0 {
		deps.Println(style.Muted("  no CSVs waiting for import"))
	}

	deps.Println("")
	deps.Println(style.Header("Recent runs"))
	runs, err := deps.ListRuns(limit)
	if err != nil {
		log.Debug("status: run history unavailable: %v", err)
		deps.Println(style.Muted("  no run history"))
		return nil
	}
	if len(runs) == 0 {
		deps.Println(style.Muted("  no runs recorded yet"))
		return nil
	}

	for _, r := range runs {
		deps.Printf("  %s  %-7s %s %s\n",
			format.DateTime(r.StartedAt.Local()),
			r.Command,
			statusBadge(r.Status),
			style.Muted(runSummary(r)),
		)
	}
	return nil
}

func statusBadge(status string) string {
	switch status {
	case store.RunStatusOK:
		return style.Success("ok")
	case store.RunStatusPartial:
		return style.Warning("partial")
	default:
		return style.Error("failed")
	}
}

func runSummary(r store.Run) string {
	s := ""
	switch r.Command {
	case "fetch":
		s = fmt.Sprintf("%d repos, %d commits, %d PRs, %d reviews",
			r.Repos, r.Commits, r.PullRequests, r.CodeReviews)
	case "import":
		s = fmt.Sprintf("%d artifacts", r.Commits)
	case "commit":
		s = fmt.Sprintf("%d commits", r.Commits)
	}
	if d := r.FinishedAt.Sub(r.StartedAt); d > 0 && d < 24*time.Hour {
		s += " in " + format.Elapsed(d)
	}
	if r.Detail != "" {
		s += " (" + r.Detail + ")"
	}
	return s
}
