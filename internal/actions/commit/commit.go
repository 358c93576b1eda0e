// Package commit replays imported artifacts into the local git repository,
// one backdated commit per artifact.
package commit

import (
	"fmt"
	"strings"

	"github.com/y3pio/unicon/internal/contrib"
	"github.com/y3pio/unicon/internal/dispatchers"
	"github.com/y3pio/unicon/internal/store"
	"github.com/y3pio/unicon/internal/ui/style"
	"github.com/y3pio/unicon/internal/usage"
)

func Run(args []string, flags *dispatchers.ParsedFlags) error {
	return run(args, flags, DefaultDeps())
}

func run(_ []string, flags *dispatchers.ParsedFlags, deps Deps) error {
	if !deps.GitAvailable() {
		return usage.GitNotInstalled()
	}

	repoPath := flags.String("--repo", "")
	if repoPath == "" {
		repoPath, _ = deps.Get("replay_repo")
	}

	kinds, err := selectedKinds(flags)
	if err != nil {
		return err
	}

	started := deps.Now()
	report, err := deps.Replay(repoPath, kinds...)

	status := store.RunStatusOK
	detail := ""
	switch {
	case err != nil:
		status = store.RunStatusFailed
		detail = err.Error()
	case report.Failed():
		status = store.RunStatusPartial
		detail = fmt.Sprintf("%d artifacts failed", len(report.Failures))
	}
	deps.RecordRun(store.Run{
		Command: "commit", StartedAt: started, FinishedAt: deps.Now(),
		Commits: report.Committed, Status: status, Detail: detail,
	})
	if err != nil {
		return err
	}

	if report.Committed > 0 {
		deps.Println(style.Success(fmt.Sprintf("✓ %d commits created in %s", report.Committed, repoPath)))
	}
	if report.Skipped > 0 {
		deps.Println(style.Muted(fmt.Sprintf("%d artifacts already committed", report.Skipped)))
	}
	for _, f := range report.Failures {
		deps.Println(style.Error("✗ " + f.Name + ": " + f.Err.Error()))
	}
	if report.Committed == 0 && report.Skipped == 0 && !report.Failed() {
		deps.Println(style.Muted("No artifacts to commit in " + repoPath))
	}

	if report.Failed() {
		return fmt.Errorf("%d artifacts could not be committed, rerun after fixing", len(report.Failures))
	}
	return nil
}

func selectedKinds(flags *dispatchers.ParsedFlags) ([]contrib.Kind, error) {
	raw := flags.String("--kinds", "")
	if raw == "" {
		return nil, nil
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
