package commit

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/y3pio/unicon/internal/contrib"
	"github.com/y3pio/unicon/internal/dispatchers"
	"github.com/y3pio/unicon/internal/replay"
	"github.com/y3pio/unicon/internal/store"
	"github.com/y3pio/unicon/internal/usage"
)

type harness struct {
	deps     Deps
	repoPath string
	kinds    []contrib.Kind
	report   replay.Report
	err      error
	runs     []store.Run
}

func newHarness() *harness {
	h := &harness{}
	h.deps = Deps{
		Get: func(key string) (string, bool) {
			if key == "replay_repo" {
				return "/data/replay", true
			}
			return "", false
		},
		GitAvailable: func() bool { return true },
		Replay: func(repoPath string, kinds ...contrib.Kind) (replay.Report, error) {
			h.repoPath = repoPath
			h.kinds = kinds
			return h.report, h.err
		},
		RecordRun: func(r store.Run) { h.runs = append(h.runs, r) },
		Now:       time.Now,
		Printf:    func(string, ...any) (int, error) { return 0, nil },
		Println:   func(...any) (int, error) { return 0, nil },
	}
	return h
}

func noFlags() *dispatchers.ParsedFlags {
	return dispatchers.NewParsedFlags(nil)
}

func TestRun_GitMissing(t *testing.T) {
	h := newHarness()
	h.deps.GitAvailable = func() bool { return false }

	err := run(nil, noFlags(), h.deps)
	var ue *usage.Error
	require.ErrorAs(t, err, &ue)
	require.Empty(t, h.repoPath, "replay never attempted")
}

func TestRun_Success(t *testing.T) {
	h := newHarness()
	h.report = replay.Report{Committed: 4, Skipped: 2}

	require.NoError(t, run(nil, noFlags(), h.deps))
	require.Equal(t, "/data/replay", h.repoPath)

	require.Len(t, h.runs, 1)
	require.Equal(t, store.RunStatusOK, h.runs[0].Status)
	require.Equal(t, 4, h.runs[0].Commits)
}

func TestRun_RepoFlagOverride(t *testing.T) {
	h := newHarness()

	flags := dispatchers.NewParsedFlags([]string{"--repo=/elsewhere"})
	require.NoError(t, run(nil, flags, h.deps))
	require.Equal(t, "/elsewhere", h.repoPath)
}

func TestRun_KindsFlag(t *testing.T) {
	h := newHarness()

	flags := dispatchers.NewParsedFlags([]string{"--kinds=commits,reviews"})
	require.NoError(t, run(nil, flags, h.deps))
	require.Equal(t, []contrib.Kind{contrib.KindCommit, contrib.KindReview}, h.kinds)
}

func TestRun_KindsFlagInvalid(t *testing.T) {
	h := newHarness()

	flags := dispatchers.NewParsedFlags([]string{"--kinds=issues"})
	require.Error(t, run(nil, flags, h.deps))
	require.Empty(t, h.repoPath, "replay never attempted")
}

func TestRun_PartialFailures(t *testing.T) {
	h := newHarness()
	h.report = replay.Report{
		Committed: 3,
		Failures:  []replay.Failure{{Name: "x.md", Err: errors.New("commit failed")}},
	}

	err := run(nil, noFlags(), h.deps)
	require.Error(t, err)
	require.Equal(t, store.RunStatusPartial, h.runs[0].Status)
	require.Equal(t, 3, h.runs[0].Commits, "successes recorded despite failures")
}

func TestRun_ReplayError(t *testing.T) {
	h := newHarness()
	h.err = errors.New("not a repo")

	err := run(nil, noFlags(), h.deps)
	require.Error(t, err)
	require.Equal(t, store.RunStatusFailed, h.runs[0].Status)
}
