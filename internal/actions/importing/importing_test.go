package importing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/y3pio/unicon/internal/dispatchers"
	"github.com/y3pio/unicon/internal/export"
	"github.com/y3pio/unicon/internal/store"
)

type harness struct {
	deps    Deps
	csvDir  string
	repoDir string
	stats   export.ImportStats
	err     error
	runs    []store.Run
}

func newHarness() *harness {
	h := &harness{}
	h.deps = Deps{
		Get: func(key string) (string, bool) {
			switch key {
			case "exports_path":
				return "/data/exports", true
			case "replay_repo":
				return "/data/replay", true
			}
			return "", false
		},
		Import: func(csvDir, replayRoot string) (export.ImportStats, error) {
			h.csvDir = csvDir
			h.repoDir = replayRoot
			return h.stats, h.err
		},
		RecordRun: func(r store.Run) { h.runs = append(h.runs, r) },
		Now:       time.Now,
		Printf:    func(string, ...any) (int, error) { return 0, nil },
		Println:   func(...any) (int, error) { return 0, nil },
	}
	return h
}

func TestRun_UsesConfiguredPaths(t *testing.T) {
	h := newHarness()
	h.stats = export.ImportStats{Total: 3, Valid: 3, Imported: 3}

	require.NoError(t, run(nil, dispatchers.NewParsedFlags(nil), h.deps))
	require.Equal(t, "/data/exports", h.csvDir)
	require.Equal(t, "/data/replay", h.repoDir)

	require.Len(t, h.runs, 1)
	require.Equal(t, store.RunStatusOK, h.runs[0].Status)
}

func TestRun_FlagOverrides(t *testing.T) {
	h := newHarness()

	flags := dispatchers.NewParsedFlags([]string{"--from=/mnt/usb", "--repo=/w/replay"})
	require.NoError(t, run(nil, flags, h.deps))
	require.Equal(t, "/mnt/usb", h.csvDir)
	require.Equal(t, "/w/replay", h.repoDir)
}

func TestRun_CollisionSurfacesAndRecordsFailure(t *testing.T) {
	h := newHarness()
	h.stats = export.ImportStats{Total: 2, Valid: 2, Imported: 1, Collisions: 1}
	h.err = export.ErrCollision

	err := run(nil, dispatchers.NewParsedFlags(nil), h.deps)
	require.ErrorIs(t, err, export.ErrCollision)
	require.Len(t, h.runs, 1)
	require.Equal(t, store.RunStatusFailed, h.runs[0].Status)
}

func TestRun_ImportFailure(t *testing.T) {
	h := newHarness()
	h.err = errors.New("disk full")

	err := run(nil, dispatchers.NewParsedFlags(nil), h.deps)
	require.Error(t, err)
	require.Equal(t, store.RunStatusFailed, h.runs[0].Status)
}
