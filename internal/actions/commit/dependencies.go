package commit

import (
	"fmt"
	"time"

	"github.com/y3pio/unicon/internal/config"
	"github.com/y3pio/unicon/internal/contrib"
	"github.com/y3pio/unicon/internal/git"
	"github.com/y3pio/unicon/internal/log"
	"github.com/y3pio/unicon/internal/paths"
	"github.com/y3pio/unicon/internal/replay"
	"github.com/y3pio/unicon/internal/store"
)

type Deps struct {
	Get          func(string) (string, bool)
	GitAvailable func() bool
	Replay       func(repoPath string, kinds ...contrib.Kind) (replay.Report, error)
	RecordRun    func(store.Run)
	Now          func() time.Time
	Printf       func(string, ...any) (int, error)
	Println      func(...any) (int, error)
}

func DefaultDeps() Deps {
	return Deps{
		Get:          config.Get,
		GitAvailable: git.IsAvailable,
		Replay:       replay.Run,
		RecordRun:    recordRun,
		Now:          time.Now,
		Printf:       fmt.Printf,
		Println:      fmt.Println,
	}
}

func recordRun(r store.Run) {
	s, err := store.New(paths.DBPath())
	if err != nil {
		log.Warn("commit: run history unavailable: %v", err)
		return
	}
	defer s.Close()
	if _, err := s.RecordRun(r); err != nil {
		log.Warn("commit: could not record run: %v", err)
	}
}
