package importing

import (
	"fmt"
	"time"

	"github.com/y3pio/unicon/internal/config"
	"github.com/y3pio/unicon/internal/export"
	"github.com/y3pio/unicon/internal/log"
	"github.com/y3pio/unicon/internal/paths"
	"github.com/y3pio/unicon/internal/store"
)

type Deps struct {
	Get       func(string) (string, bool)
	Import    func(csvDir, replayRoot string) (export.ImportStats, error)
	RecordRun func(store.Run)
	Now       func() time.Time
	Printf    func(string, ...any) (int, error)
	Println   func(...any) (int, error)
}

func DefaultDeps() Deps {
	return Deps{
		Get:       config.Get,
		Import:    export.Import,
		RecordRun: recordRun,
		Now:       time.Now,
		Printf:    fmt.Printf,
		Println:   fmt.Println,
	}
}

func recordRun(r store.Run) {
	s, err := store.New(paths.DBPath())
	if err != nil {
		log.Warn("import: run history unavailable: %v", err)
		return
	}
	defer s.Close()
	if _, err := s.RecordRun(r); err != nil {
		log.Warn("import: could not record run: %v", err)
	}
}
