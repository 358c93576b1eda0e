// Package importing turns exported CSV files into artifact files inside
// the replay repository. This is the first command run on the machine the
// CSVs were carried to.
package importing

import (
	"fmt"

	"github.com/y3pio/unicon/internal/dispatchers"
	"github.com/y3pio/unicon/internal/store"
	"github.com/y3pio/unicon/internal/ui/style"
)

func Run(args []string, flags *dispatchers.ParsedFlags) error {
	return run(args, flags, DefaultDeps())
}

func run(_ []string, flags *dispatchers.ParsedFlags, deps Deps) error {
	csvDir := flags.String("--from", "")
	if csvDir == "" {
		csvDir, _ = deps.Get("exports_path")
	}
	replayRoot := flags.String("--repo", "")
	if replayRoot == "" {
		replayRoot, _ = deps.Get("replay_repo")
	}

	started := deps.Now()
	stats, err := deps.Import(csvDir, replayRoot)

	status := store.RunStatusOK
	detail := ""
	if err != nil {
		status = store.RunStatusFailed
		detail = err.Error()
	}
	deps.RecordRun(store.Run{
		Command: "import", StartedAt: started, FinishedAt: deps.Now(),
		Commits: stats.Imported, Status: status, Detail: detail,
	})

	deps.Printf("%d rows read, %d valid, %d discarded\n", stats.Total, stats.Valid, stats.Discarded)
	if stats.Imported > 0 {
		deps.Println(style.Success(fmt.Sprintf("✓ %d artifacts written to %s", stats.Imported, replayRoot)))
	}
	if stats.Skipped > 0 {
		deps.Println(style.Muted(fmt.Sprintf("%d already present", stats.Skipped)))
	}
	if stats.Collisions > 0 {
		deps.Println(style.Error(fmt.Sprintf("✗ %d collisions, existing files kept", stats.Collisions)))
	}
	if err != nil {
		return err
	}
	if stats.Total == 0 {
		deps.Println(style.Muted("Nothing to import in " + csvDir))
	}
	return nil
}
