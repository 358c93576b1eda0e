package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/y3pio/unicon/internal/actions/version"
	"github.com/y3pio/unicon/internal/cli"
	"github.com/y3pio/unicon/internal/config"
	"github.com/y3pio/unicon/internal/dispatchers"
	"github.com/y3pio/unicon/internal/log"
	"github.com/y3pio/unicon/internal/paths"
	"github.com/y3pio/unicon/internal/ui/style"
	"github.com/y3pio/unicon/internal/usage"
)

func main() {
	args := os.Args[1:]

	rawFlags := extractFlags(args)
	commands := extractCommands(args)
	flags := dispatchers.NewParsedFlags(rawFlags)

	// Enable styling if stdout is a terminal and --no-color is not set
	enableColor := term.IsTerminal(int(os.Stdout.Fd())) && !flags.Has("--no-color")
	style.Init(enableColor)

	if enabled, _ := config.Get("enable_log"); enabled == "true" {
		if err := log.Init(paths.LogFilePath(), log.LevelInfo); err == nil {
			defer log.Close()
		}
	}

	if flags.Has("--version") || flags.Has("-v") {
		_ = version.Show(nil, flags)
		return
	}

	root := cli.BuildTree()

	res, err := dispatchers.Dispatch(root, commands, flags)
	if err != nil {
		exit(err)
	}

	if err := res.Execute(res.Args, res.Flags); err != nil {
		exit(err)
	}

	// Non-zero resolution codes (e.g. bare `unicon` printing help)
	if res.ExitCode != 0 {
		os.Exit(res.ExitCode)
	}
}

func exit(err error) {
	fmt.Fprintln(os.Stderr, err.Error())

	var ue *usage.Error
	if errors.As(err, &ue) {
		log.Close()
		os.Exit(ue.GetExitCode())
	}
	log.Close()
	os.Exit(1)
}

func extractFlags(args []string) []string {
	var flags []string
	for _, a := range args {
		if len(a) > 0 && a[0] == '-' {
			flags = append(flags, a)
		}
	}
	return flags
}

func extractCommands(args []string) []string {
	var cmds []string
	for _, a := range args {
		if len(a) > 0 && a[0] != '-' {
			cmds = append(cmds, a)
		}
	}
	return cmds
}
