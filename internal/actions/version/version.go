// Package version prints the build version.
package version

import (
	"fmt"

	"github.com/y3pio/unicon/internal/dispatchers"
)

// Current is overridden at build time via -ldflags.
var Current = "dev"

type Deps struct {
	Version func() string
	Printf  func(string, ...any) (int, error)
}

func DefaultDeps() Deps {
	return Deps{
		Version: func() string { return Current },
		Printf:  fmt.Printf,
	}
}

func Show(args []string, flags *dispatchers.ParsedFlags) error {
	return show(args, flags, DefaultDeps())
}

func show(_ []string, _ *dispatchers.ParsedFlags, deps Deps) error {
	deps.Printf("unicon version %s\n", deps.Version())
	return nil
}
