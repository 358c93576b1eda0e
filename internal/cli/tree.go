// Package cli assembles the command tree.
package cli

import (
	"github.com/y3pio/unicon/internal/actions/commit"
	configaction "github.com/y3pio/unicon/internal/actions/config"
	"github.com/y3pio/unicon/internal/actions/fetch"
	"github.com/y3pio/unicon/internal/actions/importing"
	"github.com/y3pio/unicon/internal/actions/status"
	"github.com/y3pio/unicon/internal/actions/version"
	"github.com/y3pio/unicon/internal/dispatchers"
)

func BuildTree() *dispatchers.DispatchNode {
	root := dispatchers.NewNode(
		"unicon",
		nil,
		"Unify your GitHub contributions into one anonymized local history",
		"unicon <command> [flags]",
		[]dispatchers.FlagDescriptor{
			{
				Names:       []string{"--help", "-h"},
				Description: "Show help",
				Scope:       dispatchers.FlagScopeGlobal,
			},
			{
				Names:       []string{"--version", "-v"},
				Description: "Show version",
				Scope:       dispatchers.FlagScopeGlobal,
			},
			{
				Names:       []string{"--no-color"},
				Description: "Disable colored output",
				Scope:       dispatchers.FlagScopeGlobal,
			},
		},
		nil,
		nil,
	)

	dispatchers.NewNode(
		"fetch",
		root,
		"Fetch contributions from GitHub and export them as CSVs",
		"unicon fetch [flags]",
		[]dispatchers.FlagDescriptor{
			{
				Names:       []string{"--since"},
				ValueHint:   "DATE",
				Description: "Only fetch contributions on or after this date (YYYY-MM-DD)",
				Scope:       dispatchers.FlagScopeLocal,
			},
			{
				Names:       []string{"--kinds"},
				ValueHint:   "LIST",
				Description: "Comma-separated kinds: commits,prs,reviews (default all)",
				Scope:       dispatchers.FlagScopeLocal,
			},
			{
				Names:       []string{"--affiliations"},
				ValueHint:   "LIST",
				Description: "Comma-separated affiliations: owner,collaborator,organization_member",
				Scope:       dispatchers.FlagScopeLocal,
			},
			{
				Names:       []string{"--pick"},
				Description: "Choose kinds and date interactively",
				Scope:       dispatchers.FlagScopeLocal,
			},
		},
		nil,
		fetch.Run,
	).Category = dispatchers.CategoryPipeline

	dispatchers.NewNode(
		"import",
		root,
		"Turn exported CSVs into artifact files in the replay repository",
		"unicon import [flags]",
		[]dispatchers.FlagDescriptor{
			{
				Names:       []string{"--from"},
				ValueHint:   "DIR",
				Description: "Directory holding the CSVs (default: configured exports_path)",
				Scope:       dispatchers.FlagScopeLocal,
			},
			{
				Names:       []string{"--repo"},
				ValueHint:   "DIR",
				Description: "Replay repository (default: configured replay_repo)",
				Scope:       dispatchers.FlagScopeLocal,
			},
		},
		nil,
		importing.Run,
	).Category = dispatchers.CategoryPipeline

	dispatchers.NewNode(
		"commit",
		root,
		"Commit imported artifacts with their original dates",
		"unicon commit [flags]",
		[]dispatchers.FlagDescriptor{
			{
				Names:       []string{"--repo"},
				ValueHint:   "DIR",
				Description: "Replay repository (default: configured replay_repo)",
				Scope:       dispatchers.FlagScopeLocal,
			},
			{
				Names:       []string{"--kinds"},
				ValueHint:   "LIST",
				Description: "Comma-separated kinds: commits,prs,reviews (default all)",
				Scope:       dispatchers.FlagScopeLocal,
			},
		},
		nil,
		commit.Run,
	).Category = dispatchers.CategoryPipeline

	dispatchers.NewNode(
		"status",
		root,
		"Show pending exports and recent runs",
		"unicon status [flags]",
		[]dispatchers.FlagDescriptor{
			{
				Names:       []string{"--limit"},
				ValueHint:   "N",
				Description: "Number of runs to show (default 5)",
				Scope:       dispatchers.FlagScopeLocal,
			},
		},
		nil,
		status.Run,
	).Category = dispatchers.CategoryInspect

	config := dispatchers.NewNode(
		"config",
		root,
		"Manage configuration",
		"unicon config <command>",
		nil,
		nil,
		nil,
	)
	config.Category = dispatchers.CategoryConfig

	dispatchers.NewNode(
		"get",
		config,
		"Get a config value",
		"unicon config get <key>",
		nil,
		[]dispatchers.ArgSpec{
			{
				Name:        "key",
				Description: "Configuration key to read",
				Required:    true,
			},
		},
		configaction.Get,
	).Category = dispatchers.CategoryConfig

	dispatchers.NewNode(
		"set",
		config,
		"Set a config value",
		"unicon config set <key> <value>",
		nil,
		[]dispatchers.ArgSpec{
			{
				Name:        "key",
				Description: "Configuration key to write",
				Required:    true,
			},
			{
				Name:        "value",
				Description: "Value to store",
				Required:    true,
			},
		},
		configaction.Set,
	).Category = dispatchers.CategoryConfig

	dispatchers.NewNode(
		"unset",
		config,
		"Remove a config value",
		"unicon config unset <key>",
		[]dispatchers.FlagDescriptor{
			{
				Names:       []string{"--all"},
				Description: "Remove every config entry",
				Scope:       dispatchers.FlagScopeLocal,
			},
		},
		[]dispatchers.ArgSpec{
			{
				Name:        "key",
				Description: "Configuration key to remove",
				Required:    false,
			},
		},
		configaction.Unset,
	).Category = dispatchers.CategoryConfig

	dispatchers.NewNode(
		"list",
		config,
		"List all config values",
		"unicon config list",
		nil,
		nil,
		configaction.List,
	).Category = dispatchers.CategoryConfig

	dispatchers.NewNode(
		"version",
		root,
		"Show unicon version",
		"unicon version",
		nil,
		nil,
		version.Show,
	).Category = dispatchers.CategoryInfo

	return root
}
