package domain

// ConfigKey defines a configuration key with its metadata.
type ConfigKey struct {
	Name        string
	Default     string
	Description string
	Section     string // Section for grouping in `unicon config list`
	Hidden      bool   // Hidden keys are not shown in help or config list
	HideIfEmpty bool   // Only show in config list if explicitly set
}

// ConfigKeys defines all available configuration keys.
// This is the single source of truth for configuration.
// Order determines display order in `unicon config list`.
var ConfigKeys = []ConfigKey{
	// GitHub
	{
		Name:        "github_username",
		Default:     "",
		Description: "GitHub handle whose contributions are fetched",
		Section:     "GitHub",
	},
	{
		Name:        "github_api_url",
		Default:     "https://api.github.com",
		Description: "GitHub API base URL (change for Enterprise deployments)",
		Section:     "GitHub",
	},
	{
		Name:        "affiliations",
		Default:     "",
		Description: "Repository affiliations to scan: owner,collaborator,organization_member (empty = all)",
		Section:     "GitHub",
		HideIfEmpty: true,
	},
	{
		Name:        "since",
		Default:     "",
		Description: "Only fetch contributions on or after this date (YYYY-MM-DD)",
		Section:     "GitHub",
		HideIfEmpty: true,
	},
	// Pipeline
	{
		Name:        "exports_path",
		Default:     "", // Set dynamically to paths.ExportsDir()
		Description: "Directory holding intermediate CSV exports",
		Section:     "Pipeline",
	},
	{
		Name:        "replay_repo",
		Default:     "", // Set dynamically to paths.ReplayRepoDir()
		Description: "Local git repository the anonymized contributions are committed to",
		Section:     "Pipeline",
	},
	// Logging
	{
		Name:        "enable_log",
		Default:     "true",
		Description: "Enable logging to file (true/false)",
		Section:     "Logging",
	},
	// Internal bookkeeping
	{
		Name:    "fetch_last",
		Default: "0",
		Hidden:  true,
	},
}

// LookupConfigKey returns the key spec by name.
func LookupConfigKey(name string) (ConfigKey, bool) {
	for _, k := range ConfigKeys {
		if k.Name == name {
			return k, true
		}
	}
	return ConfigKey{}, false
}

// VisibleConfigKeys returns the keys shown in help and config listings.
func VisibleConfigKeys() []ConfigKey {
	out := make([]ConfigKey, 0, len(ConfigKeys))
	for _, k := range ConfigKeys {
		if !k.Hidden {
			out = append(out, k)
		}
	}
	return out
}
