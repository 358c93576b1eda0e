package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "unicon"

// AppDataDir returns the application data directory for config/database.
// Uses os.UserConfigDir() which returns:
//   - macOS: ~/Library/Application Support
//   - Linux: $XDG_CONFIG_HOME or ~/.config
//   - Windows: %AppData% (roaming)
func AppDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	path := filepath.Join(dir, appDirName)

	// Use restrictive permissions for application data
	_ = os.MkdirAll(path, 0700)

	return path
}

// AppLocalDataDir returns the OS-appropriate local data directory.
// This is where application-managed data (exports, the replay repo) lives.
//   - macOS: ~/Library/Application Support/unicon
//   - Linux: $XDG_DATA_HOME/unicon or ~/.local/share/unicon
//   - Windows: %LOCALAPPDATA%\unicon
func AppLocalDataDir() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		base = filepath.Join(home, "Library", "Application Support")

	case "windows":
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, "AppData", "Local")
		}

	default:
		// Linux/Unix: $XDG_DATA_HOME or ~/.local/share
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, ".local", "share")
		}
	}

	return filepath.Join(base, appDirName)
}

// ExportsDir returns the directory holding intermediate CSV exports.
func ExportsDir() string {
	return filepath.Join(AppLocalDataDir(), "exports")
}

// ReplayRepoDir returns the default local git repository the anonymized
// contribution files are committed to.
func ReplayRepoDir() string {
	return filepath.Join(AppLocalDataDir(), "replay")
}

func ConfigFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".uniconrc"), nil
}

// LogFilePath returns the path to the application log file.
func LogFilePath() string {
	return filepath.Join(AppDataDir(), "unicon.log")
}

// DBPath returns the path to the run history database.
func DBPath() string {
	return filepath.Join(AppDataDir(), "unicon.db")
}
