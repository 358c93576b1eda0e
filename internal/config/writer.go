package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/y3pio/unicon/internal/paths"
)

// WriteLines replaces the config file with the given lines. The file is
// staged next to its destination and swapped in with a rename, so readers
// never observe a half-written ~/.uniconrc.
func WriteLines(lines []string) error {
	configPath, err := paths.ConfigFilePath()
	if err != nil {
		return err
	}
	var content string
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	return replaceFile(configPath, []byte(content))
}

func replaceFile(dest string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".uniconrc.tmp.*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	write := func() error {
		if err := tmp.Chmod(0o600); err != nil {
			return err
		}
		if _, err := tmp.Write(content); err != nil {
			return err
		}
		if err := tmp.Sync(); err != nil {
			return err
		}
		return tmp.Close()
	}

	if err := write(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
