// Package git shells out to the git binary for everything the replay
// repository needs: initialization, staging, and backdated commits.
package git

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/y3pio/unicon/internal/log"
)

// dateEnvLayout is the timestamp format git accepts in the author and
// committer date environment variables.
const dateEnvLayout = "2006-01-02 15:04:05 -0700"

func IsAvailable() bool {
	path, err := exec.LookPath("git")
	if err != nil {
		return false
	}
	cmd := exec.Command(path, "--version")
	return cmd.Run() == nil
}

func runGit(env []string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		log.Debug("git: command failed: git %s: %v: %s", strings.Join(args, " "), err, strings.TrimSpace(out.String()))
		return "", fmt.Errorf("git %s: %v: %s", args[0], err, strings.TrimSpace(out.String()))
	}
	return strings.TrimSpace(out.String()), nil
}

func runGitInRepo(repoPath string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	return runGit(nil, fullArgs...)
}

// IsRepo reports whether path is inside a git work tree.
func IsRepo(path string) bool {
	out, err := runGitInRepo(path, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// EnsureRepo initializes a repository at path when one is not already
// there. The directory is created as needed.
func EnsureRepo(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create repo dir: %w", err)
	}
	if IsRepo(path) {
		return nil
	}
	if _, err := runGit(nil, "init", path); err != nil {
		return err
	}
	log.Info("git: initialized repository at %s", path)
	return nil
}

// Add stages one path, given relative to the repository root.
func Add(repoPath, rel string) error {
	_, err := runGitInRepo(repoPath, "add", "--", rel)
	return err
}

// CommitWithDate commits rel with both the author and committer dates
// forced to date, so the history reflects when the contribution happened
// rather than when it was replayed. Only rel enters the commit.
func CommitWithDate(repoPath, rel, message string, date time.Time) error {
	stamp := date.UTC().Format(dateEnvLayout)
	env := []string{
		"GIT_AUTHOR_DATE=" + stamp,
		"GIT_COMMITTER_DATE=" + stamp,
	}
	_, err := runGit(env, "-C", repoPath, "commit", "-m", message, "--", rel)
	return err
}

// HasHistory reports whether any commit already touches rel.
func HasHistory(repoPath, rel string) bool {
	out, err := runGitInRepo(repoPath, "log", "--oneline", "--", rel)
	return err == nil && out != ""
}

// RelPath returns path relative to the repository root.
func RelPath(repoPath, path string) (string, error) {
	rel, err := filepath.Rel(repoPath, path)
	if err != nil {
		return "", fmt.Errorf("path %s outside repo %s: %w", path, repoPath, err)
	}
	return filepath.ToSlash(rel), nil
}
