package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTempHome points HOME at a temporary directory for the test.
func setupTempHome(t *testing.T) string {
	t.Helper()
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	return tempHome
}

func TestReadLines(t *testing.T) {
	tests := []struct {
		name         string
		setupContent string
		wantLines    []string
	}{
		{
			name:         "empty file",
			setupContent: "",
			wantLines:    nil,
		},
		{
			name:         "single line",
			setupContent: "key=value\n",
			wantLines:    []string{"key=value"},
		},
		{
			name:         "lines with comments",
			setupContent: "# Comment\nkey=value\n",
			wantLines:    []string{"# Comment", "key=value"},
		},
		{
			name:         "Windows CRLF line endings",
			setupContent: "key1=value1\r\nkey2=value2\r\n",
			wantLines:    []string{"key1=value1", "key2=value2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempHome := setupTempHome(t)

			if tt.setupContent != "" {
				err := os.WriteFile(filepath.Join(tempHome, ".uniconrc"), []byte(tt.setupContent), 0600)
				require.NoError(t, err)
			}

			lines, err := ReadLines()
			require.NoError(t, err)
			require.Equal(t, tt.wantLines, lines)
		})
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]string{
		"# comment",
		"",
		"github_username=octocat",
		"replay_repo=\"/with space/repo\"",
	})
	require.NoError(t, err)
	require.Equal(t, "octocat", cfg["github_username"])
	require.Equal(t, "/with space/repo", cfg["replay_repo"])

	_, err = Parse([]string{"not a config line"})
	require.Error(t, err)
}

func TestSetAndUnset(t *testing.T) {
	lines := []string{"a=1", "b=2"}

	lines, replaced := Set(lines, "a", "9")
	require.True(t, replaced)
	require.Equal(t, "a=9", lines[0])

	lines, replaced = Set(lines, "c", "has space")
	require.False(t, replaced)
	require.Equal(t, "c=\"has space\"", lines[2])

	lines, removed := Unset(lines, "b")
	require.True(t, removed)
	require.Equal(t, []string{"a=9", "c=\"has space\""}, lines)

	_, removed = Unset(lines, "missing")
	require.False(t, removed)
}

func TestGet_FileOverridesDefault(t *testing.T) {
	tempHome := setupTempHome(t)

	err := os.WriteFile(filepath.Join(tempHome, ".uniconrc"),
		[]byte("github_api_url=https://github.example.com/api/v3\n"), 0600)
	require.NoError(t, err)

	got, ok := Get("github_api_url")
	require.True(t, ok)
	require.Equal(t, "https://github.example.com/api/v3", got)
}

func TestGet_FallsBackToDefault(t *testing.T) {
	setupTempHome(t)
	t.Setenv("GITHUB_API_URL", "")

	got, ok := Get("github_api_url")
	require.True(t, ok)
	require.Equal(t, "https://api.github.com", got)
}

func TestProvider_RoundTrip(t *testing.T) {
	setupTempHome(t)

	p := NewProvider()
	require.NoError(t, p.Set("github_username", "octocat"))

	got, ok := p.Get("github_username")
	require.True(t, ok)
	require.Equal(t, "octocat", got)

	require.NoError(t, p.Unset("github_username"))
}

func TestToken_FromEnvironmentOnly(t *testing.T) {
	setupTempHome(t)
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	require.Equal(t, "ghp_test", Token())
}
