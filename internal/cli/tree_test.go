package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/y3pio/unicon/internal/dispatchers"
)

func TestBuildTree_ReturnsRoot(t *testing.T) {
	root := BuildTree()

	require.NotNil(t, root)
	require.Equal(t, "unicon", root.Name)
}

func TestBuildTree_HasExpectedTopLevelCommands(t *testing.T) {
	root := BuildTree()

	expectedCommands := []string{
		"fetch",
		"import",
		"commit",
		"status",
		"config",
		"version",
	}

	for _, cmd := range expectedCommands {
		_, found := root.Children[cmd]
		require.True(t, found, "expected top-level command '%s' not found", cmd)
	}
}

func TestBuildTree_ConfigHasSubcommands(t *testing.T) {
	root := BuildTree()

	config, found := root.Children["config"]
	require.True(t, found, "config group not found")

	expectedSubcommands := []string{"get", "set", "unset", "list"}
	for _, sub := range expectedSubcommands {
		_, found := config.Children[sub]
		require.True(t, found, "expected config subcommand '%s' not found", sub)
	}
}

func TestBuildTree_PipelineCommandsCategorized(t *testing.T) {
	root := BuildTree()

	for _, cmd := range []string{"fetch", "import", "commit"} {
		require.Equal(t, dispatchers.CategoryPipeline, root.Children[cmd].Category)
	}
	require.Equal(t, dispatchers.CategoryInspect, root.Children["status"].Category)
}

func TestBuildTree_DispatchResolvesLeafCommands(t *testing.T) {
	root := BuildTree()

	res, err := dispatchers.Dispatch(root, []string{"config", "get", "github_username"}, dispatchers.NewParsedFlags(nil))
	require.NoError(t, err)
	require.Equal(t, []string{"unicon", "config", "get"}, res.Node.Path)
	require.Equal(t, []string{"github_username"}, res.Args)
}
