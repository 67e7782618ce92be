package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/grim/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "grim", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"decorate", "preview", "watch", "matchers", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if assert.NoError(t, err, "subcommand %q", name) {
			assert.Equal(t, name, subCmd.Name())
		}
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	stateFlags := []string{"cursor", "selection", "viewport", "viewport-lines", "skip-code", "disable", "enable", "strict-math"}

	tests := []struct {
		command string
		flags   []string
	}{
		{
			command: "decorate",
			flags: append([]string{
				"format", "flavor", "jobs", "ignore", "strict", "context",
				"compact", "per-file", "flat", "matcher-format", "summary-order",
			}, stateFlags...),
		},
		{command: "preview", flags: append([]string{"format", "output", "title"}, stateFlags...)},
		{command: "watch", flags: append([]string{"format", "output", "title"}, stateFlags...)},
		{command: "matchers", flags: []string{"format", "matcher-format", "enable", "disable"}},
		{command: "init", flags: []string{"force", "full", "restore", "format", "output"}},
	}

	root := cli.NewRootCommand(testInfo())
	for _, tt := range tests {
		sub, _, err := root.Find([]string{tt.command})
		require.NoError(t, err)
		for _, name := range tt.flags {
			assert.NotNil(t, sub.Flags().Lookup(name), "%s --%s", tt.command, name)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "global flag %q", name)
	}
	assert.Equal(t, "auto", cmd.PersistentFlags().Lookup("color").DefValue)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2024-01-01"})
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "grim")
	assert.Contains(t, out.String(), "1.2.3")
	assert.Contains(t, out.String(), "abc123")
	assert.Contains(t, out.String(), "matchers=5")

	short := cli.NewRootCommand(cli.BuildInfo{Version: "1.2.3"})
	short.SetArgs([]string{"version", "--short"})
	out.Reset()
	short.SetOut(&out)
	require.NoError(t, short.Execute())
	assert.Equal(t, "1.2.3\n", out.String())
}

func TestArgs(t *testing.T) {
	t.Parallel()

	root := cli.NewRootCommand(testInfo())

	decorate, _, err := root.Find([]string{"decorate"})
	require.NoError(t, err)
	require.NoError(t, decorate.Args(decorate, []string{"file1.md", "file2.md", "docs/"}))

	for _, name := range []string{"preview", "watch"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err)
		require.NoError(t, sub.Args(sub, []string{"a.md"}))
		assert.Error(t, sub.Args(sub, nil), name)
		assert.Error(t, sub.Args(sub, []string{"a.md", "b.md"}), name)
	}
}

func TestHelpShowsExitCodes(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"decorate", "--help"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	help := out.String()
	assert.Contains(t, help, "Usage:")
	assert.Contains(t, help, "--viewport")
	assert.Contains(t, help, "Exit Codes:")
	assert.Contains(t, help, "math fell back")
}

func TestHelpShowsEnvironmentOnRootOnly(t *testing.T) {
	t.Parallel()

	help := func(args ...string) string {
		cmd := cli.NewRootCommand(testInfo())
		cmd.SetArgs(args)
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		require.NoError(t, cmd.Execute())
		return out.String()
	}

	root := help("--help")
	assert.Contains(t, root, "Environment:")
	assert.Contains(t, root, "GRIM_SKIP_CODE")

	assert.NotContains(t, help("preview", "--help"), "Environment:")
}
