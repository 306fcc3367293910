package di

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"px.dev/cli/internal/config"
	"px.dev/cli/internal/infrastructure/manifest"
	"px.dev/cli/internal/interfaces/cli"
)

func testStreams() (Streams, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return Streams{In: strings.NewReader(""), Out: stdout, Err: stderr}, stdout, stderr
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewContainer_DiscoversFromConfiguredDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "px.json"), `{"scripts": {"hello": {"cmd": "echo hello", "description": "Greet"}}}`)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	streams, _, _ := testStreams()
	container, err := NewContainer(context.Background(), &config.Config{Dir: nested}, streams)
	require.NoError(t, err)

	hello, ok := container.Discovery.Scripts.Get("hello")
	require.True(t, ok)
	assert.Equal(t, "echo hello", hello.Cmd())
	assert.Equal(t, "Greet", hello.Description())
	assert.Contains(t, container.Discovery.Sources, filepath.Join(root, "px.json"))

	require.NotNil(t, container.GetCLIContainer())
	assert.Same(t, container.ScriptService, container.GetCLIContainer().ScriptService)
}

func TestNewContainer_ParseErrorFails(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "px.toml"), "[scripts\n")

	streams, _, _ := testStreams()
	_, err := NewContainer(context.Background(), &config.Config{Dir: root}, streams)
	require.Error(t, err)

	var parseErr *manifest.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, filepath.Join(root, "px.toml"), parseErr.Path)
}

func TestNewContainer_DebugLoggingGoesToStderr(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "px.json"), `{"scripts": {"hello": "echo hello"}}`)

	streams, _, stderr := testStreams()
	_, err := NewContainer(context.Background(), &config.Config{Dir: root, Debug: true}, streams)
	require.NoError(t, err)

	assert.Contains(t, stderr.String(), "container initialized")
}

func TestNewContainer_EndToEnd(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("requires /bin/sh")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "px.json"), `{"scripts": {"where": "pwd; echo args:", "fail": "exit 4"}}`)
	nested := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	streams, stdout, stderr := testStreams()
	container, err := NewContainer(context.Background(), &config.Config{Dir: nested}, streams)
	require.NoError(t, err)

	code := cli.Execute(context.Background(), container.GetCLIContainer(), []string{"where", "one", "two"})
	require.Equal(t, 0, code, "stderr: %s", stderr.String())

	resolvedRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, []string{root, resolvedRoot}, lines[0], "scripts run in the manifest's directory")
	assert.Equal(t, "args: one two", lines[1])

	assert.Equal(t, 4, cli.Execute(context.Background(), container.GetCLIContainer(), []string{"fail"}))
	assert.Contains(t, stderr.String(), "Command exited with status: 4")
}
