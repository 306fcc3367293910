package process

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"px.dev/cli/internal/core/domain/process"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell tests use POSIX sh")
	}
}

func TestShellFor(t *testing.T) {
	tests := []struct {
		name          string
		shell         string
		goos          string
		expectedShell string
		expectedFlag  string
	}{
		{name: "DefaultUnix", goos: "linux", expectedShell: "sh", expectedFlag: "-c"},
		{name: "DefaultWindows", goos: "windows", expectedShell: "cmd", expectedFlag: "/C"},
		{name: "Bash", shell: "/bin/bash", goos: "linux", expectedShell: "/bin/bash", expectedFlag: "-c"},
		{name: "CmdExe", shell: `C:\Windows\System32\cmd.exe`, goos: "windows", expectedShell: `C:\Windows\System32\cmd.exe`, expectedFlag: "/C"},
		{name: "Pwsh", shell: "pwsh", goos: "darwin", expectedShell: "pwsh", expectedFlag: "-Command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shell, flag := shellFor(tt.shell, tt.goos)
			assert.Equal(t, tt.expectedShell, shell)
			assert.Equal(t, tt.expectedFlag, flag)
		})
	}
}

func TestExecutor_Execute(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker.txt"), []byte("here"), 0o644))

	var stdout, stderr bytes.Buffer
	executor := NewExecutorWithOptions("", strings.NewReader(""), &stdout, &stderr, []string{"PATH=" + os.Getenv("PATH"), "GREETING=hello"})

	cmd, err := process.NewCommand("cat marker.txt && echo \" $GREETING\" && echo oops >&2", dir)
	require.NoError(t, err)

	code, err := executor.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "here hello\n", stdout.String())
	assert.Equal(t, "oops\n", stderr.String())
}

func TestExecutor_ExitCode(t *testing.T) {
	skipOnWindows(t)

	executor := NewExecutorWithOptions("", nil, &bytes.Buffer{}, &bytes.Buffer{}, nil)
	cmd, err := process.NewCommand("exit 3", t.TempDir())
	require.NoError(t, err)

	code, err := executor.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, 3, code)
}

func TestExecutor_StartFailure(t *testing.T) {
	executor := NewExecutorWithOptions("/definitely/not/a/shell", nil, &bytes.Buffer{}, &bytes.Buffer{}, nil)
	cmd, err := process.NewCommand("true", t.TempDir())
	require.NoError(t, err)

	code, err := executor.Execute(context.Background(), cmd)
	require.Error(t, err)
	assert.Equal(t, -1, code)
}

func TestExecutor_EmptyLineSucceeds(t *testing.T) {
	skipOnWindows(t)

	var stdout bytes.Buffer
	executor := NewExecutorWithOptions("", nil, &stdout, &bytes.Buffer{}, nil)
	cmd, err := process.NewCommand("", t.TempDir())
	require.NoError(t, err)

	code, err := executor.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Empty(t, stdout.String())
}
