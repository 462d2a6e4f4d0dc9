package commander

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-ffmpeg")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestCommander_Run_ExitCode(t *testing.T) {
	for _, code := range []int{0, 1, 3, 69} {
		c := New(writeScript(t, "exit "+strconv.Itoa(code)))
		c.SetArgs([]string{"-i", "clip.mp4"})
		err := <-c.Run(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, code, c.ExitCode())
	}
}

func TestCommander_Run_Signaled(t *testing.T) {
	c := New(writeScript(t, "kill -9 $$"))
	err := <-c.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 128+9, c.ExitCode())
}

func TestCommander_Run_PassesArgsVerbatim(t *testing.T) {
	var stdout, stderr bytes.Buffer
	c := New(writeScript(t, `for a in "$@"; do printf '%s\n' "$a"; done; echo oops >&2`))
	c.SetStdio(strings.NewReader(""), &stdout, &stderr)
	args := []string{"-vf", "scale=1280:720", "two words", "", "-c:a", "copy", "out file.mp4"}
	c.SetArgs(args)

	require.NoError(t, <-c.Run(context.Background()))
	assert.Equal(t, 0, c.ExitCode())
	assert.Equal(t, strings.Join(args, "\n")+"\n", stdout.String())
	assert.Equal(t, "oops\n", stderr.String())
}

func TestCommander_Run_NotFound(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "no-such-ffmpeg"))
	c.SetArgs([]string{"-i", "clip.mp4"})
	err := <-c.Run(context.Background())

	var startErr *StartError
	require.True(t, errors.As(err, &startErr))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, ExitNotFound, startErr.ExitCode)
	assert.Equal(t, ExitNotFound, c.ExitCode())
}

func TestCommander_Run_NoCommand(t *testing.T) {
	c := New("")
	err := <-c.Run(context.Background())
	assert.Error(t, err)
	assert.Equal(t, ExitNotFound, c.ExitCode())
}

func TestCommander_Run_CannotStart(t *testing.T) {
	tests := []struct {
		name string
		body string
		perm os.FileMode
	}{
		{"no execute permission", "#!/bin/sh\nexit 0\n", 0o644},
		{"no interpreter line", "not a program", 0o755},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "ffmpeg")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), tt.perm))

			c := New(path)
			err := <-c.Run(context.Background())

			var startErr *StartError
			require.True(t, errors.As(err, &startErr))
			assert.False(t, errors.Is(err, ErrNotFound))
			assert.Equal(t, ExitCannotStart, startErr.ExitCode)
			assert.Equal(t, ExitCannotStart, c.ExitCode())
		})
	}
}
