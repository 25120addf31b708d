package probe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand_Invoke(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		wantPass bool
		wantDiag string
	}{
		{name: "exit zero passes", script: "echo ready", wantPass: true, wantDiag: "ready"},
		{name: "silent success", script: "true", wantPass: true, wantDiag: ""},
		{name: "exit code is reported", script: "echo 2 failed >&2; exit 3", wantPass: false, wantDiag: "exit code 3\n2 failed"},
		{name: "silent failure", script: "exit 1", wantPass: false, wantDiag: "exit code 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Command{Argv: []string{"sh", "-c", tt.script}}

			verdict, err := c.Invoke(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantPass, verdict.Passed)
			assert.Equal(t, tt.wantDiag, verdict.Diagnostic)
		})
	}
}

func TestCommand_DiagnosticKeepsOutputTail(t *testing.T) {
	c := &Command{Argv: []string{"sh", "-c", "i=1; while [ $i -le 30 ]; do echo line$i; i=$((i+1)); done; exit 1"}}

	verdict, err := c.Invoke(context.Background())
	require.NoError(t, err)
	require.False(t, verdict.Passed)

	lines := strings.Split(verdict.Diagnostic, "\n")
	require.Len(t, lines, tailLines+1)
	assert.Equal(t, "exit code 1", lines[0])
	assert.Equal(t, "line11", lines[1])
	assert.Equal(t, "line30", lines[len(lines)-1])
}

func TestCommand_DirAndEnv(t *testing.T) {
	dir := t.TempDir()
	c := &Command{
		Argv: []string{"sh", "-c", `echo "$TESTCTL_PROBE"; pwd`},
		Dir:  dir,
		Env:  map[string]string{"TESTCTL_PROBE": "set"},
	}

	verdict, err := c.Invoke(context.Background())
	require.NoError(t, err)
	assert.True(t, verdict.Passed)
	assert.Contains(t, verdict.Diagnostic, "set\n")
	assert.Contains(t, verdict.Diagnostic, dir)
}

func TestCommand_StartFailureIsInvocationError(t *testing.T) {
	c := &Command{Argv: []string{"testctl-no-such-binary-on-path"}}

	_, err := c.Invoke(context.Background())
	assert.Error(t, err)

	_, err = (&Command{}).Invoke(context.Background())
	assert.Error(t, err)
}

func TestCommand_DeadlineIsReportedAsContextError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := (&Command{Argv: []string{"sleep", "5"}}).Invoke(ctx)

	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestTail(t *testing.T) {
	var many []string
	for i := 1; i <= 25; i++ {
		many = append(many, fmt.Sprintf("l%d", i))
	}

	assert.Equal(t, "", Tail("", 20))
	assert.Equal(t, "", Tail("\n\n  \n", 20))
	assert.Equal(t, "a\nb", Tail("a\nb\n\n", 20))
	assert.Equal(t, "b\nc", Tail("a\nb\nc", 2))
	assert.Equal(t, strings.Join(many[5:], "\n"), Tail(strings.Join(many, "\n"), 20))
	assert.Equal(t, "", Tail("a", 0))
}
