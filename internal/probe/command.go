package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"testctl/internal/check"
)

// tailLines is the number of output lines kept as the diagnostic.
const tailLines = 20

// Command runs a subprocess; exit status 0 passes.
type Command struct {
	Argv []string
	Dir  string
	Env  map[string]string
}

// Invoke runs the command. Failure to start it is an invocation error.
func (c *Command) Invoke(ctx context.Context) (check.Verdict, error) {
	if len(c.Argv) == 0 {
		return check.Verdict{}, errors.New("command has no argv")
	}

	cmd := exec.CommandContext(ctx, c.Argv[0], c.Argv[1:]...)
	cmd.Dir = c.Dir
	cmd.Env = c.environ()
	// Children holding the output pipes open must not outlive the deadline.
	cmd.WaitDelay = time.Second

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Start(); err != nil {
		return check.Verdict{}, err
	}

	err := cmd.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return check.Verdict{}, ctxErr
	}

	tail := Tail(output.String(), tailLines)
	if err == nil {
		return check.Pass(tail), nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return check.Verdict{}, fmt.Errorf("waiting for %s: %w", c.Argv[0], err)
	}
	if tail == "" {
		return check.Fail("exit code %d", exitErr.ExitCode()), nil
	}
	return check.Fail("exit code %d\n%s", exitErr.ExitCode(), tail), nil
}

func (c *Command) environ() []string {
	if len(c.Env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := os.Environ()
	for _, k := range keys {
		env = append(env, k+"="+c.Env[k])
	}
	return env
}

// Tail returns the last n lines of s, without trailing blank lines.
func Tail(s string, n int) string {
	s = strings.TrimRight(s, "\r\n\t ")
	if s == "" || n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
