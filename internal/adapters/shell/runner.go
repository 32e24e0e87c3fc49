// Package shell runs external toolchain commands.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CommandRunner = (*Runner)(nil)

// Runner implements ports.CommandRunner using os/exec and pty.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger: logger,
	}
}

// Run launches the invocation in a PTY and streams its combined output to out
// as it arrives, mirroring each line through the logger. Compilers detect the
// PTY and keep their progress output enabled.
func (r *Runner) Run(ctx context.Context, inv domain.Invocation, out io.Writer) error {
	if inv.Command == "" {
		return domain.ErrEmptyCommand
	}
	if out == nil {
		out = io.Discard
	}

	cmdEnv := resolveEnvironment(os.Environ(), inv.Env)

	cmd := exec.CommandContext(ctx, resolveExecutable(inv.Command, cmdEnv), inv.Args...) //nolint:gosec // tool binary comes from project configuration
	if len(cmd.Args) > 0 {
		cmd.Args[0] = inv.Command
	}
	cmd.Dir = inv.Dir
	cmd.Env = cmdEnv

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to start pty"), "command", inv.Command)
	}

	logs := &logWriter{logger: r.logger}
	stream := io.MultiWriter(logs, out)

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		// Flush any partial trailing line once the stream ends
		defer func() { _ = logs.Close() }()

		// The PTY merges stdout and stderr into a single stream.
		_, _ = io.Copy(stream, ptmx)
	}()

	waitErr := cmd.Wait()
	<-ioDone

	if waitErr != nil {
		return commandFailed(inv, waitErr)
	}
	return nil
}

// Capture runs the invocation without a PTY and returns its trimmed stdout.
// Stderr is buffered and attached to the error when the tool fails.
func (r *Runner) Capture(ctx context.Context, inv domain.Invocation) (string, error) {
	if inv.Command == "" {
		return "", domain.ErrEmptyCommand
	}

	cmdEnv := resolveEnvironment(os.Environ(), inv.Env)

	cmd := exec.CommandContext(ctx, resolveExecutable(inv.Command, cmdEnv), inv.Args...) //nolint:gosec // tool binary comes from project configuration
	if len(cmd.Args) > 0 {
		cmd.Args[0] = inv.Command
	}
	cmd.Dir = inv.Dir
	cmd.Env = cmdEnv

	output, err := cmd.Output()
	if err != nil {
		return "", commandFailed(inv, err)
	}

	return strings.TrimSpace(string(output)), nil
}

// commandFailed maps a command failure to the shared external tool error
// shape carrying the command, its arguments and the exit code.
func commandFailed(inv domain.Invocation, err error) error {
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
		if stderr := strings.TrimSpace(string(exitErr.Stderr)); stderr != "" {
			err = zerr.Wrap(err, stderr)
		}
	}

	toolErr := zerr.With(domain.ErrExternalTool, "command", inv.Command)
	toolErr = zerr.With(toolErr, "args", strings.Join(inv.Args, " "))
	toolErr = zerr.With(toolErr, "exit_code", exitCode)

	return errors.Join(toolErr, err)
}

// logWriter splits a byte stream into lines and forwards them to the logger.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}

		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	// The PTY line discipline appends \r.
	w.logger.Info(strings.TrimSuffix(string(line), "\r"))
}

// allowListedEnvVars are the only system environment variables a tool
// invocation inherits. The set covers what a toolchain needs to find its
// home directory and caches; everything else stays out of the build.
var allowListedEnvVars = map[string]struct{}{
	"HOME":   {},
	"TERM":   {},
	"USER":   {},
	"PATH":   {},
	"LANG":   {},
	"LC_ALL": {},
	"TMPDIR": {},
}

// resolveEnvironment merges the allow-listed system environment with the
// invocation's own variables, which take priority.
func resolveEnvironment(sysEnv []string, invEnv map[string]string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			if _, allowed := allowListedEnvVars[k]; allowed {
				envMap[k] = v
			}
		}
	}

	for k, v := range invEnv {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// resolveExecutable locates the command against the resolved environment's
// PATH. os/exec would otherwise consult the process environment, which the
// allow-list may have diverged from.
func resolveExecutable(name string, env []string) string {
	if filepath.IsAbs(name) {
		return name
	}
	if lp, err := lookPath(name, env); err == nil {
		return lp
	}
	return name
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// An empty PATH element names the current directory.
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
