// Package shell provides the external build command runner.
package shell

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Runner = (*Runner)(nil)

// Runner implements ports.Runner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new shell Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes argv in dir. The inherited environment is extended with env;
// later entries win. Output streams to the provided writers, falling back to
// the logger when a writer is nil.
func (r *Runner) Run(ctx context.Context, dir string, argv []string, env []string, stdout, stderr io.Writer) error {
	if len(argv) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // configured build command
	cmd.Dir = dir
	cmd.Env = mergeEnv(os.Environ(), env)

	if stdout == nil {
		stdout = &logWriter{logger: r.logger, level: "info"}
	}
	if stderr == nil {
		stderr = &logWriter{logger: r.logger, level: "error"}
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok { //nolint:errorlint // exec.Run returns the concrete type
			exitCode = exitErr.ExitCode()
		}
		wrapped := zerr.With(zerr.Wrap(err, "build command failed"), "command", strings.Join(argv, " "))
		wrapped = zerr.With(wrapped, "dir", dir)
		return zerr.With(wrapped, "exit_code", exitCode)
	}

	return nil
}

// mergeEnv appends extra entries to base, with extra keys overriding base keys.
func mergeEnv(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}

	envMap := make(map[string]string, len(base)+len(extra))
	order := make([]string, 0, len(base)+len(extra))
	put := func(entry string) {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			return
		}
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}
	for _, e := range base {
		put(e)
	}
	for _, e := range extra {
		put(e)
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

type logWriter struct {
	logger ports.Logger
	level  string
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	lines := strings.Split(strings.TrimSuffix(string(p), "\n"), "\n")
	for _, line := range lines {
		if w.level == "info" {
			w.logger.Info(line)
		} else {
			w.logger.Error(zerr.New(line))
		}
	}
	return len(p), nil
}
