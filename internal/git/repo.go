package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Result is the captured outcome of one git invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner runs the version-control binary with args in dir and waits for it.
// A non-zero exit is reported as a *CommandError alongside the captured Result.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (Result, error)
}

// ExecRunner runs a git binary as a subprocess.
type ExecRunner struct {
	Binary string
}

// NewExecRunner creates a runner for binary, defaulting to "git".
func NewExecRunner(binary string) *ExecRunner {
	if binary == "" {
		binary = "git"
	}
	return &ExecRunner{Binary: binary}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, dir string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return res, nil
	}

	res.ExitCode = -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
	}
	return res, &CommandError{
		Args:     args,
		Dir:      dir,
		ExitCode: res.ExitCode,
		Stderr:   res.Stderr,
		Err:      err,
	}
}

// Clone runs `git clone <url>` inside bundleDir.
func Clone(ctx context.Context, r Runner, bundleDir, url string) (Result, error) {
	return r.Run(ctx, bundleDir, "clone", url)
}

// Pull runs `git pull <remote> <branch>` inside pluginDir.
func Pull(ctx context.Context, r Runner, pluginDir, remote, branch string) (Result, error) {
	return r.Run(ctx, pluginDir, "pull", remote, branch)
}

// Version returns the output of `git --version`, failing when git is unavailable.
func Version(ctx context.Context, r Runner) (string, error) {
	res, err := r.Run(ctx, ".", "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}
