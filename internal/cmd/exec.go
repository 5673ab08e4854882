// Package cmd provides helpers for executing external commands with proper
// error handling.
package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/lineage/internal/log"
)

// RunContext executes name with args in dir. The error carries trimmed
// stderr when the command wrote any.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := run(ctx, dir, nil, name, args...)
	return err
}

// OutputContext executes name with args in dir and returns stdout.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	return run(ctx, dir, nil, name, args...)
}

// InputContext executes name with args in dir, feeding stdin, and returns
// stdout.
func InputContext(ctx context.Context, dir string, stdin io.Reader, name string, args ...string) ([]byte, error) {
	return run(ctx, dir, stdin, name, args...)
}

func run(ctx context.Context, dir string, stdin io.Reader, name string, args ...string) ([]byte, error) {
	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	defer func() { done(time.Since(start)) }()

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	c.Stdin = stdin

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, &ExitError{Err: err, Stderr: msg}
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// ExitError is returned when a command fails and wrote to stderr.
type ExitError struct {
	Err    error
	Stderr string
}

func (e *ExitError) Error() string {
	return e.Stderr
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code of a failed command, or -1 if err does not
// come from a process exit.
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
