package services

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os/exec"
	"sync"
	"time"
)

// RunResult holds the outcome of a finished subprocess.
type RunResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner spawns external processes with a deadline and bounded concurrency.
// When the deadline elapses the process is killed with SIGKILL and the call
// fails with a TimeoutError; the process is always reaped.
type Runner struct {
	slots chan struct{}
}

// NewRunner creates a Runner allowing at most maxConcurrent processes at a
// time. 0 disables the cap.
func NewRunner(maxConcurrent int) *Runner {
	r := &Runner{}
	if maxConcurrent > 0 {
		r.slots = make(chan struct{}, maxConcurrent)
	}
	return r
}

func (r *Runner) acquire(ctx context.Context) error {
	if r.slots == nil {
		return nil
	}
	select {
	case r.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runner) release() {
	if r.slots != nil {
		<-r.slots
	}
}

// Run executes a command and captures its full stdout and stderr.
func (r *Runner) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (*RunResult, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := r.acquire(ctx); err != nil {
		return nil, &TimeoutError{Name: name, Timeout: timeout}
	}
	defer r.release()

	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return r.finish(ctx, name, timeout, err, stdout.String(), stderr.String())
}

// Stream executes a command and delivers each complete output line (stdout
// and stderr) to onLine as it arrives. Partial lines are buffered until the
// terminator arrives, so a line split across read chunks is never dropped.
func (r *Runner) Stream(ctx context.Context, timeout time.Duration, name string, args []string, onLine func(line string)) (*RunResult, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := r.acquire(ctx); err != nil {
		return nil, &TimeoutError{Name: name, Timeout: timeout}
	}
	defer r.release()

	cmd := exec.CommandContext(ctx, name, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &ProcessSpawnError{Name: name, Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, &ProcessSpawnError{Name: name, Err: err}
	}

	if err := cmd.Start(); err != nil {
		return nil, &ProcessSpawnError{Name: name, Err: err}
	}

	var outBuf, errBuf bytes.Buffer
	var wg sync.WaitGroup
	var mu sync.Mutex

	scan := func(rd *bufio.Scanner, buf *bytes.Buffer) {
		defer wg.Done()
		for rd.Scan() {
			line := rd.Text()
			buf.WriteString(line)
			buf.WriteByte('\n')
			if onLine != nil {
				mu.Lock()
				onLine(line)
				mu.Unlock()
			}
		}
	}

	wg.Add(2)
	go scan(bufio.NewScanner(stdout), &outBuf)
	go scan(bufio.NewScanner(stderr), &errBuf)
	wg.Wait()

	waitErr := cmd.Wait()
	return r.finish(ctx, name, timeout, waitErr, outBuf.String(), errBuf.String())
}

func (r *Runner) finish(ctx context.Context, name string, timeout time.Duration, err error, stdout, stderr string) (*RunResult, error) {
	if ctx.Err() == context.DeadlineExceeded {
		return nil, &TimeoutError{Name: name, Timeout: timeout}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ProcessExitError{
				Name:     name,
				ExitCode: exitErr.ExitCode(),
				Stderr:   truncateStderr(stderr),
			}
		}
		return nil, &ProcessSpawnError{Name: name, Err: err}
	}
	return &RunResult{ExitCode: 0, Stdout: stdout, Stderr: stderr}, nil
}
