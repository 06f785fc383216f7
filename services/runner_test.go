package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestRunCapturesOutput(t *testing.T) {
	r := NewRunner(0)

	res, err := r.Run(context.Background(), 10*time.Second, "sh", "-c", "echo hello; echo oops >&2")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("Expected exit code 0, got %d", res.ExitCode)
	}
	if strings.TrimSpace(res.Stdout) != "hello" {
		t.Errorf("Expected stdout 'hello', got %q", res.Stdout)
	}
	if strings.TrimSpace(res.Stderr) != "oops" {
		t.Errorf("Expected stderr 'oops', got %q", res.Stderr)
	}
}

func TestRunNonZeroExit(t *testing.T) {
	r := NewRunner(0)

	_, err := r.Run(context.Background(), 10*time.Second, "sh", "-c", "echo broken >&2; exit 3")
	if err == nil {
		t.Fatal("Expected error for non-zero exit")
	}

	var exitErr *ProcessExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Expected *ProcessExitError, got %T: %v", err, err)
	}
	if exitErr.ExitCode != 3 {
		t.Errorf("Expected exit code 3, got %d", exitErr.ExitCode)
	}
	if !strings.Contains(exitErr.Stderr, "broken") {
		t.Errorf("Expected stderr excerpt to contain 'broken', got %q", exitErr.Stderr)
	}
}

func TestRunSpawnError(t *testing.T) {
	r := NewRunner(0)

	_, err := r.Run(context.Background(), 5*time.Second, "definitely-not-a-real-binary-xyz")
	if err == nil {
		t.Fatal("Expected error for missing executable")
	}

	var spawnErr *ProcessSpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("Expected *ProcessSpawnError, got %T: %v", err, err)
	}
}

func TestRunTimeoutKillsProcess(t *testing.T) {
	r := NewRunner(0)

	start := time.Now()
	_, err := r.Run(context.Background(), 100*time.Millisecond, "sleep", "10")
	elapsed := time.Since(start)

	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("Expected *TimeoutError, got %T: %v", err, err)
	}
	if elapsed > 5*time.Second {
		t.Errorf("Process was not killed promptly, took %v", elapsed)
	}
}

func TestStreamDeliversLines(t *testing.T) {
	r := NewRunner(0)

	var mu sync.Mutex
	var lines []string
	onLine := func(line string) {
		mu.Lock()
		lines = append(lines, line)
		mu.Unlock()
	}

	res, err := r.Stream(context.Background(), 10*time.Second, "sh",
		[]string{"-c", "printf 'one\\ntwo\\n'; printf 'three\\n' >&2"}, onLine)
	if err != nil {
		t.Fatalf("Stream() error: %v", err)
	}

	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(res.Stdout, "one") || !strings.Contains(res.Stdout, "two") {
		t.Errorf("Stdout capture incomplete: %q", res.Stdout)
	}
	if !strings.Contains(res.Stderr, "three") {
		t.Errorf("Stderr capture incomplete: %q", res.Stderr)
	}
}

func TestStreamTimeout(t *testing.T) {
	r := NewRunner(0)

	_, err := r.Stream(context.Background(), 100*time.Millisecond, "sleep", []string{"10"}, nil)

	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("Expected *TimeoutError, got %T: %v", err, err)
	}
}

func TestRunnerBoundsConcurrency(t *testing.T) {
	r := NewRunner(1)

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Run(context.Background(), 10*time.Second, "sleep", "0.25"); err != nil {
				t.Errorf("Run() error: %v", err)
			}
		}()
	}
	wg.Wait()

	// With a single slot the two sleeps cannot overlap.
	if elapsed := time.Since(start); elapsed < 400*time.Millisecond {
		t.Errorf("Expected serialized execution, finished in %v", elapsed)
	}
}

func TestTruncateStderrKeepsTail(t *testing.T) {
	long := strings.Repeat("x", 4000) + "actual error"
	got := truncateStderr(long)
	if !strings.HasSuffix(got, "actual error") {
		t.Error("Expected the tail of stderr to be preserved")
	}
	if !strings.HasPrefix(got, "...") {
		t.Error("Expected truncation marker")
	}
}
