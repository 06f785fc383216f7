package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/gbinu42/hudra-media/config"
)

// ProcessSpawnError indicates the executable was missing or unlaunchable.
type ProcessSpawnError struct {
	Name string
	Err  error
}

func (e *ProcessSpawnError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Name, e.Err)
}

func (e *ProcessSpawnError) Unwrap() error { return e.Err }

// ProcessExitError indicates a non-zero exit. Stderr carries a truncated
// excerpt for operator diagnosis.
type ProcessExitError struct {
	Name     string
	ExitCode int
	Stderr   string
}

func (e *ProcessExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s exited with code %d", e.Name, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Name, e.ExitCode, e.Stderr)
}

// TimeoutError indicates the deadline elapsed and the process was killed.
type TimeoutError struct {
	Name    string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s did not finish within %v and was killed", e.Name, e.Timeout)
}

// FileNotFoundError indicates an output file could not be located after a
// successful process exit.
type FileNotFoundError struct {
	Prefix string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("no output file found for prefix %q", e.Prefix)
}

// truncateStderr bounds a stderr capture to a diagnosable excerpt, keeping
// the tail where ffmpeg and yt-dlp put the actual failure.
func truncateStderr(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= config.MaxStderrExcerpt {
		return s
	}
	return "..." + s[len(s)-config.MaxStderrExcerpt:]
}
