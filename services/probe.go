package services

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gbinu42/hudra-media/config"
	"github.com/gbinu42/hudra-media/models"
)

// Prober extracts duration, bit rate and sample rate from a media file via
// ffprobe. A failed probe is not fatal for callers: the transcoder falls
// through to re-encoding and the downloader's enrichment is best-effort.
type Prober struct {
	runner *Runner
}

func NewProber(runner *Runner) *Prober {
	return &Prober{runner: runner}
}

// Probe inspects the file at path. Bit rate falls back to
// fileSizeBytes*8/duration when ffprobe does not report one.
func (p *Prober) Probe(ctx context.Context, path string) (*models.ProbeResult, error) {
	res, err := p.runner.Run(ctx, config.ProbeTimeout, "ffprobe",
		"-v", "error",
		"-show_entries", "stream=sample_rate:format=duration,bit_rate",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return nil, err
	}

	result, err := parseProbeOutput(res.Stdout)
	if err != nil {
		return nil, err
	}

	if result.BitRateKbps <= 0 {
		if info, statErr := os.Stat(path); statErr == nil && result.DurationSeconds > 0 {
			result.BitRateKbps = float64(info.Size()) * 8 / result.DurationSeconds / 1000
		}
	}

	return result, nil
}

// parseProbeOutput reads ffprobe's nokey output positionally: zero or more
// per-stream sample_rate lines followed by the format duration and bit_rate
// lines. Missing values print as N/A and are treated as unknown.
func parseProbeOutput(out string) (*models.ProbeResult, error) {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("unparseable ffprobe output: %q", out)
	}

	duration, err := strconv.ParseFloat(lines[len(lines)-2], 64)
	if err != nil || duration <= 0 {
		return nil, fmt.Errorf("invalid duration in ffprobe output: %q", lines[len(lines)-2])
	}

	result := &models.ProbeResult{DurationSeconds: duration}

	if bits, err := strconv.ParseFloat(lines[len(lines)-1], 64); err == nil && bits > 0 {
		result.BitRateKbps = bits / 1000
	}

	for _, line := range lines[:len(lines)-2] {
		if rate, err := strconv.Atoi(line); err == nil && rate > 0 {
			result.SampleRateHz = rate
			break
		}
	}

	return result, nil
}
