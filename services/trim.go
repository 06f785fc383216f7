package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/gbinu42/hudra-media/config"
	"github.com/gbinu42/hudra-media/models"
	"github.com/gbinu42/hudra-media/utils"
)

// Trimmer cuts a time range out of uploaded audio, optionally applying a
// gain adjustment. Without gain the cut is a stream copy, preserving the
// source encoding; with gain it re-encodes at conservative voice-tuned
// bit rates.
type Trimmer struct {
	runner *Runner
	temp   *TempFiles
	prober *Prober
}

func NewTrimmer(runner *Runner, temp *TempFiles, prober *Prober) *Trimmer {
	return &Trimmer{runner: runner, temp: temp, prober: prober}
}

// Trim validates the range, cuts the file and re-probes the output for the
// actual bit rate and duration.
func (t *Trimmer) Trim(ctx context.Context, req *models.TrimRequest) (*models.TrimResult, error) {
	if err := utils.ValidateTrimRange(req.StartSeconds, req.EndSeconds, req.GainDb); err != nil {
		return nil, err
	}

	ext := utils.ExtFromFilename(req.FileName)
	if ext == "" {
		ext = "mp3"
	}

	inPath := t.temp.Allocate("trim_in", ext)
	defer t.temp.Release(inPath)

	if err := os.WriteFile(inPath, req.Data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}

	outPath := t.temp.Allocate("trim_out", ext)
	defer t.temp.Release(outPath)

	args := buildTrimArgs(inPath, outPath, ext, req.StartSeconds, req.EndSeconds, req.GainDb)
	if _, err := t.runner.Run(ctx, config.TrimTimeout, "ffmpeg", args...); err != nil {
		return nil, err
	}

	output, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read trimmed output: %w", err)
	}

	result := &models.TrimResult{
		Output:   output,
		FileName: trimOutputName(req.FileName, ext, req.StartSeconds, req.EndSeconds),
	}

	// The a-priori estimate can differ from ground truth, especially on the
	// stream-copy path, so report what the output actually contains.
	if probe, err := t.prober.Probe(ctx, outPath); err != nil {
		log.Printf("[Trim] Output probe failed: %v\n", err)
	} else {
		result.BitrateKbps = probe.BitRateKbps
		result.DurationSeconds = probe.DurationSeconds
	}

	return result, nil
}

// GainMultiplier converts a decibel adjustment to a linear amplitude
// multiplier: 10^(dB/20).
func GainMultiplier(gainDb float64) float64 {
	return math.Pow(10, gainDb/20)
}

// buildTrimArgs expresses the cut as (seek, duration). Seeking before
// reading combines more reliably with a fixed duration than with an absolute
// end timestamp.
func buildTrimArgs(inPath, outPath, ext string, start, end, gainDb float64) []string {
	duration := end - start

	args := []string{
		"-y",
		"-ss", fmt.Sprintf("%.3f", start),
		"-i", inPath,
		"-t", fmt.Sprintf("%.3f", duration),
	}

	if gainDb == 0 {
		// Stream copy: no quality loss, O(I/O) rather than O(CPU). Timestamps
		// are reset to avoid negative-timestamp artifacts from seeking.
		args = append(args,
			"-c", "copy",
			"-avoid_negative_ts", "make_zero",
			"-fflags", "+genpts",
			"-map_metadata", "0",
		)
		if ext == "m4a" || ext == "mp4" {
			args = append(args, "-movflags", "+faststart")
		}
	} else {
		profile, _ := config.ProfileForExt(ext)
		args = append(args,
			"-vn",
			"-af", fmt.Sprintf("volume=%.4f", GainMultiplier(gainDb)),
			"-c:a", profile.Codec,
			"-b:a", fmt.Sprintf("%dk", profile.TrimBitrateKbps),
		)
		args = append(args, profile.ExtraArgs...)
	}

	return append(args, outPath)
}

func trimOutputName(fileName, ext string, start, end float64) string {
	base := utils.SanitizeFilename(utils.BaseWithoutExt(fileName))
	if base == "" {
		base = "trimmed"
	}
	return fmt.Sprintf("%s_%.0f-%.0fs.%s", base, start, end, ext)
}
