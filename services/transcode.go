package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/gbinu42/hudra-media/config"
	"github.com/gbinu42/hudra-media/models"
	"github.com/gbinu42/hudra-media/utils"
)

// Transcoder compresses uploaded audio toward a quality tier, skipping the
// encode entirely when the source is already at or below the target rate.
type Transcoder struct {
	runner *Runner
	temp   *TempFiles
	prober *Prober
}

func NewTranscoder(runner *Runner, temp *TempFiles, prober *Prober) *Transcoder {
	return &Transcoder{runner: runner, temp: temp, prober: prober}
}

// Compress re-encodes the uploaded file per its extension profile and the
// requested tier. Both temp files are deleted on every exit path.
func (t *Transcoder) Compress(ctx context.Context, req *models.TranscodeRequest) (*models.TranscodeResult, error) {
	quality := config.ParseQuality(req.Quality)
	profile, outExt := config.ProfileForExt(utils.ExtFromFilename(req.FileName))
	target := profile.BitrateKbps[quality]

	inPath := t.temp.Allocate("compress_in", outExt)
	defer t.temp.Release(inPath)

	if err := os.WriteFile(inPath, req.Data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}

	// Unknown bit rate falls through to re-encoding.
	var sourceKbps float64
	if probe, err := t.prober.Probe(ctx, inPath); err != nil {
		log.Printf("[Compress] Probe failed, re-encoding blind: %v\n", err)
	} else {
		sourceKbps = probe.BitRateKbps
	}

	if skip, reason := shouldSkip(sourceKbps, target); skip {
		return &models.TranscodeResult{
			Output:         req.Data,
			MimeType:       utils.ContentTypeFromExt(outExt),
			OriginalSize:   int64(len(req.Data)),
			CompressedSize: int64(len(req.Data)),
			Skipped:        true,
			SkipReason:     reason,
		}, nil
	}

	outPath := t.temp.Allocate("compress_out", outExt)
	defer t.temp.Release(outPath)

	args := buildCompressArgs(inPath, outPath, profile, quality)
	if _, err := t.runner.Run(ctx, config.CompressTimeout, "ffmpeg", args...); err != nil {
		return nil, err
	}

	output, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read encoder output: %w", err)
	}

	return &models.TranscodeResult{
		Output:         output,
		MimeType:       utils.ContentTypeFromExt(outExt),
		OriginalSize:   int64(len(req.Data)),
		CompressedSize: int64(len(output)),
	}, nil
}

// shouldSkip applies the skip rule: a source already at or below the target
// bit rate is returned unchanged rather than re-encoded (and potentially
// enlarged).
func shouldSkip(sourceKbps float64, targetKbps int) (bool, string) {
	if sourceKbps <= 0 || targetKbps <= 0 {
		return false, ""
	}
	if sourceKbps > float64(targetKbps) {
		return false, ""
	}
	return true, fmt.Sprintf("source bit rate %.0f kbps is at or below the %d kbps target", sourceKbps, targetKbps)
}

// buildCompressArgs assembles the encoder invocation: strip video, force
// stereo, apply the profile's sample rate and bit rate, overwrite output.
func buildCompressArgs(inPath, outPath string, profile config.EncodeProfile, quality config.Quality) []string {
	args := []string{"-y", "-i", inPath, "-vn", "-ac", "2"}
	if rate := profile.SampleRateHz[quality]; rate > 0 {
		args = append(args, "-ar", strconv.Itoa(rate))
	}
	args = append(args,
		"-c:a", profile.Codec,
		"-b:a", fmt.Sprintf("%dk", profile.BitrateKbps[quality]),
	)
	args = append(args, profile.ExtraArgs...)
	return append(args, outPath)
}
