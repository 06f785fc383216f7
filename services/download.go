package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gbinu42/hudra-media/config"
	"github.com/gbinu42/hudra-media/models"
	"github.com/gbinu42/hudra-media/utils"
)

// Downloader fetches audio from YouTube or Facebook via yt-dlp. The tool
// chooses the final file extension itself, so output files are claimed by
// prefix and located after the process exits.
type Downloader struct {
	runner *Runner
	temp   *TempFiles
	prober *Prober
}

func NewDownloader(runner *Runner, temp *TempFiles, prober *Prober) *Downloader {
	return &Downloader{runner: runner, temp: temp, prober: prober}
}

// Download fetches the URL and returns the full file content. No progress
// events are produced.
func (d *Downloader) Download(ctx context.Context, rawURL string) (*models.DownloadResult, error) {
	return d.run(ctx, rawURL, nil)
}

// DownloadWithProgress fetches the URL, delivering parsed progress events to
// emit. Percent values are non-decreasing and are emitted only on a change
// of at least one point, bounding event volume on fast connections.
func (d *Downloader) DownloadWithProgress(ctx context.Context, rawURL string, emit func(models.ProgressUpdate)) (*models.DownloadResult, error) {
	return d.run(ctx, rawURL, emit)
}

func (d *Downloader) run(ctx context.Context, rawURL string, emit func(models.ProgressUpdate)) (*models.DownloadResult, error) {
	platform, url, err := utils.ResolvePlatform(rawURL)
	if err != nil {
		return nil, err
	}

	base := d.temp.Claim("download")
	outputTemplate := d.temp.PathFor(base) + ".%(ext)s"

	args := buildDownloadArgs(platform, url, outputTemplate, config.CookiesPath())

	tracker := newProgressTracker(emit)
	if _, err := d.runner.Stream(ctx, config.DownloadTimeout, "yt-dlp", args, tracker.Line); err != nil {
		// A killed or failed download may leave a partial file behind.
		if partial, locErr := d.temp.Locate(base); locErr == nil {
			d.temp.Release(partial)
		}
		return nil, err
	}

	path, err := d.temp.Locate(base)
	if err != nil {
		return nil, err
	}
	defer d.temp.Release(path)

	result := &models.DownloadResult{
		FileName: filepath.Base(path),
		MimeType: utils.ContentTypeFromExt(utils.ExtFromFilename(path)),
	}

	// Metadata enrichment is best-effort; its absence is tolerated.
	if probe, probeErr := d.prober.Probe(ctx, path); probeErr != nil {
		log.Printf("[Download] Output probe failed: %v\n", probeErr)
	} else {
		result.BitrateKbps = probe.BitRateKbps
		result.DurationSeconds = probe.DurationSeconds
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read downloaded file: %w", err)
	}
	result.Data = data
	result.FileSize = int64(len(data))

	return result, nil
}

// Version reports the installed yt-dlp version, best-effort, for error
// diagnostics.
func (d *Downloader) Version(ctx context.Context) string {
	res, err := d.runner.Run(ctx, config.VersionTimeout, "yt-dlp", "--version")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(res.Stdout)
}

// buildDownloadArgs assembles the yt-dlp invocation for a platform. Each
// platform carries a single -f fallback expression tried left to right.
func buildDownloadArgs(platform models.Platform, url, outputTemplate, cookiesPath string) []string {
	args := []string{"--newline", "--no-warnings", "--no-playlist"}

	switch platform {
	case models.PlatformFacebook:
		args = append(args,
			"-f", config.FacebookFormatChain,
			"-x",
			"--user-agent", config.DownloadUserAgent,
			"--add-header", config.DownloadAcceptLanguage,
		)
		if cookiesPath != "" {
			if _, err := os.Stat(cookiesPath); err == nil {
				args = append(args, "--cookies", cookiesPath)
			}
		}
	default:
		args = append(args, "-f", config.YouTubeFormatChain)
	}

	return append(args, "-o", outputTemplate, url)
}

// progressLine matches yt-dlp's newline-delimited progress output:
// [download]  45.0% of 10.00MiB at 2.50MiB/s ETA 00:05
var progressLine = regexp.MustCompile(`\[download\]\s+(\d+(?:\.\d+)?)%(?:\s+of\s+~?\s*(\S+))?(?:\s+at\s+(\S+))?(?:\s+ETA\s+(\S+))?`)

// progressTracker turns raw yt-dlp output lines into rate-limited,
// monotonically non-decreasing progress events.
type progressTracker struct {
	emit    func(models.ProgressUpdate)
	last    float64
	started bool
}

func newProgressTracker(emit func(models.ProgressUpdate)) *progressTracker {
	return &progressTracker{emit: emit}
}

// Line parses one complete output line and emits an event when the percent
// advanced by at least ProgressStepPercent (the jump to 100% is always
// emitted). Decreases are dropped, since yt-dlp restarts the counter for
// each fragment.
func (p *progressTracker) Line(line string) {
	if p.emit == nil {
		return
	}

	m := progressLine.FindStringSubmatch(line)
	if m == nil {
		return
	}

	percent, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return
	}

	if p.started {
		if percent <= p.last {
			return
		}
		if percent-p.last < config.ProgressStepPercent && !(percent >= 100 && p.last < 100) {
			return
		}
	}

	p.started = true
	p.last = percent
	p.emit(models.ProgressUpdate{
		Percent:  percent,
		SizeHint: m[2],
		Speed:    m[3],
		ETA:      m[4],
	})
}
