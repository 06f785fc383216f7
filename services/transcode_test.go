package services

import (
	"strings"
	"testing"

	"github.com/gbinu42/hudra-media/config"
)

func TestShouldSkip(t *testing.T) {
	tests := []struct {
		name       string
		sourceKbps float64
		targetKbps int
		skip       bool
	}{
		{"SourceBelowTarget", 20, 32, true},
		{"SourceAtTarget", 64, 64, true},
		{"SourceAboveTarget", 96, 64, false},
		{"UnknownSource", 0, 64, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skip, reason := shouldSkip(tt.sourceKbps, tt.targetKbps)
			if skip != tt.skip {
				t.Errorf("Expected skip=%v, got %v", tt.skip, skip)
			}
			if skip && reason == "" {
				t.Error("Expected a human-readable skip reason")
			}
		})
	}
}

func TestTargetBitrateMonotonicPerExtension(t *testing.T) {
	for ext := range config.EncodeProfiles {
		low := config.TargetBitrateKbps(ext, config.QualityLow)
		medium := config.TargetBitrateKbps(ext, config.QualityMedium)
		high := config.TargetBitrateKbps(ext, config.QualityHigh)

		if !(low <= medium && medium <= high) {
			t.Errorf("%s: bit rates not monotonic: %d/%d/%d", ext, low, medium, high)
		}
		if low <= 0 {
			t.Errorf("%s: missing low tier", ext)
		}
	}
}

func TestParseQualityDefaultsToLow(t *testing.T) {
	tests := []struct {
		input string
		want  config.Quality
	}{
		{"low", config.QualityLow},
		{"medium", config.QualityMedium},
		{"high", config.QualityHigh},
		{"", config.QualityLow},
		{"ultra", config.QualityLow},
	}

	for _, tt := range tests {
		if got := config.ParseQuality(tt.input); got != tt.want {
			t.Errorf("ParseQuality(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBuildCompressArgs(t *testing.T) {
	tests := []struct {
		name     string
		ext      string
		quality  config.Quality
		contains []string
		excludes []string
	}{
		{
			name:     "Mp3Low",
			ext:      "mp3",
			quality:  config.QualityLow,
			contains: []string{"-c:a libmp3lame", "-b:a 64k", "-ar 22050", "-vn", "-ac 2"},
		},
		{
			name:     "M4aHighFastStart",
			ext:      "m4a",
			quality:  config.QualityHigh,
			contains: []string{"-c:a aac", "-b:a 96k", "-movflags +faststart"},
			excludes: []string{"-ar"},
		},
		{
			name:     "OpusMedium",
			ext:      "opus",
			quality:  config.QualityMedium,
			contains: []string{"-c:a libopus", "-b:a 48k"},
		},
		{
			name:     "OggLow",
			ext:      "ogg",
			quality:  config.QualityLow,
			contains: []string{"-c:a libvorbis", "-b:a 48k"},
		},
		{
			name:     "UnknownExtensionDefaultsToMp3",
			ext:      "wav",
			quality:  config.QualityLow,
			contains: []string{"-c:a libmp3lame", "-b:a 64k"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, _ := config.ProfileForExt(tt.ext)
			args := strings.Join(buildCompressArgs("in", "out", profile, tt.quality), " ")

			for _, want := range tt.contains {
				if !strings.Contains(args, want) {
					t.Errorf("Expected args to contain %q, got: %s", want, args)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(args, unwanted) {
					t.Errorf("Expected args to not contain %q, got: %s", unwanted, args)
				}
			}
			if !strings.HasSuffix(args, "out") {
				t.Errorf("Expected output path last, got: %s", args)
			}
		})
	}
}
