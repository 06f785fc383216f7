package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/gbinu42/hudra-media/config"
	"github.com/gbinu42/hudra-media/models"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NormalizeURL prefixes bare host URLs with https://.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if !strings.Contains(raw, "://") {
		return "https://" + raw
	}
	return raw
}

// ResolvePlatform classifies a URL into one of the supported platforms and
// returns the normalized URL. Any other domain is rejected.
func ResolvePlatform(raw string) (models.Platform, string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", "", ValidationError{Field: "url", Message: "URL is required"}
	}

	normalized := NormalizeURL(raw)
	lower := strings.ToLower(normalized)

	switch {
	case strings.Contains(lower, "youtube.com") || strings.Contains(lower, "youtu.be"):
		return models.PlatformYouTube, normalized, nil
	case strings.Contains(lower, "facebook.com") || strings.Contains(lower, "fb.watch"):
		return models.PlatformFacebook, normalized, nil
	}

	return "", "", ValidationError{Field: "url", Message: "Only YouTube and Facebook URLs are supported"}
}

// ValidateTrimRange checks the trim time range and gain adjustment.
func ValidateTrimRange(start, end, gainDb float64) error {
	if math.IsNaN(start) || math.IsInf(start, 0) || math.IsNaN(end) || math.IsInf(end, 0) {
		return ValidationError{Field: "startTime/endTime", Message: "Times must be finite numbers"}
	}
	if start < 0 {
		return ValidationError{Field: "startTime", Message: "Start time must be >= 0"}
	}
	if end <= start {
		return ValidationError{Field: "endTime", Message: "End time must be greater than start time"}
	}
	if math.IsNaN(gainDb) || math.IsInf(gainDb, 0) || gainDb < -config.MaxGainDb || gainDb > config.MaxGainDb {
		return ValidationError{Field: "gainDb", Message: fmt.Sprintf("Gain must be between %.0f and +%.0f dB", -config.MaxGainDb, config.MaxGainDb)}
	}
	return nil
}
