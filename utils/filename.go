package utils

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// Characters not allowed in filenames
	invalidChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	// Multiple spaces/underscores
	multipleSpaces = regexp.MustCompile(`[\s_]+`)
)

// SanitizeFilename removes invalid characters from filename
func SanitizeFilename(name string) string {
	// Replace invalid characters with underscore
	name = invalidChars.ReplaceAllString(name, "_")
	// Replace multiple spaces/underscores with single underscore
	name = multipleSpaces.ReplaceAllString(name, "_")
	// Trim leading/trailing underscores and spaces
	name = strings.Trim(name, "_ ")
	// Limit length
	if len(name) > 200 {
		name = name[:200]
	}
	return name
}

// ExtFromFilename returns the lowercased extension without the leading dot.
func ExtFromFilename(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// BaseWithoutExt returns the filename with its extension stripped.
func BaseWithoutExt(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ContentTypeFromExt returns content type for an audio file extension
func ContentTypeFromExt(ext string) string {
	switch ext {
	case "mp3":
		return "audio/mpeg"
	case "m4a", "mp4":
		return "audio/mp4"
	case "wav":
		return "audio/wav"
	case "opus":
		return "audio/opus"
	case "webm":
		return "audio/webm"
	case "flac":
		return "audio/flac"
	case "ogg":
		return "audio/ogg"
	case "aac":
		return "audio/aac"
	default:
		return "application/octet-stream"
	}
}
