package config

import (
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload" // Auto-load .env file
)

const (
	// Server
	Port = 5001

	// Temp storage
	TempDirDefault = "./tmp/media"
	TempIDLength   = 16

	// Subprocess limits
	MaxConcurrentProcesses = 8
	MaxStderrExcerpt       = 1024

	// Deadlines. Every spawned process gets one; downloads get the longest
	// window since yt-dlp does real network I/O.
	ProbeTimeout    = 30 * time.Second
	CompressTimeout = 2 * time.Minute
	TrimTimeout     = 2 * time.Minute
	DownloadTimeout = 10 * time.Minute
	VersionTimeout  = 10 * time.Second

	// Trim limits
	MaxGainDb = 20.0

	// Cleanup
	CleanupInterval = "0 * * * *" // Every hour
	MaxTempAge      = 1 * time.Hour

	// Minimum percent delta between emitted download progress events
	ProgressStepPercent = 1.0

	// yt-dlp request shaping. Facebook serves different (often empty) content
	// without a browser user agent and an Accept-Language header.
	DownloadUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	DownloadAcceptLanguage = "Accept-Language: en-US,en;q=0.9"
)

// Format-selection fallback chains. The archive only needs spoken/sung audio,
// so the smallest viable stream is preferred over the best one. 249 and 139
// are known low-bitrate YouTube format codes (Opus ~50k, AAC ~48k).
const (
	YouTubeFormatChain  = "worstaudio/worstaudio[protocol^=https]/249/139/bestaudio"
	FacebookFormatChain = "worstaudio/worst"
)

// KnownAudioExtensions lists the extensions yt-dlp may append to its output
// file, in the order they are tried when locating a produced file.
var KnownAudioExtensions = []string{"webm", "m4a", "opus", "ogg", "mp3", "mp4", "wav", "aac", "flac"}

// TempDir is the root directory for request-scoped temp files.
var TempDir = envOr("MEDIA_TEMP_DIR", TempDirDefault)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// IsProduction reports whether the service runs in production mode. The media
// endpoints are gated on deployment mode, not on an authorization mechanism.
func IsProduction() bool {
	return os.Getenv("APP_ENV") == "production"
}

// CookiesPath returns the optional yt-dlp cookie file path, used only for
// age/region-gated Facebook content.
func CookiesPath() string {
	return os.Getenv("YTDLP_COOKIES_PATH")
}
