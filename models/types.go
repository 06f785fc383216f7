package models

// Platform identifies a supported download source. This is a deliberate
// two-platform allowlist, not a general downloader.
type Platform string

const (
	PlatformYouTube  Platform = "youtube"
	PlatformFacebook Platform = "facebook"
)

// TranscodeRequest carries an uploaded file into the compressor.
type TranscodeRequest struct {
	Data     []byte
	FileName string
	Quality  string // low, medium, high; defaults to low
}

// TranscodeResult is the outcome of a compression request.
type TranscodeResult struct {
	Output         []byte
	MimeType       string
	OriginalSize   int64
	CompressedSize int64
	Skipped        bool
	SkipReason     string
}

// TrimRequest carries an uploaded file into the trimmer.
type TrimRequest struct {
	Data         []byte
	FileName     string
	StartSeconds float64
	EndSeconds   float64
	GainDb       float64 // 0 means no gain; selects the stream-copy path
}

// TrimResult is the outcome of a trim request. BitrateKbps and
// DurationSeconds come from re-probing the output and may be zero when the
// probe fails.
type TrimResult struct {
	Output          []byte
	FileName        string
	BitrateKbps     float64
	DurationSeconds float64
}

// ProbeResult holds metadata extracted from a media file.
type ProbeResult struct {
	BitRateKbps     float64
	SampleRateHz    int
	DurationSeconds float64
}

// DownloadRequest is the incoming download request body.
type DownloadRequest struct {
	URL            string `json:"url"`
	StreamProgress bool   `json:"streamProgress,omitempty"`
}

// DownloadResult is the completed download: the full file plus best-effort
// metadata.
type DownloadResult struct {
	FileName        string
	FileSize        int64
	MimeType        string
	BitrateKbps     float64
	DurationSeconds float64
	Data            []byte
}

// ProgressUpdate is one parsed step of a download session. Percent values
// for a session are non-decreasing.
type ProgressUpdate struct {
	Percent  float64
	Speed    string
	ETA      string
	SizeHint string
}

// ProgressMessage is one streamed progress line.
type ProgressMessage struct {
	Type     string  `json:"type"` // "progress"
	Percent  float64 `json:"percent"`
	Speed    string  `json:"speed,omitempty"`
	ETA      string  `json:"eta,omitempty"`
	FileSize string  `json:"fileSize,omitempty"`
}

// CompleteMessage terminates a successful download stream.
type CompleteMessage struct {
	Type     string  `json:"type"` // "complete"
	FileName string  `json:"fileName"`
	FileSize int64   `json:"fileSize"`
	MimeType string  `json:"mimeType"`
	Bitrate  float64 `json:"bitrate,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	FileData string  `json:"fileData"` // base64-encoded file content
}

// ErrorMessage terminates a failed download stream.
type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

// ErrorResponse for API errors.
type ErrorResponse struct {
	Error        string `json:"error"`
	Details      string `json:"details,omitempty"`
	Hint         string `json:"hint,omitempty"`
	YtDlpVersion string `json:"ytDlpVersion,omitempty"`
}

// HealthResponse for health check.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}
