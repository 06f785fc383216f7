package config

// Quality is the requested compression tier.
type Quality string

const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// ParseQuality maps a raw form value to a tier. Absent or unrecognized
// values default to low.
func ParseQuality(s string) Quality {
	switch Quality(s) {
	case QualityMedium:
		return QualityMedium
	case QualityHigh:
		return QualityHigh
	default:
		return QualityLow
	}
}

// EncodeProfile describes how one container/extension is encoded.
type EncodeProfile struct {
	// Codec is the ffmpeg encoder name.
	Codec string

	// BitrateKbps is the general-purpose compression target per tier.
	BitrateKbps map[Quality]int

	// SampleRateHz is the output sample rate per tier; 0 keeps the source rate.
	SampleRateHz map[Quality]int

	// TrimBitrateKbps is the conservative rate used when a trim has to
	// re-encode. Trimming is applied to already-curated recordings of voice
	// and chant, so these sit below the general-purpose targets.
	TrimBitrateKbps int

	// ExtraArgs are codec-specific encoder flags.
	ExtraArgs []string
}

// EncodeProfiles keys encoder decisions by file extension. AAC, Opus and
// Vorbis reach comparable perceptual quality at lower bit rates than MP3,
// so their targets are reduced relative to the MP3 baseline.
var EncodeProfiles = map[string]EncodeProfile{
	"mp3": {
		Codec:           "libmp3lame",
		BitrateKbps:     map[Quality]int{QualityLow: 64, QualityMedium: 96, QualityHigh: 128},
		SampleRateHz:    map[Quality]int{QualityLow: 22050, QualityMedium: 44100, QualityHigh: 44100},
		TrimBitrateKbps: 96,
	},
	"m4a": {
		Codec:           "aac",
		BitrateKbps:     map[Quality]int{QualityLow: 48, QualityMedium: 64, QualityHigh: 96},
		TrimBitrateKbps: 64,
		ExtraArgs:       []string{"-movflags", "+faststart"},
	},
	"opus": {
		Codec:           "libopus",
		BitrateKbps:     map[Quality]int{QualityLow: 32, QualityMedium: 48, QualityHigh: 64},
		TrimBitrateKbps: 48,
	},
	"webm": {
		Codec:           "libopus",
		BitrateKbps:     map[Quality]int{QualityLow: 32, QualityMedium: 48, QualityHigh: 64},
		TrimBitrateKbps: 48,
	},
	"ogg": {
		Codec:           "libvorbis",
		BitrateKbps:     map[Quality]int{QualityLow: 48, QualityMedium: 80, QualityHigh: 112},
		TrimBitrateKbps: 80,
	},
}

// ProfileForExt resolves the encode profile for a file extension, falling
// back to the MP3 profile for anything unrecognized.
func ProfileForExt(ext string) (EncodeProfile, string) {
	if p, ok := EncodeProfiles[ext]; ok {
		return p, ext
	}
	return EncodeProfiles["mp3"], "mp3"
}

// TargetBitrateKbps returns the compression target for an extension and tier.
func TargetBitrateKbps(ext string, q Quality) int {
	p, _ := ProfileForExt(ext)
	return p.BitrateKbps[q]
}
