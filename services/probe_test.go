package services

import (
	"testing"
)

func TestParseProbeOutput(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		wantErr    bool
		duration   float64
		bitrate    float64
		sampleRate int
	}{
		{
			name:       "FullOutput",
			output:     "44100\n12.5\n128000\n",
			duration:   12.5,
			bitrate:    128,
			sampleRate: 44100,
		},
		{
			name:     "NoSampleRate",
			output:   "30.0\n64000\n",
			duration: 30.0,
			bitrate:  64,
		},
		{
			name:       "BitrateUnavailable",
			output:     "48000\n10.0\nN/A\n",
			duration:   10.0,
			bitrate:    0,
			sampleRate: 48000,
		},
		{
			name:       "MultipleStreams",
			output:     "N/A\n22050\n5.0\n96000\n",
			duration:   5.0,
			bitrate:    96,
			sampleRate: 22050,
		},
		{
			name:    "Empty",
			output:  "",
			wantErr: true,
		},
		{
			name:    "Garbage",
			output:  "not\nnumbers\n",
			wantErr: true,
		},
		{
			name:    "ZeroDuration",
			output:  "0\n128000\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseProbeOutput(tt.output)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected parse error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseProbeOutput() error: %v", err)
			}
			if got.DurationSeconds != tt.duration {
				t.Errorf("Expected duration %v, got %v", tt.duration, got.DurationSeconds)
			}
			if got.BitRateKbps != tt.bitrate {
				t.Errorf("Expected bitrate %v, got %v", tt.bitrate, got.BitRateKbps)
			}
			if got.SampleRateHz != tt.sampleRate {
				t.Errorf("Expected sample rate %d, got %d", tt.sampleRate, got.SampleRateHz)
			}
		})
	}
}
