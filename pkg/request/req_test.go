package request

import (
	"errors"
	"testing"

	"nvtranscode/pkg/resolution"

	"github.com/stretchr/testify/assert"
)

func TestTranscodeReq_Validate(t *testing.T) {
	tests := []struct {
		name string
		req  TranscodeReq
		want error
	}{
		{"input only", TranscodeReq{InputPath: "clip.mp4"}, nil},
		{"everything", TranscodeReq{
			InputPath:        "a.mov",
			OutputPath:       "b.mkv",
			Resolution:       resolution.R4K,
			VideoBitrateKbps: 8000,
			AudioBitrateKbps: 192,
			ExtraArgs:        []string{"-tune", "hq", "anything goes"},
		}, nil},
		{"missing input", TranscodeReq{OutputPath: "b.mp4"}, ErrMissingInput},
		{"bad resolution", TranscodeReq{InputPath: "a.mp4", Resolution: "2160p"}, resolution.ErrUnknownResolution},
		{"negative video bitrate", TranscodeReq{InputPath: "a.mp4", VideoBitrateKbps: -1}, ErrInvalidBitrate},
		{"negative audio bitrate", TranscodeReq{InputPath: "a.mp4", AudioBitrateKbps: -128}, ErrInvalidBitrate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}
