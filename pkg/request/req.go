package request

import (
	"errors"
	"fmt"

	"nvtranscode/pkg/resolution"
)

var (
	ErrMissingInput   = errors.New("input path is required")
	ErrInvalidBitrate = errors.New("bitrate must be a positive number of kbps")
)

// TranscodeReq is one invocation's worth of user input. Zero values mean
// "not given": empty OutputPath, empty Resolution, and bitrates of 0.
type TranscodeReq struct {
	InputPath        string                `json:"input_path"`
	OutputPath       string                `json:"output_path"`
	Resolution       resolution.Resolution `json:"resolution"`
	VideoBitrateKbps int                   `json:"video_bitrate_kbps"`
	AudioBitrateKbps int                   `json:"audio_bitrate_kbps"`
	ExtraArgs        []string              `json:"extra_args"`
}

// Validate rejects what the command builder must never see. ExtraArgs are
// opaque and never inspected.
func (r TranscodeReq) Validate() error {
	if r.InputPath == "" {
		return ErrMissingInput
	}
	if r.Resolution != "" && !r.Resolution.Valid() {
		return fmt.Errorf("%w %q", resolution.ErrUnknownResolution, r.Resolution)
	}
	if r.VideoBitrateKbps < 0 {
		return fmt.Errorf("video %w (got %d)", ErrInvalidBitrate, r.VideoBitrateKbps)
	}
	if r.AudioBitrateKbps < 0 {
		return fmt.Errorf("audio %w (got %d)", ErrInvalidBitrate, r.AudioBitrateKbps)
	}
	return nil
}
