package nvenc

import (
	"os"
	"strconv"
	"strings"

	"nvtranscode/pkg/config"
	"nvtranscode/pkg/request"
)

const outputSuffix = "-out"

var defaultCommandBuilder = CommandBuilder{
	program:       "ffmpeg",
	hwaccelDevice: "0",
	hwaccel:       "cuda",
	videoCodec:    "h264_nvenc",
	preset:        "slow",
	audioCodec:    "aac",
	bufferFactor:  2,
}

type CommandBuilder struct {
	program       string
	hwaccelDevice string
	hwaccel       string
	videoCodec    string
	preset        string
	audioCodec    string
	bufferFactor  int
}

// NewCommandBuilder only lets the executable location vary; every encoding
// token stays fixed.
func NewCommandBuilder(cfg config.ServerConfig) *CommandBuilder {
	cb := defaultCommandBuilder
	if cfg.FfmpegBin != "" {
		cb.program = cfg.FfmpegBin
	}
	return &cb
}

// ResolveOutputPath returns explicitOutput untouched when it is set, else
// "<stem>-out<ext>" derived from inputPath. The filesystem is never consulted.
func ResolveOutputPath(inputPath, explicitOutput string) string {
	if explicitOutput != "" {
		return explicitOutput
	}
	stem, ext := splitExt(inputPath)
	return stem + outputSuffix + ext
}

// splitExt splits at the last dot of the final path element. Leading dots of
// that element never start an extension, so ".profile" has none.
func splitExt(path string) (string, string) {
	base := len(path)
	for base > 0 && !os.IsPathSeparator(path[base-1]) {
		base--
	}
	name := path[base:]

	lead := 0
	for lead < len(name) && name[lead] == '.' {
		lead++
	}
	dot := strings.LastIndexByte(name[lead:], '.')
	if dot < 0 {
		return path, ""
	}
	i := base + lead + dot
	return path[:i], path[i:]
}

func kbps(v int) string {
	return strconv.Itoa(v) + "k"
}

// BuildCommand returns the full command line, executable first. The order is
// significant: ffmpeg lets a later option override an earlier one, so extra
// args sit after the derived settings and before the fixed trailing block,
// and the output path is always last.
func (b *CommandBuilder) BuildCommand(req request.TranscodeReq) []string {
	// example command:
	// ffmpeg -hwaccel_device 0 -hwaccel cuda -i a.mov -vf scale=1280:720
	// -b:v 2000k -maxrate 2000k -bufsize 4000k -c:a aac -b:a 128k
	// -c:v h264_nvenc -preset slow -c:a copy a-out.mov
	args := []string{
		b.program, "-hwaccel_device", b.hwaccelDevice, "-hwaccel", b.hwaccel, "-i", req.InputPath,
	}

	if req.Resolution != "" {
		args = append(args, "-vf", "scale="+req.Resolution.Scale())
	}

	if req.VideoBitrateKbps > 0 {
		args = append(args,
			"-b:v", kbps(req.VideoBitrateKbps),
			"-maxrate", kbps(req.VideoBitrateKbps),
			"-bufsize", kbps(req.VideoBitrateKbps*b.bufferFactor),
		)
	}

	if req.AudioBitrateKbps > 0 {
		args = append(args, "-c:a", b.audioCodec, "-b:a", kbps(req.AudioBitrateKbps))
	}

	args = append(args, req.ExtraArgs...)

	args = append(args,
		"-c:v", b.videoCodec, "-preset", b.preset, "-c:a", "copy",
		ResolveOutputPath(req.InputPath, req.OutputPath),
	)
	return args
}
