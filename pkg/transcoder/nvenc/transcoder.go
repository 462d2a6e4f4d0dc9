package nvenc

import (
	"context"
	"io"

	"nvtranscode/pkg/datetime"
	ffmpegrunner "nvtranscode/pkg/ffmpeg_runner"
	"nvtranscode/pkg/request"
	"nvtranscode/pkg/transcoder"

	"github.com/thnthien/great-deku/container"
	"github.com/thnthien/great-deku/l"
)

type Transcoder struct {
	ll             l.Logger        `container:"name"`
	commandBuilder *CommandBuilder `container:"name"`

	req    request.TranscodeReq
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

var _ transcoder.ITranscoder = (*Transcoder)(nil)

// New expects "ll" and "commandBuilder" to be registered in the container.
func New(req request.TranscodeReq) *Transcoder {
	t := &Transcoder{req: req}
	container.Fill(t)
	return t
}

// SetStdio overrides the streams handed to ffmpeg; nil keeps the process's own.
func (t *Transcoder) SetStdio(stdin io.Reader, stdout, stderr io.Writer) {
	t.stdin, t.stdout, t.stderr = stdin, stdout, stderr
}

func (t *Transcoder) Command() []string {
	return t.commandBuilder.BuildCommand(t.req)
}

// Transcode runs ffmpeg once and waits for it. A non-zero ffmpeg exit is not
// an error: it comes back in OutputData.ExitCode. The returned error is set
// when the request is invalid or ffmpeg could not be started.
func (t *Transcoder) Transcode(ctx context.Context) (transcoder.OutputData, error) {
	data := transcoder.OutputData{}
	if err := t.req.Validate(); err != nil {
		return data, err
	}

	data.Args = t.Command()
	data.OutputPath = data.Args[len(data.Args)-1]

	if t.req.AudioBitrateKbps > 0 {
		// -c:a copy from the trailing block is parsed after -c:a aac
		t.ll.Info("audio bitrate is followed by -c:a copy, ffmpeg may ignore it",
			l.Int64("audio_bitrate_kbps", int64(t.req.AudioBitrateKbps)))
	}

	runner := ffmpegrunner.New(data.Args)
	runner.SetStdio(t.stdin, t.stdout, t.stderr)

	t.ll.Trace("start transcode file", l.String("input", t.req.InputPath), l.String("output", data.OutputPath))
	t.ll.Trace("ffmpeg command", l.String("command", runner.String()))

	startTime := datetime.Now()
	code, err := runner.Run(ctx)
	data.ExitCode = code
	data.TranscodeDuration = datetime.ElapsedSeconds(startTime)
	if err != nil {
		t.ll.Error("cannot start ffmpeg", l.String("command", runner.Command()), l.Error(err))
		return data, err
	}

	t.ll.Trace("finished transcode file", l.Object("request", t.req),
		l.Int64("exit_code", int64(code)), l.Int64("duration_seconds", data.TranscodeDuration))
	return data, nil
}
