package transcoder

import (
	"context"
)

type OutputData struct {
	Args              []string // full command line, executable first
	OutputPath        string
	ExitCode          int
	TranscodeDuration int64 // seconds
}

type ITranscoder interface {
	Command() []string
	Transcode(ctx context.Context) (OutputData, error)
}
