package ffmpegrunner

import (
	"context"

	"nvtranscode/pkg/commander"

	"github.com/alessio/shellescape"
)

// FfmpegRunner runs one built command line: the first token is the
// executable, the rest are its arguments.
type FfmpegRunner struct {
	commander.Commander
}

func New(cmdline []string) *FfmpegRunner {
	r := &FfmpegRunner{}
	if len(cmdline) == 0 {
		r.Commander = commander.New("")
		return r
	}
	r.Commander = commander.New(cmdline[0], cmdline[1:]...)
	return r
}

// Run blocks until the process exits and returns its exit status. err is
// non-nil only when the process could not be started, in which case the
// status is commander.ExitNotFound or commander.ExitCannotStart.
func (r *FfmpegRunner) Run(ctx context.Context) (int, error) {
	err := <-r.Commander.Run(ctx)
	return r.ExitCode(), err
}

// String renders the command line so it can be pasted into a POSIX shell.
func (r *FfmpegRunner) String() string {
	return Quote(append([]string{r.Command()}, r.Args()...))
}

func Quote(tokens []string) string {
	return shellescape.QuoteCommand(tokens)
}
