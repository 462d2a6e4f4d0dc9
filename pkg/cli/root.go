package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"nvtranscode/pkg/commander"
	"nvtranscode/pkg/config"
	ffmpegrunner "nvtranscode/pkg/ffmpeg_runner"
	"nvtranscode/pkg/request"
	"nvtranscode/pkg/resolution"
	"nvtranscode/pkg/transcoder/nvenc"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thnthien/great-deku/container"
	"github.com/thnthien/great-deku/l"
)

const (
	ExitOK     = 0
	ExitNoArgs = 1
	ExitUsage  = 2
	ExitConfig = 3
)

// version is overridden at build time with -ldflags "-X nvtranscode/pkg/cli.version=...".
var version = "1.0.0"

var (
	commonVideoBitrates = []string{"200k", "500k", "1000k", "1500k", "2000k"}
	commonAudioBitrates = []string{"64k", "96k", "128k", "192k", "256k"}
)

type configError struct{ err error }

func (e *configError) Error() string { return "load config: " + e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

type app struct {
	req        request.TranscodeReq
	configPath string
	dryRun     bool

	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	exitCode int
}

// Execute runs the tool with args (without the program name) and returns
// the process exit status.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	cmd := a.newRootCmd()

	if len(args) == 0 {
		cmd.InitDefaultHelpFlag()
		cmd.InitDefaultVersionFlag()
		_ = cmd.Help()
		return ExitNoArgs
	}

	cmd.SetArgs(normalizeArgs(args))
	if err := cmd.ExecuteContext(ctx); err != nil {
		return a.fail(cmd, err)
	}
	return a.exitCode
}

func (a *app) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "nvtranscode -i INPUT [options] [--other ARG...]",
		Short:         "Do stuff with ffmpeg using the GPU (Nvidia)",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd)
		},
	}
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	f := cmd.Flags()
	f.SortFlags = false
	f.StringVarP(&a.req.InputPath, "input", "i", "", "Input file path (required)")
	f.StringVarP(&a.req.OutputPath, "output", "o", "", "Output file path (default: <input>-out.<ext>)")
	f.VarP(resolution.NewValue(&a.req.Resolution), "resolution", "r", "Output resolution: "+resolution.Names())
	f.IntVarP(&a.req.VideoBitrateKbps, "bitrate", "b", 0, "Video bitrate (in kbps)")
	f.IntVar(&a.req.AudioBitrateKbps, "audio-bitrate", 0, "Audio bitrate (in kbps), also -ab")
	f.StringArrayVar(&a.req.ExtraArgs, "other", nil, "Additional ffmpeg options, every token up to the next option")
	f.StringVar(&a.configPath, "config", "", "Config file (yaml, json or toml)")
	f.BoolVar(&a.dryRun, "dry-run", false, "Print the ffmpeg command instead of running it")
	// no -v shorthand: ffmpeg's own -v (log level) must pass through --other
	f.Bool("version", false, "Print version and exit")

	defaultHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		defaultHelp(c, args)
		printBitrateHints(c.OutOrStdout())
	})
	return cmd
}

func printBitrateHints(w io.Writer) {
	fmt.Fprintf(w, "\nCommon video bitrates: %s\n", strings.Join(commonVideoBitrates, ", "))
	fmt.Fprintf(w, "Common audio bitrates: %s\n", strings.Join(commonAudioBitrates, ", "))
}

func (a *app) run(cmd *cobra.Command) error {
	if err := a.req.Validate(); err != nil {
		return err
	}
	if err := positiveIfSet(cmd.Flags(), "bitrate", a.req.VideoBitrateKbps); err != nil {
		return err
	}
	if err := positiveIfSet(cmd.Flags(), "audio-bitrate", a.req.AudioBitrateKbps); err != nil {
		return err
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return &configError{err: err}
	}
	provide(cfg)

	tr := nvenc.New(a.req)
	if a.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), ffmpegrunner.Quote(tr.Command()))
		return nil
	}

	tr.SetStdio(a.stdin, a.stdout, a.stderr)
	data, err := tr.Transcode(cmd.Context())
	a.exitCode = data.ExitCode
	return err
}

func positiveIfSet(flags *pflag.FlagSet, name string, v int) error {
	if flags.Changed(name) && v <= 0 {
		return fmt.Errorf("--%s: %w (got %d)", name, request.ErrInvalidBitrate, v)
	}
	return nil
}

// provide registers what nvenc.Transcoder pulls from the container.
func provide(cfg config.Config) {
	container.NamedSingleton("ll", func() l.Logger {
		return l.New()
	})
	container.NamedSingleton("commandBuilder", func() *nvenc.CommandBuilder {
		return nvenc.NewCommandBuilder(cfg.ServerConfig)
	})
}

func (a *app) fail(cmd *cobra.Command, err error) int {
	var startErr *commander.StartError
	if errors.As(err, &startErr) {
		fmt.Fprintf(a.stderr, "nvtranscode: %v\n", err)
		return startErr.ExitCode
	}
	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(a.stderr, "nvtranscode: %v\n", err)
		return ExitConfig
	}
	fmt.Fprintf(a.stderr, "Error: %v\n%s", err, cmd.UsageString())
	return ExitUsage
}
