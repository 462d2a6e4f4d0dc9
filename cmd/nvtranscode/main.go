// Command nvtranscode runs ffmpeg with NVENC (h264_nvenc on cuda) settings
// built from a handful of options.
package main

import (
	"context"
	"os"

	"nvtranscode/pkg/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
