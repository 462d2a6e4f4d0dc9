package cli

import "strings"

// ownFlags are the tokens that end a run of --other values. There is no -v
// here: the version flag is long-only so "--other -v error" reaches ffmpeg.
var ownFlags = map[string]bool{
	"-i": true, "--input": true,
	"-o": true, "--output": true,
	"-r": true, "--resolution": true,
	"-b": true, "--bitrate": true,
	"-ab": true, "--audio-bitrate": true,
	"--other":   true,
	"--config":  true,
	"--dry-run": true,
	"--version": true,
	"-h":        true, "--help": true,
}

func isOwnFlag(tok string) bool {
	if ownFlags[tok] {
		return true
	}
	if name, _, ok := strings.Cut(tok, "="); ok {
		return ownFlags[name]
	}
	return false
}

// normalizeArgs rewrites the command line into something pflag parses
// without guessing:
//   - "-ab" is not a valid shorthand, it becomes "--audio-bitrate";
//   - every token following "--other", up to the next of our own flags, is
//     forwarded as "--other=TOKEN" so ffmpeg options like "-tune" stay opaque;
//   - tokens after a bare "--" are extra args as well.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			for _, rest := range args[i+1:] {
				out = append(out, "--other="+rest)
			}
			return out
		case a == "-ab":
			out = append(out, "--audio-bitrate")
		case strings.HasPrefix(a, "-ab="):
			out = append(out, "--audio-bitrate="+strings.TrimPrefix(a, "-ab="))
		case a == "--other":
			for i+1 < len(args) && args[i+1] != "--" && !isOwnFlag(args[i+1]) {
				i++
				out = append(out, "--other="+args[i])
			}
		default:
			out = append(out, a)
		}
	}
	return out
}
