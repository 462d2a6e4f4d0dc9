package resolution

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownResolution = errors.New("unknown resolution")

type Resolution string

const (
	R240  Resolution = "240p"
	R360  Resolution = "360p"
	R480  Resolution = "480p"
	R540  Resolution = "540p"
	R720  Resolution = "720p"
	R1080 Resolution = "1080p"
	R1440 Resolution = "1440p"
	R4K   Resolution = "4K"
)

// ordered from lowest to highest
var all = []Resolution{R240, R360, R480, R540, R720, R1080, R1440, R4K}

type dimension struct {
	Width  int
	Height int
}

var dimensions = map[Resolution]dimension{
	R240:  {426, 240},
	R360:  {640, 360},
	R480:  {854, 480},
	R540:  {960, 540},
	R720:  {1280, 720},
	R1080: {1920, 1080},
	R1440: {2560, 1440},
	R4K:   {3840, 2160},
}

// All returns the accepted resolutions in increasing order.
func All() []Resolution {
	res := make([]Resolution, len(all))
	copy(res, all)
	return res
}

// Names returns the accepted names joined with ",", as shown in usage text.
func Names() string {
	names := make([]string, 0, len(all))
	for _, r := range all {
		names = append(names, string(r))
	}
	return strings.Join(names, ",")
}

// Parse accepts exactly one of the names in All. Matching is case-sensitive,
// "4k" is rejected the same way "720P" is.
func Parse(s string) (Resolution, error) {
	r := Resolution(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w %q (choose from %s)", ErrUnknownResolution, s, Names())
	}
	return r, nil
}

func (r Resolution) Valid() bool {
	_, ok := dimensions[r]
	return ok
}

// Scale returns the WIDTH:HEIGHT literal used by the scale filter, or "" for
// an unknown resolution.
func (r Resolution) Scale() string {
	d, ok := dimensions[r]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d:%d", d.Width, d.Height)
}

func (r Resolution) String() string {
	return string(r)
}

// Value adapts a *Resolution to pflag.Value so the flag set rejects unknown
// names while parsing.
type Value struct{ p *Resolution }

func NewValue(p *Resolution) *Value {
	return &Value{p: p}
}

func (v *Value) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v *Value) Set(s string) error {
	r, err := Parse(s)
	if err != nil {
		return err
	}
	*v.p = r
	return nil
}

func (v *Value) Type() string {
	return "resolution"
}
