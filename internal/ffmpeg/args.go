package ffmpeg

import (
	"math"
	"strconv"
	"strings"
)

// Args is an ordered ffmpeg argument vector. Tokens are consumed verbatim.
type Args []string

// With returns a copy of a with tokens appended.
func (a Args) With(tokens ...string) Args {
	out := make(Args, 0, len(a)+len(tokens))
	out = append(out, a...)
	return append(out, tokens...)
}

// Clone returns an independent copy of a.
func (a Args) Clone() Args {
	if a == nil {
		return nil
	}
	return append(Args{}, a...)
}

// Equal reports whether both vectors hold the same tokens in the same order.
func (a Args) Equal(b Args) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders the vector as a shell-like command line.
func (a Args) String() string {
	parts := make([]string, len(a))
	for i, tok := range a {
		parts[i] = quote(tok)
	}
	return strings.Join(parts, " ")
}

func quote(tok string) string {
	if tok == "" {
		return `""`
	}
	if strings.ContainsAny(tok, " \t\"'&;|") {
		return strconv.Quote(tok)
	}
	return tok
}

// Kbps renders a kbit/s value the way ffmpeg expects it, e.g. "64" -> "64k".
func Kbps(n string) string {
	return n + "k"
}

// GOPFrames converts a keyframe interval in seconds into a frame count,
// rounding fps*gop to the nearest integer. Values that do not parse count
// as zero. Degenerate input is not clamped.
func GOPFrames(fps, gop string) string {
	f := parseNumber(fps)
	g := parseNumber(gop)
	return strconv.FormatInt(int64(math.Round(f*g)), 10)
}

func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
