package coders

import (
	"maps"
	"strconv"

	"github.com/smazurov/relaycoder/internal/types"
)

// Settings is the stored option map of one coder. Keys a coder does not
// know are kept untouched so settings survive version changes.
type Settings map[string]string

// Clone returns an independent copy of s.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	maps.Copy(out, s)
	return out
}

// Get returns the value stored under key, or fallback when the key is absent.
func (s Settings) Get(key, fallback string) string {
	if v, ok := s[key]; ok {
		return v
	}
	return fallback
}

// With returns a copy of s with key set to value.
func (s Settings) With(key, value string) Settings {
	out := s.Clone()
	out[key] = value
	return out
}

// Merge overlays partial onto defaults. Keys present in partial win, keys
// absent from partial are taken from defaults. Neither input is modified.
func Merge(defaults, partial Settings) Settings {
	out := make(Settings, len(defaults)+len(partial))
	maps.Copy(out, defaults)
	maps.Copy(out, partial)
	return out
}

// Inheritable setting keys and the stream property each one resolves to.
const (
	KeySampling = "sampling"
	KeyLayout   = "layout"
	KeyChannels = "channels"
	KeyFPS      = "fps"
	KeyWidth    = "width"
	KeyHeight   = "height"
	KeyPixFmt   = "pix_fmt"
)

// StreamProperty returns the stream value a setting key inherits from.
func StreamProperty(key string, stream types.Stream) (string, bool) {
	switch key {
	case KeySampling:
		return itoa(stream.SamplingHz), true
	case KeyLayout:
		return stream.Layout, true
	case KeyChannels:
		return itoa(stream.Channels), true
	case KeyFPS:
		return formatFloat(stream.FPS), true
	case KeyWidth:
		return itoa(stream.Width), true
	case KeyHeight:
		return itoa(stream.Height), true
	case KeyPixFmt:
		return stream.PixFmt, true
	default:
		return "", false
	}
}

// ResolveInherited replaces every inherit sentinel whose key maps to a
// stream property with that property. Other fields pass through. The
// result never holds a resolvable inherit sentinel, so resolving again is
// a no-op.
func ResolveInherited(settings Settings, stream types.Stream) Settings {
	out := settings.Clone()
	for key, value := range settings {
		if value != SentinelInherit {
			continue
		}
		if prop, ok := StreamProperty(key, stream); ok {
			out[key] = prop
		}
	}
	return out
}

// inherited resolves one parsed field against the stream.
func inherited(v Value, key string, stream types.Stream) string {
	prop, _ := StreamProperty(key, stream)
	return v.Or(prop)
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func formatFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
