// Package coders holds the catalog of encoders and decoders and turns
// their settings into ffmpeg argument vectors.
package coders

import (
	"github.com/smazurov/relaycoder/internal/ffmpeg"
	"github.com/smazurov/relaycoder/internal/types"
)

// Coder describes one encoder or decoder implementation.
type Coder interface {
	// ID returns the stable identifier, e.g. "libx265".
	ID() string

	// Name returns a human readable name.
	Name() string

	// Codec returns the codec this coder produces or consumes.
	Codec() string

	// Type returns the media type the coder handles.
	Type() types.MediaType

	// HWAccel reports whether the coder needs hardware support.
	HWAccel() bool

	// DefaultSettings returns the complete built-in settings.
	DefaultSettings() Settings

	// Mapping turns complete settings into the argument vector for stream.
	Mapping(settings Settings, stream types.Stream) ffmpeg.Args

	// Summarize returns a one-line description of the settings.
	Summarize(settings Settings) string
}

// Updater is implemented by coders that derive further fields when one
// field changes.
type Updater interface {
	Update(settings Settings, key, value string, stream types.Stream) Settings
}

// Resolved pairs complete settings with their argument vector.
type Resolved struct {
	Settings Settings    `json:"settings"`
	Mapping  ffmpeg.Args `json:"mapping"`
}

// Defaults returns the coder's built-in settings and their mapping for stream.
func Defaults(c Coder, stream types.Stream) Resolved {
	settings := c.DefaultSettings()
	return Resolved{
		Settings: settings,
		Mapping:  c.Mapping(settings, stream),
	}
}

// Resolve completes partial settings with the coder's defaults and maps them.
func Resolve(c Coder, partial Settings, stream types.Stream) Resolved {
	settings := Merge(c.DefaultSettings(), partial)
	return Resolved{
		Settings: settings,
		Mapping:  c.Mapping(settings, stream),
	}
}

// Set changes one field and returns the resolved result. Coders that
// implement Updater may adjust dependent fields.
func Set(c Coder, settings Settings, key, value string, stream types.Stream) Resolved {
	current := Merge(c.DefaultSettings(), settings)

	var next Settings
	if u, ok := c.(Updater); ok {
		next = u.Update(current, key, value, stream)
	} else {
		next = current.With(key, value)
	}

	return Resolved{
		Settings: next,
		Mapping:  c.Mapping(next, stream),
	}
}

// IsPassthrough reports whether id names a coder that does not transcode.
func IsPassthrough(id string) bool {
	return id == CopyID || id == NoneID
}
