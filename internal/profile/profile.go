// Package profile decides which encoder and decoder process one stream and
// keeps their settings and argument vectors in sync.
package profile

import (
	"github.com/smazurov/relaycoder/internal/coders"
	"github.com/smazurov/relaycoder/internal/ffmpeg"
)

// Slot is the configuration of one coder in a profile.
type Slot struct {
	Coder    string          `json:"coder" toml:"coder"`
	Settings coders.Settings `json:"settings" toml:"settings"`
	Mapping  ffmpeg.Args     `json:"mapping" toml:"mapping"`
}

// Clone returns an independent copy of s.
func (s Slot) Clone() Slot {
	return Slot{
		Coder:    s.Coder,
		Settings: s.Settings.Clone(),
		Mapping:  s.Mapping.Clone(),
	}
}

// Profile pairs the encoder and decoder for one stream. Stream is the
// position of the stream in the source's stream list, -1 for none.
type Profile struct {
	Stream  int  `json:"stream" toml:"stream"`
	Encoder Slot `json:"encoder" toml:"encoder"`
	Decoder Slot `json:"decoder" toml:"decoder"`
}

// New returns a profile that drops the stream until an encoder is chosen.
func New() Profile {
	return Profile{
		Stream: -1,
		Encoder: Slot{
			Coder:    coders.NoneID,
			Settings: coders.Settings{},
		},
		Decoder: Slot{
			Coder:    coders.DefaultDecoderID,
			Settings: coders.Settings{},
		},
	}
}

// Clone returns an independent copy of p.
func (p Profile) Clone() Profile {
	return Profile{
		Stream:  p.Stream,
		Encoder: p.Encoder.Clone(),
		Decoder: p.Decoder.Clone(),
	}
}

// NeedsDecoder reports whether the profile transcodes and therefore
// decodes its stream.
func (p Profile) NeedsDecoder() bool {
	return !coders.IsPassthrough(p.Encoder.Coder)
}

// Change is emitted whenever a profile's coders change. Automatic is true
// when the change was not caused by an explicit edit.
type Change struct {
	Encoder   Slot
	Decoder   Slot
	Automatic bool
}

// ChangeFunc receives profile changes.
type ChangeFunc func(Change)
