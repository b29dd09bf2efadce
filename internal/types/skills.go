package types

import "slices"

// MediaLists holds one id list per media type.
type MediaLists struct {
	Audio []string `json:"audio" toml:"audio"`
	Video []string `json:"video" toml:"video"`
}

// For returns the list for the given media type.
func (m MediaLists) For(t MediaType) []string {
	switch t {
	case MediaAudio:
		return m.Audio
	case MediaVideo:
		return m.Video
	default:
		return nil
	}
}

// Protocols holds the protocol names the engine can read and write.
type Protocols struct {
	Input  []string `json:"input" toml:"input"`
	Output []string `json:"output" toml:"output"`
}

// Device is a capture device reported by the engine.
type Device struct {
	ID    string `json:"id" toml:"id"`
	Name  string `json:"name" toml:"name"`
	Extra string `json:"extra,omitempty" toml:"extra,omitempty"`
	Media string `json:"media" toml:"media"`
}

// FFmpegInfo identifies the transcoding engine build.
type FFmpegInfo struct {
	Version string `json:"version" toml:"version"`
}

// Skills is the capability set of the transcoding engine.
type Skills struct {
	FFmpeg    FFmpegInfo `json:"ffmpeg" toml:"ffmpeg"`
	Codecs    MediaLists `json:"codecs" toml:"codecs"`
	Encoders  MediaLists `json:"encoders" toml:"encoders"`
	Decoders  MediaLists `json:"decoders" toml:"decoders"`
	Protocols Protocols  `json:"protocols" toml:"protocols"`
	Devices   []Device   `json:"devices,omitempty" toml:"devices,omitempty"`
}

// Builtin coder ids every engine provides without listing them.
var builtinCoders = []string{"copy", "none"}

// Normalize returns a copy of s in which the built-in copy and none coders
// are listed as encoders and as codecs for every media type.
func (s Skills) Normalize() Skills {
	out := s
	out.Codecs = MediaLists{
		Audio: appendMissing(s.Codecs.Audio, builtinCoders),
		Video: appendMissing(s.Codecs.Video, builtinCoders),
	}
	out.Encoders = MediaLists{
		Audio: appendMissing(s.Encoders.Audio, builtinCoders),
		Video: appendMissing(s.Encoders.Video, builtinCoders),
	}
	return out
}

func appendMissing(list, extra []string) []string {
	out := slices.Clone(list)
	for _, e := range extra {
		if !slices.Contains(out, e) {
			out = append(out, e)
		}
	}
	return out
}

// HasEncoder reports whether the engine ships the encoder id.
func (s Skills) HasEncoder(t MediaType, id string) bool {
	return slices.Contains(s.Encoders.For(t), id)
}

// HasDecoder reports whether the engine ships the decoder id.
func (s Skills) HasDecoder(t MediaType, id string) bool {
	return slices.Contains(s.Decoders.For(t), id)
}

// DevicesFor returns the devices of the given media kind.
func (s Skills) DevicesFor(media string) []Device {
	var out []Device
	for _, d := range s.Devices {
		if d.Media == media {
			out = append(out, d)
		}
	}
	return out
}
