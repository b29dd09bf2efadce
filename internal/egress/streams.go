package egress

import (
	"strconv"

	"github.com/smazurov/relaycoder/internal/coders"
	"github.com/smazurov/relaycoder/internal/profile"
	"github.com/smazurov/relaycoder/internal/types"
)

// Source is one input of an egress together with the streams it carries.
type Source struct {
	Address string         `json:"address"`
	Streams []types.Stream `json:"streams"`
}

// SourcesFromStreams groups ingest streams by address in order of first
// appearance.
func SourcesFromStreams(streams []types.Stream) []Source {
	var sources []Source
	position := make(map[string]int)

	for _, s := range streams {
		i, ok := position[s.URL]
		if !ok {
			i = len(sources)
			position[s.URL] = i
			sources = append(sources, Source{Address: s.URL})
		}
		sources[i].Streams = append(sources[i].Streams, s)
	}
	return sources
}

// CreateOutputStreams describes the streams an egress produces: for every
// source the video stream, then the audio stream, unless the profile drops
// it. Passthrough keeps the source codec, transcoding reports the
// encoder's codec and the properties its settings fix.
func CreateOutputStreams(sources []Source, profiles []Profiles) []types.Stream {
	out := []types.Stream{}

	for i, source := range sources {
		if i >= len(profiles) {
			break
		}
		for _, t := range types.MediaTypes {
			stream, ok := outputStream(source, profiles[i].For(t), t)
			if !ok {
				continue
			}
			stream.Index = len(out)
			out = append(out, stream)
		}
	}
	return out
}

func outputStream(source Source, p profile.Profile, t types.MediaType) (types.Stream, bool) {
	if p.Encoder.Coder == coders.NoneID || p.Stream < 0 || p.Stream >= len(source.Streams) {
		return types.Stream{}, false
	}
	stream := source.Streams[p.Stream]
	if stream.Type != t {
		return types.Stream{}, false
	}
	stream.URL = ""

	if p.Encoder.Coder == coders.CopyID {
		return stream, true
	}

	c, ok := coders.Encoders(t).Get(p.Encoder.Coder)
	if !ok {
		return types.Stream{}, false
	}
	stream.Codec = c.Codec()

	settings := coders.ResolveInherited(p.Encoder.Settings, stream)
	if f, err := strconv.ParseFloat(settings[coders.KeyBitrate], 64); err == nil {
		stream.BitrateKbps = f
	}

	switch t {
	case types.MediaAudio:
		if n, err := strconv.Atoi(settings[coders.KeySampling]); err == nil {
			stream.SamplingHz = n
		}
		if n, err := strconv.Atoi(settings[coders.KeyChannels]); err == nil {
			stream.Channels = n
		}
		if layout := settings[coders.KeyLayout]; layout != "" {
			stream.Layout = layout
		}
	case types.MediaVideo:
		if f, err := strconv.ParseFloat(settings[coders.KeyFPS], 64); err == nil {
			stream.FPS = f
		}
	}
	return stream, true
}
