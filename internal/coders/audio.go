package coders

import (
	"fmt"

	"github.com/smazurov/relaycoder/internal/ffmpeg"
	"github.com/smazurov/relaycoder/internal/types"
)

// Audio setting keys
const (
	KeyBitrate = "bitrate"
	KeyDelay   = "delay"
)

// audioSettings is the typed view of an audio encoder's settings.
type audioSettings struct {
	Bitrate  string
	Delay    Value // Auto or a literal in milliseconds
	Channels Value
	Layout   Value
	Sampling Value
}

func audioSettingsFrom(s Settings) audioSettings {
	return audioSettings{
		Bitrate:  s[KeyBitrate],
		Delay:    ParseValue(s[KeyDelay], KindAuto),
		Channels: ParseValue(s[KeyChannels], KindInherit),
		Layout:   ParseValue(s[KeyLayout], KindInherit),
		Sampling: ParseValue(s[KeySampling], KindInherit),
	}
}

// audioEncoder covers the bitrate driven audio encoders. All of them
// resample to the configured rate and channel layout.
type audioEncoder struct {
	id             string
	name           string
	codec          string
	encoder        string
	defaultBitrate string
	vbr            bool
	delayFlag      string
}

// NewOpus returns the native ffmpeg Opus encoder.
func NewOpus() Coder {
	return &audioEncoder{
		id:             "opus",
		name:           "Opus",
		codec:          "opus",
		encoder:        "opus",
		defaultBitrate: "64",
		vbr:            true,
		delayFlag:      "opus_delay",
	}
}

// NewLibopus returns the libopus encoder.
func NewLibopus() Coder {
	return &audioEncoder{
		id:             "libopus",
		name:           "Opus (libopus)",
		codec:          "opus",
		encoder:        "libopus",
		defaultBitrate: "64",
		vbr:            true,
	}
}

// NewAAC returns the native ffmpeg AAC encoder.
func NewAAC() Coder {
	return &audioEncoder{
		id:             "aac",
		name:           "AAC",
		codec:          "aac",
		encoder:        "aac",
		defaultBitrate: "64",
	}
}

// NewLibfdkAAC returns the Fraunhofer AAC encoder.
func NewLibfdkAAC() Coder {
	return &audioEncoder{
		id:             "libfdk_aac",
		name:           "AAC (libfdk)",
		codec:          "aac",
		encoder:        "libfdk_aac",
		defaultBitrate: "64",
	}
}

// NewMP3 returns the LAME MP3 encoder.
func NewMP3() Coder {
	return &audioEncoder{
		id:             "libmp3lame",
		name:           "MP3 (libmp3lame)",
		codec:          "mp3",
		encoder:        "libmp3lame",
		defaultBitrate: "64",
	}
}

// NewVorbis returns the libvorbis encoder.
func NewVorbis() Coder {
	return &audioEncoder{
		id:             "libvorbis",
		name:           "Vorbis (libvorbis)",
		codec:          "vorbis",
		encoder:        "libvorbis",
		defaultBitrate: "64",
	}
}

func (a *audioEncoder) ID() string            { return a.id }
func (a *audioEncoder) Name() string          { return a.name }
func (a *audioEncoder) Codec() string         { return a.codec }
func (a *audioEncoder) Type() types.MediaType { return types.MediaAudio }
func (a *audioEncoder) HWAccel() bool         { return false }

func (a *audioEncoder) DefaultSettings() Settings {
	s := Settings{
		KeyBitrate:  a.defaultBitrate,
		KeyChannels: "2",
		KeyLayout:   "stereo",
		KeySampling: "44100",
	}
	if a.delayFlag != "" {
		s[KeyDelay] = SentinelAuto
	}
	return s
}

func (a *audioEncoder) Mapping(settings Settings, stream types.Stream) ffmpeg.Args {
	s := audioSettingsFrom(settings)

	sampling := inherited(s.Sampling, KeySampling, stream)
	layout := inherited(s.Layout, KeyLayout, stream)

	mapping := ffmpeg.Args{"-codec:a", a.encoder, "-b:a", ffmpeg.Kbps(s.Bitrate)}
	if a.vbr {
		mapping = append(mapping, "-vbr", "on")
	}
	mapping = append(mapping, "-shortest", "-af", fmt.Sprintf("aresample=osr=%s:ocl=%s", sampling, layout))

	if a.delayFlag != "" && !s.Delay.Is(KindAuto) {
		mapping = append(mapping, a.delayFlag, s.Delay.Literal())
	}

	return mapping
}

func (a *audioEncoder) Summarize(settings Settings) string {
	s := audioSettingsFrom(Merge(a.DefaultSettings(), settings))
	return fmt.Sprintf("%s, %s kbit/s, %s, %sHz", a.name, s.Bitrate, s.Layout, s.Sampling)
}

// Update keeps the channel count in line with the layout.
func (a *audioEncoder) Update(settings Settings, key, value string, stream types.Stream) Settings {
	next := settings.With(key, value)
	if key == KeyLayout {
		next[KeyChannels] = ChannelsForLayout(value, stream)
	}
	return next
}

// ChannelsForLayout returns the channel count implied by a layout. Layouts
// other than mono and stereo keep the stream's channel count.
func ChannelsForLayout(layout string, stream types.Stream) string {
	switch layout {
	case "mono":
		return "1"
	case "stereo":
		return "2"
	default:
		return itoa(stream.Channels)
	}
}
