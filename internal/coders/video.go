package coders

import (
	"fmt"

	"github.com/smazurov/relaycoder/internal/ffmpeg"
	"github.com/smazurov/relaycoder/internal/types"
)

// Video setting keys
const (
	KeyPreset  = "preset"
	KeyGOP     = "gop"
	KeyProfile = "profile"
	KeyTune    = "tune"
	KeyEntropy = "entropy"
	KeyDevice  = "device"
)

// videoSettings is the typed view of a video encoder's settings.
type videoSettings struct {
	Preset  string
	Bitrate string
	FPS     Value
	GOP     Value // Auto or seconds between keyframes
	Profile Value // Auto or a profile name
	Tune    Value // None or a tuning name
	Entropy Value // Default or an entropy coder name
	Device  string
}

func videoSettingsFrom(s Settings) videoSettings {
	return videoSettings{
		Preset:  s[KeyPreset],
		Bitrate: s[KeyBitrate],
		FPS:     ParseValue(s[KeyFPS], KindInherit),
		GOP:     ParseValue(s[KeyGOP], KindAuto),
		Profile: ParseValue(s[KeyProfile], KindAuto),
		Tune:    ParseValue(s[KeyTune], KindNone),
		Entropy: ParseValue(s[KeyEntropy], KindDefault),
		Device:  s[KeyDevice],
	}
}

// rateArgs renders the constant bitrate triple.
func rateArgs(bitrate string) ffmpeg.Args {
	kbps := ffmpeg.Kbps(bitrate)
	return ffmpeg.Args{"-b:v", kbps, "-maxrate:v", kbps, "-bufsize:v", kbps}
}

// gopArgs renders -g unless the interval is left to the encoder.
func gopArgs(s videoSettings, fps string) ffmpeg.Args {
	if s.GOP.Is(KindAuto) {
		return nil
	}
	return ffmpeg.Args{"-g", ffmpeg.GOPFrames(fps, s.GOP.Literal())}
}

func profileArgs(s videoSettings) ffmpeg.Args {
	if s.Profile.Is(KindAuto) {
		return nil
	}
	return ffmpeg.Args{"-profile:v", s.Profile.Literal()}
}

// x26x covers the libx264 and libx265 software encoders.
type x26x struct {
	id    string
	name  string
	codec string
}

// NewX264 returns the libx264 encoder.
func NewX264() Coder {
	return &x26x{id: "libx264", name: "H.264 (libx264)", codec: "h264"}
}

// NewX265 returns the libx265 encoder.
func NewX265() Coder {
	return &x26x{id: "libx265", name: "H.265 (libx265)", codec: "h265"}
}

func (x *x26x) ID() string            { return x.id }
func (x *x26x) Name() string          { return x.name }
func (x *x26x) Codec() string         { return x.codec }
func (x *x26x) Type() types.MediaType { return types.MediaVideo }
func (x *x26x) HWAccel() bool         { return false }

func (x *x26x) DefaultSettings() Settings {
	return Settings{
		KeyPreset:  "ultrafast",
		KeyBitrate: "4096",
		KeyFPS:     "25",
		KeyGOP:     "2",
		KeyProfile: SentinelAuto,
		KeyTune:    "zerolatency",
	}
}

func (x *x26x) Mapping(settings Settings, stream types.Stream) ffmpeg.Args {
	s := videoSettingsFrom(settings)
	fps := inherited(s.FPS, KeyFPS, stream)

	mapping := ffmpeg.Args{"-codec:v", x.id, "-preset:v", s.Preset}
	mapping = append(mapping, rateArgs(s.Bitrate)...)
	mapping = append(mapping, "-r", fps, "-pix_fmt", "yuv420p", "-vsync", "1")
	mapping = append(mapping, gopArgs(s, fps)...)
	mapping = append(mapping, profileArgs(s)...)

	if !s.Tune.Is(KindNone) {
		mapping = append(mapping, "-tune:v", s.Tune.Literal())
	}

	return mapping
}

func (x *x26x) Summarize(settings Settings) string {
	s := videoSettingsFrom(Merge(x.DefaultSettings(), settings))
	return fmt.Sprintf("%s, %s kbit/s, %s FPS, Preset: %s, Profile: %s", x.name, s.Bitrate, s.FPS, s.Preset, s.Profile)
}

// videoToolbox is the macOS hardware H.264 encoder.
type videoToolbox struct{}

// NewH264VideoToolbox returns the VideoToolbox H.264 encoder.
func NewH264VideoToolbox() Coder {
	return videoToolbox{}
}

func (videoToolbox) ID() string            { return "h264_videotoolbox" }
func (videoToolbox) Name() string          { return "H.264 (VideoToolbox)" }
func (videoToolbox) Codec() string         { return "h264" }
func (videoToolbox) Type() types.MediaType { return types.MediaVideo }
func (videoToolbox) HWAccel() bool         { return true }

func (videoToolbox) DefaultSettings() Settings {
	return Settings{
		KeyBitrate: "4096",
		KeyFPS:     "25",
		KeyGOP:     "2",
		KeyProfile: SentinelAuto,
		KeyEntropy: SentinelDefault,
	}
}

func (v videoToolbox) Mapping(settings Settings, stream types.Stream) ffmpeg.Args {
	s := videoSettingsFrom(settings)
	fps := inherited(s.FPS, KeyFPS, stream)

	mapping := ffmpeg.Args{"-codec:v", v.ID()}
	mapping = append(mapping, rateArgs(s.Bitrate)...)
	mapping = append(mapping, "-r", fps, "-pix_fmt", "yuv420p", "-realtime", "true", "-vsync", "1")
	mapping = append(mapping, gopArgs(s, fps)...)
	mapping = append(mapping, profileArgs(s)...)

	if !s.Entropy.Is(KindDefault) {
		mapping = append(mapping, "-coder:v", s.Entropy.Literal())
	}

	return mapping
}

func (v videoToolbox) Summarize(settings Settings) string {
	s := videoSettingsFrom(Merge(v.DefaultSettings(), settings))
	return fmt.Sprintf("%s, %s kbit/s, %s FPS, Profile: %s", v.Name(), s.Bitrate, s.FPS, s.Profile)
}
