package coders

import (
	"fmt"
	"strings"

	"github.com/smazurov/relaycoder/internal/ffmpeg"
	"github.com/smazurov/relaycoder/internal/types"
)

// DefaultRenderDevice is the DRM render node used by VAAPI.
const DefaultRenderDevice = "/dev/dri/renderD128"

// rateEncoder is a constant bitrate video encoder whose vector differs
// from the others only in fixed extra options.
type rateEncoder struct {
	id      string
	name    string
	codec   string
	hwaccel bool

	preset  string // default preset, "" if the encoder has none
	profile bool   // accepts -profile:v
	device  bool   // needs a render device
	pixFmt  string // "" to leave the pixel format alone
	filter  string // video filter placed after the codec
	extra   ffmpeg.Args
	tail    ffmpeg.Args
}

// NewH264NVENC returns the NVIDIA NVENC H.264 encoder.
func NewH264NVENC() Coder {
	return &rateEncoder{
		id:      "h264_nvenc",
		name:    "H.264 (NVENC)",
		codec:   "h264",
		hwaccel: true,
		preset:  "fast",
		profile: true,
		pixFmt:  "yuv420p",
	}
}

// NewH264VAAPI returns the VAAPI H.264 encoder.
func NewH264VAAPI() Coder {
	return &rateEncoder{
		id:      "h264_vaapi",
		name:    "H.264 (VAAPI)",
		codec:   "h264",
		hwaccel: true,
		profile: true,
		device:  true,
		filter:  "format=nv12,hwupload",
	}
}

// NewH264OMX returns the OpenMAX H.264 encoder found on Raspberry Pi builds.
func NewH264OMX() Coder {
	return &rateEncoder{
		id:      "h264_omx",
		name:    "H.264 (OpenMAX IL)",
		codec:   "h264",
		hwaccel: true,
		pixFmt:  "yuv420p",
	}
}

// NewH264V4L2M2M returns the V4L2 memory-to-memory H.264 encoder.
func NewH264V4L2M2M() Coder {
	return &rateEncoder{
		id:      "h264_v4l2m2m",
		name:    "H.264 (V4L2 M2M)",
		codec:   "h264",
		hwaccel: true,
		pixFmt:  "yuv420p",
		extra:   ffmpeg.Args{"-num_output_buffers", "32", "-num_capture_buffers", "16"},
	}
}

// NewVP9 returns the libvpx VP9 encoder.
func NewVP9() Coder {
	return &rateEncoder{
		id:     "libvpx-vp9",
		name:   "VP9 (libvpx)",
		codec:  "vp9",
		pixFmt: "yuv420p",
		tail:   ffmpeg.Args{"-deadline", "realtime"},
	}
}

func (e *rateEncoder) ID() string            { return e.id }
func (e *rateEncoder) Name() string          { return e.name }
func (e *rateEncoder) Codec() string         { return e.codec }
func (e *rateEncoder) Type() types.MediaType { return types.MediaVideo }
func (e *rateEncoder) HWAccel() bool         { return e.hwaccel }

func (e *rateEncoder) DefaultSettings() Settings {
	s := Settings{
		KeyBitrate: "4096",
		KeyFPS:     "25",
		KeyGOP:     "2",
	}
	if e.preset != "" {
		s[KeyPreset] = e.preset
	}
	if e.profile {
		s[KeyProfile] = SentinelAuto
	}
	if e.device {
		s[KeyDevice] = DefaultRenderDevice
	}
	return s
}

func (e *rateEncoder) Mapping(settings Settings, stream types.Stream) ffmpeg.Args {
	s := videoSettingsFrom(settings)
	fps := inherited(s.FPS, KeyFPS, stream)

	var mapping ffmpeg.Args
	if e.device {
		mapping = append(mapping, "-vaapi_device", s.Device)
	}
	mapping = append(mapping, "-codec:v", e.id)
	if e.preset != "" {
		mapping = append(mapping, "-preset:v", s.Preset)
	}
	if e.filter != "" {
		mapping = append(mapping, "-vf", e.filter)
	}
	mapping = append(mapping, e.extra...)
	mapping = append(mapping, rateArgs(s.Bitrate)...)
	mapping = append(mapping, "-r", fps)
	if e.pixFmt != "" {
		mapping = append(mapping, "-pix_fmt", e.pixFmt)
	}
	mapping = append(mapping, e.tail...)
	mapping = append(mapping, "-vsync", "1")
	mapping = append(mapping, gopArgs(s, fps)...)
	if e.profile {
		mapping = append(mapping, profileArgs(s)...)
	}

	return mapping
}

func (e *rateEncoder) Summarize(settings Settings) string {
	s := videoSettingsFrom(Merge(e.DefaultSettings(), settings))

	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s kbit/s, %s FPS", e.name, s.Bitrate, s.FPS)
	if e.preset != "" {
		fmt.Fprintf(&b, ", Preset: %s", s.Preset)
	}
	if e.profile {
		fmt.Fprintf(&b, ", Profile: %s", s.Profile)
	}
	return b.String()
}
