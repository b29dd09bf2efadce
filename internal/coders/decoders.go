package coders

import (
	"github.com/smazurov/relaycoder/internal/ffmpeg"
	"github.com/smazurov/relaycoder/internal/types"
)

// DefaultDecoderID names the engine's own codec detection.
const DefaultDecoderID = "default"

// decoder selects how an input stream is decoded. Its mapping belongs in
// front of the input address.
type decoder struct {
	id        string
	name      string
	codec     string
	mediaType types.MediaType
	hwaccel   bool
	device    bool // mapping ends with the render device
	mapping   ffmpeg.Args
}

// NewDefaultDecoder returns the decoder that lets the engine pick.
func NewDefaultDecoder(mediaType types.MediaType) Coder {
	return &decoder{
		id:        DefaultDecoderID,
		name:      "Default",
		codec:     CodecAny,
		mediaType: mediaType,
	}
}

// NewH264CUVID returns the NVIDIA CUVID H.264 decoder.
func NewH264CUVID() Coder {
	return &decoder{
		id:        "h264_cuvid",
		name:      "H.264 (CUVID)",
		codec:     "h264",
		mediaType: types.MediaVideo,
		hwaccel:   true,
		mapping:   ffmpeg.Args{"-hwaccel", "cuvid", "-codec:v", "h264_cuvid"},
	}
}

// NewHEVCCUVID returns the NVIDIA CUVID HEVC decoder.
func NewHEVCCUVID() Coder {
	return &decoder{
		id:        "hevc_cuvid",
		name:      "H.265 (CUVID)",
		codec:     "hevc",
		mediaType: types.MediaVideo,
		hwaccel:   true,
		mapping:   ffmpeg.Args{"-hwaccel", "cuvid", "-codec:v", "hevc_cuvid"},
	}
}

// NewH264QSV returns the Intel QuickSync H.264 decoder.
func NewH264QSV() Coder {
	return &decoder{
		id:        "h264_qsv",
		name:      "H.264 (QuickSync)",
		codec:     "h264",
		mediaType: types.MediaVideo,
		hwaccel:   true,
		mapping:   ffmpeg.Args{"-hwaccel", "qsv", "-codec:v", "h264_qsv"},
	}
}

// NewH264MMAL returns the Raspberry Pi MMAL H.264 decoder.
func NewH264MMAL() Coder {
	return &decoder{
		id:        "h264_mmal",
		name:      "H.264 (MMAL)",
		codec:     "h264",
		mediaType: types.MediaVideo,
		hwaccel:   true,
		mapping:   ffmpeg.Args{"-codec:v", "h264_mmal"},
	}
}

// NewH264VAAPIDecoder returns the VAAPI H.264 decoder. Frames stay in
// device memory.
func NewH264VAAPIDecoder() Coder {
	return &decoder{
		id:        "h264_vaapi",
		name:      "H.264 (VAAPI)",
		codec:     "h264",
		mediaType: types.MediaVideo,
		hwaccel:   true,
		device:    true,
		mapping:   ffmpeg.Args{"-hwaccel", "vaapi", "-hwaccel_output_format", "vaapi", "-hwaccel_device"},
	}
}

func (d *decoder) ID() string            { return d.id }
func (d *decoder) Name() string          { return d.name }
func (d *decoder) Codec() string         { return d.codec }
func (d *decoder) Type() types.MediaType { return d.mediaType }
func (d *decoder) HWAccel() bool         { return d.hwaccel }

func (d *decoder) DefaultSettings() Settings {
	if d.device {
		return Settings{KeyDevice: DefaultRenderDevice}
	}
	return Settings{}
}

func (d *decoder) Mapping(s Settings, _ types.Stream) ffmpeg.Args {
	mapping := d.mapping.Clone()
	if d.device {
		mapping = append(mapping, s.Get(KeyDevice, DefaultRenderDevice))
	}
	return mapping
}

func (d *decoder) Summarize(s Settings) string {
	if d.device {
		return d.name + " on " + s.Get(KeyDevice, DefaultRenderDevice)
	}
	return d.name
}
