// Package v4l describes Video4Linux2 capture devices as stream sources.
package v4l

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/smazurov/relaycoder/internal/ffmpeg"
	"github.com/smazurov/relaycoder/internal/types"
)

// SourceID identifies the source kind.
const SourceID = "video4linux2"

// unsupportedDriver marks Raspberry Pi camera nodes that cannot be read
// through the generic v4l2 demuxer.
const unsupportedDriver = "bcm2835-v4l2"

// Settings select a device and its capture mode.
type Settings struct {
	Device    string `json:"device" toml:"device"`
	Format    string `json:"format" toml:"format"`
	Framerate string `json:"framerate" toml:"framerate"`
	Size      string `json:"size" toml:"size"`
}

// DefaultSettings returns the capture mode used for new sources.
func DefaultSettings() Settings {
	return Settings{
		Format:    "nv12",
		Framerate: "25",
		Size:      "1280x720",
	}
}

// Devices returns the usable video capture devices in the engine's order.
func Devices(known []types.Device) []types.Device {
	return lo.Filter(known, func(d types.Device, _ int) bool {
		return d.Media == "video" && !strings.Contains(d.Extra, unsupportedDriver)
	})
}

// InitSettings fills empty fields with defaults and makes sure the device
// is one of the usable devices. An unknown device is replaced by the first
// usable one. Without usable devices the device is left as given.
func InitSettings(partial Settings, known []types.Device) Settings {
	settings := DefaultSettings()
	settings.Device = partial.Device
	if partial.Format != "" {
		settings.Format = partial.Format
	}
	if partial.Framerate != "" {
		settings.Framerate = partial.Framerate
	}
	if partial.Size != "" {
		settings.Size = partial.Size
	}

	devices := Devices(known)
	if len(devices) == 0 {
		return settings
	}

	_, found := lo.Find(devices, func(d types.Device) bool { return d.ID == settings.Device })
	if !found {
		settings.Device = devices[0].ID
	}
	return settings
}

// BuildInputs returns the engine input capturing from the device.
func BuildInputs(settings Settings) []ffmpeg.Input {
	options := ffmpeg.ThreadQueueArgs(ffmpeg.DefaultThreadQueueSize)
	options = append(options, "-f", "v4l2")
	if settings.Format != "" {
		options = append(options, "-input_format", settings.Format)
	}
	if settings.Framerate != "" {
		options = append(options, "-framerate", settings.Framerate)
	}
	if settings.Size != "" {
		options = append(options, "-video_size", settings.Size)
	}

	return []ffmpeg.Input{{
		ID:      "input_0",
		Address: settings.Device,
		Options: options,
	}}
}

// Stream describes the video stream a capture produces, for use before
// the engine has probed it.
func Stream(settings Settings) types.Stream {
	stream := types.Stream{
		Index:  0,
		Type:   types.MediaVideo,
		Codec:  "rawvideo",
		PixFmt: settings.Format,
		URL:    settings.Device,
		Format: SourceID,
	}
	if fps, err := strconv.ParseFloat(settings.Framerate, 64); err == nil {
		stream.FPS = fps
	}
	if w, h, ok := strings.Cut(settings.Size, "x"); ok {
		stream.Width, _ = strconv.Atoi(w)
		stream.Height, _ = strconv.Atoi(h)
	}
	return stream
}
