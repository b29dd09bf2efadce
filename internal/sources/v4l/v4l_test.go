package v4l

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/smazurov/relaycoder/internal/ffmpeg"
	"github.com/smazurov/relaycoder/internal/types"
)

var knownDevices = []types.Device{
	{ID: "hw:0,0", Name: "USB Audio", Media: "audio"},
	{ID: "/dev/video0", Name: "Pi Camera", Extra: "bcm2835-v4l2 (platform:bcm2835-v4l2)", Media: "video"},
	{ID: "/dev/video2", Name: "HD Webcam", Extra: "uvcvideo", Media: "video"},
	{ID: "/dev/video4", Name: "Capture Card", Media: "video"},
}

func TestDevices(t *testing.T) {
	var got []string
	for _, d := range Devices(knownDevices) {
		got = append(got, d.ID)
	}
	if diff := cmp.Diff([]string{"/dev/video2", "/dev/video4"}, got); diff != "" {
		t.Errorf("Devices() mismatch (-want +got):\n%s", diff)
	}
}

func TestInitSettings(t *testing.T) {
	tests := []struct {
		name    string
		partial Settings
		known   []types.Device
		want    Settings
	}{
		{
			name:    "empty picks first usable device",
			partial: Settings{},
			known:   knownDevices,
			want:    Settings{Device: "/dev/video2", Format: "nv12", Framerate: "25", Size: "1280x720"},
		},
		{
			name:    "known device is kept",
			partial: Settings{Device: "/dev/video4", Framerate: "30"},
			known:   knownDevices,
			want:    Settings{Device: "/dev/video4", Format: "nv12", Framerate: "30", Size: "1280x720"},
		},
		{
			name:    "unsupported device is replaced",
			partial: Settings{Device: "/dev/video0"},
			known:   knownDevices,
			want:    Settings{Device: "/dev/video2", Format: "nv12", Framerate: "25", Size: "1280x720"},
		},
		{
			name:    "no devices keeps the given device",
			partial: Settings{Device: "/dev/video9", Size: "640x480"},
			known:   nil,
			want:    Settings{Device: "/dev/video9", Format: "nv12", Framerate: "25", Size: "640x480"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InitSettings(tt.partial, tt.known)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("InitSettings() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildInputs(t *testing.T) {
	settings := InitSettings(Settings{}, knownDevices)
	inputs := BuildInputs(settings)

	want := []ffmpeg.Input{{
		ID:      "input_0",
		Address: "/dev/video2",
		Options: ffmpeg.Args{"-thread_queue_size", "512", "-f", "v4l2", "-input_format", "nv12", "-framerate", "25", "-video_size", "1280x720"},
	}}
	if diff := cmp.Diff(want, inputs); diff != "" {
		t.Errorf("BuildInputs() mismatch (-want +got):\n%s", diff)
	}
}

func TestStream(t *testing.T) {
	got := Stream(Settings{Device: "/dev/video2", Format: "nv12", Framerate: "30", Size: "1920x1080"})
	if got.Type != types.MediaVideo || got.FPS != 30 || got.Width != 1920 || got.Height != 1080 || got.PixFmt != "nv12" {
		t.Errorf("Stream() = %+v", got)
	}
}
