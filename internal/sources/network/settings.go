package network

import (
	"encoding/json"
	"fmt"

	"github.com/smazurov/relaycoder/internal/ffmpeg"
)

// Mode tells whether the stream is pulled from a remote address or pushed
// to the server's own ingest.
type Mode string

const (
	ModePull Mode = "pull"
	ModePush Mode = "push"
)

// PushType selects the local ingest a pushed stream arrives at.
type PushType string

const (
	PushRTMP PushType = "rtmp"
	PushHLS  PushType = "hls"
)

// PushSettings configures push mode.
type PushSettings struct {
	Type PushType `json:"type" toml:"type"`
}

// RTSPSettings configures RTSP pulls.
type RTSPSettings struct {
	UDP bool `json:"udp" toml:"udp"`
	// STimeout is the socket timeout in microseconds.
	STimeout int64 `json:"stimeout" toml:"stimeout"`
}

// HTTPSettings configures HTTP(S) pulls.
type HTTPSettings struct {
	ReadNative     bool   `json:"readNative" toml:"read_native"`
	ForceFramerate bool   `json:"forceFramerate" toml:"force_framerate"`
	Framerate      int    `json:"framerate" toml:"framerate"`
	UserAgent      string `json:"userAgent" toml:"user_agent"`
}

// GeneralSettings applies to every input.
type GeneralSettings struct {
	FFlags          []string `json:"fflags" toml:"fflags"`
	ThreadQueueSize int      `json:"thread_queue_size" toml:"thread_queue_size"`
}

// Settings describe a network source.
type Settings struct {
	Mode     Mode            `json:"mode" toml:"mode"`
	Address  string          `json:"address" toml:"address"`
	Username string          `json:"username" toml:"username"`
	Password string          `json:"password" toml:"password"`
	Push     PushSettings    `json:"push" toml:"push"`
	RTSP     RTSPSettings    `json:"rtsp" toml:"rtsp"`
	HTTP     HTTPSettings    `json:"http" toml:"http"`
	General  GeneralSettings `json:"general" toml:"general"`
}

// DefaultSettings returns the settings of a new network source.
func DefaultSettings() Settings {
	return Settings{
		Mode: ModePull,
		Push: PushSettings{Type: PushRTMP},
		RTSP: RTSPSettings{
			UDP:      false,
			STimeout: 5000000,
		},
		HTTP: HTTPSettings{
			ReadNative:     true,
			ForceFramerate: false,
			Framerate:      25,
		},
		General: GeneralSettings{
			FFlags:          ffmpeg.GetDefaultFlags(),
			ThreadQueueSize: ffmpeg.DefaultThreadQueueSize,
		},
	}
}

// InitSettings decodes a partial JSON document onto the defaults. Fields
// absent from data keep their default; an empty document yields the
// defaults.
func InitSettings(data []byte) (Settings, error) {
	settings := DefaultSettings()
	if len(data) == 0 {
		return settings, nil
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to decode network settings: %w", err)
	}
	return settings, nil
}

// Validate checks the settings for values no input can be built from.
func (s Settings) Validate() error {
	switch s.Mode {
	case ModePull:
		if !IsValidAddress(s.Address) {
			return fmt.Errorf("invalid address %q", s.Address)
		}
	case ModePush:
		if s.Push.Type != PushRTMP && s.Push.Type != PushHLS {
			return fmt.Errorf("unknown push type %q", s.Push.Type)
		}
	default:
		return fmt.Errorf("unknown mode %q", s.Mode)
	}
	return ffmpeg.ValidateFlags(s.General.FFlags)
}
