// Package egress shapes publication metadata and compiles it into the
// inputs and outputs of a transcoding process.
package egress

import (
	"encoding/json"
	"fmt"

	"github.com/smazurov/relaycoder/internal/ffmpeg"
	"github.com/smazurov/relaycoder/internal/profile"
	"github.com/smazurov/relaycoder/internal/types"
)

// MetadataVersion is written into every metadata record.
const MetadataVersion = 1

// ProcessControl governs how the backend runs an egress process. Delay and
// StaleTimeout are in seconds.
type ProcessControl struct {
	Autostart    bool `json:"autostart" toml:"autostart"`
	Reconnect    bool `json:"reconnect" toml:"reconnect"`
	Delay        int  `json:"delay" toml:"delay"`
	StaleTimeout int  `json:"stale_timeout" toml:"stale_timeout"`
	LowDelay     bool `json:"low_delay" toml:"low_delay"`
}

// Control groups the control settings of an egress.
type Control struct {
	Process ProcessControl `json:"process" toml:"process"`
}

// DefaultControl returns the control settings of a new egress.
func DefaultControl() Control {
	return Control{
		Process: ProcessControl{
			Autostart:    true,
			Reconnect:    true,
			Delay:        15,
			StaleTimeout: 30,
		},
	}
}

// Profiles pairs the video and audio profile of one source.
type Profiles struct {
	Video profile.Profile `json:"video" toml:"video"`
	Audio profile.Profile `json:"audio" toml:"audio"`
}

// NewProfiles returns profiles that drop both streams.
func NewProfiles() Profiles {
	return Profiles{Video: profile.New(), Audio: profile.New()}
}

// For returns the profile of a media type.
func (p Profiles) For(t types.MediaType) profile.Profile {
	if t == types.MediaAudio {
		return p.Audio
	}
	return p.Video
}

// Clone returns an independent copy of p.
func (p Profiles) Clone() Profiles {
	return Profiles{Video: p.Video.Clone(), Audio: p.Audio.Clone()}
}

// With returns a copy of p with the profile of a media type replaced.
func (p Profiles) With(t types.MediaType, next profile.Profile) Profiles {
	out := p.Clone()
	if t == types.MediaAudio {
		out.Audio = next.Clone()
	} else {
		out.Video = next.Clone()
	}
	return out
}

// Metadata is everything stored alongside an egress process.
type Metadata struct {
	Name     string            `json:"name" toml:"name"`
	Control  Control           `json:"control" toml:"control"`
	Profiles []Profiles        `json:"profiles" toml:"profiles"`
	Streams  []types.Stream    `json:"streams" toml:"streams"`
	Outputs  []ffmpeg.Output   `json:"outputs" toml:"outputs"`
	Settings map[string]string `json:"settings" toml:"settings"`
	Version  int               `json:"version" toml:"version"`
}

// DefaultMetadata returns the metadata of a new egress with one source.
func DefaultMetadata() Metadata {
	return Metadata{
		Control:  DefaultControl(),
		Profiles: []Profiles{NewProfiles()},
		Streams:  []types.Stream{},
		Outputs:  []ffmpeg.Output{},
		Settings: map[string]string{},
		Version:  MetadataVersion,
	}
}

// InitMetadata decodes stored metadata over the defaults, so missing
// fields keep their default values. Empty input yields the defaults.
func InitMetadata(data []byte) (Metadata, error) {
	m := DefaultMetadata()
	if len(data) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return Metadata{}, fmt.Errorf("failed to decode egress metadata: %w", err)
	}
	if len(m.Profiles) == 0 {
		m.Profiles = []Profiles{NewProfiles()}
	}
	if m.Settings == nil {
		m.Settings = map[string]string{}
	}
	m.Version = MetadataVersion
	return m, nil
}

// Clone returns an independent copy of m.
func (m Metadata) Clone() Metadata {
	out := m
	out.Profiles = make([]Profiles, len(m.Profiles))
	for i, p := range m.Profiles {
		out.Profiles[i] = p.Clone()
	}
	out.Streams = append([]types.Stream(nil), m.Streams...)
	out.Outputs = make([]ffmpeg.Output, len(m.Outputs))
	for i, o := range m.Outputs {
		out.Outputs[i] = ffmpeg.Output{ID: o.ID, Address: o.Address, Options: o.Options.Clone()}
	}
	out.Settings = make(map[string]string, len(m.Settings))
	for k, v := range m.Settings {
		out.Settings[k] = v
	}
	return out
}
