package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/smazurov/relaycoder/internal/sources/network"
	"github.com/smazurov/relaycoder/internal/types"
)

// LoadSkills reads the engine skills from a TOML file. The file holds the
// skills at its top level:
//
//	[ffmpeg]
//	version = "5.1.2"
//
//	[encoders]
//	audio = ["aac", "libopus"]
//	video = ["libx264"]
func LoadSkills(path string) (types.Skills, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Skills{}, fmt.Errorf("failed to read skills: %w", err)
	}

	var skills types.Skills
	if err := toml.Unmarshal(data, &skills); err != nil {
		return types.Skills{}, fmt.Errorf("failed to parse skills: %w", err)
	}
	if skills.FFmpeg.Version == "" {
		return types.Skills{}, fmt.Errorf("skills in %s lack the ffmpeg version", path)
	}
	return skills, nil
}

// LoadServerConfig reads the [rtmp] and [hls] sections describing the
// ingest servers. Missing keys keep their defaults and a missing file
// yields the default configuration.
func LoadServerConfig(path string) (network.ServerConfig, error) {
	cfg := network.DefaultServerConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return network.DefaultServerConfig(), fmt.Errorf("failed to parse server config: %w", err)
	}
	return cfg, nil
}
