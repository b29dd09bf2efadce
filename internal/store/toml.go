// Package store keeps channels, engine skills and created egresses in a
// TOML file and serves them through the egress backend interface.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"

	"github.com/smazurov/relaycoder/internal/egress"
	"github.com/smazurov/relaycoder/internal/ffmpeg"
	"github.com/smazurov/relaycoder/internal/types"
)

// IDPrefix starts every egress id the store hands out.
const IDPrefix = "relaycoder:egress:"

// Egress is a created egress process as it is stored.
type Egress struct {
	ID       string          `toml:"id" json:"id"`
	Channel  string          `toml:"channel" json:"channel"`
	Service  string          `toml:"service" json:"service"`
	Inputs   []ffmpeg.Input  `toml:"inputs" json:"inputs"`
	Outputs  []ffmpeg.Output `toml:"outputs" json:"outputs"`
	Control  egress.Control  `toml:"control" json:"control"`
	Command  ffmpeg.Args     `toml:"command" json:"command"`
	Metadata string          `toml:"metadata,omitempty" json:"metadata,omitempty"`
}

// config represents the complete store file for TOML marshaling.
type config struct {
	Version  int                      `toml:"version" json:"version"`
	Skills   types.Skills             `toml:"skills" json:"skills"`
	Channels map[string]egress.Ingest `toml:"channels" json:"channels"`
	Egresses []Egress                 `toml:"egresses" json:"egresses"`
}

// Store is a file backed egress backend.
type Store interface {
	egress.Backend

	Load() error
	Save() error
	SetSkills(skills types.Skills) error
	PutChannel(channel string, ingest egress.Ingest) error
	Channels() []string
	Egresses(channel string) []Egress
	GetEgress(id string) (Egress, bool)
	EgressMetadata(id string) (egress.Metadata, error)
	RemoveEgress(id string) error
}

// tomlStore implements Store using TOML file storage.
type tomlStore struct {
	mu         sync.RWMutex
	configPath string
	config     *config
}

// NewTOML creates a new TOML-based store.
func NewTOML(configPath string) Store {
	if configPath == "" {
		configPath = "relaycoder.toml"
	}

	return &tomlStore{
		configPath: configPath,
		config: &config{
			Version:  1,
			Channels: make(map[string]egress.Ingest),
		},
	}
}

// Load loads the store from file. A missing file leaves the store empty.
func (s *tomlStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.configPath); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to read store: %w", err)
	}

	cfg := &config{}
	if unmarshalErr := toml.Unmarshal(data, cfg); unmarshalErr != nil {
		return fmt.Errorf("failed to parse store: %w", unmarshalErr)
	}
	if cfg.Channels == nil {
		cfg.Channels = make(map[string]egress.Ingest)
	}
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	s.config = cfg
	return nil
}

// Save writes the store to file.
func (s *tomlStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.save()
}

func (s *tomlStore) save() error {
	dir := filepath.Dir(s.configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	data, err := toml.Marshal(s.config)
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	if writeErr := os.WriteFile(s.configPath, data, 0o644); writeErr != nil {
		return fmt.Errorf("failed to write store: %w", writeErr)
	}

	return nil
}

// SetSkills replaces the stored engine skills.
func (s *tomlStore) SetSkills(skills types.Skills) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Skills = skills
	return s.save()
}

// PutChannel adds or replaces a channel's ingest.
func (s *tomlStore) PutChannel(channel string, ingest egress.Ingest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Channels[channel] = ingest
	return s.save()
}

// Channels returns the sorted channel names.
func (s *tomlStore) Channels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := lo.Keys(s.config.Channels)
	slices.Sort(names)
	return names
}

// Egresses returns the egresses of a channel, or all of them for an empty
// channel name.
func (s *tomlStore) Egresses(channel string) []Egress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Filter(s.config.Egresses, func(e Egress, _ int) bool {
		return channel == "" || e.Channel == channel
	})
}

// GetEgress retrieves an egress by id.
func (s *tomlStore) GetEgress(id string) (Egress, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Find(s.config.Egresses, func(e Egress) bool { return e.ID == id })
}

// EgressMetadata decodes the stored metadata of an egress over the
// defaults.
func (s *tomlStore) EgressMetadata(id string) (egress.Metadata, error) {
	e, ok := s.GetEgress(id)
	if !ok {
		return egress.Metadata{}, fmt.Errorf("unknown egress %q", id)
	}
	return egress.InitMetadata([]byte(e.Metadata))
}

// RemoveEgress deletes an egress.
func (s *tomlStore) RemoveEgress(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Egresses = lo.Reject(s.config.Egresses, func(e Egress, _ int) bool { return e.ID == id })
	return s.save()
}

// Skills returns the stored engine skills.
func (s *tomlStore) Skills(context.Context) (types.Skills, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config.Skills, nil
}

// GetIngestMetadata returns the ingest of a channel.
func (s *tomlStore) GetIngestMetadata(_ context.Context, channel string) (egress.Ingest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ingest, ok := s.config.Channels[channel]
	if !ok {
		return egress.Ingest{}, types.NewError(types.ErrCodeChannelNotFound,
			fmt.Sprintf("channel %q does not exist", channel), nil)
	}
	return ingest, nil
}

// CreateEgress renders the process command and stores the egress under a
// new id.
func (s *tomlStore) CreateEgress(_ context.Context, channel, service string, inputs []ffmpeg.Input, outputs []ffmpeg.Output, control egress.Control) (string, error) {
	command, err := egress.BuildCommand(inputs, outputs)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.config.Channels[channel]; !ok {
		return "", types.NewError(types.ErrCodeChannelNotFound,
			fmt.Sprintf("channel %q does not exist", channel), nil)
	}

	e := Egress{
		ID:      s.nextID(service),
		Channel: channel,
		Service: service,
		Inputs:  inputs,
		Outputs: outputs,
		Control: control,
		Command: command,
	}
	s.config.Egresses = append(s.config.Egresses, e)
	if err := s.save(); err != nil {
		return "", err
	}
	return e.ID, nil
}

// SetEgressMetadata stores the metadata of an egress as JSON.
func (s *tomlStore) SetEgressMetadata(_ context.Context, channel, id string, metadata egress.Metadata) error {
	data, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to encode egress metadata: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.config.Egresses, func(e Egress) bool {
		return e.ID == id && e.Channel == channel
	})
	if i < 0 {
		return fmt.Errorf("egress %q of channel %q does not exist", id, channel)
	}
	s.config.Egresses[i].Metadata = string(data)
	return s.save()
}

// nextID returns the first unused id of a service.
func (s *tomlStore) nextID(service string) string {
	prefix := IDPrefix + service + ":"
	n := 1
	for _, e := range s.config.Egresses {
		if !strings.HasPrefix(e.ID, prefix) {
			continue
		}
		var k int
		if _, err := fmt.Sscanf(strings.TrimPrefix(e.ID, prefix), "%d", &k); err == nil && k >= n {
			n = k + 1
		}
	}
	return fmt.Sprintf("%s%d", prefix, n)
}
