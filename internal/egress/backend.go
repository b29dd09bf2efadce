package egress

import (
	"context"

	"github.com/smazurov/relaycoder/internal/ffmpeg"
	"github.com/smazurov/relaycoder/internal/types"
)

// Ingest describes a channel's ingest as the backend reports it.
type Ingest struct {
	Name        string         `json:"name" toml:"name"`
	Description string         `json:"description" toml:"description"`
	License     string         `json:"license" toml:"license"`
	Streams     []types.Stream `json:"streams" toml:"streams"`
}

// Backend is the control API of the streaming server.
type Backend interface {
	// Skills reports what the transcoding engine can do.
	Skills(ctx context.Context) (types.Skills, error)
	// GetIngestMetadata returns the ingest of a channel.
	GetIngestMetadata(ctx context.Context, channel string) (Ingest, error)
	// CreateEgress creates an egress process and returns its id.
	CreateEgress(ctx context.Context, channel, service string, inputs []ffmpeg.Input, outputs []ffmpeg.Output, control Control) (string, error)
	// SetEgressMetadata stores the metadata of an egress.
	SetEgressMetadata(ctx context.Context, channel, id string, metadata Metadata) error
}
