package events

// Event type constants for kelindar/event.
const (
	TypeServiceSelected uint32 = iota + 1
	TypeProfileChanged
	TypeEgressCreated
	TypeSkillsReloaded
	TypeLogEntry
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// ServiceSelectedEvent is published when a publication draft picks a service.
type ServiceSelectedEvent struct {
	Channel   string `json:"channel" example:"main" doc:"Channel identifier"`
	Service   string `json:"service" example:"youtube" doc:"Service identifier, empty when the selection was reset"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for ServiceSelectedEvent.
func (e ServiceSelectedEvent) Type() uint32 { return TypeServiceSelected }

// ProfileChangedEvent is published when the coders of a profile change.
type ProfileChangedEvent struct {
	Channel   string `json:"channel" example:"main" doc:"Channel identifier"`
	MediaType string `json:"media_type" example:"video" doc:"Media type of the profile"`
	Encoder   string `json:"encoder" example:"libx264" doc:"Selected encoder"`
	Decoder   string `json:"decoder" example:"default" doc:"Selected decoder"`
	Automatic bool   `json:"automatic" example:"false" doc:"Whether the change was made without an explicit edit"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for ProfileChangedEvent.
func (e ProfileChangedEvent) Type() uint32 { return TypeProfileChanged }

// EgressCreatedEvent is published after an egress was created on the backend.
type EgressCreatedEvent struct {
	Channel   string `json:"channel" example:"main" doc:"Channel identifier"`
	EgressID  string `json:"egress_id" example:"relaycoder:egress:youtube:1" doc:"Egress process identifier"`
	Service   string `json:"service" example:"youtube" doc:"Service identifier"`
	Name      string `json:"name" example:"YouTube Live" doc:"Publication name"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for EgressCreatedEvent.
func (e EgressCreatedEvent) Type() uint32 { return TypeEgressCreated }

// SkillsReloadedEvent is published when the engine skills were reloaded.
type SkillsReloadedEvent struct {
	FFmpegVersion string `json:"ffmpeg_version" example:"5.1.2" doc:"Reported FFmpeg version"`
	Compatible    bool   `json:"compatible" example:"true" doc:"Whether the FFmpeg version is supported"`
	Timestamp     string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for SkillsReloadedEvent.
func (e SkillsReloadedEvent) Type() uint32 { return TypeSkillsReloaded }

// LogEntryEvent represents a log entry for SSE streaming.
type LogEntryEvent struct {
	Seq        uint64         `json:"seq" example:"42" doc:"Monotonic sequence number"`
	Timestamp  string         `json:"timestamp" example:"2025-01-09T10:30:00.123Z" doc:"Log timestamp"`
	Level      string         `json:"level" example:"info" doc:"Log level"`
	Module     string         `json:"module" example:"api" doc:"Source module"`
	Message    string         `json:"message" doc:"Log message"`
	Attributes map[string]any `json:"attributes,omitempty" doc:"Structured log attributes"`
}

// Type returns the event type identifier for LogEntryEvent.
func (e LogEntryEvent) Type() uint32 { return TypeLogEntry }
