package models

import (
	"github.com/smazurov/relaycoder/internal/coders"
	"github.com/smazurov/relaycoder/internal/egress"
	"github.com/smazurov/relaycoder/internal/ffmpeg"
	"github.com/smazurov/relaycoder/internal/logging"
	"github.com/smazurov/relaycoder/internal/metrics"
	"github.com/smazurov/relaycoder/internal/profile"
	"github.com/smazurov/relaycoder/internal/services"
	"github.com/smazurov/relaycoder/internal/sources/v4l"
	"github.com/smazurov/relaycoder/internal/types"
)

// Health check models
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Service status"`
	Message string `json:"message" example:"API is healthy" doc:"Status message"`
}

type HealthResponse struct {
	Body HealthData
}

// Version models
type VersionData struct {
	Version       string `json:"version" example:"1.0.0" doc:"Application version"`
	GitCommit     string `json:"git_commit" example:"abc1234" doc:"Git commit hash"`
	BuildDate     string `json:"build_date" example:"2025-01-27T10:30:00Z" doc:"Build date"`
	BuildID       string `json:"build_id" example:"abc123" doc:"Unique build identifier"`
	GoVersion     string `json:"go_version" example:"go1.24.0" doc:"Go version used for the build"`
	Compiler      string `json:"compiler" example:"gc" doc:"Go compiler"`
	Platform      string `json:"platform" example:"linux/amd64" doc:"Build platform"`
	Core          string `json:"core" example:"^15.0.0 || ^16.0.0" doc:"Supported streaming server versions"`
	FFmpeg        string `json:"ffmpeg" example:"^5.0.1" doc:"Supported FFmpeg versions"`
	FFmpegVersion string `json:"ffmpeg_version" example:"5.1.2" doc:"FFmpeg version reported by the engine"`
	Compatible    bool   `json:"compatible" example:"true" doc:"Whether the reported FFmpeg version is supported"`
}

type VersionResponse struct {
	Body VersionData
}

// Skills models
type SkillsResponse struct {
	Body types.Skills
}

// Service catalog models
type ServicesRequest struct {
	Category string `query:"category" default:"all" enum:"all,platform,software,universal" doc:"Service category to list"`
}

type ServiceListData struct {
	Services []services.Entry `json:"services" doc:"Catalog entries, marked enabled when the engine can feed them"`
	Count    int              `json:"count" example:"12" doc:"Number of services"`
}

type ServicesResponse struct {
	Body ServiceListData
}

type ServiceCountsData struct {
	Services map[string]*metrics.ServiceCounts `json:"services" doc:"Publication counters per service"`
}

type ServiceCountsResponse struct {
	Body ServiceCountsData
}

// Coder models
type CodersRequest struct {
	Type string `path:"type" enum:"video,audio" doc:"Media type"`
}

type CoderInfo struct {
	ID        string          `json:"id" example:"libx264" doc:"Coder identifier"`
	Name      string          `json:"name" example:"H.264 (libx264)" doc:"Human-readable name"`
	Codec     string          `json:"codec" example:"h264" doc:"Codec the coder produces or consumes"`
	HWAccel   bool            `json:"hwaccel" example:"false" doc:"Whether the coder needs hardware support"`
	Available bool            `json:"available" example:"true" doc:"Whether the engine provides the coder"`
	Defaults  coders.Settings `json:"defaults" doc:"Default settings"`
	Summary   string          `json:"summary" example:"ultrafast, 4096 kbit/s" doc:"Summary of the default settings"`
}

type CoderListData struct {
	Encoders []CoderInfo `json:"encoders" doc:"Known encoders"`
	Decoders []CoderInfo `json:"decoders" doc:"Known decoders"`
}

type CodersResponse struct {
	Body CoderListData
}

// Input models
type NetworkInputRequest struct {
	RawBody []byte `doc:"Partial network source settings, decoded over the defaults"`
}

type InputsData struct {
	Protocol string         `json:"protocol,omitempty" example:"rtsp" doc:"Protocol class of the source address"`
	Inputs   []ffmpeg.Input `json:"inputs" doc:"Engine inputs for the source"`
	Stream   *types.Stream  `json:"stream,omitempty" doc:"Stream the source is expected to produce"`
	Devices  []types.Device `json:"devices,omitempty" doc:"Usable capture devices"`
}

type InputsResponse struct {
	Body InputsData
}

type V4LSettings struct {
	Device    string `json:"device,omitempty" example:"/dev/video0" doc:"Capture device, the first usable device when unknown"`
	Format    string `json:"format,omitempty" example:"nv12" doc:"Input pixel format"`
	Framerate string `json:"framerate,omitempty" example:"25" doc:"Capture framerate"`
	Size      string `json:"size,omitempty" example:"1280x720" doc:"Capture size"`
}

// Settings converts the request into capture settings.
func (s V4LSettings) Settings() v4l.Settings {
	return v4l.Settings{Device: s.Device, Format: s.Format, Framerate: s.Framerate, Size: s.Size}
}

type V4LInputRequest struct {
	Body V4LSettings
}

// Channel models
type ChannelData struct {
	ID     string        `json:"id" example:"main" doc:"Channel identifier"`
	Ingest egress.Ingest `json:"ingest" doc:"Channel ingest"`
}

type ChannelListData struct {
	Channels []string `json:"channels" doc:"Channel identifiers"`
	Count    int      `json:"count" example:"1" doc:"Number of channels"`
}

type ChannelListResponse struct {
	Body ChannelListData
}

type ChannelRequest struct {
	Channel string `path:"channel" example:"main" doc:"Channel identifier"`
}

type PutChannelRequest struct {
	Channel string `path:"channel" example:"main" doc:"Channel identifier"`
	Body    egress.Ingest
}

type ChannelResponse struct {
	Body ChannelData
}

// Offer models
type OfferRequest struct {
	Channel string `path:"channel" example:"main" doc:"Channel identifier"`
	Service string `path:"service" example:"youtube" doc:"Service identifier"`
}

type MediaOffer struct {
	Profile       profile.Profile `json:"profile" doc:"Preselected profile"`
	Stream        *types.Stream   `json:"stream,omitempty" doc:"Referenced source stream"`
	Encoders      []string        `json:"encoders" doc:"Encoders that may be chosen"`
	Decoders      []string        `json:"decoders" doc:"Decoders that may be chosen"`
	Suitable      bool            `json:"suitable" example:"true" doc:"Whether the stream can be encoded for the service"`
	ChooseDecoder bool            `json:"choose_decoder" example:"false" doc:"Whether a decoder choice is worth presenting"`
	Error         string          `json:"error,omitempty" doc:"Why no offer could be made"`
}

type OfferData struct {
	Service      string                `json:"service" example:"youtube" doc:"Service identifier"`
	Name         string                `json:"name" example:"YouTube Live" doc:"Default publication name"`
	Fields       []string              `json:"fields" doc:"Service settings the outputs need"`
	Capabilities services.Capabilities `json:"capabilities" doc:"What the service can be fed with"`
	Video        MediaOffer            `json:"video" doc:"Video offer"`
	Audio        MediaOffer            `json:"audio" doc:"Audio offer"`
}

type OfferResponse struct {
	Body OfferData
}

// Publication models
type ProfileEdit struct {
	Encoder string            `json:"encoder,omitempty" example:"libx264" doc:"Encoder to switch to"`
	Options map[string]string `json:"options,omitempty" doc:"Encoder settings to change"`
	Decoder string            `json:"decoder,omitempty" example:"h264_cuvid" doc:"Decoder to switch to"`
}

type PublicationRequestData struct {
	Service  string                 `json:"service" example:"youtube" doc:"Service identifier"`
	Name     string                 `json:"name,omitempty" example:"Main stream on YouTube" doc:"Publication name, the service name by default"`
	Settings map[string]string      `json:"settings,omitempty" doc:"Service settings such as the stream key"`
	Video    *ProfileEdit           `json:"video,omitempty" doc:"Video profile edits"`
	Audio    *ProfileEdit           `json:"audio,omitempty" doc:"Audio profile edits"`
	Control  *egress.ProcessControl `json:"control,omitempty" doc:"Process control settings"`
}

type PublicationRequest struct {
	Channel string `path:"channel" example:"main" doc:"Channel identifier"`
	Body    PublicationRequestData
}

type PublicationData struct {
	ID       string          `json:"id" example:"relaycoder:egress:youtube:1" doc:"Egress identifier"`
	Channel  string          `json:"channel" example:"main" doc:"Channel identifier"`
	Service  string          `json:"service" example:"youtube" doc:"Service identifier"`
	Metadata egress.Metadata `json:"metadata" doc:"Stored publication metadata"`
	Command  string          `json:"command,omitempty" doc:"Engine command line"`
}

type PublicationResponse struct {
	Body PublicationData
}

type PublicationListData struct {
	Publications []PublicationData `json:"publications" doc:"Publications of the channel"`
	Count        int               `json:"count" example:"1" doc:"Number of publications"`
}

type PublicationListResponse struct {
	Body PublicationListData
}

type PublicationIDRequest struct {
	Channel string `path:"channel" example:"main" doc:"Channel identifier"`
	ID      string `path:"id" example:"relaycoder:egress:youtube:1" doc:"Egress identifier"`
}

// Log models
type LogsRequest struct {
	Limit int `query:"limit" default:"100" minimum:"0" doc:"Number of newest entries to return, 0 for all"`
}

type LogsData struct {
	Entries []logging.LogEntry `json:"entries" doc:"Buffered log entries, oldest first"`
	Count   int                `json:"count" example:"100" doc:"Number of entries returned"`
}

type LogsResponse struct {
	Body LogsData
}

type LogLevelRequest struct {
	Module string `path:"module" example:"api" doc:"Logger module"`
	Body   struct {
		Level string `json:"level" enum:"debug,info,warn,error" doc:"New level"`
	}
}

type LogLevelData struct {
	Module string `json:"module" example:"api" doc:"Logger module"`
	Level  string `json:"level" example:"debug" doc:"Applied level"`
}

type LogLevelResponse struct {
	Body LogLevelData
}

// SSE models
type ConnectedData struct {
	Message   string `json:"message" example:"SSE connection established" doc:"Connection message"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Connection time"`
}
