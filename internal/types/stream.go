package types

// MediaType identifies the kind of an elementary stream.
type MediaType string

const (
	MediaAudio MediaType = "audio"
	MediaVideo MediaType = "video"
)

// MediaTypes lists the media types in presentation order.
var MediaTypes = []MediaType{MediaVideo, MediaAudio}

// Valid reports whether t names a known media type.
func (t MediaType) Valid() bool {
	return t == MediaAudio || t == MediaVideo
}

// Stream describes one probed elementary stream of a source.
// Values are owned by the caller and never modified here.
type Stream struct {
	Index       int       `json:"index" toml:"index"`
	Type        MediaType `json:"type" toml:"type"`
	Codec       string    `json:"codec" toml:"codec"`
	URL         string    `json:"url,omitempty" toml:"url,omitempty"`
	Format      string    `json:"format,omitempty" toml:"format,omitempty"`
	BitrateKbps float64   `json:"bitrate_kbps,omitempty" toml:"bitrate_kbps,omitempty"`

	// Video
	FPS    float64 `json:"fps,omitempty" toml:"fps,omitempty"`
	PixFmt string  `json:"pix_fmt,omitempty" toml:"pix_fmt,omitempty"`
	Width  int     `json:"width,omitempty" toml:"width,omitempty"`
	Height int     `json:"height,omitempty" toml:"height,omitempty"`

	// Audio
	SamplingHz int    `json:"sampling_hz,omitempty" toml:"sampling_hz,omitempty"`
	Layout     string `json:"layout,omitempty" toml:"layout,omitempty"`
	Channels   int    `json:"channels,omitempty" toml:"channels,omitempty"`
}

// FindStream returns the stream with the given index.
func FindStream(streams []Stream, index int) (Stream, bool) {
	for _, s := range streams {
		if s.Index == index {
			return s, true
		}
	}
	return Stream{}, false
}

// FirstOfType returns the first stream of the given media type.
func FirstOfType(streams []Stream, t MediaType) (Stream, bool) {
	for _, s := range streams {
		if s.Type == t {
			return s, true
		}
	}
	return Stream{}, false
}
