package coders

import (
	"github.com/smazurov/relaycoder/internal/ffmpeg"
	"github.com/smazurov/relaycoder/internal/types"
)

// Ids of the coders that do not transcode.
const (
	CopyID = "copy"
	NoneID = "none"
)

// passthrough forwards or drops a stream without transcoding it.
type passthrough struct {
	id        string
	name      string
	mediaType types.MediaType
	mapping   ffmpeg.Args
}

// NewVideoCopy returns the video passthrough encoder.
func NewVideoCopy() Coder {
	return &passthrough{
		id:        CopyID,
		name:      "Passthrough (copy)",
		mediaType: types.MediaVideo,
		mapping:   ffmpeg.Args{"-codec:v", "copy", "-vsync", "0", "-copyts", "-start_at_zero"},
	}
}

// NewAudioCopy returns the audio passthrough encoder.
func NewAudioCopy() Coder {
	return &passthrough{
		id:        CopyID,
		name:      "Passthrough (copy)",
		mediaType: types.MediaAudio,
		mapping:   ffmpeg.Args{"-codec:a", "copy"},
	}
}

// NewVideoNone returns the encoder that drops the video stream.
func NewVideoNone() Coder {
	return &passthrough{
		id:        NoneID,
		name:      "No video",
		mediaType: types.MediaVideo,
		mapping:   ffmpeg.Args{"-vn"},
	}
}

// NewAudioNone returns the encoder that drops the audio stream.
func NewAudioNone() Coder {
	return &passthrough{
		id:        NoneID,
		name:      "No audio",
		mediaType: types.MediaAudio,
		mapping:   ffmpeg.Args{"-an"},
	}
}

func (p *passthrough) ID() string                { return p.id }
func (p *passthrough) Name() string              { return p.name }
func (p *passthrough) Codec() string             { return p.id }
func (p *passthrough) Type() types.MediaType     { return p.mediaType }
func (p *passthrough) HWAccel() bool             { return false }
func (p *passthrough) DefaultSettings() Settings { return Settings{} }

func (p *passthrough) Mapping(Settings, types.Stream) ffmpeg.Args {
	return p.mapping.Clone()
}

func (p *passthrough) Summarize(Settings) string {
	return p.name
}
