package coders

import "github.com/smazurov/relaycoder/internal/types"

var (
	videoEncoders = build(types.MediaVideo,
		NewVideoCopy(),
		NewVideoNone(),
		NewX264(),
		NewX265(),
		NewH264VideoToolbox(),
		NewH264NVENC(),
		NewH264VAAPI(),
		NewH264OMX(),
		NewH264V4L2M2M(),
		NewVP9(),
	)

	audioEncoders = build(types.MediaAudio,
		NewAudioCopy(),
		NewAudioNone(),
		NewAAC(),
		NewLibfdkAAC(),
		NewOpus(),
		NewLibopus(),
		NewMP3(),
		NewVorbis(),
	)

	videoDecoders = build(types.MediaVideo,
		NewDefaultDecoder(types.MediaVideo),
		NewH264CUVID(),
		NewHEVCCUVID(),
		NewH264QSV(),
		NewH264MMAL(),
		NewH264VAAPIDecoder(),
	)

	audioDecoders = build(types.MediaAudio,
		NewDefaultDecoder(types.MediaAudio),
	)
)

func build(mediaType types.MediaType, coders ...Coder) *Registry {
	r := NewRegistry(mediaType)
	for _, c := range coders {
		r.Register(c)
	}
	r.Seal()
	return r
}

// Encoders returns the read-only encoder catalog for a media type.
// Unknown media types yield nil.
func Encoders(t types.MediaType) *Registry {
	switch t {
	case types.MediaVideo:
		return videoEncoders
	case types.MediaAudio:
		return audioEncoders
	default:
		return nil
	}
}

// Decoders returns the read-only decoder catalog for a media type.
// Unknown media types yield nil.
func Decoders(t types.MediaType) *Registry {
	switch t {
	case types.MediaVideo:
		return videoDecoders
	case types.MediaAudio:
		return audioDecoders
	default:
		return nil
	}
}
