package egress

import (
	"fmt"

	"github.com/smazurov/relaycoder/internal/coders"
	"github.com/smazurov/relaycoder/internal/ffmpeg"
	"github.com/smazurov/relaycoder/internal/profile"
	"github.com/smazurov/relaycoder/internal/types"
)

// GlobalArgs precede the inputs of every egress process.
var GlobalArgs = ffmpeg.Args{"-loglevel", "level+info", "-err_detect", "ignore_err", "-y"}

// BuildCommand renders the full command line of an egress process.
func BuildCommand(inputs []ffmpeg.Input, outputs []ffmpeg.Output) (ffmpeg.Args, error) {
	return ffmpeg.BuildCommand(GlobalArgs, inputs, outputs)
}

// InputID names the input of the source at position i.
func InputID(i int) string {
	return fmt.Sprintf("input_%d", i)
}

// CreateInputsOutputs compiles sources, their profiles and the service
// outputs into process inputs and outputs. Decoder arguments go on the
// input of their source; stream selection and encoder arguments precede
// every output's own options.
func CreateInputsOutputs(sources []Source, profiles []Profiles, outputs []ffmpeg.Output) ([]ffmpeg.Input, []ffmpeg.Output, error) {
	if len(outputs) == 0 {
		return nil, nil, ffmpeg.ErrNoOutput
	}
	if len(sources) == 0 {
		return nil, nil, ffmpeg.ErrNoInput
	}

	inputs := make([]ffmpeg.Input, 0, len(sources))
	var streamArgs ffmpeg.Args
	mapped := 0

	for i, source := range sources {
		input := ffmpeg.Input{ID: InputID(i), Address: source.Address, Options: ffmpeg.Args{}}

		if i < len(profiles) {
			for _, t := range types.MediaTypes {
				c, err := compileProfile(i, source, profiles[i].For(t), t)
				if err != nil {
					return nil, nil, err
				}
				input.Options = append(input.Options, c.decoder...)
				streamArgs = append(streamArgs, c.encoder...)
				if c.mapped {
					mapped++
				}
			}
		}

		inputs = append(inputs, input)
	}

	if mapped == 0 {
		return nil, nil, types.NewError(types.ErrCodeNoSuitableEncoder, "no stream is published", nil)
	}

	compiled := make([]ffmpeg.Output, len(outputs))
	for i, o := range outputs {
		options := streamArgs.Clone()
		options = append(options, o.Options...)
		compiled[i] = ffmpeg.Output{ID: o.ID, Address: o.Address, Options: options}
	}
	return inputs, compiled, nil
}

type compiledProfile struct {
	decoder ffmpeg.Args
	encoder ffmpeg.Args
	mapped  bool
}

func compileProfile(input int, source Source, p profile.Profile, t types.MediaType) (compiledProfile, error) {
	encoder, ok := coders.Encoders(t).Get(p.Encoder.Coder)
	if !ok {
		return compiledProfile{}, types.NewError(types.ErrCodeCoderNotFound,
			fmt.Sprintf("unknown %s encoder %q", t, p.Encoder.Coder), nil)
	}

	// Without a stream the media type is dropped, whatever encoder is set.
	if p.Stream < 0 {
		encoder, _ = coders.Encoders(t).Get(coders.NoneID)
	}
	if encoder.ID() == coders.NoneID {
		return compiledProfile{encoder: coders.Defaults(encoder, types.Stream{}).Mapping}, nil
	}

	if p.Stream >= len(source.Streams) || source.Streams[p.Stream].Type != t {
		return compiledProfile{}, types.NewError(types.ErrCodeStreamNotFound,
			fmt.Sprintf("input %d has no %s stream at position %d", input, t, p.Stream), nil)
	}
	stream := source.Streams[p.Stream]

	out := compiledProfile{mapped: true}
	out.encoder = ffmpeg.MapStream(input, stream.Index)
	out.encoder = append(out.encoder, coders.Resolve(encoder, p.Encoder.Settings, stream).Mapping...)

	if !p.NeedsDecoder() {
		return out, nil
	}
	decoder, ok := coders.Decoders(t).Get(p.Decoder.Coder)
	if !ok {
		return compiledProfile{}, types.NewError(types.ErrCodeCoderNotFound,
			fmt.Sprintf("unknown %s decoder %q", t, p.Decoder.Coder), nil)
	}
	out.decoder = coders.Resolve(decoder, p.Decoder.Settings, stream).Mapping
	return out, nil
}
