package profile

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/smazurov/relaycoder/internal/coders"
	"github.com/smazurov/relaycoder/internal/types"
)

// Selector resolves encoder and decoder choices for one media type.
type Selector struct {
	// Type is the media type the selector handles.
	Type types.MediaType
	// Streams are the source streams a profile refers to by position.
	Streams []types.Stream
	// Codecs are the codecs the destination accepts.
	Codecs []string
	// Encoders and Decoders are the coder ids the engine provides.
	Encoders []string
	Decoders []string
	// OnChange, if set, is called with every change.
	OnChange ChangeFunc
}

// Offer lists the choices that are legal for a profile.
type Offer struct {
	Stream   types.Stream
	Encoders []coders.Coder
	// Encoder is the selected encoder, nil if it cannot be resolved.
	Encoder coders.Coder
	// Decoders is empty when the selected encoder does not transcode.
	Decoders []coders.Coder
	// Decoder is the selected decoder, nil if it cannot be resolved.
	Decoder coders.Coder
	// Suitable is false when no encoder can be offered or the selected
	// one cannot be resolved.
	Suitable bool
}

// ChooseDecoder reports whether a decoder choice is worth presenting.
func (o Offer) ChooseDecoder() bool {
	return len(o.Decoders) >= 2
}

// Stream returns the stream a profile refers to. The stream must exist and
// match the selector's media type.
func (s Selector) Stream(p Profile) (types.Stream, error) {
	if p.Stream < 0 || p.Stream >= len(s.Streams) {
		return types.Stream{}, types.NewError(types.ErrCodeStreamNotFound,
			fmt.Sprintf("no stream at position %d", p.Stream), nil)
	}

	stream := s.Streams[p.Stream]
	if stream.Type != s.Type {
		return types.Stream{}, types.NewError(types.ErrCodeStreamNotFound,
			fmt.Sprintf("stream %d is %s, want %s", p.Stream, stream.Type, s.Type), nil)
	}
	return stream, nil
}

// Offerable reports whether an encoder may be offered for the stream. The
// encoder must be available and produce an accepted codec. Passthrough is
// instead gated on the stream's own codec being accepted.
func (s Selector) Offerable(c coders.Coder, stream types.Stream) bool {
	if !slices.Contains(s.Encoders, c.ID()) {
		return false
	}
	if c.ID() == coders.CopyID {
		return slices.Contains(s.Codecs, stream.Codec)
	}
	return slices.Contains(s.Codecs, c.Codec())
}

// Offer computes the legal encoder and decoder candidates for p.
func (s Selector) Offer(p Profile) (Offer, error) {
	stream, err := s.Stream(p)
	if err != nil {
		return Offer{}, err
	}

	encoders := coders.Encoders(s.Type)
	decoders := coders.Decoders(s.Type)
	if encoders == nil || decoders == nil {
		return Offer{}, fmt.Errorf("unsupported media type %q", s.Type)
	}

	offer := Offer{Stream: stream}
	offer.Encoders = lo.Filter(encoders.List(), func(c coders.Coder, _ int) bool {
		return s.Offerable(c, stream)
	})

	if c, ok := encoders.Get(p.Encoder.Coder); ok && slices.Contains(s.Encoders, c.ID()) {
		offer.Encoder = c
	}

	if offer.Encoder == nil || len(offer.Encoders) == 0 {
		return offer, nil
	}
	offer.Suitable = true

	if coders.IsPassthrough(offer.Encoder.ID()) {
		return offer, nil
	}

	offer.Decoders = decoders.GetCodersForCodec(stream.Codec, s.Decoders, coders.ModeAny)
	if c, ok := decoders.Get(p.Decoder.Coder); ok && s.decoderUsable(c) {
		offer.Decoder = c
	}

	return offer, nil
}

func (s Selector) decoderUsable(c coders.Coder) bool {
	return c.Codec() == coders.CodecAny || slices.Contains(s.Decoders, c.ID())
}

// stream returns the referenced stream or a zero stream.
func (s Selector) stream(p Profile) types.Stream {
	stream, _ := s.Stream(p)
	return stream
}

func (s Selector) emit(p Profile, automatic bool) Change {
	change := Change{
		Encoder:   p.Encoder.Clone(),
		Decoder:   p.Decoder.Clone(),
		Automatic: automatic,
	}
	if s.OnChange != nil {
		s.OnChange(change)
	}
	return change
}

// SelectEncoder switches the encoder. A known encoder starts from its
// defaults for the current stream; an unknown id keeps the old settings.
func (s Selector) SelectEncoder(p Profile, id string) (Profile, Change) {
	next := p.Clone()
	next.Encoder.Coder = id

	if c, ok := coders.Encoders(s.Type).Get(id); ok {
		d := coders.Defaults(c, s.stream(p))
		next.Encoder.Settings = d.Settings
		next.Encoder.Mapping = d.Mapping
	}

	return next, s.emit(next, false)
}

// ChangeEncoderSettings replaces the encoder settings and recomputes the
// mapping.
func (s Selector) ChangeEncoderSettings(p Profile, settings coders.Settings) (Profile, Change) {
	next := p.Clone()
	if c, ok := coders.Encoders(s.Type).Get(p.Encoder.Coder); ok {
		r := coders.Resolve(c, settings, s.stream(p))
		next.Encoder.Settings = r.Settings
		next.Encoder.Mapping = r.Mapping
	} else {
		next.Encoder.Settings = settings.Clone()
	}
	return next, s.emit(next, false)
}

// SetEncoderOption changes a single encoder setting, including the fields
// the encoder derives from it.
func (s Selector) SetEncoderOption(p Profile, key, value string) (Profile, Change) {
	next := p.Clone()
	if c, ok := coders.Encoders(s.Type).Get(p.Encoder.Coder); ok {
		r := coders.Set(c, p.Encoder.Settings, key, value, s.stream(p))
		next.Encoder.Settings = r.Settings
		next.Encoder.Mapping = r.Mapping
	} else {
		next.Encoder.Settings = next.Encoder.Settings.With(key, value)
	}
	return next, s.emit(next, false)
}

// SelectDecoder switches the decoder. It reports false and leaves p
// unchanged while the encoder does not transcode.
func (s Selector) SelectDecoder(p Profile, id string) (Profile, Change, bool) {
	if !p.NeedsDecoder() {
		return p, Change{}, false
	}

	next := p.Clone()
	next.Decoder.Coder = id

	if c, ok := coders.Decoders(s.Type).Get(id); ok {
		d := coders.Defaults(c, s.stream(p))
		next.Decoder.Settings = d.Settings
		next.Decoder.Mapping = d.Mapping
	}

	return next, s.emit(next, false), true
}

// ChangeDecoderSettings replaces the decoder settings. It reports false and
// leaves p unchanged while the encoder does not transcode.
func (s Selector) ChangeDecoderSettings(p Profile, settings coders.Settings) (Profile, Change, bool) {
	if !p.NeedsDecoder() {
		return p, Change{}, false
	}

	next := s.resolveDecoder(p.Clone(), settings)
	return next, s.emit(next, false), true
}

func (s Selector) resolveDecoder(p Profile, settings coders.Settings) Profile {
	if c, ok := coders.Decoders(s.Type).Get(p.Decoder.Coder); ok {
		r := coders.Resolve(c, settings, s.stream(p))
		p.Decoder.Settings = r.Settings
		p.Decoder.Mapping = r.Mapping
	} else {
		p.Decoder.Settings = settings.Clone()
	}
	return p
}

// Initialize completes the current settings with defaults, recomputes both
// mappings and emits an automatic change. Call it once when a profile is
// first resolved.
func (s Selector) Initialize(p Profile) (Profile, Change) {
	next := p.Clone()
	if c, ok := coders.Encoders(s.Type).Get(p.Encoder.Coder); ok {
		r := coders.Resolve(c, p.Encoder.Settings, s.stream(p))
		next.Encoder.Settings = r.Settings
		next.Encoder.Mapping = r.Mapping
	}
	if next.NeedsDecoder() {
		next = s.resolveDecoder(next, p.Decoder.Settings)
	}
	return next, s.emit(next, true)
}
