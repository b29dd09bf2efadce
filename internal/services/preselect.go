package services

import (
	"slices"

	"github.com/smazurov/relaycoder/internal/coders"
	"github.com/smazurov/relaycoder/internal/profile"
	"github.com/smazurov/relaycoder/internal/types"
)

// PreselectEncoder picks an encoder for the first stream of mediaType.
// Passthrough wins when the stream's codec is already allowed. Otherwise
// the first registered transcoding encoder whose codec is allowed and
// which is available is chosen, falling back to dropping the stream.
// The chosen encoder starts from its defaults for the stream.
func PreselectEncoder(current profile.Profile, mediaType types.MediaType, streams []types.Stream, allowed, available []string) profile.Profile {
	next := current.Clone()

	position := slices.IndexFunc(streams, func(s types.Stream) bool { return s.Type == mediaType })
	next.Stream = position
	if position < 0 {
		return next
	}
	stream := streams[position]

	selector := profile.Selector{
		Type:     mediaType,
		Streams:  streams,
		Codecs:   allowed,
		Encoders: available,
	}

	id := coders.NoneID
	encoders := coders.Encoders(mediaType)
	if c, ok := encoders.Get(coders.CopyID); ok && selector.Offerable(c, stream) {
		id = coders.CopyID
	} else {
		for _, c := range encoders.List() {
			if coders.IsPassthrough(c.ID()) {
				continue
			}
			if selector.Offerable(c, stream) {
				id = c.ID()
				break
			}
		}
	}

	next, _ = selector.SelectEncoder(next, id)
	if next.NeedsDecoder() {
		next, _, _ = selector.SelectDecoder(next, coders.DefaultDecoderID)
	}
	return next
}
