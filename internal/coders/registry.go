package coders

import (
	"fmt"
	"slices"

	"github.com/smazurov/relaycoder/internal/types"
)

// Mode controls which coders GetCodersForCodec returns.
type Mode string

const (
	// ModeAny also includes coders that accept any codec without an
	// availability check, e.g. the engine's default decoder.
	ModeAny Mode = "any"
	// ModeExact returns only coders matching the codec exactly.
	ModeExact Mode = "exact"
)

// CodecAny is the codec of coders that handle every input codec.
const CodecAny = "any"

// Registry is an ordered catalog of coders for one media type.
type Registry struct {
	mediaType types.MediaType
	coders    []Coder
	index     map[string]int
	sealed    bool
}

// NewRegistry creates an empty registry for the given media type.
func NewRegistry(mediaType types.MediaType) *Registry {
	return &Registry{
		mediaType: mediaType,
		coders:    make([]Coder, 0),
		index:     make(map[string]int),
	}
}

// Register adds a coder. Registering a duplicate id, a coder of another
// media type, or into a sealed registry is a programming error and panics.
func (r *Registry) Register(c Coder) {
	if r.sealed {
		panic(fmt.Sprintf("coders: register %q into sealed %s registry", c.ID(), r.mediaType))
	}
	if c.Type() != r.mediaType {
		panic(fmt.Sprintf("coders: %q is a %s coder, registry holds %s", c.ID(), c.Type(), r.mediaType))
	}
	if _, exists := r.index[c.ID()]; exists {
		panic(fmt.Sprintf("coders: duplicate %s coder %q", r.mediaType, c.ID()))
	}

	r.index[c.ID()] = len(r.coders)
	r.coders = append(r.coders, c)
}

// Seal makes the registry read-only.
func (r *Registry) Seal() {
	r.sealed = true
}

// Type returns the media type of the registry.
func (r *Registry) Type() types.MediaType {
	return r.mediaType
}

// Get looks up a coder by id.
func (r *Registry) Get(id string) (Coder, bool) {
	if r == nil {
		return nil, false
	}
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.coders[i], true
}

// List returns all coders in registration order.
func (r *Registry) List() []Coder {
	if r == nil {
		return nil
	}
	return slices.Clone(r.coders)
}

// IDs returns all coder ids in registration order.
func (r *Registry) IDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, len(r.coders))
	for i, c := range r.coders {
		ids[i] = c.ID()
	}
	return ids
}

// GetCodersForCodec returns, in registration order, the coders whose codec
// equals codec and whose id is in available. With ModeAny coders for
// CodecAny are included as well and need no availability entry. A nil
// registry has no coders.
func (r *Registry) GetCodersForCodec(codec string, available []string, mode Mode) []Coder {
	if r == nil {
		return nil
	}

	var out []Coder
	for _, c := range r.coders {
		if mode == ModeAny && c.Codec() == CodecAny {
			out = append(out, c)
			continue
		}
		if c.Codec() != codec {
			continue
		}
		if !slices.Contains(available, c.ID()) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Init overlays partial onto the defaults of the coder with the given id.
func (r *Registry) Init(id string, partial Settings) (Settings, bool) {
	c, ok := r.Get(id)
	if !ok {
		return nil, false
	}
	return Merge(c.DefaultSettings(), partial), true
}
