// Package services knows the publication destinations, what each of them
// accepts and how that intersects with what the engine can do.
package services

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/smazurov/relaycoder/internal/types"
)

// Wildcard is the wire form of an unrestricted Set.
const Wildcard = "any"

// Set is either the wildcard or an ordered list of names.
type Set struct {
	Any  bool
	List []string
}

// AnyOf returns the wildcard set.
func AnyOf() Set {
	return Set{Any: true}
}

// Of returns a set holding exactly the given names.
func Of(names ...string) Set {
	return Set{List: names}
}

// Intersect keeps the names of s also found in available, in the order of
// s. The wildcard yields available unchanged.
func (s Set) Intersect(available []string) []string {
	if s.Any {
		return slices.Clone(available)
	}
	out := make([]string, 0, len(s.List))
	for _, name := range s.List {
		if slices.Contains(available, name) && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

// MarshalJSON writes the wildcard as "any" and lists as arrays.
func (s Set) MarshalJSON() ([]byte, error) {
	if s.Any {
		return json.Marshal(Wildcard)
	}
	if s.List == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.List)
}

// UnmarshalJSON accepts "any" or an array of names.
func (s *Set) UnmarshalJSON(data []byte) error {
	var word string
	if err := json.Unmarshal(data, &word); err == nil {
		if word != Wildcard {
			return fmt.Errorf("invalid set %q, want %q or a list", word, Wildcard)
		}
		*s = AnyOf()
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("invalid set: %w", err)
	}
	*s = Of(list...)
	return nil
}

// CodecRequirement lists the accepted codecs per media type.
type CodecRequirement struct {
	Audio Set `json:"audio"`
	Video Set `json:"video"`
}

// For returns the set of a media type.
func (c CodecRequirement) For(t types.MediaType) Set {
	if t == types.MediaAudio {
		return c.Audio
	}
	return c.Video
}

// Requirement is what a destination accepts.
type Requirement struct {
	Codecs    CodecRequirement `json:"codecs"`
	Protocols Set              `json:"protocols"`
	Formats   []string         `json:"formats,omitempty"`
}

// Capabilities is the part of the engine's skills a destination can use.
type Capabilities struct {
	Codecs    types.MediaLists `json:"codecs"`
	Protocols []string         `json:"protocols"`
}

// Conflate intersects a requirement with the engine's skills. Wildcards
// defer to the skills in their order; explicit lists keep the
// requirement's order.
func Conflate(req Requirement, skills types.Skills) Capabilities {
	return Capabilities{
		Codecs: types.MediaLists{
			Audio: req.Codecs.Audio.Intersect(skills.Codecs.Audio),
			Video: req.Codecs.Video.Intersect(skills.Codecs.Video),
		},
		Protocols: req.Protocols.Intersect(skills.Protocols.Output),
	}
}

// MeetsRequirements reports whether every constrained media type and the
// protocols have at least one match in the skills.
func MeetsRequirements(req Requirement, skills types.Skills) bool {
	caps := Conflate(req, skills)
	for _, t := range types.MediaTypes {
		if req.Codecs.For(t).Any {
			continue
		}
		if len(caps.Codecs.For(t)) == 0 {
			return false
		}
	}
	if !req.Protocols.Any && len(caps.Protocols) == 0 {
		return false
	}
	return true
}
