package services

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/samber/lo"

	"github.com/smazurov/relaycoder/internal/ffmpeg"
	"github.com/smazurov/relaycoder/internal/types"
)

// Category groups services in the catalog.
type Category string

const (
	CategoryPlatform  Category = "platform"
	CategorySoftware  Category = "software"
	CategoryUniversal Category = "universal"
)

// CategoryAll selects every category when filtering.
const CategoryAll = "all"

// Template describes one output of a service. Address may refer to
// service settings as {name}.
type Template struct {
	Address string      `json:"address"`
	Options ffmpeg.Args `json:"options"`
}

// Service is a publication destination.
type Service struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Category Category    `json:"category"`
	Requires Requirement `json:"requires"`
	Outputs  []Template  `json:"outputs"`
}

var placeholder = regexp.MustCompile(`\{([a-z_]+)\}`)

// Fields returns the setting names the service's addresses refer to, in
// order of first use.
func (s Service) Fields() []string {
	var fields []string
	for _, t := range s.Outputs {
		for _, m := range placeholder.FindAllStringSubmatch(t.Address, -1) {
			fields = append(fields, m[1])
		}
	}
	return lo.Uniq(fields)
}

// CreateOutputs renders the service's outputs from its settings. Every
// referenced setting must be non-empty.
func (s Service) CreateOutputs(settings map[string]string) ([]ffmpeg.Output, error) {
	for _, field := range s.Fields() {
		if settings[field] == "" {
			return nil, types.NewError(types.ErrCodeInvalidAddress,
				fmt.Sprintf("%s requires %q", s.Name, field), nil)
		}
	}

	outputs := make([]ffmpeg.Output, 0, len(s.Outputs))
	for i, t := range s.Outputs {
		address := placeholder.ReplaceAllStringFunc(t.Address, func(m string) string {
			return settings[m[1:len(m)-1]]
		})
		outputs = append(outputs, ffmpeg.Output{
			ID:      "output_" + strconv.Itoa(i),
			Address: address,
			Options: t.Options.Clone(),
		})
	}
	return outputs, nil
}

// Registry holds services in registration order.
type Registry struct {
	services []Service
	index    map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds a service. Registering an id twice panics.
func (r *Registry) Register(s Service) {
	if _, exists := r.index[s.ID]; exists {
		panic(fmt.Sprintf("services: duplicate service %q", s.ID))
	}
	r.index[s.ID] = len(r.services)
	r.services = append(r.services, s)
}

// Get looks a service up by id.
func (r *Registry) Get(id string) (Service, bool) {
	i, ok := r.index[id]
	if !ok {
		return Service{}, false
	}
	return r.services[i], true
}

// IDs returns the service ids in registration order.
func (r *Registry) IDs() []string {
	return lo.Map(r.services, func(s Service, _ int) string { return s.ID })
}

// List returns the services in registration order.
func (r *Registry) List() []Service {
	out := make([]Service, len(r.services))
	copy(out, r.services)
	return out
}

// ByCategory returns the services of one category, or all of them for
// CategoryAll.
func (r *Registry) ByCategory(filter string) []Service {
	if filter == CategoryAll {
		return r.List()
	}
	return lo.Filter(r.services, func(s Service, _ int) bool {
		return string(s.Category) == filter
	})
}

// Entry is a catalog row annotated for the given skills.
type Entry struct {
	Service
	Enabled bool `json:"enabled"`
}

// Annotate marks which services the skills can feed.
func Annotate(services []Service, skills types.Skills) []Entry {
	return lo.Map(services, func(s Service, _ int) Entry {
		return Entry{Service: s, Enabled: MeetsRequirements(s.Requires, skills)}
	})
}
