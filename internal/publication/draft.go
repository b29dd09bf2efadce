// Package publication drives the creation of one egress for a channel:
// choosing a destination, adjusting the processing and submitting the
// result to the backend.
package publication

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smazurov/relaycoder/internal/egress"
	"github.com/smazurov/relaycoder/internal/events"
	"github.com/smazurov/relaycoder/internal/ffmpeg"
	"github.com/smazurov/relaycoder/internal/metrics"
	"github.com/smazurov/relaycoder/internal/profile"
	"github.com/smazurov/relaycoder/internal/services"
	"github.com/smazurov/relaycoder/internal/types"
)

// Draft is an egress under construction. It is not safe for concurrent use.
type Draft struct {
	channel  string
	backend  egress.Backend
	bus      *events.Bus
	catalog  *services.Registry
	skills   types.Skills
	ingest   egress.Ingest
	sources  []egress.Source
	service  string
	caps     services.Capabilities
	metadata egress.Metadata
	dirty    bool
}

// Option configures a Draft.
type Option func(*Draft)

// WithEventBus publishes draft events on bus.
func WithEventBus(bus *events.Bus) Option {
	return func(d *Draft) {
		d.bus = bus
	}
}

// WithCatalog replaces the built-in service catalog.
func WithCatalog(catalog *services.Registry) Option {
	return func(d *Draft) {
		d.catalog = catalog
	}
}

// Open loads the engine skills and the channel's ingest and returns an
// empty draft.
func Open(ctx context.Context, backend egress.Backend, channel string, opts ...Option) (*Draft, error) {
	skills, err := backend.Skills(ctx)
	if err != nil {
		return nil, types.NewError(types.ErrCodeBackendError, "failed to load skills", err)
	}

	ingest, err := backend.GetIngestMetadata(ctx, channel)
	if err != nil {
		if types.HasCode(err, types.ErrCodeChannelNotFound) {
			return nil, err
		}
		return nil, types.NewError(types.ErrCodeBackendError,
			fmt.Sprintf("failed to load ingest of channel %q", channel), err)
	}

	d := &Draft{
		channel:  channel,
		backend:  backend,
		catalog:  services.Catalog(),
		skills:   skills.Normalize(),
		ingest:   ingest,
		sources:  egress.SourcesFromStreams(ingest.Streams),
		metadata: egress.DefaultMetadata(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Channel returns the channel the draft publishes.
func (d *Draft) Channel() string { return d.channel }

// Skills returns the normalized engine skills.
func (d *Draft) Skills() types.Skills { return d.skills }

// Ingest returns the channel's ingest.
func (d *Draft) Ingest() egress.Ingest { return d.ingest }

// Sources returns the draft's sources.
func (d *Draft) Sources() []egress.Source { return d.sources }

// Service returns the selected service id, empty if none is selected.
func (d *Draft) Service() string { return d.service }

// Capabilities returns what the selected service can be fed with.
func (d *Draft) Capabilities() services.Capabilities { return d.caps }

// Metadata returns a copy of the metadata built so far.
func (d *Draft) Metadata() egress.Metadata { return d.metadata.Clone() }

// Dirty reports whether the draft holds explicit edits.
func (d *Draft) Dirty() bool { return d.dirty }

// Services lists the catalog entries of a category, or all of them for
// services.CategoryAll, marking which ones the engine can feed.
func (d *Draft) Services(filter string) []services.Entry {
	return services.Annotate(d.catalog.ByCategory(filter), d.skills)
}

// SelectService picks the destination and preselects an encoder for the
// first source's video and audio. An empty id resets the draft.
func (d *Draft) SelectService(id string) error {
	if id == "" {
		d.service = ""
		d.caps = services.Capabilities{}
		d.metadata = egress.DefaultMetadata()
		d.dirty = false
		d.publish(events.ServiceSelectedEvent{Channel: d.channel})
		return nil
	}

	s, ok := d.catalog.Get(id)
	if !ok {
		return types.NewError(types.ErrCodeServiceNotFound, fmt.Sprintf("unknown service %q", id), nil)
	}
	if !services.MeetsRequirements(s.Requires, d.skills) {
		return types.NewError(types.ErrCodeIncompatibleService,
			fmt.Sprintf("%s requires codecs or protocols the engine does not provide", s.Name), nil)
	}
	if len(d.sources) == 0 {
		return types.NewError(types.ErrCodeStreamNotFound,
			fmt.Sprintf("channel %q has no ingest streams", d.channel), nil)
	}

	if d.service != s.ID {
		d.metadata.Outputs = []ffmpeg.Output{}
		d.metadata.Settings = map[string]string{}
	}
	d.service = s.ID
	d.caps = services.Conflate(s.Requires, d.skills)

	profiles := append([]egress.Profiles(nil), d.metadata.Profiles...)
	streams := d.sources[0].Streams
	for _, t := range types.MediaTypes {
		next := services.PreselectEncoder(profiles[0].For(t), t, streams, d.caps.Codecs.For(t), d.skills.Encoders.For(t))
		profiles[0] = profiles[0].With(t, next)
		d.publishChange(t, profile.Change{Encoder: next.Encoder, Decoder: next.Decoder, Automatic: true})
	}

	d.metadata.Name = s.Name
	d.metadata.Profiles = profiles
	d.metadata.Streams = egress.CreateOutputStreams(d.sources, profiles)

	metrics.RecordServiceSelected(s.ID)
	d.publish(events.ServiceSelectedEvent{Channel: d.channel, Service: s.ID})
	return nil
}

// ErrNoService is returned by operations that need a selected service.
var ErrNoService = errors.New("no service selected")

// Selector returns the profile selector of a media type for the selected
// service. Profile changes made through it must be handed to Apply.
func (d *Draft) Selector(t types.MediaType) (profile.Selector, error) {
	if d.service == "" {
		return profile.Selector{}, ErrNoService
	}
	if !t.Valid() {
		return profile.Selector{}, fmt.Errorf("unsupported media type %q", t)
	}
	return profile.Selector{
		Type:     t,
		Streams:  d.sources[0].Streams,
		Codecs:   d.caps.Codecs.For(t),
		Encoders: d.skills.Encoders.For(t),
		Decoders: d.skills.Decoders.For(t),
	}, nil
}

// Profile returns the current profile of a media type.
func (d *Draft) Profile(t types.MediaType) profile.Profile {
	return d.metadata.Profiles[0].For(t).Clone()
}

// Offer returns the legal choices for the current profile of a media type.
func (d *Draft) Offer(t types.MediaType) (profile.Offer, error) {
	s, err := d.Selector(t)
	if err != nil {
		return profile.Offer{}, err
	}
	return s.Offer(d.Profile(t))
}

// Apply stores a changed profile and recomputes the output streams. Only
// explicit changes mark the draft dirty.
func (d *Draft) Apply(t types.MediaType, next profile.Profile, change profile.Change) {
	profiles := append([]egress.Profiles(nil), d.metadata.Profiles...)
	profiles[0] = profiles[0].With(t, next)

	d.metadata.Profiles = profiles
	d.metadata.Streams = egress.CreateOutputStreams(d.sources, profiles)
	if !change.Automatic {
		d.dirty = true
	}
	d.publishChange(t, change)
}

// SelectEncoder switches the encoder of a media type.
func (d *Draft) SelectEncoder(t types.MediaType, id string) error {
	s, err := d.Selector(t)
	if err != nil {
		return err
	}
	next, change := s.SelectEncoder(d.Profile(t), id)
	d.Apply(t, next, change)
	return nil
}

// SetEncoderOption changes one encoder setting of a media type.
func (d *Draft) SetEncoderOption(t types.MediaType, key, value string) error {
	s, err := d.Selector(t)
	if err != nil {
		return err
	}
	next, change := s.SetEncoderOption(d.Profile(t), key, value)
	d.Apply(t, next, change)
	return nil
}

// SelectDecoder switches the decoder of a media type. It reports false
// while the encoder does not transcode.
func (d *Draft) SelectDecoder(t types.MediaType, id string) (bool, error) {
	s, err := d.Selector(t)
	if err != nil {
		return false, err
	}
	next, change, ok := s.SelectDecoder(d.Profile(t), id)
	if ok {
		d.Apply(t, next, change)
	}
	return ok, nil
}

// SetServiceSettings renders the service outputs from the given settings.
func (d *Draft) SetServiceSettings(settings map[string]string) error {
	s, ok := d.catalog.Get(d.service)
	if !ok {
		return ErrNoService
	}
	outputs, err := s.CreateOutputs(settings)
	if err != nil {
		return err
	}

	d.metadata.Outputs = outputs
	d.metadata.Settings = make(map[string]string, len(settings))
	for k, v := range settings {
		d.metadata.Settings[k] = v
	}
	d.dirty = true
	return nil
}

// Rename sets the publication name.
func (d *Draft) Rename(name string) {
	d.metadata.Name = name
	d.dirty = true
}

// SetProcessControl replaces the process control settings.
func (d *Draft) SetProcessControl(pc egress.ProcessControl) {
	d.metadata.Control.Process = pc
	d.dirty = true
}

// Done compiles the draft, creates the egress and stores its metadata.
// It returns the egress id. When storing the metadata fails, the id of the
// already created egress is returned with the error.
func (d *Draft) Done(ctx context.Context) (string, error) {
	if d.service == "" {
		return "", ErrNoService
	}

	inputs, outputs, err := egress.CreateInputsOutputs(d.sources, d.metadata.Profiles, d.metadata.Outputs)
	if err != nil {
		metrics.RecordEgressFailed(d.service, "compile")
		return "", fmt.Errorf("failed to compile %s egress: %w", d.service, err)
	}

	id, err := d.backend.CreateEgress(ctx, d.channel, d.service, inputs, outputs, d.metadata.Control)
	if err != nil {
		metrics.RecordEgressFailed(d.service, "create")
		return "", types.NewError(types.ErrCodeBackendError, "failed to create publication service", err)
	}

	if err := d.backend.SetEgressMetadata(ctx, d.channel, id, d.metadata.Clone()); err != nil {
		metrics.RecordEgressFailed(d.service, "metadata")
		return id, types.NewError(types.ErrCodeBackendError, "failed to store publication metadata", err)
	}

	d.dirty = false
	metrics.RecordEgressCreated(d.service)
	d.publish(events.EgressCreatedEvent{
		Channel:  d.channel,
		EgressID: id,
		Service:  d.service,
		Name:     d.metadata.Name,
	})
	return id, nil
}

func (d *Draft) publishChange(t types.MediaType, change profile.Change) {
	d.publish(events.ProfileChangedEvent{
		Channel:   d.channel,
		MediaType: string(t),
		Encoder:   change.Encoder.Coder,
		Decoder:   change.Decoder.Coder,
		Automatic: change.Automatic,
	})
}

func (d *Draft) publish(ev events.Event) {
	if d.bus == nil {
		return
	}
	now := time.Now().UTC().Format(time.RFC3339)
	switch e := ev.(type) {
	case events.ServiceSelectedEvent:
		e.Timestamp = now
		ev = e
	case events.ProfileChangedEvent:
		e.Timestamp = now
		ev = e
	case events.EgressCreatedEvent:
		e.Timestamp = now
		ev = e
	}
	d.bus.Publish(ev)
}
