package api

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/danielgtaylor/huma/v2"
	"github.com/samber/lo"

	"github.com/smazurov/relaycoder/internal/api/models"
	"github.com/smazurov/relaycoder/internal/coders"
	"github.com/smazurov/relaycoder/internal/egress"
	"github.com/smazurov/relaycoder/internal/publication"
	"github.com/smazurov/relaycoder/internal/store"
	"github.com/smazurov/relaycoder/internal/types"
)

// registerPublicationRoutes registers the offer and publication endpoints.
func (s *Server) registerPublicationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-offer",
		Method:      http.MethodGet,
		Path:        "/api/channels/{channel}/offers/{service}",
		Summary:     "Publication Offer",
		Description: "Preselect the profiles of a channel for a service and list the legal encoder and decoder choices",
		Tags:        []string{"publications"},
		Security:    withAuth(),
		Errors:      []int{401, 404, 422, 502},
	}, func(ctx context.Context, input *models.OfferRequest) (*models.OfferResponse, error) {
		draft, err := publication.Open(ctx, s.backend, input.Channel, publication.WithCatalog(s.catalog))
		if err != nil {
			return nil, toHTTPError(err)
		}
		if err := draft.SelectService(input.Service); err != nil {
			return nil, toHTTPError(err)
		}

		service, _ := s.catalog.Get(input.Service)
		return &models.OfferResponse{
			Body: models.OfferData{
				Service:      draft.Service(),
				Name:         draft.Metadata().Name,
				Fields:       service.Fields(),
				Capabilities: draft.Capabilities(),
				Video:        mediaOffer(draft, types.MediaVideo),
				Audio:        mediaOffer(draft, types.MediaAudio),
			},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "create-publication",
		Method:      http.MethodPost,
		Path:        "/api/channels/{channel}/publications",
		Summary:     "Create Publication",
		Description: "Select a service for a channel, apply profile edits and create the egress process",
		Tags:        []string{"publications"},
		Security:    withAuth(),
		Errors:      []int{400, 401, 404, 409, 422, 502},
	}, func(ctx context.Context, input *models.PublicationRequest) (*models.PublicationResponse, error) {
		body := input.Body
		draft, err := publication.Open(ctx, s.backend, input.Channel,
			publication.WithEventBus(s.eventBus), publication.WithCatalog(s.catalog))
		if err != nil {
			return nil, toHTTPError(err)
		}
		if err := draft.SelectService(body.Service); err != nil {
			return nil, toHTTPError(err)
		}

		if err := applyEdit(draft, types.MediaVideo, body.Video); err != nil {
			return nil, toHTTPError(err)
		}
		if err := applyEdit(draft, types.MediaAudio, body.Audio); err != nil {
			return nil, toHTTPError(err)
		}

		if err := draft.SetServiceSettings(body.Settings); err != nil {
			return nil, toHTTPError(err)
		}
		if body.Name != "" {
			draft.Rename(body.Name)
		}
		if body.Control != nil {
			draft.SetProcessControl(*body.Control)
		}

		id, err := draft.Done(ctx)
		if err != nil {
			if id != "" {
				s.logger.Warn("Egress created without metadata", "channel", input.Channel, "id", id, "error", err)
			} else {
				s.logger.Error("Failed to create publication", "channel", input.Channel, "service", body.Service, "error", err)
			}
			return nil, toHTTPError(err)
		}

		s.logger.Info("Publication created", "channel", input.Channel, "service", body.Service, "id", id)
		return &models.PublicationResponse{Body: s.publicationData(id, draft.Metadata())}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "list-publications",
		Method:      http.MethodGet,
		Path:        "/api/channels/{channel}/publications",
		Summary:     "List Publications",
		Description: "List the publications created for a channel",
		Tags:        []string{"publications"},
		Security:    withAuth(),
		Errors:      []int{401, 404},
	}, func(ctx context.Context, input *models.ChannelRequest) (*models.PublicationListResponse, error) {
		if _, err := s.backend.GetIngestMetadata(ctx, input.Channel); err != nil {
			return nil, toHTTPError(err)
		}

		list := lo.Map(s.backend.Egresses(input.Channel), func(e store.Egress, _ int) models.PublicationData {
			metadata, err := s.backend.EgressMetadata(e.ID)
			if err != nil {
				s.logger.Warn("Unreadable publication metadata", "id", e.ID, "error", err)
			}
			return s.publicationData(e.ID, metadata)
		})
		return &models.PublicationListResponse{
			Body: models.PublicationListData{Publications: list, Count: len(list)},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-publication",
		Method:      http.MethodGet,
		Path:        "/api/channels/{channel}/publications/{id}",
		Summary:     "Get Publication",
		Description: "Get a publication with its stored metadata and engine command",
		Tags:        []string{"publications"},
		Security:    withAuth(),
		Errors:      []int{401, 404, 500},
	}, func(ctx context.Context, input *models.PublicationIDRequest) (*models.PublicationResponse, error) {
		e, ok := s.backend.GetEgress(input.ID)
		if !ok || e.Channel != input.Channel {
			return nil, huma.Error404NotFound(fmt.Sprintf("Publication %q not found", input.ID))
		}
		metadata, err := s.backend.EgressMetadata(e.ID)
		if err != nil {
			return nil, huma.Error500InternalServerError("Unreadable publication metadata", err)
		}
		return &models.PublicationResponse{Body: s.publicationData(e.ID, metadata)}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-publication",
		Method:      http.MethodDelete,
		Path:        "/api/channels/{channel}/publications/{id}",
		Summary:     "Delete Publication",
		Description: "Remove a publication and its egress process",
		Tags:        []string{"publications"},
		Security:    withAuth(),
		Errors:      []int{401, 404, 500},
	}, func(ctx context.Context, input *models.PublicationIDRequest) (*struct{}, error) {
		e, ok := s.backend.GetEgress(input.ID)
		if !ok || e.Channel != input.Channel {
			return nil, huma.Error404NotFound(fmt.Sprintf("Publication %q not found", input.ID))
		}
		if err := s.backend.RemoveEgress(e.ID); err != nil {
			return nil, huma.Error500InternalServerError("Failed to remove publication", err)
		}
		s.logger.Info("Publication removed", "channel", input.Channel, "id", e.ID)
		return nil, nil
	})
}

func (s *Server) publicationData(id string, metadata egress.Metadata) models.PublicationData {
	data := models.PublicationData{ID: id, Metadata: metadata}
	if e, ok := s.backend.GetEgress(id); ok {
		data.Channel = e.Channel
		data.Service = e.Service
		data.Command = e.Command.String()
	}
	return data
}

// applyEdit applies the encoder, option and decoder edits of one media
// type in that order. An explicitly chosen encoder must be offerable.
func applyEdit(draft *publication.Draft, t types.MediaType, edit *models.ProfileEdit) error {
	if edit == nil {
		return nil
	}

	if edit.Encoder != "" {
		if err := draft.SelectEncoder(t, edit.Encoder); err != nil {
			return err
		}
		offer, err := draft.Offer(t)
		if err != nil {
			return err
		}
		offerable := slices.ContainsFunc(offer.Encoders, func(c coders.Coder) bool { return c.ID() == edit.Encoder })
		if edit.Encoder != coders.NoneID && (!offer.Suitable || !offerable) {
			return types.NewError(types.ErrCodeNoSuitableEncoder,
				fmt.Sprintf("%s encoder %q cannot feed the service", t, edit.Encoder), nil)
		}
	}

	keys := lo.Keys(edit.Options)
	slices.Sort(keys)
	for _, key := range keys {
		if err := draft.SetEncoderOption(t, key, edit.Options[key]); err != nil {
			return err
		}
	}

	if edit.Decoder != "" {
		if _, ok := coders.Decoders(t).Get(edit.Decoder); !ok {
			return types.NewError(types.ErrCodeCoderNotFound,
				fmt.Sprintf("unknown %s decoder %q", t, edit.Decoder), nil)
		}
		applied, err := draft.SelectDecoder(t, edit.Decoder)
		if err != nil {
			return err
		}
		if !applied {
			return types.NewError(types.ErrCodeNoSuitableEncoder,
				fmt.Sprintf("%s encoder %q does not decode its stream", t, draft.Profile(t).Encoder.Coder), nil)
		}
	}
	return nil
}

func mediaOffer(draft *publication.Draft, t types.MediaType) models.MediaOffer {
	mo := models.MediaOffer{
		Profile:  draft.Profile(t),
		Encoders: []string{},
		Decoders: []string{},
	}

	offer, err := draft.Offer(t)
	if err != nil {
		mo.Error = err.Error()
		return mo
	}

	stream := offer.Stream
	mo.Stream = &stream
	mo.Encoders = coderIDs(offer.Encoders)
	mo.Decoders = coderIDs(offer.Decoders)
	mo.Suitable = offer.Suitable
	mo.ChooseDecoder = offer.ChooseDecoder()
	return mo
}

func coderIDs(list []coders.Coder) []string {
	return lo.Map(list, func(c coders.Coder, _ int) string { return c.ID() })
}
