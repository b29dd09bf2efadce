package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smazurov/relaycoder/internal/api/models"
)

// registerChannelRoutes registers the channel ingest endpoints.
func (s *Server) registerChannelRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-channels",
		Method:      http.MethodGet,
		Path:        "/api/channels",
		Summary:     "List Channels",
		Description: "List the channels publications can be created for",
		Tags:        []string{"channels"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(ctx context.Context, input *struct{}) (*models.ChannelListResponse, error) {
		channels := s.backend.Channels()
		return &models.ChannelListResponse{
			Body: models.ChannelListData{Channels: channels, Count: len(channels)},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-channel",
		Method:      http.MethodGet,
		Path:        "/api/channels/{channel}",
		Summary:     "Get Channel",
		Description: "Get the ingest of a channel",
		Tags:        []string{"channels"},
		Security:    withAuth(),
		Errors:      []int{401, 404},
	}, func(ctx context.Context, input *models.ChannelRequest) (*models.ChannelResponse, error) {
		ingest, err := s.backend.GetIngestMetadata(ctx, input.Channel)
		if err != nil {
			return nil, toHTTPError(err)
		}
		return &models.ChannelResponse{
			Body: models.ChannelData{ID: input.Channel, Ingest: ingest},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "put-channel",
		Method:      http.MethodPut,
		Path:        "/api/channels/{channel}",
		Summary:     "Set Channel",
		Description: "Create or replace the ingest of a channel",
		Tags:        []string{"channels"},
		Security:    withAuth(),
		Errors:      []int{400, 401, 500},
	}, func(ctx context.Context, input *models.PutChannelRequest) (*models.ChannelResponse, error) {
		if err := s.backend.PutChannel(input.Channel, input.Body); err != nil {
			s.logger.Error("Failed to store channel", "channel", input.Channel, "error", err)
			return nil, huma.Error500InternalServerError("Failed to store channel", err)
		}
		s.logger.Info("Channel stored", "channel", input.Channel, "streams", len(input.Body.Streams))
		return &models.ChannelResponse{
			Body: models.ChannelData{ID: input.Channel, Ingest: input.Body},
		}, nil
	})
}
