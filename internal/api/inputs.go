package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smazurov/relaycoder/internal/api/models"
	"github.com/smazurov/relaycoder/internal/sources/network"
	"github.com/smazurov/relaycoder/internal/sources/v4l"
	"github.com/smazurov/relaycoder/internal/types"
)

// registerInputRoutes registers the endpoints turning source settings into
// engine inputs.
func (s *Server) registerInputRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "build-network-inputs",
		Method:      http.MethodPost,
		Path:        "/api/inputs/network",
		Summary:     "Network Source Inputs",
		Description: "Build the engine inputs of a network source. Absent settings keep their defaults.",
		Tags:        []string{"inputs"},
		Security:    withAuth(),
		Errors:      []int{400, 401, 422},
	}, func(ctx context.Context, input *models.NetworkInputRequest) (*models.InputsResponse, error) {
		settings, err := network.InitSettings(input.RawBody)
		if err != nil {
			return nil, huma.Error400BadRequest("Invalid network settings", err)
		}
		if err := settings.Validate(); err != nil {
			return nil, toHTTPError(types.NewError(types.ErrCodeInvalidAddress, err.Error(), err))
		}

		inputs := network.BuildInputs(settings, s.getServerConfig())
		return &models.InputsResponse{
			Body: models.InputsData{
				Protocol: network.ClassifyProtocol(inputs[0].Address),
				Inputs:   inputs,
			},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "build-v4l-inputs",
		Method:      http.MethodPost,
		Path:        "/api/inputs/v4l",
		Summary:     "Capture Device Inputs",
		Description: "Build the engine inputs of a Video4Linux2 capture device reported by the engine",
		Tags:        []string{"inputs"},
		Security:    withAuth(),
		Errors:      []int{401, 502},
	}, func(ctx context.Context, input *models.V4LInputRequest) (*models.InputsResponse, error) {
		skills, err := s.backend.Skills(ctx)
		if err != nil {
			return nil, toHTTPError(types.NewError(types.ErrCodeBackendError, "failed to load skills", err))
		}

		settings := v4l.InitSettings(input.Body.Settings(), skills.Devices)
		stream := v4l.Stream(settings)
		return &models.InputsResponse{
			Body: models.InputsData{
				Inputs:  v4l.BuildInputs(settings),
				Stream:  &stream,
				Devices: v4l.Devices(skills.Devices),
			},
		}, nil
	})
}
