package api

import (
	"context"
	"net/http"
	"slices"

	"github.com/danielgtaylor/huma/v2"
	"github.com/samber/lo"

	"github.com/smazurov/relaycoder/internal/api/models"
	"github.com/smazurov/relaycoder/internal/coders"
	"github.com/smazurov/relaycoder/internal/metrics"
	"github.com/smazurov/relaycoder/internal/services"
	"github.com/smazurov/relaycoder/internal/types"
)

// registerCatalogRoutes registers the engine skills, service catalog and
// coder endpoints.
func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-skills",
		Method:      http.MethodGet,
		Path:        "/api/skills",
		Summary:     "Engine Skills",
		Description: "Get the codecs, coders, protocols and devices the transcoding engine provides",
		Tags:        []string{"engine"},
		Security:    withAuth(),
		Errors:      []int{401, 502},
	}, func(ctx context.Context, input *struct{}) (*models.SkillsResponse, error) {
		skills, err := s.backend.Skills(ctx)
		if err != nil {
			return nil, toHTTPError(types.NewError(types.ErrCodeBackendError, "failed to load skills", err))
		}
		return &models.SkillsResponse{Body: skills.Normalize()}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "list-services",
		Method:      http.MethodGet,
		Path:        "/api/services",
		Summary:     "List Services",
		Description: "List the publication services of a category, marked enabled when the engine can feed them",
		Tags:        []string{"services"},
		Security:    withAuth(),
		Errors:      []int{401, 502},
	}, func(ctx context.Context, input *models.ServicesRequest) (*models.ServicesResponse, error) {
		skills, err := s.backend.Skills(ctx)
		if err != nil {
			return nil, toHTTPError(types.NewError(types.ErrCodeBackendError, "failed to load skills", err))
		}
		entries := services.Annotate(s.catalog.ByCategory(input.Category), skills.Normalize())
		return &models.ServicesResponse{
			Body: models.ServiceListData{Services: entries, Count: len(entries)},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-service-counts",
		Method:      http.MethodGet,
		Path:        "/api/services/counts",
		Summary:     "Service Counters",
		Description: "Get how often each service was selected and published since startup",
		Tags:        []string{"services"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(ctx context.Context, input *struct{}) (*models.ServiceCountsResponse, error) {
		return &models.ServiceCountsResponse{
			Body: models.ServiceCountsData{Services: metrics.GetAllServiceCounts()},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "list-coders",
		Method:      http.MethodGet,
		Path:        "/api/coders/{type}",
		Summary:     "List Coders",
		Description: "List the known encoders and decoders of a media type with their defaults",
		Tags:        []string{"engine"},
		Security:    withAuth(),
		Errors:      []int{401, 422, 502},
	}, func(ctx context.Context, input *models.CodersRequest) (*models.CodersResponse, error) {
		t := types.MediaType(input.Type)
		skills, err := s.backend.Skills(ctx)
		if err != nil {
			return nil, toHTTPError(types.NewError(types.ErrCodeBackendError, "failed to load skills", err))
		}
		skills = skills.Normalize()

		return &models.CodersResponse{
			Body: models.CoderListData{
				Encoders: coderInfos(coders.Encoders(t).List(), skills.Encoders.For(t)),
				Decoders: coderInfos(coders.Decoders(t).List(), skills.Decoders.For(t)),
			},
		}, nil
	})
}

func coderInfos(list []coders.Coder, available []string) []models.CoderInfo {
	return lo.Map(list, func(c coders.Coder, _ int) models.CoderInfo {
		defaults := c.DefaultSettings()
		return models.CoderInfo{
			ID:        c.ID(),
			Name:      c.Name(),
			Codec:     c.Codec(),
			HWAccel:   c.HWAccel(),
			Available: c.Codec() == coders.CodecAny || slices.Contains(available, c.ID()),
			Defaults:  defaults,
			Summary:   c.Summarize(defaults),
		}
	})
}
