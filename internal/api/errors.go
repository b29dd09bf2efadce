package api

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smazurov/relaycoder/internal/publication"
	"github.com/smazurov/relaycoder/internal/types"
)

// toHTTPError maps domain errors onto HTTP status codes.
func toHTTPError(err error) error {
	if errors.Is(err, publication.ErrNoService) {
		return huma.Error409Conflict(err.Error())
	}

	var e *types.Error
	if !errors.As(err, &e) {
		return huma.Error500InternalServerError(err.Error())
	}

	switch e.Code {
	case types.ErrCodeChannelNotFound, types.ErrCodeServiceNotFound, types.ErrCodeCoderNotFound:
		return huma.Error404NotFound(e.Message, err)
	case types.ErrCodeStreamNotFound, types.ErrCodeIncompatibleService,
		types.ErrCodeNoSuitableEncoder, types.ErrCodeInvalidAddress:
		return huma.Error422UnprocessableEntity(e.Message, err)
	case types.ErrCodeBackendError:
		return huma.Error502BadGateway(e.Message, err)
	default:
		return huma.Error500InternalServerError(e.Message, err)
	}
}
