package errors

import (
	"errors"
	"net/http"

	"chat-relay/domain"

	"github.com/labstack/echo/v4"
)

// MapToHTTPError translates core errors into echo HTTP errors at the edge.
// Transient pipeline failures never reach here: they are retried internally
// and only observable through the message status.
func MapToHTTPError(err error) error {
	var invalid *domain.InvalidTransitionError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrMessageNotFound), errors.Is(err, ErrRoomNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotAMember):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.As(err, &invalid):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrPipelineStopped):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
