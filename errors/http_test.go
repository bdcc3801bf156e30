package errors

import (
	"errors"
	"net/http"
	"testing"

	"chat-relay/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestMapToHTTPError(t *testing.T) {
	req := require.New(t)

	cases := []struct {
		err  error
		code int
	}{
		{ErrMessageNotFound, http.StatusNotFound},
		{ErrRoomNotFound, http.StatusNotFound},
		{ErrNotAMember, http.StatusForbidden},
		{&domain.InvalidTransitionError{From: domain.StatusSaved, Event: domain.EventFailure}, http.StatusConflict},
		{ErrPipelineStopped, http.StatusServiceUnavailable},
		{errors.New("anything else"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		mapped := MapToHTTPError(c.err)
		var httpErr *echo.HTTPError
		req.True(errors.As(mapped, &httpErr))
		req.Equal(c.code, httpErr.Code)
	}

	req.NoError(MapToHTTPError(nil))
}
