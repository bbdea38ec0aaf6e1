package api

import (
	"net/http"

	"github.com/danukusuma/gerai/internal/domain"
	"github.com/labstack/echo/v4"
)

// errorResponse is the uniform error body.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// httpStatus maps domain error codes onto HTTP status codes.
func httpStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a domain error as JSON. Internal errors are
// logged with their cause and returned with a generic message.
func (h *Handler) respondError(c echo.Context, err error) error {
	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)

	if code == domain.EINTERNAL {
		h.log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("internal error")
		message = "internal error"
	}

	return c.JSON(httpStatus(code), errorResponse{Error: errorBody{
		Code:    code,
		Message: message,
	}})
}
