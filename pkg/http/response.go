package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the wire shape for failed requests.
type ErrorBody struct {
	Error string `json:"error"`
}

// OKResponse writes data as-is with status 200. The forecast report's wire
// shape is a compatibility contract, so no envelope is added.
func OKResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// ErrorResponse writes the `{"error": ...}` shape with the given status.
func ErrorResponse(c echo.Context, status int, msg string) error {
	return c.JSON(status, ErrorBody{Error: msg})
}

// BadRequestResponse writes a 400 error.
func BadRequestResponse(c echo.Context, msg string) error {
	return ErrorResponse(c, http.StatusBadRequest, msg)
}

// UnprocessableResponse writes a 422 error.
func UnprocessableResponse(c echo.Context, msg string) error {
	return ErrorResponse(c, http.StatusUnprocessableEntity, msg)
}

// TooManyRequestsResponse writes a 429 error.
func TooManyRequestsResponse(c echo.Context, msg string) error {
	return ErrorResponse(c, http.StatusTooManyRequests, msg)
}

// InternalErrorResponse writes a 500 error preserving the underlying message
// for diagnostics.
func InternalErrorResponse(c echo.Context, msg string) error {
	return ErrorResponse(c, http.StatusInternalServerError, msg)
}
