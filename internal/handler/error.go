package handler

import (
	"errors"
	"net/http"

	"circles-backend/internal/dto"
	"circles-backend/internal/errorx"
	"circles-backend/internal/logger"

	"github.com/labstack/echo/v4"
)

func statusFor(code errorx.Code) int {
	switch code {
	case errorx.BadRequest:
		return http.StatusBadRequest
	case errorx.NotFound:
		return http.StatusNotFound
	case errorx.Conflict:
		return http.StatusConflict
	case errorx.Invalid:
		return http.StatusUnprocessableEntity
	case errorx.Declined:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// toResponse maps err onto a status and a JSON body. Unknown errors are
// reported as internal without leaking their text.
func toResponse(err error) (int, dto.ErrorResponse) {
	var (
		validation *errorx.ValidationError
		notFound   *errorx.NotFoundError
		coded      *errorx.Error
		httpErr    *echo.HTTPError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity, dto.ErrorResponse{
			Code:    int(errorx.Invalid),
			Message: "validation failed",
			Fields:  validation.Fields,
		}
	case errors.As(err, &notFound):
		return http.StatusNotFound, dto.ErrorResponse{Code: int(errorx.NotFound), Message: notFound.Error()}
	case errors.As(err, &coded):
		return statusFor(coded.Code), dto.ErrorResponse{Code: int(coded.Code), Message: err.Error()}
	case errors.As(err, &httpErr):
		msg := http.StatusText(httpErr.Code)
		if s, ok := httpErr.Message.(string); ok {
			msg = s
		}
		code := errorx.Internal
		if httpErr.Code < http.StatusInternalServerError {
			code = errorx.BadRequest
		}
		return httpErr.Code, dto.ErrorResponse{Code: int(code), Message: msg}
	default:
		return http.StatusInternalServerError, dto.ErrorResponse{Code: int(errorx.Internal), Message: "internal server error"}
	}
}

// HTTPErrorHandler writes every error returned by a handler as JSON.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := toResponse(err)
	if status >= http.StatusInternalServerError {
		logger.Error("%s %s: %v", c.Request().Method, c.Path(), err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		logger.Error("write error response: %v", err)
	}
}

func badRequest(msg string) error {
	return errorx.New(errorx.BadRequest, "%s", msg)
}
