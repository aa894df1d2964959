package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Render turns any error returned by a handler or middleware into a status and JSON body.
func Render(err error) (int, interface{}) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusUnprocessableEntity, ErrorResponse{
			Message: "Validation failed",
			Errors:  validationErr.Errors,
		}
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		// a known path with the wrong method is an unmatched route too
		if echoErr.Code == http.StatusNotFound || echoErr.Code == http.StatusMethodNotAllowed {
			return http.StatusNotFound, RouteNotFoundResponse{Success: false, Message: "Route Not Found"}
		}
		if echoErr.Internal != nil {
			if status, body := Render(echoErr.Internal); status != http.StatusInternalServerError {
				return status, body
			}
		}
		msg, ok := echoErr.Message.(string)
		if !ok {
			msg = fmt.Sprint(echoErr.Message)
		}
		if echoErr.Code >= http.StatusInternalServerError {
			msg = "Internal server error"
		}
		return echoErr.Code, ErrorResponse{Message: msg}
	}

	httpErr := MapErrorToHTTP(err)
	return httpErr.StatusCode, httpErr.ToErrorResponse()
}

// Handler returns the echo error handler that is the single place errors become responses.
func Handler(log *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := Render(err)
		if status >= http.StatusInternalServerError {
			log.WithError(err).WithFields(logrus.Fields{
				"method":     c.Request().Method,
				"uri":        c.Request().RequestURI,
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			}).Error("request failed")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.WithError(err).Warn("write error response")
		}
	}
}
