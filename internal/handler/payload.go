package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "portfolio/internal/errors"
)

// DataResponse wraps resource payloads.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// MessageResponse is returned by operations with nothing else to report.
type MessageResponse struct {
	Message string `json:"message"`
}

// dataField carries the whole payload as JSON inside a form submission.
const dataField = "data"

// bindPayload decodes the request into dst and validates it. The payload is
// a JSON body, a JSON document in the "data" form field, or plain form
// fields treated as JSON strings.
func bindPayload(c echo.Context, dst interface{}) error {
	raw, err := payloadJSON(c)
	if err != nil {
		return err
	}
	if err := decodeJSON(raw, dst); err != nil {
		return err
	}
	return c.Validate(dst)
}

func payloadJSON(c echo.Context) ([]byte, error) {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ct, echo.MIMEMultipartForm) || strings.HasPrefix(ct, echo.MIMEApplicationForm) {
		form, err := c.FormParams()
		if err != nil {
			return nil, apperrors.ErrInvalidPayload
		}
		if vals, ok := form[dataField]; ok {
			data := []byte(firstOf(vals))
			if !json.Valid(data) {
				return nil, apperrors.ErrInvalidDataField
			}
			return data, nil
		}
		return formJSON(form)
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, apperrors.ErrInvalidPayload
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return []byte("{}"), nil
	}
	return body, nil
}

// formJSON turns form values into a JSON object. Repeated keys become arrays.
func formJSON(form url.Values) ([]byte, error) {
	obj := make(map[string]interface{}, len(form))
	for k, vals := range form {
		if len(vals) == 1 {
			obj[k] = vals[0]
		} else {
			obj[k] = vals
		}
	}
	return json.Marshal(obj)
}

func decodeJSON(raw []byte, dst interface{}) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			if typeErr.Field == "" {
				return apperrors.NewValidationError("body", "must be a JSON object")
			}
			return apperrors.NewValidationError(typeErr.Field, "has an invalid type")
		}
		return apperrors.ErrInvalidPayload
	}
	return nil
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.ErrInvalidID
	}
	return uint(id), nil
}

func firstOf(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}
