package middleware

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/media"
)

const (
	fileKey      = "upload.file"
	formOverhead = 1 << 20
)

// UploadConfig configures the single file upload gate.
type UploadConfig struct {
	// Field is the multipart field holding the file.
	Field    string
	MaxBytes int64
	// RejectUnsupported fails the request on a disallowed type instead of ignoring the file.
	RejectUnsupported bool
	Log               *logrus.Logger
}

// Upload reads one optional image from a multipart request into memory.
// The type is sniffed from content; the client supplied header is not trusted.
func Upload(cfg UploadConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
				return next(c)
			}
			req.Body = http.MaxBytesReader(c.Response(), req.Body, cfg.MaxBytes+formOverhead)

			fh, err := c.FormFile(cfg.Field)
			if err != nil {
				if errors.Is(err, http.ErrMissingFile) {
					return next(c)
				}
				if tooLarge(err) {
					return apperrors.ErrFileTooLarge
				}
				return apperrors.ErrInvalidPayload
			}
			if fh.Size > cfg.MaxBytes {
				return apperrors.ErrFileTooLarge
			}

			f, err := fh.Open()
			if err != nil {
				return apperrors.ErrInvalidPayload
			}
			defer f.Close()
			data, err := io.ReadAll(io.LimitReader(f, cfg.MaxBytes+1))
			if err != nil {
				return apperrors.ErrInvalidPayload
			}
			if int64(len(data)) > cfg.MaxBytes {
				return apperrors.ErrFileTooLarge
			}

			contentType, _ := media.Detect(data)
			if !media.Allowed(contentType) {
				if cfg.RejectUnsupported {
					return apperrors.ErrUnsupportedMedia
				}
				if cfg.Log != nil {
					cfg.Log.WithFields(logrus.Fields{
						"field":        cfg.Field,
						"content_type": contentType,
					}).Warn("ignoring upload of unsupported type")
				}
				return next(c)
			}

			c.Set(fileKey, &media.File{
				Filename:    fh.Filename,
				ContentType: contentType,
				Data:        data,
			})
			return next(c)
		}
	}
}

// FileFrom returns the file accepted by Upload, or nil.
func FileFrom(c echo.Context) *media.File {
	f, _ := c.Get(fileKey).(*media.File)
	return f
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
