package middleware

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/auth"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = apperrors.Handler(logrus.New())
	return e
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestRequireAuthAndRole(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	adminToken, err := jwtSvc.Issue(1, model.RoleAdmin)
	require.NoError(t, err)
	userToken, err := jwtSvc.Issue(2, model.RoleUser)
	require.NoError(t, err)
	expired, err := auth.NewJWTService("test-secret", -time.Minute).Issue(1, model.RoleAdmin)
	require.NoError(t, err)

	e := newEcho()
	e.GET("/admin", func(c echo.Context) error {
		claims, ok := ClaimsFrom(c)
		require.True(t, ok)
		return c.JSON(http.StatusOK, echo.Map{"userId": claims.UserID})
	}, RequireAuth(jwtSvc), RequireRole(model.RoleAdmin))

	tests := []struct {
		name    string
		setup   func(r *http.Request)
		status  int
		message string
	}{
		{"no token", func(r *http.Request) {}, http.StatusUnauthorized, "Unauthorized"},
		{"garbage bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized, "Invalid token"},
		{"expired", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+expired) }, http.StatusUnauthorized, "Invalid token"},
		{"wrong role", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+userToken) }, http.StatusForbidden, "Forbidden"},
		{"admin bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+adminToken) }, http.StatusOK, ""},
		{"admin cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: adminToken}) }, http.StatusOK, ""},
		{"cookie wins over header", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "token", Value: userToken})
			r.Header.Set("Authorization", "Bearer "+adminToken)
		}, http.StatusForbidden, "Forbidden"},
		{"invalid cookie is not rescued by header", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})
			r.Header.Set("Authorization", "Bearer "+adminToken)
		}, http.StatusUnauthorized, "Invalid token"},
		{"expired cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookie, Value: expired}) }, http.StatusUnauthorized, "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, decodeMessage(t, rec))
			}
		})
	}
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	e := newEcho()
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequireRole(model.RoleAdmin))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func multipartRequest(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("data", `{"title":"Hello"}`))
	if data != nil {
		fw, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	var got *uploadSeen
	handler := func(c echo.Context) error {
		got = &uploadSeen{data: c.FormValue("data")}
		if f := FileFrom(c); f != nil {
			got.file = &fileSeen{name: f.Filename, contentType: f.ContentType, size: len(f.Data)}
		}
		return c.NoContent(http.StatusCreated)
	}

	lenient := newEcho()
	lenient.POST("/upload", handler, Upload(UploadConfig{Field: "thumbnail", MaxBytes: 64}))
	strict := newEcho()
	strict.POST("/upload", handler, Upload(UploadConfig{Field: "thumbnail", MaxBytes: 64, RejectUnsupported: true}))

	t.Run("image accepted", func(t *testing.T) {
		got = nil
		rec := httptest.NewRecorder()
		lenient.ServeHTTP(rec, multipartRequest(t, "thumbnail", "a.png", pngBytes))

		assert.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, got.file)
		assert.Equal(t, &fileSeen{name: "a.png", contentType: "image/png", size: len(pngBytes)}, got.file)
		assert.Equal(t, `{"title":"Hello"}`, got.data)
	})

	t.Run("no file", func(t *testing.T) {
		got = nil
		rec := httptest.NewRecorder()
		lenient.ServeHTTP(rec, multipartRequest(t, "thumbnail", "", nil))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Nil(t, got.file)
	})

	t.Run("unsupported type ignored", func(t *testing.T) {
		got = nil
		rec := httptest.NewRecorder()
		lenient.ServeHTTP(rec, multipartRequest(t, "thumbnail", "a.png", []byte("%PDF-1.7\n")))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Nil(t, got.file)
	})

	t.Run("unsupported type rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		strict.ServeHTTP(rec, multipartRequest(t, "thumbnail", "a.pdf", []byte("%PDF-1.7\n")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Unsupported file type", decodeMessage(t, rec))
	})

	t.Run("too large", func(t *testing.T) {
		rec := httptest.NewRecorder()
		big := append(append([]byte{}, pngBytes...), make([]byte, 128)...)
		lenient.ServeHTTP(rec, multipartRequest(t, "thumbnail", "big.png", big))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("json passes through", func(t *testing.T) {
		got = nil
		req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewBufferString(`{}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		lenient.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Nil(t, got.file)
	})
}

type uploadSeen struct {
	file *fileSeen
	data string
}

type fileSeen struct {
	name        string
	contentType string
	size        int
}
