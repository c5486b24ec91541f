package controllers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/societyhub/society-portal-go/config"
)

type fakeUploader struct {
	url   string
	err   error
	calls int
}

func (f *fakeUploader) Upload(ctx context.Context, file io.Reader, filename string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func uploadRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/upload", UploadFile(cfg))
	return r
}

func multipartBody(t *testing.T, field, filename string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestUploadFileReturnsURL(t *testing.T) {
	up := &fakeUploader{url: "https://cdn.example.com/uploads/abc.png"}
	r := uploadRouter(&config.Config{Uploader: up})

	body, contentType := multipartBody(t, "image", "photo.png")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"url":"https://cdn.example.com/uploads/abc.png"}`, w.Body.String())
	assert.Equal(t, 1, up.calls)
}

func TestUploadFileMissingFile(t *testing.T) {
	up := &fakeUploader{url: "unused"}
	r := uploadRouter(&config.Config{Uploader: up})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"no file uploaded"}`, w.Body.String())
	assert.Zero(t, up.calls, "missing file must never reach the media store")
}

func TestUploadFileWrongField(t *testing.T) {
	up := &fakeUploader{url: "unused"}
	r := uploadRouter(&config.Config{Uploader: up})

	body, contentType := multipartBody(t, "attachment", "photo.png")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, up.calls)
}

func TestUploadFileUpstreamFailure(t *testing.T) {
	up := &fakeUploader{err: errors.New("media store unreachable")}
	r := uploadRouter(&config.Config{Uploader: up})

	body, contentType := multipartBody(t, "image", "photo.png")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "media store unreachable")
}
