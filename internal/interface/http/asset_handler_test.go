package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/travelbuddy/journal-api/internal/infrastructure/assetstore"
	handlers "github.com/travelbuddy/journal-api/internal/interface/http"
	"github.com/travelbuddy/journal-api/internal/router/modules"
	"github.com/travelbuddy/journal-api/pkg/helpers"
)

func newAssetServer(t *testing.T) (*gin.Engine, *helpers.TokenManager, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	jwt := helpers.NewTokenManager("test-secret", time.Hour)
	store := assetstore.NewLocalStore(dir, "http://localhost:8000")

	engine := gin.New()
	root := engine.Group("/")
	modules.NewAssetModule(handlers.NewAssetHandler(store, logrus.New()), jwt, dir, "").Register(root)
	return engine, jwt, dir
}

func multipartImage(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestImageRoutesRequireToken(t *testing.T) {
	engine, _, _ := newAssetServer(t)

	body, ctype := multipartImage(t, "image", "trip.png", "png-bytes")
	req := httptest.NewRequest(http.MethodPost, "/image-upload", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/delete-image?imageUrl=x", nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestImageUploadAndDelete(t *testing.T) {
	engine, jwt, dir := newAssetServer(t)
	token, _, err := jwt.Generate("u1")
	require.NoError(t, err)

	body, ctype := multipartImage(t, "image", "trip.png", "png-bytes")
	req := httptest.NewRequest(http.MethodPost, "/image-upload", body)
	req.Header.Set("Content-Type", ctype)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	imageURL, _ := out["imageUrl"].(string)
	require.True(t, strings.HasPrefix(imageURL, "http://localhost:8000/uploads/"), imageURL)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	req = httptest.NewRequest(http.MethodDelete, "/delete-image?imageUrl="+imageURL, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestImageUploadMissingFile(t *testing.T) {
	engine, jwt, _ := newAssetServer(t)
	token, _, err := jwt.Generate("u1")
	require.NoError(t, err)

	body, ctype := multipartImage(t, "photo", "trip.png", "png-bytes")
	req := httptest.NewRequest(http.MethodPost, "/image-upload", body)
	req.Header.Set("Content-Type", ctype)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Equal(t, "No image uploaded", out["message"])
}

func TestPlaceholderServedWithoutUploadsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	assetDir := t.TempDir()
	require.NoError(t, os.WriteFile(assetDir+"/placeholder.png", []byte("placeholder-bytes"), 0o644))

	// no upload dir, as when uploads live in object storage
	jwt := helpers.NewTokenManager("test-secret", time.Hour)
	store := assetstore.NewLocalStore(t.TempDir(), "http://localhost:8000")
	engine := gin.New()
	modules.NewAssetModule(handlers.NewAssetHandler(store, logrus.New()), jwt, "", assetDir).Register(engine.Group("/"))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets/placeholder.png", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "placeholder-bytes", w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/x.png", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteImageErrors(t *testing.T) {
	engine, jwt, _ := newAssetServer(t)
	token, _, err := jwt.Generate("u1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/delete-image", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/delete-image?imageUrl=http://localhost:8000/uploads/nope.png", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}
