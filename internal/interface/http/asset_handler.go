package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/travelbuddy/journal-api/internal/infrastructure/assetstore"
	"github.com/travelbuddy/journal-api/pkg/response"
)

type AssetHandler struct {
	Store  assetstore.Store
	Logger *logrus.Logger
}

func NewAssetHandler(store assetstore.Store, logger *logrus.Logger) *AssetHandler {
	return &AssetHandler{Store: store, Logger: logger}
}

// UploadImage POST /image-upload (multipart field "image")
func (h *AssetHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "No image uploaded", nil)
		return
	}

	src, err := file.Open()
	if err != nil {
		h.Logger.WithError(err).Error("open uploaded image failed")
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	defer func() { _ = src.Close() }()

	url, err := h.Store.Save(c.Request.Context(), src, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		h.Logger.WithError(err).Error("store image failed")
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusCreated, "", gin.H{"imageUrl": url})
}

// DeleteImage DELETE /delete-image?imageUrl=...
func (h *AssetHandler) DeleteImage(c *gin.Context) {
	imageURL := c.Query("imageUrl")
	if imageURL == "" {
		response.Error(c, http.StatusBadRequest, "imageUrl parameter is required", nil)
		return
	}

	if err := h.Store.Delete(c.Request.Context(), imageURL); err != nil {
		if errors.Is(err, assetstore.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Image not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("image_url", imageURL).Error("delete image failed")
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Image deleted successfully", nil)
}
