package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/travelbuddy/journal-api/internal/interface/http"
	"github.com/travelbuddy/journal-api/internal/interface/middleware"
	"github.com/travelbuddy/journal-api/pkg/helpers"
)

// AssetModule wires image upload/delete and the static file routes. Upload
// and delete require a verified identity; serving stored files does not.
type AssetModule struct {
	Handler   *handlers.AssetHandler
	JWT       *helpers.TokenManager
	UploadDir string
	AssetDir  string
}

func NewAssetModule(h *handlers.AssetHandler, jwt *helpers.TokenManager, uploadDir, assetDir string) *AssetModule {
	return &AssetModule{Handler: h, JWT: jwt, UploadDir: uploadDir, AssetDir: assetDir}
}

func (m *AssetModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/image-upload", m.Handler.UploadImage)
		auth.DELETE("/delete-image", m.Handler.DeleteImage)
	}

	// /uploads hosts locally stored images; /assets hosts fixed files like the
	// placeholder, which edit substitutes for an omitted image reference.
	if m.UploadDir != "" {
		rg.Static("/uploads", m.UploadDir)
	}
	if m.AssetDir != "" {
		rg.Static("/assets", m.AssetDir)
	}
}
