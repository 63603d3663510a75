package router

import (
	"github.com/travelbuddy/journal-api/internal/application"
	"github.com/travelbuddy/journal-api/internal/container"
	pginfra "github.com/travelbuddy/journal-api/internal/infrastructure/postgres"
	handlers "github.com/travelbuddy/journal-api/internal/interface/http"
	"github.com/travelbuddy/journal-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup after the container singletons
// are in place.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	storyRepo := pginfra.NewStoryRepository(container.GetPGPool())

	userSvc := application.NewUserService(userRepo, container.GetJWT(), container.GetRedis(), logger)
	storySvc := application.NewStoryService(storyRepo, container.GetCleanup(), logger, cfg.PlaceholderImageURL())

	userHandler := handlers.NewUserHandler(userSvc, logger)
	storyHandler := handlers.NewStoryHandler(storySvc, logger)
	assetHandler := handlers.NewAssetHandler(container.GetAssets(), logger)

	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewStoryModule(storyHandler, container.GetJWT()))

	// /uploads only exists with the local backend; /assets always serves the
	// placeholder image, whichever backend holds the uploads.
	uploadDir := ""
	if cfg.GCSBucket == "" {
		uploadDir = cfg.UploadDir
	}
	r.Add(modules.NewAssetModule(assetHandler, container.GetJWT(), uploadDir, cfg.AssetDir))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
