package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/travelbuddy/journal-api/internal/interface/http"
	"github.com/travelbuddy/journal-api/internal/interface/middleware"
	"github.com/travelbuddy/journal-api/pkg/helpers"
)

// StoryModule wires the travel-story routes; every route requires a verified
// identity.
type StoryModule struct {
	Handler *handlers.StoryHandler
	JWT     *helpers.TokenManager
}

func NewStoryModule(h *handlers.StoryHandler, jwt *helpers.TokenManager) *StoryModule {
	return &StoryModule{Handler: h, JWT: jwt}
}

func (m *StoryModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/add-travel-story", m.Handler.AddStory)
		auth.GET("/get-all-stories", m.Handler.GetAllStories)
		auth.PUT("/edit-story/:id", m.Handler.EditStory)
		auth.DELETE("/delete-story/:id", m.Handler.DeleteStory)
		auth.PUT("/update-is-favourite/:id", m.Handler.UpdateIsFavourite)
		auth.GET("/search", m.Handler.SearchStories)
		auth.GET("/travel-stories/filter", m.Handler.FilterStories)
	}
}
