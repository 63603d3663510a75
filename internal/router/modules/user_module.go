package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/travelbuddy/journal-api/internal/interface/http"
	"github.com/travelbuddy/journal-api/internal/interface/middleware"
	"github.com/travelbuddy/journal-api/pkg/helpers"
)

// UserModule wires account routes.
// Public: POST /create-account, POST /login
// Protected: GET /get-user
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.TokenManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.TokenManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/create-account", m.Handler.CreateAccount)
	rg.POST("/login", m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/get-user", m.Handler.GetUser)
	}
}
