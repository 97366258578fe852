package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/QuentinDoniczka/SeriousGameBack/internal/interface/http"
	"github.com/QuentinDoniczka/SeriousGameBack/internal/interface/middleware"
	"github.com/QuentinDoniczka/SeriousGameBack/pkg/helpers"
)

// UserModule wires the account HTTP handlers into routes
// Public: POST /api/user/login, POST /api/user/register
// Protected: GET /api/user/users, PUT /api/user/description
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/user/login", m.Handler.Login)
	rg.POST("/user/register", m.Handler.Register)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/user/users", m.Handler.GetAllUsers)
		auth.PUT("/user/description", m.Handler.UpdateDescription)
	}
}
