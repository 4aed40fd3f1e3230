package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-recipe-profile/internal/interface/http"
	"github.com/oksasatya/go-recipe-profile/internal/interface/middleware"
	"github.com/oksasatya/go-recipe-profile/pkg/helpers"
)

// ProfileModule wires the profile screen and profile edits. All routes are protected.
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	JWT     *helpers.JWTManager
	RDB     *redis.Client
}

func NewProfileModule(h *handlers.ProfileHandler, jwt *helpers.JWTManager, rdb *redis.Client) *ProfileModule {
	return &ProfileModule{Handler: h, JWT: jwt, RDB: rdb}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.RDB, m.JWT))
	auth.Use(
		middleware.RateLimit(m.RDB, 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.GET("/profile/screen", m.Handler.Screen)
		auth.PUT("/profile/username", m.Handler.UpdateUsername)
		auth.POST("/profile/avatar",
			middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByUserID(), nil),
			m.Handler.UploadAvatar,
		)
		auth.GET("/users/search",
			middleware.RateLimit(m.RDB, 30, time.Minute, middleware.KeyByIPAndPath(), nil),
			m.Handler.Search,
		)
	}
}
