package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-recipe-profile/internal/interface/http"
	"github.com/oksasatya/go-recipe-profile/internal/interface/middleware"
	"github.com/oksasatya/go-recipe-profile/pkg/helpers"
)

type FavoriteModule struct {
	Handler *handlers.FavoriteHandler
	JWT     *helpers.JWTManager
	RDB     *redis.Client
}

func NewFavoriteModule(h *handlers.FavoriteHandler, jwt *helpers.JWTManager, rdb *redis.Client) *FavoriteModule {
	return &FavoriteModule{Handler: h, JWT: jwt, RDB: rdb}
}

func (m *FavoriteModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/favorites")
	auth.Use(middleware.Auth(m.RDB, m.JWT))
	auth.Use(middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("", m.Handler.List)
		auth.GET("/:recipeID", m.Handler.Status)
		auth.POST("/:recipeID/toggle", m.Handler.Toggle)
	}
}
