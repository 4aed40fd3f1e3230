package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-recipe-profile/internal/interface/http"
	"github.com/oksasatya/go-recipe-profile/internal/interface/middleware"
	"github.com/oksasatya/go-recipe-profile/pkg/helpers"
)

type ReviewModule struct {
	Handler *handlers.ReviewHandler
	JWT     *helpers.JWTManager
	RDB     *redis.Client
}

func NewReviewModule(h *handlers.ReviewHandler, jwt *helpers.JWTManager, rdb *redis.Client) *ReviewModule {
	return &ReviewModule{Handler: h, JWT: jwt, RDB: rdb}
}

func (m *ReviewModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.RDB, m.JWT))
	auth.Use(middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/users/:id/reviews", m.Handler.ListByUser)
	}
}
