package router

import (
	"github.com/oksasatya/go-recipe-profile/internal/application"
	"github.com/oksasatya/go-recipe-profile/internal/container"
	"github.com/oksasatya/go-recipe-profile/internal/inflight"
	pginfra "github.com/oksasatya/go-recipe-profile/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-recipe-profile/internal/interface/http"
	"github.com/oksasatya/go-recipe-profile/internal/router/modules"
	"github.com/oksasatya/go-recipe-profile/internal/screen"
)

// Services are the stores shared by every module and by each profile screen.
type Services struct {
	Profiles  *application.ProfileService
	Favorites *application.FavoriteService
	Reviews   *application.ReviewService
}

func buildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	rdb := container.GetRedis()

	var avatars application.AvatarStore = application.InlineAvatarStore{}
	if cfg.UseGCSAvatars() && container.GetGCS() != nil {
		avatars = application.NewGCSAvatarStore(container.GetGCS(), cfg.GCSBucket)
	}

	opts := application.ProfileServiceOptions{
		JWT:             container.GetJWT(),
		Redis:           rdb,
		ES:              container.GetES(),
		ESProfilesIndex: cfg.ESProfilesIndex,
		UsernameMinLen:  cfg.UsernameMinLen,
		AvatarMaxBytes:  cfg.AvatarMaxBytes,
	}
	// a nil *RabbitPublisher must not end up inside the interface
	if pub := container.GetRabbitPub(); pub != nil {
		opts.Events = pub
	}

	var guard inflight.Guard
	if rdb != nil {
		guard = inflight.NewRedisGuard(rdb, "favorite:toggle:", cfg.ToggleGuardTTL)
	}

	return Services{
		Profiles:  application.NewProfileService(pginfra.NewProfileRepository(pool), avatars, logger, opts),
		Favorites: application.NewFavoriteService(pginfra.NewFavoriteRepository(pool), guard, logger),
		Reviews:   application.NewReviewService(pginfra.NewReviewRepository(pool), logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()
	rdb := container.GetRedis()
	svc := buildServices()

	deps := screen.Deps{
		Profiles:       svc.Profiles,
		Favorites:      svc.Favorites,
		Reviews:        svc.Reviews,
		Logger:         logger,
		UsernameMinLen: cfg.UsernameMinLen,
		AvatarMaxBytes: cfg.AvatarMaxBytes,
	}

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Profiles, logger, cfg.CookieDomain, cfg.CookieSecure), jwt, rdb))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(svc.Profiles, deps, cfg.ScreenLoadTimeout, logger), jwt, rdb))
	r.Add(modules.NewFavoriteModule(handlers.NewFavoriteHandler(svc.Favorites, logger), jwt, rdb))
	r.Add(modules.NewReviewModule(handlers.NewReviewHandler(svc.Reviews), jwt, rdb))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(rdb))
	}
}
