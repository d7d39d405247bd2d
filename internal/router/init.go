package router

import (
	"github.com/oksasatya/store-rating-platform/internal/application"
	"github.com/oksasatya/store-rating-platform/internal/container"
	pginfra "github.com/oksasatya/store-rating-platform/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/store-rating-platform/internal/interface/http"
	"github.com/oksasatya/store-rating-platform/internal/router/modules"
)

// InitModules builds the application services from the container singletons
// and registers every route group. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	stores := pginfra.NewStoreRepository(pool)
	ratings := pginfra.NewRatingRepository(pool)

	indexer := application.NewStoreIndexer(container.GetES(), cfg.ESStoresIndex, logger)

	authSvc := application.NewAuthService(users, container.GetJWT(), container.GetRabbitPub(), logger)
	adminSvc := application.NewAdminService(users, stores, ratings,
		container.GetRedis(), container.GetGCS(), cfg.GCSBucket, indexer, logger, cfg.DashboardCacheTTL)
	storeSvc := application.NewStoreService(stores, ratings, indexer, logger)
	ownerSvc := application.NewOwnerService(stores, ratings)

	jwt := container.GetJWT()
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), jwt))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(adminSvc, logger), jwt))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(storeSvc, logger), jwt))
	r.Add(modules.NewOwnerModule(handlers.NewOwnerHandler(ownerSvc, logger), jwt))
}
