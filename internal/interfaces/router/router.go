package router

import (
	assetsvc "galangan-backend/internal/application/assets"
	eventsvc "galangan-backend/internal/application/events"
	reportsvc "galangan-backend/internal/application/reports"
	authsvc "galangan-backend/internal/auth"
	"galangan-backend/internal/config"
	"galangan-backend/internal/infrastructure/database"
	assethandler "galangan-backend/internal/interfaces/handlers/assets"
	authhandler "galangan-backend/internal/interfaces/handlers/auth"
	eventhandler "galangan-backend/internal/interfaces/handlers/events"
	healthhandler "galangan-backend/internal/interfaces/handlers/health"
	reporthandler "galangan-backend/internal/interfaces/handlers/reports"
	"galangan-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all global middleware and route
// registration.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionHandler, rdb, err := middleware.Session(middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	})
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.RequestMarker(rdb))

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	hh := &healthhandler.Handlers{Rdb: rdb}
	if db != nil {
		hh.DB = &gormDBPinger{db: db}
	}
	app.Get("/health", hh.JSON)

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}

	var userFinder authsvc.UserFinder
	if db != nil {
		userFinder = &authsvc.GormUserFinder{DB: db}
	}
	ah := &authhandler.Handlers{
		UserFinder: userFinder,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)

	if db != nil {
		as := &assetsvc.Service{DB: db}
		asseth := &assethandler.Handlers{Service: as}
		ag := app.Group("/api/v1/assets", middleware.RequireAuth())
		ag.Get("/fetch-assets", asseth.ListAssets)
		ag.Post("/post-asset", asseth.CreateAsset)
		ag.Put("/update-asset-state", asseth.UpdateAssetState)
		ag.Put("/update-archive", asseth.UpdateArchive)
		ag.Post("/add-complementary", asseth.AddComplementary)
		ag.Post("/add-component", asseth.AddComponent)
		ag.Get("/:id/aggregate", asseth.GetAggregate)
		ag.Get("/:id", asseth.GetAsset)

		es := &eventsvc.Service{DB: db}
		eh := &eventhandler.Handlers{Service: es}
		eg := app.Group("/api/v1/events", middleware.RequireAuth())
		eg.Post("/post-event", eh.RecordEvent)
		eg.Post("/fetch-event", eh.FetchEvent)
		eg.Post("/update-event", eh.UpdateEvent)
		eg.Get("/get-events", eh.ListEvents)

		rs := &reportsvc.Service{Assets: as}
		rh := &reporthandler.Handlers{Service: rs}
		rg := app.Group("/api/v1/reports", middleware.RequireAuth())
		rg.Get("/asset/:id", rh.AssetReport)
	}

	return app, db, rdb, nil
}
