package app

import (
	"net/http"

	"clergy-registry-go/internal/config"
	"clergy-registry-go/internal/db"
	familydomain "clergy-registry-go/internal/domain/family"
	pastordomain "clergy-registry-go/internal/domain/pastor"
	relationshipdomain "clergy-registry-go/internal/domain/relationship"
	statsdomain "clergy-registry-go/internal/domain/stats"
	"clergy-registry-go/internal/repository/inmemory"
	familyrepo "clergy-registry-go/internal/repository/postgres/family"
	pastorrepo "clergy-registry-go/internal/repository/postgres/pastor"
	relationshiprepo "clergy-registry-go/internal/repository/postgres/relationship"
	statsrepo "clergy-registry-go/internal/repository/postgres/stats"
	"clergy-registry-go/internal/transport/httpserver"
	"clergy-registry-go/internal/transport/httpserver/handler"
	"clergy-registry-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	relationshipService := relationshipdomain.NewService(relationshiprepo.NewPostgres(dbConn))
	familyService := familydomain.NewService(familyrepo.NewPostgres(dbConn), relationshipService)
	if cfg.FamilyCacheTTL > 0 {
		familyService.WithCache(inmemory.NewFamilyDetailCache(), cfg.FamilyCacheTTL)
	}
	relationshipService.OnChange(familyService.InvalidateDetailForMember)
	pastorService := pastordomain.NewService(pastorrepo.NewPostgres(dbConn))
	statsService := statsdomain.NewService(statsrepo.NewPostgres(dbConn))

	handlers := handler.New(familyService, relationshipService, pastorService, statsService, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
