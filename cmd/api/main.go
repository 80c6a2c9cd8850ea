package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	_ "github.com/utec-virtual/recursos-api/api/swagger"
	"github.com/utec-virtual/recursos-api/internal/handler"
	"github.com/utec-virtual/recursos-api/internal/middleware"
	"github.com/utec-virtual/recursos-api/internal/repository"
	"github.com/utec-virtual/recursos-api/internal/router"
	"github.com/utec-virtual/recursos-api/internal/service"
	"github.com/utec-virtual/recursos-api/pkg/cache"
	"github.com/utec-virtual/recursos-api/pkg/config"
	"github.com/utec-virtual/recursos-api/pkg/database"
	"github.com/utec-virtual/recursos-api/pkg/export"
	"github.com/utec-virtual/recursos-api/pkg/logger"
	"github.com/utec-virtual/recursos-api/pkg/response"
)

// @title Recursos Educativos API
// @version 1.0.0
// @description Role-based catalogue of educational resources with report exports
// @BasePath /api/v1
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	} else {
		response.SetDebug(true)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	platformRepo := repository.NewPlatformRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	cycleRepo := repository.NewCycleRepository(db)
	typeRepo := repository.NewResourceTypeRepository(db)
	sessionStore := repository.NewSessionStore(redisClient)

	authSvc := service.NewAuthService(userRepo, sessionStore, validate, logr, service.AuthConfig{
		Secret: cfg.Session.Secret,
		TTL:    cfg.Session.TTL,
		Issuer: "recursos-api",
	})
	accessSvc := service.NewAccessService(userRepo, logr)
	resourceSvc := service.NewResourceService(resourceRepo, accessSvc, userRepo, validate, logr)
	taxonomySvc := service.NewTaxonomyService(platformRepo, facultyRepo, cycleRepo, typeRepo, userRepo, validate, logr)
	userSvc := service.NewUserService(userRepo, validate, logr)
	reportSvc := service.NewReportService(
		export.NewXLSXExporter(),
		export.NewPDFExporter(),
		export.NewCSVExporter(),
		service.ReportBranding{
			Institution: cfg.Reports.Institution,
			OrgUnit:     cfg.Reports.OrgUnit,
			Title:       cfg.Reports.Title,
		},
		logr,
	)
	dashboardSvc := service.NewDashboardService(resourceRepo, reportSvc, logr)
	metricsSvc := service.NewMetricsService()

	cookie := middleware.CookieSettings{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Env == config.EnvProduction,
	}

	handlers := router.Handlers{
		Auth:      handler.NewAuthHandler(authSvc, metricsSvc, cookie, cfg.Session.TTL),
		Resources: handler.NewResourceHandler(resourceSvc),
		Taxonomy:  handler.NewTaxonomyHandler(taxonomySvc),
		Users:     handler.NewUserHandler(userSvc),
		Reports:   handler.NewReportHandler(reportSvc, metricsSvc),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		Metrics:   handler.NewMetricsHandler(metricsSvc, db.PingContext),
	}

	r := router.New(cfg, logr, authSvc, accessSvc, metricsSvc, handlers)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
