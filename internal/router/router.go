package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/utec-virtual/recursos-api/internal/handler"
	"github.com/utec-virtual/recursos-api/internal/middleware"
	"github.com/utec-virtual/recursos-api/internal/service"
	"github.com/utec-virtual/recursos-api/pkg/config"
	"github.com/utec-virtual/recursos-api/pkg/logger"
	corsmiddleware "github.com/utec-virtual/recursos-api/pkg/middleware/cors"
	reqidmiddleware "github.com/utec-virtual/recursos-api/pkg/middleware/requestid"
)

// Handlers collects every HTTP handler wired by the router.
type Handlers struct {
	Auth      *handler.AuthHandler
	Resources *handler.ResourceHandler
	Taxonomy  *handler.TaxonomyHandler
	Users     *handler.UserHandler
	Reports   *handler.ReportHandler
	Dashboard *handler.DashboardHandler
	Metrics   *handler.MetricsHandler
}

// New builds the gin engine with the full route table.
func New(cfg *config.Config, logr *zap.Logger, auth *service.AuthService, access *service.AccessService, metrics *service.MetricsService, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	cookie := middleware.CookieSettings{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Env == config.EnvProduction,
	}

	api := r.Group(cfg.APIPrefix)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/logout", middleware.OptionalSession(auth, cookie), h.Auth.Logout)
		authGroup.GET("/me", middleware.Session(auth, cookie), h.Auth.Me)
	}

	secured := api.Group("")
	secured.Use(middleware.Session(auth, cookie))

	resources := secured.Group("/resources")
	{
		resources.GET("", h.Resources.ListOwn)
		resources.GET("/all", h.Resources.ListAll)
		resources.GET("/:id", h.Resources.Get)
		resources.POST("", h.Resources.Create)
		resources.PUT("/:id", h.Resources.Update)
		resources.DELETE("/:id", h.Resources.Delete)
	}

	// Taxonomy reads stay open to any session; mutations need superadmin.
	superadmin := middleware.RequireSuperadmin(access)

	platforms := secured.Group("/platforms")
	{
		platforms.GET("", h.Taxonomy.ListPlatforms)
		platforms.POST("", superadmin, h.Taxonomy.CreatePlatform)
		platforms.PUT("/:id", superadmin, h.Taxonomy.UpdatePlatform)
		platforms.PATCH("/:id/status", superadmin, h.Taxonomy.SetPlatformStatus)
		platforms.DELETE("/:id", superadmin, h.Taxonomy.DeletePlatform)
	}

	faculties := secured.Group("/faculties")
	{
		faculties.GET("", h.Taxonomy.ListFaculties)
		faculties.POST("", superadmin, h.Taxonomy.CreateFaculty)
		faculties.PUT("/:id", superadmin, h.Taxonomy.UpdateFaculty)
		faculties.PATCH("/:id/status", superadmin, h.Taxonomy.SetFacultyStatus)
		faculties.DELETE("/:id", superadmin, h.Taxonomy.DeleteFaculty)
	}

	cycles := secured.Group("/cycles")
	{
		cycles.GET("", h.Taxonomy.ListCycles)
		cycles.POST("", superadmin, h.Taxonomy.CreateCycle)
		cycles.PUT("/:id", superadmin, h.Taxonomy.UpdateCycle)
		cycles.PATCH("/:id/status", superadmin, h.Taxonomy.SetCycleStatus)
		cycles.DELETE("/:id", superadmin, h.Taxonomy.DeleteCycle)
	}

	resourceTypes := secured.Group("/resource-types")
	{
		resourceTypes.GET("", h.Taxonomy.ListResourceTypes)
		resourceTypes.POST("", superadmin, h.Taxonomy.CreateResourceType)
		resourceTypes.PUT("/:id", superadmin, h.Taxonomy.UpdateResourceType)
		resourceTypes.PATCH("/:id/status", superadmin, h.Taxonomy.SetResourceTypeStatus)
		resourceTypes.DELETE("/:id", superadmin, h.Taxonomy.DeleteResourceType)
	}

	users := secured.Group("/users", superadmin)
	{
		users.GET("", h.Users.List)
		users.GET("/:id", h.Users.Get)
		users.PUT("/:id", h.Users.Update)
		users.PUT("/:id/password", h.Users.UpdatePassword)
		users.PUT("/:id/role", h.Users.AssignRole)
		users.PATCH("/:id/status", h.Users.SetStatus)
		users.DELETE("/:id", h.Users.Delete)
		users.POST("/bulk", h.Users.BulkImport)
	}
	secured.GET("/roles", superadmin, h.Users.ListRoles)

	secured.POST("/reports/export", h.Reports.Export)
	secured.GET("/dashboard/stats", h.Dashboard.Stats)

	return r
}
