package insightapi

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/materials-commons/mcinsight/pkg/insightapi/apimiddleware"
)

const ServiceName = "mcinsight"

type RouteOpts struct {
	Querier Querier
	Metrics *apimiddleware.HTTPMetrics
}

// NewServer returns an echo instance with every route and middleware in place.
func NewServer(opts RouteOpts) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	if opts.Metrics != nil {
		e.Use(opts.Metrics.Middleware())
		e.GET("/metrics", echo.WrapHandler(opts.Metrics.Handler()))
	}

	SetupRoutes(e, opts)
	return e
}

func SetupRoutes(e *echo.Echo, opts RouteOpts) {
	g := e.Group("/api")

	tenantController := NewTenantController(opts.Querier)
	g.GET("/tenants/purple/count", tenantController.GetPurpleTenantsCount)
	g.GET("/tenants/active", tenantController.GetActiveTenants)
	g.GET("/tenants/largest", tenantController.GetLargestTenants)
	g.GET("/tenants/largest/model-count", tenantController.GetModelCountOfLargestTenant)
	g.GET("/tenants/revision-heaviest", tenantController.GetRevisionHeaviestTenant)
	g.GET("/tenants/revision-heaviest/latest-model", tenantController.GetRevisionHeaviestTenantLatestModelTitle)
	g.GET("/tenants/:id/most-active-users", tenantController.GetMostActiveUsers)
	g.GET("/tenants/:id/model-titles", tenantController.GetOrderedActiveModelTitles)

	userController := NewUserController(opts.Querier)
	g.GET("/users/lazy", userController.GetLazyUsers)

	modelController := NewModelController(opts.Querier)
	g.GET("/models/:id/revisions", modelController.GetChronologicalModelRevisions)
	g.GET("/forecast", modelController.GetForecast)
}
