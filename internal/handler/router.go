package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/campuslabs/orgfee-api/internal/middleware"
	"github.com/campuslabs/orgfee-api/internal/service"
	"github.com/campuslabs/orgfee-api/pkg/config"
)

// Router wires every handler into the gin engine.
type Router struct {
	cfg *config.Config

	students    *StudentHandler
	orgs        *OrganizationHandler
	committees  *CommitteeHandler
	memberships *MembershipHandler
	fees        *FeeHandler
	events      *EventHandler
	auth        *AuthHandler
	reports     *ReportHandler
	dashboard   *DashboardHandler

	authService *service.AuthService
	metrics     *service.MetricsService
}

// NewRouter constructs the route table. Auth, reports, dashboard and
// metrics handlers may be nil when their feature is disabled.
func NewRouter(
	cfg *config.Config,
	students *StudentHandler,
	orgs *OrganizationHandler,
	committees *CommitteeHandler,
	memberships *MembershipHandler,
	fees *FeeHandler,
	events *EventHandler,
	auth *AuthHandler,
	reports *ReportHandler,
	dashboard *DashboardHandler,
	authService *service.AuthService,
	metrics *service.MetricsService,
) *Router {
	return &Router{
		cfg:         cfg,
		students:    students,
		orgs:        orgs,
		committees:  committees,
		memberships: memberships,
		fees:        fees,
		events:      events,
		auth:        auth,
		reports:     reports,
		dashboard:   dashboard,
		authService: authService,
		metrics:     metrics,
	}
}

// Register mounts all routes on the engine.
func (rt *Router) Register(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if rt.metrics != nil {
		r.GET("/metrics", gin.WrapH(rt.metrics.Handler()))
	}

	if rt.cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(rt.cfg.APIPrefix)

	if rt.auth != nil && rt.authService != nil {
		authGroup := api.Group("/auth")
		authGroup.POST("/login", rt.auth.Login)
		authGroup.GET("/me", middleware.JWT(rt.authService), rt.auth.Me)
	}

	protected := api.Group("")
	if rt.cfg.Auth.Enabled && rt.authService != nil {
		protected.Use(middleware.JWT(rt.authService))
	} else if rt.authService != nil {
		protected.Use(middleware.OptionalJWT(rt.authService))
	}

	students := protected.Group("/students")
	students.GET("", rt.students.List)
	students.POST("", rt.students.Create)
	students.PUT("", rt.students.Update)
	students.DELETE("", rt.students.Delete)

	orgs := protected.Group("/organization")
	orgs.GET("", rt.orgs.List)
	orgs.POST("", rt.orgs.Create)
	orgs.PUT("", rt.orgs.Update)
	orgs.DELETE("", rt.orgs.Delete)

	committees := protected.Group("/organization-committee")
	committees.GET("", rt.committees.List)
	committees.GET("/:organizationId", rt.committees.ListByOrganization)
	committees.POST("", rt.committees.Create)
	committees.PUT("", rt.committees.Update)
	committees.DELETE("", rt.committees.Delete)

	memberships := protected.Group("/membership")
	memberships.GET("", rt.memberships.List)
	memberships.GET("/active", rt.memberships.Active)
	memberships.GET("/:organizationId", rt.memberships.ListByOrganization)
	memberships.POST("", rt.memberships.Create)
	memberships.PUT("", rt.memberships.Update)
	memberships.PATCH("/status", rt.memberships.UpdateStatus)
	memberships.DELETE("", rt.memberships.Delete)

	fees := protected.Group("/fee")
	fees.GET("", rt.fees.List)
	fees.GET("/unpaid", rt.fees.Unpaid)
	fees.GET("/:studentNumber", rt.fees.ListByStudent)
	fees.POST("", rt.fees.Create)
	fees.PUT("", rt.fees.Update)
	fees.PATCH("/status", rt.fees.UpdateStatus)
	fees.DELETE("", rt.fees.Delete)

	events := protected.Group("/organization-event")
	events.GET("", rt.events.List)
	events.GET("/:organizationId", rt.events.ListByOrganization)
	events.POST("", rt.events.Create)
	events.PUT("", rt.events.Update)
	events.DELETE("", rt.events.Delete)

	if rt.reports != nil {
		reports := protected.Group("/reports")
		reports.POST("", rt.reports.Create)
		reports.GET("/download", rt.reports.Download)
		reports.GET("/:id", rt.reports.Status)
	}

	if rt.dashboard != nil {
		protected.GET("/dashboard/summary", rt.dashboard.Summary)
	}
}
