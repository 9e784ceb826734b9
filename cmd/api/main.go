package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	_ "github.com/campuslabs/orgfee-api/api/swagger"
	"github.com/campuslabs/orgfee-api/internal/handler"
	"github.com/campuslabs/orgfee-api/internal/middleware"
	"github.com/campuslabs/orgfee-api/internal/repository"
	"github.com/campuslabs/orgfee-api/internal/service"
	"github.com/campuslabs/orgfee-api/pkg/cache"
	"github.com/campuslabs/orgfee-api/pkg/config"
	"github.com/campuslabs/orgfee-api/pkg/database"
	"github.com/campuslabs/orgfee-api/pkg/jobs"
	"github.com/campuslabs/orgfee-api/pkg/logger"
	corsmiddleware "github.com/campuslabs/orgfee-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campuslabs/orgfee-api/pkg/middleware/requestid"
	"github.com/campuslabs/orgfee-api/pkg/storage"
)

// @title OrgFee API
// @version 1.0.0
// @description Student organization membership and fee management API
// @BasePath /
// @schemes http

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	validate := service.NewValidator()

	studentRepo := repository.NewStudentRepository(db, cfg.Tables)
	orgRepo := repository.NewOrganizationRepository(db, cfg.Tables)
	committeeRepo := repository.NewCommitteeRepository(db, cfg.Tables)
	membershipRepo := repository.NewMembershipRepository(db, cfg.Tables)
	feeRepo := repository.NewFeeRepository(db, cfg.Tables)
	eventRepo := repository.NewEventRepository(db, cfg.Tables)

	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	orgSvc := service.NewOrganizationService(orgRepo, validate, logr)
	committeeSvc := service.NewCommitteeService(committeeRepo, validate, logr)
	membershipSvc := service.NewMembershipService(membershipRepo, validate, logr)
	feeSvc := service.NewFeeService(feeRepo, validate, logr)
	eventSvc := service.NewEventService(eventRepo, validate, logr)

	metricsSvc := service.NewMetricsService()

	var authSvc *service.AuthService
	var authHandler *handler.AuthHandler
	if cfg.Auth.Enabled {
		userRepo := repository.NewUserRepository(db, cfg.Tables)
		authSvc = service.NewAuthService(userRepo, cfg.Auth, logr)
		authHandler = handler.NewAuthHandler(authSvc)
	}

	var reportHandler *handler.ReportHandler
	var reportQueue *jobs.Queue
	if cfg.Reports.Enabled {
		store, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("report storage init failed", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)
		reportRepo := repository.NewReportRepository(db, cfg.Tables)
		reportSvc := service.NewReportService(reportRepo, store, signer, cfg.Reports, validate, logr)

		reportQueue = jobs.NewQueue("reports", reportSvc.Process, jobs.QueueConfig{
			Workers:    cfg.Reports.WorkerConcurrency,
			MaxRetries: cfg.Reports.WorkerRetries,
			Logger:     logr,
		})
		reportSvc.AttachQueue(reportQueue)
		reportQueue.Start(context.Background())
		defer reportQueue.Stop()

		reportSvc.RecoverPendingJobs(context.Background())
		reportSvc.StartCleanup(context.Background())

		reportHandler = handler.NewReportHandler(reportSvc)
	}

	var dashboardHandler *handler.DashboardHandler
	if cfg.Dashboard.Enabled {
		dashRepo := repository.NewDashboardRepository(db, cfg.Tables)
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		dashSvc := service.NewDashboardService(dashRepo, cacheRepo, cfg.Dashboard.CacheTTL, metricsSvc, logr)
		dashboardHandler = handler.NewDashboardHandler(dashSvc)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	router := handler.NewRouter(
		cfg,
		handler.NewStudentHandler(studentSvc),
		handler.NewOrganizationHandler(orgSvc),
		handler.NewCommitteeHandler(committeeSvc),
		handler.NewMembershipHandler(membershipSvc),
		handler.NewFeeHandler(feeSvc),
		handler.NewEventHandler(eventSvc),
		authHandler,
		reportHandler,
		dashboardHandler,
		authSvc,
		metricsSvc,
	)
	router.Register(r)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
