package main

import (
	"context"
	"fmt"
	"log"
	"net/http/pprof"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/campus-timetable-api/api/swagger"
	internalhandler "github.com/noah-isme/campus-timetable-api/internal/handler"
	internalmiddleware "github.com/noah-isme/campus-timetable-api/internal/middleware"
	"github.com/noah-isme/campus-timetable-api/internal/models"
	"github.com/noah-isme/campus-timetable-api/internal/repository"
	"github.com/noah-isme/campus-timetable-api/internal/scheduler/jobqueue"
	"github.com/noah-isme/campus-timetable-api/internal/service"
	"github.com/noah-isme/campus-timetable-api/pkg/cache"
	"github.com/noah-isme/campus-timetable-api/pkg/config"
	"github.com/noah-isme/campus-timetable-api/pkg/database"
	"github.com/noah-isme/campus-timetable-api/pkg/jobs"
	"github.com/noah-isme/campus-timetable-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/campus-timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/campus-timetable-api/pkg/middleware/requestid"
	"github.com/noah-isme/campus-timetable-api/pkg/storage"
)

// @title Campus Timetable API
// @version 1.0.0
// @description Constraint-based class timetable generator and hard-constraint validator.
// @BasePath /api/v1
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()
	metricsHandler := internalhandler.NewMetricsHandler(metricsSvc)

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to initialise database", "error", err)
	}
	defer db.Close()

	// cacheSvc caches the re-optimization path's version reads (the
	// semester's most-recent-version pointer and version entry lists;
	// an optional accelerator, not the solve path itself) when
	// SCHEDULER_CACHE_ENABLED is set and Redis is reachable; otherwise
	// it is disabled so a single-instance deployment needs no external
	// cache.
	var cacheSvc *service.CacheService
	if cfg.Scheduler.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, disabling schedule cache", "error", err)
			cacheSvc = service.NewCacheService(nil, metricsSvc, cfg.Scheduler.CacheTTL, logr, false)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Scheduler.CacheTTL, logr, true)
		}
	} else {
		cacheSvc = service.NewCacheService(nil, metricsSvc, cfg.Scheduler.CacheTTL, logr, false)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/internal/cache-status", func(c *gin.Context) {
		c.JSON(200, gin.H{"enabled": cacheSvc.Enabled()})
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		registerPprof(r)
	}

	api := r.Group(cfg.APIPrefix)

	// Authentication.
	userRepo := repository.NewUserRepository(db)
	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "campus-timetable-api",
		Audience:           []string{"campus-timetable-clients"},
	})
	authHandler := internalhandler.NewAuthHandler(authSvc)

	authRoutes := api.Group("/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/forgot-password", authHandler.ForgotPassword)
	authRoutes.POST("/reset-password", authHandler.ResetPassword)
	protectedAuth := authRoutes.Group("")
	protectedAuth.Use(internalmiddleware.JWT(authSvc))
	protectedAuth.GET("/me", authHandler.Me)
	protectedAuth.POST("/logout", authHandler.Logout)
	protectedAuth.POST("/change-password", authHandler.ChangePassword)

	// Account administration.
	userSvc := service.NewUserService(userRepo, nil, logr)
	userHandler := internalhandler.NewUserHandler(userSvc)
	users := api.Group("/users")
	users.Use(internalmiddleware.JWT(authSvc))
	adminOnly := internalmiddleware.RequireRoles(models.RoleAdmin)
	users.GET("", adminOnly, userHandler.List)
	users.GET("/:id", internalmiddleware.RBAC(string(models.RoleAdmin), "SELF"), userHandler.Get)
	users.POST("", adminOnly, userHandler.Create)
	users.PUT("/:id", adminOnly, userHandler.Update)
	users.DELETE("/:id", adminOnly, userHandler.Delete)

	// Scheduler-domain repositories.
	roomRepo := repository.NewRoomRepository(db)
	timeslotRepo := repository.NewTimeslotRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	offeringRepo := repository.NewOfferingRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	facultyAssignmentRepo := repository.NewFacultyAssignmentRepository(db)
	facultyUnavailabilityRepo := repository.NewFacultyUnavailabilityRepository(db)
	fixedSlotRepo := repository.NewFixedSlotRepository(db)
	versionRepo := repository.NewScheduleVersionRepository(db)
	entryRepo := repository.NewScheduleEntryRepository(db)
	versionWriter := repository.NewVersionWriter(db, versionRepo, entryRepo)

	scheduleGeneratorSvc := service.NewScheduleGeneratorService(
		roomRepo,
		timeslotRepo,
		batchRepo,
		subjectRepo,
		offeringRepo,
		facultyAssignmentRepo,
		facultyUnavailabilityRepo,
		fixedSlotRepo,
		versionRepo,
		entryRepo,
		versionWriter,
		nil, // defaults to the local-search re-optimizer
		nil,
		logr,
		service.ScheduleGeneratorConfig{
			TimeLimitSeconds: cfg.Scheduler.TimeLimitSeconds,
			Workers:          cfg.Scheduler.Workers,
			ProposalTTL:      cfg.Scheduler.ProposalTTL,
		},
	)
	scheduleGeneratorSvc.WithMetrics(metricsSvc).WithCache(cacheSvc)
	scheduleGeneratorHandler := internalhandler.NewScheduleGeneratorHandler(scheduleGeneratorSvc)

	solveCtx, cancelSolveQueue := context.WithCancel(context.Background())
	defer cancelSolveQueue()
	solveQueue := jobqueue.NewSolveQueue(solveCtx, scheduleGeneratorSvc.Generate, jobs.QueueConfig{
		Workers:    2,
		MaxRetries: 0,
	}, logr)
	defer solveQueue.Stop()
	asyncScheduleHandler := internalhandler.NewAsyncScheduleHandler(solveQueue)

	exportStorage, err := storage.NewLocalStorage(cfg.Export.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to initialise export storage", "error", err)
	}
	exportSvc := service.NewExportService(
		versionRepo,
		entryRepo,
		roomRepo,
		subjectRepo,
		offeringRepo,
		facultyRepo,
		batchRepo,
		exportStorage,
		storage.NewSignedURLSigner(cfg.Export.SignedURLSecret, cfg.Export.SignedURLTTL),
		service.ExportConfig{APIPrefix: cfg.APIPrefix, ResultTTL: cfg.Export.SignedURLTTL},
		logr,
		nil,
		nil,
	)
	exportHandler := internalhandler.NewExportHandler(exportSvc)

	schedules := api.Group("/schedules")
	schedules.Use(internalmiddleware.JWT(authSvc))
	schedulerOnly := internalmiddleware.RequireRoles(models.RoleAdmin, models.RoleScheduler)
	schedules.GET("/versions", scheduleGeneratorHandler.ListVersions)
	schedules.PUT("/versions/:id/status", schedulerOnly, scheduleGeneratorHandler.SetVersionStatus)
	if cfg.Scheduler.Enabled {
		schedules.POST("/generate", schedulerOnly, scheduleGeneratorHandler.Generate)
		schedules.POST("/generate/async", schedulerOnly, asyncScheduleHandler.GenerateAsync)
		schedules.GET("/jobs/:id", schedulerOnly, asyncScheduleHandler.JobStatus)
		schedules.POST("/optimize", schedulerOnly, scheduleGeneratorHandler.ApplyExternalOptimization)
	}
	if cfg.Export.Enabled {
		schedules.GET("/versions/:id/export", schedulerOnly, exportHandler.Export)
		api.GET("/export/:token", exportHandler.Download)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func registerPprof(r *gin.Engine) {
	group := r.Group("/debug/pprof")
	group.GET("/", gin.WrapF(pprof.Index))
	group.GET("/cmdline", gin.WrapF(pprof.Cmdline))
	group.GET("/profile", gin.WrapF(pprof.Profile))
	group.POST("/symbol", gin.WrapF(pprof.Symbol))
	group.GET("/symbol", gin.WrapF(pprof.Symbol))
	group.GET("/trace", gin.WrapF(pprof.Trace))
	group.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
	group.GET("/block", gin.WrapH(pprof.Handler("block")))
	group.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
	group.GET("/heap", gin.WrapH(pprof.Handler("heap")))
	group.GET("/mutex", gin.WrapH(pprof.Handler("mutex")))
	group.GET("/threadcreate", gin.WrapH(pprof.Handler("threadcreate")))
}
