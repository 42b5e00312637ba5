package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskboard/backend/api/handler"
	"github.com/taskboard/backend/internal/config"
	"github.com/taskboard/backend/internal/infrastructure/activity"
	"github.com/taskboard/backend/internal/infrastructure/monitor"
	pgInfra "github.com/taskboard/backend/internal/infrastructure/postgres"
	redisInfra "github.com/taskboard/backend/internal/infrastructure/redis"
	"github.com/taskboard/backend/internal/middleware"
	"github.com/taskboard/backend/internal/router"
	"github.com/taskboard/backend/internal/services"
	"github.com/taskboard/backend/internal/services/lifecycle"
	"github.com/taskboard/backend/pkg/hasher"
	"github.com/taskboard/backend/pkg/httpcontext"
	"github.com/taskboard/backend/pkg/logger"
	"github.com/taskboard/backend/pkg/sessiontoken"
	"github.com/taskboard/backend/repository/postgres"
	redisRepo "github.com/taskboard/backend/repository/redis"
	authUC "github.com/taskboard/backend/usecase/auth"
	boardUC "github.com/taskboard/backend/usecase/board"
	projectUC "github.com/taskboard/backend/usecase/project"
	taskUC "github.com/taskboard/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	activityStore, err := activity.Open(cfg.Activity.Path)
	if err != nil {
		zapLogger.Fatal("failed to open activity store", zap.Error(err))
	}
	manager.Register("activity_store", func(ctx context.Context) error {
		return activityStore.Close()
	})

	mon := monitor.New(pool, redisClient, activityStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	activitySvc := services.NewActivityService(activityStore, zapLogger, services.ActivityConfig{
		Retention:     time.Duration(cfg.Activity.RetentionHours) * time.Hour,
		SweepInterval: cfg.Activity.SweepInterval,
	})
	activitySvc.Start()
	manager.Register("activity_service", func(ctx context.Context) error {
		activitySvc.Stop(ctx)
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	subtaskRepo := postgres.NewSubtaskRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Session.TTL)

	passwordHasher := hasher.NewBcrypt(cfg.BcryptCost)
	codec := sessiontoken.NewCodec(cfg.Session.Secret, cfg.Session.Issuer)

	authUseCase := authUC.New(userRepo, sessionRepo, passwordHasher, cfg.Session.TTL, zapLogger)
	projectUseCase := projectUC.New(projectRepo, userRepo, activitySvc, zapLogger)
	boardUseCase := boardUC.New(taskRepo, subtaskRepo, zapLogger)
	taskUseCase := taskUC.New(taskRepo, subtaskRepo, commentRepo, activitySvc, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authUseCase, codec, cfg.Session.CookieName, ctxAdapter, zapLogger),
		Project: apiHandler.NewProjectHandler(projectUseCase, ctxAdapter, zapLogger),
		Task:    apiHandler.NewTaskHandler(taskUseCase, boardUseCase, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	sessionMW := middleware.SessionAuth(codec, authUseCase, cfg.Session.CookieName, ctxAdapter, zapLogger)
	guard := middleware.NewGuard(projectUseCase, ctxAdapter, zapLogger)
	r := router.New(handlers, sessionMW, guard.RequireMember, guard.RequireOwner)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
