package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/eyfs-nursery/eyfs-nursery/internal/app"
	"github.com/eyfs-nursery/eyfs-nursery/internal/auth"
	"github.com/eyfs-nursery/eyfs-nursery/internal/children"
	"github.com/eyfs-nursery/eyfs-nursery/internal/classes"
	"github.com/eyfs-nursery/eyfs-nursery/internal/messages"
	"github.com/eyfs-nursery/eyfs-nursery/internal/observability"
	"github.com/eyfs-nursery/eyfs-nursery/internal/observations"
	"github.com/eyfs-nursery/eyfs-nursery/internal/planning"
	"github.com/eyfs-nursery/eyfs-nursery/internal/platform/cache"
	"github.com/eyfs-nursery/eyfs-nursery/internal/platform/db"
	"github.com/eyfs-nursery/eyfs-nursery/internal/rbac"
	"github.com/eyfs-nursery/eyfs-nursery/internal/users"
	"github.com/eyfs-nursery/eyfs-nursery/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	var directory users.Directory
	if cfg.UsePostgres {
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		pgDir := users.NewPGDirectory(pool)
		if cfg.SeedDemoData {
			if err := pgDir.EnsureSeed(ctx, users.SeedUsers()); err != nil {
				logger.Error("seed users", slog.Any("error", err))
				os.Exit(1)
			}
		}
		directory = pgDir
	} else {
		var seed []users.User
		if cfg.SeedDemoData {
			seed = users.SeedUsers()
		}
		directory = users.NewMemoryDirectory(seed)
	}

	roles := rbac.DefaultRoles()
	guard := rbac.Middleware{Roles: roles, Logger: logger}
	metrics := observability.NewMetrics()

	signer := auth.NewTokenSigner(cfg.SessionSecret, cfg.SessionTTL)
	sessionStore := auth.NewRedisSessionStore(redisClient)
	manager := auth.NewManager(directory, roles, sessionStore, signer)
	manager.OnLockout(metrics.CountLockout)

	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	authHandler := auth.NewHandler(logger, manager, metrics)
	usersHandler := users.NewHandler(logger, users.NewService(directory), manager, guard)
	rbacHandler := rbac.NewHandler(logger, roles, guard)

	var childSeed []children.Child
	if cfg.SeedDemoData {
		childSeed = children.SeedChildren()
	}
	childrenService := children.NewService(children.NewMemoryStore(childSeed))
	childrenHandler := children.NewHandler(logger, childrenService, guard)

	classesService := classes.NewService(classes.SeedClasses())
	classesHandler := classes.NewHandler(logger, classesService, guard)

	observationsService := observations.NewService()
	observationsHandler := observations.NewHandler(logger, observationsService, guard)

	planningService := planning.NewService()
	planningHandler := planning.NewHandler(logger, planningService, guard)

	messagesService := messages.NewService(jobsClient)
	messagesHandler := messages.NewHandler(logger, messagesService, guard)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		AuthHandler:         authHandler,
		UsersHandler:        usersHandler,
		RBACHandler:         rbacHandler,
		ChildrenHandler:     childrenHandler,
		ClassesHandler:      classesHandler,
		ObservationsHandler: observationsHandler,
		PlanningHandler:     planningHandler,
		MessagesHandler:     messagesHandler,
		JobHandler:          jobHandler,
		Authenticate:        auth.Middleware(manager),
		Metrics:             metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("server exit", slog.Any("error", err))
		os.Exit(1)
	}
}
