package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"asset-manager-api/config"
	"asset-manager-api/internal/application/ports"
	"asset-manager-api/internal/application/services"
	"asset-manager-api/internal/infrastructure/db/postgres"
	assetDB "asset-manager-api/internal/infrastructure/db/postgres/asset"
	bucketDB "asset-manager-api/internal/infrastructure/db/postgres/bucket"
	clientDB "asset-manager-api/internal/infrastructure/db/postgres/client"
	userDB "asset-manager-api/internal/infrastructure/db/postgres/user"
	"asset-manager-api/internal/infrastructure/metrics"
	"asset-manager-api/internal/infrastructure/mq"
	"asset-manager-api/internal/infrastructure/secrets"
	"asset-manager-api/internal/infrastructure/sqlbuilder"
	"asset-manager-api/internal/infrastructure/storage"
	"asset-manager-api/internal/infrastructure/token"
	"asset-manager-api/internal/interface/api/rest"
	"asset-manager-api/internal/interface/api/rest/middleware"
	"asset-manager-api/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	secrets    *secrets.Secrets
	backend    sqlbuilder.Backend
	storage    *storage.Manager
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	defer logger.Sync()

	// config
	if err = godotenv.Load(".env"); err != nil {
		logger.Fatal("error loading .env file", zap.Error(err))
	}
	cfg := config.Load()

	// secrets
	secretsPath := cfg.Storage.SecretsPath
	if secretsPath == "" {
		dir, err := secrets.InstallDir()
		if err != nil {
			logger.Fatal("unable to locate secrets", zap.Error(err))
		}
		secretsPath = filepath.Join(dir, secrets.Filename)
	}
	sec, err := secrets.Load(secretsPath)
	if err != nil {
		logger.Fatal("failed to load secrets", zap.Error(err))
	}

	// query builder backend
	backend, err := sqlbuilder.ParseBackend(cfg.DB.Backend)
	if err != nil {
		logger.Fatal("DB backend config error", zap.Error(err))
	}

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: r,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// storage
	if err = os.MkdirAll(cfg.Storage.Root, 0o755); err != nil {
		logger.Fatal("failed to prepare storage root", zap.Error(err))
	}
	if err = os.MkdirAll(cfg.Storage.TmpDir, 0o755); err != nil {
		logger.Fatal("failed to prepare upload tmp dir", zap.Error(err))
	}
	store := storage.New(cfg.Storage.Root, logger)

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		logger.Fatal("RabbitMQ config error", zap.Error(err))
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
	}
	if err = rbMQ.Init(); err != nil {
		logger.Fatal("failed init rabbitMQ", zap.Error(err))
	}
	//rmqConsumer
	rmqConsumer := rmqconsumer.New(cfg.MQ, logger, rbMQ.GetConn())
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
	}
	if err = rmqConsumer.Init(); err != nil {
		logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
	}

	return &App{
		logger:     logger,
		cfg:        cfg,
		db:         dbPool,
		secrets:    sec,
		backend:    backend,
		storage:    store,
		httpSrv:    httpSrv,
		router:     r,
		mCounter:   mCounter,
		mq:         rbMQ,
		mqConsumer: rmqConsumer,
	}, nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mq.GetConn() != nil {
		a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.cfg.App.Host+":"+a.cfg.App.Port))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.mq.PublisherWorker(ctx)
		return nil
	})

	g.Go(func() error {
		a.mqConsumer.DeliveryWorker(ctx)
		return nil
	})

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() error {
	// repos
	clientRepo, err := clientDB.NewRepository(a.db, a.backend)
	if err != nil {
		return err
	}
	userRepo, err := userDB.NewRepository(a.db, a.backend)
	if err != nil {
		return err
	}
	assetRepo, err := assetDB.NewRepository(a.db, a.backend)
	if err != nil {
		return err
	}
	bucketRepo, err := bucketDB.NewRepository(a.db, a.backend)
	if err != nil {
		return err
	}

	// token infrastructure
	cipher, err := token.NewClientCipher(a.secrets)
	if err != nil {
		return err
	}
	session := token.NewSessionService(a.secrets.JWTSecret, a.cfg.App.Bearer)

	// services
	clientService := services.NewClientService(clientRepo, cipher)
	authService := services.NewAuthService(userRepo, session, a.cfg.App.AccessTTL, a.cfg.App.RefreshTTL)
	userService := services.NewUserService(userRepo, a.storage, a.mq, a.mCounter)
	accessService := services.NewAccessService(assetRepo, a.storage, a.logger)
	assetService := services.NewAssetService(assetRepo, userRepo, a.storage, a.mq, a.mCounter)
	bucketService := services.NewBucketService(bucketRepo, a.storage, a.mq, a.mCounter)

	// controllers
	rest.NewAuthController(a.router, a.logger, authService, a.cfg.App.Bearer)
	rest.NewUserController(a.router, userService, clientService, authService, a.logger)
	rest.NewBucketController(a.router, bucketService, clientService, a.logger)
	rest.NewAssetController(a.router, assetService, accessService, authService, a.logger, a.cfg.Storage.TmpDir)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))

	return nil
}

func (a *App) Logger() *zap.Logger { return a.logger }
