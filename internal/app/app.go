package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpHandler "github.com/anthanhphan/go-dataset-preview/internal/adapter/inbound/http"
	"github.com/anthanhphan/go-dataset-preview/internal/adapter/outbound/imagefetch"
	"github.com/anthanhphan/go-dataset-preview/internal/adapter/outbound/mongostore"
	"github.com/anthanhphan/go-dataset-preview/internal/adapter/outbound/redisstore"
	"github.com/anthanhphan/go-dataset-preview/internal/config"
	"github.com/anthanhphan/go-dataset-preview/internal/service"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type App struct {
	cfg         *config.Config
	server      *httpHandler.Server
	mongoClient *mongo.Client
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	// 3. Initialize Redis (staging store)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// 4. Initialize Mongo (durable record store)
	mongoClient, err := connectMongo(cfg.Mongo.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	records := mongostore.New(mongoClient.Database(cfg.Mongo.Database))
	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelIndex()
	if err := records.EnsureIndexes(indexCtx); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	// 5. Adapters & Services
	staging := redisstore.New(redisClient)
	fetcher := imagefetch.New(time.Duration(cfg.Resolver.FetchTimeoutMS) * time.Millisecond)
	svc := service.NewPipelineService(cfg, staging, records, fetcher)

	// 6. HTTP Server
	httpServer := httpHandler.NewServer(cfg, svc, svc, svc)

	return &App{
		cfg:         cfg,
		server:      httpServer,
		mongoClient: mongoClient,
	}, nil
}

func connectMongo(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, cancelDisconnect := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelDisconnect()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}

	return client, nil
}

func (a *App) Run() error {
	logger.Infow("Preview service starting", "addr", a.cfg.Server.Addr)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrCh:
		runErr = fmt.Errorf("http server failed: %w", err)
		logger.Errorw("Server exited unexpectedly", "error", err.Error())
	}

	logger.Info("Shutting down preview service")
	if err := a.server.Stop(context.Background()); err != nil {
		logger.Errorw("Server shutdown error", "error", err.Error())
		if runErr == nil {
			runErr = err
		}
	}

	disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.mongoClient.Disconnect(disconnectCtx); err != nil {
		logger.Errorw("Mongo disconnect error", "error", err.Error())
	}

	return runErr
}
