// launching the server, cache, kafka, redis
package appServer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/image-resizer/config"
	"github.com/ds124wfegd/image-resizer/internal/database"
	"github.com/ds124wfegd/image-resizer/internal/pkg/kafka"
	"github.com/ds124wfegd/image-resizer/internal/pkg/processor"
	"github.com/ds124wfegd/image-resizer/internal/pkg/redis"
	"github.com/ds124wfegd/image-resizer/internal/service"
	"github.com/ds124wfegd/image-resizer/internal/transport"
	"github.com/gin-gonic/gin"
	goredis "github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	httpServer *http.Server
}

func NewHTTPServer(cfg *config.Config, handler http.Handler) *Server {
	return &Server{httpServer: &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}}
}

func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// NewServer wires every dependency and blocks until SIGINT/SIGTERM.
func NewServer(cfg *config.Config) error {

	setupLogger(cfg.Server.LogLevel)

	var cache database.ResizeCache
	if cfg.Cache.Enabled {
		c, err := database.NewResizeCache(cfg.Cache.Size)
		if err != nil {
			return fmt.Errorf("create resize cache: %w", err)
		}
		cache = c
		logrus.Infof("Resize cache enabled, %d entries", cfg.Cache.Size)
	}

	producer := kafka.NewNoopProducer()
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer producer.Close()

	var redisClient *goredis.Client
	if cfg.RateLimit.Enabled {
		redisClient = redis.NewRedisClient(&cfg.Redis)
		defer redisClient.Close()
		logrus.Infof("Rate limit enabled: %d requests per %s", cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}

	imgProcessor := processor.NewImageProcessor(cfg.App.JPEGQuality)
	imgService := service.NewImageService(cache, producer, imgProcessor, cfg.Kafka.Topic)
	imgHandler := transport.NewImageHandler(imgService, cfg.App.MaxUploadSize, cfg.App.MaxDimension)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := transport.InitRoutes(imgHandler, transport.RouterOptions{
		APIKey:          cfg.Auth.APIKey,
		APIKeyHeader:    cfg.Auth.Header,
		RequestTimeout:  cfg.Server.RequestTimeout,
		Redis:           redisClient,
		RateLimit:       cfg.RateLimit.Limit,
		RateLimitWindow: cfg.RateLimit.Window,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	errGroup, ctx := errgroup.WithContext(ctx)
	srv := NewHTTPServer(cfg, router)

	errGroup.Go(func() error {
		logrus.Infof("App Started on %s:%s", cfg.Server.Host, cfg.Server.Port)
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error occured while running http server: %w", err)
		}
		return nil
	})

	errGroup.Go(func() error {
		<-ctx.Done()
		logrus.Print("App Shutting Down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error occured on server shutting down: %w", err)
		}
		return nil
	})

	return errGroup.Wait()
}

func setupLogger(level string) {
	logrus.SetFormatter(new(logrus.JSONFormatter))
	logrus.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Unknown log level %q, using info", level)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}
