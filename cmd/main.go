package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gabinork/Gabi-Nork-Tech-2/config"
	"github.com/gabinork/Gabi-Nork-Tech-2/internal/clients"
	"github.com/gabinork/Gabi-Nork-Tech-2/internal/delivery"
	grpcHandler "github.com/gabinork/Gabi-Nork-Tech-2/internal/delivery/grpc"
	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/gabinork/Gabi-Nork-Tech-2/internal/repository"
	"github.com/gabinork/Gabi-Nork-Tech-2/internal/usecase"
	"github.com/gabinork/Gabi-Nork-Tech-2/pkg/db"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := setupLogger("info")

	cfg := config.LoadConfig(logger)

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s' in config, using default 'info'. Error: %v", cfg.LogLevel, err)
	} else {
		logger.SetLevel(logLevel)
	}
	logger.Info("Starting Storefront Service...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Backends ---
	orderRepo, closeOrders := setupOrderRepository(ctx, cfg, logger)
	defer closeOrders()

	kvStorage, closeKV := setupSessionStorage(ctx, cfg, logger)
	defer closeKV()

	publisher, closePublisher := setupOrderPublisher(cfg, logger)
	defer closePublisher()

	productRepo := repository.NewStaticProductRepository(logger)
	chat := setupChatCollaborator(ctx, cfg, productRepo.ListProducts(), logger)

	// --- Use cases ---
	catalogUseCase := usecase.NewCatalogUseCase(productRepo, logger)
	cartUseCase := usecase.NewCartUseCase(logger)
	sessionUseCase := usecase.NewSessionUseCase(kvStorage, logger)
	accountUseCase, err := usecase.NewAccountUseCase(sessionUseCase, cfg.AdminEmail, cfg.AdminPassword, logger)
	if err != nil {
		logger.Fatalf("Failed to initialise accounts: %v", err)
	}
	logger.Info("Use cases initialized.")

	router := delivery.NewRouter(delivery.UseCases{
		Catalog:  catalogUseCase,
		Carts:    cartUseCase,
		Sessions: sessionUseCase,
		Accounts: accountUseCase,
		Checkout: usecase.NewCheckoutUseCase(cartUseCase, orderRepo, publisher, cfg.CheckoutDelay, logger),
		Tracking: usecase.NewTrackingUseCase(orderRepo, logger),
		Chat:     usecase.NewChatUseCase(chat, cfg.ChatTimeout, logger),
	}, logger)
	httpServer := &http.Server{
		Addr:              cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	grpcHandler.Register(grpcServer, catalogUseCase, logger)
	healthServer := health.NewServer()
	healthServer.SetServingStatus(grpcHandler.CatalogServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)
	logger.Info("gRPC services registered")

	lis, err := net.Listen("tcp", cfg.GrpcPort)
	if err != nil {
		logger.Fatalf("Failed to listen on port %s: %v", cfg.GrpcPort, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("HTTP server listening on %s", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		logger.Infof("gRPC server listening on %s", cfg.GrpcPort)
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Warn("Shutdown signal received...")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("HTTP server shutdown error: %v", err)
		}
		grpcServer.GracefulStop()
		logger.Info("Servers stopped.")
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Errorf("Storefront Service stopped with error: %v", err)
		return
	}
	logger.Info("Storefront Service shut down gracefully.")
}

func setupLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("Invalid log level '%s', using default 'info'. Error: %v", level, err)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	if logLevel < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	return logger
}

func setupOrderRepository(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (domain.OrderRepository, func()) {
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, orders are kept in memory")
		return repository.NewMemoryOrderRepository(logger), func() {}
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Migrate(ctx, database); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}
	logger.Info("Database connection established successfully.")

	return repository.NewPostgresOrderRepository(database, logger), func() {
		if err := database.Close(); err != nil {
			logger.Errorf("Error closing database connection: %v", err)
		} else {
			logger.Info("Database connection closed.")
		}
	}
}

func setupSessionStorage(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (domain.KeyValueStorage, func()) {
	if cfg.RedisURL == "" {
		logger.Warn("REDIS_URL not set, sessions are kept in memory")
		return repository.NewMemoryKeyValueStorage(), func() {}
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatalf("Invalid REDIS_URL: %v", err)
	}
	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Fatalf("Failed to connect to redis: %v", err)
	}
	logger.Info("Redis connection established.")

	return repository.NewRedisKeyValueStorage(client, cfg.SessionTTL, logger), func() {
		if err := client.Close(); err != nil {
			logger.Errorf("Error closing redis client: %v", err)
		}
	}
}

func setupOrderPublisher(cfg *config.Config, logger *logrus.Logger) (domain.OrderPublisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Warn("KAFKA_BROKERS not set, order events are logged only")
		return clients.NewLogOrderPublisher(logger), func() {}
	}

	writer := clients.NewKafkaWriter(cfg.KafkaBrokers)
	logger.Infof("Publishing order events to topic %s", cfg.OrderEventsTopic)
	return clients.NewKafkaOrderPublisher(writer, cfg.OrderEventsTopic, logger), func() {
		if err := writer.Close(); err != nil {
			logger.Errorf("Error closing kafka writer: %v", err)
		}
	}
}

func setupChatCollaborator(ctx context.Context, cfg *config.Config, products []domain.Product, logger *logrus.Logger) domain.ChatCollaborator {
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, the assistant replies with its fallback message")
		return clients.NewOfflineChatClient()
	}

	chat, err := clients.NewGeminiChatClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, products, logger)
	if err != nil {
		logger.Errorf("Failed to create Gemini client, assistant is offline: %v", err)
		return clients.NewOfflineChatClient()
	}
	return chat
}
