// cmd/rsa-vault-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/MGTheTrain/rsa-vault/internal/api/rest/v1"
	"github.com/MGTheTrain/rsa-vault/internal/app"
	"github.com/MGTheTrain/rsa-vault/internal/domain/blobs"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/rsa-vault/internal/infrastructure/persistence"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/randstate"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := persistence.CloseDB(deps.db); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}()

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db       *gorm.DB
	random   *randstate.Source
	services *appServices
}

type appServices struct {
	blobUpload        blobs.BlobUploadService
	blobDownload      blobs.BlobDownloadService
	blobMetadata      blobs.BlobMetadataService
	cryptoKeyUpload   keys.CryptoKeyUploadService
	cryptoKeyDownload keys.CryptoKeyDownloadService
	cryptoKeyMetadata keys.CryptoKeyMetadataService
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := persistence.Migrate(db); err != nil {
		return nil, err
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	blobRepo, err := persistence.NewGormBlobRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob repository: %w", err)
	}

	keyRepo, err := persistence.NewGormRSAKeyRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create rsa key repository: %w", err)
	}

	// One random source is shared by all request handlers
	seed := cfg.Keygen.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	random := randstate.New(seed)

	services, err := initializeApplicationServices(random, blobRepo, keyRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &appDependencies{
		db:       db,
		random:   random,
		services: services,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r,
		deps.services.blobUpload,
		deps.services.blobDownload,
		deps.services.blobMetadata,
		deps.services.cryptoKeyUpload,
		deps.services.cryptoKeyDownload,
		deps.services.cryptoKeyMetadata,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal, initiating graceful shutdown", "signal", sig.String())
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	deps.random.Clear()

	log.Info("Server stopped gracefully")
	return nil
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	random *randstate.Source,
	blobRepo blobs.BlobRepository,
	keyRepo keys.RSAKeyRepository,
	log logger.Logger,
) (*appServices, error) {
	rsaProcessor, err := cryptography.NewRSAProcessor(random, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	codec, err := cryptography.NewStreamCodec(rsaProcessor, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream codec: %w", err)
	}

	generator, err := app.NewKeyGenerationService(rsaProcessor, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key generation service: %w", err)
	}

	cipher, err := app.NewStreamCipherService(rsaProcessor, codec, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream cipher service: %w", err)
	}

	blobUploadService, err := app.NewBlobUploadService(blobRepo, keyRepo, cipher, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob upload service: %w", err)
	}

	blobDownloadService, err := app.NewBlobDownloadService(blobRepo, keyRepo, cipher, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob download service: %w", err)
	}

	blobMetadataService, err := app.NewBlobMetadataService(blobRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob metadata service: %w", err)
	}

	cryptoKeyUploadService, err := app.NewCryptoKeyUploadService(generator, keyRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create crypto key upload service: %w", err)
	}

	cryptoKeyDownloadService, err := app.NewCryptoKeyDownloadService(keyRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create crypto key download service: %w", err)
	}

	cryptoKeyMetadataService, err := app.NewCryptoKeyMetadataService(keyRepo, blobRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create crypto key metadata service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appServices{
		blobUpload:        blobUploadService,
		blobDownload:      blobDownloadService,
		blobMetadata:      blobMetadataService,
		cryptoKeyUpload:   cryptoKeyUploadService,
		cryptoKeyDownload: cryptoKeyDownloadService,
		cryptoKeyMetadata: cryptoKeyMetadataService,
	}, nil
}
