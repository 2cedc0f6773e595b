package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/bizgrid/backend/internal/application/catalog"
	appevent "github.com/bizgrid/backend/internal/application/event"
	identityapp "github.com/bizgrid/backend/internal/application/identity"
	notificationapp "github.com/bizgrid/backend/internal/application/notification"
	"github.com/bizgrid/backend/internal/infrastructure/ai"
	"github.com/bizgrid/backend/internal/infrastructure/concurrency"
	"github.com/bizgrid/backend/internal/infrastructure/config"
	"github.com/bizgrid/backend/internal/infrastructure/event"
	"github.com/bizgrid/backend/internal/infrastructure/logger"
	"github.com/bizgrid/backend/internal/infrastructure/mail"
	"github.com/bizgrid/backend/internal/infrastructure/persistence"
	"github.com/bizgrid/backend/internal/infrastructure/provisioner"
	"github.com/bizgrid/backend/internal/infrastructure/storage"
	"github.com/bizgrid/backend/internal/infrastructure/template"
	"github.com/bizgrid/backend/internal/interfaces/http/handler"
	"github.com/bizgrid/backend/internal/interfaces/http/middleware"
	"github.com/bizgrid/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting BizGrid Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, gormlogger.Warn)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Event bus with the three consumers wired behind the swallow-and-log
	// wrapper: a consumer failure is logged but never fails the publisher.
	bus := event.NewInMemoryEventBus(log)

	// Repositories and unit of work. Provisioning goes through the unit
	// of work, which materializes its own repositories.
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	embeddingRepo := persistence.NewGormEmbeddingRepository(db.DB)
	uowFactory := persistence.NewGormUnitOfWorkFactory(db.DB)

	// Object storage: presigned product-image uploads plus the cleanup
	// consumer's batch delete. Falls back to the in-memory stub when no
	// endpoint is configured so local development needs no S3.
	var objectStorage catalogapp.ObjectStorage
	if cfg.Storage.Endpoint != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			cancel()
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		cancel()
		objectStorage = s3Storage
	} else {
		log.Warn("No storage endpoint configured, using in-memory stub")
		objectStorage = storage.NewStubObjectStorage()
	}

	// Mail transport behind the concurrency gate
	gate, err := concurrency.NewGate(cfg.Mail.MaxConcurrentSends)
	if err != nil {
		log.Fatal("Invalid mail gate capacity", zap.Error(err))
	}
	var mailTransport notificationapp.MailTransport
	if cfg.Mail.Host != "" {
		mailTransport, err = mail.NewSMTPTransport(&cfg.Mail)
		if err != nil {
			log.Fatal("Failed to initialize mail transport", zap.Error(err))
		}
	} else {
		log.Warn("No SMTP host configured, emails will only be logged")
		mailTransport = mail.NewLoggingTransport(log)
	}
	renderer, err := template.NewHTMLRenderer(cfg.Mail.TemplatesPath)
	if err != nil {
		log.Fatal("Failed to initialize template renderer", zap.Error(err))
	}

	emailSender := notificationapp.NewEmailSender(gate, renderer, mailTransport, log)
	bus.Subscribe(appevent.NewConsumer(emailSender, log))

	// Embeddings consumer, only when an API key is present
	if cfg.AI.APIKey != "" {
		generator, err := ai.NewOpenAIEmbeddingGenerator(&cfg.AI)
		if err != nil {
			log.Fatal("Failed to initialize embedding generator", zap.Error(err))
		}
		embeddings := catalogapp.NewEmbeddingsHandler(productRepo, embeddingRepo, generator, log)
		bus.Subscribe(appevent.NewConsumer(embeddings, log))
	} else {
		log.Warn("No AI API key configured, embeddings generation disabled")
	}

	// Image cleanup compensation consumer
	imageCleanup := catalogapp.NewImageCleanupHandler(objectStorage, log)
	bus.Subscribe(appevent.NewConsumer(imageCleanup, log))

	if err := bus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Application services. The account provisioner is a logging stub
	// until the external identity subsystem is integrated.
	accountProvisioner := provisioner.NewStubProvisioner(log)
	provisioningService := identityapp.NewProvisioningService(
		uowFactory, accountProvisioner, bus, cfg.Mail.DefaultFrom, log)
	productService := catalogapp.NewProductService(
		productRepo, categoryRepo, objectStorage, bus, log)

	// HTTP server
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig()))

	engine.GET("/health", healthHandler(db))

	companyHandler := handler.NewCompanyHandler(provisioningService)
	productHandler := handler.NewProductHandler(productService)
	systemHandler := handler.NewSystemHandler()

	identityRoutes := router.NewDomainGroup("/identity")
	identityRoutes.POST("/companies", companyHandler.Create)

	catalogRoutes := router.NewDomainGroup("/catalog")
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.POST("/products/upload-url", productHandler.GenerateUploadURL)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)

	systemRoutes := router.NewDomainGroup("/system")
	systemRoutes.GET("/info", systemHandler.Info)
	systemRoutes.GET("/ping", systemHandler.Ping)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(identityRoutes).
		Register(catalogRoutes).
		Register(systemRoutes).
		Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if err := bus.Stop(ctx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports liveness including database reachability.
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
