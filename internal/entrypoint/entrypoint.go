package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/librarian/internal/config"
	"github.com/openshelf/librarian/internal/database"
	"github.com/openshelf/librarian/internal/database/books"
	"github.com/openshelf/librarian/internal/database/borrows"
	paymentsdb "github.com/openshelf/librarian/internal/database/payments"
	http_controllers "github.com/openshelf/librarian/internal/http"
	"github.com/openshelf/librarian/internal/payments"
	"github.com/openshelf/librarian/internal/scheduler"
	"github.com/openshelf/librarian/internal/services"
	"github.com/openshelf/librarian/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Librarian v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	bookRepo := books.NewRepository(db.DB)
	borrowRepo := borrows.NewRepository(db.DB)
	ledgerRepo := paymentsdb.NewRepository(db.DB)

	service := services.NewService(bookRepo, borrowRepo, ledgerRepo, nil)
	gateway := payments.NewGateway(cfg.Gateway.FailureRate)

	// Task queue for overdue notices
	var taskClient *tasks.Client
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		taskClient.Register(tasks.NewOverdueNoticeQueue(borrowRepo, cfg.OverdueScan.NoticeWindow))
		go taskClient.Start(context.Background())
	}

	var overdueScan *scheduler.OverdueScanScheduler
	if cfg.OverdueScan.Enabled && taskClient != nil {
		overdueScan = scheduler.NewOverdueScanScheduler(borrowRepo, taskClient, cfg.OverdueScan.Schedule)
		if err := overdueScan.Start(context.Background()); err != nil {
			log.Printf("WARNING: overdue scan disabled: %v", err)
			overdueScan = nil
		}
	}

	catalogController := http_controllers.NewCatalogController(service, bookRepo)
	circulationController := http_controllers.NewCirculationController(service)
	patronController := http_controllers.NewPatronController(service)
	paymentController := http_controllers.NewPaymentController(service, gateway)
	healthController := http_controllers.NewHealthController(db, version)

	router := gin.Default()

	router.GET("/health", healthController.Status)

	api := router.Group("/api")
	{
		api.POST("/books", catalogController.AddBook)
		api.GET("/books", catalogController.ListBooks)
		api.GET("/books/search", catalogController.SearchBooks)
		api.POST("/borrow", circulationController.Borrow)
		api.POST("/return", circulationController.Return)
		api.GET("/patrons/:id", patronController.StatusReport)
		api.GET("/patrons/:id/fees/:bookID", patronController.LateFeeQuote)
		api.GET("/patrons/:id/payments", patronController.PaymentHistory)
		api.POST("/payments", paymentController.PayFees)
		api.POST("/refunds", paymentController.Refund)
	}

	Serve(router, cfg, func(ctx context.Context) {
		if overdueScan != nil {
			overdueScan.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
			taskClient.Close()
		}
	})
}
