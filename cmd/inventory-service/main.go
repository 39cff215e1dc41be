package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/inventory-tracker/internal/auth"
	"github.com/iyhunko/inventory-tracker/internal/config"
	httpAPI "github.com/iyhunko/inventory-tracker/internal/http"
	"github.com/iyhunko/inventory-tracker/internal/http/controller"
	"github.com/iyhunko/inventory-tracker/internal/logger"
	"github.com/iyhunko/inventory-tracker/internal/metrics"
	"github.com/iyhunko/inventory-tracker/internal/repository/sql"
	"github.com/iyhunko/inventory-tracker/internal/service"
	sqspkg "github.com/iyhunko/inventory-tracker/internal/sqs"
)

func main() {
	logger.InitJSONLogger()

	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	ctx := context.Background()
	db, err := sql.StartDB(ctx, conf.Database)
	handleErr("starting database", err)
	defer db.Close()

	// Create repositories
	userRepository := sql.NewUserRepository(db)
	productRepository := sql.NewProductRepository(db)
	eventRepository := sql.NewEventRepository(db)
	transactionalRepository := sql.NewTransactionalRepository(db)

	// Initialize AWS SQS client for stock-change notifications
	sqsClient, err := sqspkg.NewClient(ctx, conf.AWS.Region, conf.AWS.Endpoint)
	handleErr("loading AWS config", err)
	sqsPublisher := sqspkg.NewPublisher(sqsClient, conf.AWS.SQSQueueURL)

	// Create services
	tokenIssuer := auth.NewTokenIssuer(conf.Auth.JWTSecret, conf.Auth.TokenTTL)
	userService := service.NewUserService(userRepository, tokenIssuer)
	identityService := service.NewIdentityService(userRepository, tokenIssuer)
	productService := service.NewProductService(productRepository, transactionalRepository, sqsPublisher)

	// Start outbox worker to publish pending events every 2 seconds
	outboxWorker := service.NewOutboxWorker(eventRepository, sqsPublisher, 2*time.Second)
	go outboxWorker.Start(ctx)

	// Start HTTP server
	if !conf.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	ctr := controller.New()
	authCtr := controller.NewAuthController(userService)
	productCtr := controller.NewProductController(productService)
	httpServer := gin.Default()
	httpServer = httpAPI.InitRouter(httpServer, identityService, ctr, authCtr, productCtr)

	go func() {
		err = httpServer.Run(":" + conf.HTTPServer.Port)
		if err != nil {
			handleErr("listening to HTTP requests", err)
		}
	}()

	// Start metrics server
	metrics.StartMetricsServer(conf)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down gracefully...")
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error while %s: %v", msg, err)
	}
}
