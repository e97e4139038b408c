package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"agritrust/config"
	"agritrust/cron"
	"agritrust/database"
	buyerRepoPkg "agritrust/database/repository/buyer"
	driverRepoPkg "agritrust/database/repository/driver"
	farmerRepoPkg "agritrust/database/repository/farmer"
	"agritrust/handlers"
	"agritrust/middleware"
	"agritrust/routes"
	"agritrust/services/billing"
	buyerSvc "agritrust/services/buyer"
	driverSvc "agritrust/services/driver"
	farmerSvc "agritrust/services/farmer"
	"agritrust/services/mailer"
	"agritrust/services/storage"
	"agritrust/services/tasks"
	"agritrust/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	uploader, err := storage.NewCloudinaryUploader()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary uploader: %v", err)
	}
	images := &storage.ImageResolver{Uploader: uploader}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	farmerRepo := farmerRepoPkg.NewMongoFarmerRepo()
	buyerRepo := buyerRepoPkg.NewMongoBuyerRepo()
	driverRepo := driverRepoPkg.NewMongoDriverRepo()

	// background task queue and mail delivery.
	taskClient := tasks.NewClient()
	defer taskClient.Close()
	mail := mailer.NewSendGridMailer()
	cron.InitResetWorker(mail, farmerRepo, driverRepo)

	// services.
	farmerService := &farmerSvc.DefaultFarmerService{
		Repo:   farmerRepo,
		Images: images,
		Queue:  taskClient,
	}
	buyerService := &buyerSvc.DefaultBuyerService{
		Repo: buyerRepo,
	}
	driverService := &driverSvc.DefaultDriverService{
		Repo:   driverRepo,
		Images: images,
		Queue:  taskClient,
	}
	billingService := &billing.Service{}

	farmerHandler := &handlers.FarmerHandler{Service: farmerService}
	buyerHandler := &handlers.BuyerHandler{Service: buyerService}
	driverHandler := &handlers.DriverHandler{Service: driverService}
	billingHandler := &handlers.BillingHandler{Service: billingService}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		FarmerRepo: farmerRepo,
		BuyerRepo:  buyerRepo,
		DriverRepo: driverRepo,

		RegisterFarmerHandler:        farmerHandler.RegisterFarmerHandler,
		AuthenticateFarmerHandler:    farmerHandler.AuthenticateFarmerHandler,
		CheckFarmerUsernameHandler:   farmerHandler.CheckFarmerUsernameHandler,
		GetFarmerByIDHandler:         farmerHandler.GetFarmerByIDHandler,
		UpdateFarmerHandler:          farmerHandler.UpdateFarmerHandler,
		UpdateFarmerPasswordHandler:  farmerHandler.UpdateFarmerPasswordHandler,
		DeleteFarmerHandler:          farmerHandler.DeleteFarmerHandler,
		ForgotFarmerPasswordHandler:  farmerHandler.ForgotFarmerPasswordHandler,
		VerifyFarmerResetCodeHandler: farmerHandler.VerifyFarmerResetCodeHandler,
		ResetFarmerPasswordHandler:   farmerHandler.ResetFarmerPasswordHandler,

		RegisterBuyerHandler:       buyerHandler.RegisterBuyerHandler,
		AuthenticateBuyerHandler:   buyerHandler.AuthenticateBuyerHandler,
		CheckBuyerUsernameHandler:  buyerHandler.CheckBuyerUsernameHandler,
		GetBuyerByIDHandler:        buyerHandler.GetBuyerByIDHandler,
		UpdateBuyerHandler:         buyerHandler.UpdateBuyerHandler,
		UpdateBuyerPasswordHandler: buyerHandler.UpdateBuyerPasswordHandler,
		DeleteBuyerHandler:         buyerHandler.DeleteBuyerHandler,

		RegisterDriverHandler:        driverHandler.RegisterDriverHandler,
		AuthenticateDriverHandler:    driverHandler.AuthenticateDriverHandler,
		CheckDriverEmailHandler:      driverHandler.CheckDriverEmailHandler,
		GetDriverByIDHandler:         driverHandler.GetDriverByIDHandler,
		UpdateDriverHandler:          driverHandler.UpdateDriverHandler,
		UpdateDriverPasswordHandler:  driverHandler.UpdateDriverPasswordHandler,
		DeleteDriverHandler:          driverHandler.DeleteDriverHandler,
		ForgotDriverPasswordHandler:  driverHandler.ForgotDriverPasswordHandler,
		VerifyDriverResetCodeHandler: driverHandler.VerifyDriverResetCodeHandler,
		ResetDriverPasswordHandler:   driverHandler.ResetDriverPasswordHandler,

		VerifyBillingHandler:      billingHandler.VerifyBillingHandler,
		PlacesAutocompleteHandler: handlers.PlacesAutocompleteHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor([]*redis.Client{utils.GetAuthCacheClient(), utils.GetResetCacheClient()}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
