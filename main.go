package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kariqs/farmkart-api/controllers"
	"github.com/Kariqs/farmkart-api/initializers"
	"github.com/Kariqs/farmkart-api/middlewares"
	"github.com/Kariqs/farmkart-api/routes"
	"github.com/Kariqs/farmkart-api/services"
	"github.com/Kariqs/farmkart-api/store"
	"github.com/Kariqs/farmkart-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

func main() {
	cfg, err := initializers.LoadEnv()
	if err != nil {
		log.Fatal(err)
	}

	db, err := initializers.ConnectToDB(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := initializers.CloseDB(db); err != nil {
			log.Println("Error closing database:", err)
		}
	}()
	if err := initializers.SyncDatabase(db); err != nil {
		log.Fatal(err)
	}

	assetStore, err := initializers.NewAssetStore(context.Background(), cfg.Assets)
	if err != nil {
		log.Fatal(err)
	}

	mailer, err := utils.NewMailer(cfg.Mail)
	if err != nil {
		log.Fatal(err)
	}
	var notifier services.Notifier
	if mailer.Enabled() {
		notifier = utils.NewOrderMailer(mailer)
	} else {
		log.Println("SMTP is not configured, order emails are disabled")
	}

	st := store.New(db)
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, utils.TokenTTL)
	images := services.NewImages(st, assetStore, services.ImagesConfig{
		Folder:        cfg.Assets.Folder,
		Timeout:       cfg.Assets.UploadTimeout,
		MaxConcurrent: cfg.Assets.MaxUploads,
	})
	accounts := services.NewAccounts(st, tokens)
	catalog := services.NewCatalog(st, images)
	ledger := services.NewLedger(st, st, st, notifier)
	reports := services.NewReports(st, st)
	carts := services.NewCarts(st, st, ledger)

	productController := controllers.NewProductController(catalog, images)
	dashboardController := controllers.NewDashboardController(ledger, reports)

	server := gin.Default()
	server.MaxMultipartMemory = 8 << 20
	server.Use(middlewares.RequestID())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middlewares.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.Assets.Store == "disk" {
		server.Static(initializers.UploadsPath, cfg.Assets.UploadDir)
	}

	auth := middlewares.RequireAuth(tokens)
	routes.DefaultRoutes(server, st)
	routes.UserRoutes(server, auth, controllers.NewAuthController(accounts, tokens.TTL(), cfg.CookieSecure), productController, dashboardController)
	routes.ProductRoutes(server, auth, productController)
	routes.OrderRoutes(server, auth, controllers.NewOrderController(ledger, reports))
	routes.CartRoutes(server, auth, controllers.NewCartController(carts))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Println("Server listening on", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Println("Server forced to shutdown:", err)
	}
	if err := images.Close(ctx); err != nil {
		log.Println("Image uploads still running at shutdown:", err)
	}
}
