package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	advertisementhandlers "github.com/Gel788/metch-dating-app/internal/advertisement/handlers"
	advertisementmodels "github.com/Gel788/metch-dating-app/internal/advertisement/models"
	"github.com/Gel788/metch-dating-app/internal/auth"
	authhandlers "github.com/Gel788/metch-dating-app/internal/auth/handlers"
	authmodels "github.com/Gel788/metch-dating-app/internal/auth/models"
	authservices "github.com/Gel788/metch-dating-app/internal/auth/services"
	"github.com/Gel788/metch-dating-app/internal/common/config"
	"github.com/Gel788/metch-dating-app/internal/common/database"
	"github.com/Gel788/metch-dating-app/internal/common/health"
	"github.com/Gel788/metch-dating-app/internal/common/logging"
	"github.com/Gel788/metch-dating-app/internal/common/metrics"
	"github.com/Gel788/metch-dating-app/internal/common/middleware"
	favoritehandlers "github.com/Gel788/metch-dating-app/internal/favorite/handlers"
	favoritemodels "github.com/Gel788/metch-dating-app/internal/favorite/models"
	messagehandlers "github.com/Gel788/metch-dating-app/internal/message/handlers"
	messagemodels "github.com/Gel788/metch-dating-app/internal/message/models"
	messageservices "github.com/Gel788/metch-dating-app/internal/message/services"
	premiumhandlers "github.com/Gel788/metch-dating-app/internal/premium/handlers"
	premiummodels "github.com/Gel788/metch-dating-app/internal/premium/models"
	profilehandlers "github.com/Gel788/metch-dating-app/internal/profile/handlers"
	profilemodels "github.com/Gel788/metch-dating-app/internal/profile/models"
	"github.com/Gel788/metch-dating-app/internal/realtime"
	swipehandlers "github.com/Gel788/metch-dating-app/internal/swipe/handlers"
	swipemodels "github.com/Gel788/metch-dating-app/internal/swipe/models"
	"github.com/Gel788/metch-dating-app/internal/ws"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Get().Fatal("failed to load configuration", zap.Error(err))
	}

	if err := logging.Init(logging.LogLevel(cfg.Logging.Level), cfg.Logging.Format); err != nil {
		logging.Get().Fatal("failed to initialize logger", zap.Error(err))
	}
	log := logging.Get()
	defer log.Sync()

	if err := database.InitWithType(cfg.Database.Type, cfg.Database.DSN); err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := migrate(); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database ready", zap.String("type", cfg.Database.Type))

	jwtService := auth.NewJWTService(cfg.Auth.SecretKey, cfg.Auth.TokenExpiry, cfg.Auth.Issuer)

	hub := realtime.NewHub(cfg.Realtime.RingTimeout, log)
	wsHandler := ws.NewHandler(hub, jwtService, cfg.Realtime, log)
	messageService := messageservices.NewService(hub.Relay, log)
	authService := authservices.NewService(jwtService)

	router := buildRouter(cfg, jwtService, wsHandler, authService, messageService)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("server listening", zap.String("addr", cfg.Server.Addr()))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}

func migrate() error {
	return database.DB.AutoMigrate(
		&authmodels.User{},
		&profilemodels.Profile{},
		&profilemodels.Photo{},
		&profilemodels.ProfileView{},
		&profilemodels.Block{},
		&swipemodels.Swipe{},
		&swipemodels.Like{},
		&favoritemodels.Favorite{},
		&messagemodels.Message{},
		&premiummodels.Premium{},
		&advertisementmodels.Advertisement{},
	)
}

func buildRouter(
	cfg *config.Config,
	jwtService *auth.JWTService,
	wsHandler *ws.Handler,
	authService *authservices.Service,
	messageService *messageservices.Service,
) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestLogger(),
		middleware.ErrorHandler(),
		middleware.CORSMiddleware(cfg.Server.CORSOrigin),
		metrics.Middleware(),
	)

	checker := health.NewChecker(database.GetDB(), version)
	router.GET("/health", func(c *gin.Context) { c.JSON(200, checker.Check()) })
	router.GET("/health/live", func(c *gin.Context) { c.JSON(200, checker.Live()) })
	router.GET("/metrics", metrics.Handler())

	// Relay transport; a token is optional here, identity arrives at join.
	router.GET("/ws", wsHandler.Serve)

	authHandler := authhandlers.NewHandler(authService)
	messageHandler := messagehandlers.NewHandler(messageService)

	api := router.Group("/api/v1")
	{
		api.POST("/auth/signup", authHandler.Signup)
		api.POST("/auth/signin", authHandler.Signin)

		authed := api.Group("", middleware.AuthRequired(jwtService))
		{
			authed.GET("/profile/me", profilehandlers.GetMe)
			authed.PUT("/profile/me", profilehandlers.UpdateMe)
			authed.POST("/profile/photos", profilehandlers.AddPhoto)
			authed.GET("/profiles", profilehandlers.Browse)
			authed.GET("/profiles/:id", profilehandlers.GetProfile)
			authed.GET("/profile-views", profilehandlers.GetProfileViews)
			authed.POST("/block", profilehandlers.Block)

			authed.GET("/swipe", swipehandlers.Next)
			authed.POST("/swipe", swipehandlers.Swipe)
			authed.GET("/likes", swipehandlers.Likes)

			authed.GET("/favorites", favoritehandlers.List)
			authed.POST("/favorites", favoritehandlers.Add)
			authed.DELETE("/favorites/:userId", favoritehandlers.Remove)

			authed.GET("/messages", messageHandler.List)
			authed.POST("/messages", messageHandler.Send)

			authed.GET("/premium", premiumhandlers.Status)
			authed.POST("/premium", premiumhandlers.Activate)

			authed.GET("/advertisements", advertisementhandlers.List)
			authed.POST("/advertisements", advertisementhandlers.Create)
			authed.PATCH("/advertisements/:id", advertisementhandlers.Deactivate)
			authed.DELETE("/advertisements/:id", advertisementhandlers.Delete)
		}
	}

	return router
}
