package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"courier-chat/config"
	"courier-chat/internal/handler"
	"courier-chat/internal/middleware"
	"courier-chat/internal/redis"
	"courier-chat/internal/services"
	"courier-chat/internal/transport/httpdto"
	"courier-chat/pkg/database"
	"courier-chat/pkg/logger"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Message *handler.MessageHandler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

func (s *Server) SetupRoutes(handlers *Handlers, authService *services.AuthService, pool *pgxpool.Pool, redisClient *goredis.Client) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(pool); err != nil {
			c.JSON(http.StatusServiceUnavailable,
				httpdto.NewErrorResponse(err.Error(), http.StatusServiceUnavailable))
			return
		}
		if redisClient != nil {
			if err := redis.HealthCheck(redisClient); err != nil {
				c.JSON(http.StatusServiceUnavailable,
					httpdto.NewErrorResponse(err.Error(), http.StatusServiceUnavailable))
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	auth := s.engine.Group("/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
	}

	users := s.engine.Group("/users")
	{
		users.GET("", middleware.RequireLogin(authService), handlers.User.List)
		users.GET("/:username", middleware.RequireSameUser(authService), handlers.User.Get)
		users.GET("/:username/to", middleware.RequireSameUser(authService), handlers.User.MessagesTo)
		users.GET("/:username/from", middleware.RequireSameUser(authService), handlers.User.MessagesFrom)
	}

	messages := s.engine.Group("/messages", middleware.RequireLogin(authService))
	{
		messages.GET("/:id", handlers.Message.Get)
		messages.POST("", handlers.Message.Send)
		messages.POST("/:id/read", handlers.Message.MarkRead)
	}
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	if s.logger != nil {
		s.logger.Infof("Server is running on :%s", s.config.AppPort)
	}

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
