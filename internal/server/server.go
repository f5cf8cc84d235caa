package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nexora-chat/config"
	"nexora-chat/internal/handler"
	"nexora-chat/internal/middleware"
	"nexora-chat/internal/ratelimit"
	"nexora-chat/internal/services"
	"nexora-chat/internal/transport/httpdto"
	ws "nexora-chat/internal/websocket"
	"nexora-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
	hub        *ws.Hub
	limiter    ratelimit.Limiter
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	User     *handler.UserHandler
	Chat     *handler.ChatHandler
	Feedback *handler.FeedbackHandler
	Health   *handler.HealthHandler
	Realtime *ws.Handler
}

// NewHandlers wires every REST and realtime handler to the same service.
func NewHandlers(cfg *config.Config, l *logger.Logger, service *services.UserService, hub *ws.Hub, limiter ratelimit.Limiter) *Handlers {
	debug := cfg.AppMode != ReleaseMode
	return &Handlers{
		User:     handler.NewUserHandler(service, debug),
		Chat:     handler.NewChatHandler(service, debug),
		Feedback: handler.NewFeedbackHandler(service, debug),
		Health:   handler.NewHealthHandler(service),
		Realtime: ws.NewHandler(service, hub, limiter, l, ws.HandlerConfig{
			PingInterval: cfg.PingInterval(),
			Debug:        debug,
		}),
	}
}

func New(cfg *config.Config, l *logger.Logger, hub *ws.Hub, limiter ratelimit.Limiter) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery(l, cfg.AppMode != ReleaseMode))

	if limiter == nil {
		limiter = ratelimit.Disabled{}
	}

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine:  engine,
		config:  cfg,
		logger:  l,
		hub:     hub,
		limiter: limiter,
	}
}

// Engine exposes the router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) SetupRoutes(handlers *Handlers) {
	// The realtime channel accepts upgrades on any path, registered or not.
	s.engine.Use(middleware.UpgradeMiddleware(handlers.Realtime.Connect))
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.MetricsMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	{
		api.GET("/health", handlers.Health.Check)
		api.POST("/register",
			middleware.RateLimitMiddleware(s.limiter, middleware.ByClientIP("register"), s.logger),
			handlers.User.Register)
		api.GET("/users/:userId", handlers.User.Get)

		api.POST("/chat/:userId",
			middleware.RateLimitMiddleware(s.limiter, middleware.ByUserParam("chat"), s.logger),
			handlers.Chat.Append)
		api.GET("/chat/:userId", handlers.Chat.List)
		api.DELETE("/chat/:userId", handlers.Chat.Clear)

		api.POST("/feedback/:userId",
			middleware.RateLimitMiddleware(s.limiter, middleware.ByUserParam("feedback"), s.logger),
			handlers.Feedback.Append)
		api.GET("/feedback/:userId", handlers.Feedback.List)
	}

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("Not found", "NOT_FOUND"))
	})
}

// Start serves until SIGINT or SIGTERM, then shuts the HTTP server and the
// realtime hub down.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go s.hub.Run(ctx)
	if local, ok := s.limiter.(*ratelimit.Local); ok {
		go local.Run(ctx)
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		s.logger.Errorf("Error in starting the server: %s", err)
		return err
	case <-quit:
	}

	s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second*5)
	defer shutdownCancel()

	// Hijacked realtime connections are not tracked by Shutdown; the hub
	// closes them when ctx is cancelled.
	cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Errorf("Error in the graceful shutdown of the server: %s", err)
		return err
	}

	s.logger.Infof("Server stopped gracefully")
	return nil
}
