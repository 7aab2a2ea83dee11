package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrors "atmsecurity.io/application/appErrors"
	"atmsecurity.io/infrastructure/env"
	"atmsecurity.io/infrastructure/logger"
	"atmsecurity.io/infrastructure/metrics"
	middlewares "atmsecurity.io/infrastructure/middleware"
	ratelimit "atmsecurity.io/infrastructure/ratelimit"
	webRoutev1 "atmsecurity.io/infrastructure/routes/ginRouter/web/v1"
	server_response "atmsecurity.io/infrastructure/serverResponse"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type serverInterface interface {
	Start(ctx context.Context) error
}

type ginServer struct{}

func newRouter(cfg *env.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	server := gin.New()
	server.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Api-Key", "X-Request-Id", "User-Agent"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	server.Use(cors.New(corsConfig))
	server.Use(ratelimit.TokenBucketPerIP(cfg.RateLimitPerSecond))
	server.Use(metrics.RequestMetricMiddleware())
	server.Use(middlewares.RequestContextMiddleware())
	server.MaxMultipartMemory = cfg.MaxUploadBytes

	routerV1 := server.Group("/api/v1")
	{
		webRoutev1.RecognitionRouter(routerV1)
		webRoutev1.UserRouter(routerV1)
		webRoutev1.AccountRouter(routerV1)
		webRoutev1.TransactionRouter(routerV1)
	}

	server.GET("/ping", func(ctx *gin.Context) {
		server_response.Responder.Respond(ctx, http.StatusOK, "pong!", nil, nil, nil)
	})
	server.GET("/metrics", gin.WrapH(metrics.Handler()))

	server.NoRoute(func(ctx *gin.Context) {
		apperrors.NotFoundError(ctx, fmt.Sprintf("%s %s does not exist", ctx.Request.Method, ctx.Request.URL))
	})
	return server
}

// Start serves http until ctx is cancelled, then drains in-flight requests.
func (s *ginServer) Start(ctx context.Context) error {
	cfg := env.Settings
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           newRouter(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server starting on PORT %s", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	logger.Info("shutting down http server")
	return srv.Shutdown(shutdownCtx)
}
