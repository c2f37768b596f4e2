// Package server hosts the admin API: echo with request logging, recovery,
// CORS, a health endpoint and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/pressroom-io/pressroom/internal/apperr"
	mw "github.com/pressroom-io/pressroom/pkg/middleware"
	pkgserver "github.com/pressroom-io/pressroom/pkg/server"
)

const GracefulShutdownTimeout = 10 * time.Second

type Server struct {
	Echo *echo.Echo

	cfg     *Config
	checker pkgserver.HealthChecker
}

func NewServer(e *echo.Echo, cfg *Config, checker pkgserver.HealthChecker) *Server {
	e.HideBanner = true
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()

	s := &Server{
		Echo:    e,
		cfg:     cfg,
		checker: checker,
	}

	s.setupMiddlewares()
	s.setupBaseRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.Echo.Use(mw.Logger())
	s.Echo.Use(middleware.Recover())
	s.Echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.cfg.CorsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete},
	}))
}

func (s *Server) setupBaseRoutes() {
	s.Echo.GET("/healthz", func(c echo.Context) error {
		if !s.checker.Healthy(c.Request().Context()) {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	s.Echo.GET("/swagger/*", echoSwagger.WrapHandler)
}

// Start serves until SIGINT/SIGTERM, then drains connections within the
// shutdown timeout. onShutdown runs after the listener stops accepting, so
// background workers stop only once no new requests can arrive.
func (s *Server) Start(onShutdown func(ctx context.Context)) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := s.Echo.Start(":" + s.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Echo.Logger.Fatal("shutting down the server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	if err := s.Echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if onShutdown != nil {
		onShutdown(shutdownCtx)
	}
	return nil
}
